// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package caps

import "fmt"

// Atom identifies a single platform capability: a version tier, an
// extension, or a stage guarantee. Atoms are ordered by their numeric
// value, which fixes the canonical ordering of atom sets.
type Atom uint16

// Stage atoms. A function lowered for one stage can never require a
// different stage, so at most one stage atom may appear in a joined
// alternative (see Set.Join).
const (
	AtomStageVertex Atom = iota
	AtomStageFragment
	AtomStageCompute

	// SPIR-V version tiers.
	AtomSPIRV1_0
	AtomSPIRV1_1
	AtomSPIRV1_2
	AtomSPIRV1_3
	AtomSPIRV1_4
	AtomSPIRV1_5
	AtomSPIRV1_6

	// OpenGL version tiers.
	AtomGL330
	AtomGL420
	AtomGL430
	AtomGL450
	AtomGL460

	// Metal version tiers.
	AtomMetal2_0
	AtomMetal2_2
	AtomMetal3_0

	// Shader model tiers.
	AtomSM5_0
	AtomSM5_1
	AtomSM6_0
	AtomSM6_2
	AtomSM6_5

	// Extension atoms.
	AtomExt8BitStorage
	AtomExt16BitStorage
	AtomExtSubgroupOps
	AtomExtSubgroupArithmetic
	AtomExtRayQuery
	AtomExtRayTracing
	AtomExtMeshShading
	AtomExtFragmentInterlock
	AtomExtSampleRateShading
	AtomExtMultiview
	AtomExtDrawParameters
	AtomExtDemoteToHelper
	AtomExtFloat64
	AtomExtInt64
	AtomExtInt64Atomics
	AtomExtImageQuery
	AtomExtVariablePointers

	atomCount // Sentinel; keep last.
)

// atomNames maps every atom to its diagnostic name. Indexed by Atom.
var atomNames = [atomCount]string{
	AtomStageVertex:   "vertex",
	AtomStageFragment: "fragment",
	AtomStageCompute:  "compute",

	AtomSPIRV1_0: "spirv_1_0",
	AtomSPIRV1_1: "spirv_1_1",
	AtomSPIRV1_2: "spirv_1_2",
	AtomSPIRV1_3: "spirv_1_3",
	AtomSPIRV1_4: "spirv_1_4",
	AtomSPIRV1_5: "spirv_1_5",
	AtomSPIRV1_6: "spirv_1_6",

	AtomGL330: "gl_330",
	AtomGL420: "gl_420",
	AtomGL430: "gl_430",
	AtomGL450: "gl_450",
	AtomGL460: "gl_460",

	AtomMetal2_0: "metal_2_0",
	AtomMetal2_2: "metal_2_2",
	AtomMetal3_0: "metal_3_0",

	AtomSM5_0: "sm_5_0",
	AtomSM5_1: "sm_5_1",
	AtomSM6_0: "sm_6_0",
	AtomSM6_2: "sm_6_2",
	AtomSM6_5: "sm_6_5",

	AtomExt8BitStorage:        "ext_8bit_storage",
	AtomExt16BitStorage:       "ext_16bit_storage",
	AtomExtSubgroupOps:        "ext_subgroup_ops",
	AtomExtSubgroupArithmetic: "ext_subgroup_arithmetic",
	AtomExtRayQuery:           "ext_ray_query",
	AtomExtRayTracing:         "ext_ray_tracing",
	AtomExtMeshShading:        "ext_mesh_shading",
	AtomExtFragmentInterlock:  "ext_fragment_interlock",
	AtomExtSampleRateShading:  "ext_sample_rate_shading",
	AtomExtMultiview:          "ext_multiview",
	AtomExtDrawParameters:     "ext_draw_parameters",
	AtomExtDemoteToHelper:     "ext_demote_to_helper",
	AtomExtFloat64:            "ext_float64",
	AtomExtInt64:              "ext_int64",
	AtomExtInt64Atomics:       "ext_int64_atomics",
	AtomExtImageQuery:         "ext_image_query",
	AtomExtVariablePointers:   "ext_variable_pointers",
}

var atomsByName = make(map[string]Atom, atomCount)

func init() {
	for i, name := range atomNames {
		atomsByName[name] = Atom(i)
	}
}

// String returns the diagnostic name of the atom.
func (a Atom) String() string {
	if a < atomCount {
		return atomNames[a]
	}
	return fmt.Sprintf("atom(%d)", uint16(a))
}

// IsStage reports whether the atom is a stage guarantee.
func (a Atom) IsStage() bool {
	return a <= AtomStageCompute
}

// ParseAtom resolves a diagnostic name back to its atom.
func ParseAtom(name string) (Atom, error) {
	a, ok := atomsByName[name]
	if !ok {
		return 0, fmt.Errorf("unknown capability atom %q", name)
	}
	return a, nil
}

// Atoms returns every defined atom in canonical order.
// Intended for tooling that enumerates the atom table.
func Atoms() []Atom {
	all := make([]Atom, atomCount)
	for i := range all {
		all[i] = Atom(i)
	}
	return all
}
