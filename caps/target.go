// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package caps

import (
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// targetBaselines maps well-known target names to the capability set
// the target guarantees before any stage baseline is folded in.
var targetBaselines = map[string]Set{
	"vulkan1.0": NewSet(NewAtomSet(AtomSPIRV1_0)),
	"vulkan1.1": NewSet(NewAtomSet(
		AtomSPIRV1_0, AtomSPIRV1_1, AtomSPIRV1_2, AtomSPIRV1_3,
		AtomExtSubgroupOps, AtomExtMultiview, AtomExtDrawParameters)),
	"vulkan1.2": NewSet(NewAtomSet(
		AtomSPIRV1_0, AtomSPIRV1_1, AtomSPIRV1_2, AtomSPIRV1_3,
		AtomSPIRV1_4, AtomSPIRV1_5,
		AtomExtSubgroupOps, AtomExtMultiview, AtomExtDrawParameters,
		AtomExt8BitStorage, AtomExt16BitStorage)),
	"vulkan1.3": NewSet(NewAtomSet(
		AtomSPIRV1_0, AtomSPIRV1_1, AtomSPIRV1_2, AtomSPIRV1_3,
		AtomSPIRV1_4, AtomSPIRV1_5, AtomSPIRV1_6,
		AtomExtSubgroupOps, AtomExtMultiview, AtomExtDrawParameters,
		AtomExt8BitStorage, AtomExt16BitStorage,
		AtomExtDemoteToHelper)),

	"gl3.3": NewSet(NewAtomSet(AtomGL330)),
	"gl4.2": NewSet(NewAtomSet(AtomGL330, AtomGL420)),
	"gl4.3": NewSet(NewAtomSet(AtomGL330, AtomGL420, AtomGL430)),
	"gl4.5": NewSet(NewAtomSet(AtomGL330, AtomGL420, AtomGL430, AtomGL450)),
	"gl4.6": NewSet(NewAtomSet(AtomGL330, AtomGL420, AtomGL430, AtomGL450, AtomGL460)),

	"metal2.0": NewSet(NewAtomSet(AtomMetal2_0)),
	"metal2.2": NewSet(NewAtomSet(AtomMetal2_0, AtomMetal2_2)),
	"metal3.0": NewSet(NewAtomSet(AtomMetal2_0, AtomMetal2_2, AtomMetal3_0, AtomExtMeshShading)),
}

// TargetBaseline returns the capability baseline for a well-known
// target name such as "vulkan1.2" or "metal3.0".
func TargetBaseline(name string) (Set, bool) {
	s, ok := targetBaselines[name]
	return s, ok
}

// TargetNames returns the well-known target names in sorted order.
func TargetNames() []string {
	names := make([]string, 0, len(targetBaselines))
	for name := range targetBaselines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// targetFile is the on-disk form of a target description:
//
//	name = "engine-min-spec"
//
//	[[alternative]]
//	atoms = ["spirv_1_3", "ext_subgroup_ops"]
//
//	[[alternative]]
//	atoms = ["gl_460"]
type targetFile struct {
	Name         string `toml:"name"`
	Alternatives []struct {
		Atoms []string `toml:"atoms"`
	} `toml:"alternative"`
}

// LoadTargetFile reads a TOML target description and returns the
// declared name and capability baseline.
func LoadTargetFile(path string) (string, Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", Set{}, fmt.Errorf("failed to read target description: %w", err)
	}

	var tf targetFile
	if err := toml.Unmarshal(data, &tf); err != nil {
		return "", Set{}, fmt.Errorf("failed to parse target description: %w", err)
	}
	if tf.Name == "" {
		return "", Set{}, fmt.Errorf("target description %s has no name", path)
	}
	if len(tf.Alternatives) == 0 {
		return "", Set{}, fmt.Errorf("target description %q declares no alternatives", tf.Name)
	}

	alts := make([]AtomSet, 0, len(tf.Alternatives))
	for i, alt := range tf.Alternatives {
		var set AtomSet
		for _, name := range alt.Atoms {
			atom, err := ParseAtom(name)
			if err != nil {
				return "", Set{}, fmt.Errorf("target %q alternative %d: %w", tf.Name, i, err)
			}
			set = set.With(atom)
		}
		alts = append(alts, set)
	}
	return tf.Name, NewSet(alts...), nil
}
