// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package caps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_CanonicalizationDeduplicates(t *testing.T) {
	s := NewSet(
		NewAtomSet(AtomSPIRV1_4),
		NewAtomSet(AtomSPIRV1_0),
		NewAtomSet(AtomSPIRV1_4),
	)

	require.Len(t, s.Alternatives(), 2)
	assert.True(t, s.PrimaryAlternative().Equal(NewAtomSet(AtomSPIRV1_0)))
}

func TestSet_ImpliesAnyReflexive(t *testing.T) {
	sets := []Set{
		NewSet(NewAtomSet(AtomSPIRV1_3)),
		NewSet(NewAtomSet(AtomGL460), NewAtomSet(AtomMetal3_0)),
		NewSet(AtomSet{}),
	}
	for _, s := range sets {
		assert.Equal(t, Implied, s.ImpliesAny(s), "set %s should imply itself", s)
	}
}

func TestSet_ImpliesAnyExistential(t *testing.T) {
	target := NewSet(NewAtomSet(AtomSPIRV1_3, AtomExtSubgroupOps))

	tests := []struct {
		name     string
		required Set
		want     Implies
	}{
		{
			"single alternative satisfied",
			NewSet(NewAtomSet(AtomSPIRV1_3)),
			Implied,
		},
		{
			"single alternative missing atom",
			NewSet(NewAtomSet(AtomSPIRV1_4)),
			NotImplied,
		},
		{
			"one of two alternatives satisfied",
			NewSet(NewAtomSet(AtomSPIRV1_4), NewAtomSet(AtomExtSubgroupOps)),
			Implied,
		},
		{
			"empty alternative satisfies everything",
			NewSet(AtomSet{}),
			Implied,
		},
		{
			"empty required set is unsatisfiable",
			Set{},
			NotImplied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, target.ImpliesAny(tt.required))
		})
	}
}

// Adding alternatives to required gives the target more ways to
// satisfy it; requirement sides keep OR semantics, never AND. Getting
// this backwards is the classic inversion bug.
func TestSet_MoreRequiredAlternativesNeverHurt(t *testing.T) {
	target := NewSet(NewAtomSet(AtomGL460))
	required := NewSet(NewAtomSet(AtomGL460))
	require.Equal(t, Implied, target.ImpliesAny(required))

	widened := NewSet(NewAtomSet(AtomGL460), NewAtomSet(AtomSPIRV1_6, AtomExtRayTracing))
	assert.Equal(t, Implied, target.ImpliesAny(widened))
}

// Growing the target (more alternatives, or more atoms in an
// alternative) can only turn NotImplied into Implied.
func TestSet_ImpliesAnyMonotonicInTarget(t *testing.T) {
	required := NewSet(NewAtomSet(AtomSPIRV1_4))

	target := NewSet(NewAtomSet(AtomSPIRV1_3))
	require.Equal(t, NotImplied, target.ImpliesAny(required))

	withAtoms := NewSet(NewAtomSet(AtomSPIRV1_3, AtomSPIRV1_4))
	assert.Equal(t, Implied, withAtoms.ImpliesAny(required))

	withAlternative := NewSet(NewAtomSet(AtomSPIRV1_3), NewAtomSet(AtomSPIRV1_4))
	assert.Equal(t, Implied, withAlternative.ImpliesAny(required))
}

func TestSet_JoinIdentity(t *testing.T) {
	s := NewSet(NewAtomSet(AtomSPIRV1_2), NewAtomSet(AtomGL450))

	assert.Equal(t, s, Set{}.Join(s))
	assert.Equal(t, s, s.Join(Set{}))
}

func TestSet_JoinFoldsGuarantees(t *testing.T) {
	target := NewSet(NewAtomSet(AtomSPIRV1_0), NewAtomSet(AtomGL460))
	stage := NewSet(NewAtomSet(AtomStageFragment))

	joined := target.Join(stage)
	require.Len(t, joined.Alternatives(), 2)
	for _, alt := range joined.Alternatives() {
		assert.True(t, alt.Contains(AtomStageFragment))
	}
}

func TestSet_JoinDropsConflictingStages(t *testing.T) {
	vertexOnly := NewSet(NewAtomSet(AtomStageVertex, AtomSPIRV1_0))
	fragmentOnly := NewSet(NewAtomSet(AtomStageFragment, AtomSPIRV1_0))

	joined := vertexOnly.Join(fragmentOnly)
	assert.True(t, joined.Empty(), "conflicting stages joined to %s", joined)

	// Same stage on both sides is compatible.
	same := vertexOnly.Join(NewSet(NewAtomSet(AtomStageVertex, AtomExtDrawParameters)))
	require.Len(t, same.Alternatives(), 1)
	assert.True(t, same.PrimaryAlternative().Equal(
		NewAtomSet(AtomStageVertex, AtomSPIRV1_0, AtomExtDrawParameters)))
}

func TestSet_PrimaryAlternativeDeterministic(t *testing.T) {
	a := NewSet(NewAtomSet(AtomGL460), NewAtomSet(AtomSPIRV1_0))
	b := NewSet(NewAtomSet(AtomSPIRV1_0), NewAtomSet(AtomGL460))

	assert.True(t, a.PrimaryAlternative().Equal(b.PrimaryAlternative()))
	assert.True(t, Set{}.PrimaryAlternative().IsEmpty())
}

func TestSet_String(t *testing.T) {
	assert.Equal(t, "(empty)", Set{}.String())
	assert.Equal(t, "spirv_1_4 | gl_460",
		NewSet(NewAtomSet(AtomGL460), NewAtomSet(AtomSPIRV1_4)).String())
}
