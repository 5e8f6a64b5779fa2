// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package caps

import (
	"sort"
	"strings"
)

// Implies is the result of an implication query between two Sets.
type Implies uint8

const (
	// NotImplied means no alternative of the target covers any
	// alternative of the requirement.
	NotImplied Implies = iota

	// Implied means at least one alternative of the target covers at
	// least one alternative of the requirement.
	Implied
)

// String returns "implied" or "not-implied".
func (i Implies) String() string {
	if i == Implied {
		return "implied"
	}
	return "not-implied"
}

// Set is a capability set in disjunctive normal form: a disjunction of
// alternatives, each alternative a conjunction of atoms. A Set with no
// alternatives is "empty" and acts as the identity for Join; an
// alternative with no atoms represents "no requirement" and is implied
// by everything.
//
// Alternatives are kept sorted in canonical order and deduplicated, so
// PrimaryAlternative is deterministic for equal sets.
type Set struct {
	alts []AtomSet
}

// NewSet returns the capability set with the given alternatives,
// canonicalized.
func NewSet(alts ...AtomSet) Set {
	if len(alts) == 0 {
		return Set{}
	}
	sorted := make([]AtomSet, len(alts))
	copy(sorted, alts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Compare(sorted[j]) < 0
	})
	out := sorted[:1]
	for _, a := range sorted[1:] {
		if !a.Equal(out[len(out)-1]) {
			out = append(out, a)
		}
	}
	return Set{alts: out}
}

// Empty reports whether the set has no alternatives.
func (s Set) Empty() bool {
	return len(s.alts) == 0
}

// Alternatives returns the alternatives in canonical order.
// The returned slice must not be modified.
func (s Set) Alternatives() []AtomSet {
	return s.alts
}

// PrimaryAlternative returns a stable representative alternative: the
// first in canonical order, or the empty atom set when the set is
// empty. It is meant for diagnostic diffing only; sufficiency
// decisions must go through ImpliesAny.
func (s Set) PrimaryAlternative() AtomSet {
	if len(s.alts) == 0 {
		return AtomSet{}
	}
	return s.alts[0]
}

// Join folds the guarantees of other into the receiver: each resulting
// alternative is the union of one alternative from each side. Pairs
// that carry different stage atoms are incompatible and contribute
// nothing. An empty set is the identity on either side.
//
// Join serves two roles in the capability check: folding a stage's
// intrinsic baseline into a target baseline, and folding the same
// baseline into a requirement before computing a diagnostic diff.
func (s Set) Join(other Set) Set {
	if s.Empty() {
		return other
	}
	if other.Empty() {
		return s
	}
	joined := make([]AtomSet, 0, len(s.alts)*len(other.alts))
	for _, a := range s.alts {
		for _, b := range other.alts {
			if !compatibleStages(a, b) {
				continue
			}
			joined = append(joined, a.Union(b))
		}
	}
	return NewSet(joined...)
}

// compatibleStages reports whether two alternatives may be combined:
// each side may name stage atoms, but any stage atoms present must
// agree across both sides.
func compatibleStages(a, b AtomSet) bool {
	sa, sb := a.stageAtoms(), b.stageAtoms()
	if sa.IsEmpty() || sb.IsEmpty() {
		return true
	}
	return sa.Equal(sb)
}

// ImpliesAny reports whether the receiver satisfies required: it
// returns Implied when some alternative of the receiver is a superset
// of some alternative of required. Both sides keep OR semantics, so
// adding alternatives to required gives the target more ways to
// satisfy it, while removing them makes satisfaction harder.
//
// An empty required set (no alternatives at all) is never implied;
// "no requirement" is expressed as a single empty alternative instead.
func (s Set) ImpliesAny(required Set) Implies {
	for _, have := range s.alts {
		for _, want := range required.alts {
			if want.SubsetOf(have) {
				return Implied
			}
		}
	}
	return NotImplied
}

// String formats the set for diagnostics: alternatives joined with
// " | ", e.g. "spirv_1_4 | ext_subgroup_ops + spirv_1_1". The empty
// set formats as "(empty)".
func (s Set) String() string {
	if len(s.alts) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(s.alts))
	for i, a := range s.alts {
		parts[i] = a.String()
	}
	return strings.Join(parts, " | ")
}
