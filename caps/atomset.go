// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package caps

import (
	"math/bits"
	"strings"
)

// atomWords is the number of 64-bit words needed to cover every atom.
const atomWords = (int(atomCount) + 63) / 64

// AtomSet is an unordered set of atoms, stored as a fixed-width
// bitset. The zero value is the empty set. AtomSet is a value type:
// all operations return new sets and Go's == compares for equality.
type AtomSet struct {
	words [atomWords]uint64
}

// NewAtomSet returns the set containing the given atoms.
func NewAtomSet(atoms ...Atom) AtomSet {
	var s AtomSet
	for _, a := range atoms {
		s.words[a/64] |= 1 << (a % 64)
	}
	return s
}

// Contains reports whether a is a member of the set.
func (s AtomSet) Contains(a Atom) bool {
	return s.words[a/64]&(1<<(a%64)) != 0
}

// With returns a copy of the set with a added.
func (s AtomSet) With(a Atom) AtomSet {
	s.words[a/64] |= 1 << (a % 64)
	return s
}

// Union returns the set of atoms present in either operand.
// The empty set is the identity.
func (s AtomSet) Union(other AtomSet) AtomSet {
	var r AtomSet
	for i := range s.words {
		r.words[i] = s.words[i] | other.words[i]
	}
	return r
}

// Intersect returns the set of atoms present in both operands.
func (s AtomSet) Intersect(other AtomSet) AtomSet {
	var r AtomSet
	for i := range s.words {
		r.words[i] = s.words[i] & other.words[i]
	}
	return r
}

// Subtract returns the atoms of s that are absent from other.
// Subtraction is asymmetric: s.Subtract(other) != other.Subtract(s)
// in general.
func (s AtomSet) Subtract(other AtomSet) AtomSet {
	var r AtomSet
	for i := range s.words {
		r.words[i] = s.words[i] &^ other.words[i]
	}
	return r
}

// SubsetOf reports whether every atom of s is present in other.
// The empty set is a subset of everything.
func (s AtomSet) SubsetOf(other AtomSet) bool {
	for i := range s.words {
		if s.words[i]&^other.words[i] != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether both sets have exactly the same members.
func (s AtomSet) Equal(other AtomSet) bool {
	return s == other
}

// IsEmpty reports whether the set has no members.
func (s AtomSet) IsEmpty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Len returns the number of atoms in the set.
func (s AtomSet) Len() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Atoms returns the members in ascending atom order.
func (s AtomSet) Atoms() []Atom {
	out := make([]Atom, 0, s.Len())
	for a := Atom(0); a < atomCount; a++ {
		if s.Contains(a) {
			out = append(out, a)
		}
	}
	return out
}

// Compare orders atom sets canonically: member sequences are compared
// element-wise in ascending atom order, with a proper prefix ordering
// before its extensions. Returns -1, 0, or +1.
func (s AtomSet) Compare(other AtomSet) int {
	a, b := s.Atoms(), other.Atoms()
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// String formats the set for diagnostics, e.g. "spirv_1_4 + fragment".
// The empty set formats as "(none)".
func (s AtomSet) String() string {
	atoms := s.Atoms()
	if len(atoms) == 0 {
		return "(none)"
	}
	var b strings.Builder
	for i, a := range atoms {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(a.String())
	}
	return b.String()
}

// stageAtoms returns only the stage-guarantee members of the set.
func (s AtomSet) stageAtoms() AtomSet {
	return s.Intersect(allStageAtoms)
}

var allStageAtoms = NewAtomSet(AtomStageVertex, AtomStageFragment, AtomStageCompute)
