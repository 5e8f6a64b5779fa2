// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package profile identifies shading stage and version pairs and the
// capability baseline each pair intrinsically guarantees.
package profile

import (
	"fmt"
	"strings"

	"github.com/gogpu/slate/caps"
)

// Stage represents a shader pipeline stage.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
	StageCompute
)

// String returns the stage name used in diagnostics.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

// prefix returns the two-letter profile prefix, e.g. "vs".
func (s Stage) prefix() string {
	switch s {
	case StageVertex:
		return "vs"
	case StageFragment:
		return "fs"
	case StageCompute:
		return "cs"
	default:
		return "xx"
	}
}

// atom returns the capability atom guaranteed by the stage.
func (s Stage) atom() caps.Atom {
	switch s {
	case StageVertex:
		return caps.AtomStageVertex
	case StageFragment:
		return caps.AtomStageFragment
	default:
		return caps.AtomStageCompute
	}
}

// Model is a shader model version, e.g. 6_0.
type Model struct {
	Major uint8
	Minor uint8
}

// String returns the model suffix used in profile names, e.g. "6_0".
func (m Model) String() string {
	return fmt.Sprintf("%d_%d", m.Major, m.Minor)
}

// AtLeast reports whether m is the same as or newer than other.
func (m Model) AtLeast(other Model) bool {
	if m.Major != other.Major {
		return m.Major > other.Major
	}
	return m.Minor >= other.Minor
}

// modelTiers lists the capability atoms unlocked at each shader
// model, oldest first. A profile's baseline includes every tier at or
// below its model.
var modelTiers = []struct {
	model Model
	atom  caps.Atom
}{
	{Model{5, 0}, caps.AtomSM5_0},
	{Model{5, 1}, caps.AtomSM5_1},
	{Model{6, 0}, caps.AtomSM6_0},
	{Model{6, 2}, caps.AtomSM6_2},
	{Model{6, 5}, caps.AtomSM6_5},
}

// Profile identifies a stage and shader model, e.g. "fs_6_0".
// The zero value is "vs_0_0", a vertex profile with no model tiers.
type Profile struct {
	Stage Stage
	Model Model
}

// Parse parses a profile name like "fs_6_0".
func Parse(name string) (Profile, error) {
	parts := strings.SplitN(name, "_", 2)
	if len(parts) != 2 {
		return Profile{}, fmt.Errorf("invalid profile name %q", name)
	}

	var stage Stage
	switch parts[0] {
	case "vs":
		stage = StageVertex
	case "fs", "ps":
		stage = StageFragment
	case "cs":
		stage = StageCompute
	default:
		return Profile{}, fmt.Errorf("invalid profile name %q: unknown stage prefix %q", name, parts[0])
	}

	var major, minor uint8
	if _, err := fmt.Sscanf(parts[1], "%d_%d", &major, &minor); err != nil {
		return Profile{}, fmt.Errorf("invalid profile name %q: bad model suffix %q", name, parts[1])
	}
	return Profile{Stage: stage, Model: Model{Major: major, Minor: minor}}, nil
}

// Name returns the canonical profile name, e.g. "cs_6_2".
func (p Profile) Name() string {
	return p.Stage.prefix() + "_" + p.Model.String()
}

// StageBaseline returns the capability set the profile guarantees for
// free: the stage atom plus every shader model tier at or below the
// profile's model, as a single alternative.
func (p Profile) StageBaseline() caps.Set {
	set := caps.NewAtomSet(p.Stage.atom())
	for _, tier := range modelTiers {
		if p.Model.AtLeast(tier.model) {
			set = set.With(tier.atom)
		}
	}
	return caps.NewSet(set)
}
