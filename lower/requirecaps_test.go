// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/slate/callgraph"
	"github.com/gogpu/slate/caps"
	"github.com/gogpu/slate/diag"
	"github.com/gogpu/slate/ir"
	"github.com/gogpu/slate/profile"
)

func entryAttr(name string) *ir.EntryPointAttr {
	p, err := profile.Parse(name)
	if err != nil {
		panic(err)
	}
	return &ir.EntryPointAttr{Profile: p}
}

func call(callee ir.FunctionHandle) ir.Instruction {
	return ir.Instruction{Kind: ir.InstCall{Callee: callee}}
}

func marker(span ir.Span, atoms ...caps.Atom) ir.Instruction {
	return ir.Instruction{
		Kind: ir.InstRequireCaps{Caps: caps.NewSet(caps.NewAtomSet(atoms...))},
		Span: span,
	}
}

func countMarkers(m *ir.Module) int {
	n := 0
	for _, fn := range m.Functions {
		for _, block := range fn.Blocks {
			for _, inst := range block.Insts {
				if _, ok := inst.Kind.(ir.InstRequireCaps); ok {
					n++
				}
			}
		}
	}
	return n
}

// Requirement satisfied by the stage baseline alone: fs_6_0 grants
// sm_6_0 even against an empty target.
func TestCheck_SatisfiedByStageBaseline(t *testing.T) {
	m := &ir.Module{Functions: []ir.Function{
		{
			Name:       "main",
			EntryPoint: entryAttr("fs_6_0"),
			Blocks: []ir.Block{
				{Insts: []ir.Instruction{marker(ir.Span{}, caps.AtomSM6_0)}},
			},
		},
	}}

	sink := diag.NewSink()
	err := CheckRequiredCapabilities(m, Options{}, sink)

	require.NoError(t, err)
	assert.Empty(t, sink.Diagnostics())
	assert.Zero(t, countMarkers(m))
}

// Deficiency in permissive mode: one advisory diagnostic naming the
// missing atom, plus the requirement-site note, and success status.
func TestCheck_AdvisoryUpgrade(t *testing.T) {
	markerSpan := ir.Span{Start: 100, End: 120}
	entrySpan := ir.Span{Start: 5, End: 9}
	m := &ir.Module{Functions: []ir.Function{
		{
			Name:       "main",
			Span:       entrySpan,
			EntryPoint: entryAttr("fs_6_0"),
			Blocks: []ir.Block{
				{Insts: []ir.Instruction{marker(markerSpan, caps.AtomExtRayQuery)}},
			},
		},
	}}

	sink := diag.NewSink()
	err := CheckRequiredCapabilities(m, Options{Profile: mustProfile("fs_6_0")}, sink)

	require.NoError(t, err)
	diags := sink.Diagnostics()
	require.Len(t, diags, 2)

	assert.Equal(t, diag.SeverityWarning, diags[0].Severity)
	assert.Equal(t, diag.CodeImplicitCapabilityUpgrade, diags[0].Code)
	assert.Equal(t, entrySpan, diags[0].Span)
	assert.Contains(t, diags[0].Message, `"main"`)
	assert.Contains(t, diags[0].Message, `"fs_6_0"`)
	assert.Contains(t, diags[0].Message, "ext_ray_query")

	assert.Equal(t, diag.SeverityNote, diags[1].Severity)
	assert.Equal(t, diag.CodeSeeRequirementSite, diags[1].Code)
	assert.Equal(t, markerSpan, diags[1].Span)

	assert.Zero(t, countMarkers(m))
}

// Same deficiency under restrictive checking: error severity and
// failure status.
func TestCheck_RestrictiveFailure(t *testing.T) {
	m := &ir.Module{Functions: []ir.Function{
		{
			Name:       "main",
			EntryPoint: entryAttr("fs_6_0"),
			Blocks: []ir.Block{
				{Insts: []ir.Instruction{marker(ir.Span{}, caps.AtomExtRayQuery)}},
			},
		},
	}}

	sink := diag.NewSink()
	err := CheckRequiredCapabilities(m, Options{
		Profile:                    mustProfile("fs_6_0"),
		RestrictiveCapabilityCheck: true,
	}, sink)

	require.ErrorIs(t, err, ErrCapabilityCheckFailed)
	require.Len(t, sink.Diagnostics(), 2)
	assert.Equal(t, diag.SeverityError, sink.Diagnostics()[0].Severity)
	assert.Equal(t, diag.CodeImplicitCapabilityUpgradeStrict, sink.Diagnostics()[0].Code)
	assert.Equal(t, 1, sink.ErrorCount())
	assert.Zero(t, countMarkers(m))
}

// A marker in a helper reached by two entry points with different
// profiles: only the unsatisfied entry point is diagnosed, and the
// marker is consumed once.
func TestCheck_SharedHelperMixedProfiles(t *testing.T) {
	m := &ir.Module{Functions: []ir.Function{
		{
			Name:       "vert",
			EntryPoint: entryAttr("vs_6_0"),
			Blocks:     []ir.Block{{Insts: []ir.Instruction{call(2)}}},
		},
		{
			Name:       "comp",
			EntryPoint: entryAttr("cs_6_2"),
			Blocks:     []ir.Block{{Insts: []ir.Instruction{call(2)}}},
		},
		{
			Name: "helper",
			Blocks: []ir.Block{
				{Insts: []ir.Instruction{marker(ir.Span{}, caps.AtomSM6_2)}},
			},
		},
	}}

	sink := diag.NewSink()
	err := CheckRequiredCapabilities(m, Options{Profile: mustProfile("vs_6_0")}, sink)

	require.NoError(t, err)
	diags := sink.Diagnostics()
	require.Len(t, diags, 2, "expected one upgrade diagnostic and one note")
	assert.Contains(t, diags[0].Message, `"vert"`)
	assert.Contains(t, diags[0].Message, "sm_6_2")
	assert.Zero(t, countMarkers(m))
}

// A marker reachable from no entry point is dropped silently.
func TestCheck_OrphanedMarker(t *testing.T) {
	m := &ir.Module{Functions: []ir.Function{
		{
			Name:       "main",
			EntryPoint: entryAttr("vs_6_0"),
			Blocks:     []ir.Block{{Insts: []ir.Instruction{}}},
		},
		{
			Name: "dead",
			Blocks: []ir.Block{
				{Insts: []ir.Instruction{marker(ir.Span{}, caps.AtomExtRayTracing)}},
			},
		},
	}}

	sink := diag.NewSink()
	err := CheckRequiredCapabilities(m, Options{RestrictiveCapabilityCheck: true}, sink)

	require.NoError(t, err)
	assert.Empty(t, sink.Diagnostics())
	assert.Zero(t, countMarkers(m))
}

// An entry point that lost its attribute after attribution-map
// construction is skipped, but the marker is still consumed.
func TestCheck_EntryPointAttributeLost(t *testing.T) {
	m := &ir.Module{Functions: []ir.Function{
		{
			Name:       "main",
			EntryPoint: entryAttr("vs_6_0"),
			Blocks:     []ir.Block{{Insts: []ir.Instruction{call(1)}}},
		},
		{
			Name: "helper",
			Blocks: []ir.Block{
				{Insts: []ir.Instruction{marker(ir.Span{}, caps.AtomExtRayTracing)}},
			},
		},
	}}

	sink := diag.NewSink()
	c := &passContext{
		module:      m,
		opts:        Options{RestrictiveCapabilityCheck: true},
		sink:        sink,
		attribution: callgraph.Build(m),
	}
	// Simulate a pass clearing the attribute after the map was built.
	m.Functions[0].EntryPoint = nil

	for i := range m.Functions {
		c.processFunc(ir.FunctionHandle(i))
	}

	assert.False(t, c.failed)
	assert.Empty(t, sink.Diagnostics())
	assert.Zero(t, countMarkers(m))
}

// The failure flag is sticky: a later satisfied marker must not clear
// it, and scanning continues to the end of the module.
func TestCheck_StickyFailure(t *testing.T) {
	target, ok := caps.TargetBaseline("vulkan1.0")
	require.True(t, ok)

	m := &ir.Module{Functions: []ir.Function{
		{
			Name:       "bad",
			EntryPoint: entryAttr("fs_6_0"),
			Blocks: []ir.Block{
				{Insts: []ir.Instruction{marker(ir.Span{}, caps.AtomExtMeshShading)}},
			},
		},
		{
			Name:       "good",
			EntryPoint: entryAttr("fs_6_0"),
			Blocks: []ir.Block{
				{Insts: []ir.Instruction{marker(ir.Span{}, caps.AtomSPIRV1_0)}},
			},
		},
	}}

	sink := diag.NewSink()
	err := CheckRequiredCapabilities(m, Options{
		Target:                     target,
		TargetName:                 "vulkan1.0",
		Profile:                    mustProfile("fs_6_0"),
		RestrictiveCapabilityCheck: true,
	}, sink)

	require.ErrorIs(t, err, ErrCapabilityCheckFailed)
	// Only the deficient entry point produced diagnostics.
	require.Len(t, sink.Diagnostics(), 2)
	assert.Contains(t, sink.Diagnostics()[0].Message, `"bad"`)
}

// Marker accounting: every marker is consumed in one run, each
// deficient entry-point attribution yields exactly one diagnostic
// pair, and a second run is a no-op.
func TestCheck_MarkerAccountingAndIdempotence(t *testing.T) {
	m := &ir.Module{Functions: []ir.Function{
		{
			Name:       "vert",
			EntryPoint: entryAttr("vs_6_0"),
			Blocks:     []ir.Block{{Insts: []ir.Instruction{call(2)}}},
		},
		{
			Name:       "frag",
			EntryPoint: entryAttr("fs_6_0"),
			Blocks: []ir.Block{
				{Insts: []ir.Instruction{
					call(2),
					marker(ir.Span{}, caps.AtomExtFragmentInterlock),
				}},
			},
		},
		{
			Name: "helper",
			Blocks: []ir.Block{
				{Insts: []ir.Instruction{marker(ir.Span{}, caps.AtomExtRayQuery)}},
				{Insts: []ir.Instruction{marker(ir.Span{}, caps.AtomExtInt64)}},
			},
		},
	}}

	require.Equal(t, 3, countMarkers(m))

	opts := Options{Profile: mustProfile("vs_6_0")}
	sink := diag.NewSink()
	err := CheckRequiredCapabilities(m, opts, sink)
	require.NoError(t, err)

	// helper markers: checked for vert and frag (2 attributions each);
	// frag's own marker: 1 attribution. 5 deficient checks in total,
	// each emitting an upgrade diagnostic and a note.
	assert.Len(t, sink.Diagnostics(), 10)
	assert.Zero(t, countMarkers(m))

	// Second run over the consumed module.
	sink2 := diag.NewSink()
	err = CheckRequiredCapabilities(m, opts, sink2)
	require.NoError(t, err)
	assert.Empty(t, sink2.Diagnostics())
}

// Diagnostics for one marker shared by several entry points come out
// in entry-point handle order.
func TestCheck_DeterministicEntryOrder(t *testing.T) {
	m := &ir.Module{Functions: []ir.Function{
		{
			Name:       "alpha",
			EntryPoint: entryAttr("vs_6_0"),
			Blocks:     []ir.Block{{Insts: []ir.Instruction{call(2)}}},
		},
		{
			Name:       "beta",
			EntryPoint: entryAttr("fs_6_0"),
			Blocks:     []ir.Block{{Insts: []ir.Instruction{call(2)}}},
		},
		{
			Name: "helper",
			Blocks: []ir.Block{
				{Insts: []ir.Instruction{marker(ir.Span{}, caps.AtomExtRayQuery)}},
			},
		},
	}}

	sink := diag.NewSink()
	require.NoError(t, CheckRequiredCapabilities(m, Options{Profile: mustProfile("vs_6_0")}, sink))

	diags := sink.Diagnostics()
	require.Len(t, diags, 4)
	assert.Contains(t, diags[0].Message, `"alpha"`)
	assert.Contains(t, diags[2].Message, `"beta"`)
}

func TestCheck_NilModule(t *testing.T) {
	err := CheckRequiredCapabilities(nil, Options{}, diag.NewSink())
	assert.Error(t, err)
}

func TestCheck_NilSink(t *testing.T) {
	err := CheckRequiredCapabilities(&ir.Module{}, Options{}, nil)
	assert.Error(t, err)
}

func mustProfile(name string) profile.Profile {
	p, err := profile.Parse(name)
	if err != nil {
		panic(err)
	}
	return p
}
