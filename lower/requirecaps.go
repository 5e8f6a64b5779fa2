// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package lower implements late lowering passes that run after
// specialization and inlining.
//
// The capability requirement check is the only pass here today: it
// resolves the deferred InstRequireCaps markers that earlier passes
// recorded inside ordinary functions, attributes each marker to the
// entry points that can reach it, and verifies the target platform
// grants every capability combination those entry points end up
// needing.
package lower

import (
	"errors"
	"fmt"

	"github.com/phuslu/log"

	"github.com/gogpu/slate/callgraph"
	"github.com/gogpu/slate/caps"
	"github.com/gogpu/slate/diag"
	"github.com/gogpu/slate/ir"
	"github.com/gogpu/slate/profile"
)

// ErrCapabilityCheckFailed is returned when restrictive capability
// checking found at least one entry point whose target lacks a
// required capability combination.
var ErrCapabilityCheckFailed = errors.New("required capabilities not available on target")

// Options configures the capability requirement check.
type Options struct {
	// Target is the declared capability baseline of the compilation
	// target, before any stage baseline is folded in.
	Target caps.Set

	// TargetName names the target in diagnostics, e.g. "vulkan1.1".
	TargetName string

	// Profile is the profile the user configured for the compile; its
	// name appears in upgrade diagnostics. Per-entry-point stage
	// baselines come from each entry point's own attribute, not from
	// this field.
	Profile profile.Profile

	// RestrictiveCapabilityCheck turns capability deficiencies from
	// advisory warnings into errors and makes the pass report failure.
	RestrictiveCapabilityCheck bool

	// Trace, when non-nil, receives a structured record of every
	// capability decision. Meant for compiler developers; defaults off.
	Trace *log.Logger
}

// DefaultOptions returns options for a permissive vulkan1.0 check.
func DefaultOptions() Options {
	target, _ := caps.TargetBaseline("vulkan1.0")
	return Options{
		Target:     target,
		TargetName: "vulkan1.0",
	}
}

// CheckRequiredCapabilities runs the late capability requirement pass
// over module.
//
// The pass visits functions in declaration order, consumes every
// InstRequireCaps marker exactly once, and checks each marker against
// every entry point that can reach its function. All deficiencies in
// the module are diagnosed in a single run; the pass never stops at
// the first failure. It returns nil on success and
// ErrCapabilityCheckFailed when restrictive mode recorded a failure.
//
// Markers reachable from no entry point are consumed silently: with no
// stage to evaluate against there is nothing to check.
func CheckRequiredCapabilities(module *ir.Module, opts Options, sink *diag.Sink) error {
	if module == nil {
		return fmt.Errorf("module is nil")
	}
	if sink == nil {
		return fmt.Errorf("sink is nil")
	}

	c := &passContext{
		module:      module,
		opts:        opts,
		sink:        sink,
		attribution: callgraph.Build(module),
	}

	for i := range module.Functions {
		c.processFunc(ir.FunctionHandle(i))
	}

	if c.failed {
		return ErrCapabilityCheckFailed
	}
	return nil
}

// passContext carries the state of one pass run.
type passContext struct {
	module      *ir.Module
	opts        Options
	sink        *diag.Sink
	attribution *callgraph.AttributionMap

	// failed is sticky: once a restrictive-mode deficiency sets it,
	// later satisfied checks never clear it.
	failed bool
}

// processFunc scans one function for requirement markers, checks each
// against the attributed entry points, then removes all markers found.
func (c *passContext) processFunc(h ir.FunctionHandle) {
	fn := &c.module.Functions[h]

	var toRemove []ir.InstPos

	for bi := range fn.Blocks {
		for ii := range fn.Blocks[bi].Insts {
			inst := &fn.Blocks[bi].Insts[ii]
			req, ok := inst.Kind.(ir.InstRequireCaps)
			if !ok {
				continue
			}
			toRemove = append(toRemove, ir.InstPos{Block: bi, Index: ii})

			entryPoints := c.attribution.EntryPoints(h)
			if len(entryPoints) == 0 {
				c.trace().Str("function", fn.Name).
					Str("required", req.Caps.String()).
					Msg("dropping capability requirement with no reaching entry point")
				continue
			}

			for _, eh := range entryPoints {
				entry := c.module.Function(eh)
				// The attribute may have been cleared since the
				// attribution map was built.
				if entry == nil || entry.EntryPoint == nil {
					continue
				}
				c.checkCapability(entry, entry.EntryPoint.Profile, req.Caps, inst.Span)
			}
		}
	}

	fn.RemoveInsts(toRemove)
}

// checkCapability decides whether entry, running under prof, is
// satisfied by the target and diagnoses the deficiency when not.
func (c *passContext) checkCapability(entry *ir.Function, prof profile.Profile, required caps.Set, markerSpan ir.Span) {
	stageCaps := prof.StageBaseline()
	effective := c.opts.Target.Join(stageCaps)

	c.trace().Str("entry", entry.Name).
		Str("target", c.opts.TargetName).
		Str("effective", effective.String()).
		Str("required", required.String()).
		Msg("capability check")

	if effective.ImpliesAny(required) == caps.Implied {
		return
	}

	// Fold the same stage baseline into the required side so the
	// diff below compares like against like.
	displayRequired := required.Join(stageCaps)
	missing := displayRequired.PrimaryAlternative().Subtract(effective.PrimaryAlternative())

	sev := diag.SeverityWarning
	code := diag.CodeImplicitCapabilityUpgrade
	if c.opts.RestrictiveCapabilityCheck {
		sev = diag.SeverityError
		code = diag.CodeImplicitCapabilityUpgradeStrict
	}

	c.sink.Report(sev, code, entry.Span,
		"entry point %q needs capabilities not declared by profile %q: %s",
		entry.Name, c.opts.Profile.Name(), missing)
	c.sink.Report(diag.SeverityNote, diag.CodeSeeRequirementSite, markerSpan,
		"capability requirement was introduced by a call made here")

	if c.opts.RestrictiveCapabilityCheck {
		c.failed = true
	}
}

// trace returns a debug log entry, or a no-op entry when tracing is off.
func (c *passContext) trace() *log.Entry {
	if c.opts.Trace == nil {
		return nil
	}
	return c.opts.Trace.Debug()
}
