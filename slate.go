// Package slate provides late lowering support for shader compilers:
// a lowered IR, a capability algebra, and the late pass that validates
// every entry point against the capabilities its transitively-inlined
// code requires.
//
// Requirements are discovered by earlier specialization and inlining
// passes and recorded as deferred markers inside ordinary functions;
// only after inlining settles is it known which entry points a
// requirement belongs to. This package resolves those markers in one
// dedicated pass.
//
// Example usage:
//
//	target, _ := caps.TargetBaseline("vulkan1.1")
//	diags, err := slate.CheckCapabilities(module, lower.Options{
//	    Target:     target,
//	    TargetName: "vulkan1.1",
//	    Profile:    prof,
//	})
//	for _, d := range diags {
//	    fmt.Println(d)
//	}
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For lower-level control, use the lower, caps, ir, and callgraph
// packages directly.
package slate

import (
	"github.com/gogpu/slate/diag"
	"github.com/gogpu/slate/ir"
	"github.com/gogpu/slate/lower"
)

// CheckCapabilities runs the late capability requirement pass over
// module and returns every diagnostic it produced.
//
// The returned error is nil unless opts.RestrictiveCapabilityCheck is
// set and some entry point's target lacked a required capability
// combination; diagnostics for the whole module are returned either
// way. The pass consumes all capability requirement markers: running
// it again on the same module is a no-op.
func CheckCapabilities(module *ir.Module, opts lower.Options) ([]diag.Diagnostic, error) {
	sink := diag.NewSink()
	err := lower.CheckRequiredCapabilities(module, opts, sink)
	return sink.Diagnostics(), err
}

// Validate validates a lowered IR module.
//
// Validation checks include:
//   - Reference validity (call handles point to existing functions)
//   - Entry point invariants (compute workgroup sizes are non-zero)
//   - Marker well-formedness (requirement markers carry a non-empty set)
//
// Returns a slice of validation errors. If the slice is empty,
// validation passed.
func Validate(module *ir.Module) ([]ir.ValidationError, error) {
	return ir.Validate(module)
}
