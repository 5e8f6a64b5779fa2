// Package ir defines the lowered intermediate representation consumed
// by late passes.
//
// Unlike a frontend IR, the lowered IR has no structured control flow:
// each function owns a list of basic blocks, each block an ordered
// list of instructions. Specialization and inlining have already run
// by the time a module reaches this form, so instructions include
// deferred capability requirement markers (InstRequireCaps) recorded
// inside whatever function the requirement ended up in.
//
// # Structure
//
//   - Module: all functions, in declaration order
//   - Function: blocks, an optional entry-point attribute, a span
//   - Block: ordered instructions
//   - Instruction: a Kind sum type plus a source span
//
// Objects reference each other by index handles (FunctionHandle);
// functions own their block lists and blocks own their instruction
// lists, so removing an instruction never disturbs module structure.
//
// # Ordering
//
// Module.Functions order is the module's declaration order. Passes
// that emit diagnostics must traverse in this order so output is
// deterministic across runs.
package ir
