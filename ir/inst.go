package ir

import "github.com/gogpu/slate/caps"

// Instruction represents an instruction in a basic block.
type Instruction struct {
	Kind InstKind
	Span Span
}

// InstKind represents the different kinds of instructions.
type InstKind interface {
	instKind()
}

// InstOp is an ordinary lowered operation. Late passes treat these as
// opaque; only the opcode is retained.
type InstOp struct {
	Op Opcode
}

func (InstOp) instKind() {}

// Opcode identifies an ordinary operation.
type Opcode uint8

const (
	OpNop Opcode = iota
	OpLoad
	OpStore
	OpArith
	OpBarrier
	OpReturn
)

// String returns a lowercase opcode name.
func (o Opcode) String() string {
	switch o {
	case OpNop:
		return "nop"
	case OpLoad:
		return "load"
	case OpStore:
		return "store"
	case OpArith:
		return "arith"
	case OpBarrier:
		return "barrier"
	case OpReturn:
		return "return"
	default:
		return "unknown"
	}
}

// InstCall is a direct call to another function in the module.
type InstCall struct {
	Callee FunctionHandle
}

func (InstCall) instKind() {}

// InstRequireCaps is a deferred capability requirement marker. An
// earlier pass records one when inlined or specialized code turns out
// to need platform capabilities; the late capability check consumes
// every marker exactly once and no marker survives it.
type InstRequireCaps struct {
	Caps caps.Set
}

func (InstRequireCaps) instKind() {}
