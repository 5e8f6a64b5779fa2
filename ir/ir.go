package ir

import (
	"sort"

	"github.com/gogpu/slate/profile"
)

// Module represents a lowered shader module.
type Module struct {
	// Functions holds all function definitions in declaration order.
	Functions []Function
}

// FunctionHandle references a function by its index in Module.Functions.
type FunctionHandle uint32

// Function returns the function for a handle, or nil if the handle is
// out of range.
func (m *Module) Function(h FunctionHandle) *Function {
	if int(h) >= len(m.Functions) {
		return nil
	}
	return &m.Functions[h]
}

// Function represents a lowered function definition.
type Function struct {
	Name string

	// Blocks holds the function body in declaration order.
	Blocks []Block

	// EntryPoint is non-nil when the function is a shader entry
	// point. Passes may clear it, e.g. after an entry point has been
	// fully specialized away.
	EntryPoint *EntryPointAttr

	// Span locates the function definition for diagnostics.
	Span Span
}

// EntryPointAttr marks a function as a shader entry point.
type EntryPointAttr struct {
	Profile   profile.Profile
	Workgroup [3]uint32 // For compute entry points
}

// Block represents a basic block: an ordered instruction sequence.
type Block struct {
	Insts []Instruction
}

// Span represents a source location for error reporting.
type Span struct {
	// Start is the byte offset of the span start.
	Start uint32

	// End is the byte offset of the span end.
	End uint32
}

// InstPos addresses one instruction within a function by position.
type InstPos struct {
	Block int
	Index int
}

// RemoveInsts deletes the instructions at the given positions. Each
// position must be distinct and valid; later instructions shift down
// but blocks themselves are never removed, so positions collected
// before the call stay meaningful for the functions not yet edited.
func (f *Function) RemoveInsts(positions []InstPos) {
	if len(positions) == 0 {
		return
	}
	sorted := make([]InstPos, len(positions))
	copy(sorted, positions)
	// Descending order so earlier deletions do not shift later ones.
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Block != sorted[j].Block {
			return sorted[i].Block > sorted[j].Block
		}
		return sorted[i].Index > sorted[j].Index
	})
	for _, pos := range sorted {
		insts := f.Blocks[pos.Block].Insts
		f.Blocks[pos.Block].Insts = append(insts[:pos.Index], insts[pos.Index+1:]...)
	}
}
