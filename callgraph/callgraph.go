// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package callgraph computes which entry points can reach each
// function of a lowered module through direct calls.
package callgraph

import (
	"sort"

	"github.com/gogpu/slate/ir"
)

// AttributionMap maps every function of a module to the entry points
// that can reach it. It is built once, before a pass starts mutating
// the module, and is read-only afterwards; passes that only remove
// instructions (never functions or blocks) can keep consulting it.
type AttributionMap struct {
	reachedBy map[ir.FunctionHandle][]ir.FunctionHandle
}

// Build constructs the attribution map for a module. A function with
// an entry-point attribute reaches itself; indirect calls are not
// resolved, so a function only reachable through indirection is
// attributed to no entry point.
func Build(m *ir.Module) *AttributionMap {
	am := &AttributionMap{
		reachedBy: make(map[ir.FunctionHandle][]ir.FunctionHandle),
	}

	callees := make(map[ir.FunctionHandle][]ir.FunctionHandle)
	for i := range m.Functions {
		h := ir.FunctionHandle(i)
		for _, block := range m.Functions[i].Blocks {
			for _, inst := range block.Insts {
				if call, ok := inst.Kind.(ir.InstCall); ok {
					if int(call.Callee) < len(m.Functions) {
						callees[h] = append(callees[h], call.Callee)
					}
				}
			}
		}
	}

	for i := range m.Functions {
		if m.Functions[i].EntryPoint == nil {
			continue
		}
		am.attribute(ir.FunctionHandle(i), callees)
	}

	// Sorted value slices give passes a deterministic iteration
	// order over the entry points sharing one function.
	for _, entries := range am.reachedBy {
		sort.Slice(entries, func(i, j int) bool { return entries[i] < entries[j] })
	}
	return am
}

// attribute marks every function reachable from entry, entry itself
// included. The visited set bounds traversal under recursion.
func (am *AttributionMap) attribute(entry ir.FunctionHandle, callees map[ir.FunctionHandle][]ir.FunctionHandle) {
	visited := make(map[ir.FunctionHandle]bool)
	worklist := []ir.FunctionHandle{entry}

	for len(worklist) > 0 {
		fn := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if visited[fn] {
			continue
		}
		visited[fn] = true
		am.reachedBy[fn] = append(am.reachedBy[fn], entry)
		worklist = append(worklist, callees[fn]...)
	}
}

// EntryPoints returns the entry points that can reach fn, sorted by
// function handle. The result is empty for unreachable functions.
// The returned slice must not be modified.
func (am *AttributionMap) EntryPoints(fn ir.FunctionHandle) []ir.FunctionHandle {
	return am.reachedBy[fn]
}
