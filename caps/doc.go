// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package caps implements the capability algebra used by late lowering
// passes to reason about target platform features.
//
// A capability describes one platform feature: an API version tier
// (spirv_1_4, gl_460), a hardware extension (ext_ray_query), or a
// pipeline stage guarantee (fragment). Requirements and target
// baselines are expressed in disjunctive normal form:
//
//   - An AtomSet is a conjunction: every atom in it must be present.
//   - A Set is a disjunction of AtomSets ("alternatives"): the
//     requirement is met when any single alternative is fully present.
//
// For example, a feature available either through a SPIR-V extension
// or natively from SPIR-V 1.4 onward is written as
//
//	caps.NewSet(
//		caps.NewAtomSet(caps.AtomExtSubgroupOps),
//		caps.NewAtomSet(caps.AtomSPIRV1_4),
//	)
//
// All types in this package have value semantics; operations return
// new values and never mutate their operands.
package caps
