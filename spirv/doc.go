// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package spirv reflects precompiled SPIR-V bytecode into the merged
// per-group description the RHI builds pipeline layouts from.
//
// The package never modifies or generates bytecode. It walks the
// little-endian word stream of each stage, collects the declarations
// that matter for binding (descriptor variables, vertex inputs, push
// constants, specialization constants) and merges the stages of a
// group by (set, binding).
//
// Reflection is deterministic: two reflections of identical bytecode
// produce identical results, with per-set bindings in ascending
// binding order and vertex attributes in ascending location order.
package spirv
