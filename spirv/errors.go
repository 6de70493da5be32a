// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"errors"
	"fmt"

	"github.com/gogpu/forge/types"
)

// ErrNotSpirv is returned for byte streams without the SPIR-V magic
// number or with a truncated instruction stream.
var ErrNotSpirv = errors.New("spirv: not a SPIR-V module")

// ErrUnsupportedDescriptor is returned for descriptor kinds the core
// rejects at reflection time: runtime (dynamically indexed) descriptor
// arrays and acceleration structures. Dynamic-offset buffers are not
// detected; uniform and storage blocks are reported as plain buffers.
var ErrUnsupportedDescriptor = errors.New("spirv: unsupported descriptor kind")

// ReflectError reports a reflection failure with the offending stage,
// set and binding identified.
type ReflectError struct {
	Stage   types.ShaderStage
	Set     uint32
	Binding uint32
	Name    string
	Message string

	// Have and Want carry the two observed resource types for merge
	// conflicts.
	Have types.ShaderResourceType
	Want types.ShaderResourceType

	Wrapped error
}

// Error implements the error interface.
func (e *ReflectError) Error() string {
	if e.Wrapped != nil && e.Message == "" {
		return fmt.Sprintf("spirv: stage %s: %v", e.Stage, e.Wrapped)
	}
	if e.Name != "" {
		return fmt.Sprintf("spirv: stage %s: %s (set=%d, binding=%d, name=%q)",
			e.Stage, e.Message, e.Set, e.Binding, e.Name)
	}
	return fmt.Sprintf("spirv: stage %s: %s", e.Stage, e.Message)
}

// Unwrap returns the underlying sentinel, if any.
func (e *ReflectError) Unwrap() error {
	return e.Wrapped
}
