// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

import (
	"errors"
	"fmt"
)

// Compile failure kinds. All of them are fatal for the current frame:
// a failed Compile prevents Execute from running.
var (
	// ErrMissingBackBuffer: no resource carries the back-buffer tag.
	ErrMissingBackBuffer = errors.New("graph: back buffer resource does not exist")

	// ErrNoBackBufferWriter: no pass writes the back buffer.
	ErrNoBackBufferWriter = errors.New("graph: no pass writes to the back buffer")

	// ErrCycle: the pass dependency set is cyclic.
	ErrCycle = errors.New("graph: cycle detected in render graph")

	// ErrWriteAfterWrite: one pass declared two writes to the same
	// resource.
	ErrWriteAfterWrite = errors.New("graph: write-after-write within a single pass")

	// ErrUnknownResource: a pass reads a resource no pass declared.
	ErrUnknownResource = errors.New("graph: read of undeclared resource")

	// ErrUncompiled: Execute was called before a successful Compile.
	ErrUncompiled = errors.New("graph: execute before successful compile")
)

// CompileError wraps a compile failure with the pass and resource that
// triggered it.
type CompileError struct {
	Pass     string
	Resource string
	Wrapped  error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	switch {
	case e.Pass != "" && e.Resource != "":
		return fmt.Sprintf("%v (pass %q, resource %q)", e.Wrapped, e.Pass, e.Resource)
	case e.Pass != "":
		return fmt.Sprintf("%v (pass %q)", e.Wrapped, e.Pass)
	case e.Resource != "":
		return fmt.Sprintf("%v (resource %q)", e.Wrapped, e.Resource)
	}
	return e.Wrapped.Error()
}

// Unwrap returns the underlying sentinel.
func (e *CompileError) Unwrap() error {
	return e.Wrapped
}
