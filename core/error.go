package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHandle is returned for the zero handle.
	ErrInvalidHandle = errors.New("invalid handle")

	// ErrHandleNotFound is returned when no object exists at the
	// handle's slot.
	ErrHandleNotFound = errors.New("handle does not name a live object")

	// ErrGenerationMismatch is returned when the handle's slot has
	// been recycled: the object it named was destroyed. Use-after-free
	// and double destruction both surface as this error.
	ErrGenerationMismatch = errors.New("generation mismatch: object was destroyed")
)

// HandleError wraps a handle lookup failure with the raw handle for
// diagnostics.
type HandleError struct {
	Handle  RawHandle
	Op      string
	Wrapped error
}

// Error implements the error interface.
func (e *HandleError) Error() string {
	index, gen := e.Handle.Unpack()
	return fmt.Sprintf("%s: handle(%d,%d): %v", e.Op, index, gen, e.Wrapped)
}

// Unwrap returns the underlying sentinel.
func (e *HandleError) Unwrap() error {
	return e.Wrapped
}
