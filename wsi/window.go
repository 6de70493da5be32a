// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package wsi defines the window-system collaborator interface. The
// core only consumes what is declared here: opaque surface handles,
// the extension lists a backend needs, and resize notifications in
// framebuffer pixels. Input and event pumping stay with the embedder.
package wsi

import (
	"github.com/gogpu/forge/types"
)

// ResizeFunc receives the new framebuffer extent in pixels.
type ResizeFunc func(width, height uint32)

// Window is the surface provider the core renders into.
type Window interface {
	// Extent returns the current framebuffer extent in pixels.
	Extent() types.Extent2D

	// SurfaceHandles returns the platform display and window handles
	// used by Instance.CreateSurface. Both are opaque to the core.
	SurfaceHandles() (display, window uintptr)

	// RequiredInstanceExtensions lists the instance extensions the
	// backend must enable to present to this window.
	RequiredInstanceExtensions() []string

	// RequiredDeviceExtensions lists the device extensions the
	// backend must enable to present to this window.
	RequiredDeviceExtensions() []string

	// OnResize registers fn to be called when the framebuffer size
	// changes.
	OnResize(fn ResizeFunc)

	// ShouldClose reports whether the user asked the window to close.
	ShouldClose() bool

	// PollEvents pumps the platform event queue.
	PollEvents()
}
