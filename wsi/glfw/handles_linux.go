// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build linux

package glfw

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// SurfaceHandles returns the X11 display and window handles.
func (w *Window) SurfaceHandles() (uintptr, uintptr) {
	display := uintptr(unsafe.Pointer(glfw.GetX11Display()))
	window := uintptr(w.win.GetX11Window())
	return display, window
}
