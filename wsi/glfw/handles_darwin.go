// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build darwin

package glfw

// SurfaceHandles returns a zero display handle and the NSWindow
// pointer.
func (w *Window) SurfaceHandles() (uintptr, uintptr) {
	return 0, uintptr(w.win.GetCocoaWindow())
}
