// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package glfw

import "unsafe"

// SurfaceHandles returns a zero display handle and the Win32 HWND.
func (w *Window) SurfaceHandles() (uintptr, uintptr) {
	return 0, uintptr(unsafe.Pointer(w.win.GetWin32Window()))
}
