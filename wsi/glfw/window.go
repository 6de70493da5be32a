// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glfw provides a GLFW-backed wsi.Window.
package glfw

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/forge/types"
	"github.com/gogpu/forge/wsi"
)

// Window wraps a GLFW window as a wsi.Window.
type Window struct {
	win      *glfw.Window
	onResize wsi.ResizeFunc
}

// Options configures window creation.
type Options struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
}

// New initializes GLFW (once per process, callers pair with Terminate)
// and opens a window without a client API, as explicit-API rendering
// requires.
func New(opts Options) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw: init failed: %w", err)
	}
	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw: no Vulkan loader available")
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	if opts.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw: create window failed: %w", err)
	}

	w := &Window{win: win}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if w.onResize != nil {
			w.onResize(uint32(width), uint32(height))
		}
	})
	return w, nil
}

// Extent returns the framebuffer extent in pixels.
func (w *Window) Extent() types.Extent2D {
	width, height := w.win.GetFramebufferSize()
	return types.Extent2D{Width: uint32(width), Height: uint32(height)}
}

// RequiredInstanceExtensions returns the instance extensions GLFW
// needs for surface creation on this platform.
func (w *Window) RequiredInstanceExtensions() []string {
	return w.win.GetRequiredInstanceExtensions()
}

// RequiredDeviceExtensions returns the swapchain extension.
func (w *Window) RequiredDeviceExtensions() []string {
	return []string{"VK_KHR_swapchain"}
}

// OnResize registers the resize callback.
func (w *Window) OnResize(fn wsi.ResizeFunc) {
	w.onResize = fn
}

// ShouldClose reports whether the close flag is set.
func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

// PollEvents pumps the GLFW event queue.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// Destroy closes the window and terminates GLFW.
func (w *Window) Destroy() {
	w.win.Destroy()
	glfw.Terminate()
}
