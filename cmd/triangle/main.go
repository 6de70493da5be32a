// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command triangle renders a clear-colored triangle through the full
// stack: GLFW window, Vulkan backend, render graph, frame pacer.
//
// Shader bytecode is loaded from main.vert.spv / main.frag.spv next to
// the binary.
package main

import (
	"errors"
	"log/slog"
	"os"
	"runtime"

	"github.com/gogpu/forge"
	"github.com/gogpu/forge/cmdlist"
	"github.com/gogpu/forge/frame"
	"github.com/gogpu/forge/graph"
	"github.com/gogpu/forge/hal"
	_ "github.com/gogpu/forge/hal/vulkan"
	"github.com/gogpu/forge/types"
	wsiglfw "github.com/gogpu/forge/wsi/glfw"
)

func init() {
	// GLFW event processing must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	hal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := run(); err != nil {
		slog.Error("triangle failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	window, err := wsiglfw.New(wsiglfw.Options{
		Title:     "forge triangle",
		Width:     800,
		Height:    600,
		Resizable: true,
	})
	if err != nil {
		return err
	}
	defer window.Destroy()

	display, native := window.SurfaceHandles()
	sys, err := forge.Initialize(&forge.InitOptions{
		AppName:            "triangle",
		EnableValidation:   os.Getenv("FORGE_VALIDATION") != "",
		InstanceExtensions: window.RequiredInstanceExtensions(),
		DeviceExtensions:   window.RequiredDeviceExtensions(),
		DisplayHandle:      display,
		WindowHandle:       native,
	})
	if err != nil {
		return err
	}
	dev := sys.Device
	defer dev.Teardown()

	extent := window.Extent()
	pacer, err := frame.NewContext(dev.HAL(), dev.Queue(), sys.Adapter, sys.Surface,
		extent, frame.Options{VSync: true})
	if err != nil {
		return err
	}
	defer pacer.Destroy()

	var fs forge.OSFileSystem
	vert, err := fs.LoadSpirv("main.vert.spv")
	if err != nil {
		return err
	}
	frag, err := fs.LoadSpirv("main.frag.spv")
	if err != nil {
		return err
	}
	shaderHandle, err := dev.CreateShader(types.ShaderGroupSpec{
		Stages: map[types.ShaderStage]types.StageSpirv{
			types.StageVertex:   {Code: vert, Entry: "main"},
			types.StageFragment: {Code: frag, Entry: "main"},
		},
	})
	if err != nil {
		return err
	}
	shader, err := dev.Shader(shaderHandle)
	if err != nil {
		return err
	}

	g := graph.New(dev.HAL(), dev.Cache())
	g.SetBackBufferSize(extent.Width, extent.Height)

	list := cmdlist.New()
	pass := g.AddPass("triangle", graph.QueueGraphics)
	pass.WriteColorImage("backbuffer", graph.RelativeImage(types.FormatRGBA8UnormSrgb, 1))
	pass.UseShader(shader)
	pass.OnExecute(func(ctx hal.CommandContext) {
		size := pacer.SwapchainExtent()
		list.Reset()
		list.SetViewport(types.Rect2D{Width: size.Width, Height: size.Height})
		list.SetScissor(types.Rect2D{Width: size.Width, Height: size.Height})
		list.Draw(3, 1, 0, 0)
		list.Replay(ctx)
	})
	g.SetBackBuffer("backbuffer")

	if err := g.Compile(); err != nil {
		return err
	}

	var pendingResize *types.Extent2D
	window.OnResize(func(width, height uint32) {
		pendingResize = &types.Extent2D{Width: width, Height: height}
	})

	for !window.ShouldClose() {
		window.PollEvents()

		if pendingResize != nil {
			if err := pacer.RecreateSwapchain(pendingResize.Width, pendingResize.Height); err != nil {
				return err
			}
			g.SetBackBufferSize(pendingResize.Width, pendingResize.Height)
			if err := g.Compile(); err != nil {
				return err
			}
			pendingResize = nil
		}

		cmd, err := pacer.StartFrame()
		if err != nil {
			if errors.Is(err, hal.ErrOutOfDate) || errors.Is(err, hal.ErrSurfaceLost) {
				size := window.Extent()
				pendingResize = &size
				continue
			}
			return err
		}

		if err := g.Execute(cmd, pacer.ActiveFrame().SwapchainImage()); err != nil {
			return err
		}

		if err := pacer.EndFrame(); err != nil {
			if errors.Is(err, hal.ErrOutOfDate) || errors.Is(err, hal.ErrSuboptimal) {
				size := window.Extent()
				pendingResize = &size
				continue
			}
			return err
		}
	}

	return dev.WaitIdle()
}
