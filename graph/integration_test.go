package graph

import (
	"testing"

	"github.com/gogpu/forge/cache"
	"github.com/gogpu/forge/cmdlist"
	"github.com/gogpu/forge/frame"
	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/hal/noop"
	"github.com/gogpu/forge/internal/spvtest"
	"github.com/gogpu/forge/spirv"
	"github.com/gogpu/forge/types"
)

// TestHelloTriangle drives the full per-frame path on the noop
// backend: one pass clearing and drawing into the back buffer, blitted
// to the swapchain and presented, sixty times.
func TestHelloTriangle(t *testing.T) {
	instance, err := noop.API{}.CreateInstance(&hal.InstanceDescriptor{AppName: "triangle"})
	if err != nil {
		t.Fatalf("instance creation failed: %v", err)
	}
	surface, err := instance.CreateSurface(0, 0)
	if err != nil {
		t.Fatalf("surface creation failed: %v", err)
	}
	adapter := instance.EnumerateAdapters(surface)[0]
	opened, err := adapter.Adapter.Open(&hal.DeviceDescriptor{})
	if err != nil {
		t.Fatalf("device open failed: %v", err)
	}
	dev := opened.Device.(*noop.Device)

	pacer, err := frame.NewContext(opened.Device, opened.Queue, adapter.Adapter, surface,
		types.Extent2D{Width: 800, Height: 600}, frame.Options{VSync: true})
	if err != nil {
		t.Fatalf("pacer creation failed: %v", err)
	}

	shaderSpec := types.ShaderGroupSpec{Stages: map[types.ShaderStage]types.StageSpirv{
		types.StageVertex:   {Code: spvtest.VertexPassthrough(), Entry: "main"},
		types.StageFragment: {Code: spvtest.FragmentConstant(), Entry: "main"},
	}}
	info, err := spirv.ReflectGroup(&shaderSpec)
	if err != nil {
		t.Fatalf("reflection failed: %v", err)
	}
	shader, err := opened.Device.CreateShader(&shaderSpec, info)
	if err != nil {
		t.Fatalf("shader creation failed: %v", err)
	}

	g := New(opened.Device, cache.New(opened.Device))
	g.SetBackBufferSize(800, 600)

	list := cmdlist.New()
	pass := g.AddPass("triangle", QueueGraphics)
	pass.WriteColorImage("backbuffer", RelativeImage(types.FormatRGBA8UnormSrgb, 1))
	pass.UseShader(shader)
	pass.OnExecute(func(ctx hal.CommandContext) {
		list.Reset()
		list.SetViewport(types.Rect2D{Width: 800, Height: 600})
		list.SetScissor(types.Rect2D{Width: 800, Height: 600})
		list.Draw(3, 1, 0, 0)
		list.Replay(ctx)
	})
	g.SetBackBuffer("backbuffer")

	if err := g.Compile(); err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	const frames = 60
	for i := 0; i < frames; i++ {
		cmd, err := pacer.StartFrame()
		if err != nil {
			t.Fatalf("frame %d: StartFrame failed: %v", i, err)
		}
		if err := g.Execute(cmd, pacer.ActiveFrame().SwapchainImage()); err != nil {
			t.Fatalf("frame %d: execute failed: %v", i, err)
		}
		if err := pacer.EndFrame(); err != nil {
			t.Fatalf("frame %d: EndFrame failed: %v", i, err)
		}
	}

	if n := dev.Counters.Presents.Load(); n != frames {
		t.Errorf("presents = %d, want %d", n, frames)
	}
	if n := dev.Counters.Draws.Load(); n != frames {
		t.Errorf("draws = %d, want %d", n, frames)
	}
	if n := dev.Counters.Blits.Load(); n != frames {
		t.Errorf("blits = %d, want %d", n, frames)
	}
}
