package graph

import (
	"errors"
	"testing"

	"github.com/gogpu/forge/cache"
	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/hal/noop"
	"github.com/gogpu/forge/internal/spvtest"
	"github.com/gogpu/forge/spirv"
	"github.com/gogpu/forge/types"
)

func testGraph(t *testing.T) (*noop.Device, *Graph) {
	t.Helper()
	dev := &noop.Device{}
	g := New(dev, cache.New(dev))
	g.SetBackBufferSize(1920, 1080)
	return dev, g
}

func frameObjects(t *testing.T, dev *noop.Device) (hal.CommandBuffer, hal.Texture) {
	t.Helper()
	pool, err := dev.CreateCommandPool(0)
	if err != nil {
		t.Fatalf("pool creation failed: %v", err)
	}
	cmd, err := pool.Request(hal.CommandBufferPrimary)
	if err != nil {
		t.Fatalf("command buffer request failed: %v", err)
	}
	if err := cmd.Begin(true); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	swapImage, err := dev.CreateTexture(&types.TextureSpec{
		Format:  types.FormatBGRA8UnormSrgb,
		Extent:  types.Extent3D{Width: 1920, Height: 1080, Depth: 1},
		Samples: types.Samples1,
		Usage:   types.TextureUsageTransferDst,
	})
	if err != nil {
		t.Fatalf("swapchain image creation failed: %v", err)
	}
	return cmd, swapImage
}

// buildGBufferGraph declares the two-pass G-buffer + lighting topology
// from the seed scenario.
func buildGBufferGraph(t *testing.T, g *Graph) (gbuffer, lighting *Pass) {
	t.Helper()

	gbuffer = g.AddPass("gbuffer", QueueGraphics)
	gbuffer.WriteColorImage("gbuf_albedo", RelativeImage(types.FormatRGBA8UnormSrgb, 1))
	gbuffer.WriteColorImage("gbuf_normal", RelativeImage(types.FormatRGB10A2Unorm, 1))
	gbuffer.WriteDepthStencilImage("gbuf_depth", RelativeImage(types.FormatDepth32Float, 1))
	gbuffer.OnExecute(func(ctx hal.CommandContext) {
		ctx.Draw(3, 1, 0, 0)
	})

	lighting = g.AddPass("lighting", QueueGraphics)
	lighting.WriteColorImage("backbuffer", RelativeImage(types.FormatRGBA8UnormSrgb, 1))
	lighting.ReadImage("gbuf_albedo", types.TextureUsageSampled)
	lighting.ReadImage("gbuf_normal", types.TextureUsageSampled)
	lighting.ReadImage("gbuf_depth", types.TextureUsageSampled)
	lighting.OnExecute(func(ctx hal.CommandContext) {
		ctx.Draw(3, 1, 0, 0)
	})

	g.SetBackBuffer("backbuffer")
	return gbuffer, lighting
}

func TestCompileOrdersPassesByDependency(t *testing.T) {
	_, g := testGraph(t)
	buildGBufferGraph(t, g)

	if err := g.Compile(); err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	order := g.PassOrder()
	if len(order) != 2 || order[0] != "gbuffer" || order[1] != "lighting" {
		t.Fatalf("pass order = %v, want [gbuffer lighting]", order)
	}
}

func TestCompileIsIdempotent(t *testing.T) {
	_, g := testGraph(t)
	buildGBufferGraph(t, g)

	if err := g.Compile(); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	firstOrder := g.PassOrder()
	firstAlbedo, _ := g.PhysicalImage("gbuf_albedo")

	if err := g.Compile(); err != nil {
		t.Fatalf("second compile failed: %v", err)
	}
	secondOrder := g.PassOrder()
	secondAlbedo, _ := g.PhysicalImage("gbuf_albedo")

	if len(firstOrder) != len(secondOrder) {
		t.Fatalf("orders differ: %v vs %v", firstOrder, secondOrder)
	}
	for i := range firstOrder {
		if firstOrder[i] != secondOrder[i] {
			t.Errorf("order[%d] = %q vs %q", i, firstOrder[i], secondOrder[i])
		}
	}
	if firstAlbedo != secondAlbedo {
		t.Error("idempotent compile rebuilt physical resources")
	}
}

func TestPhysicalResourcesSizedByTotalUsage(t *testing.T) {
	_, g := testGraph(t)
	buildGBufferGraph(t, g)
	if err := g.Compile(); err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	albedo, ok := g.PhysicalImage("gbuf_albedo")
	if !ok {
		t.Fatal("no physical image for gbuf_albedo")
	}
	spec := albedo.Spec()
	if spec.Extent.Width != 1920 || spec.Extent.Height != 1080 {
		t.Errorf("extent = %dx%d", spec.Extent.Width, spec.Extent.Height)
	}
	// Written as color attachment, read sampled.
	want := types.TextureUsageColorAttachment | types.TextureUsageSampled
	if !spec.Usage.Contains(want) {
		t.Errorf("usage = %b, want at least %b", spec.Usage, want)
	}

	back, _ := g.PhysicalImage("backbuffer")
	if !back.Spec().Usage.Contains(types.TextureUsageTransferSrc) {
		t.Error("back buffer missing transfer-src usage for the present blit")
	}
}

func TestExecuteEmitsBarriersDrawsAndBlit(t *testing.T) {
	dev, g := testGraph(t)
	buildGBufferGraph(t, g)
	if err := g.Compile(); err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	cmd, swapImage := frameObjects(t, dev)
	dev.TakeOps()
	if err := g.Execute(cmd, swapImage); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if n := dev.Counters.Draws.Load(); n != 2 {
		t.Errorf("draw count = %d, want 2", n)
	}
	if n := dev.Counters.Dispatches.Load(); n != 0 {
		t.Errorf("dispatch count = %d, want 0", n)
	}
	if n := dev.Counters.Blits.Load(); n != 1 {
		t.Errorf("blit count = %d, want 1", n)
	}

	// The structural sequence: seed barrier, then per pass a barrier
	// and its rendering scope, then the present blit.
	ops := dev.TakeOps()
	want := []string{
		"barrier",         // first-use seeding
		"barrier",         // gbuffer transitions
		"begin-rendering", // gbuffer
		"draw",
		"end-rendering",
		"barrier",         // lighting transitions (g-buffer -> sampled)
		"begin-rendering", // lighting
		"draw",
		"end-rendering",
		"blit",    // back buffer -> swapchain
		"barrier", // ring-closing back-buffer transition
	}
	if len(ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("op[%d] = %q, want %q", i, ops[i], want[i])
		}
	}
}

func TestLayoutsCloseTheRingAcrossFrames(t *testing.T) {
	dev, g := testGraph(t)
	buildGBufferGraph(t, g)
	if err := g.Compile(); err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	endOfFrameLayouts := func() map[string]types.TextureLayout {
		out := make(map[string]types.TextureLayout)
		for _, tag := range []string{"gbuf_albedo", "gbuf_normal", "gbuf_depth", "backbuffer"} {
			img, _ := g.PhysicalImage(tag)
			out[tag] = img.(*noop.Texture).Layout()
		}
		return out
	}

	cmd, swapImage := frameObjects(t, dev)
	if err := g.Execute(cmd, swapImage); err != nil {
		t.Fatalf("frame 1 failed: %v", err)
	}
	first := endOfFrameLayouts()

	if err := g.Execute(cmd, swapImage); err != nil {
		t.Fatalf("frame 2 failed: %v", err)
	}
	second := endOfFrameLayouts()

	for tag, layout := range first {
		if second[tag] != layout {
			t.Errorf("%s: end-of-frame layout drifted: %v -> %v", tag, layout, second[tag])
		}
	}

	// The g-buffer ends each frame shader-readable (last use: sampled
	// by the lighting pass).
	if first["gbuf_albedo"] != types.LayoutShaderReadOnly {
		t.Errorf("gbuf_albedo end layout = %v", first["gbuf_albedo"])
	}
}

func TestCompileRequiresBackBuffer(t *testing.T) {
	_, g := testGraph(t)
	p := g.AddPass("draw", QueueGraphics)
	p.WriteColorImage("target", RelativeImage(types.FormatRGBA8UnormSrgb, 1))
	g.SetBackBuffer("missing")

	err := g.Compile()
	if !errors.Is(err, ErrMissingBackBuffer) {
		t.Fatalf("err = %v, want ErrMissingBackBuffer", err)
	}
}

func TestCompileRequiresBackBufferWriter(t *testing.T) {
	_, g := testGraph(t)
	p := g.AddPass("draw", QueueGraphics)
	p.WriteColorImage("target", RelativeImage(types.FormatRGBA8UnormSrgb, 1))
	p.ReadImage("target", types.TextureUsageSampled)
	g.SetBackBuffer("target")

	// Overwrite the writer list to simulate an orphaned back buffer.
	res, _ := g.lookupResource("target")
	res.writtenIn = nil

	err := g.Compile()
	if !errors.Is(err, ErrNoBackBufferWriter) {
		t.Fatalf("err = %v, want ErrNoBackBufferWriter", err)
	}
}

func TestWriteAfterWriteWithinPassFails(t *testing.T) {
	_, g := testGraph(t)
	p := g.AddPass("broken", QueueGraphics)
	p.WriteColorImage("target", RelativeImage(types.FormatRGBA8UnormSrgb, 1))
	p.WriteColorImage("target", RelativeImage(types.FormatRGBA8UnormSrgb, 1))
	g.SetBackBuffer("target")

	err := g.Compile()
	if !errors.Is(err, ErrWriteAfterWrite) {
		t.Fatalf("err = %v, want ErrWriteAfterWrite", err)
	}
}

func TestCycleDetection(t *testing.T) {
	_, g := testGraph(t)

	a := g.AddPass("a", QueueGraphics)
	a.WriteColorImage("backbuffer", RelativeImage(types.FormatRGBA8UnormSrgb, 1))

	b := g.AddPass("b", QueueGraphics)
	b.WriteColorImage("rb", RelativeImage(types.FormatRGBA8UnormSrgb, 1))

	c := g.AddPass("c", QueueGraphics)
	c.WriteColorImage("ra", RelativeImage(types.FormatRGBA8UnormSrgb, 1))

	// a <- b <-> c
	a.ReadImage("rb", types.TextureUsageSampled)
	b.ReadImage("ra", types.TextureUsageSampled)
	c.ReadImage("rb", types.TextureUsageSampled)

	g.SetBackBuffer("backbuffer")

	err := g.Compile()
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("err = %v, want ErrCycle", err)
	}
}

func TestReadOfUndeclaredResourceFails(t *testing.T) {
	_, g := testGraph(t)
	p := g.AddPass("draw", QueueGraphics)
	p.WriteColorImage("backbuffer", RelativeImage(types.FormatRGBA8UnormSrgb, 1))
	p.ReadImage("nonexistent", types.TextureUsageSampled)
	g.SetBackBuffer("backbuffer")

	err := g.Compile()
	if !errors.Is(err, ErrUnknownResource) {
		t.Fatalf("err = %v, want ErrUnknownResource", err)
	}
}

func TestExecuteBeforeCompileFails(t *testing.T) {
	dev, g := testGraph(t)
	cmd, swapImage := frameObjects(t, dev)
	if err := g.Execute(cmd, swapImage); !errors.Is(err, ErrUncompiled) {
		t.Fatalf("err = %v, want ErrUncompiled", err)
	}
}

func lightingShader(t *testing.T, dev hal.Device) hal.Shader {
	t.Helper()
	spec := types.ShaderGroupSpec{Stages: map[types.ShaderStage]types.StageSpirv{
		types.StageVertex:   {Code: spvtest.StageWithUniform("CameraData", 0, 1, 64), Entry: "main"},
		types.StageFragment: {Code: spvtest.FragmentSampled("albedoTex", 0, 0), Entry: "main"},
	}}
	info, err := spirv.ReflectGroup(&spec)
	if err != nil {
		t.Fatalf("reflection failed: %v", err)
	}
	shader, err := dev.CreateShader(&spec, info)
	if err != nil {
		t.Fatalf("shader creation failed: %v", err)
	}
	return shader
}

func TestDescriptorSetsWrittenExactlyOnce(t *testing.T) {
	dev, g := testGraph(t)
	gbuffer, lighting := buildGBufferGraph(t, g)
	_ = gbuffer

	shader := lightingShader(t, dev)
	sampler, err := dev.CreateSampler(&types.SamplerSpec{})
	if err != nil {
		t.Fatalf("sampler creation failed: %v", err)
	}
	camera, err := dev.CreateBuffer(&types.BufferSpec{Size: 64, Usage: types.BufferUsageUniform})
	if err != nil {
		t.Fatalf("camera buffer creation failed: %v", err)
	}

	lighting.UseShader(shader)
	lighting.BindSampler("gbuf_albedo", sampler)
	lighting.BindResource("gbuf_albedo", "albedoTex")
	lighting.ReadExternalBuffer("camera", camera)
	lighting.BindResource("camera", "CameraData")

	if err := g.Compile(); err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	cmd, swapImage := frameObjects(t, dev)
	for frame := 0; frame < 120; frame++ {
		if err := g.Execute(cmd, swapImage); err != nil {
			t.Fatalf("frame %d failed: %v", frame, err)
		}
	}

	// One WriteDescriptorSet per binding, on the first execute only.
	if n := dev.Counters.DescriptorWrites.Load(); n != 2 {
		t.Errorf("descriptor writes = %d, want 2", n)
	}

	// Explicit invalidation forces exactly one rewrite.
	lighting.InvalidateBindings()
	if err := g.Execute(cmd, swapImage); err != nil {
		t.Fatalf("post-invalidate frame failed: %v", err)
	}
	if n := dev.Counters.DescriptorWrites.Load(); n != 4 {
		t.Errorf("descriptor writes after invalidate = %d, want 4", n)
	}
}

func TestExternalImagesBindPerView(t *testing.T) {
	dev, g := testGraph(t)
	_, lighting := buildGBufferGraph(t, g)

	shader := lightingShader(t, dev)
	sampler, _ := dev.CreateSampler(&types.SamplerSpec{})
	external, err := dev.CreateTexture(&types.TextureSpec{
		Format:  types.FormatRGBA8Unorm,
		Extent:  types.Extent3D{Width: 256, Height: 256, Depth: 1},
		Samples: types.Samples1,
		Usage:   types.TextureUsageSampled,
	})
	if err != nil {
		t.Fatalf("external texture creation failed: %v", err)
	}

	lighting.UseShader(shader)
	lighting.ReadExternalImage("env", external)
	lighting.BindSampler("env", sampler)
	lighting.BindResource("env", "albedoTex")

	if err := g.Compile(); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	cmd, swapImage := frameObjects(t, dev)
	if err := g.Execute(cmd, swapImage); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	// Only the external image binding resolves; one write.
	if n := dev.Counters.DescriptorWrites.Load(); n != 1 {
		t.Errorf("descriptor writes = %d, want 1", n)
	}
}
