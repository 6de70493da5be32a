package cache

import (
	"sync"
	"testing"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/hal/noop"
	"github.com/gogpu/forge/internal/spvtest"
	"github.com/gogpu/forge/spirv"
	"github.com/gogpu/forge/types"
)

func testDevice(t *testing.T) (*noop.Device, *Cache) {
	t.Helper()
	dev := &noop.Device{}
	return dev, New(dev)
}

func testShader(t *testing.T, dev hal.Device) hal.Shader {
	t.Helper()
	spec := types.ShaderGroupSpec{Stages: map[types.ShaderStage]types.StageSpirv{
		types.StageVertex:   {Code: spvtest.VertexPassthrough(), Entry: "main"},
		types.StageFragment: {Code: spvtest.FragmentSampled("albedo", 0, 0), Entry: "main"},
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

func colorPassSpec() types.RenderPassSpec {
	return types.RenderPassSpec{
		Attachments: []types.AttachmentDescription{{
			Format:      types.FormatRGBA8UnormSrgb,
			Samples:     types.Samples1,
			LoadOp:      types.LoadOpClear,
			StoreOp:     types.StoreOpStore,
			FinalLayout: types.LayoutColorAttachment,
		}},
		Subpasses: []types.SubpassInfo{{
			ColorRefs: []types.AttachmentReference{{Attachment: 0, Layout: types.LayoutColorAttachment}},
		}},
	}
}

func TestRenderPassDedup(t *testing.T) {
	_, c := testDevice(t)

	spec := colorPassSpec()
	first, err := c.RequestRenderPass(&spec)
	if err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	again := colorPassSpec()
	second, err := c.RequestRenderPass(&again)
	if err != nil {
		t.Fatalf("second request failed: %v", err)
	}
	if first != second {
		t.Error("identical specs produced distinct render passes")
	}

	different := colorPassSpec()
	different.Attachments[0].Format = types.FormatRGB10A2Unorm
	third, err := c.RequestRenderPass(&different)
	if err != nil {
		t.Fatalf("third request failed: %v", err)
	}
	if third == first {
		t.Error("different specs collided")
	}
}

func TestPipelineLayoutSharedByShaderHash(t *testing.T) {
	dev, c := testDevice(t)
	shader := testShader(t, dev)

	a, err := c.RequestPipelineLayout(shader)
	if err != nil {
		t.Fatalf("layout request failed: %v", err)
	}
	b, err := c.RequestPipelineLayout(shader)
	if err != nil {
		t.Fatalf("layout request failed: %v", err)
	}
	if a != b {
		t.Error("same shader group produced distinct pipeline layouts")
	}

	// Set layouts were recorded under their (set, bindings) signature.
	if _, ok := c.LookupDescriptorSetLayout(0, shader.Info().Sets[0]); !ok {
		t.Error("set layout not recorded")
	}
}

func TestGraphicsPipelineDedupUnderConcurrency(t *testing.T) {
	dev, c := testDevice(t)
	shader := testShader(t, dev)
	layout, err := c.RequestPipelineLayout(shader)
	if err != nil {
		t.Fatalf("layout request failed: %v", err)
	}
	spec := colorPassSpec()
	rp, err := c.RequestRenderPass(&spec)
	if err != nil {
		t.Fatalf("render pass request failed: %v", err)
	}

	desc := hal.GraphicsPipelineDescriptor{
		Shader:     shader,
		Layout:     layout,
		RenderPass: rp,
		State:      types.DefaultPipelineState(1),
	}

	const workers = 16
	results := make([]hal.Pipeline, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := desc
			p, err := c.RequestGraphicsPipeline(&d)
			if err != nil {
				t.Errorf("request failed: %v", err)
				return
			}
			results[i] = p
		}(w)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatalf("concurrent requests returned distinct pipelines")
		}
	}
}

func TestFramebufferKeyedByViewsAndExtent(t *testing.T) {
	dev, c := testDevice(t)
	spec := colorPassSpec()
	rp, err := c.RequestRenderPass(&spec)
	if err != nil {
		t.Fatalf("render pass request failed: %v", err)
	}

	tex, err := dev.CreateTexture(&types.TextureSpec{
		Format:  types.FormatRGBA8UnormSrgb,
		Extent:  types.Extent3D{Width: 64, Height: 64, Depth: 1},
		Samples: types.Samples1,
		Usage:   types.TextureUsageColorAttachment,
	})
	if err != nil {
		t.Fatalf("texture creation failed: %v", err)
	}

	desc := hal.FramebufferDescriptor{
		RenderPass:  rp,
		Attachments: []hal.TextureView{tex.View()},
		Extent:      types.Extent2D{Width: 64, Height: 64},
		Layers:      1,
	}
	a, err := c.RequestFramebuffer(&desc)
	if err != nil {
		t.Fatalf("framebuffer request failed: %v", err)
	}
	b, err := c.RequestFramebuffer(&desc)
	if err != nil {
		t.Fatalf("framebuffer request failed: %v", err)
	}
	if a != b {
		t.Error("identical framebuffer keys produced distinct objects")
	}

	smaller := desc
	smaller.Extent = types.Extent2D{Width: 32, Height: 32}
	d, err := c.RequestFramebuffer(&smaller)
	if err != nil {
		t.Fatalf("framebuffer request failed: %v", err)
	}
	if d == a {
		t.Error("different extents collided")
	}
}
