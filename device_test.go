package forge

import (
	"errors"
	"testing"

	"github.com/gogpu/forge/core"
	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/hal/noop"
	"github.com/gogpu/forge/internal/spvtest"
	"github.com/gogpu/forge/spirv"
	"github.com/gogpu/forge/types"
)

func testDevice(t *testing.T) (*noop.Device, *Device) {
	t.Helper()
	instance, err := noop.API{}.CreateInstance(&hal.InstanceDescriptor{})
	if err != nil {
		t.Fatalf("instance creation failed: %v", err)
	}
	adapter := instance.EnumerateAdapters(nil)[0]
	opened, err := adapter.Adapter.Open(&hal.DeviceDescriptor{})
	if err != nil {
		t.Fatalf("device open failed: %v", err)
	}
	return opened.Device.(*noop.Device), NewDevice(opened.Device, opened.Queue)
}

func TestBufferLifecycle(t *testing.T) {
	_, dev := testDevice(t)

	h, err := dev.CreateBuffer(types.BufferSpec{
		Size:  256,
		Usage: types.BufferUsageVertex | types.BufferUsageTransferDst,
	})
	if err != nil {
		t.Fatalf("CreateBuffer failed: %v", err)
	}
	if h.IsZero() {
		t.Fatal("valid creation returned zero handle")
	}

	buf, err := dev.Buffer(h)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if buf.Size() != 256 {
		t.Errorf("size = %d", buf.Size())
	}

	if err := dev.DestroyBuffer(h); err != nil {
		t.Fatalf("destroy failed: %v", err)
	}
	if _, err := dev.Buffer(h); err == nil {
		t.Error("stale handle resolved after destroy")
	}
}

func TestCreateBufferInvalidSpec(t *testing.T) {
	_, dev := testDevice(t)

	h, err := dev.CreateBuffer(types.BufferSpec{Size: 0})
	if !errors.Is(err, hal.ErrInvalidSpec) {
		t.Errorf("err = %v, want ErrInvalidSpec", err)
	}
	if !h.IsZero() {
		t.Error("failed creation returned a live handle")
	}
}

func TestDoubleDestroyDetected(t *testing.T) {
	_, dev := testDevice(t)

	h, err := dev.CreateTexture(types.DefaultTextureSpec(
		types.FormatRGBA8Unorm, 64, 64, types.TextureUsageSampled))
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	if err := dev.DestroyTexture(h); err != nil {
		t.Fatalf("first destroy failed: %v", err)
	}
	// Occupy the freed slot so the stale generation is detectable.
	if _, err := dev.CreateTexture(types.DefaultTextureSpec(
		types.FormatRGBA8Unorm, 64, 64, types.TextureUsageSampled)); err != nil {
		t.Fatalf("refill failed: %v", err)
	}

	err = dev.DestroyTexture(h)
	if !errors.Is(err, core.ErrGenerationMismatch) {
		t.Errorf("double destroy err = %v, want ErrGenerationMismatch", err)
	}
}

func TestCreateShaderRejectsMergeConflict(t *testing.T) {
	_, dev := testDevice(t)

	// (set=0, binding=0) is a uniform block in the vertex stage and a
	// combined image sampler in the fragment stage.
	h, err := dev.CreateShader(types.ShaderGroupSpec{
		Stages: map[types.ShaderStage]types.StageSpirv{
			types.StageVertex:   {Code: spvtest.StageWithUniform("Data", 0, 0, 64), Entry: "main"},
			types.StageFragment: {Code: spvtest.FragmentSampled("Data", 0, 0), Entry: "main"},
		},
	})
	if err == nil {
		t.Fatal("conflicting shader group was accepted")
	}
	if !h.IsZero() {
		t.Error("failed creation returned a live handle")
	}

	var re *spirv.ReflectError
	if !errors.As(err, &re) {
		t.Fatalf("error type = %T", err)
	}
	if re.Stage != types.StageFragment || re.Set != 0 || re.Binding != 0 {
		t.Errorf("conflict at stage %v set %d binding %d", re.Stage, re.Set, re.Binding)
	}
}

func TestDescriptorSetFromShaderGroup(t *testing.T) {
	_, dev := testDevice(t)

	shader, err := dev.CreateShader(types.ShaderGroupSpec{
		Stages: map[types.ShaderStage]types.StageSpirv{
			types.StageVertex:   {Code: spvtest.StageWithUniform("CameraData", 0, 0, 64), Entry: "main"},
			types.StageFragment: {Code: spvtest.FragmentSampled("albedo", 0, 1), Entry: "main"},
		},
	})
	if err != nil {
		t.Fatalf("CreateShader failed: %v", err)
	}

	uniform, err := dev.CreateBuffer(types.BufferSpec{Size: 64, Usage: types.BufferUsageUniform})
	if err != nil {
		t.Fatalf("CreateBuffer failed: %v", err)
	}
	texture, err := dev.CreateTexture(types.DefaultTextureSpec(
		types.FormatRGBA8Unorm, 128, 128, types.TextureUsageSampled))
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	sampler, err := dev.CreateSampler(types.DefaultSamplerSpec())
	if err != nil {
		t.Fatalf("CreateSampler failed: %v", err)
	}

	set, err := dev.CreateDescriptorSet(shader, 0, []Binding{
		{Binding: 0, Type: types.ResourceUniformBuffer, Buffer: uniform},
		{Binding: 1, Type: types.ResourceSamplerWithTexture, Texture: texture, Sampler: sampler},
	})
	if err != nil {
		t.Fatalf("CreateDescriptorSet failed: %v", err)
	}
	if set.IsZero() {
		t.Fatal("descriptor set handle is zero")
	}

	res, err := dev.DescriptorSet(set)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	writes := res.(*noop.DescriptorSet).Writes()
	if len(writes) != 2 {
		t.Fatalf("writes = %d, want 2", len(writes))
	}
}

func TestSwapchainResizeKeepsHandle(t *testing.T) {
	_, dev := testDevice(t)

	instance, _ := noop.API{}.CreateInstance(&hal.InstanceDescriptor{})
	surface, _ := instance.CreateSurface(0, 0)

	h, err := dev.CreateSwapchain(surface, types.Extent2D{Width: 640, Height: 480}, true)
	if err != nil {
		t.Fatalf("CreateSwapchain failed: %v", err)
	}

	if err := dev.ResizeSwapchain(h, types.Extent2D{Width: 1920, Height: 1080}); err != nil {
		t.Fatalf("ResizeSwapchain failed: %v", err)
	}

	sc, err := dev.Swapchain(h)
	if err != nil {
		t.Fatalf("handle no longer resolves after resize: %v", err)
	}
	if extent := sc.Extent(); extent.Width != 1920 || extent.Height != 1080 {
		t.Errorf("extent = %dx%d", extent.Width, extent.Height)
	}
}

func TestTeardownReportsLeaks(t *testing.T) {
	_, dev := testDevice(t)
	if _, err := dev.CreateBuffer(types.BufferSpec{Size: 16, Usage: types.BufferUsageUniform}); err != nil {
		t.Fatalf("CreateBuffer failed: %v", err)
	}
	counts := dev.Hub().ResourceCounts()
	if counts["buffers"] != 1 {
		t.Errorf("buffer count = %d, want 1", counts["buffers"])
	}
	dev.Teardown()
}
