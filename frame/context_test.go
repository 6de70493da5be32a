package frame

import (
	"errors"
	"testing"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/hal/noop"
	"github.com/gogpu/forge/types"
)

func testContext(t *testing.T) (*noop.Device, *Context) {
	t.Helper()
	instance, err := noop.API{}.CreateInstance(&hal.InstanceDescriptor{})
	if err != nil {
		t.Fatalf("instance creation failed: %v", err)
	}
	surface, err := instance.CreateSurface(0, 0)
	if err != nil {
		t.Fatalf("surface creation failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(surface)
	if len(adapters) == 0 {
		t.Fatal("no adapters")
	}
	opened, err := adapters[0].Adapter.Open(&hal.DeviceDescriptor{})
	if err != nil {
		t.Fatalf("device open failed: %v", err)
	}

	ctx, err := NewContext(opened.Device, opened.Queue, adapters[0].Adapter, surface,
		types.Extent2D{Width: 1280, Height: 720}, Options{VSync: true})
	if err != nil {
		t.Fatalf("context creation failed: %v", err)
	}
	return opened.Device.(*noop.Device), ctx
}

func TestFrameLoopPresentsEveryFrame(t *testing.T) {
	dev, ctx := testContext(t)

	const frames = 60
	for i := 0; i < frames; i++ {
		cmd, err := ctx.StartFrame()
		if err != nil {
			t.Fatalf("frame %d: StartFrame failed: %v", i, err)
		}
		_ = cmd
		if err := ctx.EndFrame(); err != nil {
			t.Fatalf("frame %d: EndFrame failed: %v", i, err)
		}
	}

	if n := dev.Counters.Presents.Load(); n != frames {
		t.Errorf("presents = %d, want %d", n, frames)
	}
	if n := dev.Counters.Submits.Load(); n != frames {
		t.Errorf("submits = %d, want %d", n, frames)
	}
}

func TestStagingUploadAdvancesAndResetsCursor(t *testing.T) {
	dev, ctx := testContext(t)

	texture, err := ctx.device.CreateTexture(&types.TextureSpec{
		Format:  types.FormatRGBA8Unorm,
		Extent:  types.Extent3D{Width: 1024, Height: 1024, Depth: 1},
		Samples: types.Samples1,
		Usage:   types.TextureUsageSampled | types.TextureUsageTransferDst,
	})
	if err != nil {
		t.Fatalf("texture creation failed: %v", err)
	}

	cmd, err := ctx.StartFrame()
	if err != nil {
		t.Fatalf("StartFrame failed: %v", err)
	}

	const texelBytes = 4 * 1024 * 1024
	data := make([]byte, texelBytes)
	if err := ctx.UploadTexture(cmd, data, texture); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if off := ctx.Staging().Offset(); off != texelBytes {
		t.Errorf("staging cursor = %d, want %d", off, texelBytes)
	}
	if n := dev.Counters.CopyRegions.Load(); n != 1 {
		t.Errorf("copy regions = %d, want 1", n)
	}

	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("EndFrame failed: %v", err)
	}

	// The frame reset rewound its staging cursor.
	if off := ctx.frames[0].Staging().Offset(); off != 0 {
		t.Errorf("staging cursor after reset = %d, want 0", off)
	}
}

func TestStagingOverflowReported(t *testing.T) {
	_, ctx := testContext(t)
	staging := ctx.frames[0].Staging()

	if _, err := staging.Submit(make([]byte, MaxStagingBufferSize)); err != nil {
		t.Fatalf("full-size submit failed: %v", err)
	}
	if _, err := staging.Submit([]byte{1}); !errors.Is(err, ErrStagingFull) {
		t.Errorf("overflow err = %v, want ErrStagingFull", err)
	}
	staging.ResetOffset()
}

func TestSubmitImmediateWaitsAndResets(t *testing.T) {
	dev, ctx := testContext(t)

	cmd, err := ctx.CommandBuffer()
	if err != nil {
		t.Fatalf("command buffer failed: %v", err)
	}
	if err := ctx.SubmitImmediate(cmd); err != nil {
		t.Fatalf("SubmitImmediate failed: %v", err)
	}
	if n := dev.Counters.Submits.Load(); n != 1 {
		t.Errorf("submits = %d, want 1", n)
	}
	// A second immediate submit reuses the recycled fence.
	cmd, err = ctx.CommandBuffer()
	if err != nil {
		t.Fatalf("command buffer failed: %v", err)
	}
	if err := ctx.SubmitImmediate(cmd); err != nil {
		t.Fatalf("second SubmitImmediate failed: %v", err)
	}
}

func TestOutOfDateAcquireTriggersRecreate(t *testing.T) {
	_, ctx := testContext(t)

	ctx.swapchain.(*noop.Swapchain).ForceAcquireError(hal.ErrOutOfDate)

	_, err := ctx.StartFrame()
	if !errors.Is(err, hal.ErrOutOfDate) {
		t.Fatalf("StartFrame err = %v, want ErrOutOfDate", err)
	}

	// The window grew; the surface now reports the new extent.
	ctx.surface.(*noop.Surface).SetCurrentExtent(types.Extent2D{Width: 1920, Height: 1080})

	if err := ctx.RecreateSwapchain(1920, 1080); err != nil {
		t.Fatalf("RecreateSwapchain failed: %v", err)
	}
	if extent := ctx.SwapchainExtent(); extent.Width != 1920 || extent.Height != 1080 {
		t.Errorf("extent after recreate = %dx%d", extent.Width, extent.Height)
	}

	// The next frame proceeds normally on the new swapchain.
	if _, err := ctx.StartFrame(); err != nil {
		t.Fatalf("StartFrame after recreate failed: %v", err)
	}
	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("EndFrame after recreate failed: %v", err)
	}
}

func TestRecreateClampsToSurfaceLimits(t *testing.T) {
	_, ctx := testContext(t)

	ctx.surface.(*noop.Surface).SetCurrentExtent(types.Extent2D{Width: 800, Height: 600})

	if err := ctx.RecreateSwapchain(1_000_000, 5); err != nil {
		t.Fatalf("RecreateSwapchain failed: %v", err)
	}
	extent := ctx.SwapchainExtent()
	if extent.Width != 16384 {
		t.Errorf("width = %d, want clamp to 16384", extent.Width)
	}
	if extent.Height != 5 {
		t.Errorf("height = %d, want 5", extent.Height)
	}
}

func TestRecreateReturnsEarlyWithoutSurfaceChange(t *testing.T) {
	_, ctx := testContext(t)
	before := ctx.SwapchainExtent()

	// Sentinel extent: the surface follows the swapchain, nothing to
	// rebuild.
	if err := ctx.RecreateSwapchain(1920, 1080); err != nil {
		t.Fatalf("RecreateSwapchain failed: %v", err)
	}
	if extent := ctx.SwapchainExtent(); extent != before {
		t.Errorf("sentinel recreate rebuilt the swapchain: %+v", extent)
	}

	// Concrete extent equal to the swapchain's: still nothing to do.
	ctx.surface.(*noop.Surface).SetCurrentExtent(before)
	if err := ctx.RecreateSwapchain(1920, 1080); err != nil {
		t.Fatalf("RecreateSwapchain failed: %v", err)
	}
	if extent := ctx.SwapchainExtent(); extent != before {
		t.Errorf("matching-extent recreate rebuilt the swapchain: %+v", extent)
	}
}

func TestSemaphoreOwnershipRoundTrip(t *testing.T) {
	dev, _ := testContext(t)
	pool := NewSyncPool(dev)

	owned, err := pool.RequestSemaphoreWithOwnership()
	if err != nil {
		t.Fatalf("ownership request failed: %v", err)
	}
	pool.ReleaseSemaphoreWithOwnership(owned)

	// Before reset the released semaphore stays out of circulation.
	other, err := pool.RequestSemaphore()
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if other == owned {
		t.Error("released ownership semaphore handed out before reset")
	}

	if err := pool.Reset(); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	// After reset it rejoins the pool.
	seen := false
	for i := 0; i < 4; i++ {
		s, err := pool.RequestSemaphore()
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if s == owned {
			seen = true
			break
		}
	}
	if !seen {
		t.Error("ownership semaphore never rejoined the pool after reset")
	}
}
