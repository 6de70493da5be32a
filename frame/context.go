// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package frame paces frames against a swapchain: per-frame rings of
// command pools, staging buffers and sync objects, image acquisition,
// submission, present and resize.
package frame

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/types"
)

// Options configures a Context.
type Options struct {
	// VSync selects a vsync'd present mode.
	VSync bool

	// ThreadCount is the number of recording threads per frame.
	// Zero means one.
	ThreadCount uint32

	// Format is the preferred swapchain format; undefined lets the
	// surface pick.
	Format types.Format
}

// Context is the frame pacer: it owns the swapchain and the ring of
// per-frame records, and drives acquire → record → submit → present.
type Context struct {
	device  hal.Device
	queue   hal.Queue
	adapter hal.Adapter
	surface hal.Surface

	swapchain hal.Swapchain
	opts      Options

	frames      []*Frame
	activeFrame uint32
	frameActive bool

	imageAcquired  hal.Semaphore
	renderFinished hal.Semaphore
	activeCmd      hal.CommandBuffer

	// commonPool serves upload command buffers outside the frame ring.
	commonPool hal.CommandPool
	syncPool   *SyncPool

	// oomStreak counts consecutive frames lost to memory exhaustion;
	// two in a row escalate to fatal.
	oomStreak int
}

// NewContext creates a pacer for a surface, building the swapchain and
// the per-frame ring.
func NewContext(device hal.Device, queue hal.Queue, adapter hal.Adapter, surface hal.Surface,
	extent types.Extent2D, opts Options) (*Context, error) {

	c := &Context{
		device:   device,
		queue:    queue,
		adapter:  adapter,
		surface:  surface,
		opts:     opts,
		syncPool: NewSyncPool(device),
	}

	sc, err := device.CreateSwapchain(surface, &hal.SwapchainDescriptor{
		Extent: extent,
		Format: opts.Format,
		VSync:  opts.VSync,
	})
	if err != nil {
		return nil, err
	}
	c.swapchain = sc

	if err := c.buildFrames(); err != nil {
		return nil, err
	}

	pool, err := device.CreateCommandPool(queue.FamilyIndex())
	if err != nil {
		return nil, err
	}
	c.commonPool = pool
	return c, nil
}

func (c *Context) buildFrames() error {
	for _, f := range c.frames {
		f.Destroy()
	}
	c.frames = c.frames[:0]
	for i := uint32(0); i < c.swapchain.ImageCount(); i++ {
		f, err := NewFrame(c.device, c.swapchain.Image(i), c.opts.ThreadCount)
		if err != nil {
			return err
		}
		c.frames = append(c.frames, f)
	}
	return nil
}

// SwapchainFormat returns the swapchain format.
func (c *Context) SwapchainFormat() types.Format { return c.swapchain.Format() }

// SwapchainExtent returns the swapchain extent.
func (c *Context) SwapchainExtent() types.Extent2D { return c.swapchain.Extent() }

// ActiveFrame returns the frame record for the acquired image.
func (c *Context) ActiveFrame() *Frame { return c.frames[c.activeFrame] }

// Staging returns the active frame's staging buffer.
func (c *Context) Staging() *StagingBuffer { return c.ActiveFrame().Staging() }

// StartFrame acquires the next swapchain image and returns a begun
// one-time-submit command buffer for it. ErrOutOfDate and
// ErrSurfaceLost propagate to the caller, which recreates the
// swapchain; the frame is not active afterwards.
func (c *Context) StartFrame() (hal.CommandBuffer, error) {
	if !c.frameActive {
		if err := c.startFrameInternal(); err != nil {
			return nil, err
		}
	}

	cmd, err := c.ActiveFrame().RequestCommandBuffer(c.queue.FamilyIndex(), 0, hal.CommandBufferPrimary)
	if err != nil {
		return nil, err
	}
	if err := cmd.Begin(true); err != nil {
		return nil, err
	}
	c.activeCmd = cmd
	return cmd, nil
}

func (c *Context) startFrameInternal() error {
	prev := c.frames[c.activeFrame]
	sem, err := prev.Sync().RequestSemaphoreWithOwnership()
	if err != nil {
		return err
	}

	index, err := c.swapchain.Acquire(sem, -time.Second)
	if err != nil {
		prev.Sync().ReleaseSemaphoreWithOwnership(sem)
		if errors.Is(err, hal.ErrSuboptimal) {
			// Suboptimal still acquired nothing here; treat like
			// out-of-date so the caller rebuilds.
			err = hal.ErrOutOfDate
		}
		hal.Logger().Warn("frame discarded: swapchain acquire failed", slog.Any("error", err))
		return err
	}

	c.imageAcquired = sem
	c.activeFrame = index
	c.frameActive = true
	return nil
}

// EndFrame transitions the swapchain image to present, submits the
// frame's command buffer and presents. The per-frame resources reset
// before return.
func (c *Context) EndFrame() error {
	if !c.frameActive || c.activeCmd == nil {
		return fmt.Errorf("frame: EndFrame without active frame")
	}
	active := c.ActiveFrame()

	// The graph leaves the swapchain image in TransferDst after the
	// back-buffer blit.
	c.activeCmd.AddTextureTransition(active.SwapchainImage(), types.LayoutPresent)

	if err := c.submitInternal(); err != nil {
		return c.noteMemoryPressure(err)
	}

	presentErr := c.queue.Present(c.swapchain, c.activeFrame, []hal.Semaphore{c.renderFinished})
	if presentErr != nil && !errors.Is(presentErr, hal.ErrSuboptimal) {
		hal.Logger().Warn("present failed", slog.Any("error", presentErr))
	}

	if c.imageAcquired != nil {
		active.Sync().ReleaseSemaphoreWithOwnership(c.imageAcquired)
		c.imageAcquired = nil
	}
	if err := active.Reset(); err != nil {
		return err
	}
	c.frameActive = false
	c.activeCmd = nil
	c.oomStreak = 0
	return presentErr
}

func (c *Context) submitInternal() error {
	active := c.ActiveFrame()

	renderFinished, err := active.Sync().RequestSemaphore()
	if err != nil {
		return err
	}
	c.renderFinished = renderFinished

	fence, err := active.Sync().RequestFence()
	if err != nil {
		return err
	}

	if err := c.activeCmd.End(); err != nil {
		return err
	}

	desc := hal.SubmitDescriptor{
		CommandBuffers: []hal.CommandBuffer{c.activeCmd},
		Signals:        []hal.Semaphore{renderFinished},
		Fence:          fence,
	}
	if c.imageAcquired != nil {
		desc.Waits = []hal.SemaphoreWait{{
			Semaphore: c.imageAcquired,
			Stage:     types.StageColorAttachmentOutput,
		}}
	}
	return c.queue.Submit(&desc)
}

// noteMemoryPressure implements the out-of-memory escalation policy:
// one lost frame is recoverable, two consecutive are fatal.
func (c *Context) noteMemoryPressure(err error) error {
	if !errors.Is(err, hal.ErrOutOfDeviceMemory) && !errors.Is(err, hal.ErrOutOfHostMemory) {
		return err
	}
	c.oomStreak++
	hal.Logger().Warn("frame discarded: memory exhaustion",
		slog.Int("consecutive", c.oomStreak), slog.Any("error", err))
	if c.oomStreak >= 2 {
		return fmt.Errorf("frame: memory exhaustion persisted across frames: %w", err)
	}
	return err
}

// RecreateSwapchain rebuilds the swapchain after a resize or an
// out-of-date acquire. It waits for the device, clamps the requested
// extent to the surface's limits, chains the old swapchain, and
// rebuilds the per-frame ring.
func (c *Context) RecreateSwapchain(width, height uint32) error {
	if err := c.device.WaitIdle(); err != nil {
		return err
	}

	caps, err := c.adapter.SurfaceCapabilities(c.surface)
	if err != nil {
		return err
	}
	if caps.CurrentExtent.Width == hal.ExtentSentinel {
		return nil
	}
	if caps.CurrentExtent == c.swapchain.Extent() {
		// The surface still matches the swapchain; nothing to rebuild.
		return nil
	}

	extent := types.Extent2D{
		Width:  clamp(width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clamp(height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}

	old := c.swapchain
	sc, err := c.device.CreateSwapchain(c.surface, &hal.SwapchainDescriptor{
		Extent:       extent,
		Format:       c.swapchain.Format(),
		VSync:        c.opts.VSync,
		OldSwapchain: old,
	})
	if err != nil {
		return err
	}
	c.swapchain = sc
	c.device.DestroySwapchain(old)
	c.activeFrame = 0
	c.frameActive = false

	hal.Logger().Info("swapchain recreated",
		slog.Uint64("width", uint64(extent.Width)),
		slog.Uint64("height", uint64(extent.Height)))
	return c.buildFrames()
}

// CommandBuffer returns a begun one-time command buffer from the
// common pool, for uploads outside the frame ring.
func (c *Context) CommandBuffer() (hal.CommandBuffer, error) {
	cmd, err := c.commonPool.Request(hal.CommandBufferPrimary)
	if err != nil {
		return nil, err
	}
	if err := cmd.Begin(true); err != nil {
		return nil, err
	}
	return cmd, nil
}

// SubmitImmediate ends and submits a command buffer on a dedicated
// fence, waits for completion and resets the fence. Used by resource
// uploads.
func (c *Context) SubmitImmediate(cmd hal.CommandBuffer) error {
	if err := cmd.End(); err != nil {
		return err
	}
	fence, err := c.syncPool.RequestFence()
	if err != nil {
		return err
	}
	if err := c.queue.Submit(&hal.SubmitDescriptor{
		CommandBuffers: []hal.CommandBuffer{cmd},
		Fence:          fence,
	}); err != nil {
		return err
	}
	if err := c.syncPool.WaitForFences(-time.Second); err != nil {
		return err
	}
	return c.syncPool.Reset()
}

// ResetCommandPool recycles the common pool's buffers. Callers ensure
// no submission references them.
func (c *Context) ResetCommandPool() error {
	return c.commonPool.Reset()
}

// Destroy tears down the pacer. The device is idled first.
func (c *Context) Destroy() {
	_ = c.device.WaitIdle()
	for _, f := range c.frames {
		f.Destroy()
	}
	c.frames = nil
	c.syncPool.Destroy()
	c.device.DestroyCommandPool(c.commonPool)
	c.device.DestroySwapchain(c.swapchain)
}

func clamp(v, lo, hi uint32) uint32 {
	if hi != 0 && v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
