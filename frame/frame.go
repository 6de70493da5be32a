// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package frame

import (
	"time"

	"github.com/gogpu/forge/hal"
)

// Frame owns one swapchain image's per-frame resources: command pools
// per (queue family, recording thread), a staging buffer and a sync
// pool.
type Frame struct {
	device hal.Device

	syncPool *SyncPool

	// pools maps a queue family to one pool per recording thread.
	pools map[uint32][]hal.CommandPool

	swapchainImage hal.Texture
	staging        *StagingBuffer
	threadCount    uint32
}

// NewFrame creates the per-frame record for one swapchain image.
func NewFrame(device hal.Device, swapchainImage hal.Texture, threadCount uint32) (*Frame, error) {
	if threadCount == 0 {
		threadCount = 1
	}
	staging, err := NewStagingBuffer(device, MaxStagingBufferSize)
	if err != nil {
		return nil, err
	}
	return &Frame{
		device:         device,
		syncPool:       NewSyncPool(device),
		pools:          make(map[uint32][]hal.CommandPool),
		swapchainImage: swapchainImage,
		staging:        staging,
		threadCount:    threadCount,
	}, nil
}

// SwapchainImage returns the frame's swapchain image.
func (f *Frame) SwapchainImage() hal.Texture { return f.swapchainImage }

// Staging returns the frame's staging buffer.
func (f *Frame) Staging() *StagingBuffer { return f.staging }

// Sync returns the frame's sync-object pool.
func (f *Frame) Sync() *SyncPool { return f.syncPool }

// RequestCommandBuffer returns a begun-ready command buffer from the
// pool owned by (queueFamily, threadID). Pools are created lazily, one
// per recording thread.
func (f *Frame) RequestCommandBuffer(queueFamily, threadID uint32, level hal.CommandBufferLevel) (hal.CommandBuffer, error) {
	if threadID >= f.threadCount {
		threadID = 0
	}
	pools, err := f.commandPools(queueFamily)
	if err != nil {
		return nil, err
	}
	return pools[threadID].Request(level)
}

func (f *Frame) commandPools(queueFamily uint32) ([]hal.CommandPool, error) {
	if pools, ok := f.pools[queueFamily]; ok {
		return pools, nil
	}
	pools := make([]hal.CommandPool, f.threadCount)
	for i := range pools {
		pool, err := f.device.CreateCommandPool(queueFamily)
		if err != nil {
			return nil, err
		}
		pools[i] = pool
	}
	f.pools[queueFamily] = pools
	return pools, nil
}

// Reset waits for the frame's submissions, then resets its command
// pools, staging cursor and sync objects for reuse.
func (f *Frame) Reset() error {
	if err := f.syncPool.WaitForFences(-time.Second); err != nil {
		return err
	}
	if err := f.syncPool.Reset(); err != nil {
		return err
	}
	for _, pools := range f.pools {
		for _, pool := range pools {
			if err := pool.Reset(); err != nil {
				return err
			}
		}
	}
	f.staging.ResetOffset()
	return nil
}

// Destroy releases everything the frame owns. The swapchain image
// belongs to the swapchain and is left alone.
func (f *Frame) Destroy() {
	for _, pools := range f.pools {
		for _, pool := range pools {
			f.device.DestroyCommandPool(pool)
		}
	}
	f.pools = nil
	f.staging.Destroy()
	f.syncPool.Destroy()
}
