// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package cache deduplicates the GPU objects that are requested over
// and over with identical create state: render passes, framebuffers,
// pipeline layouts, descriptor-set layouts and graphics pipelines.
//
// Every category has its own map and its own lock. Lookups take the
// read lock; a miss builds the object without any lock held, then
// takes the write lock to insert. When two builders race, the loser
// destroys its own build and adopts the winner's entry — an entry that
// made it into a map is never destroyed by a losing builder; only Clear
// destroys cached objects.
package cache

import (
	"log/slog"
	"sync"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/types"
)

// Cache is the process-wide dedup table for one device.
type Cache struct {
	device hal.Device

	renderPassMu sync.RWMutex
	renderPasses map[uint64]hal.RenderPass

	framebufferMu sync.RWMutex
	framebuffers  map[uint64]hal.Framebuffer

	pipelineLayoutMu sync.RWMutex
	pipelineLayouts  map[uint64]hal.PipelineLayout

	setLayoutMu sync.RWMutex
	setLayouts  map[uint64]hal.DescriptorSetLayout

	pipelineMu sync.RWMutex
	pipelines  map[uint64]hal.Pipeline
}

// New creates an empty cache over a device.
func New(device hal.Device) *Cache {
	return &Cache{
		device:          device,
		renderPasses:    make(map[uint64]hal.RenderPass),
		framebuffers:    make(map[uint64]hal.Framebuffer),
		pipelineLayouts: make(map[uint64]hal.PipelineLayout),
		setLayouts:      make(map[uint64]hal.DescriptorSetLayout),
		pipelines:       make(map[uint64]hal.Pipeline),
	}
}

// RequestRenderPass returns the render pass for the spec, building it
// on first request.
func (c *Cache) RequestRenderPass(spec *types.RenderPassSpec) (hal.RenderPass, error) {
	key := hashRenderPass(spec)

	c.renderPassMu.RLock()
	if rp, ok := c.renderPasses[key]; ok {
		c.renderPassMu.RUnlock()
		return rp, nil
	}
	c.renderPassMu.RUnlock()

	built, err := c.device.CreateRenderPass(spec)
	if err != nil {
		return nil, err
	}

	c.renderPassMu.Lock()
	if winner, ok := c.renderPasses[key]; ok {
		c.renderPassMu.Unlock()
		c.device.DestroyRenderPass(built)
		return winner, nil
	}
	c.renderPasses[key] = built
	size := len(c.renderPasses)
	c.renderPassMu.Unlock()

	hal.Logger().Debug("cache: built render pass", slog.Int("entries", size))
	return built, nil
}

// RequestFramebuffer returns the framebuffer for the descriptor,
// building it on first request. The key is the render pass identity,
// the attachment view identities and the extent.
func (c *Cache) RequestFramebuffer(desc *hal.FramebufferDescriptor) (hal.Framebuffer, error) {
	key := hashFramebuffer(desc)

	c.framebufferMu.RLock()
	if fb, ok := c.framebuffers[key]; ok {
		c.framebufferMu.RUnlock()
		return fb, nil
	}
	c.framebufferMu.RUnlock()

	built, err := c.device.CreateFramebuffer(desc)
	if err != nil {
		return nil, err
	}

	c.framebufferMu.Lock()
	if winner, ok := c.framebuffers[key]; ok {
		c.framebufferMu.Unlock()
		c.device.DestroyFramebuffer(built)
		return winner, nil
	}
	c.framebuffers[key] = built
	c.framebufferMu.Unlock()

	return built, nil
}

// RequestPipelineLayout returns the pipeline layout for a shader
// group. Groups with identical stage bytecodes map to one layout. The
// layout's descriptor-set layouts are recorded in the set-layout map
// as a side effect.
func (c *Cache) RequestPipelineLayout(shader hal.Shader) (hal.PipelineLayout, error) {
	key := shader.Hash()

	c.pipelineLayoutMu.RLock()
	if pl, ok := c.pipelineLayouts[key]; ok {
		c.pipelineLayoutMu.RUnlock()
		return pl, nil
	}
	c.pipelineLayoutMu.RUnlock()

	built, err := c.device.CreatePipelineLayout(shader)
	if err != nil {
		return nil, err
	}

	c.pipelineLayoutMu.Lock()
	if winner, ok := c.pipelineLayouts[key]; ok {
		c.pipelineLayoutMu.Unlock()
		c.device.DestroyPipelineLayout(built)
		return winner, nil
	}
	c.pipelineLayouts[key] = built
	c.pipelineLayoutMu.Unlock()

	c.recordSetLayouts(shader.Info(), built)
	return built, nil
}

// recordSetLayouts registers a layout's per-set layouts under their
// (set, bindings) keys so equal set signatures dedup across groups.
func (c *Cache) recordSetLayouts(info *types.ShaderGroupInfo, layout hal.PipelineLayout) {
	c.setLayoutMu.Lock()
	defer c.setLayoutMu.Unlock()
	for _, sl := range layout.SetLayouts() {
		if sl == nil {
			continue
		}
		set := sl.SetIndex()
		if int(set) >= len(info.Sets) {
			continue
		}
		key := hashSetLayout(set, info.Sets[set])
		if _, ok := c.setLayouts[key]; !ok {
			c.setLayouts[key] = sl
		}
	}
}

// LookupDescriptorSetLayout returns a previously recorded set layout
// with the given signature, if any.
func (c *Cache) LookupDescriptorSetLayout(set uint32, bindings []types.ShaderResource) (hal.DescriptorSetLayout, bool) {
	key := hashSetLayout(set, bindings)
	c.setLayoutMu.RLock()
	defer c.setLayoutMu.RUnlock()
	sl, ok := c.setLayouts[key]
	return sl, ok
}

// RequestGraphicsPipeline returns the graphics pipeline for the
// descriptor, building it on first request. The key covers the render
// pass identity, subpass, shader group, specialization state and the
// full fixed-function state.
func (c *Cache) RequestGraphicsPipeline(desc *hal.GraphicsPipelineDescriptor) (hal.Pipeline, error) {
	key := hashGraphicsPipeline(desc)

	c.pipelineMu.RLock()
	if p, ok := c.pipelines[key]; ok {
		c.pipelineMu.RUnlock()
		return p, nil
	}
	c.pipelineMu.RUnlock()

	built, err := c.device.CreateGraphicsPipeline(desc)
	if err != nil {
		return nil, err
	}

	c.pipelineMu.Lock()
	if winner, ok := c.pipelines[key]; ok {
		c.pipelineMu.Unlock()
		c.device.DestroyPipeline(built)
		return winner, nil
	}
	c.pipelines[key] = built
	size := len(c.pipelines)
	c.pipelineMu.Unlock()

	hal.Logger().Debug("cache: built graphics pipeline", slog.Int("entries", size))
	return built, nil
}

// Clear destroys every cached object. Callers must ensure the device
// is idle first.
func (c *Cache) Clear() {
	c.pipelineMu.Lock()
	for _, p := range c.pipelines {
		c.device.DestroyPipeline(p)
	}
	c.pipelines = make(map[uint64]hal.Pipeline)
	c.pipelineMu.Unlock()

	c.framebufferMu.Lock()
	for _, fb := range c.framebuffers {
		c.device.DestroyFramebuffer(fb)
	}
	c.framebuffers = make(map[uint64]hal.Framebuffer)
	c.framebufferMu.Unlock()

	c.pipelineLayoutMu.Lock()
	for _, pl := range c.pipelineLayouts {
		c.device.DestroyPipelineLayout(pl)
	}
	c.pipelineLayouts = make(map[uint64]hal.PipelineLayout)
	c.pipelineLayoutMu.Unlock()

	c.setLayoutMu.Lock()
	c.setLayouts = make(map[uint64]hal.DescriptorSetLayout)
	c.setLayoutMu.Unlock()

	c.renderPassMu.Lock()
	for _, rp := range c.renderPasses {
		c.device.DestroyRenderPass(rp)
	}
	c.renderPasses = make(map[uint64]hal.RenderPass)
	c.renderPassMu.Unlock()
}
