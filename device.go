// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package forge

import (
	"log/slog"

	"github.com/gogpu/forge/cache"
	"github.com/gogpu/forge/core"
	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/spirv"
	"github.com/gogpu/forge/types"
)

// Device is the typed-handle RHI: every create pairs a backend object
// with a versioned handle in the hub, every destroy validates the
// handle before releasing the object.
type Device struct {
	hub    *core.Hub
	dev    hal.Device
	queue  hal.Queue
	caches *cache.Cache
}

// NewDevice wraps an opened backend device and its queue.
func NewDevice(dev hal.Device, queue hal.Queue) *Device {
	return &Device{
		hub:    core.NewHub(),
		dev:    dev,
		queue:  queue,
		caches: cache.New(dev),
	}
}

// HAL returns the backend device.
func (d *Device) HAL() hal.Device { return d.dev }

// Queue returns the graphics queue.
func (d *Device) Queue() hal.Queue { return d.queue }

// Cache returns the device's resource cache.
func (d *Device) Cache() *cache.Cache { return d.caches }

// Hub returns the handle table.
func (d *Device) Hub() *core.Hub { return d.hub }

// CreateBuffer creates a buffer. On failure the zero handle returns
// alongside the error, and the failure is logged.
func (d *Device) CreateBuffer(spec types.BufferSpec) (core.BufferHandle, error) {
	res, err := d.dev.CreateBuffer(&spec)
	if err != nil {
		hal.Logger().Error("create buffer failed",
			slog.Uint64("size", spec.Size), slog.Any("error", err))
		return core.BufferHandle{}, err
	}
	return d.hub.RegisterBuffer(core.BufferEntry{Res: res, Spec: spec}), nil
}

// DestroyBuffer destroys a buffer. The caller guarantees no pending
// submission references it.
func (d *Device) DestroyBuffer(h core.BufferHandle) error {
	e, err := d.hub.UnregisterBuffer(h)
	if err != nil {
		return err
	}
	d.dev.DestroyBuffer(e.Res)
	return nil
}

// Buffer resolves a buffer handle to its backend object.
func (d *Device) Buffer(h core.BufferHandle) (hal.Buffer, error) {
	e, err := d.hub.GetBuffer(h)
	if err != nil {
		return nil, err
	}
	return e.Res, nil
}

// CreateTexture creates a texture in LayoutUndefined.
func (d *Device) CreateTexture(spec types.TextureSpec) (core.TextureHandle, error) {
	res, err := d.dev.CreateTexture(&spec)
	if err != nil {
		hal.Logger().Error("create texture failed",
			slog.String("format", spec.Format.String()), slog.Any("error", err))
		return core.TextureHandle{}, err
	}
	return d.hub.RegisterTexture(core.TextureEntry{Res: res, Spec: spec}), nil
}

// DestroyTexture destroys a texture.
func (d *Device) DestroyTexture(h core.TextureHandle) error {
	e, err := d.hub.UnregisterTexture(h)
	if err != nil {
		return err
	}
	d.dev.DestroyTexture(e.Res)
	return nil
}

// Texture resolves a texture handle to its backend object.
func (d *Device) Texture(h core.TextureHandle) (hal.Texture, error) {
	e, err := d.hub.GetTexture(h)
	if err != nil {
		return nil, err
	}
	return e.Res, nil
}

// CreateSampler creates a sampler.
func (d *Device) CreateSampler(spec types.SamplerSpec) (core.SamplerHandle, error) {
	res, err := d.dev.CreateSampler(&spec)
	if err != nil {
		hal.Logger().Error("create sampler failed", slog.Any("error", err))
		return core.SamplerHandle{}, err
	}
	return d.hub.RegisterSampler(core.SamplerEntry{Res: res, Spec: spec}), nil
}

// DestroySampler destroys a sampler.
func (d *Device) DestroySampler(h core.SamplerHandle) error {
	e, err := d.hub.UnregisterSampler(h)
	if err != nil {
		return err
	}
	d.dev.DestroySampler(e.Res)
	return nil
}

// Sampler resolves a sampler handle to its backend object.
func (d *Device) Sampler(h core.SamplerHandle) (hal.Sampler, error) {
	e, err := d.hub.GetSampler(h)
	if err != nil {
		return nil, err
	}
	return e.Res, nil
}

// CreateShader reflects the group's SPIR-V and creates the backend
// shader group. Reflection failures reject the group: the zero handle
// returns with the error, which identifies the offending stage, set
// and binding.
func (d *Device) CreateShader(spec types.ShaderGroupSpec) (core.ShaderHandle, error) {
	info, err := spirv.ReflectGroup(&spec)
	if err != nil {
		hal.Logger().Error("shader reflection failed", slog.Any("error", err))
		return core.ShaderHandle{}, err
	}
	res, err := d.dev.CreateShader(&spec, info)
	if err != nil {
		hal.Logger().Error("create shader failed", slog.Any("error", err))
		return core.ShaderHandle{}, err
	}
	return d.hub.RegisterShader(core.ShaderEntry{Res: res}), nil
}

// DestroyShader destroys a shader group.
func (d *Device) DestroyShader(h core.ShaderHandle) error {
	e, err := d.hub.UnregisterShader(h)
	if err != nil {
		return err
	}
	d.dev.DestroyShader(e.Res)
	return nil
}

// Shader resolves a shader handle to its backend object.
func (d *Device) Shader(h core.ShaderHandle) (hal.Shader, error) {
	e, err := d.hub.GetShader(h)
	if err != nil {
		return nil, err
	}
	return e.Res, nil
}

// CreateRenderPass creates a render pass.
func (d *Device) CreateRenderPass(spec types.RenderPassSpec) (core.RenderPassHandle, error) {
	res, err := d.dev.CreateRenderPass(&spec)
	if err != nil {
		hal.Logger().Error("create render pass failed", slog.Any("error", err))
		return core.RenderPassHandle{}, err
	}
	return d.hub.RegisterRenderPass(core.RenderPassEntry{Res: res, Spec: spec}), nil
}

// DestroyRenderPass destroys a render pass.
func (d *Device) DestroyRenderPass(h core.RenderPassHandle) error {
	e, err := d.hub.UnregisterRenderPass(h)
	if err != nil {
		return err
	}
	d.dev.DestroyRenderPass(e.Res)
	return nil
}

// RenderPass resolves a render pass handle to its backend object.
func (d *Device) RenderPass(h core.RenderPassHandle) (hal.RenderPass, error) {
	e, err := d.hub.GetRenderPass(h)
	if err != nil {
		return nil, err
	}
	return e.Res, nil
}

// CreateFramebuffer creates a framebuffer over the default views of
// the given textures. Its lifetime is bound to the render pass's
// compatibility class.
func (d *Device) CreateFramebuffer(rp core.RenderPassHandle, attachments []core.TextureHandle, extent types.Extent2D) (core.FramebufferHandle, error) {
	pass, err := d.RenderPass(rp)
	if err != nil {
		return core.FramebufferHandle{}, err
	}
	views := make([]hal.TextureView, 0, len(attachments))
	for _, th := range attachments {
		tex, err := d.Texture(th)
		if err != nil {
			return core.FramebufferHandle{}, err
		}
		views = append(views, tex.View())
	}
	res, err := d.dev.CreateFramebuffer(&hal.FramebufferDescriptor{
		RenderPass:  pass,
		Attachments: views,
		Extent:      extent,
		Layers:      1,
	})
	if err != nil {
		hal.Logger().Error("create framebuffer failed", slog.Any("error", err))
		return core.FramebufferHandle{}, err
	}
	return d.hub.RegisterFramebuffer(core.FramebufferEntry{Res: res, Extent: extent}), nil
}

// DestroyFramebuffer destroys a framebuffer.
func (d *Device) DestroyFramebuffer(h core.FramebufferHandle) error {
	e, err := d.hub.UnregisterFramebuffer(h)
	if err != nil {
		return err
	}
	d.dev.DestroyFramebuffer(e.Res)
	return nil
}

// CreateGraphicsPipeline creates a graphics pipeline through the
// resource cache, so equal state dedups to one object.
func (d *Device) CreateGraphicsPipeline(shader core.ShaderHandle, rp core.RenderPassHandle, subpass uint32, state types.PipelineState) (core.PipelineHandle, error) {
	sh, err := d.Shader(shader)
	if err != nil {
		return core.PipelineHandle{}, err
	}
	pass, err := d.RenderPass(rp)
	if err != nil {
		return core.PipelineHandle{}, err
	}
	layout, err := d.caches.RequestPipelineLayout(sh)
	if err != nil {
		return core.PipelineHandle{}, err
	}
	res, err := d.caches.RequestGraphicsPipeline(&hal.GraphicsPipelineDescriptor{
		Shader:     sh,
		Layout:     layout,
		RenderPass: pass,
		Subpass:    subpass,
		State:      state,
	})
	if err != nil {
		hal.Logger().Error("create graphics pipeline failed", slog.Any("error", err))
		return core.PipelineHandle{}, err
	}
	return d.hub.RegisterPipeline(core.PipelineEntry{Res: res}), nil
}

// CreateComputePipeline creates a compute pipeline.
func (d *Device) CreateComputePipeline(shader core.ShaderHandle) (core.PipelineHandle, error) {
	sh, err := d.Shader(shader)
	if err != nil {
		return core.PipelineHandle{}, err
	}
	layout, err := d.caches.RequestPipelineLayout(sh)
	if err != nil {
		return core.PipelineHandle{}, err
	}
	res, err := d.dev.CreateComputePipeline(&hal.ComputePipelineDescriptor{Shader: sh, Layout: layout})
	if err != nil {
		hal.Logger().Error("create compute pipeline failed", slog.Any("error", err))
		return core.PipelineHandle{}, err
	}
	return d.hub.RegisterPipeline(core.PipelineEntry{Res: res, Compute: true}), nil
}

// DestroyPipeline destroys a pipeline. Cached pipelines owned by the
// resource cache survive until the cache clears.
func (d *Device) DestroyPipeline(h core.PipelineHandle) error {
	e, err := d.hub.UnregisterPipeline(h)
	if err != nil {
		return err
	}
	if e.Compute {
		d.dev.DestroyPipeline(e.Res)
	}
	return nil
}

// Pipeline resolves a pipeline handle to its backend object.
func (d *Device) Pipeline(h core.PipelineHandle) (hal.Pipeline, error) {
	e, err := d.hub.GetPipeline(h)
	if err != nil {
		return nil, err
	}
	return e.Res, nil
}

// Binding routes one resource to a binding slot of a descriptor set.
type Binding struct {
	Binding uint32
	Type    types.ShaderResourceType

	Buffer  core.BufferHandle
	Texture core.TextureHandle
	Sampler core.SamplerHandle
}

// CreateDescriptorSet allocates a descriptor set for one set index of
// a shader group and writes the given bindings.
func (d *Device) CreateDescriptorSet(shader core.ShaderHandle, setIndex uint32, bindings []Binding) (core.DescriptorSetHandle, error) {
	sh, err := d.Shader(shader)
	if err != nil {
		return core.DescriptorSetHandle{}, err
	}
	layout, err := d.caches.RequestPipelineLayout(sh)
	if err != nil {
		return core.DescriptorSetHandle{}, err
	}

	var setLayout hal.DescriptorSetLayout
	for _, sl := range layout.SetLayouts() {
		if sl != nil && sl.SetIndex() == setIndex {
			setLayout = sl
			break
		}
	}
	if setLayout == nil {
		return core.DescriptorSetHandle{}, hal.ErrInvalidSpec
	}

	set, err := d.dev.CreateDescriptorSet(setLayout)
	if err != nil {
		hal.Logger().Error("create descriptor set failed",
			slog.Uint64("set", uint64(setIndex)), slog.Any("error", err))
		return core.DescriptorSetHandle{}, err
	}

	writes := make([]hal.DescriptorWrite, 0, len(bindings))
	for _, b := range bindings {
		w := hal.DescriptorWrite{Binding: b.Binding, Type: b.Type}
		if !b.Buffer.IsZero() {
			buf, err := d.Buffer(b.Buffer)
			if err != nil {
				return core.DescriptorSetHandle{}, err
			}
			w.Buffers = append(w.Buffers, hal.BufferBinding{Buffer: buf})
		}
		if !b.Texture.IsZero() {
			tex, err := d.Texture(b.Texture)
			if err != nil {
				return core.DescriptorSetHandle{}, err
			}
			img := hal.ImageBinding{View: tex.View(), Layout: types.LayoutShaderReadOnly}
			if !b.Sampler.IsZero() {
				s, err := d.Sampler(b.Sampler)
				if err != nil {
					return core.DescriptorSetHandle{}, err
				}
				img.Sampler = s
			}
			w.Images = append(w.Images, img)
		}
		writes = append(writes, w)
	}
	if err := d.dev.UpdateDescriptorSet(set, writes); err != nil {
		d.dev.FreeDescriptorSet(set)
		return core.DescriptorSetHandle{}, err
	}

	return d.hub.RegisterDescriptorSet(core.DescriptorSetEntry{Res: set, Set: setIndex}), nil
}

// DestroyDescriptorSet frees a descriptor set. The caller guarantees
// no pending submission references it.
func (d *Device) DestroyDescriptorSet(h core.DescriptorSetHandle) error {
	e, err := d.hub.UnregisterDescriptorSet(h)
	if err != nil {
		return err
	}
	d.dev.FreeDescriptorSet(e.Res)
	return nil
}

// DescriptorSet resolves a descriptor set handle to its backend
// object.
func (d *Device) DescriptorSet(h core.DescriptorSetHandle) (hal.DescriptorSet, error) {
	e, err := d.hub.GetDescriptorSet(h)
	if err != nil {
		return nil, err
	}
	return e.Res, nil
}

// CreateCommandPool creates a command pool for one queue family.
func (d *Device) CreateCommandPool(queueFamily uint32) (core.CommandPoolHandle, error) {
	res, err := d.dev.CreateCommandPool(queueFamily)
	if err != nil {
		return core.CommandPoolHandle{}, err
	}
	return d.hub.RegisterCommandPool(core.CommandPoolEntry{Res: res, QueueFamily: queueFamily}), nil
}

// DestroyCommandPool destroys a command pool and its buffers.
func (d *Device) DestroyCommandPool(h core.CommandPoolHandle) error {
	e, err := d.hub.UnregisterCommandPool(h)
	if err != nil {
		return err
	}
	d.dev.DestroyCommandPool(e.Res)
	return nil
}

// GetOrCreateCommandBuffer returns a command buffer from a pool,
// recycled when the pool has one to spare.
func (d *Device) GetOrCreateCommandBuffer(pool core.CommandPoolHandle, level hal.CommandBufferLevel) (core.CommandBufferHandle, error) {
	e, err := d.hub.GetCommandPool(pool)
	if err != nil {
		return core.CommandBufferHandle{}, err
	}
	cb, err := e.Res.Request(level)
	if err != nil {
		return core.CommandBufferHandle{}, err
	}
	return d.hub.RegisterCommandBuffer(core.CommandBufferEntry{Res: cb}), nil
}

// CommandBuffer resolves a command buffer handle to its backend
// object.
func (d *Device) CommandBuffer(h core.CommandBufferHandle) (hal.CommandBuffer, error) {
	e, err := d.hub.GetCommandBuffer(h)
	if err != nil {
		return nil, err
	}
	return e.Res, nil
}

// CreateSwapchain creates a swapchain for a surface.
func (d *Device) CreateSwapchain(surface hal.Surface, extent types.Extent2D, vsync bool) (core.SwapchainHandle, error) {
	sc, err := d.dev.CreateSwapchain(surface, &hal.SwapchainDescriptor{Extent: extent, VSync: vsync})
	if err != nil {
		hal.Logger().Error("create swapchain failed", slog.Any("error", err))
		return core.SwapchainHandle{}, err
	}
	return d.hub.RegisterSwapchain(core.SwapchainEntry{Res: sc, Surface: surface, VSync: vsync}), nil
}

// ResizeSwapchain rebuilds a swapchain in place with a new extent,
// chaining the old one. The handle stays valid.
func (d *Device) ResizeSwapchain(h core.SwapchainHandle, extent types.Extent2D) error {
	e, err := d.hub.GetSwapchain(h)
	if err != nil {
		return err
	}
	if err := d.dev.WaitIdle(); err != nil {
		return err
	}
	next, err := d.dev.CreateSwapchain(e.Surface, &hal.SwapchainDescriptor{
		Extent:       extent,
		Format:       e.Res.Format(),
		VSync:        e.VSync,
		OldSwapchain: e.Res,
	})
	if err != nil {
		return err
	}
	old := e.Res
	if err := d.hub.UpdateSwapchain(h, func(entry *core.SwapchainEntry) {
		entry.Res = next
	}); err != nil {
		d.dev.DestroySwapchain(next)
		return err
	}
	d.dev.DestroySwapchain(old)
	return nil
}

// DestroySwapchain destroys a swapchain.
func (d *Device) DestroySwapchain(h core.SwapchainHandle) error {
	e, err := d.hub.UnregisterSwapchain(h)
	if err != nil {
		return err
	}
	d.dev.DestroySwapchain(e.Res)
	return nil
}

// Swapchain resolves a swapchain handle to its backend object.
func (d *Device) Swapchain(h core.SwapchainHandle) (hal.Swapchain, error) {
	e, err := d.hub.GetSwapchain(h)
	if err != nil {
		return nil, err
	}
	return e.Res, nil
}

// WaitIdle blocks until the device drains, then returns. Bounded by
// the caller's patience only; use fences with timeouts for
// cancellable waits.
func (d *Device) WaitIdle() error {
	return d.dev.WaitIdle()
}

// Teardown idles the device, clears the cache and destroys the
// backend device. Live handles left in the hub are logged as leaks.
func (d *Device) Teardown() {
	if err := d.dev.WaitIdle(); err != nil {
		hal.Logger().Error("teardown: device idle wait failed", slog.Any("error", err))
	}
	for kind, n := range d.hub.ResourceCounts() {
		if n > 0 {
			hal.Logger().Warn("teardown: leaked handles", slog.String("kind", kind), slog.Uint64("count", n))
		}
	}
	d.caches.Clear()
	d.dev.Destroy()
}
