package core

import (
	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/types"
)

// BufferEntry is the hub's record for one buffer.
type BufferEntry struct {
	Res  hal.Buffer
	Spec types.BufferSpec
}

// TextureEntry is the hub's record for one texture.
type TextureEntry struct {
	Res  hal.Texture
	Spec types.TextureSpec
}

// SamplerEntry is the hub's record for one sampler.
type SamplerEntry struct {
	Res  hal.Sampler
	Spec types.SamplerSpec
}

// ShaderEntry is the hub's record for one shader group.
type ShaderEntry struct {
	Res hal.Shader
}

// PipelineEntry is the hub's record for one pipeline.
type PipelineEntry struct {
	Res     hal.Pipeline
	Compute bool
}

// RenderPassEntry is the hub's record for one render pass.
type RenderPassEntry struct {
	Res  hal.RenderPass
	Spec types.RenderPassSpec
}

// FramebufferEntry is the hub's record for one framebuffer.
type FramebufferEntry struct {
	Res    hal.Framebuffer
	Extent types.Extent2D
}

// DescriptorSetEntry is the hub's record for one descriptor set.
type DescriptorSetEntry struct {
	Res hal.DescriptorSet
	Set uint32
}

// CommandPoolEntry is the hub's record for one command pool.
type CommandPoolEntry struct {
	Res         hal.CommandPool
	QueueFamily uint32
}

// CommandBufferEntry is the hub's record for one command buffer.
type CommandBufferEntry struct {
	Res hal.CommandBuffer
}

// SwapchainEntry is the hub's record for one swapchain. Surface and
// VSync persist so the swapchain can be rebuilt in place on resize.
type SwapchainEntry struct {
	Res     hal.Swapchain
	Surface hal.Surface
	VSync   bool
}

// Hub is the handle table: one registry per GPU object kind, mapping
// typed handles to backend objects. Each registry carries its own
// lock; there is no outer lock to hold across kinds.
type Hub struct {
	buffers        *Registry[BufferEntry, bufferMarker]
	textures       *Registry[TextureEntry, textureMarker]
	samplers       *Registry[SamplerEntry, samplerMarker]
	shaders        *Registry[ShaderEntry, shaderMarker]
	pipelines      *Registry[PipelineEntry, pipelineMarker]
	renderPasses   *Registry[RenderPassEntry, renderPassMarker]
	framebuffers   *Registry[FramebufferEntry, framebufferMarker]
	descriptorSets *Registry[DescriptorSetEntry, descriptorSetMarker]
	commandPools   *Registry[CommandPoolEntry, commandPoolMarker]
	commandBuffers *Registry[CommandBufferEntry, commandBufferMarker]
	swapchains     *Registry[SwapchainEntry, swapchainMarker]
}

// NewHub creates a hub with registries for every object kind.
func NewHub() *Hub {
	return &Hub{
		buffers:        NewRegistry[BufferEntry, bufferMarker](),
		textures:       NewRegistry[TextureEntry, textureMarker](),
		samplers:       NewRegistry[SamplerEntry, samplerMarker](),
		shaders:        NewRegistry[ShaderEntry, shaderMarker](),
		pipelines:      NewRegistry[PipelineEntry, pipelineMarker](),
		renderPasses:   NewRegistry[RenderPassEntry, renderPassMarker](),
		framebuffers:   NewRegistry[FramebufferEntry, framebufferMarker](),
		descriptorSets: NewRegistry[DescriptorSetEntry, descriptorSetMarker](),
		commandPools:   NewRegistry[CommandPoolEntry, commandPoolMarker](),
		commandBuffers: NewRegistry[CommandBufferEntry, commandBufferMarker](),
		swapchains:     NewRegistry[SwapchainEntry, swapchainMarker](),
	}
}

// Buffer methods

// RegisterBuffer stores a buffer and returns its handle.
func (h *Hub) RegisterBuffer(e BufferEntry) BufferHandle {
	return h.buffers.Register(e)
}

// GetBuffer retrieves a buffer entry by handle.
func (h *Hub) GetBuffer(handle BufferHandle) (BufferEntry, error) {
	return h.buffers.Get(handle)
}

// UnregisterBuffer removes a buffer entry by handle.
func (h *Hub) UnregisterBuffer(handle BufferHandle) (BufferEntry, error) {
	return h.buffers.Unregister(handle)
}

// Texture methods

// RegisterTexture stores a texture and returns its handle.
func (h *Hub) RegisterTexture(e TextureEntry) TextureHandle {
	return h.textures.Register(e)
}

// GetTexture retrieves a texture entry by handle.
func (h *Hub) GetTexture(handle TextureHandle) (TextureEntry, error) {
	return h.textures.Get(handle)
}

// UnregisterTexture removes a texture entry by handle.
func (h *Hub) UnregisterTexture(handle TextureHandle) (TextureEntry, error) {
	return h.textures.Unregister(handle)
}

// Sampler methods

// RegisterSampler stores a sampler and returns its handle.
func (h *Hub) RegisterSampler(e SamplerEntry) SamplerHandle {
	return h.samplers.Register(e)
}

// GetSampler retrieves a sampler entry by handle.
func (h *Hub) GetSampler(handle SamplerHandle) (SamplerEntry, error) {
	return h.samplers.Get(handle)
}

// UnregisterSampler removes a sampler entry by handle.
func (h *Hub) UnregisterSampler(handle SamplerHandle) (SamplerEntry, error) {
	return h.samplers.Unregister(handle)
}

// Shader methods

// RegisterShader stores a shader group and returns its handle.
func (h *Hub) RegisterShader(e ShaderEntry) ShaderHandle {
	return h.shaders.Register(e)
}

// GetShader retrieves a shader entry by handle.
func (h *Hub) GetShader(handle ShaderHandle) (ShaderEntry, error) {
	return h.shaders.Get(handle)
}

// UnregisterShader removes a shader entry by handle.
func (h *Hub) UnregisterShader(handle ShaderHandle) (ShaderEntry, error) {
	return h.shaders.Unregister(handle)
}

// Pipeline methods

// RegisterPipeline stores a pipeline and returns its handle.
func (h *Hub) RegisterPipeline(e PipelineEntry) PipelineHandle {
	return h.pipelines.Register(e)
}

// GetPipeline retrieves a pipeline entry by handle.
func (h *Hub) GetPipeline(handle PipelineHandle) (PipelineEntry, error) {
	return h.pipelines.Get(handle)
}

// UnregisterPipeline removes a pipeline entry by handle.
func (h *Hub) UnregisterPipeline(handle PipelineHandle) (PipelineEntry, error) {
	return h.pipelines.Unregister(handle)
}

// Render pass methods

// RegisterRenderPass stores a render pass and returns its handle.
func (h *Hub) RegisterRenderPass(e RenderPassEntry) RenderPassHandle {
	return h.renderPasses.Register(e)
}

// GetRenderPass retrieves a render pass entry by handle.
func (h *Hub) GetRenderPass(handle RenderPassHandle) (RenderPassEntry, error) {
	return h.renderPasses.Get(handle)
}

// UnregisterRenderPass removes a render pass entry by handle.
func (h *Hub) UnregisterRenderPass(handle RenderPassHandle) (RenderPassEntry, error) {
	return h.renderPasses.Unregister(handle)
}

// Framebuffer methods

// RegisterFramebuffer stores a framebuffer and returns its handle.
func (h *Hub) RegisterFramebuffer(e FramebufferEntry) FramebufferHandle {
	return h.framebuffers.Register(e)
}

// GetFramebuffer retrieves a framebuffer entry by handle.
func (h *Hub) GetFramebuffer(handle FramebufferHandle) (FramebufferEntry, error) {
	return h.framebuffers.Get(handle)
}

// UnregisterFramebuffer removes a framebuffer entry by handle.
func (h *Hub) UnregisterFramebuffer(handle FramebufferHandle) (FramebufferEntry, error) {
	return h.framebuffers.Unregister(handle)
}

// Descriptor set methods

// RegisterDescriptorSet stores a descriptor set and returns its handle.
func (h *Hub) RegisterDescriptorSet(e DescriptorSetEntry) DescriptorSetHandle {
	return h.descriptorSets.Register(e)
}

// GetDescriptorSet retrieves a descriptor set entry by handle.
func (h *Hub) GetDescriptorSet(handle DescriptorSetHandle) (DescriptorSetEntry, error) {
	return h.descriptorSets.Get(handle)
}

// UnregisterDescriptorSet removes a descriptor set entry by handle.
func (h *Hub) UnregisterDescriptorSet(handle DescriptorSetHandle) (DescriptorSetEntry, error) {
	return h.descriptorSets.Unregister(handle)
}

// Command pool methods

// RegisterCommandPool stores a command pool and returns its handle.
func (h *Hub) RegisterCommandPool(e CommandPoolEntry) CommandPoolHandle {
	return h.commandPools.Register(e)
}

// GetCommandPool retrieves a command pool entry by handle.
func (h *Hub) GetCommandPool(handle CommandPoolHandle) (CommandPoolEntry, error) {
	return h.commandPools.Get(handle)
}

// UnregisterCommandPool removes a command pool entry by handle.
func (h *Hub) UnregisterCommandPool(handle CommandPoolHandle) (CommandPoolEntry, error) {
	return h.commandPools.Unregister(handle)
}

// Command buffer methods

// RegisterCommandBuffer stores a command buffer and returns its handle.
func (h *Hub) RegisterCommandBuffer(e CommandBufferEntry) CommandBufferHandle {
	return h.commandBuffers.Register(e)
}

// GetCommandBuffer retrieves a command buffer entry by handle.
func (h *Hub) GetCommandBuffer(handle CommandBufferHandle) (CommandBufferEntry, error) {
	return h.commandBuffers.Get(handle)
}

// UnregisterCommandBuffer removes a command buffer entry by handle.
func (h *Hub) UnregisterCommandBuffer(handle CommandBufferHandle) (CommandBufferEntry, error) {
	return h.commandBuffers.Unregister(handle)
}

// Swapchain methods

// RegisterSwapchain stores a swapchain and returns its handle.
func (h *Hub) RegisterSwapchain(e SwapchainEntry) SwapchainHandle {
	return h.swapchains.Register(e)
}

// GetSwapchain retrieves a swapchain entry by handle.
func (h *Hub) GetSwapchain(handle SwapchainHandle) (SwapchainEntry, error) {
	return h.swapchains.Get(handle)
}

// UnregisterSwapchain removes a swapchain entry by handle.
func (h *Hub) UnregisterSwapchain(handle SwapchainHandle) (SwapchainEntry, error) {
	return h.swapchains.Unregister(handle)
}

// UpdateSwapchain mutates a swapchain entry in place, keeping its
// handle valid across a rebuild.
func (h *Hub) UpdateSwapchain(handle SwapchainHandle, fn func(*SwapchainEntry)) error {
	return h.swapchains.GetMut(handle, fn)
}

// ResourceCounts returns live-object counts per kind, for leak checks
// at teardown.
func (h *Hub) ResourceCounts() map[string]uint64 {
	return map[string]uint64{
		"buffers":        h.buffers.Count(),
		"textures":       h.textures.Count(),
		"samplers":       h.samplers.Count(),
		"shaders":        h.shaders.Count(),
		"pipelines":      h.pipelines.Count(),
		"renderPasses":   h.renderPasses.Count(),
		"framebuffers":   h.framebuffers.Count(),
		"descriptorSets": h.descriptorSets.Count(),
		"commandPools":   h.commandPools.Count(),
		"commandBuffers": h.commandBuffers.Count(),
		"swapchains":     h.swapchains.Count(),
	}
}
