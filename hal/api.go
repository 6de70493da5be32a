// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hal

import (
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/types"
)

// Backend identifies a graphics backend implementation.
// Backends are registered globally and provide factory methods for
// instances.
type Backend interface {
	// Variant returns the backend type identifier.
	Variant() gputypes.Backend

	// CreateInstance creates a new GPU instance with the given
	// configuration. Returns an error if instance creation fails
	// (e.g. drivers not available).
	CreateInstance(desc *InstanceDescriptor) (Instance, error)
}

// InstanceDescriptor configures instance creation.
type InstanceDescriptor struct {
	// AppName is reported to the driver for diagnostics.
	AppName string

	// EnableValidation attaches the backend's debug/validation layer
	// when available. Validation output flows through the log sink.
	EnableValidation bool

	// RequiredExtensions is the instance extension list supplied by
	// the Window collaborator.
	RequiredExtensions []string
}

// Instance is the entry point for GPU operations. An instance manages
// adapter enumeration and surface creation.
type Instance interface {
	// CreateSurface creates a rendering surface from platform handles.
	// The handles come from the Window collaborator and are opaque to
	// the core.
	CreateSurface(displayHandle, windowHandle uintptr) (Surface, error)

	// DestroySurface releases a surface.
	DestroySurface(surface Surface)

	// EnumerateAdapters enumerates available physical GPUs. If
	// surfaceHint is non-nil, only adapters that can present to it are
	// returned.
	EnumerateAdapters(surfaceHint Surface) []ExposedAdapter

	// Destroy releases the instance. All adapters and surfaces created
	// from it must be destroyed first.
	Destroy()
}

// ExposedAdapter bundles an adapter with its capabilities.
type ExposedAdapter struct {
	Adapter Adapter
	Info    gputypes.AdapterInfo
	Limits  gputypes.Limits
}

// Adapter represents a physical GPU.
type Adapter interface {
	// Open opens a logical device and its graphics queue.
	Open(desc *DeviceDescriptor) (OpenDevice, error)

	// SurfaceCapabilities queries presentation capabilities for a
	// surface. Returns ErrSurfaceLost when the surface is gone.
	SurfaceCapabilities(surface Surface) (*SurfaceCapabilities, error)

	// Destroy releases the adapter.
	Destroy()
}

// DeviceDescriptor configures logical device creation.
type DeviceDescriptor struct {
	// RequiredExtensions is the device extension list supplied by the
	// Window collaborator (e.g. the swapchain extension).
	RequiredExtensions []string
}

// OpenDevice is returned when Adapter.Open succeeds. Device and queue
// are created atomically.
type OpenDevice struct {
	Device Device
	Queue  Queue
}

// SurfaceCapabilities describes what a surface supports.
type SurfaceCapabilities struct {
	MinImageCount uint32
	// MaxImageCount is 0 when unbounded.
	MaxImageCount uint32

	// CurrentExtent is the surface's fixed extent, or the sentinel
	// (0xFFFFFFFF per dimension) when the extent is caller-chosen.
	CurrentExtent  types.Extent2D
	MinImageExtent types.Extent2D
	MaxImageExtent types.Extent2D

	// Formats lists supported swapchain formats, preferred first.
	Formats []types.Format
}

// ExtentSentinel marks a surface whose extent follows the swapchain.
const ExtentSentinel = ^uint32(0)

// Device represents a logical GPU device. Creation returns backend
// objects; pairing them with handles is the facade's job.
type Device interface {
	// CreateBuffer creates a buffer per the spec.
	CreateBuffer(spec *types.BufferSpec) (Buffer, error)

	// DestroyBuffer destroys a buffer.
	DestroyBuffer(buffer Buffer)

	// CreateTexture creates a texture per the spec. The texture starts
	// in LayoutUndefined.
	CreateTexture(spec *types.TextureSpec) (Texture, error)

	// DestroyTexture destroys a texture and its default view.
	DestroyTexture(texture Texture)

	// CreateSampler creates a sampler.
	CreateSampler(spec *types.SamplerSpec) (Sampler, error)

	// DestroySampler destroys a sampler.
	DestroySampler(sampler Sampler)

	// CreateShader creates a shader group from precompiled SPIR-V and
	// its merged reflection info.
	CreateShader(spec *types.ShaderGroupSpec, info *types.ShaderGroupInfo) (Shader, error)

	// DestroyShader destroys a shader group's modules.
	DestroyShader(shader Shader)

	// CreateRenderPass creates a render pass.
	CreateRenderPass(spec *types.RenderPassSpec) (RenderPass, error)

	// DestroyRenderPass destroys a render pass. Framebuffers and
	// pipelines compatible with it die with their own destroy calls.
	DestroyRenderPass(pass RenderPass)

	// CreateFramebuffer creates a framebuffer bound to a render pass
	// compatibility class.
	CreateFramebuffer(desc *FramebufferDescriptor) (Framebuffer, error)

	// DestroyFramebuffer destroys a framebuffer.
	DestroyFramebuffer(fb Framebuffer)

	// CreatePipelineLayout builds the pipeline layout for a shader
	// group, including one descriptor-set layout per reflected set.
	CreatePipelineLayout(shader Shader) (PipelineLayout, error)

	// DestroyPipelineLayout destroys a pipeline layout and its set
	// layouts.
	DestroyPipelineLayout(layout PipelineLayout)

	// CreateGraphicsPipeline creates a graphics pipeline.
	CreateGraphicsPipeline(desc *GraphicsPipelineDescriptor) (Pipeline, error)

	// CreateComputePipeline creates a compute pipeline.
	CreateComputePipeline(desc *ComputePipelineDescriptor) (Pipeline, error)

	// DestroyPipeline destroys a pipeline.
	DestroyPipeline(pipeline Pipeline)

	// CreateDescriptorSet allocates a descriptor set with the given
	// layout from the calling thread's pool.
	CreateDescriptorSet(layout DescriptorSetLayout) (DescriptorSet, error)

	// UpdateDescriptorSet writes resource bindings into a set. Sets
	// are never updated while a submission referencing them is in
	// flight.
	UpdateDescriptorSet(set DescriptorSet, writes []DescriptorWrite) error

	// FreeDescriptorSet returns a set to its pool.
	FreeDescriptorSet(set DescriptorSet)

	// CreateCommandPool creates a command pool for one queue family.
	// Pools are single-thread-owned.
	CreateCommandPool(queueFamily uint32) (CommandPool, error)

	// DestroyCommandPool destroys a pool and its buffers.
	DestroyCommandPool(pool CommandPool)

	// CreateFence creates a fence, optionally pre-signaled.
	CreateFence(signaled bool) (Fence, error)

	// DestroyFence destroys a fence.
	DestroyFence(fence Fence)

	// CreateSemaphore creates a binary semaphore.
	CreateSemaphore() (Semaphore, error)

	// DestroySemaphore destroys a semaphore.
	DestroySemaphore(sem Semaphore)

	// CreateSwapchain creates a swapchain for a surface. Pass the
	// previous swapchain in desc when recreating.
	CreateSwapchain(surface Surface, desc *SwapchainDescriptor) (Swapchain, error)

	// DestroySwapchain destroys a swapchain and its image views.
	DestroySwapchain(sc Swapchain)

	// WaitIdle blocks until the device finishes all submitted work.
	WaitIdle() error

	// Destroy releases the device. The caller must WaitIdle first.
	Destroy()
}

// Queue handles command submission and presentation.
type Queue interface {
	// FamilyIndex returns the queue family the queue belongs to.
	FamilyIndex() uint32

	// Submit submits command buffers with the given waits, signals and
	// fence.
	Submit(desc *SubmitDescriptor) error

	// Present presents a previously acquired swapchain image. Returns
	// ErrOutOfDate or ErrSuboptimal when the swapchain needs to be
	// rebuilt, ErrSurfaceLost when the surface is gone.
	Present(sc Swapchain, imageIndex uint32, waits []Semaphore) error
}

// SubmitDescriptor describes one queue submission.
type SubmitDescriptor struct {
	CommandBuffers []CommandBuffer

	// Waits are semaphores the submission waits on, each gated at a
	// pipeline stage.
	Waits []SemaphoreWait

	// Signals are semaphores signaled when the submission completes.
	Signals []Semaphore

	// Fence, if non-nil, is signaled when the submission completes.
	Fence Fence
}

// SemaphoreWait pairs a semaphore with the stage that waits on it.
type SemaphoreWait struct {
	Semaphore Semaphore
	Stage     types.PipelineStageFlags
}

// SwapchainDescriptor configures swapchain creation.
type SwapchainDescriptor struct {
	Extent types.Extent2D
	Format types.Format
	VSync  bool

	// ImageCount is a hint; the backend clamps it to the surface's
	// supported range. Zero means min+1.
	ImageCount uint32

	// OldSwapchain, when non-nil, lets the backend reuse resources
	// during recreation.
	OldSwapchain Swapchain
}

// Swapchain is a chain of presentable images.
type Swapchain interface {
	Format() types.Format
	Extent() types.Extent2D
	ImageCount() uint32

	// Image returns the i-th swapchain image. Swapchain images are
	// owned by the swapchain; DestroyTexture must not be called on
	// them.
	Image(i uint32) Texture

	// Acquire acquires the next image, signaling sem when it is ready.
	// Blocks up to timeout. Returns ErrOutOfDate, ErrSuboptimal,
	// ErrSurfaceLost or ErrTimeout.
	Acquire(sem Semaphore, timeout time.Duration) (uint32, error)
}

// CommandPool allocates command buffers for a single owning thread.
type CommandPool interface {
	// Request returns a recycled or freshly allocated command buffer.
	Request(level CommandBufferLevel) (CommandBuffer, error)

	// Reset recycles all buffers allocated from the pool. Forbidden
	// while a submission referencing any of them is pending.
	Reset() error
}

// CommandBufferLevel distinguishes primary from secondary buffers.
type CommandBufferLevel uint32

const (
	CommandBufferPrimary CommandBufferLevel = iota
	CommandBufferSecondary
)

// CommandBuffer records GPU work. It embeds the command context: a
// begun command buffer is the recording target for both the render
// graph and replayed command lists.
type CommandBuffer interface {
	CommandContext

	// Begin starts recording. oneTime marks the buffer as single-use.
	Begin(oneTime bool) error

	// End finishes recording.
	End() error
}

// Fence is a CPU-visible GPU completion signal.
type Fence interface {
	// Wait blocks until the fence signals or the timeout elapses.
	// A negative timeout waits forever. Returns ErrTimeout on expiry.
	Wait(timeout time.Duration) error

	// Reset returns the fence to the unsignaled state.
	Reset() error

	// Signaled polls the fence without blocking.
	Signaled() bool
}

// Semaphore is a GPU-GPU synchronization primitive. Opaque: the
// backend that created it is the only one that looks inside.
type Semaphore interface{}

// Surface is an opaque presentation target created from Window
// handles.
type Surface interface{}
