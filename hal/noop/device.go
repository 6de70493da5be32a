// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package noop

import (
	"hash/fnv"
	"sync"
	"sync/atomic"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/types"
)

// Device implements hal.Device. Creation succeeds unless the request is
// invalid (a zero-sized buffer or texture, missing shader info, or a
// pipeline without shader or layout); observable side effects land in
// Counters and the op log.
type Device struct {
	Counters Counters

	mu         sync.Mutex
	ops        []string
	semCounter atomic.Uint64
}

func (d *Device) logOp(op string) {
	d.mu.Lock()
	d.ops = append(d.ops, op)
	d.mu.Unlock()
}

// TakeOps returns and clears the recorded operation log.
func (d *Device) TakeOps() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	ops := d.ops
	d.ops = nil
	return ops
}

// CreateBuffer creates a noop buffer.
func (d *Device) CreateBuffer(spec *types.BufferSpec) (hal.Buffer, error) {
	if spec.Size == 0 || spec.Usage == types.BufferUsageNone {
		return nil, hal.ErrInvalidSpec
	}
	return &Buffer{spec: *spec}, nil
}

// DestroyBuffer is a no-op.
func (d *Device) DestroyBuffer(_ hal.Buffer) {}

// CreateTexture creates a noop texture in LayoutUndefined.
func (d *Device) CreateTexture(spec *types.TextureSpec) (hal.Texture, error) {
	if spec.Format == types.FormatUndefined || spec.Extent.Width == 0 || spec.Extent.Height == 0 {
		return nil, hal.ErrInvalidSpec
	}
	return newTexture(*spec), nil
}

// DestroyTexture is a no-op.
func (d *Device) DestroyTexture(_ hal.Texture) {}

// CreateSampler creates a noop sampler.
func (d *Device) CreateSampler(spec *types.SamplerSpec) (hal.Sampler, error) {
	return &Sampler{spec: *spec}, nil
}

// DestroySampler is a no-op.
func (d *Device) DestroySampler(_ hal.Sampler) {}

// CreateShader creates a noop shader group, hashing the stage
// bytecodes in stage order.
func (d *Device) CreateShader(spec *types.ShaderGroupSpec, info *types.ShaderGroupInfo) (hal.Shader, error) {
	if info == nil {
		return nil, hal.ErrShaderInvalid
	}
	h := fnv.New64a()
	for stage := types.ShaderStage(0); stage < types.StageMax; stage++ {
		if code, ok := spec.Stages[stage]; ok {
			h.Write([]byte{byte(stage)})
			h.Write(code.Code)
		}
	}
	return &Shader{info: info, hash: h.Sum64()}, nil
}

// DestroyShader is a no-op.
func (d *Device) DestroyShader(_ hal.Shader) {}

// CreateRenderPass creates a noop render pass.
func (d *Device) CreateRenderPass(spec *types.RenderPassSpec) (hal.RenderPass, error) {
	return &RenderPass{spec: *spec}, nil
}

// DestroyRenderPass is a no-op.
func (d *Device) DestroyRenderPass(_ hal.RenderPass) {}

// CreateFramebuffer creates a noop framebuffer.
func (d *Device) CreateFramebuffer(desc *hal.FramebufferDescriptor) (hal.Framebuffer, error) {
	rp, _ := desc.RenderPass.(*RenderPass)
	return &Framebuffer{
		renderPass:  rp,
		attachments: append([]hal.TextureView(nil), desc.Attachments...),
		extent:      desc.Extent,
	}, nil
}

// DestroyFramebuffer is a no-op.
func (d *Device) DestroyFramebuffer(_ hal.Framebuffer) {}

// CreatePipelineLayout builds set layouts from the shader's reflected
// sets.
func (d *Device) CreatePipelineLayout(shader hal.Shader) (hal.PipelineLayout, error) {
	info := shader.Info()
	layouts := make([]hal.DescriptorSetLayout, len(info.Sets))
	for set, bindings := range info.Sets {
		layouts[set] = &DescriptorSetLayout{
			set:      uint32(set),
			bindings: append([]types.ShaderResource(nil), bindings...),
		}
	}
	return &PipelineLayout{layouts: layouts}, nil
}

// DestroyPipelineLayout is a no-op.
func (d *Device) DestroyPipelineLayout(_ hal.PipelineLayout) {}

// CreateGraphicsPipeline creates a noop graphics pipeline.
func (d *Device) CreateGraphicsPipeline(desc *hal.GraphicsPipelineDescriptor) (hal.Pipeline, error) {
	if desc.Shader == nil || desc.Layout == nil {
		return nil, hal.ErrPipelineCreationFailed
	}
	return &Pipeline{layout: desc.Layout}, nil
}

// CreateComputePipeline creates a noop compute pipeline.
func (d *Device) CreateComputePipeline(desc *hal.ComputePipelineDescriptor) (hal.Pipeline, error) {
	if desc.Shader == nil || desc.Layout == nil {
		return nil, hal.ErrPipelineCreationFailed
	}
	return &Pipeline{layout: desc.Layout, compute: true}, nil
}

// DestroyPipeline is a no-op.
func (d *Device) DestroyPipeline(_ hal.Pipeline) {}

// CreateDescriptorSet allocates a noop descriptor set.
func (d *Device) CreateDescriptorSet(layout hal.DescriptorSetLayout) (hal.DescriptorSet, error) {
	l, _ := layout.(*DescriptorSetLayout)
	return &DescriptorSet{layout: l}, nil
}

// UpdateDescriptorSet records the writes and counts them.
func (d *Device) UpdateDescriptorSet(set hal.DescriptorSet, writes []hal.DescriptorWrite) error {
	s, ok := set.(*DescriptorSet)
	if !ok {
		return hal.ErrInvalidSpec
	}
	s.mu.Lock()
	s.writes = append(s.writes, writes...)
	s.mu.Unlock()
	d.Counters.DescriptorWrites.Add(int64(len(writes)))
	return nil
}

// FreeDescriptorSet is a no-op.
func (d *Device) FreeDescriptorSet(_ hal.DescriptorSet) {}

// CreateCommandPool creates a noop command pool.
func (d *Device) CreateCommandPool(queueFamily uint32) (hal.CommandPool, error) {
	return &CommandPool{device: d, family: queueFamily}, nil
}

// DestroyCommandPool is a no-op.
func (d *Device) DestroyCommandPool(_ hal.CommandPool) {}

// CreateFence creates a fence, optionally pre-signaled.
func (d *Device) CreateFence(signaled bool) (hal.Fence, error) {
	f := &Fence{}
	if signaled {
		f.signaled.Store(true)
	}
	return f, nil
}

// DestroyFence is a no-op.
func (d *Device) DestroyFence(_ hal.Fence) {}

// CreateSemaphore creates a noop semaphore.
func (d *Device) CreateSemaphore() (hal.Semaphore, error) {
	return &Semaphore{id: d.semCounter.Add(1)}, nil
}

// DestroySemaphore is a no-op.
func (d *Device) DestroySemaphore(_ hal.Semaphore) {}

// CreateSwapchain creates a noop swapchain with the requested extent.
func (d *Device) CreateSwapchain(_ hal.Surface, desc *hal.SwapchainDescriptor) (hal.Swapchain, error) {
	count := desc.ImageCount
	if count == 0 {
		count = 3
	}
	format := desc.Format
	if format == types.FormatUndefined {
		format = types.FormatBGRA8UnormSrgb
	}
	images := make([]*Texture, count)
	for i := range images {
		images[i] = newTexture(types.TextureSpec{
			Type:        types.Texture2D,
			Format:      format,
			Extent:      types.Extent3D{Width: desc.Extent.Width, Height: desc.Extent.Height, Depth: 1},
			ArrayLayers: 1,
			MipLevels:   1,
			Samples:     types.Samples1,
			Usage:       types.TextureUsageColorAttachment | types.TextureUsageTransferDst,
		})
	}
	return &Swapchain{format: format, extent: desc.Extent, images: images}, nil
}

// DestroySwapchain is a no-op.
func (d *Device) DestroySwapchain(_ hal.Swapchain) {}

// WaitIdle is a no-op: noop work completes at submit.
func (d *Device) WaitIdle() error { return nil }

// Destroy is a no-op.
func (d *Device) Destroy() {}

// Queue implements hal.Queue.
type Queue struct {
	device *Device
}

// FamilyIndex returns 0; the noop device has one queue family.
func (q *Queue) FamilyIndex() uint32 { return 0 }

// Submit counts the submission and signals the fence immediately.
func (q *Queue) Submit(desc *hal.SubmitDescriptor) error {
	q.device.Counters.Submits.Add(1)
	q.device.logOp("submit")
	if f, ok := desc.Fence.(*Fence); ok && f != nil {
		f.signaled.Store(true)
	}
	return nil
}

// Present counts the present and shadows the image's layout back to
// LayoutPresent.
func (q *Queue) Present(sc hal.Swapchain, imageIndex uint32, _ []hal.Semaphore) error {
	q.device.Counters.Presents.Add(1)
	q.device.logOp("present")
	if s, ok := sc.(*Swapchain); ok && int(imageIndex) < len(s.images) {
		s.images[imageIndex].setLayout(types.LayoutPresent)
	}
	return nil
}

// CommandPool implements hal.CommandPool.
type CommandPool struct {
	device *Device
	family uint32

	mu      sync.Mutex
	buffers []*CommandBuffer
	next    int
}

// Request returns a recycled or fresh command buffer.
func (p *CommandPool) Request(_ hal.CommandBufferLevel) (hal.CommandBuffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.next < len(p.buffers) {
		cb := p.buffers[p.next]
		p.next++
		return cb, nil
	}
	cb := &CommandBuffer{device: p.device}
	p.buffers = append(p.buffers, cb)
	p.next++
	return cb, nil
}

// Reset recycles all buffers allocated from the pool.
func (p *CommandPool) Reset() error {
	p.mu.Lock()
	p.next = 0
	p.mu.Unlock()
	return nil
}
