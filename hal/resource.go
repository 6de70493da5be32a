// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hal

import (
	"github.com/gogpu/forge/types"
)

// Buffer is a backend buffer object.
type Buffer interface {
	// Size returns the buffer size in bytes.
	Size() uint64

	// Map returns the buffer's host-visible bytes. Only valid for
	// host-visible placements; device-local buffers return
	// ErrNotMappable.
	Map() ([]byte, error)

	// Unmap invalidates the mapping returned by Map.
	Unmap()

	// Flush makes size bytes at offset visible to the device. size 0
	// flushes to the end of the mapping.
	Flush(offset, size uint64) error
}

// Texture is a backend texture object. Every texture owns a default
// full-range view.
type Texture interface {
	// Spec returns the creation spec.
	Spec() *types.TextureSpec

	// View returns the default full-range view.
	View() TextureView

	// LayerView returns a single-layer view, created on first use.
	// Used for binding individual faces or array slices.
	LayerView(layer uint32) TextureView
}

// TextureView is a backend image view. Opaque.
type TextureView interface{}

// Sampler is a backend sampler object. Opaque.
type Sampler interface{}

// Shader is a backend shader group: one module per stage plus the
// merged reflection info.
type Shader interface {
	// Info returns the merged reflection info.
	Info() *types.ShaderGroupInfo

	// Hash is a stable hash of the group's stage bytecodes. The cache
	// maps equal hashes to one pipeline layout.
	Hash() uint64
}

// RenderPass is a backend render pass object. Opaque.
type RenderPass interface{}

// Framebuffer is a backend framebuffer object. Opaque.
type Framebuffer interface{}

// PipelineLayout is a backend pipeline layout with one descriptor-set
// layout per reflected set.
type PipelineLayout interface {
	// SetLayouts returns the descriptor-set layouts in set order.
	SetLayouts() []DescriptorSetLayout
}

// DescriptorSetLayout is a backend descriptor-set layout.
type DescriptorSetLayout interface {
	// SetIndex returns the set number the layout was reflected from.
	SetIndex() uint32
}

// DescriptorSet is a backend descriptor set. Opaque.
type DescriptorSet interface{}

// Pipeline is a backend graphics or compute pipeline.
type Pipeline interface {
	// Layout returns the pipeline's layout.
	Layout() PipelineLayout
}

// FramebufferDescriptor describes a framebuffer: a render pass
// compatibility class plus the attachment views.
type FramebufferDescriptor struct {
	RenderPass  RenderPass
	Attachments []TextureView
	Extent      types.Extent2D
	Layers      uint32
}

// GraphicsPipelineDescriptor describes a graphics pipeline.
type GraphicsPipelineDescriptor struct {
	Shader     Shader
	Layout     PipelineLayout
	RenderPass RenderPass
	Subpass    uint32
	State      types.PipelineState
}

// ComputePipelineDescriptor describes a compute pipeline.
type ComputePipelineDescriptor struct {
	Shader Shader
	Layout PipelineLayout
}

// BufferBinding is one buffer entry of a descriptor write.
type BufferBinding struct {
	Buffer Buffer
	Offset uint64
	// Range 0 means the whole buffer.
	Range uint64
}

// ImageBinding is one image entry of a descriptor write.
type ImageBinding struct {
	Sampler Sampler
	View    TextureView
	Layout  types.TextureLayout
}

// DescriptorWrite updates one binding of a descriptor set. Dynamic
// descriptors (dynamic offsets) are not supported.
type DescriptorWrite struct {
	Binding uint32
	Type    types.ShaderResourceType
	Buffers []BufferBinding
	Images  []ImageBinding
}
