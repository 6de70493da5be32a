// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hal

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/types"
)

// CommandContext records GPU work. Recording operations are infallible
// at the API level; a context handed an invalid object logs at Warn
// and drops the command.
type CommandContext interface {
	// BeginRendering begins a rendering scope. When the layout carries
	// a prebuilt render pass + framebuffer (the render graph path),
	// the backend uses them directly; otherwise it translates the
	// attachment list to a compatible pass.
	BeginRendering(layout *RenderingLayout)

	// EndRendering ends the current rendering scope.
	EndRendering()

	// SetViewport sets the viewport rectangle.
	SetViewport(rect types.Rect2D)

	// SetScissor sets the scissor rectangle.
	SetScissor(rect types.Rect2D)

	// SetDepthBias sets the depth bias parameters.
	SetDepthBias(constantFactor, clamp, slopeFactor float32)

	// SetLineWidth sets the rasterizer line width.
	SetLineWidth(width float32)

	// SetBlendConstants sets the blend constant color.
	SetBlendConstants(color gputypes.Color)

	// BindPipeline binds a pipeline and its descriptor sets. Exactly
	// one graphics pipeline is bound at a time; previously bound sets
	// stay valid only while the layouts match.
	BindPipeline(pipeline Pipeline, sets []DescriptorSet)

	// BindVertexBuffer binds the packed vertex buffer at binding 0.
	BindVertexBuffer(buffer Buffer, offset uint64)

	// Draw draws non-indexed primitives.
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)

	// DrawIndexed binds the index buffer and draws indexed primitives.
	DrawIndexed(indexBuffer Buffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32)

	// DrawIndexedIndirect draws with GPU-supplied parameters.
	DrawIndexedIndirect(indirect Buffer, indexBuffer Buffer, offset, drawCount, stride uint32)

	// Dispatch dispatches compute workgroups.
	Dispatch(x, y, z uint32)

	// DispatchIndirect dispatches with GPU-supplied parameters.
	DispatchIndirect(indirect Buffer, offset uint32)

	// CopyBuffer copies regions between buffers.
	CopyBuffer(src, dst Buffer, regions []types.BufferCopy)

	// CopyBufferToTexture copies buffer bytes into texture regions.
	// The destination must be in LayoutTransferDst.
	CopyBufferToTexture(src Buffer, dst Texture, regions []types.BufferTextureCopyRegion)

	// BlitTexture blits the full extent of src into dst, transitioning
	// both into transfer layouts from the given usage states.
	BlitTexture(src Texture, srcUsage types.TextureUsage, dst Texture, dstUsage types.TextureUsage)

	// GenTextureMipmaps fills mip levels 1..N by successive blits.
	// Leaves the texture in LayoutShaderReadOnly.
	GenTextureMipmaps(texture Texture)

	// AddTransitions emits one pipeline barrier covering the given
	// memory, buffer and texture transitions.
	AddTransitions(srcStages, dstStages types.PipelineStageFlags,
		memory []MemoryTransition, buffers []BufferTransition, textures []TextureTransition)

	// AddTextureTransition transitions a texture to a new layout,
	// deriving the barrier scopes from the texture's current layout.
	AddTextureTransition(texture Texture, newLayout types.TextureLayout)
}

// RenderingLayout describes the attachments of one rendering scope.
type RenderingLayout struct {
	// RenderPass and Framebuffer, when set, are the prebuilt objects
	// the scope runs in. When nil the backend derives a compatible
	// pass from the attachment lists.
	RenderPass  RenderPass
	Framebuffer Framebuffer

	ColorAttachments []RenderingAttachment
	DepthStencil     *RenderingAttachment

	RenderArea types.Rect2D

	// ClearValues is indexed like the attachment list: colors first,
	// then depth-stencil.
	ClearValues []types.ClearValue
}

// RenderingAttachment is one attachment of a dynamic rendering scope.
type RenderingAttachment struct {
	View    TextureView
	Layout  types.TextureLayout
	LoadOp  types.AttachmentLoadOp
	StoreOp types.AttachmentStoreOp
}

// MemoryTransition is a global memory barrier.
type MemoryTransition struct {
	SrcAccess types.AccessFlags
	DstAccess types.AccessFlags
}

// BufferTransition moves a buffer between usage states.
type BufferTransition struct {
	Buffer   Buffer
	SrcUsage types.BufferUsage
	DstUsage types.BufferUsage
}

// TextureTransition moves a texture between usage states (and thereby
// layouts). A zero Range covers the whole texture.
type TextureTransition struct {
	Texture  Texture
	SrcUsage types.TextureUsage
	DstUsage types.TextureUsage
	Range    types.TextureSubresourceRange
}
