// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package cmdlist implements the deferred command list: rendering
// commands recorded on hot paths into a bump-allocated chain, then
// replayed against an RHI command context.
//
// Commands are fixed-size tagged records allocated from chunked arrays
// owned by the list, linked through an intrusive next pointer and
// traversed in insertion order. Variable-length tails (copy regions,
// transition arrays, descriptor-set lists) are bump-allocated from
// typed arenas and referenced as slice views.
//
// A list may be replayed more than once — commands hold value state
// only — but the canonical frame path replays once and calls Reset
// after the GPU has finished the submission that consumed it.
package cmdlist

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/types"
)

const commandChunkSize = 256

// commandChunk is one bump-allocated block of command records.
type commandChunk struct {
	cmds [commandChunkSize]command
	used int
}

// List is a recorded, replayable stream of rendering commands.
// A list is single-writer: one goroutine records, then replay may
// happen elsewhere once recording is done.
type List struct {
	head *command
	tail *command
	n    int

	chunks []*commandChunk
	cur    int

	setArena        arena[hal.DescriptorSet]
	bufferCopyArena arena[types.BufferCopy]
	regionArena     arena[types.BufferTextureCopyRegion]
	memoryArena     arena[hal.MemoryTransition]
	bufTransArena   arena[hal.BufferTransition]
	texTransArena   arena[hal.TextureTransition]
	renderingArena  arena[hal.RenderingLayout]
}

// New creates an empty command list.
func New() *List {
	return &List{}
}

// Len returns the number of recorded commands.
func (l *List) Len() int {
	return l.n
}

// Replay walks the chain in insertion order, issuing every command
// against ctx.
func (l *List) Replay(ctx hal.CommandContext) {
	for c := l.head; c != nil; c = c.next {
		c.execute(ctx)
	}
}

// Reset drops all recorded commands and tail data. Chunk memory is
// kept for the next recording. Must not be called while a submission
// consuming a replay of this list is still pending.
func (l *List) Reset() {
	l.head = nil
	l.tail = nil
	l.n = 0
	for _, ch := range l.chunks {
		ch.used = 0
	}
	l.cur = 0
	l.setArena.reset()
	l.bufferCopyArena.reset()
	l.regionArena.reset()
	l.memoryArena.reset()
	l.bufTransArena.reset()
	l.texTransArena.reset()
	l.renderingArena.reset()
}

// alloc bumps one command record off the current chunk and appends it
// to the chain.
func (l *List) alloc(kind commandKind) *command {
	if len(l.chunks) == 0 {
		l.chunks = append(l.chunks, &commandChunk{})
	}
	chunk := l.chunks[l.cur]
	if chunk.used == commandChunkSize {
		l.cur++
		if l.cur == len(l.chunks) {
			l.chunks = append(l.chunks, &commandChunk{})
		}
		chunk = l.chunks[l.cur]
	}

	c := &chunk.cmds[chunk.used]
	chunk.used++
	*c = command{kind: kind}

	if l.head == nil {
		l.head = c
	} else {
		l.tail.next = c
	}
	l.tail = c
	l.n++
	return c
}

// BeginRendering records the start of a rendering scope. The layout is
// copied into the list.
func (l *List) BeginRendering(layout *hal.RenderingLayout) {
	c := l.alloc(cmdBeginRendering)
	stored := l.renderingArena.alloc(1)
	stored[0] = *layout
	c.rendering = &stored[0]
}

// EndRendering records the end of the current rendering scope.
func (l *List) EndRendering() {
	l.alloc(cmdEndRendering)
}

// SetViewport records a viewport change.
func (l *List) SetViewport(rect types.Rect2D) {
	c := l.alloc(cmdSetViewport)
	c.rect = rect
}

// SetScissor records a scissor change.
func (l *List) SetScissor(rect types.Rect2D) {
	c := l.alloc(cmdSetScissor)
	c.rect = rect
}

// SetDepthBias records a depth bias change.
func (l *List) SetDepthBias(constantFactor, clamp, slopeFactor float32) {
	c := l.alloc(cmdSetDepthBias)
	c.f32[0] = constantFactor
	c.f32[1] = clamp
	c.f32[2] = slopeFactor
}

// SetLineWidth records a line width change.
func (l *List) SetLineWidth(width float32) {
	c := l.alloc(cmdSetLineWidth)
	c.f32[0] = width
}

// SetBlendConstants records a blend constant change.
func (l *List) SetBlendConstants(color gputypes.Color) {
	c := l.alloc(cmdSetBlendConstants)
	c.color = color
}

// BindPipeline records a pipeline bind with its descriptor sets. The
// set list is copied into the list.
func (l *List) BindPipeline(pipeline hal.Pipeline, sets []hal.DescriptorSet) {
	c := l.alloc(cmdBindPipeline)
	c.pipeline = pipeline
	c.sets = l.setArena.clone(sets)
}

// BindVertexBuffer records a vertex buffer bind at binding 0.
func (l *List) BindVertexBuffer(buffer hal.Buffer, offset uint64) {
	c := l.alloc(cmdBindVertexBuffer)
	c.buffer = buffer
	c.u64 = offset
}

// Draw records a non-indexed draw.
func (l *List) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	c := l.alloc(cmdDraw)
	c.u32[0] = vertexCount
	c.u32[1] = instanceCount
	c.u32[2] = firstVertex
	c.u32[3] = firstInstance
}

// DrawIndexedParams bundles the arguments of an indexed draw.
type DrawIndexedParams struct {
	IndexBuffer   hal.Buffer
	IndexCount    uint32
	InstanceCount uint32
	FirstIndex    uint32
	VertexOffset  int32
	FirstInstance uint32
}

// DrawIndexed records an indexed draw.
func (l *List) DrawIndexed(p DrawIndexedParams) {
	c := l.alloc(cmdDrawIndexed)
	c.buffer = p.IndexBuffer
	c.u32[0] = p.IndexCount
	c.u32[1] = p.InstanceCount
	c.u32[2] = p.FirstIndex
	c.i32 = p.VertexOffset
	c.u32[3] = p.FirstInstance
}

// DrawIndexedIndirectParams bundles the arguments of an indirect
// indexed draw.
type DrawIndexedIndirectParams struct {
	IndirectBuffer hal.Buffer
	IndexBuffer    hal.Buffer
	Offset         uint32
	DrawCount      uint32
	Stride         uint32
}

// DrawIndexedIndirect records an indirect indexed draw.
func (l *List) DrawIndexedIndirect(p DrawIndexedIndirectParams) {
	c := l.alloc(cmdDrawIndexedIndirect)
	c.buffer = p.IndirectBuffer
	c.buffer2 = p.IndexBuffer
	c.u32[0] = p.Offset
	c.u32[1] = p.DrawCount
	c.u32[2] = p.Stride
}

// Dispatch records a compute dispatch.
func (l *List) Dispatch(x, y, z uint32) {
	c := l.alloc(cmdDispatch)
	c.u32[0] = x
	c.u32[1] = y
	c.u32[2] = z
}

// DispatchIndirect records an indirect compute dispatch.
func (l *List) DispatchIndirect(indirect hal.Buffer, offset uint32) {
	c := l.alloc(cmdDispatchIndirect)
	c.buffer = indirect
	c.u32[0] = offset
}

// CopyBuffer records a buffer-to-buffer copy. Regions are copied into
// the list.
func (l *List) CopyBuffer(src, dst hal.Buffer, regions []types.BufferCopy) {
	c := l.alloc(cmdCopyBuffer)
	c.buffer = src
	c.buffer2 = dst
	c.bufferCopies = l.bufferCopyArena.clone(regions)
}

// CopyBufferToTexture records a buffer-to-texture copy. Regions are
// copied into the list.
func (l *List) CopyBufferToTexture(src hal.Buffer, dst hal.Texture, regions []types.BufferTextureCopyRegion) {
	c := l.alloc(cmdCopyBufferToTexture)
	c.buffer = src
	c.texture = dst
	c.copyRegions = l.regionArena.clone(regions)
}

// BlitTexture records a full-extent blit between textures.
func (l *List) BlitTexture(src hal.Texture, srcUsage types.TextureUsage, dst hal.Texture, dstUsage types.TextureUsage) {
	c := l.alloc(cmdBlitTexture)
	c.texture = src
	c.texture2 = dst
	c.srcUsage = srcUsage
	c.dstUsage = dstUsage
}

// GenTextureMipmaps records GPU mip generation for a texture.
func (l *List) GenTextureMipmaps(texture hal.Texture) {
	c := l.alloc(cmdGenTextureMipmaps)
	c.texture = texture
}

// AddTransitions records one pipeline barrier. All transition slices
// are copied into the list.
func (l *List) AddTransitions(srcStages, dstStages types.PipelineStageFlags,
	memory []hal.MemoryTransition, buffers []hal.BufferTransition, textures []hal.TextureTransition) {
	c := l.alloc(cmdAddTransitions)
	c.stages[0] = srcStages
	c.stages[1] = dstStages
	c.memoryTransitions = l.memoryArena.clone(memory)
	c.bufferTransitions = l.bufTransArena.clone(buffers)
	c.textureTransitions = l.texTransArena.clone(textures)
}

// AddTextureTransition records a layout transition for one texture.
func (l *List) AddTextureTransition(texture hal.Texture, newLayout types.TextureLayout) {
	c := l.alloc(cmdAddTextureTransition)
	c.texture = texture
	c.layout = newLayout
}
