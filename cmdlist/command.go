// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cmdlist

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/types"
)

// commandKind tags one command record.
type commandKind uint8

const (
	cmdBeginRendering commandKind = iota
	cmdEndRendering
	cmdSetViewport
	cmdSetScissor
	cmdSetDepthBias
	cmdSetLineWidth
	cmdSetBlendConstants
	cmdBindPipeline
	cmdBindVertexBuffer
	cmdDraw
	cmdDrawIndexed
	cmdDrawIndexedIndirect
	cmdDispatch
	cmdDispatchIndirect
	cmdCopyBuffer
	cmdCopyBufferToTexture
	cmdBlitTexture
	cmdGenTextureMipmaps
	cmdAddTransitions
	cmdAddTextureTransition
)

// command is one record of the deferred stream: a kind tag, the
// intrusive next pointer, a fixed inline payload and slice views into
// the list's tail arenas for variable-length data. Records live in
// chunked arrays owned by the list; building one costs a bump of the
// chunk cursor and a pointer write.
type command struct {
	kind commandKind
	next *command

	u32   [6]uint32
	i32   int32
	f32   [4]float32
	u64   uint64
	color gputypes.Color

	rect     types.Rect2D
	layout   types.TextureLayout
	srcUsage types.TextureUsage
	dstUsage types.TextureUsage
	stages   [2]types.PipelineStageFlags

	pipeline  hal.Pipeline
	buffer    hal.Buffer
	buffer2   hal.Buffer
	texture   hal.Texture
	texture2  hal.Texture
	rendering *hal.RenderingLayout

	sets               []hal.DescriptorSet
	bufferCopies       []types.BufferCopy
	copyRegions        []types.BufferTextureCopyRegion
	memoryTransitions  []hal.MemoryTransition
	bufferTransitions  []hal.BufferTransition
	textureTransitions []hal.TextureTransition
}

// execute issues the command against a context. The single dispatch
// switch replaces per-command virtual calls.
func (c *command) execute(ctx hal.CommandContext) {
	switch c.kind {
	case cmdBeginRendering:
		ctx.BeginRendering(c.rendering)
	case cmdEndRendering:
		ctx.EndRendering()
	case cmdSetViewport:
		ctx.SetViewport(c.rect)
	case cmdSetScissor:
		ctx.SetScissor(c.rect)
	case cmdSetDepthBias:
		ctx.SetDepthBias(c.f32[0], c.f32[1], c.f32[2])
	case cmdSetLineWidth:
		ctx.SetLineWidth(c.f32[0])
	case cmdSetBlendConstants:
		ctx.SetBlendConstants(c.color)
	case cmdBindPipeline:
		ctx.BindPipeline(c.pipeline, c.sets)
	case cmdBindVertexBuffer:
		ctx.BindVertexBuffer(c.buffer, c.u64)
	case cmdDraw:
		ctx.Draw(c.u32[0], c.u32[1], c.u32[2], c.u32[3])
	case cmdDrawIndexed:
		ctx.DrawIndexed(c.buffer, c.u32[0], c.u32[1], c.u32[2], c.i32, c.u32[3])
	case cmdDrawIndexedIndirect:
		ctx.DrawIndexedIndirect(c.buffer, c.buffer2, c.u32[0], c.u32[1], c.u32[2])
	case cmdDispatch:
		ctx.Dispatch(c.u32[0], c.u32[1], c.u32[2])
	case cmdDispatchIndirect:
		ctx.DispatchIndirect(c.buffer, c.u32[0])
	case cmdCopyBuffer:
		ctx.CopyBuffer(c.buffer, c.buffer2, c.bufferCopies)
	case cmdCopyBufferToTexture:
		ctx.CopyBufferToTexture(c.buffer, c.texture, c.copyRegions)
	case cmdBlitTexture:
		ctx.BlitTexture(c.texture, c.srcUsage, c.texture2, c.dstUsage)
	case cmdGenTextureMipmaps:
		ctx.GenTextureMipmaps(c.texture)
	case cmdAddTransitions:
		ctx.AddTransitions(c.stages[0], c.stages[1],
			c.memoryTransitions, c.bufferTransitions, c.textureTransitions)
	case cmdAddTextureTransition:
		ctx.AddTextureTransition(c.texture, c.layout)
	}
}
