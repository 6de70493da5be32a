// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package noop

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/types"
)

// CommandBuffer implements hal.CommandBuffer. Recording updates the
// device's counters, op log and the per-texture layout shadow.
type CommandBuffer struct {
	device    *Device
	recording bool

	// activeScope is the framebuffer of the open rendering scope, so
	// EndRendering can apply the pass's final layouts.
	activeScope *Framebuffer
	activePass  *RenderPass
}

// Begin starts recording.
func (c *CommandBuffer) Begin(_ bool) error {
	c.recording = true
	return nil
}

// End finishes recording.
func (c *CommandBuffer) End() error {
	c.recording = false
	return nil
}

// BeginRendering opens a rendering scope.
func (c *CommandBuffer) BeginRendering(layout *hal.RenderingLayout) {
	c.device.Counters.RenderScopes.Add(1)
	c.device.logOp("begin-rendering")
	if fb, ok := layout.Framebuffer.(*Framebuffer); ok {
		c.activeScope = fb
	}
	if rp, ok := layout.RenderPass.(*RenderPass); ok {
		c.activePass = rp
	}
}

// EndRendering closes the scope and shadows the pass's final layouts
// onto the attachment textures.
func (c *CommandBuffer) EndRendering() {
	c.device.logOp("end-rendering")
	if c.activeScope != nil && c.activePass != nil {
		for i, att := range c.activeScope.attachments {
			if i >= len(c.activePass.spec.Attachments) {
				break
			}
			if v, ok := att.(*TextureView); ok {
				v.texture.setLayout(c.activePass.spec.Attachments[i].FinalLayout)
			}
		}
	}
	c.activeScope = nil
	c.activePass = nil
}

// SetViewport is counted in the op log only.
func (c *CommandBuffer) SetViewport(_ types.Rect2D) { c.device.logOp("set-viewport") }

// SetScissor is counted in the op log only.
func (c *CommandBuffer) SetScissor(_ types.Rect2D) { c.device.logOp("set-scissor") }

// SetDepthBias is a no-op.
func (c *CommandBuffer) SetDepthBias(_, _, _ float32) {}

// SetLineWidth is a no-op.
func (c *CommandBuffer) SetLineWidth(_ float32) {}

// SetBlendConstants is a no-op.
func (c *CommandBuffer) SetBlendConstants(_ gputypes.Color) {}

// BindPipeline logs the bind.
func (c *CommandBuffer) BindPipeline(_ hal.Pipeline, _ []hal.DescriptorSet) {
	c.device.logOp("bind-pipeline")
}

// BindVertexBuffer logs the bind.
func (c *CommandBuffer) BindVertexBuffer(_ hal.Buffer, _ uint64) {
	c.device.logOp("bind-vertex-buffer")
}

// Draw counts a draw call.
func (c *CommandBuffer) Draw(_, _, _, _ uint32) {
	c.device.Counters.Draws.Add(1)
	c.device.logOp("draw")
}

// DrawIndexed counts a draw call.
func (c *CommandBuffer) DrawIndexed(_ hal.Buffer, _, _, _ uint32, _ int32, _ uint32) {
	c.device.Counters.Draws.Add(1)
	c.device.logOp("draw-indexed")
}

// DrawIndexedIndirect counts a draw call.
func (c *CommandBuffer) DrawIndexedIndirect(_ hal.Buffer, _ hal.Buffer, _, _, _ uint32) {
	c.device.Counters.Draws.Add(1)
	c.device.logOp("draw-indexed-indirect")
}

// Dispatch counts a dispatch.
func (c *CommandBuffer) Dispatch(_, _, _ uint32) {
	c.device.Counters.Dispatches.Add(1)
	c.device.logOp("dispatch")
}

// DispatchIndirect counts a dispatch.
func (c *CommandBuffer) DispatchIndirect(_ hal.Buffer, _ uint32) {
	c.device.Counters.Dispatches.Add(1)
	c.device.logOp("dispatch-indirect")
}

// CopyBuffer logs the copy.
func (c *CommandBuffer) CopyBuffer(_, _ hal.Buffer, regions []types.BufferCopy) {
	c.device.Counters.CopyRegions.Add(int64(len(regions)))
	c.device.logOp("copy-buffer")
}

// CopyBufferToTexture logs the copy and shadows the destination
// layout.
func (c *CommandBuffer) CopyBufferToTexture(_ hal.Buffer, dst hal.Texture, regions []types.BufferTextureCopyRegion) {
	c.device.Counters.CopyRegions.Add(int64(len(regions)))
	c.device.logOp("copy-buffer-to-texture")
	if t, ok := dst.(*Texture); ok {
		t.setLayout(types.LayoutTransferDst)
	}
}

// BlitTexture counts the blit and shadows both layouts.
func (c *CommandBuffer) BlitTexture(src hal.Texture, _ types.TextureUsage, dst hal.Texture, _ types.TextureUsage) {
	c.device.Counters.Blits.Add(1)
	c.device.logOp("blit")
	if t, ok := src.(*Texture); ok {
		t.setLayout(types.LayoutTransferSrc)
	}
	if t, ok := dst.(*Texture); ok {
		t.setLayout(types.LayoutTransferDst)
	}
}

// GenTextureMipmaps leaves the texture shader-readable, as the real
// backend's final blit barrier does.
func (c *CommandBuffer) GenTextureMipmaps(texture hal.Texture) {
	c.device.logOp("gen-mipmaps")
	if t, ok := texture.(*Texture); ok {
		t.setLayout(types.LayoutShaderReadOnly)
	}
}

// AddTransitions counts the barrier and applies the texture layout
// transitions to the shadow.
func (c *CommandBuffer) AddTransitions(_, _ types.PipelineStageFlags,
	_ []hal.MemoryTransition, _ []hal.BufferTransition, textures []hal.TextureTransition) {
	c.device.Counters.Barriers.Add(1)
	c.device.Counters.TextureTransitions.Add(int64(len(textures)))
	c.device.logOp("barrier")
	for _, tr := range textures {
		if t, ok := tr.Texture.(*Texture); ok {
			t.setLayout(tr.DstUsage.Layout())
		}
	}
}

// AddTextureTransition applies a single layout transition to the
// shadow.
func (c *CommandBuffer) AddTextureTransition(texture hal.Texture, newLayout types.TextureLayout) {
	c.device.Counters.TextureTransitions.Add(1)
	c.device.logOp("texture-transition")
	if t, ok := texture.(*Texture); ok {
		t.setLayout(newLayout)
	}
}
