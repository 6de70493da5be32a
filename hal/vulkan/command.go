// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"log/slog"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/hal/vulkan/vk"
	"github.com/gogpu/forge/types"
)

// CommandPool implements hal.CommandPool. Buffers recycle through the
// pool: Reset rewinds the cursor and resets the VkCommandPool.
type CommandPool struct {
	device *Device
	handle vk.CommandPool

	buffers []*CommandBuffer
	next    int
}

// Request returns a recycled or freshly allocated command buffer.
func (p *CommandPool) Request(level hal.CommandBufferLevel) (hal.CommandBuffer, error) {
	if p.next < len(p.buffers) {
		cb := p.buffers[p.next]
		p.next++
		return cb, nil
	}

	info := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        p.handle,
		Level:              vk.CommandBufferLevel(level),
		CommandBufferCount: 1,
	}
	var handle vk.CommandBuffer
	if result := p.device.cmds.AllocateCommandBuffers(p.device.handle, &info, &handle); result != vk.Success {
		return nil, resultToError("vkAllocateCommandBuffers", result)
	}
	cb := &CommandBuffer{device: p.device, handle: handle}
	p.buffers = append(p.buffers, cb)
	p.next++
	return cb, nil
}

// Reset recycles every buffer allocated from the pool.
func (p *CommandPool) Reset() error {
	p.next = 0
	return resultToError("vkResetCommandPool",
		p.device.cmds.ResetCommandPool(p.device.handle, p.handle))
}

// CommandBuffer implements hal.CommandBuffer.
type CommandBuffer struct {
	device *Device
	handle vk.CommandBuffer

	boundLayout *PipelineLayout
}

// Begin starts recording.
func (c *CommandBuffer) Begin(oneTime bool) error {
	info := vk.CommandBufferBeginInfo{SType: vk.StructureTypeCommandBufferBeginInfo}
	if oneTime {
		info.Flags = vk.CommandBufferUsageOneTimeSubmitBit
	}
	return resultToError("vkBeginCommandBuffer", c.device.cmds.BeginCommandBuffer(c.handle, &info))
}

// End finishes recording.
func (c *CommandBuffer) End() error {
	return resultToError("vkEndCommandBuffer", c.device.cmds.EndCommandBuffer(c.handle))
}

// BeginRendering begins a render pass. Prebuilt pass + framebuffer
// (the graph path) are used directly; otherwise a compatible pass is
// derived from the attachment lists and cached on the device.
func (c *CommandBuffer) BeginRendering(layout *hal.RenderingLayout) {
	rp, rpOK := layout.RenderPass.(*RenderPass)
	fb, fbOK := layout.Framebuffer.(*Framebuffer)
	if !rpOK || !fbOK {
		var err error
		rp, fb, err = c.device.deriveRenderingObjects(layout)
		if err != nil {
			hal.Logger().Warn("vulkan: dynamic rendering scope dropped", slog.Any("error", err))
			return
		}
	}

	clears := make([]vk.ClearValue, 0, len(layout.ClearValues))
	for i, cv := range layout.ClearValues {
		if i < len(layout.ColorAttachments) {
			clears = append(clears, vk.ClearColorValue(
				float32(cv.Color.R), float32(cv.Color.G), float32(cv.Color.B), float32(cv.Color.A)))
		} else {
			clears = append(clears, vk.ClearDepthStencilValue(cv.Depth, cv.Stencil))
		}
	}

	area := vk.Rect2D{
		Offset: vk.Offset2D{X: layout.RenderArea.X, Y: layout.RenderArea.Y},
		Extent: vk.Extent2D{Width: layout.RenderArea.Width, Height: layout.RenderArea.Height},
	}
	if area.Extent.Width == 0 {
		area.Extent = vk.Extent2D{Width: fb.extent.Width, Height: fb.extent.Height}
	}

	info := vk.RenderPassBeginInfo{
		SType:           vk.StructureTypeRenderPassBeginInfo,
		RenderPass:      rp.handle,
		Framebuffer:     fb.handle,
		RenderArea:      area,
		ClearValueCount: uint32(len(clears)),
	}
	if len(clears) > 0 {
		info.PClearValues = &clears[0]
	}
	c.device.cmds.CmdBeginRenderPass(c.handle, &info, 0)
}

// EndRendering ends the render pass.
func (c *CommandBuffer) EndRendering() {
	c.device.cmds.CmdEndRenderPass(c.handle)
}

// SetViewport sets the viewport. The vertical flip keeps clip-space Y
// pointing up.
func (c *CommandBuffer) SetViewport(rect types.Rect2D) {
	viewport := vk.Viewport{
		X:        float32(rect.X),
		Y:        float32(rect.Y) + float32(rect.Height),
		Width:    float32(rect.Width),
		Height:   -float32(rect.Height),
		MinDepth: 0,
		MaxDepth: 1,
	}
	c.device.cmds.CmdSetViewport(c.handle, &viewport)
}

// SetScissor sets the scissor rectangle.
func (c *CommandBuffer) SetScissor(rect types.Rect2D) {
	scissor := vk.Rect2D{
		Offset: vk.Offset2D{X: rect.X, Y: rect.Y},
		Extent: vk.Extent2D{Width: rect.Width, Height: rect.Height},
	}
	c.device.cmds.CmdSetScissor(c.handle, &scissor)
}

// SetDepthBias sets depth bias.
func (c *CommandBuffer) SetDepthBias(constantFactor, clamp, slopeFactor float32) {
	c.device.cmds.CmdSetDepthBias(c.handle, constantFactor, clamp, slopeFactor)
}

// SetLineWidth sets the line width.
func (c *CommandBuffer) SetLineWidth(width float32) {
	c.device.cmds.CmdSetLineWidth(c.handle, width)
}

// SetBlendConstants sets the blend constants.
func (c *CommandBuffer) SetBlendConstants(color gputypes.Color) {
	constants := [4]float32{
		float32(color.R), float32(color.G), float32(color.B), float32(color.A),
	}
	c.device.cmds.CmdSetBlendConstants(c.handle, &constants)
}

// BindPipeline binds the pipeline and its descriptor sets.
func (c *CommandBuffer) BindPipeline(pipeline hal.Pipeline, sets []hal.DescriptorSet) {
	p, ok := pipeline.(*Pipeline)
	if !ok || p.handle == vk.NullHandle {
		hal.Logger().Warn("vulkan: bind of invalid pipeline dropped")
		return
	}
	c.device.cmds.CmdBindPipeline(c.handle, p.bindPoint, p.handle)
	c.boundLayout = p.layout

	if len(sets) == 0 {
		return
	}
	vkSets := make([]vk.DescriptorSet, 0, len(sets))
	for _, s := range sets {
		if ds, ok := s.(*DescriptorSet); ok && ds != nil {
			vkSets = append(vkSets, ds.handle)
		}
	}
	c.device.cmds.CmdBindDescriptorSets(c.handle, p.bindPoint, p.layout.handle, 0, vkSets)
}

// BindVertexBuffer binds the packed vertex buffer at binding 0.
func (c *CommandBuffer) BindVertexBuffer(buffer hal.Buffer, offset uint64) {
	if b, ok := buffer.(*Buffer); ok {
		c.device.cmds.CmdBindVertexBuffers(c.handle, 0, b.handle, offset)
	}
}

// Draw draws non-indexed primitives.
func (c *CommandBuffer) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	c.device.cmds.CmdDraw(c.handle, vertexCount, instanceCount, firstVertex, firstInstance)
}

// DrawIndexed binds the index buffer as 32-bit and draws.
func (c *CommandBuffer) DrawIndexed(indexBuffer hal.Buffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	if b, ok := indexBuffer.(*Buffer); ok {
		c.device.cmds.CmdBindIndexBuffer(c.handle, b.handle, 0, vk.IndexTypeUint32)
	}
	c.device.cmds.CmdDrawIndexed(c.handle, indexCount, instanceCount, firstIndex, vertexOffset, firstInstance)
}

// DrawIndexedIndirect draws with GPU-supplied parameters.
func (c *CommandBuffer) DrawIndexedIndirect(indirect hal.Buffer, indexBuffer hal.Buffer, offset, drawCount, stride uint32) {
	if b, ok := indexBuffer.(*Buffer); ok {
		c.device.cmds.CmdBindIndexBuffer(c.handle, b.handle, 0, vk.IndexTypeUint32)
	}
	if b, ok := indirect.(*Buffer); ok {
		c.device.cmds.CmdDrawIndexedIndirect(c.handle, b.handle, uint64(offset), drawCount, stride)
	}
}

// Dispatch dispatches compute workgroups.
func (c *CommandBuffer) Dispatch(x, y, z uint32) {
	c.device.cmds.CmdDispatch(c.handle, x, y, z)
}

// DispatchIndirect dispatches with GPU-supplied parameters.
func (c *CommandBuffer) DispatchIndirect(indirect hal.Buffer, offset uint32) {
	if b, ok := indirect.(*Buffer); ok {
		c.device.cmds.CmdDispatchIndirect(c.handle, b.handle, uint64(offset))
	}
}

// CopyBuffer copies regions between buffers.
func (c *CommandBuffer) CopyBuffer(src, dst hal.Buffer, regions []types.BufferCopy) {
	s, okS := src.(*Buffer)
	d, okD := dst.(*Buffer)
	if !okS || !okD || len(regions) == 0 {
		return
	}
	vkRegions := make([]vk.BufferCopy, len(regions))
	for i, r := range regions {
		vkRegions[i] = vk.BufferCopy{SrcOffset: r.SrcOffset, DstOffset: r.DstOffset, Size: r.Size}
	}
	c.device.cmds.CmdCopyBuffer(c.handle, s.handle, d.handle, vkRegions)
}

// CopyBufferToTexture copies buffer bytes into texture regions. The
// texture must already be in TransferDst.
func (c *CommandBuffer) CopyBufferToTexture(src hal.Buffer, dst hal.Texture, regions []types.BufferTextureCopyRegion) {
	s, okS := src.(*Buffer)
	t, okT := dst.(*Texture)
	if !okS || !okT || len(regions) == 0 {
		return
	}
	vkRegions := make([]vk.BufferImageCopy, len(regions))
	for i, r := range regions {
		layerCount := r.LayerCount
		if layerCount == 0 {
			layerCount = 1
		}
		vkRegions[i] = vk.BufferImageCopy{
			BufferOffset: r.BufferOffset,
			ImageSubresource: vk.ImageSubresourceLayers{
				AspectMask:     aspectOf(t.spec.Format),
				MipLevel:       r.MipLevel,
				BaseArrayLayer: r.ArrayLayer,
				LayerCount:     layerCount,
			},
			ImageOffset: vk.Offset3D{X: r.Offset.X, Y: r.Offset.Y, Z: r.Offset.Z},
			ImageExtent: vk.Extent3D{Width: r.Extent.Width, Height: r.Extent.Height, Depth: max32(r.Extent.Depth, 1)},
		}
	}
	c.device.cmds.CmdCopyBufferToImage(c.handle, s.handle, t.handle, vk.ImageLayoutTransferDst, vkRegions)
	t.setLayout(vk.ImageLayoutTransferDst)
}

// BlitTexture blits the full extent of src into dst.
func (c *CommandBuffer) BlitTexture(src hal.Texture, srcUsage types.TextureUsage, dst hal.Texture, dstUsage types.TextureUsage) {
	s, okS := src.(*Texture)
	d, okD := dst.(*Texture)
	if !okS || !okD {
		return
	}

	c.transitionImage(s, layoutToVk(srcUsage.Layout()), vk.ImageLayoutTransferSrc,
		accessFlagsToVk(srcUsage.Access()), vk.AccessTransferReadBit,
		stageFlagsToVk(srcUsage.PipelineStages()), vk.PipelineStageTransferBit)
	c.transitionImage(d, layoutToVk(dstUsage.Layout()), vk.ImageLayoutTransferDst,
		accessFlagsToVk(dstUsage.Access()), vk.AccessTransferWriteBit,
		stageFlagsToVk(dstUsage.PipelineStages()), vk.PipelineStageTransferBit)

	blit := vk.ImageBlit{
		SrcSubresource: vk.ImageSubresourceLayers{AspectMask: aspectOf(s.spec.Format), LayerCount: 1},
		DstSubresource: vk.ImageSubresourceLayers{AspectMask: aspectOf(d.spec.Format), LayerCount: 1},
	}
	blit.SrcOffsets[1] = vk.Offset3D{
		X: int32(s.spec.Extent.Width), Y: int32(s.spec.Extent.Height), Z: 1,
	}
	blit.DstOffsets[1] = vk.Offset3D{
		X: int32(d.spec.Extent.Width), Y: int32(d.spec.Extent.Height), Z: 1,
	}
	c.device.cmds.CmdBlitImage(c.handle,
		s.handle, vk.ImageLayoutTransferSrc,
		d.handle, vk.ImageLayoutTransferDst,
		[]vk.ImageBlit{blit}, 1 /* linear */)

	s.setLayout(vk.ImageLayoutTransferSrc)
	d.setLayout(vk.ImageLayoutTransferDst)
}

// GenTextureMipmaps fills levels 1..N by blitting down the chain,
// leaving the whole image shader-readable.
func (c *CommandBuffer) GenTextureMipmaps(texture hal.Texture) {
	t, ok := texture.(*Texture)
	if !ok || t.spec.MipLevels <= 1 {
		if ok {
			c.AddTextureTransition(texture, types.LayoutShaderReadOnly)
		}
		return
	}

	width := int32(t.spec.Extent.Width)
	height := int32(t.spec.Extent.Height)

	for level := uint32(1); level < t.spec.MipLevels; level++ {
		// Previous level becomes the blit source.
		c.levelBarrier(t, level-1, vk.ImageLayoutTransferDst, vk.ImageLayoutTransferSrc,
			vk.AccessTransferWriteBit, vk.AccessTransferReadBit)

		nextWidth := max32i(width/2, 1)
		nextHeight := max32i(height/2, 1)

		blit := vk.ImageBlit{
			SrcSubresource: vk.ImageSubresourceLayers{
				AspectMask: aspectOf(t.spec.Format), MipLevel: level - 1, LayerCount: 1,
			},
			DstSubresource: vk.ImageSubresourceLayers{
				AspectMask: aspectOf(t.spec.Format), MipLevel: level, LayerCount: 1,
			},
		}
		blit.SrcOffsets[1] = vk.Offset3D{X: width, Y: height, Z: 1}
		blit.DstOffsets[1] = vk.Offset3D{X: nextWidth, Y: nextHeight, Z: 1}
		c.device.cmds.CmdBlitImage(c.handle,
			t.handle, vk.ImageLayoutTransferSrc,
			t.handle, vk.ImageLayoutTransferDst,
			[]vk.ImageBlit{blit}, 1)

		c.levelBarrier(t, level-1, vk.ImageLayoutTransferSrc, vk.ImageLayoutShaderReadOnly,
			vk.AccessTransferReadBit, vk.AccessShaderReadBit)

		width = nextWidth
		height = nextHeight
	}

	c.levelBarrier(t, t.spec.MipLevels-1, vk.ImageLayoutTransferDst, vk.ImageLayoutShaderReadOnly,
		vk.AccessTransferWriteBit, vk.AccessShaderReadBit)
	t.setLayout(vk.ImageLayoutShaderReadOnly)
}

func (c *CommandBuffer) levelBarrier(t *Texture, level uint32, oldLayout, newLayout vk.ImageLayout, srcAccess, dstAccess vk.AccessFlags) {
	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		SrcAccessMask:       srcAccess,
		DstAccessMask:       dstAccess,
		OldLayout:           oldLayout,
		NewLayout:           newLayout,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               t.handle,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:   aspectOf(t.spec.Format),
			BaseMipLevel: level,
			LevelCount:   1,
			LayerCount:   vk.RemainingArrayLayers,
		},
	}
	c.device.cmds.CmdPipelineBarrier(c.handle,
		vk.PipelineStageTransferBit, vk.PipelineStageTransferBit|vk.PipelineStageFragmentShaderBit,
		nil, nil, []vk.ImageMemoryBarrier{barrier})
}

// AddTransitions emits one pipeline barrier from usage transitions.
func (c *CommandBuffer) AddTransitions(srcStages, dstStages types.PipelineStageFlags,
	memory []hal.MemoryTransition, buffers []hal.BufferTransition, textures []hal.TextureTransition) {

	memBarriers := make([]vk.MemoryBarrier, 0, len(memory))
	for _, m := range memory {
		memBarriers = append(memBarriers, vk.MemoryBarrier{
			SType:         vk.StructureTypeMemoryBarrier,
			SrcAccessMask: accessFlagsToVk(m.SrcAccess),
			DstAccessMask: accessFlagsToVk(m.DstAccess),
		})
	}

	bufBarriers := make([]vk.BufferMemoryBarrier, 0, len(buffers))
	for _, b := range buffers {
		buf, ok := b.Buffer.(*Buffer)
		if !ok {
			continue
		}
		bufBarriers = append(bufBarriers, vk.BufferMemoryBarrier{
			SType:               vk.StructureTypeBufferMemoryBarrier,
			SrcAccessMask:       accessFlagsToVk(b.SrcUsage.Access()),
			DstAccessMask:       accessFlagsToVk(b.DstUsage.Access()),
			SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
			DstQueueFamilyIndex: vk.QueueFamilyIgnored,
			Buffer:              buf.handle,
			Size:                vk.WholeSize,
		})
	}

	imgBarriers := make([]vk.ImageMemoryBarrier, 0, len(textures))
	for _, tr := range textures {
		tex, ok := tr.Texture.(*Texture)
		if !ok {
			continue
		}
		subresource := tex.subresourceRange()
		if tr.Range.LevelCount != 0 || tr.Range.LayerCount != 0 {
			subresource = vk.ImageSubresourceRange{
				AspectMask:     aspectOf(tex.spec.Format),
				BaseMipLevel:   tr.Range.BaseMipLevel,
				LevelCount:     tr.Range.LevelCount,
				BaseArrayLayer: tr.Range.BaseArrayLayer,
				LayerCount:     tr.Range.LayerCount,
			}
		}
		newLayout := layoutToVk(tr.DstUsage.Layout())
		imgBarriers = append(imgBarriers, vk.ImageMemoryBarrier{
			SType:               vk.StructureTypeImageMemoryBarrier,
			SrcAccessMask:       accessFlagsToVk(tr.SrcUsage.Access()),
			DstAccessMask:       accessFlagsToVk(tr.DstUsage.Access()),
			OldLayout:           layoutToVk(tr.SrcUsage.Layout()),
			NewLayout:           newLayout,
			SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
			DstQueueFamilyIndex: vk.QueueFamilyIgnored,
			Image:               tex.handle,
			SubresourceRange:    subresource,
		})
		tex.setLayout(newLayout)
	}

	if len(memBarriers) == 0 && len(bufBarriers) == 0 && len(imgBarriers) == 0 {
		return
	}
	c.device.cmds.CmdPipelineBarrier(c.handle,
		stageFlagsToVk(srcStages), stageFlagsToVk(dstStages),
		memBarriers, bufBarriers, imgBarriers)
}

// AddTextureTransition transitions one texture from its shadowed
// layout to newLayout.
func (c *CommandBuffer) AddTextureTransition(texture hal.Texture, newLayout types.TextureLayout) {
	t, ok := texture.(*Texture)
	if !ok {
		return
	}
	target := layoutToVk(newLayout)
	current := t.currentLayout()
	if current == target {
		return
	}

	c.transitionImage(t, current, target,
		layoutAccess(current), layoutAccess(target),
		layoutStage(current), layoutStage(target))
}

func (c *CommandBuffer) transitionImage(t *Texture, oldLayout, newLayout vk.ImageLayout,
	srcAccess, dstAccess vk.AccessFlags, srcStages, dstStages vk.PipelineStageFlags) {

	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		SrcAccessMask:       srcAccess,
		DstAccessMask:       dstAccess,
		OldLayout:           oldLayout,
		NewLayout:           newLayout,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               t.handle,
		SubresourceRange:    t.subresourceRange(),
	}
	if srcStages == 0 {
		srcStages = vk.PipelineStageTopOfPipeBit
	}
	if dstStages == 0 {
		dstStages = vk.PipelineStageBottomOfPipeBit
	}
	c.device.cmds.CmdPipelineBarrier(c.handle, srcStages, dstStages,
		nil, nil, []vk.ImageMemoryBarrier{barrier})
	t.setLayout(newLayout)
}

// layoutAccess returns the access mask a layout implies.
func layoutAccess(l vk.ImageLayout) vk.AccessFlags {
	switch l {
	case vk.ImageLayoutColorAttachment:
		return vk.AccessColorAttachmentReadBit | vk.AccessColorAttachmentWriteBit
	case vk.ImageLayoutDepthStencilAttachment:
		return vk.AccessDepthStencilAttachmentReadBit | vk.AccessDepthStencilAttachmentWriteBit
	case vk.ImageLayoutShaderReadOnly:
		return vk.AccessShaderReadBit
	case vk.ImageLayoutTransferSrc:
		return vk.AccessTransferReadBit
	case vk.ImageLayoutTransferDst:
		return vk.AccessTransferWriteBit
	case vk.ImageLayoutPresentSrcKHR:
		return vk.AccessMemoryReadBit
	}
	return 0
}

// layoutStage returns the pipeline stage a layout implies.
func layoutStage(l vk.ImageLayout) vk.PipelineStageFlags {
	switch l {
	case vk.ImageLayoutColorAttachment:
		return vk.PipelineStageColorAttachmentOutputBit
	case vk.ImageLayoutDepthStencilAttachment:
		return vk.PipelineStageEarlyFragmentTestsBit | vk.PipelineStageLateFragmentTestsBit
	case vk.ImageLayoutShaderReadOnly:
		return vk.PipelineStageFragmentShaderBit
	case vk.ImageLayoutTransferSrc, vk.ImageLayoutTransferDst:
		return vk.PipelineStageTransferBit
	case vk.ImageLayoutPresentSrcKHR:
		return vk.PipelineStageBottomOfPipeBit
	case vk.ImageLayoutUndefined:
		return vk.PipelineStageTopOfPipeBit
	}
	return vk.PipelineStageAllCommandsBit
}

func max32(v, lo uint32) uint32 {
	if v < lo {
		return lo
	}
	return v
}

func max32i(v, lo int32) int32 {
	if v < lo {
		return lo
	}
	return v
}
