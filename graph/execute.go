// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

import (
	"log/slog"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/types"
)

// Execute runs every physical pass in order against ctx, then blits
// the back buffer into the acquired swapchain image.
//
// The first Execute after a compile runs a one-time setup that
// transitions every first-used image from Undefined into the layout
// its first-use transition expects, seeding valid layouts for all
// subsequent frames.
func (g *Graph) Execute(ctx hal.CommandContext, swapchainImage hal.Texture) error {
	if !g.compiled {
		return ErrUncompiled
	}

	if !g.initialized {
		g.beforeExecuteSetup(ctx)
		g.initialized = true
	}

	for i := range g.physicalPasses {
		g.runPass(&g.physicalPasses[i], ctx)
	}

	g.copyToPresentImage(ctx, swapchainImage)
	return nil
}

// beforeExecuteSetup transitions each first-used image from Undefined
// to the source usage of its first-use transition. After the ring
// patch that source is the image's end-of-frame usage, so every
// subsequent frame's barriers see the layout they expect.
func (g *Graph) beforeExecuteSetup(ctx hal.CommandContext) {
	var transitions []hal.TextureTransition
	var srcStages, dstStages types.PipelineStageFlags

	for _, passIdx := range g.sorted {
		pass := g.passes[passIdx]
		for _, resIdx := range pass.outImages {
			res := g.resources[resIdx]
			if g.state.imageFirstUse[res.tag] != pass.tag {
				continue
			}
			tr := g.state.perPassImage[pass.tag][res.tag]
			transitions = append(transitions, hal.TextureTransition{
				Texture:  g.physicalImages[res.physical],
				SrcUsage: types.TextureUsageNone,
				DstUsage: tr.src,
			})
			srcStages |= types.TextureUsageNone.PipelineStages()
			dstStages |= tr.src.PipelineStages()
		}
	}

	if len(transitions) > 0 {
		ctx.AddTransitions(srcStages, dstStages, nil, nil, transitions)
	}
}

// runPass updates the pass's descriptor sets if needed, emits its
// barrier, and runs the callback inside the pass's rendering scope.
func (g *Graph) runPass(pp *physicalPass, ctx hal.CommandContext) {
	g.updateDescriptorSets(pp)

	g.emitPipelineBarrier(ctx,
		g.state.perPassImage[pp.tag],
		g.state.perPassBuffer[pp.tag])

	if pp.renderPass != nil {
		ctx.BeginRendering(&hal.RenderingLayout{
			RenderPass:  pp.renderPass,
			Framebuffer: pp.framebuffer,
			RenderArea: types.Rect2D{
				Width:  pp.renderArea.Width,
				Height: pp.renderArea.Height,
			},
			ClearValues: pp.clearValues,
		})
	}

	if pp.onExecute != nil {
		pp.onExecute(ctx)
	}

	if pp.renderPass != nil {
		ctx.EndRendering()
	}
}

// emitPipelineBarrier builds one barrier from a pass's transition
// tables, pruning entries whose source equals their destination unless
// the usage writes.
func (g *Graph) emitPipelineBarrier(ctx hal.CommandContext,
	imageTransitions map[string]imageTransition,
	bufferTransitions map[string]bufferTransition) {

	var srcStages, dstStages types.PipelineStageFlags
	var bufBarriers []hal.BufferTransition
	var texBarriers []hal.TextureTransition

	for _, tag := range sortedKeys(bufferTransitions) {
		tr := bufferTransitions[tag]
		if tr.src == tr.dst && !tr.src.IsWrite() {
			continue
		}
		srcStages |= tr.src.PipelineStages()
		dstStages |= tr.dst.PipelineStages()
		res := g.resources[g.resourceIndex[tag]]
		bufBarriers = append(bufBarriers, hal.BufferTransition{
			Buffer:   g.physicalBuffers[res.physical],
			SrcUsage: tr.src,
			DstUsage: tr.dst,
		})
	}

	for _, tag := range sortedKeys(imageTransitions) {
		tr := imageTransitions[tag]
		if tr.src == tr.dst && !tr.src.IsWrite() {
			continue
		}
		srcStages |= tr.src.PipelineStages()
		dstStages |= tr.dst.PipelineStages()
		res := g.resources[g.resourceIndex[tag]]
		texBarriers = append(texBarriers, hal.TextureTransition{
			Texture:  g.physicalImages[res.physical],
			SrcUsage: tr.src,
			DstUsage: tr.dst,
		})
	}

	if len(bufBarriers) == 0 && len(texBarriers) == 0 {
		return
	}
	ctx.AddTransitions(srcStages, dstStages, nil, bufBarriers, texBarriers)
}

// updateDescriptorSets writes the pass's shader-resource bindings into
// its descriptor sets. Sets are written once after compile and then
// marked stable; Pass.InvalidateBindings forces a rewrite.
func (g *Graph) updateDescriptorSets(pp *physicalPass) {
	if pp.descriptorSetsUpdated {
		return
	}
	pass := g.passes[pp.passIndex]

	for _, tag := range sortedKeys(pass.bindings) {
		sr := pass.bindings[tag]
		if int(sr.Set) >= len(pp.sets) || pp.sets[sr.Set] == nil {
			hal.Logger().Warn("graph: binding references set without layout",
				slog.String("pass", pass.tag),
				slog.String("tag", tag),
				slog.Uint64("set", uint64(sr.Set)))
			continue
		}
		write := hal.DescriptorWrite{Binding: sr.Binding, Type: sr.Type}

		switch sr.Type {
		case types.ResourceSamplerWithTexture:
			sampler := pass.samplers[tag]
			if external, ok := pass.externalImages[tag]; ok {
				for _, tex := range external {
					write.Images = append(write.Images, hal.ImageBinding{
						Sampler: sampler,
						View:    tex.View(),
						Layout:  types.LayoutShaderReadOnly,
					})
				}
			} else if res, ok := g.lookupResource(tag); ok && res.physical >= 0 {
				write.Images = append(write.Images, hal.ImageBinding{
					Sampler: sampler,
					View:    g.physicalImages[res.physical].View(),
					Layout:  types.LayoutShaderReadOnly,
				})
			}

		case types.ResourceUniformBuffer, types.ResourceStorageBuffer:
			if external, ok := pass.externalBuffers[tag]; ok {
				write.Buffers = append(write.Buffers, hal.BufferBinding{Buffer: external})
			} else if res, ok := g.lookupResource(tag); ok && res.physical >= 0 {
				write.Buffers = append(write.Buffers, hal.BufferBinding{
					Buffer: g.physicalBuffers[res.physical],
				})
			}

		default:
			hal.Logger().Warn("graph: unsupported binding type in descriptor update",
				slog.String("pass", pass.tag),
				slog.String("type", sr.Type.String()))
			continue
		}

		if err := g.device.UpdateDescriptorSet(pp.sets[sr.Set], []hal.DescriptorWrite{write}); err != nil {
			hal.Logger().Error("graph: descriptor update failed",
				slog.String("pass", pass.tag),
				slog.String("tag", tag),
				slog.Any("error", err))
		}
	}
	pp.descriptorSetsUpdated = true
}

// copyToPresentImage blits the back buffer into the acquired swapchain
// image. The blit leaves the back buffer in TransferSrc; when its
// first use next frame expects anything else, one more transition
// closes the ring.
func (g *Graph) copyToPresentImage(ctx hal.CommandContext, presentImage hal.Texture) {
	firstPass, ok := g.state.imageFirstUse[g.backBufferTag]
	if !ok {
		return
	}
	lastPass := g.state.imageLastUse[g.backBufferTag]

	lastUsage := g.state.perPassImage[lastPass][g.backBufferTag].dst
	firstUsage := g.state.perPassImage[firstPass][g.backBufferTag].src

	res := g.resources[g.resourceIndex[g.backBufferTag]]
	backBuffer := g.physicalImages[res.physical]

	ctx.BlitTexture(backBuffer, lastUsage, presentImage, types.TextureUsageNone)

	// The blit changed the back buffer's layout. Restore its first-use
	// layout for the next frame unless that already is TransferSrc.
	if firstUsage != types.TextureUsageTransferSrc {
		ctx.AddTransitions(
			types.StageTransfer,
			firstUsage.PipelineStages(),
			nil, nil,
			[]hal.TextureTransition{{
				Texture:  backBuffer,
				SrcUsage: types.TextureUsageTransferSrc,
				DstUsage: firstUsage,
			}})
	}
}
