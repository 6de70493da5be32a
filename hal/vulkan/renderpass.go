// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/hal/vulkan/vk"
	"github.com/gogpu/forge/types"
)

// CreateRenderPass builds a render pass from the spec.
func (d *Device) CreateRenderPass(spec *types.RenderPassSpec) (hal.RenderPass, error) {
	attachments := make([]vk.AttachmentDescription, len(spec.Attachments))
	for i, a := range spec.Attachments {
		samples := a.Samples
		if samples == 0 {
			samples = types.Samples1
		}
		attachments[i] = vk.AttachmentDescription{
			Format:         formatToVk(a.Format),
			Samples:        vk.SampleCountFlagBits(samples),
			LoadOp:         loadOpToVk(a.LoadOp),
			StoreOp:        storeOpToVk(a.StoreOp),
			StencilLoadOp:  loadOpToVk(a.StencilLoadOp),
			StencilStoreOp: storeOpToVk(a.StencilStoreOp),
			InitialLayout:  layoutToVk(a.InitialLayout),
			FinalLayout:    layoutToVk(a.FinalLayout),
		}
	}

	// Reference slices must outlive the create call, so they are
	// collected per subpass before building the descriptions.
	subpasses := make([]vk.SubpassDescription, len(spec.Subpasses))
	colorRefs := make([][]vk.AttachmentReference, len(spec.Subpasses))
	inputRefs := make([][]vk.AttachmentReference, len(spec.Subpasses))
	depthRefs := make([]vk.AttachmentReference, len(spec.Subpasses))

	for i, sp := range spec.Subpasses {
		for _, ref := range sp.ColorRefs {
			colorRefs[i] = append(colorRefs[i], vk.AttachmentReference{
				Attachment: ref.Attachment,
				Layout:     layoutToVk(ref.Layout),
			})
		}
		for _, ref := range sp.InputRefs {
			inputRefs[i] = append(inputRefs[i], vk.AttachmentReference{
				Attachment: ref.Attachment,
				Layout:     layoutToVk(ref.Layout),
			})
		}

		desc := vk.SubpassDescription{
			PipelineBindPoint: vk.PipelineBindPointGraphics,
		}
		if n := len(colorRefs[i]); n > 0 {
			desc.ColorAttachmentCount = uint32(n)
			desc.PColorAttachments = &colorRefs[i][0]
		}
		if n := len(inputRefs[i]); n > 0 {
			desc.InputAttachmentCount = uint32(n)
			desc.PInputAttachments = &inputRefs[i][0]
		}
		if sp.DepthStencilRef != nil {
			depthRefs[i] = vk.AttachmentReference{
				Attachment: sp.DepthStencilRef.Attachment,
				Layout:     layoutToVk(sp.DepthStencilRef.Layout),
			}
			desc.PDepthStencilAttachment = &depthRefs[i]
		}
		subpasses[i] = desc
	}

	dependencies := make([]vk.SubpassDependency, len(spec.Dependencies))
	for i, dep := range spec.Dependencies {
		dependencies[i] = vk.SubpassDependency{
			SrcSubpass:    dep.SrcSubpass,
			DstSubpass:    dep.DstSubpass,
			SrcStageMask:  stageFlagsToVk(dep.SrcStages),
			DstStageMask:  stageFlagsToVk(dep.DstStages),
			SrcAccessMask: accessFlagsToVk(dep.SrcAccess),
			DstAccessMask: accessFlagsToVk(dep.DstAccess),
		}
	}

	info := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachments)),
		SubpassCount:    uint32(len(subpasses)),
	}
	if len(attachments) > 0 {
		info.PAttachments = &attachments[0]
	}
	if len(subpasses) > 0 {
		info.PSubpasses = &subpasses[0]
	}
	if len(dependencies) > 0 {
		info.DependencyCount = uint32(len(dependencies))
		info.PDependencies = &dependencies[0]
	}

	var handle vk.RenderPass
	if result := d.cmds.CreateRenderPass(d.handle, &info, &handle); result != vk.Success {
		return nil, resultToError("vkCreateRenderPass", result)
	}
	return &RenderPass{handle: handle, spec: *spec}, nil
}

// DestroyRenderPass destroys a render pass.
func (d *Device) DestroyRenderPass(pass hal.RenderPass) {
	if rp, ok := pass.(*RenderPass); ok && rp.handle != vk.NullHandle {
		d.cmds.DestroyRenderPass(d.handle, rp.handle)
		rp.handle = vk.NullHandle
	}
}

// CreateFramebuffer builds a framebuffer over attachment views.
func (d *Device) CreateFramebuffer(desc *hal.FramebufferDescriptor) (hal.Framebuffer, error) {
	rp, ok := desc.RenderPass.(*RenderPass)
	if !ok || rp.handle == vk.NullHandle {
		return nil, hal.ErrInvalidSpec
	}

	views := make([]vk.ImageView, 0, len(desc.Attachments))
	for _, att := range desc.Attachments {
		v, ok := att.(*TextureView)
		if !ok {
			return nil, hal.ErrInvalidSpec
		}
		views = append(views, v.handle)
	}

	layers := desc.Layers
	if layers == 0 {
		layers = 1
	}

	info := vk.FramebufferCreateInfo{
		SType:           vk.StructureTypeFramebufferCreateInfo,
		RenderPass:      rp.handle,
		AttachmentCount: uint32(len(views)),
		Width:           desc.Extent.Width,
		Height:          desc.Extent.Height,
		Layers:          layers,
	}
	if len(views) > 0 {
		info.PAttachments = &views[0]
	}

	var handle vk.Framebuffer
	if result := d.cmds.CreateFramebuffer(d.handle, &info, &handle); result != vk.Success {
		return nil, resultToError("vkCreateFramebuffer", result)
	}
	return &Framebuffer{handle: handle, extent: desc.Extent}, nil
}

// DestroyFramebuffer destroys a framebuffer.
func (d *Device) DestroyFramebuffer(fb hal.Framebuffer) {
	if f, ok := fb.(*Framebuffer); ok && f.handle != vk.NullHandle {
		d.cmds.DestroyFramebuffer(d.handle, f.handle)
		f.handle = vk.NullHandle
	}
}
