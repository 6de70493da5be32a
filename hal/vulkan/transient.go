// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"hash/fnv"
	"reflect"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/hal/vulkan/vk"
	"github.com/gogpu/forge/types"
)

// deriveRenderingObjects translates a dynamic rendering layout into a
// compatible render pass + framebuffer. Derived objects are cached on
// the device by attachment signature and destroyed with the device.
func (d *Device) deriveRenderingObjects(layout *hal.RenderingLayout) (*RenderPass, *Framebuffer, error) {
	h := fnv.New64a()
	var key8 [8]byte

	writeU64 := func(v uint64) {
		for i := 0; i < 8; i++ {
			key8[i] = byte(v >> (8 * i))
		}
		h.Write(key8[:])
	}

	var spec types.RenderPassSpec
	var views []hal.TextureView
	var extent types.Extent2D
	var colorRefs []types.AttachmentReference

	appendAttachment := func(att *hal.RenderingAttachment, depth bool) {
		v, ok := att.View.(*TextureView)
		if !ok {
			return
		}
		tex := v.texture
		if tex.spec.Extent.Width > extent.Width {
			extent.Width = tex.spec.Extent.Width
		}
		if tex.spec.Extent.Height > extent.Height {
			extent.Height = tex.spec.Extent.Height
		}
		index := uint32(len(spec.Attachments))
		spec.Attachments = append(spec.Attachments, types.AttachmentDescription{
			Format:         tex.spec.Format,
			Samples:        tex.spec.Samples,
			LoadOp:         att.LoadOp,
			StoreOp:        att.StoreOp,
			StencilLoadOp:  types.LoadOpDontCare,
			StencilStoreOp: types.StoreOpDontCare,
			InitialLayout:  types.LayoutUndefined,
			FinalLayout:    att.Layout,
		})
		ref := types.AttachmentReference{Attachment: index, Layout: att.Layout}
		if depth {
			spec.Subpasses = []types.SubpassInfo{{DepthStencilRef: &ref}}
		} else {
			colorRefs = append(colorRefs, ref)
		}
		views = append(views, v)

		writeU64(uint64(tex.spec.Format))
		writeU64(uint64(att.LoadOp)<<32 | uint64(att.Layout))
		writeU64(uint64(reflect.ValueOf(v).Pointer()))
	}

	for i := range layout.ColorAttachments {
		appendAttachment(&layout.ColorAttachments[i], false)
	}
	var depthRef *types.AttachmentReference
	if layout.DepthStencil != nil {
		appendAttachment(layout.DepthStencil, true)
		if len(spec.Subpasses) > 0 {
			depthRef = spec.Subpasses[0].DepthStencilRef
		}
	}
	spec.Subpasses = []types.SubpassInfo{{ColorRefs: colorRefs, DepthStencilRef: depthRef}}

	key := h.Sum64()

	d.transientMu.Lock()
	defer d.transientMu.Unlock()
	if d.transientRPs == nil {
		d.transientRPs = make(map[uint64]*RenderPass)
		d.transientFBs = make(map[uint64]*Framebuffer)
	}
	if rp, ok := d.transientRPs[key]; ok {
		return rp, d.transientFBs[key], nil
	}

	created, err := d.CreateRenderPass(&spec)
	if err != nil {
		return nil, nil, err
	}
	rp := created.(*RenderPass)

	fbIface, err := d.CreateFramebuffer(&hal.FramebufferDescriptor{
		RenderPass:  rp,
		Attachments: views,
		Extent:      extent,
		Layers:      1,
	})
	if err != nil {
		d.DestroyRenderPass(rp)
		return nil, nil, err
	}
	fb := fbIface.(*Framebuffer)

	d.transientRPs[key] = rp
	d.transientFBs[key] = fb
	return rp, fb, nil
}
