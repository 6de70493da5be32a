// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package frame

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/types"
)

// UpdateBuffer stages data and records a copy into dst at offset 0.
// The copy lands when the recording command buffer is submitted.
func (c *Context) UpdateBuffer(cmd hal.CommandBuffer, data []byte, dst hal.Buffer) error {
	staging := c.Staging()
	sub, err := staging.Submit(data)
	if err != nil {
		return err
	}
	if err := staging.Flush(); err != nil {
		return err
	}
	cmd.CopyBuffer(staging.Buffer(), dst, []types.BufferCopy{{
		SrcOffset: sub.Offset,
		Size:      sub.Size,
	}})
	return nil
}

// UploadTexture stages raw texel data and records a full-extent copy
// into mip 0, layer 0 of dst. The destination must carry transfer-dst
// usage.
func (c *Context) UploadTexture(cmd hal.CommandBuffer, data []byte, dst hal.Texture) error {
	staging := c.Staging()
	sub, err := staging.Submit(data)
	if err != nil {
		return err
	}
	if err := staging.Flush(); err != nil {
		return err
	}

	spec := dst.Spec()
	cmd.AddTextureTransition(dst, types.LayoutTransferDst)
	cmd.CopyBufferToTexture(staging.Buffer(), dst, []types.BufferTextureCopyRegion{{
		BufferOffset: sub.Offset,
		MipLevel:     0,
		ArrayLayer:   0,
		LayerCount:   1,
		Extent:       spec.Extent,
	}})
	return nil
}

// UploadImage converts img to tightly packed RGBA and uploads it via
// UploadTexture. When genMips is set and the destination has more than
// one level, the remaining mip chain is generated on the GPU.
func (c *Context) UploadImage(cmd hal.CommandBuffer, img image.Image, dst hal.Texture, genMips bool) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || bounds.Min != (image.Point{}) {
		converted := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		xdraw.Draw(converted, converted.Bounds(), img, bounds.Min, xdraw.Src)
		rgba = converted
	}

	if err := c.UploadTexture(cmd, rgba.Pix, dst); err != nil {
		return err
	}
	if genMips && dst.Spec().MipLevels > 1 {
		cmd.GenTextureMipmaps(dst)
	} else {
		cmd.AddTextureTransition(dst, types.LayoutShaderReadOnly)
	}
	return nil
}
