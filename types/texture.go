// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

// TextureType is the dimensionality of a texture.
type TextureType uint32

const (
	Texture1D TextureType = iota
	Texture2D
	Texture3D
)

// TextureUsage is a bit set describing how a texture participates in
// GPU work. Single-bit values double as the graph's per-pass usage
// states, from which layouts and barrier masks are derived.
type TextureUsage uint32

const (
	TextureUsageNone    TextureUsage = 0
	TextureUsageSampled TextureUsage = 1 << iota
	TextureUsageStorage
	TextureUsageColorAttachment
	TextureUsageDepthStencilAttachment
	TextureUsageInputAttachment
	TextureUsageTransferSrc
	TextureUsageTransferDst
)

// Contains reports whether all bits of other are set in u.
func (u TextureUsage) Contains(other TextureUsage) bool {
	return u&other == other
}

// IsWrite reports whether the usage implies the GPU may write through
// it; TransferSrc is counted as well. Such usages force a barrier even
// for same-usage hazards.
func (u TextureUsage) IsWrite() bool {
	return u&(TextureUsageStorage|TextureUsageColorAttachment|
		TextureUsageDepthStencilAttachment|TextureUsageTransferSrc|
		TextureUsageTransferDst) != 0
}

// Layout returns the image layout a single-usage state corresponds to.
// Combined usage sets have no single layout and map to LayoutGeneral.
func (u TextureUsage) Layout() TextureLayout {
	switch u {
	case TextureUsageNone:
		return LayoutUndefined
	case TextureUsageSampled, TextureUsageInputAttachment:
		return LayoutShaderReadOnly
	case TextureUsageStorage:
		return LayoutGeneral
	case TextureUsageColorAttachment:
		return LayoutColorAttachment
	case TextureUsageDepthStencilAttachment:
		return LayoutDepthStencilAttachment
	case TextureUsageTransferSrc:
		return LayoutTransferSrc
	case TextureUsageTransferDst:
		return LayoutTransferDst
	}
	return LayoutGeneral
}

// TextureLayout is the explicit image layout a texture occupies at a
// point in the frame. The layout is a property of history: only the
// last operation that touched the image knows it, which is why the
// render graph keeps an authoritative per-frame layout per logical
// image.
type TextureLayout uint32

const (
	LayoutUndefined TextureLayout = iota
	LayoutGeneral
	LayoutColorAttachment
	LayoutDepthStencilAttachment
	LayoutShaderReadOnly
	LayoutTransferSrc
	LayoutTransferDst
	LayoutPresent
)

// String returns the layout name for diagnostics.
func (l TextureLayout) String() string {
	switch l {
	case LayoutUndefined:
		return "Undefined"
	case LayoutGeneral:
		return "General"
	case LayoutColorAttachment:
		return "ColorAttachment"
	case LayoutDepthStencilAttachment:
		return "DepthStencilAttachment"
	case LayoutShaderReadOnly:
		return "ShaderReadOnly"
	case LayoutTransferSrc:
		return "TransferSrc"
	case LayoutTransferDst:
		return "TransferDst"
	case LayoutPresent:
		return "Present"
	}
	return "Layout(unknown)"
}

// TextureSpec describes a texture at creation time.
type TextureSpec struct {
	Type        TextureType
	Format      Format
	Extent      Extent3D
	ArrayLayers uint32
	MipLevels   uint32
	Samples     SampleCount
	Usage       TextureUsage

	// InitialLayout must be LayoutUndefined; it exists so that specs
	// read back from a backend carry the full creation state.
	InitialLayout TextureLayout

	// Cubemap marks a 2D texture with six layers as a cube.
	Cubemap bool
}

// DefaultTextureSpec returns a single-sampled 2D spec with one layer
// and one mip level.
func DefaultTextureSpec(format Format, width, height uint32, usage TextureUsage) TextureSpec {
	return TextureSpec{
		Type:        Texture2D,
		Format:      format,
		Extent:      Extent3D{Width: width, Height: height, Depth: 1},
		ArrayLayers: 1,
		MipLevels:   1,
		Samples:     Samples1,
		Usage:       usage,
	}
}

// TextureSubresourceRange selects mips and layers of a texture.
type TextureSubresourceRange struct {
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}
