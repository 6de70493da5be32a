// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

// Format describes the texel or element format of a texture, vertex
// attribute or texel buffer.
type Format uint32

const (
	// FormatUndefined is an undefined format.
	FormatUndefined Format = iota

	// 8-bit formats
	FormatR8Unorm
	FormatR8Snorm
	FormatR8Uint
	FormatR8Sint

	// 16-bit formats
	FormatR16Uint
	FormatR16Sint
	FormatR16Float
	FormatRG8Unorm
	FormatRG8Snorm
	FormatRG8Uint
	FormatRG8Sint

	// 32-bit formats
	FormatR32Uint
	FormatR32Sint
	FormatR32Float
	FormatRG16Uint
	FormatRG16Sint
	FormatRG16Float
	FormatRGBA8Unorm
	FormatRGBA8UnormSrgb
	FormatRGBA8Snorm
	FormatRGBA8Uint
	FormatRGBA8Sint
	FormatBGRA8Unorm
	FormatBGRA8UnormSrgb

	// Packed formats
	FormatRGB10A2Unorm
	FormatRGB10A2Uint
	FormatRG11B10Ufloat

	// 64-bit formats
	FormatRG32Uint
	FormatRG32Sint
	FormatRG32Float
	FormatRGBA16Uint
	FormatRGBA16Sint
	FormatRGBA16Float

	// 128-bit formats
	FormatRGBA32Uint
	FormatRGBA32Sint
	FormatRGBA32Float

	// Vertex-only formats
	FormatRGB32Float
	FormatRG16Snorm
	FormatRGBA16Snorm

	// Depth/stencil formats
	FormatStencil8
	FormatDepth16Unorm
	FormatDepth24PlusStencil8
	FormatDepth32Float
	FormatDepth32FloatStencil8
)

// String returns the format name for diagnostics.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "Format(unknown)"
}

var formatNames = map[Format]string{
	FormatUndefined:            "Undefined",
	FormatR8Unorm:              "R8Unorm",
	FormatR8Snorm:              "R8Snorm",
	FormatR8Uint:               "R8Uint",
	FormatR8Sint:               "R8Sint",
	FormatR16Uint:              "R16Uint",
	FormatR16Sint:              "R16Sint",
	FormatR16Float:             "R16Float",
	FormatRG8Unorm:             "RG8Unorm",
	FormatRG8Snorm:             "RG8Snorm",
	FormatRG8Uint:              "RG8Uint",
	FormatRG8Sint:              "RG8Sint",
	FormatR32Uint:              "R32Uint",
	FormatR32Sint:              "R32Sint",
	FormatR32Float:             "R32Float",
	FormatRG16Uint:             "RG16Uint",
	FormatRG16Sint:             "RG16Sint",
	FormatRG16Float:            "RG16Float",
	FormatRGBA8Unorm:           "RGBA8Unorm",
	FormatRGBA8UnormSrgb:       "RGBA8UnormSrgb",
	FormatRGBA8Snorm:           "RGBA8Snorm",
	FormatRGBA8Uint:            "RGBA8Uint",
	FormatRGBA8Sint:            "RGBA8Sint",
	FormatBGRA8Unorm:           "BGRA8Unorm",
	FormatBGRA8UnormSrgb:       "BGRA8UnormSrgb",
	FormatRGB10A2Unorm:         "RGB10A2Unorm",
	FormatRGB10A2Uint:          "RGB10A2Uint",
	FormatRG11B10Ufloat:        "RG11B10Ufloat",
	FormatRG32Uint:             "RG32Uint",
	FormatRG32Sint:             "RG32Sint",
	FormatRG32Float:            "RG32Float",
	FormatRGBA16Uint:           "RGBA16Uint",
	FormatRGBA16Sint:           "RGBA16Sint",
	FormatRGBA16Float:          "RGBA16Float",
	FormatRGBA32Uint:           "RGBA32Uint",
	FormatRGBA32Sint:           "RGBA32Sint",
	FormatRGBA32Float:          "RGBA32Float",
	FormatRGB32Float:           "RGB32Float",
	FormatRG16Snorm:            "RG16Snorm",
	FormatRGBA16Snorm:          "RGBA16Snorm",
	FormatStencil8:             "Stencil8",
	FormatDepth16Unorm:         "Depth16Unorm",
	FormatDepth24PlusStencil8:  "Depth24PlusStencil8",
	FormatDepth32Float:         "Depth32Float",
	FormatDepth32FloatStencil8: "Depth32FloatStencil8",
}

// HasDepth reports whether the format carries a depth aspect.
func (f Format) HasDepth() bool {
	switch f {
	case FormatDepth16Unorm, FormatDepth24PlusStencil8,
		FormatDepth32Float, FormatDepth32FloatStencil8:
		return true
	}
	return false
}

// HasStencil reports whether the format carries a stencil aspect.
func (f Format) HasStencil() bool {
	switch f {
	case FormatStencil8, FormatDepth24PlusStencil8, FormatDepth32FloatStencil8:
		return true
	}
	return false
}

// BytesPerTexel returns the byte size of one texel for uncompressed
// color formats, or 0 when the size is not defined per texel.
func (f Format) BytesPerTexel() uint32 {
	switch f {
	case FormatR8Unorm, FormatR8Snorm, FormatR8Uint, FormatR8Sint, FormatStencil8:
		return 1
	case FormatR16Uint, FormatR16Sint, FormatR16Float,
		FormatRG8Unorm, FormatRG8Snorm, FormatRG8Uint, FormatRG8Sint,
		FormatDepth16Unorm:
		return 2
	case FormatR32Uint, FormatR32Sint, FormatR32Float,
		FormatRG16Uint, FormatRG16Sint, FormatRG16Float, FormatRG16Snorm,
		FormatRGBA8Unorm, FormatRGBA8UnormSrgb, FormatRGBA8Snorm,
		FormatRGBA8Uint, FormatRGBA8Sint,
		FormatBGRA8Unorm, FormatBGRA8UnormSrgb,
		FormatRGB10A2Unorm, FormatRGB10A2Uint, FormatRG11B10Ufloat,
		FormatDepth32Float, FormatDepth24PlusStencil8:
		return 4
	case FormatRG32Uint, FormatRG32Sint, FormatRG32Float,
		FormatRGBA16Uint, FormatRGBA16Sint, FormatRGBA16Float, FormatRGBA16Snorm:
		return 8
	case FormatRGB32Float:
		return 12
	case FormatRGBA32Uint, FormatRGBA32Sint, FormatRGBA32Float:
		return 16
	}
	return 0
}
