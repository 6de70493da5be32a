// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

// FilterMode selects texel filtering for minification, magnification
// or mip selection.
type FilterMode uint32

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

// AddressMode selects how coordinates outside [0, 1] are resolved.
type AddressMode uint32

const (
	AddressRepeat AddressMode = iota
	AddressMirrorRepeat
	AddressClampToEdge
	AddressClampToBorder
)

// BorderColor is the color returned for AddressClampToBorder.
type BorderColor uint32

const (
	BorderTransparentBlack BorderColor = iota
	BorderOpaqueBlack
	BorderOpaqueWhite
)

// SamplerSpec describes a sampler at creation time.
type SamplerSpec struct {
	MinFilter FilterMode
	MagFilter FilterMode
	MipFilter FilterMode

	AddressU AddressMode
	AddressV AddressMode
	AddressW AddressMode

	LodMin float32
	LodMax float32

	// MaxAnisotropy enables anisotropic filtering when > 1.
	MaxAnisotropy float32

	Border BorderColor

	// CompareEnable turns the sampler into a comparison sampler
	// (shadow mapping) using Compare.
	CompareEnable bool
	Compare       CompareOp
}

// DefaultSamplerSpec returns a trilinear repeat sampler covering the
// full mip chain.
func DefaultSamplerSpec() SamplerSpec {
	return SamplerSpec{
		MinFilter: FilterLinear,
		MagFilter: FilterLinear,
		MipFilter: FilterLinear,
		LodMax:    1000,
	}
}
