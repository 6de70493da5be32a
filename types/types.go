// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package types defines the plain descriptor structs and enums shared
// by the forge RHI, the render graph and the backends.
//
// Everything in this package is create-time data: immutable once the
// described GPU object exists, comparable where possible, and free of
// backend state. Handles and backend objects live elsewhere (core, hal).
package types

import "github.com/chewxy/math32"

// Extent2D is a two-dimensional size in pixels.
type Extent2D struct {
	Width  uint32
	Height uint32
}

// Extent3D is a three-dimensional size in pixels.
type Extent3D struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

// Offset3D is a signed texel offset.
type Offset3D struct {
	X int32
	Y int32
	Z int32
}

// Rect2D is an integer rectangle (origin + extent).
type Rect2D struct {
	X      int32
	Y      int32
	Width  uint32
	Height uint32
}

// SampleCount is the number of samples per pixel. Valid values are the
// powers of two from 1 to 64.
type SampleCount uint32

const (
	Samples1  SampleCount = 1
	Samples2  SampleCount = 2
	Samples4  SampleCount = 4
	Samples8  SampleCount = 8
	Samples16 SampleCount = 16
	Samples32 SampleCount = 32
	Samples64 SampleCount = 64
)

// CompareOp is a depth/stencil/sampler comparison function.
type CompareOp uint32

const (
	CompareNever CompareOp = iota
	CompareLess
	CompareEqual
	CompareLessOrEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterOrEqual
	CompareAlways
)

// FullMipLevels returns the number of levels in a complete mip chain
// for a 2D extent, i.e. floor(log2(max(w, h))) + 1.
func FullMipLevels(width, height uint32) uint32 {
	side := math32.Max(float32(width), float32(height))
	if side < 1 {
		return 1
	}
	return uint32(math32.Floor(math32.Log2(side))) + 1
}

// ScaleExtent scales a base extent by a swapchain-relative factor,
// clamping each dimension to at least one pixel.
func ScaleExtent(base Extent2D, factor float32) Extent2D {
	w := uint32(math32.Round(factor * float32(base.Width)))
	h := uint32(math32.Round(factor * float32(base.Height)))
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	return Extent2D{Width: w, Height: h}
}
