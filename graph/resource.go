// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

import (
	"github.com/gogpu/forge/types"
)

// SizeType selects how a logical image's extent is computed.
type SizeType uint32

const (
	// SizeSwapchainRelative scales the back-buffer extent by Factor.
	SizeSwapchainRelative SizeType = iota
	// SizeAbsolute uses Extent as-is.
	SizeAbsolute
)

// ImageInfo declares the properties of a logical image.
type ImageInfo struct {
	Format   types.Format
	SizeType SizeType

	// Factor scales the back-buffer extent for SizeSwapchainRelative.
	Factor float32

	// Extent is used for SizeAbsolute.
	Extent types.Extent3D

	Samples types.SampleCount
	Levels  uint32
	Layers  uint32

	// LoadOp is LoadOpClear in images built by RelativeImage; the zero
	// value is LoadOpLoad.
	LoadOp types.AttachmentLoadOp
}

// RelativeImage declares a single-sampled swapchain-relative image.
func RelativeImage(format types.Format, factor float32) ImageInfo {
	return ImageInfo{
		Format:   format,
		SizeType: SizeSwapchainRelative,
		Factor:   factor,
		Samples:  types.Samples1,
		Levels:   1,
		Layers:   1,
		LoadOp:   types.LoadOpClear,
	}
}

// BufferInfo declares the properties of a logical buffer.
type BufferInfo struct {
	Size uint64
}

// resourceKind distinguishes images from buffers.
type resourceKind uint8

const (
	resourceImage resourceKind = iota
	resourceBuffer
)

// resource is one named logical resource, plus the passes that touch
// it and the physical slot assigned at compile.
type resource struct {
	kind  resourceKind
	index int
	tag   string

	image  ImageInfo
	buffer BufferInfo

	// writeUsage accumulates the declared write usages (attachment
	// kinds, storage, transfer-dst).
	writeImageUsage  types.TextureUsage
	writeBufferUsage types.BufferUsage

	// writtenIn and readIn are pass indices in declaration order.
	writtenIn []int
	readIn    []int

	physical int
	hasInfo  bool
}

func (r *resource) writtenBy(pass int) bool {
	for _, p := range r.writtenIn {
		if p == pass {
			return true
		}
	}
	return false
}

// transition records one resource's usage change entering a pass.
type imageTransition struct {
	src types.TextureUsage
	dst types.TextureUsage
}

type bufferTransition struct {
	src types.BufferUsage
	dst types.BufferUsage
}

// resourceState is the compile-time table of per-pass transitions,
// first/last users and accumulated usage per resource.
type resourceState struct {
	perPassImage  map[string]map[string]imageTransition
	perPassBuffer map[string]map[string]bufferTransition

	imageFirstUse  map[string]string
	imageLastUse   map[string]string
	bufferFirstUse map[string]string
	bufferLastUse  map[string]string

	totalImageUsage  map[string]types.TextureUsage
	totalBufferUsage map[string]types.BufferUsage
}

func newResourceState() resourceState {
	return resourceState{
		perPassImage:     make(map[string]map[string]imageTransition),
		perPassBuffer:    make(map[string]map[string]bufferTransition),
		imageFirstUse:    make(map[string]string),
		imageLastUse:     make(map[string]string),
		bufferFirstUse:   make(map[string]string),
		bufferLastUse:    make(map[string]string),
		totalImageUsage:  make(map[string]types.TextureUsage),
		totalBufferUsage: make(map[string]types.BufferUsage),
	}
}

func (s *resourceState) imageTransitionsOf(pass string) map[string]imageTransition {
	m := s.perPassImage[pass]
	if m == nil {
		m = make(map[string]imageTransition)
		s.perPassImage[pass] = m
	}
	return m
}

func (s *resourceState) bufferTransitionsOf(pass string) map[string]bufferTransition {
	m := s.perPassBuffer[pass]
	if m == nil {
		m = make(map[string]bufferTransition)
		s.perPassBuffer[pass] = m
	}
	return m
}
