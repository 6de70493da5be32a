// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

import "github.com/gogpu/gputypes"

// AttachmentLoadOp selects what happens to an attachment's contents at
// the start of a pass.
type AttachmentLoadOp uint32

const (
	LoadOpLoad AttachmentLoadOp = iota
	LoadOpClear
	LoadOpDontCare
)

// AttachmentStoreOp selects what happens to an attachment's contents
// at the end of a pass.
type AttachmentStoreOp uint32

const (
	StoreOpStore AttachmentStoreOp = iota
	StoreOpDontCare
)

// AttachmentDescription describes one render-pass attachment slot.
type AttachmentDescription struct {
	Format         Format
	Samples        SampleCount
	LoadOp         AttachmentLoadOp
	StoreOp        AttachmentStoreOp
	StencilLoadOp  AttachmentLoadOp
	StencilStoreOp AttachmentStoreOp
	InitialLayout  TextureLayout
	FinalLayout    TextureLayout
}

// AttachmentReference points a subpass at one attachment slot in a
// specific layout.
type AttachmentReference struct {
	Attachment uint32
	Layout     TextureLayout
}

// SubpassInfo is one subpass: its color and input references and an
// optional depth-stencil reference.
type SubpassInfo struct {
	ColorRefs       []AttachmentReference
	InputRefs       []AttachmentReference
	DepthStencilRef *AttachmentReference
}

// SubpassDependency is an explicit execution/memory dependency between
// two subpasses. SubpassExternal refers outside the render pass.
type SubpassDependency struct {
	SrcSubpass uint32
	DstSubpass uint32
	SrcStages  PipelineStageFlags
	DstStages  PipelineStageFlags
	SrcAccess  AccessFlags
	DstAccess  AccessFlags
}

// SubpassExternal marks a dependency endpoint outside the render pass.
const SubpassExternal = ^uint32(0)

// RenderPassSpec describes a render pass at creation time.
type RenderPassSpec struct {
	Attachments  []AttachmentDescription
	Subpasses    []SubpassInfo
	Dependencies []SubpassDependency
}

// ClearValue is the clear state for one attachment. Color applies to
// color attachments, Depth/Stencil to depth-stencil attachments.
type ClearValue struct {
	Color   gputypes.Color
	Depth   float32
	Stencil uint32
}

// ClearColor builds a color clear value.
func ClearColor(r, g, b, a float64) ClearValue {
	return ClearValue{Color: gputypes.Color{R: r, G: g, B: b, A: a}}
}

// ClearDepthStencil builds a depth-stencil clear value.
func ClearDepthStencil(depth float32, stencil uint32) ClearValue {
	return ClearValue{Depth: depth, Stencil: stencil}
}

// PipelineStageFlags is a bit set of pipeline stages used as barrier
// scopes.
type PipelineStageFlags uint32

const (
	StageNone      PipelineStageFlags = 0
	StageTopOfPipe PipelineStageFlags = 1 << iota
	StageDrawIndirect
	StageVertexInput
	StageVertexShader
	StageFragmentShader
	StageEarlyFragmentTests
	StageLateFragmentTests
	StageColorAttachmentOutput
	StageComputeShader
	StageTransfer
	StageBottomOfPipe
	StageAllGraphics
	StageAllCommands
)

// AccessFlags is a bit set of memory access kinds used in barriers.
type AccessFlags uint32

const (
	AccessNone         AccessFlags = 0
	AccessIndirectRead AccessFlags = 1 << iota
	AccessIndexRead
	AccessVertexAttributeRead
	AccessUniformRead
	AccessInputAttachmentRead
	AccessShaderRead
	AccessShaderWrite
	AccessColorAttachmentRead
	AccessColorAttachmentWrite
	AccessDepthStencilRead
	AccessDepthStencilWrite
	AccessTransferRead
	AccessTransferWrite
	AccessMemoryRead
	AccessMemoryWrite
)
