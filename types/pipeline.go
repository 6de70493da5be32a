// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

// PrimitiveTopology selects how vertices assemble into primitives.
type PrimitiveTopology uint32

const (
	TopologyPointList PrimitiveTopology = iota
	TopologyLineList
	TopologyLineStrip
	TopologyTriangleList
	TopologyTriangleStrip
	TopologyTriangleFan
)

// PolygonMode selects triangle fill mode.
type PolygonMode uint32

const (
	PolygonFill PolygonMode = iota
	PolygonLine
	PolygonPoint
)

// CullMode selects which triangle faces are discarded.
type CullMode uint32

const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

// FrontFace selects the winding considered front-facing.
type FrontFace uint32

const (
	FrontFaceCounterClockwise FrontFace = iota
	FrontFaceClockwise
)

// BlendFactor is a blend equation operand.
type BlendFactor uint32

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendDstColor
	BlendOneMinusDstColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendConstantColor
	BlendOneMinusConstantColor
)

// BlendOp combines the two blend operands.
type BlendOp uint32

const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpReverseSubtract
	BlendOpMin
	BlendOpMax
)

// ColorComponentFlags masks which channels a blend attachment writes.
type ColorComponentFlags uint32

const (
	ColorComponentR ColorComponentFlags = 1 << iota
	ColorComponentG
	ColorComponentB
	ColorComponentA

	ColorComponentAll = ColorComponentR | ColorComponentG | ColorComponentB | ColorComponentA
)

// StencilOp selects what a stencil test does to the stored value.
type StencilOp uint32

const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilIncrementClamp
	StencilDecrementClamp
	StencilInvert
	StencilIncrementWrap
	StencilDecrementWrap
)

// DynamicState names a pipeline state left to command recording.
type DynamicState uint32

const (
	DynamicViewport DynamicState = iota
	DynamicScissor
	DynamicLineWidth
	DynamicDepthBias
	DynamicBlendConstants
	DynamicStencilReference
)

// InputAssemblyState configures primitive assembly.
type InputAssemblyState struct {
	Topology         PrimitiveTopology
	PrimitiveRestart bool
}

// RasterizationState configures the rasterizer.
type RasterizationState struct {
	PolygonMode      PolygonMode
	CullMode         CullMode
	FrontFace        FrontFace
	DepthClampEnable bool
	DiscardEnable    bool
	DepthBiasEnable  bool
	LineWidth        float32
}

// StencilOpState is one face's stencil configuration.
type StencilOpState struct {
	FailOp      StencilOp
	PassOp      StencilOp
	DepthFailOp StencilOp
	CompareOp   CompareOp
}

// DepthStencilState configures depth and stencil testing.
type DepthStencilState struct {
	DepthTestEnable   bool
	DepthWriteEnable  bool
	DepthCompareOp    CompareOp
	DepthBoundsEnable bool
	StencilTestEnable bool
	Front             StencilOpState
	Back              StencilOpState
}

// ColorBlendAttachment configures blending for one color attachment.
type ColorBlendAttachment struct {
	BlendEnable    bool
	SrcColorFactor BlendFactor
	DstColorFactor BlendFactor
	ColorOp        BlendOp
	SrcAlphaFactor BlendFactor
	DstAlphaFactor BlendFactor
	AlphaOp        BlendOp
	WriteMask      ColorComponentFlags
}

// ColorBlendState configures blending across all color attachments.
type ColorBlendState struct {
	Attachments []ColorBlendAttachment
}

// MultisampleState configures sample-rate shading.
type MultisampleState struct {
	Samples             SampleCount
	SampleShadingEnable bool
	MinSampleShading    float32
	AlphaToCoverage     bool
	AlphaToOne          bool
}

// SpecConstantOverride replaces a specialization constant's default at
// pipeline creation.
type SpecConstantOverride struct {
	ConstantID uint32
	Value      uint32
}

// PipelineState is the full fixed-function state of a graphics
// pipeline, hashed by the resource cache for dedup.
type PipelineState struct {
	InputAssembly InputAssemblyState
	Rasterization RasterizationState
	DepthStencil  DepthStencilState
	ColorBlend    ColorBlendState
	Multisample   MultisampleState
	DynamicStates []DynamicState

	// Specialization overrides are part of the pipeline identity.
	Specialization []SpecConstantOverride
}

// DefaultPipelineState returns the state the render graph uses when a
// pass declares nothing special: filled back-face-culled triangles,
// depth test+write with LessOrEqual, opaque writes to every color
// attachment, dynamic viewport and scissor.
func DefaultPipelineState(colorAttachments int) PipelineState {
	blend := make([]ColorBlendAttachment, colorAttachments)
	for i := range blend {
		blend[i] = ColorBlendAttachment{WriteMask: ColorComponentAll}
	}
	return PipelineState{
		InputAssembly: InputAssemblyState{Topology: TopologyTriangleList},
		Rasterization: RasterizationState{
			CullMode:  CullBack,
			FrontFace: FrontFaceCounterClockwise,
			LineWidth: 1,
		},
		DepthStencil: DepthStencilState{
			DepthTestEnable:  true,
			DepthWriteEnable: true,
			DepthCompareOp:   CompareLessOrEqual,
		},
		ColorBlend:    ColorBlendState{Attachments: blend},
		Multisample:   MultisampleState{Samples: Samples1},
		DynamicStates: []DynamicState{DynamicViewport, DynamicScissor},
	}
}
