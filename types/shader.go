// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

// ShaderStage identifies one programmable pipeline stage.
type ShaderStage uint32

const (
	StageVertex ShaderStage = iota
	StageTessellationControl
	StageTessellationEvaluation
	StageGeometry
	StageFragment
	StageCompute

	// StageMax bounds iteration over stages.
	StageMax
)

// String returns the stage name for diagnostics.
func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "Vertex"
	case StageTessellationControl:
		return "TessellationControl"
	case StageTessellationEvaluation:
		return "TessellationEvaluation"
	case StageGeometry:
		return "Geometry"
	case StageFragment:
		return "Fragment"
	case StageCompute:
		return "Compute"
	}
	return "Stage(unknown)"
}

// Flag returns the stage as a single-bit flag set.
func (s ShaderStage) Flag() ShaderStageFlags {
	return 1 << s
}

// ShaderStageFlags is a bit set of shader stages.
type ShaderStageFlags uint32

const (
	StageFlagVertex                 = ShaderStageFlags(1 << StageVertex)
	StageFlagTessellationControl    = ShaderStageFlags(1 << StageTessellationControl)
	StageFlagTessellationEvaluation = ShaderStageFlags(1 << StageTessellationEvaluation)
	StageFlagGeometry               = ShaderStageFlags(1 << StageGeometry)
	StageFlagFragment               = ShaderStageFlags(1 << StageFragment)
	StageFlagCompute                = ShaderStageFlags(1 << StageCompute)

	StageFlagAllGraphics = StageFlagVertex | StageFlagTessellationControl |
		StageFlagTessellationEvaluation | StageFlagGeometry | StageFlagFragment
)

// Has reports whether flag is set.
func (f ShaderStageFlags) Has(flag ShaderStageFlags) bool {
	return f&flag != 0
}

// StageSpirv is one stage's precompiled SPIR-V plus its entry point.
type StageSpirv struct {
	Code  []byte
	Entry string
}

// ShaderGroupSpec bundles the SPIR-V bytecode of every stage that
// makes up one shader group. The core never compiles shader source;
// it consumes bytecode as-is.
type ShaderGroupSpec struct {
	Stages map[ShaderStage]StageSpirv
}

// HasStage reports whether the group carries bytecode for stage.
func (s *ShaderGroupSpec) HasStage(stage ShaderStage) bool {
	if s.Stages == nil {
		return false
	}
	_, ok := s.Stages[stage]
	return ok
}

// ShaderResourceType classifies a reflected descriptor binding.
type ShaderResourceType uint32

const (
	ResourceSampler ShaderResourceType = iota
	ResourceSamplerWithTexture
	ResourceTexture
	ResourceStorageImage
	ResourceUniformTexelBuffer
	ResourceStorageTexelBuffer
	ResourceUniformBuffer
	ResourceStorageBuffer
	ResourceInputAttachment
)

// String returns the resource type name for diagnostics.
func (t ShaderResourceType) String() string {
	switch t {
	case ResourceSampler:
		return "Sampler"
	case ResourceSamplerWithTexture:
		return "SamplerWithTexture"
	case ResourceTexture:
		return "Texture"
	case ResourceStorageImage:
		return "StorageImage"
	case ResourceUniformTexelBuffer:
		return "UniformTexelBuffer"
	case ResourceStorageTexelBuffer:
		return "StorageTexelBuffer"
	case ResourceUniformBuffer:
		return "UniformBuffer"
	case ResourceStorageBuffer:
		return "StorageBuffer"
	case ResourceInputAttachment:
		return "InputAttachment"
	}
	return "ShaderResourceType(unknown)"
}

// ShaderResource is one reflected descriptor binding, merged across
// the stages that declare it.
type ShaderResource struct {
	Name    string
	Set     uint32
	Binding uint32
	Type    ShaderResourceType

	// ArraySize is the product of array dimensions for image-like
	// bindings; 1 for scalars.
	ArraySize uint32

	// BlockSize is the byte size of the block for buffer bindings.
	BlockSize uint32

	// Writable is false when the binding or its type carries a
	// NonWritable decoration.
	Writable bool

	Stages ShaderStageFlags
}

// VertexInputAttribute is one reflected vertex input, packed into
// binding 0 at a running byte offset.
type VertexInputAttribute struct {
	Name     string
	Location uint32
	Binding  uint32
	Offset   uint32
	Format   Format
}

// PushConstantRange is the single push-constant block allowed per
// shader group, with the union of the stages that declare it.
type PushConstantRange struct {
	Name   string
	Size   uint32
	Stages ShaderStageFlags
}

// SpecConstantType is the scalar type of a specialization constant.
type SpecConstantType uint32

const (
	SpecConstantBool SpecConstantType = iota
	SpecConstantInt
	SpecConstantFloat
)

// SpecializationConstant is one reflected specialization constant.
// The first stage to declare a constant id fixes its type and default;
// later stages only accumulate into Stages.
type SpecializationConstant struct {
	ConstantID uint32
	Type       SpecConstantType
	BoolValue  bool
	IntValue   int32
	FloatValue float32
	Stages     ShaderStageFlags
}

// ShaderGroupInfo is the merged reflection result for a shader group.
type ShaderGroupInfo struct {
	// VertexInputAttributes is sorted by location; offsets are the
	// running sum of prior attribute sizes within binding 0.
	VertexInputAttributes []VertexInputAttribute

	// VertexBindingStride is the total packed vertex size.
	VertexBindingStride uint32

	// PushConstants has Size 0 when no stage declares a block.
	PushConstants PushConstantRange

	SpecializationConstants []SpecializationConstant

	// Sets is indexed by descriptor set number; each entry lists the
	// set's bindings in ascending binding order.
	Sets [][]ShaderResource
}

// Resource looks up a reflected binding by name across all sets.
func (info *ShaderGroupInfo) Resource(name string) (ShaderResource, bool) {
	for _, set := range info.Sets {
		for _, res := range set {
			if res.Name == name {
				return res, true
			}
		}
	}
	return ShaderResource{}, false
}
