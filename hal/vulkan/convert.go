// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"github.com/gogpu/forge/hal/vulkan/vk"
	"github.com/gogpu/forge/types"
)

func formatToVk(f types.Format) vk.Format {
	switch f {
	case types.FormatR8Unorm:
		return 9 // VK_FORMAT_R8_UNORM
	case types.FormatR8Snorm:
		return 10
	case types.FormatR8Uint:
		return 13
	case types.FormatR8Sint:
		return 14
	case types.FormatRG8Unorm:
		return 16
	case types.FormatRG8Snorm:
		return 17
	case types.FormatRG8Uint:
		return 20
	case types.FormatRG8Sint:
		return 21
	case types.FormatRGBA8Unorm:
		return 37
	case types.FormatRGBA8Snorm:
		return 38
	case types.FormatRGBA8Uint:
		return 41
	case types.FormatRGBA8Sint:
		return 42
	case types.FormatRGBA8UnormSrgb:
		return 43
	case types.FormatBGRA8Unorm:
		return 44
	case types.FormatBGRA8UnormSrgb:
		return 50
	case types.FormatRGB10A2Unorm:
		return 64 // VK_FORMAT_A2B10G10R10_UNORM_PACK32
	case types.FormatRGB10A2Uint:
		return 68
	case types.FormatR16Uint:
		return 74
	case types.FormatR16Sint:
		return 75
	case types.FormatR16Float:
		return 76
	case types.FormatRG16Uint:
		return 81
	case types.FormatRG16Sint:
		return 82
	case types.FormatRG16Snorm:
		return 78
	case types.FormatRG16Float:
		return 83
	case types.FormatRGBA16Uint:
		return 95
	case types.FormatRGBA16Sint:
		return 96
	case types.FormatRGBA16Snorm:
		return 92
	case types.FormatRGBA16Float:
		return 97
	case types.FormatR32Uint:
		return 98
	case types.FormatR32Sint:
		return 99
	case types.FormatR32Float:
		return 100
	case types.FormatRG32Uint:
		return 101
	case types.FormatRG32Sint:
		return 102
	case types.FormatRG32Float:
		return 103
	case types.FormatRGB32Float:
		return 106
	case types.FormatRGBA32Uint:
		return 107
	case types.FormatRGBA32Sint:
		return 108
	case types.FormatRGBA32Float:
		return 109
	case types.FormatRG11B10Ufloat:
		return 122 // VK_FORMAT_B10G11R11_UFLOAT_PACK32
	case types.FormatDepth16Unorm:
		return 124
	case types.FormatDepth32Float:
		return 126
	case types.FormatStencil8:
		return 127
	case types.FormatDepth24PlusStencil8:
		return 129 // VK_FORMAT_D24_UNORM_S8_UINT
	case types.FormatDepth32FloatStencil8:
		return 130
	}
	return 0 // VK_FORMAT_UNDEFINED
}

func formatFromVk(f vk.Format) types.Format {
	switch f {
	case 37:
		return types.FormatRGBA8Unorm
	case 43:
		return types.FormatRGBA8UnormSrgb
	case 44:
		return types.FormatBGRA8Unorm
	case 50:
		return types.FormatBGRA8UnormSrgb
	case 64:
		return types.FormatRGB10A2Unorm
	case 126:
		return types.FormatDepth32Float
	}
	return types.FormatUndefined
}

func aspectOf(f types.Format) vk.ImageAspectFlags {
	var aspect vk.ImageAspectFlags
	if f.HasDepth() {
		aspect |= vk.ImageAspectDepthBit
	}
	if f.HasStencil() {
		aspect |= vk.ImageAspectStencilBit
	}
	if aspect == 0 {
		aspect = vk.ImageAspectColorBit
	}
	return aspect
}

func layoutToVk(l types.TextureLayout) vk.ImageLayout {
	switch l {
	case types.LayoutUndefined:
		return vk.ImageLayoutUndefined
	case types.LayoutGeneral:
		return vk.ImageLayoutGeneral
	case types.LayoutColorAttachment:
		return vk.ImageLayoutColorAttachment
	case types.LayoutDepthStencilAttachment:
		return vk.ImageLayoutDepthStencilAttachment
	case types.LayoutShaderReadOnly:
		return vk.ImageLayoutShaderReadOnly
	case types.LayoutTransferSrc:
		return vk.ImageLayoutTransferSrc
	case types.LayoutTransferDst:
		return vk.ImageLayoutTransferDst
	case types.LayoutPresent:
		return vk.ImageLayoutPresentSrcKHR
	}
	return vk.ImageLayoutGeneral
}

func textureUsageToVk(u types.TextureUsage) vk.ImageUsageFlags {
	var flags vk.ImageUsageFlags
	if u.Contains(types.TextureUsageSampled) {
		flags |= vk.ImageUsageSampledBit
	}
	if u.Contains(types.TextureUsageStorage) {
		flags |= vk.ImageUsageStorageBit
	}
	if u.Contains(types.TextureUsageColorAttachment) {
		flags |= vk.ImageUsageColorAttachmentBit
	}
	if u.Contains(types.TextureUsageDepthStencilAttachment) {
		flags |= vk.ImageUsageDepthStencilAttachmentBit
	}
	if u.Contains(types.TextureUsageInputAttachment) {
		flags |= vk.ImageUsageInputAttachmentBit
	}
	if u.Contains(types.TextureUsageTransferSrc) {
		flags |= vk.ImageUsageTransferSrcBit
	}
	if u.Contains(types.TextureUsageTransferDst) {
		flags |= vk.ImageUsageTransferDstBit
	}
	return flags
}

func bufferUsageToVk(u types.BufferUsage) vk.BufferUsageFlags {
	var flags vk.BufferUsageFlags
	if u.Contains(types.BufferUsageTransferSrc) {
		flags |= vk.BufferUsageTransferSrcBit
	}
	if u.Contains(types.BufferUsageTransferDst) {
		flags |= vk.BufferUsageTransferDstBit
	}
	if u.Contains(types.BufferUsageVertex) {
		flags |= vk.BufferUsageVertexBufferBit
	}
	if u.Contains(types.BufferUsageIndex) {
		flags |= vk.BufferUsageIndexBufferBit
	}
	if u.Contains(types.BufferUsageUniform) {
		flags |= vk.BufferUsageUniformBufferBit
	}
	if u.Contains(types.BufferUsageStorage) {
		flags |= vk.BufferUsageStorageBufferBit
	}
	if u.Contains(types.BufferUsageIndirect) {
		flags |= vk.BufferUsageIndirectBufferBit
	}
	return flags
}

func stageFlagsToVk(s types.PipelineStageFlags) vk.PipelineStageFlags {
	var flags vk.PipelineStageFlags
	set := func(mine types.PipelineStageFlags, theirs vk.PipelineStageFlags) {
		if s&mine != 0 {
			flags |= theirs
		}
	}
	set(types.StageTopOfPipe, vk.PipelineStageTopOfPipeBit)
	set(types.StageDrawIndirect, vk.PipelineStageDrawIndirectBit)
	set(types.StageVertexInput, vk.PipelineStageVertexInputBit)
	set(types.StageVertexShader, vk.PipelineStageVertexShaderBit)
	set(types.StageFragmentShader, vk.PipelineStageFragmentShaderBit)
	set(types.StageEarlyFragmentTests, vk.PipelineStageEarlyFragmentTestsBit)
	set(types.StageLateFragmentTests, vk.PipelineStageLateFragmentTestsBit)
	set(types.StageColorAttachmentOutput, vk.PipelineStageColorAttachmentOutputBit)
	set(types.StageComputeShader, vk.PipelineStageComputeShaderBit)
	set(types.StageTransfer, vk.PipelineStageTransferBit)
	set(types.StageBottomOfPipe, vk.PipelineStageBottomOfPipeBit)
	set(types.StageAllGraphics, vk.PipelineStageAllGraphicsBit)
	set(types.StageAllCommands, vk.PipelineStageAllCommandsBit)
	if flags == 0 {
		flags = vk.PipelineStageTopOfPipeBit
	}
	return flags
}

func accessFlagsToVk(a types.AccessFlags) vk.AccessFlags {
	var flags vk.AccessFlags
	set := func(mine types.AccessFlags, theirs vk.AccessFlags) {
		if a&mine != 0 {
			flags |= theirs
		}
	}
	set(types.AccessIndirectRead, vk.AccessIndirectCommandReadBit)
	set(types.AccessIndexRead, vk.AccessIndexReadBit)
	set(types.AccessVertexAttributeRead, vk.AccessVertexAttributeReadBit)
	set(types.AccessUniformRead, vk.AccessUniformReadBit)
	set(types.AccessInputAttachmentRead, vk.AccessInputAttachmentReadBit)
	set(types.AccessShaderRead, vk.AccessShaderReadBit)
	set(types.AccessShaderWrite, vk.AccessShaderWriteBit)
	set(types.AccessColorAttachmentRead, vk.AccessColorAttachmentReadBit)
	set(types.AccessColorAttachmentWrite, vk.AccessColorAttachmentWriteBit)
	set(types.AccessDepthStencilRead, vk.AccessDepthStencilAttachmentReadBit)
	set(types.AccessDepthStencilWrite, vk.AccessDepthStencilAttachmentWriteBit)
	set(types.AccessTransferRead, vk.AccessTransferReadBit)
	set(types.AccessTransferWrite, vk.AccessTransferWriteBit)
	set(types.AccessMemoryRead, vk.AccessMemoryReadBit)
	set(types.AccessMemoryWrite, vk.AccessMemoryWriteBit)
	return flags
}

func loadOpToVk(op types.AttachmentLoadOp) vk.AttachmentLoadOp {
	switch op {
	case types.LoadOpLoad:
		return vk.AttachmentLoadOpLoad
	case types.LoadOpClear:
		return vk.AttachmentLoadOpClear
	}
	return vk.AttachmentLoadOpDontCare
}

func storeOpToVk(op types.AttachmentStoreOp) vk.AttachmentStoreOp {
	if op == types.StoreOpStore {
		return vk.AttachmentStoreOpStore
	}
	return vk.AttachmentStoreOpDontCare
}

func filterToVk(f types.FilterMode) vk.Filter {
	if f == types.FilterLinear {
		return 1
	}
	return 0
}

func mipmapModeToVk(f types.FilterMode) vk.SamplerMipmapMode {
	if f == types.FilterLinear {
		return 1
	}
	return 0
}

func addressModeToVk(m types.AddressMode) vk.SamplerAddressMode {
	switch m {
	case types.AddressRepeat:
		return 0
	case types.AddressMirrorRepeat:
		return 1
	case types.AddressClampToEdge:
		return 2
	case types.AddressClampToBorder:
		return 3
	}
	return 0
}

func borderColorToVk(b types.BorderColor) vk.BorderColor {
	switch b {
	case types.BorderTransparentBlack:
		return 0 // FLOAT_TRANSPARENT_BLACK
	case types.BorderOpaqueBlack:
		return 2 // FLOAT_OPAQUE_BLACK
	case types.BorderOpaqueWhite:
		return 4 // FLOAT_OPAQUE_WHITE
	}
	return 0
}

func compareOpToVk(op types.CompareOp) vk.CompareOp {
	return vk.CompareOp(op)
}

func stageBitToVk(stage types.ShaderStage) vk.ShaderStageFlagBits {
	switch stage {
	case types.StageVertex:
		return vk.ShaderStageVertexBit
	case types.StageTessellationControl:
		return vk.ShaderStageTessellationControlBit
	case types.StageTessellationEvaluation:
		return vk.ShaderStageTessellationEvaluationBit
	case types.StageGeometry:
		return vk.ShaderStageGeometryBit
	case types.StageFragment:
		return vk.ShaderStageFragmentBit
	case types.StageCompute:
		return vk.ShaderStageComputeBit
	}
	return 0
}

func stageFlagsOf(flags types.ShaderStageFlags) uint32 {
	var out uint32
	for stage := types.ShaderStage(0); stage < types.StageMax; stage++ {
		if flags.Has(stage.Flag()) {
			out |= uint32(stageBitToVk(stage))
		}
	}
	return out
}

func descriptorTypeToVk(t types.ShaderResourceType) vk.DescriptorType {
	switch t {
	case types.ResourceSampler:
		return vk.DescriptorTypeSampler
	case types.ResourceSamplerWithTexture:
		return vk.DescriptorTypeCombinedImageSampler
	case types.ResourceTexture:
		return vk.DescriptorTypeSampledImage
	case types.ResourceStorageImage:
		return vk.DescriptorTypeStorageImage
	case types.ResourceUniformTexelBuffer:
		return vk.DescriptorTypeUniformTexelBuffer
	case types.ResourceStorageTexelBuffer:
		return vk.DescriptorTypeStorageTexelBuffer
	case types.ResourceUniformBuffer:
		return vk.DescriptorTypeUniformBuffer
	case types.ResourceStorageBuffer:
		return vk.DescriptorTypeStorageBuffer
	case types.ResourceInputAttachment:
		return vk.DescriptorTypeInputAttachment
	}
	return vk.DescriptorTypeUniformBuffer
}

func boolToVk(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
