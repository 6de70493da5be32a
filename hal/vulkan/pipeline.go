// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"encoding/binary"
	"log/slog"
	"unsafe"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/hal/vulkan/vk"
	"github.com/gogpu/forge/types"
)

// CreateGraphicsPipeline builds a graphics pipeline from the shader
// group's reflection and the fixed-function state.
func (d *Device) CreateGraphicsPipeline(desc *hal.GraphicsPipelineDescriptor) (hal.Pipeline, error) {
	shader, ok := desc.Shader.(*Shader)
	if !ok {
		return nil, hal.ErrPipelineCreationFailed
	}
	layout, ok := desc.Layout.(*PipelineLayout)
	if !ok {
		return nil, hal.ErrPipelineCreationFailed
	}
	renderPass, ok := desc.RenderPass.(*RenderPass)
	if !ok {
		return nil, hal.ErrPipelineCreationFailed
	}

	specInfo, specBacking := buildSpecialization(shader.info, desc.State.Specialization)
	stages := make([]vk.PipelineShaderStageCreateInfo, 0, len(shader.modules))
	for stage := types.ShaderStage(0); stage < types.StageMax; stage++ {
		module, ok := shader.modules[stage]
		if !ok {
			continue
		}
		entry := shader.entries[stage]
		stages = append(stages, vk.PipelineShaderStageCreateInfo{
			SType:               vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:               stageBitToVk(stage),
			Module:              module,
			PName:               &entry[0],
			PSpecializationInfo: specInfo,
		})
	}

	// Vertex input comes from reflection: all attributes packed in
	// binding 0 at running offsets.
	info := shader.info
	var vertexBindings []vk.VertexInputBindingDescription
	var vertexAttrs []vk.VertexInputAttributeDescription
	if len(info.VertexInputAttributes) > 0 {
		vertexBindings = []vk.VertexInputBindingDescription{{
			Binding: 0,
			Stride:  info.VertexBindingStride,
		}}
		for _, attr := range info.VertexInputAttributes {
			vertexAttrs = append(vertexAttrs, vk.VertexInputAttributeDescription{
				Location: attr.Location,
				Binding:  attr.Binding,
				Format:   formatToVk(attr.Format),
				Offset:   attr.Offset,
			})
		}
	}
	vertexInput := vk.PipelineVertexInputStateCreateInfo{
		SType: vk.StructureTypePipelineVertexInputState,
	}
	if len(vertexBindings) > 0 {
		vertexInput.VertexBindingDescriptionCount = uint32(len(vertexBindings))
		vertexInput.PVertexBindingDescriptions = &vertexBindings[0]
		vertexInput.VertexAttributeDescriptionCount = uint32(len(vertexAttrs))
		vertexInput.PVertexAttributeDescriptions = &vertexAttrs[0]
	}

	st := &desc.State

	inputAssembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyState,
		Topology:               vk.PrimitiveTopology(st.InputAssembly.Topology),
		PrimitiveRestartEnable: boolToVk(st.InputAssembly.PrimitiveRestart),
	}

	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportState,
		ViewportCount: 1,
		ScissorCount:  1,
	}

	rasterization := vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationState,
		DepthClampEnable:        boolToVk(st.Rasterization.DepthClampEnable),
		RasterizerDiscardEnable: boolToVk(st.Rasterization.DiscardEnable),
		PolygonMode:             vk.PolygonMode(st.Rasterization.PolygonMode),
		CullMode:                vk.CullModeFlags(st.Rasterization.CullMode),
		FrontFace:               vk.FrontFace(st.Rasterization.FrontFace),
		DepthBiasEnable:         boolToVk(st.Rasterization.DepthBiasEnable),
		LineWidth:               st.Rasterization.LineWidth,
	}
	if rasterization.LineWidth == 0 {
		rasterization.LineWidth = 1
	}

	samples := st.Multisample.Samples
	if samples == 0 {
		samples = types.Samples1
	}
	multisample := vk.PipelineMultisampleStateCreateInfo{
		SType:                 vk.StructureTypePipelineMultisampleState,
		RasterizationSamples:  vk.SampleCountFlagBits(samples),
		SampleShadingEnable:   boolToVk(st.Multisample.SampleShadingEnable),
		MinSampleShading:      st.Multisample.MinSampleShading,
		AlphaToCoverageEnable: boolToVk(st.Multisample.AlphaToCoverage),
		AlphaToOneEnable:      boolToVk(st.Multisample.AlphaToOne),
	}

	depthStencil := vk.PipelineDepthStencilStateCreateInfo{
		SType:                 vk.StructureTypePipelineDepthStencilState,
		DepthTestEnable:       boolToVk(st.DepthStencil.DepthTestEnable),
		DepthWriteEnable:      boolToVk(st.DepthStencil.DepthWriteEnable),
		DepthCompareOp:        compareOpToVk(st.DepthStencil.DepthCompareOp),
		DepthBoundsTestEnable: boolToVk(st.DepthStencil.DepthBoundsEnable),
		StencilTestEnable:     boolToVk(st.DepthStencil.StencilTestEnable),
		Front:                 stencilOpStateToVk(st.DepthStencil.Front),
		Back:                  stencilOpStateToVk(st.DepthStencil.Back),
		MaxDepthBounds:        1,
	}

	blendAttachments := make([]vk.PipelineColorBlendAttachmentState, len(st.ColorBlend.Attachments))
	for i, a := range st.ColorBlend.Attachments {
		blendAttachments[i] = vk.PipelineColorBlendAttachmentState{
			BlendEnable:         boolToVk(a.BlendEnable),
			SrcColorBlendFactor: vk.BlendFactor(a.SrcColorFactor),
			DstColorBlendFactor: vk.BlendFactor(a.DstColorFactor),
			ColorBlendOp:        vk.BlendOp(a.ColorOp),
			SrcAlphaBlendFactor: vk.BlendFactor(a.SrcAlphaFactor),
			DstAlphaBlendFactor: vk.BlendFactor(a.DstAlphaFactor),
			AlphaBlendOp:        vk.BlendOp(a.AlphaOp),
			ColorWriteMask:      vk.ColorComponentFlags(a.WriteMask),
		}
	}
	colorBlend := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendState,
		AttachmentCount: uint32(len(blendAttachments)),
	}
	if len(blendAttachments) > 0 {
		colorBlend.PAttachments = &blendAttachments[0]
	}

	dynamicStates := make([]vk.DynamicState, 0, len(st.DynamicStates))
	for _, ds := range st.DynamicStates {
		dynamicStates = append(dynamicStates, dynamicStateToVk(ds))
	}
	dynamic := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicState,
		DynamicStateCount: uint32(len(dynamicStates)),
	}
	if len(dynamicStates) > 0 {
		dynamic.PDynamicStates = &dynamicStates[0]
	}

	createInfo := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(stages)),
		PVertexInputState:   &vertexInput,
		PInputAssemblyState: &inputAssembly,
		PViewportState:      &viewportState,
		PRasterizationState: &rasterization,
		PMultisampleState:   &multisample,
		PDepthStencilState:  &depthStencil,
		PColorBlendState:    &colorBlend,
		PDynamicState:       &dynamic,
		Layout:              layout.handle,
		RenderPass:          renderPass.handle,
		Subpass:             desc.Subpass,
		BasePipelineIndex:   -1,
	}
	if len(stages) > 0 {
		createInfo.PStages = &stages[0]
	}

	var handle vk.Pipeline
	result := d.cmds.CreateGraphicsPipelines(d.handle, &createInfo, &handle)
	_ = specBacking
	if result != vk.Success || handle == vk.NullHandle {
		// Some drivers report success but write a null pipeline; treat
		// both the same and dump the state.
		hal.Logger().Error("vulkan: graphics pipeline creation failed",
			slog.Int("result", int(result)),
			slog.Int("stages", len(stages)),
			slog.Int("color_attachments", len(blendAttachments)),
			slog.Uint64("subpass", uint64(desc.Subpass)),
			slog.Any("state", desc.State))
		return nil, hal.ErrPipelineCreationFailed
	}

	return &Pipeline{handle: handle, layout: layout, bindPoint: vk.PipelineBindPointGraphics}, nil
}

// CreateComputePipeline builds a compute pipeline.
func (d *Device) CreateComputePipeline(desc *hal.ComputePipelineDescriptor) (hal.Pipeline, error) {
	shader, ok := desc.Shader.(*Shader)
	if !ok {
		return nil, hal.ErrPipelineCreationFailed
	}
	layout, ok := desc.Layout.(*PipelineLayout)
	if !ok {
		return nil, hal.ErrPipelineCreationFailed
	}
	module, ok := shader.modules[types.StageCompute]
	if !ok {
		return nil, hal.ErrShaderInvalid
	}
	entry := shader.entries[types.StageCompute]

	createInfo := vk.ComputePipelineCreateInfo{
		SType: vk.StructureTypeComputePipelineCreateInfo,
		Stage: vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageComputeBit,
			Module: module,
			PName:  &entry[0],
		},
		Layout:            layout.handle,
		BasePipelineIndex: -1,
	}

	var handle vk.Pipeline
	result := d.cmds.CreateComputePipelines(d.handle, &createInfo, &handle)
	if result != vk.Success || handle == vk.NullHandle {
		hal.Logger().Error("vulkan: compute pipeline creation failed", slog.Int("result", int(result)))
		return nil, hal.ErrPipelineCreationFailed
	}
	return &Pipeline{handle: handle, layout: layout, bindPoint: vk.PipelineBindPointCompute}, nil
}

// DestroyPipeline destroys a pipeline.
func (d *Device) DestroyPipeline(pipeline hal.Pipeline) {
	if p, ok := pipeline.(*Pipeline); ok && p.handle != vk.NullHandle {
		d.cmds.DestroyPipeline(d.handle, p.handle)
		p.handle = vk.NullHandle
	}
}

// buildSpecialization packs override values for the reflected
// specialization constants. Constants without an override keep their
// bytecode defaults, so only overridden ids are mapped.
func buildSpecialization(info *types.ShaderGroupInfo, overrides []types.SpecConstantOverride) (*vk.SpecializationInfo, []byte) {
	if len(overrides) == 0 {
		return nil, nil
	}
	data := make([]byte, 0, len(overrides)*4)
	entries := make([]vk.SpecializationMapEntry, 0, len(overrides))
	for _, o := range overrides {
		entries = append(entries, vk.SpecializationMapEntry{
			ConstantID: o.ConstantID,
			Offset:     uint32(len(data)),
			Size:       4,
		})
		var word [4]byte
		binary.LittleEndian.PutUint32(word[:], o.Value)
		data = append(data, word[:]...)
	}
	_ = info
	return &vk.SpecializationInfo{
		MapEntryCount: uint32(len(entries)),
		PMapEntries:   &entries[0],
		DataSize:      uintptr(len(data)),
		PData:         unsafe.Pointer(&data[0]),
	}, data
}

func stencilOpStateToVk(s types.StencilOpState) vk.StencilOpState {
	return vk.StencilOpState{
		FailOp:      vk.StencilOp(s.FailOp),
		PassOp:      vk.StencilOp(s.PassOp),
		DepthFailOp: vk.StencilOp(s.DepthFailOp),
		CompareOp:   compareOpToVk(s.CompareOp),
		CompareMask: 0xFF,
		WriteMask:   0xFF,
	}
}

func dynamicStateToVk(ds types.DynamicState) vk.DynamicState {
	switch ds {
	case types.DynamicViewport:
		return 0
	case types.DynamicScissor:
		return 1
	case types.DynamicLineWidth:
		return 2
	case types.DynamicDepthBias:
		return 3
	case types.DynamicBlendConstants:
		return 4
	case types.DynamicStencilReference:
		return 8
	}
	return 0
}
