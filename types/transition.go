// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

// The usage-to-barrier tables below are the single source of truth for
// how a usage state maps to pipeline stages and memory access. The
// render graph unions these across a pass's transitions; backends map
// the results onto API masks.

// PipelineStages returns the pipeline stages that consume or produce a
// texture in the given usage.
func (u TextureUsage) PipelineStages() PipelineStageFlags {
	var stages PipelineStageFlags
	if u == TextureUsageNone {
		return StageTopOfPipe
	}
	if u.Contains(TextureUsageSampled) || u.Contains(TextureUsageInputAttachment) {
		stages |= StageFragmentShader | StageVertexShader
	}
	if u.Contains(TextureUsageStorage) {
		stages |= StageComputeShader
	}
	if u.Contains(TextureUsageColorAttachment) {
		stages |= StageColorAttachmentOutput
	}
	if u.Contains(TextureUsageDepthStencilAttachment) {
		stages |= StageEarlyFragmentTests | StageLateFragmentTests
	}
	if u.Contains(TextureUsageTransferSrc) || u.Contains(TextureUsageTransferDst) {
		stages |= StageTransfer
	}
	return stages
}

// Access returns the memory access kinds implied by a texture usage.
func (u TextureUsage) Access() AccessFlags {
	var access AccessFlags
	if u.Contains(TextureUsageSampled) {
		access |= AccessShaderRead
	}
	if u.Contains(TextureUsageInputAttachment) {
		access |= AccessInputAttachmentRead
	}
	if u.Contains(TextureUsageStorage) {
		access |= AccessShaderRead | AccessShaderWrite
	}
	if u.Contains(TextureUsageColorAttachment) {
		access |= AccessColorAttachmentRead | AccessColorAttachmentWrite
	}
	if u.Contains(TextureUsageDepthStencilAttachment) {
		access |= AccessDepthStencilRead | AccessDepthStencilWrite
	}
	if u.Contains(TextureUsageTransferSrc) {
		access |= AccessTransferRead
	}
	if u.Contains(TextureUsageTransferDst) {
		access |= AccessTransferWrite
	}
	return access
}

// PipelineStages returns the pipeline stages that consume or produce a
// buffer in the given usage.
func (u BufferUsage) PipelineStages() PipelineStageFlags {
	var stages PipelineStageFlags
	if u == BufferUsageNone {
		return StageTopOfPipe
	}
	if u.Contains(BufferUsageTransferSrc) || u.Contains(BufferUsageTransferDst) {
		stages |= StageTransfer
	}
	if u.Contains(BufferUsageVertex) || u.Contains(BufferUsageIndex) {
		stages |= StageVertexInput
	}
	if u.Contains(BufferUsageUniform) {
		stages |= StageVertexShader | StageFragmentShader
	}
	if u.Contains(BufferUsageStorage) {
		stages |= StageComputeShader
	}
	if u.Contains(BufferUsageIndirect) {
		stages |= StageDrawIndirect
	}
	return stages
}

// Access returns the memory access kinds implied by a buffer usage.
func (u BufferUsage) Access() AccessFlags {
	var access AccessFlags
	if u.Contains(BufferUsageTransferSrc) {
		access |= AccessTransferRead
	}
	if u.Contains(BufferUsageTransferDst) {
		access |= AccessTransferWrite
	}
	if u.Contains(BufferUsageVertex) {
		access |= AccessVertexAttributeRead
	}
	if u.Contains(BufferUsageIndex) {
		access |= AccessIndexRead
	}
	if u.Contains(BufferUsageUniform) {
		access |= AccessUniformRead
	}
	if u.Contains(BufferUsageStorage) {
		access |= AccessShaderRead | AccessShaderWrite
	}
	if u.Contains(BufferUsageIndirect) {
		access |= AccessIndirectRead
	}
	return access
}
