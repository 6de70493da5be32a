// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

import (
	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/types"
)

// QueueFlags declares the queue capabilities a pass needs.
type QueueFlags uint8

const (
	QueueGraphics QueueFlags = 1 << iota
	QueueAsyncCompute
	QueueTransfer
)

// ExecuteFunc is a pass's recording callback. It typically builds a
// deferred command list and replays it into ctx.
type ExecuteFunc func(ctx hal.CommandContext)

// Pass is one node of the graph: its resource declarations, shader
// bindings and execution callback.
type Pass struct {
	graph *Graph
	index int
	tag   string
	queue QueueFlags

	// outImages is attachment-ordered; outBuffers declaration-ordered.
	outImages  []int
	outBuffers []int

	inImages  map[string]types.TextureUsage
	inBuffers map[string]types.BufferUsage

	externalImages  map[string][]hal.Texture
	externalBuffers map[string]hal.Buffer

	shader   hal.Shader
	samplers map[string]hal.Sampler

	// bindings maps a resource tag to the reflected shader resource
	// the tag feeds.
	bindings map[string]types.ShaderResource

	state     *types.PipelineState
	onExecute ExecuteFunc
}

func newPass(g *Graph, index int, tag string, queue QueueFlags) *Pass {
	return &Pass{
		graph:           g,
		index:           index,
		tag:             tag,
		queue:           queue,
		inImages:        make(map[string]types.TextureUsage),
		inBuffers:       make(map[string]types.BufferUsage),
		externalImages:  make(map[string][]hal.Texture),
		externalBuffers: make(map[string]hal.Buffer),
		samplers:        make(map[string]hal.Sampler),
		bindings:        make(map[string]types.ShaderResource),
	}
}

// Tag returns the pass name.
func (p *Pass) Tag() string { return p.tag }

// WriteColorImage declares a color attachment write.
func (p *Pass) WriteColorImage(tag string, info ImageInfo) *Pass {
	p.writeImage(tag, info, types.TextureUsageColorAttachment)
	return p
}

// WriteDepthStencilImage declares a depth-stencil attachment write.
func (p *Pass) WriteDepthStencilImage(tag string, info ImageInfo) *Pass {
	p.writeImage(tag, info, types.TextureUsageDepthStencilAttachment)
	return p
}

// WriteStorageImage declares a storage image write.
func (p *Pass) WriteStorageImage(tag string, info ImageInfo) *Pass {
	p.writeImage(tag, info, types.TextureUsageStorage)
	return p
}

func (p *Pass) writeImage(tag string, info ImageInfo, usage types.TextureUsage) {
	res := p.graph.imageResource(tag)
	if res.writtenBy(p.index) {
		p.graph.declareError(&CompileError{Pass: p.tag, Resource: tag, Wrapped: ErrWriteAfterWrite})
		return
	}
	res.image = info
	res.hasInfo = true
	res.writeImageUsage |= usage
	res.writtenIn = append(res.writtenIn, p.index)
	p.outImages = append(p.outImages, res.index)
	p.graph.markDirty()
}

// ReadImage declares a read of an internal image with the given usage
// (typically sampled).
func (p *Pass) ReadImage(tag string, usage types.TextureUsage) *Pass {
	res, ok := p.graph.lookupResource(tag)
	if !ok || res.kind != resourceImage {
		p.graph.declareError(&CompileError{Pass: p.tag, Resource: tag, Wrapped: ErrUnknownResource})
		return p
	}
	p.inImages[tag] = usage
	res.readIn = append(res.readIn, p.index)
	p.graph.markDirty()
	return p
}

// ReadBuffer declares a read of an internal buffer with the given
// usage.
func (p *Pass) ReadBuffer(tag string, usage types.BufferUsage) *Pass {
	res, ok := p.graph.lookupResource(tag)
	if !ok || res.kind != resourceBuffer {
		p.graph.declareError(&CompileError{Pass: p.tag, Resource: tag, Wrapped: ErrUnknownResource})
		return p
	}
	p.inBuffers[tag] = usage
	res.readIn = append(res.readIn, p.index)
	p.graph.markDirty()
	return p
}

// WriteStorageBuffer declares a storage buffer write.
func (p *Pass) WriteStorageBuffer(tag string, info BufferInfo) *Pass {
	p.writeBuffer(tag, info, types.BufferUsageStorage)
	return p
}

// WriteTransferBuffer declares a transfer-destination buffer write.
func (p *Pass) WriteTransferBuffer(tag string, info BufferInfo) *Pass {
	p.writeBuffer(tag, info, types.BufferUsageTransferDst)
	return p
}

func (p *Pass) writeBuffer(tag string, info BufferInfo, usage types.BufferUsage) {
	res := p.graph.bufferResource(tag)
	if res.writtenBy(p.index) {
		p.graph.declareError(&CompileError{Pass: p.tag, Resource: tag, Wrapped: ErrWriteAfterWrite})
		return
	}
	res.buffer = info
	res.hasInfo = true
	res.writeBufferUsage |= usage
	res.writtenIn = append(res.writtenIn, p.index)
	p.outBuffers = append(p.outBuffers, res.index)
	p.graph.markDirty()
}

// ReadExternalImage binds an externally owned texture to a tag. The
// graph never allocates or transitions external resources.
func (p *Pass) ReadExternalImage(tag string, textures ...hal.Texture) *Pass {
	p.externalImages[tag] = textures
	return p
}

// ReadExternalBuffer binds an externally owned buffer to a tag.
func (p *Pass) ReadExternalBuffer(tag string, buffer hal.Buffer) *Pass {
	p.externalBuffers[tag] = buffer
	return p
}

// UseShader sets the pass's shader group.
func (p *Pass) UseShader(shader hal.Shader) *Pass {
	p.shader = shader
	p.graph.markDirty()
	return p
}

// BindSampler binds the sampler used when tag feeds a combined
// image-sampler binding.
func (p *Pass) BindSampler(tag string, sampler hal.Sampler) *Pass {
	p.samplers[tag] = sampler
	return p
}

// BindResource routes a resource tag to the named reflected shader
// resource. The name must exist in the pass's shader group.
func (p *Pass) BindResource(tag, shaderResourceName string) *Pass {
	if p.shader == nil {
		p.graph.declareError(&CompileError{Pass: p.tag, Resource: tag, Wrapped: ErrUnknownResource})
		return p
	}
	res, ok := p.shader.Info().Resource(shaderResourceName)
	if !ok {
		p.graph.declareError(&CompileError{Pass: p.tag, Resource: shaderResourceName, Wrapped: ErrUnknownResource})
		return p
	}
	p.bindings[tag] = res
	return p
}

// SetPipelineState overrides the default fixed-function state.
func (p *Pass) SetPipelineState(state types.PipelineState) *Pass {
	p.state = &state
	p.graph.markDirty()
	return p
}

// OnExecute sets the pass callback.
func (p *Pass) OnExecute(fn ExecuteFunc) *Pass {
	p.onExecute = fn
	return p
}

// InvalidateBindings forces the pass's descriptor sets to be rewritten
// on the next Execute. Descriptor sets are otherwise written exactly
// once after compile; changing a binding without calling this is not
// detected.
func (p *Pass) InvalidateBindings() {
	for i := range p.graph.physicalPasses {
		if p.graph.physicalPasses[i].passIndex == p.index {
			p.graph.physicalPasses[i].descriptorSetsUpdated = false
		}
	}
}
