// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cache

import (
	"math"
	"reflect"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/types"
)

// hasher accumulates an FNV-1a hash over descriptor fields. FNV keeps
// keys deterministic across runs, which the compile-idempotence
// guarantees lean on.
type hasher struct {
	h uint64
}

const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

func newHasher() hasher {
	return hasher{h: fnvOffset}
}

func (h *hasher) byte(b byte) {
	h.h ^= uint64(b)
	h.h *= fnvPrime
}

func (h *hasher) u32(v uint32) {
	h.byte(byte(v))
	h.byte(byte(v >> 8))
	h.byte(byte(v >> 16))
	h.byte(byte(v >> 24))
}

func (h *hasher) u64(v uint64) {
	h.u32(uint32(v))
	h.u32(uint32(v >> 32))
}

func (h *hasher) f32(v float32) {
	h.u32(math.Float32bits(v))
}

func (h *hasher) bool(v bool) {
	if v {
		h.byte(1)
	} else {
		h.byte(0)
	}
}

func (h *hasher) str(s string) {
	for i := 0; i < len(s); i++ {
		h.byte(s[i])
	}
	h.byte(0)
}

// ptr mixes in the identity of a backend object. Backend objects are
// pointers; their addresses are stable for the object's lifetime,
// which is exactly the lifetime of any cache entry referring to them.
func (h *hasher) ptr(v any) {
	if v == nil {
		h.u64(0)
		return
	}
	h.u64(uint64(reflect.ValueOf(v).Pointer()))
}

func hashRenderPass(spec *types.RenderPassSpec) uint64 {
	h := newHasher()
	for _, a := range spec.Attachments {
		h.u32(uint32(a.Format))
		h.u32(uint32(a.Samples))
		h.u32(uint32(a.LoadOp))
		h.u32(uint32(a.StoreOp))
		h.u32(uint32(a.StencilLoadOp))
		h.u32(uint32(a.StencilStoreOp))
		h.u32(uint32(a.InitialLayout))
		h.u32(uint32(a.FinalLayout))
	}
	for _, s := range spec.Subpasses {
		for _, ref := range s.ColorRefs {
			h.u32(ref.Attachment)
			h.u32(uint32(ref.Layout))
		}
		for _, ref := range s.InputRefs {
			h.u32(ref.Attachment)
			h.u32(uint32(ref.Layout))
		}
		h.bool(s.DepthStencilRef != nil)
		if s.DepthStencilRef != nil {
			h.u32(s.DepthStencilRef.Attachment)
			h.u32(uint32(s.DepthStencilRef.Layout))
		}
	}
	for _, d := range spec.Dependencies {
		h.u32(d.SrcSubpass)
		h.u32(d.DstSubpass)
		h.u32(uint32(d.SrcStages))
		h.u32(uint32(d.DstStages))
		h.u32(uint32(d.SrcAccess))
		h.u32(uint32(d.DstAccess))
	}
	return h.h
}

func hashFramebuffer(desc *hal.FramebufferDescriptor) uint64 {
	h := newHasher()
	h.ptr(desc.RenderPass)
	for _, view := range desc.Attachments {
		h.ptr(view)
	}
	h.u32(desc.Extent.Width)
	h.u32(desc.Extent.Height)
	h.u32(desc.Layers)
	return h.h
}

func hashSetLayout(set uint32, bindings []types.ShaderResource) uint64 {
	h := newHasher()
	h.u32(set)
	for _, b := range bindings {
		h.u32(b.Binding)
		h.u32(uint32(b.Type))
		h.u32(b.ArraySize)
		h.u32(uint32(b.Stages))
	}
	return h.h
}

func hashGraphicsPipeline(desc *hal.GraphicsPipelineDescriptor) uint64 {
	h := newHasher()
	h.ptr(desc.RenderPass)
	h.u32(desc.Subpass)
	h.u64(desc.Shader.Hash())

	st := &desc.State
	h.u32(uint32(st.InputAssembly.Topology))
	h.bool(st.InputAssembly.PrimitiveRestart)

	h.u32(uint32(st.Rasterization.PolygonMode))
	h.u32(uint32(st.Rasterization.CullMode))
	h.u32(uint32(st.Rasterization.FrontFace))
	h.bool(st.Rasterization.DepthClampEnable)
	h.bool(st.Rasterization.DiscardEnable)
	h.bool(st.Rasterization.DepthBiasEnable)
	h.f32(st.Rasterization.LineWidth)

	h.bool(st.DepthStencil.DepthTestEnable)
	h.bool(st.DepthStencil.DepthWriteEnable)
	h.u32(uint32(st.DepthStencil.DepthCompareOp))
	h.bool(st.DepthStencil.DepthBoundsEnable)
	h.bool(st.DepthStencil.StencilTestEnable)
	hashStencilFace(&h, &st.DepthStencil.Front)
	hashStencilFace(&h, &st.DepthStencil.Back)

	for _, a := range st.ColorBlend.Attachments {
		h.bool(a.BlendEnable)
		h.u32(uint32(a.SrcColorFactor))
		h.u32(uint32(a.DstColorFactor))
		h.u32(uint32(a.ColorOp))
		h.u32(uint32(a.SrcAlphaFactor))
		h.u32(uint32(a.DstAlphaFactor))
		h.u32(uint32(a.AlphaOp))
		h.u32(uint32(a.WriteMask))
	}

	h.u32(uint32(st.Multisample.Samples))
	h.bool(st.Multisample.SampleShadingEnable)
	h.f32(st.Multisample.MinSampleShading)
	h.bool(st.Multisample.AlphaToCoverage)
	h.bool(st.Multisample.AlphaToOne)

	for _, d := range st.DynamicStates {
		h.u32(uint32(d))
	}
	for _, s := range st.Specialization {
		h.u32(s.ConstantID)
		h.u32(s.Value)
	}
	return h.h
}

func hashStencilFace(h *hasher, s *types.StencilOpState) {
	h.u32(uint32(s.FailOp))
	h.u32(uint32(s.PassOp))
	h.u32(uint32(s.DepthFailOp))
	h.u32(uint32(s.CompareOp))
}
