// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package noop

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/types"
)

// Counters collects the observable side effects of a noop device.
type Counters struct {
	Submits            atomic.Int64
	Presents           atomic.Int64
	Draws              atomic.Int64
	Dispatches         atomic.Int64
	Barriers           atomic.Int64
	TextureTransitions atomic.Int64
	DescriptorWrites   atomic.Int64
	RenderScopes       atomic.Int64
	Blits              atomic.Int64
	CopyRegions        atomic.Int64
}

// Buffer implements hal.Buffer with host-side storage for mappable
// placements.
type Buffer struct {
	spec types.BufferSpec
	data []byte
}

// Size returns the buffer size in bytes.
func (b *Buffer) Size() uint64 { return b.spec.Size }

// Map returns the host-side bytes for host-visible placements.
func (b *Buffer) Map() ([]byte, error) {
	if b.spec.Placement == types.MemoryDeviceLocal {
		return nil, hal.ErrNotMappable
	}
	if b.data == nil {
		b.data = make([]byte, b.spec.Size)
	}
	return b.data, nil
}

// Unmap is a no-op.
func (b *Buffer) Unmap() {}

// Flush is a no-op.
func (b *Buffer) Flush(_, _ uint64) error { return nil }

// Texture implements hal.Texture and shadows the layout a real
// backend's image would occupy after the recorded barriers.
type Texture struct {
	spec types.TextureSpec

	mu     sync.Mutex
	layout types.TextureLayout

	view       *TextureView
	layerViews map[uint32]*TextureView
}

func newTexture(spec types.TextureSpec) *Texture {
	t := &Texture{spec: spec, layout: types.LayoutUndefined}
	t.view = &TextureView{texture: t}
	return t
}

// Spec returns the creation spec.
func (t *Texture) Spec() *types.TextureSpec { return &t.spec }

// View returns the default full-range view.
func (t *Texture) View() hal.TextureView { return t.view }

// LayerView returns a single-layer view.
func (t *Texture) LayerView(layer uint32) hal.TextureView {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.layerViews == nil {
		t.layerViews = make(map[uint32]*TextureView)
	}
	v, ok := t.layerViews[layer]
	if !ok {
		v = &TextureView{texture: t, layer: layer, single: true}
		t.layerViews[layer] = v
	}
	return v
}

// Layout returns the shadowed layout.
func (t *Texture) Layout() types.TextureLayout {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.layout
}

func (t *Texture) setLayout(l types.TextureLayout) {
	t.mu.Lock()
	t.layout = l
	t.mu.Unlock()
}

// TextureView implements hal.TextureView.
type TextureView struct {
	texture *Texture
	layer   uint32
	single  bool
}

// Texture returns the viewed texture, for test assertions.
func (v *TextureView) Texture() *Texture { return v.texture }

// Sampler implements hal.Sampler.
type Sampler struct {
	spec types.SamplerSpec
}

// Shader implements hal.Shader.
type Shader struct {
	info *types.ShaderGroupInfo
	hash uint64
}

// Info returns the merged reflection info.
func (s *Shader) Info() *types.ShaderGroupInfo { return s.info }

// Hash returns the stable bytecode hash.
func (s *Shader) Hash() uint64 { return s.hash }

// RenderPass implements hal.RenderPass, retaining the spec so the
// command stream can shadow final layouts.
type RenderPass struct {
	spec types.RenderPassSpec
}

// Spec returns the creation spec, for test assertions.
func (r *RenderPass) Spec() *types.RenderPassSpec { return &r.spec }

// Framebuffer implements hal.Framebuffer.
type Framebuffer struct {
	renderPass  *RenderPass
	attachments []hal.TextureView
	extent      types.Extent2D
}

// DescriptorSetLayout implements hal.DescriptorSetLayout.
type DescriptorSetLayout struct {
	set      uint32
	bindings []types.ShaderResource
}

// SetIndex returns the set number.
func (l *DescriptorSetLayout) SetIndex() uint32 { return l.set }

// Bindings returns the reflected bindings, for test assertions.
func (l *DescriptorSetLayout) Bindings() []types.ShaderResource { return l.bindings }

// PipelineLayout implements hal.PipelineLayout.
type PipelineLayout struct {
	layouts []hal.DescriptorSetLayout
}

// SetLayouts returns the descriptor-set layouts in set order.
func (l *PipelineLayout) SetLayouts() []hal.DescriptorSetLayout { return l.layouts }

// DescriptorSet implements hal.DescriptorSet and records its writes.
type DescriptorSet struct {
	layout *DescriptorSetLayout

	mu     sync.Mutex
	writes []hal.DescriptorWrite
}

// Writes returns every write applied to the set, for test assertions.
func (s *DescriptorSet) Writes() []hal.DescriptorWrite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]hal.DescriptorWrite(nil), s.writes...)
}

// Pipeline implements hal.Pipeline.
type Pipeline struct {
	layout  hal.PipelineLayout
	compute bool
}

// Layout returns the pipeline's layout.
func (p *Pipeline) Layout() hal.PipelineLayout { return p.layout }

// Fence implements hal.Fence. Submissions signal synchronously.
type Fence struct {
	signaled atomic.Bool
}

// Wait returns immediately: work on a noop device completes at submit.
// An unsignaled fence polled with a zero timeout reports ErrTimeout.
func (f *Fence) Wait(timeout time.Duration) error {
	if f.signaled.Load() {
		return nil
	}
	if timeout == 0 {
		return hal.ErrTimeout
	}
	return nil
}

// Reset returns the fence to the unsignaled state.
func (f *Fence) Reset() error {
	f.signaled.Store(false)
	return nil
}

// Signaled polls the fence.
func (f *Fence) Signaled() bool { return f.signaled.Load() }

// Semaphore implements hal.Semaphore. The id keeps distinct
// semaphores distinguishable (zero-size values could share an
// address).
type Semaphore struct {
	id uint64
}

// Swapchain implements hal.Swapchain with a round-robin image ring.
type Swapchain struct {
	format types.Format
	extent types.Extent2D
	images []*Texture

	mu        sync.Mutex
	next      uint32
	forcedErr error
}

// Format returns the swapchain format.
func (s *Swapchain) Format() types.Format { return s.format }

// Extent returns the swapchain extent.
func (s *Swapchain) Extent() types.Extent2D { return s.extent }

// ImageCount returns the number of images in the chain.
func (s *Swapchain) ImageCount() uint32 { return uint32(len(s.images)) }

// Image returns the i-th swapchain image.
func (s *Swapchain) Image(i uint32) hal.Texture { return s.images[i] }

// Acquire returns the next image index round-robin, or the forced
// error installed by ForceAcquireError.
func (s *Swapchain) Acquire(_ hal.Semaphore, _ time.Duration) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forcedErr != nil {
		err := s.forcedErr
		s.forcedErr = nil
		return 0, err
	}
	i := s.next
	s.next = (s.next + 1) % uint32(len(s.images))
	return i, nil
}

// ForceAcquireError makes the next Acquire fail with err. Used by
// tests to drive the out-of-date and surface-lost paths.
func (s *Swapchain) ForceAcquireError(err error) {
	s.mu.Lock()
	s.forcedErr = err
	s.mu.Unlock()
}
