// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"sync"
	"time"
	"unsafe"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/hal/vulkan/vk"
	"github.com/gogpu/forge/types"
)

// Buffer implements hal.Buffer with a dedicated memory allocation.
type Buffer struct {
	device *Device
	handle vk.Buffer
	memory vk.DeviceMemory
	spec   types.BufferSpec
	mapped []byte
}

// Size returns the buffer size in bytes.
func (b *Buffer) Size() uint64 { return b.spec.Size }

// Map maps the buffer's memory. Only host-visible placements map.
func (b *Buffer) Map() ([]byte, error) {
	if b.spec.Placement == types.MemoryDeviceLocal {
		return nil, hal.ErrNotMappable
	}
	if b.mapped != nil {
		return b.mapped, nil
	}
	var ptr unsafe.Pointer
	result := b.device.cmds.MapMemory(b.device.handle, b.memory, 0, vk.WholeSize, &ptr)
	if result != vk.Success {
		return nil, resultToError("vkMapMemory", result)
	}
	b.mapped = unsafe.Slice((*byte)(ptr), b.spec.Size)
	return b.mapped, nil
}

// Unmap releases the mapping.
func (b *Buffer) Unmap() {
	if b.mapped != nil {
		b.device.cmds.UnmapMemory(b.device.handle, b.memory)
		b.mapped = nil
	}
}

// Flush makes host writes visible to the device.
func (b *Buffer) Flush(offset, size uint64) error {
	if size == 0 {
		size = vk.WholeSize
	}
	result := b.device.cmds.FlushMappedMemoryRanges(b.device.handle, []vk.MappedMemoryRange{{
		SType:  vk.StructureTypeMappedMemoryRange,
		Memory: b.memory,
		Offset: offset,
		Size:   size,
	}})
	return resultToError("vkFlushMappedMemoryRanges", result)
}

// Texture implements hal.Texture. It owns the image, its memory (for
// non-swapchain images), the default view and lazily created layer
// views. The layout field shadows the image's current layout for
// AddTextureTransition.
type Texture struct {
	device *Device
	handle vk.Image
	memory vk.DeviceMemory
	spec   types.TextureSpec

	view *TextureView

	mu         sync.Mutex
	layout     vk.ImageLayout
	layerViews map[uint32]*TextureView

	// swapchainOwned images are destroyed by their swapchain.
	swapchainOwned bool
}

// Spec returns the creation spec.
func (t *Texture) Spec() *types.TextureSpec { return &t.spec }

// View returns the default full-range view.
func (t *Texture) View() hal.TextureView { return t.view }

// LayerView returns a single-layer view, created on first use.
func (t *Texture) LayerView(layer uint32) hal.TextureView {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.layerViews[layer]; ok {
		return v
	}
	v, err := t.device.createView(t, layer, 1)
	if err != nil {
		hal.Logger().Error("vulkan: layer view creation failed")
		return t.view
	}
	if t.layerViews == nil {
		t.layerViews = make(map[uint32]*TextureView)
	}
	t.layerViews[layer] = v
	return v
}

func (t *Texture) currentLayout() vk.ImageLayout {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.layout
}

func (t *Texture) setLayout(l vk.ImageLayout) {
	t.mu.Lock()
	t.layout = l
	t.mu.Unlock()
}

func (t *Texture) subresourceRange() vk.ImageSubresourceRange {
	return vk.ImageSubresourceRange{
		AspectMask:     aspectOf(t.spec.Format),
		BaseMipLevel:   0,
		LevelCount:     vk.RemainingMipLevels,
		BaseArrayLayer: 0,
		LayerCount:     vk.RemainingArrayLayers,
	}
}

// TextureView implements hal.TextureView.
type TextureView struct {
	texture *Texture
	handle  vk.ImageView
}

// Sampler implements hal.Sampler.
type Sampler struct {
	handle vk.Sampler
}

// Shader implements hal.Shader: one VkShaderModule per stage plus the
// merged reflection info and the bytecode hash.
type Shader struct {
	modules map[types.ShaderStage]vk.ShaderModule
	entries map[types.ShaderStage][]byte
	info    *types.ShaderGroupInfo
	hash    uint64
}

// Info returns the merged reflection info.
func (s *Shader) Info() *types.ShaderGroupInfo { return s.info }

// Hash returns the stable bytecode hash.
func (s *Shader) Hash() uint64 { return s.hash }

// RenderPass implements hal.RenderPass.
type RenderPass struct {
	handle vk.RenderPass
	spec   types.RenderPassSpec
}

// Framebuffer implements hal.Framebuffer.
type Framebuffer struct {
	handle vk.Framebuffer
	extent types.Extent2D
}

// DescriptorSetLayout implements hal.DescriptorSetLayout.
type DescriptorSetLayout struct {
	handle   vk.DescriptorSetLayout
	set      uint32
	bindings []types.ShaderResource
}

// SetIndex returns the set number.
func (l *DescriptorSetLayout) SetIndex() uint32 { return l.set }

// PipelineLayout implements hal.PipelineLayout.
type PipelineLayout struct {
	handle     vk.PipelineLayout
	setLayouts []hal.DescriptorSetLayout
}

// SetLayouts returns the set layouts in set order.
func (l *PipelineLayout) SetLayouts() []hal.DescriptorSetLayout { return l.setLayouts }

// DescriptorSet implements hal.DescriptorSet.
type DescriptorSet struct {
	handle vk.DescriptorSet
	pool   vk.DescriptorPool
}

// Pipeline implements hal.Pipeline.
type Pipeline struct {
	handle    vk.Pipeline
	layout    *PipelineLayout
	bindPoint vk.PipelineBindPoint
}

// Layout returns the pipeline's layout.
func (p *Pipeline) Layout() hal.PipelineLayout { return p.layout }

// Fence implements hal.Fence.
type Fence struct {
	device *Device
	handle vk.Fence
}

// Wait blocks until the fence signals. Negative timeouts wait without
// bound.
func (f *Fence) Wait(timeout time.Duration) error {
	ns := uint64(^uint64(0))
	if timeout >= 0 {
		ns = uint64(timeout.Nanoseconds())
	}
	result := f.device.cmds.WaitForFences(f.device.handle, []vk.Fence{f.handle}, true, ns)
	if result == vk.Timeout {
		return hal.ErrTimeout
	}
	return resultToError("vkWaitForFences", result)
}

// Reset returns the fence to the unsignaled state.
func (f *Fence) Reset() error {
	return resultToError("vkResetFences",
		f.device.cmds.ResetFences(f.device.handle, []vk.Fence{f.handle}))
}

// Signaled polls the fence.
func (f *Fence) Signaled() bool {
	return f.device.cmds.GetFenceStatus(f.device.handle, f.handle) == vk.Success
}

// Semaphore implements hal.Semaphore.
type Semaphore struct {
	handle vk.Semaphore
}
