// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"hash/fnv"
	"log/slog"
	"sync"
	"unsafe"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/hal/vulkan/vk"
	"github.com/gogpu/forge/types"
)

// Device implements hal.Device over one VkDevice.
type Device struct {
	adapter *Adapter
	handle  vk.Device
	cmds    *vk.Commands
	queue   *Queue

	poolMu          sync.Mutex
	descriptorPools []vk.DescriptorPool

	// transient render passes and framebuffers derived for rendering
	// scopes that arrive without prebuilt objects.
	transientMu  sync.Mutex
	transientRPs map[uint64]*RenderPass
	transientFBs map[uint64]*Framebuffer
}

// CreateBuffer creates a buffer with a dedicated allocation.
func (d *Device) CreateBuffer(spec *types.BufferSpec) (hal.Buffer, error) {
	if spec.Size == 0 || spec.Usage == types.BufferUsageNone {
		return nil, hal.ErrInvalidSpec
	}

	info := vk.BufferCreateInfo{
		SType: vk.StructureTypeBufferCreateInfo,
		Size:  spec.Size,
		Usage: bufferUsageToVk(spec.Usage),
	}
	var handle vk.Buffer
	if result := d.cmds.CreateBuffer(d.handle, &info, &handle); result != vk.Success {
		return nil, resultToError("vkCreateBuffer", result)
	}

	var reqs vk.MemoryRequirements
	d.cmds.GetBufferMemoryRequirements(d.handle, handle, &reqs)

	wanted := vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)
	if spec.Placement != types.MemoryDeviceLocal {
		wanted = vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit
	}
	memory, err := d.allocate(reqs, wanted)
	if err != nil {
		d.cmds.DestroyBuffer(d.handle, handle)
		return nil, err
	}
	if result := d.cmds.BindBufferMemory(d.handle, handle, memory, 0); result != vk.Success {
		d.cmds.FreeMemory(d.handle, memory)
		d.cmds.DestroyBuffer(d.handle, handle)
		return nil, resultToError("vkBindBufferMemory", result)
	}

	return &Buffer{device: d, handle: handle, memory: memory, spec: *spec}, nil
}

// DestroyBuffer destroys a buffer and frees its memory.
func (d *Device) DestroyBuffer(buffer hal.Buffer) {
	b, ok := buffer.(*Buffer)
	if !ok || b.handle == vk.NullHandle {
		return
	}
	b.Unmap()
	d.cmds.DestroyBuffer(d.handle, b.handle)
	d.cmds.FreeMemory(d.handle, b.memory)
	b.handle = vk.NullHandle
}

// CreateTexture creates an image, its memory and the default view.
func (d *Device) CreateTexture(spec *types.TextureSpec) (hal.Texture, error) {
	format := formatToVk(spec.Format)
	if format == 0 {
		return nil, hal.ErrUnsupportedFormat
	}
	if spec.Extent.Width == 0 || spec.Extent.Height == 0 {
		return nil, hal.ErrInvalidSpec
	}

	layers := spec.ArrayLayers
	if layers == 0 {
		layers = 1
	}
	levels := spec.MipLevels
	if levels == 0 {
		levels = 1
	}
	samples := spec.Samples
	if samples == 0 {
		samples = types.Samples1
	}
	depth := spec.Extent.Depth
	if depth == 0 {
		depth = 1
	}

	var flags vk.ImageCreateFlags
	if spec.Cubemap {
		flags |= vk.ImageCreateCubeCompatibleBit
	}

	info := vk.ImageCreateInfo{
		SType:         vk.StructureTypeImageCreateInfo,
		Flags:         flags,
		ImageType:     vk.ImageType(spec.Type),
		Format:        format,
		Extent:        vk.Extent3D{Width: spec.Extent.Width, Height: spec.Extent.Height, Depth: depth},
		MipLevels:     levels,
		ArrayLayers:   layers,
		Samples:       vk.SampleCountFlagBits(samples),
		Usage:         textureUsageToVk(spec.Usage),
		InitialLayout: vk.ImageLayoutUndefined,
	}
	var handle vk.Image
	if result := d.cmds.CreateImage(d.handle, &info, &handle); result != vk.Success {
		return nil, resultToError("vkCreateImage", result)
	}

	var reqs vk.MemoryRequirements
	d.cmds.GetImageMemoryRequirements(d.handle, handle, &reqs)
	memory, err := d.allocate(reqs, vk.MemoryPropertyDeviceLocalBit)
	if err != nil {
		d.cmds.DestroyImage(d.handle, handle)
		return nil, err
	}
	if result := d.cmds.BindImageMemory(d.handle, handle, memory, 0); result != vk.Success {
		d.cmds.FreeMemory(d.handle, memory)
		d.cmds.DestroyImage(d.handle, handle)
		return nil, resultToError("vkBindImageMemory", result)
	}

	tex := &Texture{
		device: d,
		handle: handle,
		memory: memory,
		spec:   *spec,
		layout: vk.ImageLayoutUndefined,
	}
	view, err := d.createView(tex, 0, vk.RemainingArrayLayers)
	if err != nil {
		d.DestroyTexture(tex)
		return nil, err
	}
	tex.view = view
	return tex, nil
}

func (d *Device) createView(t *Texture, baseLayer, layerCount uint32) (*TextureView, error) {
	viewType := vk.ImageViewType(t.spec.Type) // 1D/2D/3D line up
	if t.spec.Cubemap && layerCount != 1 {
		viewType = 3 // VK_IMAGE_VIEW_TYPE_CUBE
	} else if t.spec.ArrayLayers > 1 && layerCount != 1 {
		viewType = 4 // VK_IMAGE_VIEW_TYPE_1D_ARRAY+... use 2D array
		if t.spec.Type == types.Texture2D {
			viewType = 5 // VK_IMAGE_VIEW_TYPE_2D_ARRAY
		}
	}

	info := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    t.handle,
		ViewType: viewType,
		Format:   formatToVk(t.spec.Format),
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     aspectOf(t.spec.Format),
			BaseMipLevel:   0,
			LevelCount:     vk.RemainingMipLevels,
			BaseArrayLayer: baseLayer,
			LayerCount:     layerCount,
		},
	}
	var handle vk.ImageView
	if result := d.cmds.CreateImageView(d.handle, &info, &handle); result != vk.Success {
		return nil, resultToError("vkCreateImageView", result)
	}
	return &TextureView{texture: t, handle: handle}, nil
}

// DestroyTexture destroys a texture, its views and memory. Swapchain
// images only drop their views.
func (d *Device) DestroyTexture(texture hal.Texture) {
	t, ok := texture.(*Texture)
	if !ok || t.handle == vk.NullHandle {
		return
	}
	if t.view != nil {
		d.cmds.DestroyImageView(d.handle, t.view.handle)
		t.view = nil
	}
	for _, v := range t.layerViews {
		d.cmds.DestroyImageView(d.handle, v.handle)
	}
	t.layerViews = nil
	if !t.swapchainOwned {
		d.cmds.DestroyImage(d.handle, t.handle)
		d.cmds.FreeMemory(d.handle, t.memory)
	}
	t.handle = vk.NullHandle
}

// CreateSampler creates a sampler.
func (d *Device) CreateSampler(spec *types.SamplerSpec) (hal.Sampler, error) {
	info := vk.SamplerCreateInfo{
		SType:            vk.StructureTypeSamplerCreateInfo,
		MagFilter:        filterToVk(spec.MagFilter),
		MinFilter:        filterToVk(spec.MinFilter),
		MipmapMode:       mipmapModeToVk(spec.MipFilter),
		AddressModeU:     addressModeToVk(spec.AddressU),
		AddressModeV:     addressModeToVk(spec.AddressV),
		AddressModeW:     addressModeToVk(spec.AddressW),
		AnisotropyEnable: boolToVk(spec.MaxAnisotropy > 1),
		MaxAnisotropy:    spec.MaxAnisotropy,
		CompareEnable:    boolToVk(spec.CompareEnable),
		CompareOp:        compareOpToVk(spec.Compare),
		MinLod:           spec.LodMin,
		MaxLod:           spec.LodMax,
		BorderColor:      borderColorToVk(spec.Border),
	}
	var handle vk.Sampler
	if result := d.cmds.CreateSampler(d.handle, &info, &handle); result != vk.Success {
		return nil, resultToError("vkCreateSampler", result)
	}
	return &Sampler{handle: handle}, nil
}

// DestroySampler destroys a sampler.
func (d *Device) DestroySampler(sampler hal.Sampler) {
	if s, ok := sampler.(*Sampler); ok && s.handle != vk.NullHandle {
		d.cmds.DestroySampler(d.handle, s.handle)
		s.handle = vk.NullHandle
	}
}

// CreateShader creates one shader module per stage.
func (d *Device) CreateShader(spec *types.ShaderGroupSpec, info *types.ShaderGroupInfo) (hal.Shader, error) {
	if info == nil || len(spec.Stages) == 0 {
		return nil, hal.ErrShaderInvalid
	}

	s := &Shader{
		modules: make(map[types.ShaderStage]vk.ShaderModule),
		entries: make(map[types.ShaderStage][]byte),
		info:    info,
	}
	h := fnv.New64a()
	for stage := types.ShaderStage(0); stage < types.StageMax; stage++ {
		code, ok := spec.Stages[stage]
		if !ok {
			continue
		}
		if len(code.Code) == 0 || len(code.Code)%4 != 0 {
			d.DestroyShader(s)
			return nil, hal.ErrShaderInvalid
		}
		h.Write([]byte{byte(stage)})
		h.Write(code.Code)

		words := unsafe.Slice((*uint32)(unsafe.Pointer(&code.Code[0])), len(code.Code)/4)
		moduleInfo := vk.ShaderModuleCreateInfo{
			SType:    vk.StructureTypeShaderModuleCreateInfo,
			CodeSize: uintptr(len(code.Code)),
			PCode:    &words[0],
		}
		var module vk.ShaderModule
		if result := d.cmds.CreateShaderModule(d.handle, &moduleInfo, &module); result != vk.Success {
			d.DestroyShader(s)
			return nil, resultToError("vkCreateShaderModule", result)
		}
		s.modules[stage] = module

		entry := code.Entry
		if entry == "" {
			entry = "main"
		}
		s.entries[stage] = vk.CString(entry)
	}
	s.hash = h.Sum64()
	return s, nil
}

// DestroyShader destroys every stage module.
func (d *Device) DestroyShader(shader hal.Shader) {
	s, ok := shader.(*Shader)
	if !ok {
		return
	}
	for stage, module := range s.modules {
		d.cmds.DestroyShaderModule(d.handle, module)
		delete(s.modules, stage)
	}
}

// CreateFence creates a fence.
func (d *Device) CreateFence(signaled bool) (hal.Fence, error) {
	info := vk.FenceCreateInfo{SType: vk.StructureTypeFenceCreateInfo}
	if signaled {
		info.Flags = vk.FenceCreateSignaledBit
	}
	var handle vk.Fence
	if result := d.cmds.CreateFence(d.handle, &info, &handle); result != vk.Success {
		return nil, resultToError("vkCreateFence", result)
	}
	return &Fence{device: d, handle: handle}, nil
}

// DestroyFence destroys a fence.
func (d *Device) DestroyFence(fence hal.Fence) {
	if f, ok := fence.(*Fence); ok && f.handle != vk.NullHandle {
		d.cmds.DestroyFence(d.handle, f.handle)
		f.handle = vk.NullHandle
	}
}

// CreateSemaphore creates a binary semaphore.
func (d *Device) CreateSemaphore() (hal.Semaphore, error) {
	info := vk.SemaphoreCreateInfo{SType: vk.StructureTypeSemaphoreCreateInfo}
	var handle vk.Semaphore
	if result := d.cmds.CreateSemaphore(d.handle, &info, &handle); result != vk.Success {
		return nil, resultToError("vkCreateSemaphore", result)
	}
	return &Semaphore{handle: handle}, nil
}

// DestroySemaphore destroys a semaphore.
func (d *Device) DestroySemaphore(sem hal.Semaphore) {
	if s, ok := sem.(*Semaphore); ok && s.handle != vk.NullHandle {
		d.cmds.DestroySemaphore(d.handle, s.handle)
		s.handle = vk.NullHandle
	}
}

// CreateCommandPool creates a transient command pool. Its buffers are
// recycled by resetting the whole pool, not one by one.
func (d *Device) CreateCommandPool(queueFamily uint32) (hal.CommandPool, error) {
	info := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateTransientBit,
		QueueFamilyIndex: queueFamily,
	}
	var handle vk.CommandPool
	if result := d.cmds.CreateCommandPool(d.handle, &info, &handle); result != vk.Success {
		return nil, resultToError("vkCreateCommandPool", result)
	}
	return &CommandPool{device: d, handle: handle}, nil
}

// DestroyCommandPool destroys a pool and its buffers.
func (d *Device) DestroyCommandPool(pool hal.CommandPool) {
	if p, ok := pool.(*CommandPool); ok && p.handle != vk.NullHandle {
		d.cmds.DestroyCommandPool(d.handle, p.handle)
		p.handle = vk.NullHandle
	}
}

// WaitIdle blocks until the device drains.
func (d *Device) WaitIdle() error {
	return resultToError("vkDeviceWaitIdle", d.cmds.DeviceWaitIdle(d.handle))
}

// Destroy destroys descriptor pools, transient pass objects and the
// device.
func (d *Device) Destroy() {
	d.transientMu.Lock()
	for _, fb := range d.transientFBs {
		d.DestroyFramebuffer(fb)
	}
	for _, rp := range d.transientRPs {
		d.DestroyRenderPass(rp)
	}
	d.transientRPs = nil
	d.transientFBs = nil
	d.transientMu.Unlock()

	d.poolMu.Lock()
	for _, pool := range d.descriptorPools {
		d.cmds.DestroyDescriptorPool(d.handle, pool)
	}
	d.descriptorPools = nil
	d.poolMu.Unlock()

	if d.handle != vk.NullHandle {
		d.cmds.DestroyDevice(d.handle)
		d.handle = vk.NullHandle
	}
}

func (d *Device) allocate(reqs vk.MemoryRequirements, wanted vk.MemoryPropertyFlags) (vk.DeviceMemory, error) {
	typeIndex, ok := d.adapter.memoryTypeIndex(reqs.MemoryTypeBits, wanted)
	if !ok {
		return 0, hal.ErrOutOfDeviceMemory
	}
	info := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  reqs.Size,
		MemoryTypeIndex: typeIndex,
	}
	var memory vk.DeviceMemory
	if result := d.cmds.AllocateMemory(d.handle, &info, &memory); result != vk.Success {
		return 0, resultToError("vkAllocateMemory", result)
	}
	return memory, nil
}

// Queue implements hal.Queue.
type Queue struct {
	device *Device
	handle vk.Queue
	family uint32

	mu sync.Mutex
}

// FamilyIndex returns the queue family index.
func (q *Queue) FamilyIndex() uint32 { return q.family }

// Submit submits command buffers. The queue lock serializes
// submissions from concurrent recorders.
func (q *Queue) Submit(desc *hal.SubmitDescriptor) error {
	cmdBuffers := make([]vk.CommandBuffer, 0, len(desc.CommandBuffers))
	for _, cb := range desc.CommandBuffers {
		if c, ok := cb.(*CommandBuffer); ok {
			cmdBuffers = append(cmdBuffers, c.handle)
		}
	}

	waits := make([]vk.Semaphore, 0, len(desc.Waits))
	waitStages := make([]vk.PipelineStageFlags, 0, len(desc.Waits))
	for _, w := range desc.Waits {
		if s, ok := w.Semaphore.(*Semaphore); ok {
			waits = append(waits, s.handle)
			waitStages = append(waitStages, stageFlagsToVk(w.Stage))
		}
	}
	signals := make([]vk.Semaphore, 0, len(desc.Signals))
	for _, s := range desc.Signals {
		if sem, ok := s.(*Semaphore); ok {
			signals = append(signals, sem.handle)
		}
	}

	info := vk.SubmitInfo{SType: vk.StructureTypeSubmitInfo}
	if len(cmdBuffers) > 0 {
		info.CommandBufferCount = uint32(len(cmdBuffers))
		info.PCommandBuffers = &cmdBuffers[0]
	}
	if len(waits) > 0 {
		info.WaitSemaphoreCount = uint32(len(waits))
		info.PWaitSemaphores = &waits[0]
		info.PWaitDstStageMask = &waitStages[0]
	}
	if len(signals) > 0 {
		info.SignalSemaphoreCount = uint32(len(signals))
		info.PSignalSemaphores = &signals[0]
	}

	var fence vk.Fence
	if f, ok := desc.Fence.(*Fence); ok && f != nil {
		fence = f.handle
	}

	q.mu.Lock()
	result := q.device.cmds.QueueSubmit(q.handle, []vk.SubmitInfo{info}, fence)
	q.mu.Unlock()
	if result != vk.Success {
		hal.Logger().Error("vulkan: queue submit failed", slog.Int("result", int(result)))
	}
	return resultToError("vkQueueSubmit", result)
}

// Present presents an acquired image.
func (q *Queue) Present(sc hal.Swapchain, imageIndex uint32, waitSems []hal.Semaphore) error {
	s, ok := sc.(*Swapchain)
	if !ok {
		return hal.ErrSurfaceLost
	}

	waits := make([]vk.Semaphore, 0, len(waitSems))
	for _, w := range waitSems {
		if sem, ok := w.(*Semaphore); ok {
			waits = append(waits, sem.handle)
		}
	}

	info := vk.PresentInfoKHR{
		SType:          vk.StructureTypePresentInfoKHR,
		SwapchainCount: 1,
		PSwapchains:    &s.handle,
		PImageIndices:  &imageIndex,
	}
	if len(waits) > 0 {
		info.WaitSemaphoreCount = uint32(len(waits))
		info.PWaitSemaphores = &waits[0]
	}

	q.mu.Lock()
	result := q.device.cmds.QueuePresentKHR(q.handle, &info)
	q.mu.Unlock()
	return resultToError("vkQueuePresentKHR", result)
}
