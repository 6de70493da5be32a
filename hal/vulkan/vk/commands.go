// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// Commands carries the loaded function pointers. Loading happens in
// three stages: LoadGlobal, LoadInstance, LoadDevice.
type Commands struct {
	createInstance unsafe.Pointer

	destroyInstance                         unsafe.Pointer
	enumeratePhysicalDevices                unsafe.Pointer
	getPhysicalDeviceProperties             unsafe.Pointer
	getPhysicalDeviceQueueFamilyProperties  unsafe.Pointer
	getPhysicalDeviceMemoryProperties       unsafe.Pointer
	createDevice                            unsafe.Pointer
	destroySurfaceKHR                       unsafe.Pointer
	getPhysicalDeviceSurfaceSupportKHR      unsafe.Pointer
	getPhysicalDeviceSurfaceCapabilitiesKHR unsafe.Pointer
	getPhysicalDeviceSurfaceFormatsKHR      unsafe.Pointer
	createXlibSurfaceKHR                    unsafe.Pointer
	createWin32SurfaceKHR                   unsafe.Pointer

	destroyDevice              unsafe.Pointer
	getDeviceQueue             unsafe.Pointer
	deviceWaitIdle             unsafe.Pointer
	createBuffer               unsafe.Pointer
	destroyBuffer              unsafe.Pointer
	getBufferMemoryReqs        unsafe.Pointer
	allocateMemory             unsafe.Pointer
	freeMemory                 unsafe.Pointer
	bindBufferMemory           unsafe.Pointer
	mapMemory                  unsafe.Pointer
	unmapMemory                unsafe.Pointer
	flushMappedMemoryRanges    unsafe.Pointer
	createImage                unsafe.Pointer
	destroyImage               unsafe.Pointer
	getImageMemoryReqs         unsafe.Pointer
	bindImageMemory            unsafe.Pointer
	createImageView            unsafe.Pointer
	destroyImageView           unsafe.Pointer
	createSampler              unsafe.Pointer
	destroySampler             unsafe.Pointer
	createShaderModule         unsafe.Pointer
	destroyShaderModule        unsafe.Pointer
	createDescriptorSetLayout  unsafe.Pointer
	destroyDescriptorSetLayout unsafe.Pointer
	createDescriptorPool       unsafe.Pointer
	destroyDescriptorPool      unsafe.Pointer
	allocateDescriptorSets     unsafe.Pointer
	freeDescriptorSets         unsafe.Pointer
	updateDescriptorSets       unsafe.Pointer
	createPipelineLayout       unsafe.Pointer
	destroyPipelineLayout      unsafe.Pointer
	createRenderPass           unsafe.Pointer
	destroyRenderPass          unsafe.Pointer
	createFramebuffer          unsafe.Pointer
	destroyFramebuffer         unsafe.Pointer
	createGraphicsPipelines    unsafe.Pointer
	createComputePipelines     unsafe.Pointer
	destroyPipeline            unsafe.Pointer
	createCommandPool          unsafe.Pointer
	destroyCommandPool         unsafe.Pointer
	resetCommandPool           unsafe.Pointer
	allocateCommandBuffers     unsafe.Pointer
	beginCommandBuffer         unsafe.Pointer
	endCommandBuffer           unsafe.Pointer
	createFence                unsafe.Pointer
	destroyFence               unsafe.Pointer
	waitForFences              unsafe.Pointer
	resetFences                unsafe.Pointer
	getFenceStatus             unsafe.Pointer
	createSemaphore            unsafe.Pointer
	destroySemaphore           unsafe.Pointer
	createSwapchainKHR         unsafe.Pointer
	destroySwapchainKHR        unsafe.Pointer
	getSwapchainImagesKHR      unsafe.Pointer
	acquireNextImageKHR        unsafe.Pointer
	queueSubmit                unsafe.Pointer
	queuePresentKHR            unsafe.Pointer

	cmdBeginRenderPass     unsafe.Pointer
	cmdEndRenderPass       unsafe.Pointer
	cmdSetViewport         unsafe.Pointer
	cmdSetScissor          unsafe.Pointer
	cmdSetDepthBias        unsafe.Pointer
	cmdSetLineWidth        unsafe.Pointer
	cmdSetBlendConstants   unsafe.Pointer
	cmdBindPipeline        unsafe.Pointer
	cmdBindDescriptorSets  unsafe.Pointer
	cmdBindVertexBuffers   unsafe.Pointer
	cmdBindIndexBuffer     unsafe.Pointer
	cmdDraw                unsafe.Pointer
	cmdDrawIndexed         unsafe.Pointer
	cmdDrawIndexedIndirect unsafe.Pointer
	cmdDispatch            unsafe.Pointer
	cmdDispatchIndirect    unsafe.Pointer
	cmdCopyBuffer          unsafe.Pointer
	cmdCopyBufferToImage   unsafe.Pointer
	cmdBlitImage           unsafe.Pointer
	cmdPipelineBarrier     unsafe.Pointer
}

// NewCommands returns an empty command table.
func NewCommands() *Commands {
	return &Commands{}
}

// LoadGlobal loads pre-instance function pointers.
func (c *Commands) LoadGlobal() error {
	c.createInstance = GetInstanceProcAddr(0, "vkCreateInstance")
	if c.createInstance == nil {
		return fmt.Errorf("vk: failed to load vkCreateInstance")
	}
	return nil
}

// LoadInstance loads instance-level function pointers.
func (c *Commands) LoadInstance(instance Instance) error {
	load := func(name string) unsafe.Pointer { return GetInstanceProcAddr(instance, name) }

	c.destroyInstance = load("vkDestroyInstance")
	c.enumeratePhysicalDevices = load("vkEnumeratePhysicalDevices")
	c.getPhysicalDeviceProperties = load("vkGetPhysicalDeviceProperties")
	c.getPhysicalDeviceQueueFamilyProperties = load("vkGetPhysicalDeviceQueueFamilyProperties")
	c.getPhysicalDeviceMemoryProperties = load("vkGetPhysicalDeviceMemoryProperties")
	c.createDevice = load("vkCreateDevice")
	c.destroySurfaceKHR = load("vkDestroySurfaceKHR")
	c.getPhysicalDeviceSurfaceSupportKHR = load("vkGetPhysicalDeviceSurfaceSupportKHR")
	c.getPhysicalDeviceSurfaceCapabilitiesKHR = load("vkGetPhysicalDeviceSurfaceCapabilitiesKHR")
	c.getPhysicalDeviceSurfaceFormatsKHR = load("vkGetPhysicalDeviceSurfaceFormatsKHR")
	c.createXlibSurfaceKHR = load("vkCreateXlibSurfaceKHR")
	c.createWin32SurfaceKHR = load("vkCreateWin32SurfaceKHR")

	SetDeviceProcAddr(instance)

	if c.destroyInstance == nil || c.enumeratePhysicalDevices == nil || c.createDevice == nil {
		return fmt.Errorf("vk: failed to load critical instance functions")
	}
	return nil
}

// LoadDevice loads device-level function pointers.
func (c *Commands) LoadDevice(device Device) error {
	load := func(name string) unsafe.Pointer { return GetDeviceProcAddr(device, name) }

	c.destroyDevice = load("vkDestroyDevice")
	c.getDeviceQueue = load("vkGetDeviceQueue")
	c.deviceWaitIdle = load("vkDeviceWaitIdle")
	c.createBuffer = load("vkCreateBuffer")
	c.destroyBuffer = load("vkDestroyBuffer")
	c.getBufferMemoryReqs = load("vkGetBufferMemoryRequirements")
	c.allocateMemory = load("vkAllocateMemory")
	c.freeMemory = load("vkFreeMemory")
	c.bindBufferMemory = load("vkBindBufferMemory")
	c.mapMemory = load("vkMapMemory")
	c.unmapMemory = load("vkUnmapMemory")
	c.flushMappedMemoryRanges = load("vkFlushMappedMemoryRanges")
	c.createImage = load("vkCreateImage")
	c.destroyImage = load("vkDestroyImage")
	c.getImageMemoryReqs = load("vkGetImageMemoryRequirements")
	c.bindImageMemory = load("vkBindImageMemory")
	c.createImageView = load("vkCreateImageView")
	c.destroyImageView = load("vkDestroyImageView")
	c.createSampler = load("vkCreateSampler")
	c.destroySampler = load("vkDestroySampler")
	c.createShaderModule = load("vkCreateShaderModule")
	c.destroyShaderModule = load("vkDestroyShaderModule")
	c.createDescriptorSetLayout = load("vkCreateDescriptorSetLayout")
	c.destroyDescriptorSetLayout = load("vkDestroyDescriptorSetLayout")
	c.createDescriptorPool = load("vkCreateDescriptorPool")
	c.destroyDescriptorPool = load("vkDestroyDescriptorPool")
	c.allocateDescriptorSets = load("vkAllocateDescriptorSets")
	c.freeDescriptorSets = load("vkFreeDescriptorSets")
	c.updateDescriptorSets = load("vkUpdateDescriptorSets")
	c.createPipelineLayout = load("vkCreatePipelineLayout")
	c.destroyPipelineLayout = load("vkDestroyPipelineLayout")
	c.createRenderPass = load("vkCreateRenderPass")
	c.destroyRenderPass = load("vkDestroyRenderPass")
	c.createFramebuffer = load("vkCreateFramebuffer")
	c.destroyFramebuffer = load("vkDestroyFramebuffer")
	c.createGraphicsPipelines = load("vkCreateGraphicsPipelines")
	c.createComputePipelines = load("vkCreateComputePipelines")
	c.destroyPipeline = load("vkDestroyPipeline")
	c.createCommandPool = load("vkCreateCommandPool")
	c.destroyCommandPool = load("vkDestroyCommandPool")
	c.resetCommandPool = load("vkResetCommandPool")
	c.allocateCommandBuffers = load("vkAllocateCommandBuffers")
	c.beginCommandBuffer = load("vkBeginCommandBuffer")
	c.endCommandBuffer = load("vkEndCommandBuffer")
	c.createFence = load("vkCreateFence")
	c.destroyFence = load("vkDestroyFence")
	c.waitForFences = load("vkWaitForFences")
	c.resetFences = load("vkResetFences")
	c.getFenceStatus = load("vkGetFenceStatus")
	c.createSemaphore = load("vkCreateSemaphore")
	c.destroySemaphore = load("vkDestroySemaphore")
	c.createSwapchainKHR = load("vkCreateSwapchainKHR")
	c.destroySwapchainKHR = load("vkDestroySwapchainKHR")
	c.getSwapchainImagesKHR = load("vkGetSwapchainImagesKHR")
	c.acquireNextImageKHR = load("vkAcquireNextImageKHR")
	c.queueSubmit = load("vkQueueSubmit")
	c.queuePresentKHR = load("vkQueuePresentKHR")

	c.cmdBeginRenderPass = load("vkCmdBeginRenderPass")
	c.cmdEndRenderPass = load("vkCmdEndRenderPass")
	c.cmdSetViewport = load("vkCmdSetViewport")
	c.cmdSetScissor = load("vkCmdSetScissor")
	c.cmdSetDepthBias = load("vkCmdSetDepthBias")
	c.cmdSetLineWidth = load("vkCmdSetLineWidth")
	c.cmdSetBlendConstants = load("vkCmdSetBlendConstants")
	c.cmdBindPipeline = load("vkCmdBindPipeline")
	c.cmdBindDescriptorSets = load("vkCmdBindDescriptorSets")
	c.cmdBindVertexBuffers = load("vkCmdBindVertexBuffers")
	c.cmdBindIndexBuffer = load("vkCmdBindIndexBuffer")
	c.cmdDraw = load("vkCmdDraw")
	c.cmdDrawIndexed = load("vkCmdDrawIndexed")
	c.cmdDrawIndexedIndirect = load("vkCmdDrawIndexedIndirect")
	c.cmdDispatch = load("vkCmdDispatch")
	c.cmdDispatchIndirect = load("vkCmdDispatchIndirect")
	c.cmdCopyBuffer = load("vkCmdCopyBuffer")
	c.cmdCopyBufferToImage = load("vkCmdCopyBufferToImage")
	c.cmdBlitImage = load("vkCmdBlitImage")
	c.cmdPipelineBarrier = load("vkCmdPipelineBarrier")

	if c.destroyDevice == nil || c.queueSubmit == nil || c.beginCommandBuffer == nil {
		return fmt.Errorf("vk: failed to load critical device functions")
	}
	return nil
}

// callResult invokes a Result-returning Vulkan function.
func callResult(cif *types.CallInterface, fn unsafe.Pointer, args []unsafe.Pointer) Result {
	if fn == nil {
		return ErrorInitializationFailed
	}
	var result int32
	if err := ffi.CallFunction(cif, fn, unsafe.Pointer(&result), args); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

// callVoid invokes a void Vulkan function.
func callVoid(cif *types.CallInterface, fn unsafe.Pointer, args []unsafe.Pointer) {
	if fn == nil {
		return
	}
	_ = ffi.CallFunction(cif, fn, nil, args)
}

// CreateInstance wraps vkCreateInstance.
func (c *Commands) CreateInstance(info *InstanceCreateInfo, out *Instance) Result {
	pInfo := unsafe.Pointer(info)
	var pAlloc unsafe.Pointer
	pOut := unsafe.Pointer(out)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&pInfo),
		unsafe.Pointer(&pAlloc),
		unsafe.Pointer(&pOut),
	}
	return callResult(&sigResultPtrPtrPtr, c.createInstance, args[:])
}

// DestroyInstance wraps vkDestroyInstance.
func (c *Commands) DestroyInstance(instance Instance) {
	var pAlloc unsafe.Pointer
	args := [2]unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&pAlloc)}
	callVoid(&sigVoidHandlePtr, c.destroyInstance, args[:])
}

// EnumeratePhysicalDevices wraps vkEnumeratePhysicalDevices.
func (c *Commands) EnumeratePhysicalDevices(instance Instance, count *uint32, devices *PhysicalDevice) Result {
	pCount := unsafe.Pointer(count)
	pDevices := unsafe.Pointer(devices)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&instance),
		unsafe.Pointer(&pCount),
		unsafe.Pointer(&pDevices),
	}
	return callResult(&sigResultHandleU32PtrPtr, c.enumeratePhysicalDevices, args[:])
}

// GetPhysicalDeviceProperties wraps vkGetPhysicalDeviceProperties.
func (c *Commands) GetPhysicalDeviceProperties(dev PhysicalDevice, out *PhysicalDeviceProperties) {
	pOut := unsafe.Pointer(out)
	args := [2]unsafe.Pointer{unsafe.Pointer(&dev), unsafe.Pointer(&pOut)}
	callVoid(&sigVoidHandleOutPtr, c.getPhysicalDeviceProperties, args[:])
}

// GetPhysicalDeviceQueueFamilyProperties wraps
// vkGetPhysicalDeviceQueueFamilyProperties.
func (c *Commands) GetPhysicalDeviceQueueFamilyProperties(dev PhysicalDevice, count *uint32, props *QueueFamilyProperties) {
	pCount := unsafe.Pointer(count)
	pProps := unsafe.Pointer(props)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&dev),
		unsafe.Pointer(&pCount),
		unsafe.Pointer(&pProps),
	}
	callVoid(&sigVoidHandlePtrPtr, c.getPhysicalDeviceQueueFamilyProperties, args[:])
}

// GetPhysicalDeviceMemoryProperties wraps
// vkGetPhysicalDeviceMemoryProperties.
func (c *Commands) GetPhysicalDeviceMemoryProperties(dev PhysicalDevice, out *PhysicalDeviceMemoryProperties) {
	pOut := unsafe.Pointer(out)
	args := [2]unsafe.Pointer{unsafe.Pointer(&dev), unsafe.Pointer(&pOut)}
	callVoid(&sigVoidHandleOutPtr, c.getPhysicalDeviceMemoryProperties, args[:])
}

// CreateDevice wraps vkCreateDevice.
func (c *Commands) CreateDevice(dev PhysicalDevice, info *DeviceCreateInfo, out *Device) Result {
	pInfo := unsafe.Pointer(info)
	var pAlloc unsafe.Pointer
	pOut := unsafe.Pointer(out)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&dev),
		unsafe.Pointer(&pInfo),
		unsafe.Pointer(&pAlloc),
		unsafe.Pointer(&pOut),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.createDevice, args[:])
}

// DestroySurfaceKHR wraps vkDestroySurfaceKHR.
func (c *Commands) DestroySurfaceKHR(instance Instance, surface SurfaceKHR) {
	var pAlloc unsafe.Pointer
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&instance),
		unsafe.Pointer(&surface),
		unsafe.Pointer(&pAlloc),
	}
	callVoid(&sigVoidHandleHandlePtr, c.destroySurfaceKHR, args[:])
}

// GetPhysicalDeviceSurfaceSupportKHR wraps
// vkGetPhysicalDeviceSurfaceSupportKHR.
func (c *Commands) GetPhysicalDeviceSurfaceSupportKHR(dev PhysicalDevice, family uint32, surface SurfaceKHR, supported *uint32) Result {
	pOut := unsafe.Pointer(supported)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&dev),
		unsafe.Pointer(&family),
		unsafe.Pointer(&surface),
		unsafe.Pointer(&pOut),
	}
	return callResult(&sigResultHandleU32HandlePtr, c.getPhysicalDeviceSurfaceSupportKHR, args[:])
}

// GetPhysicalDeviceSurfaceCapabilitiesKHR wraps
// vkGetPhysicalDeviceSurfaceCapabilitiesKHR.
func (c *Commands) GetPhysicalDeviceSurfaceCapabilitiesKHR(dev PhysicalDevice, surface SurfaceKHR, out *SurfaceCapabilitiesKHR) Result {
	pOut := unsafe.Pointer(out)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&dev),
		unsafe.Pointer(&surface),
		unsafe.Pointer(&pOut),
	}
	return callResult(&sigResultHandleHandlePtr, c.getPhysicalDeviceSurfaceCapabilitiesKHR, args[:])
}

// GetPhysicalDeviceSurfaceFormatsKHR wraps
// vkGetPhysicalDeviceSurfaceFormatsKHR.
func (c *Commands) GetPhysicalDeviceSurfaceFormatsKHR(dev PhysicalDevice, surface SurfaceKHR, count *uint32, formats *SurfaceFormatKHR) Result {
	pCount := unsafe.Pointer(count)
	pFormats := unsafe.Pointer(formats)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&dev),
		unsafe.Pointer(&surface),
		unsafe.Pointer(&pCount),
		unsafe.Pointer(&pFormats),
	}
	return callResult(&sigResultHandleHandlePtrPtr, c.getPhysicalDeviceSurfaceFormatsKHR, args[:])
}

// CreateXlibSurfaceKHR wraps vkCreateXlibSurfaceKHR.
func (c *Commands) CreateXlibSurfaceKHR(instance Instance, info *XlibSurfaceCreateInfoKHR, out *SurfaceKHR) Result {
	pInfo := unsafe.Pointer(info)
	var pAlloc unsafe.Pointer
	pOut := unsafe.Pointer(out)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&instance),
		unsafe.Pointer(&pInfo),
		unsafe.Pointer(&pAlloc),
		unsafe.Pointer(&pOut),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.createXlibSurfaceKHR, args[:])
}

// CreateWin32SurfaceKHR wraps vkCreateWin32SurfaceKHR.
func (c *Commands) CreateWin32SurfaceKHR(instance Instance, info *Win32SurfaceCreateInfoKHR, out *SurfaceKHR) Result {
	pInfo := unsafe.Pointer(info)
	var pAlloc unsafe.Pointer
	pOut := unsafe.Pointer(out)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&instance),
		unsafe.Pointer(&pInfo),
		unsafe.Pointer(&pAlloc),
		unsafe.Pointer(&pOut),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.createWin32SurfaceKHR, args[:])
}

// DestroyDevice wraps vkDestroyDevice.
func (c *Commands) DestroyDevice(device Device) {
	var pAlloc unsafe.Pointer
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pAlloc)}
	callVoid(&sigVoidHandlePtr, c.destroyDevice, args[:])
}

// GetDeviceQueue wraps vkGetDeviceQueue.
func (c *Commands) GetDeviceQueue(device Device, family, index uint32, out *Queue) {
	pOut := unsafe.Pointer(out)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&family),
		unsafe.Pointer(&index),
		unsafe.Pointer(&pOut),
	}
	callVoid(&sigVoidHandleU32U32Ptr, c.getDeviceQueue, args[:])
}

// DeviceWaitIdle wraps vkDeviceWaitIdle.
func (c *Commands) DeviceWaitIdle(device Device) Result {
	args := [1]unsafe.Pointer{unsafe.Pointer(&device)}
	return callResult(&sigResultHandle, c.deviceWaitIdle, args[:])
}

// createWithInfo is the shared shape of vkCreate*(device, info,
// allocator, out).
func (c *Commands) createWithInfo(fn unsafe.Pointer, device Device, info, out unsafe.Pointer) Result {
	pInfo := info
	var pAlloc unsafe.Pointer
	pOut := out
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&pInfo),
		unsafe.Pointer(&pAlloc),
		unsafe.Pointer(&pOut),
	}
	return callResult(&sigResultHandlePtrPtrPtr, fn, args[:])
}

// destroyHandle is the shared shape of vkDestroy*(device, handle,
// allocator).
func (c *Commands) destroyHandle(fn unsafe.Pointer, device Device, handle uint64) {
	var pAlloc unsafe.Pointer
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&handle),
		unsafe.Pointer(&pAlloc),
	}
	callVoid(&sigVoidHandleHandlePtr, fn, args[:])
}

// CreateBuffer wraps vkCreateBuffer.
func (c *Commands) CreateBuffer(device Device, info *BufferCreateInfo, out *Buffer) Result {
	return c.createWithInfo(c.createBuffer, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyBuffer wraps vkDestroyBuffer.
func (c *Commands) DestroyBuffer(device Device, buffer Buffer) {
	c.destroyHandle(c.destroyBuffer, device, uint64(buffer))
}

// GetBufferMemoryRequirements wraps vkGetBufferMemoryRequirements.
func (c *Commands) GetBufferMemoryRequirements(device Device, buffer Buffer, out *MemoryRequirements) {
	pOut := unsafe.Pointer(out)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&buffer),
		unsafe.Pointer(&pOut),
	}
	callVoid(&sigVoidHandleHandleOutPtr, c.getBufferMemoryReqs, args[:])
}

// AllocateMemory wraps vkAllocateMemory.
func (c *Commands) AllocateMemory(device Device, info *MemoryAllocateInfo, out *DeviceMemory) Result {
	return c.createWithInfo(c.allocateMemory, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// FreeMemory wraps vkFreeMemory.
func (c *Commands) FreeMemory(device Device, memory DeviceMemory) {
	c.destroyHandle(c.freeMemory, device, uint64(memory))
}

// BindBufferMemory wraps vkBindBufferMemory.
func (c *Commands) BindBufferMemory(device Device, buffer Buffer, memory DeviceMemory, offset uint64) Result {
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&buffer),
		unsafe.Pointer(&memory),
		unsafe.Pointer(&offset),
	}
	return callResult(&sigResultHandleHandleHandleU64, c.bindBufferMemory, args[:])
}

// MapMemory wraps vkMapMemory.
func (c *Commands) MapMemory(device Device, memory DeviceMemory, offset, size uint64, out *unsafe.Pointer) Result {
	var flags uint32
	pOut := unsafe.Pointer(out)
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&memory),
		unsafe.Pointer(&offset),
		unsafe.Pointer(&size),
		unsafe.Pointer(&flags),
		unsafe.Pointer(&pOut),
	}
	return callResult(&sigResultHandleHandleU64U64U32Ptr, c.mapMemory, args[:])
}

// UnmapMemory wraps vkUnmapMemory.
func (c *Commands) UnmapMemory(device Device, memory DeviceMemory) {
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&memory)}
	callVoid(&sigVoidHandleHandle, c.unmapMemory, args[:])
}

// FlushMappedMemoryRanges wraps vkFlushMappedMemoryRanges.
func (c *Commands) FlushMappedMemoryRanges(device Device, ranges []MappedMemoryRange) Result {
	if len(ranges) == 0 {
		return Success
	}
	count := uint32(len(ranges))
	pRanges := unsafe.Pointer(&ranges[0])
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&count),
		unsafe.Pointer(&pRanges),
	}
	return callResult(&sigResultHandleU32Ptr, c.flushMappedMemoryRanges, args[:])
}

// CreateImage wraps vkCreateImage.
func (c *Commands) CreateImage(device Device, info *ImageCreateInfo, out *Image) Result {
	return c.createWithInfo(c.createImage, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyImage wraps vkDestroyImage.
func (c *Commands) DestroyImage(device Device, image Image) {
	c.destroyHandle(c.destroyImage, device, uint64(image))
}

// GetImageMemoryRequirements wraps vkGetImageMemoryRequirements.
func (c *Commands) GetImageMemoryRequirements(device Device, image Image, out *MemoryRequirements) {
	pOut := unsafe.Pointer(out)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&image),
		unsafe.Pointer(&pOut),
	}
	callVoid(&sigVoidHandleHandleOutPtr, c.getImageMemoryReqs, args[:])
}

// BindImageMemory wraps vkBindImageMemory.
func (c *Commands) BindImageMemory(device Device, image Image, memory DeviceMemory, offset uint64) Result {
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&image),
		unsafe.Pointer(&memory),
		unsafe.Pointer(&offset),
	}
	return callResult(&sigResultHandleHandleHandleU64, c.bindImageMemory, args[:])
}

// CreateImageView wraps vkCreateImageView.
func (c *Commands) CreateImageView(device Device, info *ImageViewCreateInfo, out *ImageView) Result {
	return c.createWithInfo(c.createImageView, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyImageView wraps vkDestroyImageView.
func (c *Commands) DestroyImageView(device Device, view ImageView) {
	c.destroyHandle(c.destroyImageView, device, uint64(view))
}

// CreateSampler wraps vkCreateSampler.
func (c *Commands) CreateSampler(device Device, info *SamplerCreateInfo, out *Sampler) Result {
	return c.createWithInfo(c.createSampler, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroySampler wraps vkDestroySampler.
func (c *Commands) DestroySampler(device Device, sampler Sampler) {
	c.destroyHandle(c.destroySampler, device, uint64(sampler))
}

// CreateShaderModule wraps vkCreateShaderModule.
func (c *Commands) CreateShaderModule(device Device, info *ShaderModuleCreateInfo, out *ShaderModule) Result {
	return c.createWithInfo(c.createShaderModule, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyShaderModule wraps vkDestroyShaderModule.
func (c *Commands) DestroyShaderModule(device Device, module ShaderModule) {
	c.destroyHandle(c.destroyShaderModule, device, uint64(module))
}

// CreateDescriptorSetLayout wraps vkCreateDescriptorSetLayout.
func (c *Commands) CreateDescriptorSetLayout(device Device, info *DescriptorSetLayoutCreateInfo, out *DescriptorSetLayout) Result {
	return c.createWithInfo(c.createDescriptorSetLayout, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyDescriptorSetLayout wraps vkDestroyDescriptorSetLayout.
func (c *Commands) DestroyDescriptorSetLayout(device Device, layout DescriptorSetLayout) {
	c.destroyHandle(c.destroyDescriptorSetLayout, device, uint64(layout))
}

// CreateDescriptorPool wraps vkCreateDescriptorPool.
func (c *Commands) CreateDescriptorPool(device Device, info *DescriptorPoolCreateInfo, out *DescriptorPool) Result {
	return c.createWithInfo(c.createDescriptorPool, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyDescriptorPool wraps vkDestroyDescriptorPool.
func (c *Commands) DestroyDescriptorPool(device Device, pool DescriptorPool) {
	c.destroyHandle(c.destroyDescriptorPool, device, uint64(pool))
}

// AllocateDescriptorSets wraps vkAllocateDescriptorSets.
func (c *Commands) AllocateDescriptorSets(device Device, info *DescriptorSetAllocateInfo, out *DescriptorSet) Result {
	pInfo := unsafe.Pointer(info)
	pOut := unsafe.Pointer(out)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&pInfo),
		unsafe.Pointer(&pOut),
	}
	return callResult(&sigResultHandlePtrPtr, c.allocateDescriptorSets, args[:])
}

// FreeDescriptorSets wraps vkFreeDescriptorSets.
func (c *Commands) FreeDescriptorSets(device Device, pool DescriptorPool, sets []DescriptorSet) Result {
	if len(sets) == 0 {
		return Success
	}
	count := uint32(len(sets))
	pSets := unsafe.Pointer(&sets[0])
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&pool),
		unsafe.Pointer(&count),
		unsafe.Pointer(&pSets),
	}
	return callResult(&sigResultHandleHandleU32Ptr, c.freeDescriptorSets, args[:])
}

// UpdateDescriptorSets wraps vkUpdateDescriptorSets (writes only).
func (c *Commands) UpdateDescriptorSets(device Device, writes []WriteDescriptorSet) {
	var pWrites unsafe.Pointer
	writeCount := uint32(len(writes))
	if writeCount > 0 {
		pWrites = unsafe.Pointer(&writes[0])
	}
	var copyCount uint32
	var pCopies unsafe.Pointer
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&writeCount),
		unsafe.Pointer(&pWrites),
		unsafe.Pointer(&copyCount),
		unsafe.Pointer(&pCopies),
	}
	callVoid(&sigVoidHandleU32PtrU32Ptr, c.updateDescriptorSets, args[:])
}

// CreatePipelineLayout wraps vkCreatePipelineLayout.
func (c *Commands) CreatePipelineLayout(device Device, info *PipelineLayoutCreateInfo, out *PipelineLayout) Result {
	return c.createWithInfo(c.createPipelineLayout, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyPipelineLayout wraps vkDestroyPipelineLayout.
func (c *Commands) DestroyPipelineLayout(device Device, layout PipelineLayout) {
	c.destroyHandle(c.destroyPipelineLayout, device, uint64(layout))
}

// CreateRenderPass wraps vkCreateRenderPass.
func (c *Commands) CreateRenderPass(device Device, info *RenderPassCreateInfo, out *RenderPass) Result {
	return c.createWithInfo(c.createRenderPass, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyRenderPass wraps vkDestroyRenderPass.
func (c *Commands) DestroyRenderPass(device Device, pass RenderPass) {
	c.destroyHandle(c.destroyRenderPass, device, uint64(pass))
}

// CreateFramebuffer wraps vkCreateFramebuffer.
func (c *Commands) CreateFramebuffer(device Device, info *FramebufferCreateInfo, out *Framebuffer) Result {
	return c.createWithInfo(c.createFramebuffer, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyFramebuffer wraps vkDestroyFramebuffer.
func (c *Commands) DestroyFramebuffer(device Device, fb Framebuffer) {
	c.destroyHandle(c.destroyFramebuffer, device, uint64(fb))
}

// CreateGraphicsPipelines wraps vkCreateGraphicsPipelines for one
// pipeline without a pipeline cache.
func (c *Commands) CreateGraphicsPipelines(device Device, info *GraphicsPipelineCreateInfo, out *Pipeline) Result {
	var cache uint64
	count := uint32(1)
	pInfo := unsafe.Pointer(info)
	var pAlloc unsafe.Pointer
	pOut := unsafe.Pointer(out)
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&cache),
		unsafe.Pointer(&count),
		unsafe.Pointer(&pInfo),
		unsafe.Pointer(&pAlloc),
		unsafe.Pointer(&pOut),
	}
	return callResult(&sigResultHandleHandleU32PtrPtrPtr, c.createGraphicsPipelines, args[:])
}

// CreateComputePipelines wraps vkCreateComputePipelines for one
// pipeline without a pipeline cache.
func (c *Commands) CreateComputePipelines(device Device, info *ComputePipelineCreateInfo, out *Pipeline) Result {
	var cache uint64
	count := uint32(1)
	pInfo := unsafe.Pointer(info)
	var pAlloc unsafe.Pointer
	pOut := unsafe.Pointer(out)
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&cache),
		unsafe.Pointer(&count),
		unsafe.Pointer(&pInfo),
		unsafe.Pointer(&pAlloc),
		unsafe.Pointer(&pOut),
	}
	return callResult(&sigResultHandleHandleU32PtrPtrPtr, c.createComputePipelines, args[:])
}

// DestroyPipeline wraps vkDestroyPipeline.
func (c *Commands) DestroyPipeline(device Device, pipeline Pipeline) {
	c.destroyHandle(c.destroyPipeline, device, uint64(pipeline))
}

// CreateCommandPool wraps vkCreateCommandPool.
func (c *Commands) CreateCommandPool(device Device, info *CommandPoolCreateInfo, out *CommandPool) Result {
	return c.createWithInfo(c.createCommandPool, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyCommandPool wraps vkDestroyCommandPool.
func (c *Commands) DestroyCommandPool(device Device, pool CommandPool) {
	c.destroyHandle(c.destroyCommandPool, device, uint64(pool))
}

// ResetCommandPool wraps vkResetCommandPool.
func (c *Commands) ResetCommandPool(device Device, pool CommandPool) Result {
	var flags uint32
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&pool),
		unsafe.Pointer(&flags),
	}
	return callResult(&sigResultHandleHandleU32, c.resetCommandPool, args[:])
}

// AllocateCommandBuffers wraps vkAllocateCommandBuffers.
func (c *Commands) AllocateCommandBuffers(device Device, info *CommandBufferAllocateInfo, out *CommandBuffer) Result {
	pInfo := unsafe.Pointer(info)
	pOut := unsafe.Pointer(out)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&pInfo),
		unsafe.Pointer(&pOut),
	}
	return callResult(&sigResultHandlePtrPtr, c.allocateCommandBuffers, args[:])
}

// BeginCommandBuffer wraps vkBeginCommandBuffer.
func (c *Commands) BeginCommandBuffer(cmd CommandBuffer, info *CommandBufferBeginInfo) Result {
	pInfo := unsafe.Pointer(info)
	args := [2]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&pInfo)}
	return callResult(&sigResultHandlePtr, c.beginCommandBuffer, args[:])
}

// EndCommandBuffer wraps vkEndCommandBuffer.
func (c *Commands) EndCommandBuffer(cmd CommandBuffer) Result {
	args := [1]unsafe.Pointer{unsafe.Pointer(&cmd)}
	return callResult(&sigResultHandle, c.endCommandBuffer, args[:])
}

// CreateFence wraps vkCreateFence.
func (c *Commands) CreateFence(device Device, info *FenceCreateInfo, out *Fence) Result {
	return c.createWithInfo(c.createFence, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyFence wraps vkDestroyFence.
func (c *Commands) DestroyFence(device Device, fence Fence) {
	c.destroyHandle(c.destroyFence, device, uint64(fence))
}

// WaitForFences wraps vkWaitForFences.
func (c *Commands) WaitForFences(device Device, fences []Fence, waitAll bool, timeoutNs uint64) Result {
	if len(fences) == 0 {
		return Success
	}
	count := uint32(len(fences))
	pFences := unsafe.Pointer(&fences[0])
	all := uint32(0)
	if waitAll {
		all = 1
	}
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&count),
		unsafe.Pointer(&pFences),
		unsafe.Pointer(&all),
		unsafe.Pointer(&timeoutNs),
	}
	return callResult(&sigResultHandleU32PtrU32U64, c.waitForFences, args[:])
}

// ResetFences wraps vkResetFences.
func (c *Commands) ResetFences(device Device, fences []Fence) Result {
	if len(fences) == 0 {
		return Success
	}
	count := uint32(len(fences))
	pFences := unsafe.Pointer(&fences[0])
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&count),
		unsafe.Pointer(&pFences),
	}
	return callResult(&sigResultHandleU32Ptr, c.resetFences, args[:])
}

// GetFenceStatus wraps vkGetFenceStatus.
func (c *Commands) GetFenceStatus(device Device, fence Fence) Result {
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&fence)}
	return callResult(&sigResultHandleHandle, c.getFenceStatus, args[:])
}

// CreateSemaphore wraps vkCreateSemaphore.
func (c *Commands) CreateSemaphore(device Device, info *SemaphoreCreateInfo, out *Semaphore) Result {
	return c.createWithInfo(c.createSemaphore, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroySemaphore wraps vkDestroySemaphore.
func (c *Commands) DestroySemaphore(device Device, sem Semaphore) {
	c.destroyHandle(c.destroySemaphore, device, uint64(sem))
}

// CreateSwapchainKHR wraps vkCreateSwapchainKHR.
func (c *Commands) CreateSwapchainKHR(device Device, info *SwapchainCreateInfoKHR, out *SwapchainKHR) Result {
	return c.createWithInfo(c.createSwapchainKHR, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroySwapchainKHR wraps vkDestroySwapchainKHR.
func (c *Commands) DestroySwapchainKHR(device Device, sc SwapchainKHR) {
	c.destroyHandle(c.destroySwapchainKHR, device, uint64(sc))
}

// GetSwapchainImagesKHR wraps vkGetSwapchainImagesKHR.
func (c *Commands) GetSwapchainImagesKHR(device Device, sc SwapchainKHR, count *uint32, images *Image) Result {
	pCount := unsafe.Pointer(count)
	pImages := unsafe.Pointer(images)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&sc),
		unsafe.Pointer(&pCount),
		unsafe.Pointer(&pImages),
	}
	return callResult(&sigResultHandleHandlePtrPtr, c.getSwapchainImagesKHR, args[:])
}

// AcquireNextImageKHR wraps vkAcquireNextImageKHR.
func (c *Commands) AcquireNextImageKHR(device Device, sc SwapchainKHR, timeoutNs uint64, sem Semaphore, fence Fence, out *uint32) Result {
	pOut := unsafe.Pointer(out)
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&sc),
		unsafe.Pointer(&timeoutNs),
		unsafe.Pointer(&sem),
		unsafe.Pointer(&fence),
		unsafe.Pointer(&pOut),
	}
	return callResult(&sigResultHandleHandleU64HandleHandlePtr, c.acquireNextImageKHR, args[:])
}

// QueueSubmit wraps vkQueueSubmit.
func (c *Commands) QueueSubmit(queue Queue, submits []SubmitInfo, fence Fence) Result {
	var pSubmits unsafe.Pointer
	count := uint32(len(submits))
	if count > 0 {
		pSubmits = unsafe.Pointer(&submits[0])
	}
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&queue),
		unsafe.Pointer(&count),
		unsafe.Pointer(&pSubmits),
		unsafe.Pointer(&fence),
	}
	return callResult(&sigResultHandleU32PtrHandle, c.queueSubmit, args[:])
}

// QueuePresentKHR wraps vkQueuePresentKHR.
func (c *Commands) QueuePresentKHR(queue Queue, info *PresentInfoKHR) Result {
	pInfo := unsafe.Pointer(info)
	args := [2]unsafe.Pointer{unsafe.Pointer(&queue), unsafe.Pointer(&pInfo)}
	return callResult(&sigResultHandlePtr, c.queuePresentKHR, args[:])
}

// CmdBeginRenderPass wraps vkCmdBeginRenderPass.
func (c *Commands) CmdBeginRenderPass(cmd CommandBuffer, info *RenderPassBeginInfo, contents SubpassContents) {
	pInfo := unsafe.Pointer(info)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&cmd),
		unsafe.Pointer(&pInfo),
		unsafe.Pointer(&contents),
	}
	callVoid(&sigVoidHandlePtrU32, c.cmdBeginRenderPass, args[:])
}

// CmdEndRenderPass wraps vkCmdEndRenderPass.
func (c *Commands) CmdEndRenderPass(cmd CommandBuffer) {
	args := [1]unsafe.Pointer{unsafe.Pointer(&cmd)}
	callVoid(&sigVoidHandle, c.cmdEndRenderPass, args[:])
}

// CmdSetViewport wraps vkCmdSetViewport for one viewport.
func (c *Commands) CmdSetViewport(cmd CommandBuffer, viewport *Viewport) {
	first := uint32(0)
	count := uint32(1)
	pViewport := unsafe.Pointer(viewport)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&cmd),
		unsafe.Pointer(&first),
		unsafe.Pointer(&count),
		unsafe.Pointer(&pViewport),
	}
	callVoid(&sigVoidHandleU32U32Ptr2, c.cmdSetViewport, args[:])
}

// CmdSetScissor wraps vkCmdSetScissor for one scissor.
func (c *Commands) CmdSetScissor(cmd CommandBuffer, scissor *Rect2D) {
	first := uint32(0)
	count := uint32(1)
	pScissor := unsafe.Pointer(scissor)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&cmd),
		unsafe.Pointer(&first),
		unsafe.Pointer(&count),
		unsafe.Pointer(&pScissor),
	}
	callVoid(&sigVoidHandleU32U32Ptr2, c.cmdSetScissor, args[:])
}

// CmdSetDepthBias wraps vkCmdSetDepthBias.
func (c *Commands) CmdSetDepthBias(cmd CommandBuffer, constantFactor, clamp, slopeFactor float32) {
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&cmd),
		unsafe.Pointer(&constantFactor),
		unsafe.Pointer(&clamp),
		unsafe.Pointer(&slopeFactor),
	}
	callVoid(&sigVoidHandleF32x3, c.cmdSetDepthBias, args[:])
}

// CmdSetLineWidth wraps vkCmdSetLineWidth.
func (c *Commands) CmdSetLineWidth(cmd CommandBuffer, width float32) {
	args := [2]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&width)}
	callVoid(&sigVoidHandleF32, c.cmdSetLineWidth, args[:])
}

// CmdSetBlendConstants wraps vkCmdSetBlendConstants.
func (c *Commands) CmdSetBlendConstants(cmd CommandBuffer, constants *[4]float32) {
	pConstants := unsafe.Pointer(constants)
	args := [2]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&pConstants)}
	callVoid(&sigVoidHandleConstPtr, c.cmdSetBlendConstants, args[:])
}

// CmdBindPipeline wraps vkCmdBindPipeline.
func (c *Commands) CmdBindPipeline(cmd CommandBuffer, bindPoint PipelineBindPoint, pipeline Pipeline) {
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&cmd),
		unsafe.Pointer(&bindPoint),
		unsafe.Pointer(&pipeline),
	}
	callVoid(&sigVoidHandleU32Handle, c.cmdBindPipeline, args[:])
}

// CmdBindDescriptorSets wraps vkCmdBindDescriptorSets without dynamic
// offsets.
func (c *Commands) CmdBindDescriptorSets(cmd CommandBuffer, bindPoint PipelineBindPoint, layout PipelineLayout, firstSet uint32, sets []DescriptorSet) {
	if len(sets) == 0 {
		return
	}
	count := uint32(len(sets))
	pSets := unsafe.Pointer(&sets[0])
	var offsetCount uint32
	var pOffsets unsafe.Pointer
	args := [8]unsafe.Pointer{
		unsafe.Pointer(&cmd),
		unsafe.Pointer(&bindPoint),
		unsafe.Pointer(&layout),
		unsafe.Pointer(&firstSet),
		unsafe.Pointer(&count),
		unsafe.Pointer(&pSets),
		unsafe.Pointer(&offsetCount),
		unsafe.Pointer(&pOffsets),
	}
	callVoid(&sigVoidCmdBindDescriptorSets, c.cmdBindDescriptorSets, args[:])
}

// CmdBindVertexBuffers wraps vkCmdBindVertexBuffers for one binding.
func (c *Commands) CmdBindVertexBuffers(cmd CommandBuffer, binding uint32, buffer Buffer, offset uint64) {
	count := uint32(1)
	pBuffer := unsafe.Pointer(&buffer)
	pOffset := unsafe.Pointer(&offset)
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&cmd),
		unsafe.Pointer(&binding),
		unsafe.Pointer(&count),
		unsafe.Pointer(&pBuffer),
		unsafe.Pointer(&pOffset),
	}
	callVoid(&sigVoidCmdBindVertexBuffers, c.cmdBindVertexBuffers, args[:])
}

// CmdBindIndexBuffer wraps vkCmdBindIndexBuffer.
func (c *Commands) CmdBindIndexBuffer(cmd CommandBuffer, buffer Buffer, offset uint64, indexType IndexType) {
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&cmd),
		unsafe.Pointer(&buffer),
		unsafe.Pointer(&offset),
		unsafe.Pointer(&indexType),
	}
	callVoid(&sigVoidHandleHandleU64U32, c.cmdBindIndexBuffer, args[:])
}

// CmdDraw wraps vkCmdDraw.
func (c *Commands) CmdDraw(cmd CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&cmd),
		unsafe.Pointer(&vertexCount),
		unsafe.Pointer(&instanceCount),
		unsafe.Pointer(&firstVertex),
		unsafe.Pointer(&firstInstance),
	}
	callVoid(&sigVoidHandleU32x4, c.cmdDraw, args[:])
}

// CmdDrawIndexed wraps vkCmdDrawIndexed.
func (c *Commands) CmdDrawIndexed(cmd CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&cmd),
		unsafe.Pointer(&indexCount),
		unsafe.Pointer(&instanceCount),
		unsafe.Pointer(&firstIndex),
		unsafe.Pointer(&vertexOffset),
		unsafe.Pointer(&firstInstance),
	}
	callVoid(&sigVoidCmdDrawIndexed, c.cmdDrawIndexed, args[:])
}

// CmdDrawIndexedIndirect wraps vkCmdDrawIndexedIndirect.
func (c *Commands) CmdDrawIndexedIndirect(cmd CommandBuffer, buffer Buffer, offset uint64, drawCount, stride uint32) {
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&cmd),
		unsafe.Pointer(&buffer),
		unsafe.Pointer(&offset),
		unsafe.Pointer(&drawCount),
		unsafe.Pointer(&stride),
	}
	callVoid(&sigVoidHandleHandleU64U32U32, c.cmdDrawIndexedIndirect, args[:])
}

// CmdDispatch wraps vkCmdDispatch.
func (c *Commands) CmdDispatch(cmd CommandBuffer, x, y, z uint32) {
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&cmd),
		unsafe.Pointer(&x),
		unsafe.Pointer(&y),
		unsafe.Pointer(&z),
	}
	callVoid(&sigVoidHandleU32x3, c.cmdDispatch, args[:])
}

// CmdDispatchIndirect wraps vkCmdDispatchIndirect.
func (c *Commands) CmdDispatchIndirect(cmd CommandBuffer, buffer Buffer, offset uint64) {
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&cmd),
		unsafe.Pointer(&buffer),
		unsafe.Pointer(&offset),
	}
	callVoid(&sigVoidHandleHandleU64, c.cmdDispatchIndirect, args[:])
}

// CmdCopyBuffer wraps vkCmdCopyBuffer.
func (c *Commands) CmdCopyBuffer(cmd CommandBuffer, src, dst Buffer, regions []BufferCopy) {
	if len(regions) == 0 {
		return
	}
	count := uint32(len(regions))
	pRegions := unsafe.Pointer(&regions[0])
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&cmd),
		unsafe.Pointer(&src),
		unsafe.Pointer(&dst),
		unsafe.Pointer(&count),
		unsafe.Pointer(&pRegions),
	}
	callVoid(&sigVoidCmdCopyBuffer, c.cmdCopyBuffer, args[:])
}

// CmdCopyBufferToImage wraps vkCmdCopyBufferToImage.
func (c *Commands) CmdCopyBufferToImage(cmd CommandBuffer, src Buffer, dst Image, layout ImageLayout, regions []BufferImageCopy) {
	if len(regions) == 0 {
		return
	}
	count := uint32(len(regions))
	pRegions := unsafe.Pointer(&regions[0])
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&cmd),
		unsafe.Pointer(&src),
		unsafe.Pointer(&dst),
		unsafe.Pointer(&layout),
		unsafe.Pointer(&count),
		unsafe.Pointer(&pRegions),
	}
	callVoid(&sigVoidCmdCopyBufferToImage, c.cmdCopyBufferToImage, args[:])
}

// CmdBlitImage wraps vkCmdBlitImage with linear filtering.
func (c *Commands) CmdBlitImage(cmd CommandBuffer, src Image, srcLayout ImageLayout, dst Image, dstLayout ImageLayout, regions []ImageBlit, filter Filter) {
	if len(regions) == 0 {
		return
	}
	count := uint32(len(regions))
	pRegions := unsafe.Pointer(&regions[0])
	args := [8]unsafe.Pointer{
		unsafe.Pointer(&cmd),
		unsafe.Pointer(&src),
		unsafe.Pointer(&srcLayout),
		unsafe.Pointer(&dst),
		unsafe.Pointer(&dstLayout),
		unsafe.Pointer(&count),
		unsafe.Pointer(&pRegions),
		unsafe.Pointer(&filter),
	}
	callVoid(&sigVoidCmdBlitImage, c.cmdBlitImage, args[:])
}

// CmdPipelineBarrier wraps vkCmdPipelineBarrier.
func (c *Commands) CmdPipelineBarrier(cmd CommandBuffer, srcStages, dstStages PipelineStageFlags,
	memory []MemoryBarrier, buffers []BufferMemoryBarrier, images []ImageMemoryBarrier) {

	var depFlags uint32
	memCount := uint32(len(memory))
	var pMem unsafe.Pointer
	if memCount > 0 {
		pMem = unsafe.Pointer(&memory[0])
	}
	bufCount := uint32(len(buffers))
	var pBuf unsafe.Pointer
	if bufCount > 0 {
		pBuf = unsafe.Pointer(&buffers[0])
	}
	imgCount := uint32(len(images))
	var pImg unsafe.Pointer
	if imgCount > 0 {
		pImg = unsafe.Pointer(&images[0])
	}

	args := [10]unsafe.Pointer{
		unsafe.Pointer(&cmd),
		unsafe.Pointer(&srcStages),
		unsafe.Pointer(&dstStages),
		unsafe.Pointer(&depFlags),
		unsafe.Pointer(&memCount),
		unsafe.Pointer(&pMem),
		unsafe.Pointer(&bufCount),
		unsafe.Pointer(&pBuf),
		unsafe.Pointer(&imgCount),
		unsafe.Pointer(&pImg),
	}
	callVoid(&sigVoidCmdPipelineBarrier, c.cmdPipelineBarrier, args[:])
}
