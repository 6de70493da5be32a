// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Shared CallInterface signatures. Vulkan has hundreds of commands but
// only a couple dozen distinct signatures once handles are passed as
// 64-bit values and every pointer is a pointer.

package vk

import (
	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

var (
	// VkResult(ptr, ptr, ptr) — vkCreateInstance
	sigResultPtrPtrPtr types.CallInterface

	// VkResult(handle) — vkEndCommandBuffer, vkDeviceWaitIdle
	sigResultHandle types.CallInterface

	// VkResult(handle, ptr) — vkBeginCommandBuffer, vkQueuePresentKHR
	sigResultHandlePtr types.CallInterface

	// VkResult(handle, ptr, ptr) — vkAllocateDescriptorSets, ...
	sigResultHandlePtrPtr types.CallInterface

	// VkResult(handle, ptr, ptr, ptr) — vkCreateBuffer and friends
	sigResultHandlePtrPtrPtr types.CallInterface

	// VkResult(handle, ptr, ptr) — vkEnumeratePhysicalDevices
	sigResultHandleU32PtrPtr types.CallInterface

	// VkResult(handle, handle, ptr, ptr) — vkGetSwapchainImagesKHR
	sigResultHandleHandlePtrPtr types.CallInterface

	// VkResult(handle, handle, u32, ptr, ptr) — vkCreateGraphicsPipelines
	sigResultHandleHandleU32PtrPtrPtr types.CallInterface

	// VkResult(handle, u32, ptr, handle) — vkQueueSubmit
	sigResultHandleU32PtrHandle types.CallInterface

	// VkResult(handle, u32, ptr) — vkResetFences, vkFlushMappedMemoryRanges
	sigResultHandleU32Ptr types.CallInterface

	// VkResult(handle, u32, ptr, u32, u64) — vkWaitForFences
	sigResultHandleU32PtrU32U64 types.CallInterface

	// VkResult(handle, handle) — vkGetFenceStatus
	sigResultHandleHandle types.CallInterface

	// VkResult(handle, handle, u32) — vkResetCommandPool
	sigResultHandleHandleU32 types.CallInterface

	// VkResult(handle, handle, handle, u64) — vkBindBufferMemory (offset last)
	sigResultHandleHandleHandleU64 types.CallInterface

	// VkResult(handle, handle, u64, u64, u32, ptr) — vkMapMemory
	sigResultHandleHandleU64U64U32Ptr types.CallInterface

	// VkResult(handle, handle, u64, handle, ptr) — vkAcquireNextImageKHR
	sigResultHandleHandleU64HandleHandlePtr types.CallInterface

	// VkResult(handle, handle, u32, ptr) — vkFreeDescriptorSets
	sigResultHandleHandleU32Ptr types.CallInterface

	// VkResult(handle, handle, ptr) — vkGetPhysicalDeviceSurfaceCapabilitiesKHR
	sigResultHandleHandlePtr types.CallInterface

	// VkResult(handle, u32, handle, ptr) — vkGetPhysicalDeviceSurfaceSupportKHR
	sigResultHandleU32HandlePtr types.CallInterface

	// void(handle, ptr) — vkDestroyInstance, vkDestroyDevice
	sigVoidHandlePtr types.CallInterface

	// void(handle) — (unused directly, kept for symmetry)
	sigVoidHandle types.CallInterface

	// void(handle, handle, ptr) — vkDestroyBuffer and friends
	sigVoidHandleHandlePtr types.CallInterface

	// void(handle, ptr) with out-struct — vkGetPhysicalDeviceProperties
	sigVoidHandleOutPtr types.CallInterface

	// void(handle, ptr, ptr) — vkGetPhysicalDeviceQueueFamilyProperties
	sigVoidHandlePtrPtr types.CallInterface

	// void(handle, u32, u32, ptr) — vkGetDeviceQueue
	sigVoidHandleU32U32Ptr types.CallInterface

	// void(handle, handle, ptr) out — vkGetBufferMemoryRequirements
	sigVoidHandleHandleOutPtr types.CallInterface

	// void(handle, handle) — vkUnmapMemory
	sigVoidHandleHandle types.CallInterface

	// void(handle, u32, ptr, u32, ptr) — vkUpdateDescriptorSets
	sigVoidHandleU32PtrU32Ptr types.CallInterface

	// void(cmd, u32, ptr) — vkCmdSetViewport-like (first, count, ptr)
	sigVoidHandleU32U32Ptr2 types.CallInterface

	// void(cmd, ptr, u32) — vkCmdBeginRenderPass
	sigVoidHandlePtrU32 types.CallInterface

	// void(cmd, u32, handle) — vkCmdBindPipeline
	sigVoidHandleU32Handle types.CallInterface

	// void(cmd, u32, handle, u32, u32, ptr, u32, ptr) — vkCmdBindDescriptorSets
	sigVoidCmdBindDescriptorSets types.CallInterface

	// void(cmd, u32, u32, ptr, ptr) — vkCmdBindVertexBuffers
	sigVoidCmdBindVertexBuffers types.CallInterface

	// void(cmd, handle, u64, u32) — vkCmdBindIndexBuffer
	sigVoidHandleHandleU64U32 types.CallInterface

	// void(cmd, u32, u32, u32, u32) — vkCmdDraw / vkCmdDispatch
	sigVoidHandleU32x4 types.CallInterface

	// void(cmd, u32, u32, u32, i32, u32) — vkCmdDrawIndexed
	sigVoidCmdDrawIndexed types.CallInterface

	// void(cmd, handle, u64, u32, u32) — vkCmdDrawIndexedIndirect
	sigVoidHandleHandleU64U32U32 types.CallInterface

	// void(cmd, handle, u64) — vkCmdDispatchIndirect
	sigVoidHandleHandleU64 types.CallInterface

	// void(cmd, u32, u32, u32) — vkCmdDispatch
	sigVoidHandleU32x3 types.CallInterface

	// void(cmd, handle, handle, u32, ptr) — vkCmdCopyBuffer
	sigVoidCmdCopyBuffer types.CallInterface

	// void(cmd, handle, handle, u32, u32, ptr) — vkCmdCopyBufferToImage
	sigVoidCmdCopyBufferToImage types.CallInterface

	// void(cmd, handle, u32, handle, u32, u32, ptr, u32) — vkCmdBlitImage
	sigVoidCmdBlitImage types.CallInterface

	// void(cmd, u32, u32, u32, u32, ptr, u32, ptr, u32, ptr) — vkCmdPipelineBarrier
	sigVoidCmdPipelineBarrier types.CallInterface

	// void(cmd, f32, f32, f32) — vkCmdSetDepthBias
	sigVoidHandleF32x3 types.CallInterface

	// void(cmd, f32) — vkCmdSetLineWidth
	sigVoidHandleF32 types.CallInterface

	// void(cmd, ptr) — vkCmdSetBlendConstants, vkCmdEndRenderPass(handle only)
	sigVoidHandleConstPtr types.CallInterface
)

func initSignatures() error {
	u64 := types.UInt64TypeDescriptor
	u32 := types.UInt32TypeDescriptor
	i32 := types.SInt32TypeDescriptor
	f32 := types.FloatTypeDescriptor
	ptr := types.PointerTypeDescriptor
	void := types.VoidTypeDescriptor

	prepare := func(cif *types.CallInterface, ret *types.TypeDescriptor, params ...*types.TypeDescriptor) error {
		return ffi.PrepareCallInterface(cif, types.DefaultCall, ret, params)
	}

	steps := []func() error{
		func() error { return prepare(&sigResultPtrPtrPtr, i32, ptr, ptr, ptr) },
		func() error { return prepare(&sigResultHandle, i32, u64) },
		func() error { return prepare(&sigResultHandlePtr, i32, u64, ptr) },
		func() error { return prepare(&sigResultHandlePtrPtr, i32, u64, ptr, ptr) },
		func() error { return prepare(&sigResultHandlePtrPtrPtr, i32, u64, ptr, ptr, ptr) },
		func() error { return prepare(&sigResultHandleU32PtrPtr, i32, u64, ptr, ptr) },
		func() error { return prepare(&sigResultHandleHandlePtrPtr, i32, u64, u64, ptr, ptr) },
		func() error { return prepare(&sigResultHandleHandleU32PtrPtrPtr, i32, u64, u64, u32, ptr, ptr, ptr) },
		func() error { return prepare(&sigResultHandleU32PtrHandle, i32, u64, u32, ptr, u64) },
		func() error { return prepare(&sigResultHandleU32Ptr, i32, u64, u32, ptr) },
		func() error { return prepare(&sigResultHandleU32PtrU32U64, i32, u64, u32, ptr, u32, u64) },
		func() error { return prepare(&sigResultHandleHandle, i32, u64, u64) },
		func() error { return prepare(&sigResultHandleHandleU32, i32, u64, u64, u32) },
		func() error { return prepare(&sigResultHandleHandleHandleU64, i32, u64, u64, u64, u64) },
		func() error { return prepare(&sigResultHandleHandleU64U64U32Ptr, i32, u64, u64, u64, u64, u32, ptr) },
		func() error {
			return prepare(&sigResultHandleHandleU64HandleHandlePtr, i32, u64, u64, u64, u64, u64, ptr)
		},
		func() error { return prepare(&sigResultHandleHandleU32Ptr, i32, u64, u64, u32, ptr) },
		func() error { return prepare(&sigResultHandleHandlePtr, i32, u64, u64, ptr) },
		func() error { return prepare(&sigResultHandleU32HandlePtr, i32, u64, u32, u64, ptr) },
		func() error { return prepare(&sigVoidHandlePtr, void, u64, ptr) },
		func() error { return prepare(&sigVoidHandle, void, u64) },
		func() error { return prepare(&sigVoidHandleHandlePtr, void, u64, u64, ptr) },
		func() error { return prepare(&sigVoidHandleOutPtr, void, u64, ptr) },
		func() error { return prepare(&sigVoidHandlePtrPtr, void, u64, ptr, ptr) },
		func() error { return prepare(&sigVoidHandleU32U32Ptr, void, u64, u32, u32, ptr) },
		func() error { return prepare(&sigVoidHandleHandleOutPtr, void, u64, u64, ptr) },
		func() error { return prepare(&sigVoidHandleHandle, void, u64, u64) },
		func() error { return prepare(&sigVoidHandleU32PtrU32Ptr, void, u64, u32, ptr, u32, ptr) },
		func() error { return prepare(&sigVoidHandleU32U32Ptr2, void, u64, u32, u32, ptr) },
		func() error { return prepare(&sigVoidHandlePtrU32, void, u64, ptr, u32) },
		func() error { return prepare(&sigVoidHandleU32Handle, void, u64, u32, u64) },
		func() error {
			return prepare(&sigVoidCmdBindDescriptorSets, void, u64, u32, u64, u32, u32, ptr, u32, ptr)
		},
		func() error { return prepare(&sigVoidCmdBindVertexBuffers, void, u64, u32, u32, ptr, ptr) },
		func() error { return prepare(&sigVoidHandleHandleU64U32, void, u64, u64, u64, u32) },
		func() error { return prepare(&sigVoidHandleU32x4, void, u64, u32, u32, u32, u32) },
		func() error { return prepare(&sigVoidCmdDrawIndexed, void, u64, u32, u32, u32, i32, u32) },
		func() error { return prepare(&sigVoidHandleHandleU64U32U32, void, u64, u64, u64, u32, u32) },
		func() error { return prepare(&sigVoidHandleHandleU64, void, u64, u64, u64) },
		func() error { return prepare(&sigVoidHandleU32x3, void, u64, u32, u32, u32) },
		func() error { return prepare(&sigVoidCmdCopyBuffer, void, u64, u64, u64, u32, ptr) },
		func() error { return prepare(&sigVoidCmdCopyBufferToImage, void, u64, u64, u64, u32, u32, ptr) },
		func() error { return prepare(&sigVoidCmdBlitImage, void, u64, u64, u32, u64, u32, u32, ptr, u32) },
		func() error {
			return prepare(&sigVoidCmdPipelineBarrier, void, u64, u32, u32, u32, u32, ptr, u32, ptr, u32, ptr)
		},
		func() error { return prepare(&sigVoidHandleF32x3, void, u64, f32, f32, f32) },
		func() error { return prepare(&sigVoidHandleF32, void, u64, f32) },
		func() error { return prepare(&sigVoidHandleConstPtr, void, u64, ptr) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
