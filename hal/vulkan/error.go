// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/hal/vulkan/vk"
)

// resultToError maps a VkResult onto the hal error taxonomy. This is
// the backend's single translation point, so callers only ever see
// one vocabulary.
func resultToError(op string, result vk.Result) error {
	switch result {
	case vk.Success:
		return nil
	case vk.ErrorOutOfHostMemory:
		return fmt.Errorf("vulkan: %s: %w", op, hal.ErrOutOfHostMemory)
	case vk.ErrorOutOfDeviceMemory, vk.ErrorOutOfPoolMemory:
		return fmt.Errorf("vulkan: %s: %w", op, hal.ErrOutOfDeviceMemory)
	case vk.ErrorDeviceLost:
		return fmt.Errorf("vulkan: %s: %w", op, hal.ErrDeviceLost)
	case vk.ErrorSurfaceLostKHR:
		return fmt.Errorf("vulkan: %s: %w", op, hal.ErrSurfaceLost)
	case vk.ErrorOutOfDateKHR:
		return fmt.Errorf("vulkan: %s: %w", op, hal.ErrOutOfDate)
	case vk.SuboptimalKHR:
		return fmt.Errorf("vulkan: %s: %w", op, hal.ErrSuboptimal)
	case vk.Timeout, vk.NotReady:
		return fmt.Errorf("vulkan: %s: %w", op, hal.ErrTimeout)
	case vk.ErrorFormatNotSupported:
		return fmt.Errorf("vulkan: %s: %w", op, hal.ErrUnsupportedFormat)
	}
	return fmt.Errorf("vulkan: %s failed: VkResult(%d)", op, result)
}
