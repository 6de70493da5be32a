// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hal

import "errors"

// Errors of the backend boundary, per the recovery policy each one
// carries.
var (
	// ErrBackendNotFound indicates the requested backend is not
	// registered.
	ErrBackendNotFound = errors.New("hal: backend not found")

	// ErrOutOfDeviceMemory indicates GPU memory exhaustion.
	// Recoverable by releasing per-frame resources and retrying the
	// frame; persisting across two consecutive frames escalates to
	// fatal in the pacer.
	ErrOutOfDeviceMemory = errors.New("hal: out of device memory")

	// ErrOutOfHostMemory indicates host allocation failure inside the
	// driver. Same recovery policy as ErrOutOfDeviceMemory.
	ErrOutOfHostMemory = errors.New("hal: out of host memory")

	// ErrDeviceLost indicates the GPU device has been lost (driver
	// crash, reset, removal). The device cannot be recovered.
	ErrDeviceLost = errors.New("hal: device lost")

	// ErrSurfaceLost indicates the presentation surface is gone. The
	// swapchain must be rebuilt on a new surface; the current frame is
	// discarded without submit.
	ErrSurfaceLost = errors.New("hal: surface lost")

	// ErrOutOfDate indicates the swapchain no longer matches the
	// surface. Rebuild the swapchain; the current frame is discarded.
	ErrOutOfDate = errors.New("hal: swapchain out of date")

	// ErrSuboptimal indicates the swapchain still presents but no
	// longer matches the surface optimally. Rebuild at the caller's
	// convenience.
	ErrSuboptimal = errors.New("hal: swapchain suboptimal")

	// ErrTimeout is returned by bounded fence or acquire waits.
	// Recoverable; the caller chooses.
	ErrTimeout = errors.New("hal: timeout")

	// ErrUnsupportedFormat indicates the device cannot create a
	// resource with the requested format.
	ErrUnsupportedFormat = errors.New("hal: unsupported format")

	// ErrInvalidSpec indicates a descriptor failed validation (zero
	// size, empty usage, contradictory flags).
	ErrInvalidSpec = errors.New("hal: invalid resource spec")

	// ErrShaderInvalid indicates shader group creation was rejected,
	// typically after a reflection failure.
	ErrShaderInvalid = errors.New("hal: shader group invalid")

	// ErrPipelineCreationFailed indicates the backend rejected a
	// pipeline. The full state dump is logged at Error level.
	ErrPipelineCreationFailed = errors.New("hal: pipeline creation failed")

	// ErrDescriptorPoolExhausted indicates the calling thread's
	// descriptor pool is out of sets.
	ErrDescriptorPoolExhausted = errors.New("hal: descriptor pool exhausted")

	// ErrNotMappable is returned by Map on device-local buffers.
	ErrNotMappable = errors.New("hal: buffer memory is not host-visible")
)
