// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vk provides pure Go Vulkan bindings for the subset of the
// API the forge backend issues, using goffi for FFI calls.
//
// # goffi calling convention
//
// goffi expects args[] to contain pointers to WHERE argument values
// are stored, not the values themselves. This applies to all argument
// types, including pointers:
//
//	var value uint64 = 42
//	args[i] = unsafe.Pointer(&value)  // pointer to value storage
//
//	ptr := unsafe.Pointer(&data[0])   // this IS the pointer value
//	args[i] = unsafe.Pointer(&ptr)    // pointer TO the pointer
//
// # Function loading hierarchy
//
//  1. LoadGlobal — pre-instance functions (vkCreateInstance)
//  2. LoadInstance — instance-level and WSI functions
//  3. LoadDevice — everything issued against a device or command
//     buffer
//
// Some drivers return NULL from vkGetInstanceProcAddr(NULL,
// "vkGetDeviceProcAddr"); SetDeviceProcAddr(instance) after instance
// creation works around that.
package vk
