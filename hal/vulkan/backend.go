// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vulkan implements the forge HAL on Vulkan 1.1+ through pure
// Go FFI bindings (no cgo).
package vulkan

import (
	"log/slog"
	"runtime"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/hal/vulkan/vk"
)

// API implements hal.Backend for Vulkan.
type API struct{}

// Variant returns the backend type identifier.
func (API) Variant() gputypes.Backend {
	return gputypes.BackendVulkan
}

func init() {
	hal.RegisterBackend(API{})
}

// CreateInstance loads the Vulkan library and creates a VkInstance
// with the requested extensions.
func (API) CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error) {
	if err := vk.Init(); err != nil {
		return nil, err
	}

	cmds := vk.NewCommands()
	if err := cmds.LoadGlobal(); err != nil {
		return nil, err
	}

	appName := vk.CString(desc.AppName)
	engineName := vk.CString("forge")
	appInfo := vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   &appName[0],
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		PEngineName:        &engineName[0],
		EngineVersion:      vk.MakeVersion(0, 1, 0),
		APIVersion:         vk.MakeVersion(1, 1, 0),
	}

	extensions := append([]string(nil), desc.RequiredExtensions...)
	var layers []string
	if desc.EnableValidation {
		layers = append(layers, "VK_LAYER_KHRONOS_validation")
	}

	extPtrs, extBacking := vk.CStringArray(extensions)
	layerPtrs, layerBacking := vk.CStringArray(layers)

	info := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &appInfo,
	}
	if len(extPtrs) > 0 {
		info.EnabledExtensionCount = uint32(len(extPtrs))
		info.PpEnabledExtensionNames = &extPtrs[0]
	}
	if len(layerPtrs) > 0 {
		info.EnabledLayerCount = uint32(len(layerPtrs))
		info.PpEnabledLayerNames = &layerPtrs[0]
	}

	var handle vk.Instance
	result := cmds.CreateInstance(&info, &handle)
	runtime.KeepAlive(extBacking)
	runtime.KeepAlive(layerBacking)
	runtime.KeepAlive(appName)
	runtime.KeepAlive(engineName)
	if result == vk.ErrorLayerNotPresent && desc.EnableValidation {
		// Validation requested but not installed; retry bare.
		hal.Logger().Warn("vulkan: validation layer not present, continuing without")
		info.EnabledLayerCount = 0
		info.PpEnabledLayerNames = nil
		result = cmds.CreateInstance(&info, &handle)
	}
	if result != vk.Success {
		return nil, resultToError("vkCreateInstance", result)
	}

	if err := cmds.LoadInstance(handle); err != nil {
		return nil, err
	}

	hal.Logger().Info("vulkan instance created",
		slog.Int("extensions", len(extensions)),
		slog.Bool("validation", len(layerPtrs) > 0))

	return &Instance{handle: handle, cmds: cmds}, nil
}

// Instance implements hal.Instance.
type Instance struct {
	handle vk.Instance
	cmds   *vk.Commands
}

// Surface implements hal.Surface.
type Surface struct {
	handle vk.SurfaceKHR
}

// CreateSurface creates a platform surface from Window handles.
func (i *Instance) CreateSurface(displayHandle, windowHandle uintptr) (hal.Surface, error) {
	var surface vk.SurfaceKHR
	var result vk.Result

	switch runtime.GOOS {
	case "windows":
		info := vk.Win32SurfaceCreateInfoKHR{
			SType: vk.StructureTypeWin32SurfaceCreateInfoKHR,
			Hwnd:  windowHandle,
		}
		result = i.cmds.CreateWin32SurfaceKHR(i.handle, &info, &surface)
	default:
		info := vk.XlibSurfaceCreateInfoKHR{
			SType:  vk.StructureTypeXlibSurfaceCreateInfoKHR,
			Dpy:    displayHandle,
			Window: windowHandle,
		}
		result = i.cmds.CreateXlibSurfaceKHR(i.handle, &info, &surface)
	}
	if result != vk.Success {
		return nil, resultToError("create surface", result)
	}
	return &Surface{handle: surface}, nil
}

// DestroySurface destroys a surface.
func (i *Instance) DestroySurface(surface hal.Surface) {
	if s, ok := surface.(*Surface); ok && s.handle != vk.NullHandle {
		i.cmds.DestroySurfaceKHR(i.handle, s.handle)
		s.handle = vk.NullHandle
	}
}

// EnumerateAdapters lists physical devices, filtered to those that can
// present to surfaceHint when one is given.
func (i *Instance) EnumerateAdapters(surfaceHint hal.Surface) []hal.ExposedAdapter {
	var count uint32
	if result := i.cmds.EnumeratePhysicalDevices(i.handle, &count, nil); result != vk.Success || count == 0 {
		return nil
	}
	devices := make([]vk.PhysicalDevice, count)
	if result := i.cmds.EnumeratePhysicalDevices(i.handle, &count, &devices[0]); result != vk.Success {
		return nil
	}

	var surface vk.SurfaceKHR
	if s, ok := surfaceHint.(*Surface); ok && s != nil {
		surface = s.handle
	}

	var out []hal.ExposedAdapter
	for _, dev := range devices {
		adapter := newAdapter(i, dev)
		if surface != vk.NullHandle && adapter.graphicsFamily(surface) < 0 {
			continue
		}
		out = append(out, hal.ExposedAdapter{
			Adapter: adapter,
			Info:    adapter.info(),
			Limits:  gputypes.DefaultLimits(),
		})
	}
	return out
}

// Destroy destroys the instance.
func (i *Instance) Destroy() {
	if i.handle != vk.NullHandle {
		i.cmds.DestroyInstance(i.handle)
		i.handle = vk.NullHandle
	}
}

// cstr returns a Go string from a null-terminated byte array.
func cstr(b []byte) string {
	for n := 0; n < len(b); n++ {
		if b[n] == 0 {
			return string(b[:n])
		}
	}
	return string(b)
}
