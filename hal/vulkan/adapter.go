// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/hal/vulkan/vk"
	"github.com/gogpu/forge/types"
)

// Adapter implements hal.Adapter over one VkPhysicalDevice.
type Adapter struct {
	instance *Instance
	handle   vk.PhysicalDevice

	props    vk.PhysicalDeviceProperties
	memProps vk.PhysicalDeviceMemoryProperties
	families []vk.QueueFamilyProperties
}

func newAdapter(instance *Instance, handle vk.PhysicalDevice) *Adapter {
	a := &Adapter{instance: instance, handle: handle}
	instance.cmds.GetPhysicalDeviceProperties(handle, &a.props)
	instance.cmds.GetPhysicalDeviceMemoryProperties(handle, &a.memProps)

	var count uint32
	instance.cmds.GetPhysicalDeviceQueueFamilyProperties(handle, &count, nil)
	if count > 0 {
		a.families = make([]vk.QueueFamilyProperties, count)
		instance.cmds.GetPhysicalDeviceQueueFamilyProperties(handle, &count, &a.families[0])
	}
	return a
}

func (a *Adapter) info() gputypes.AdapterInfo {
	return gputypes.AdapterInfo{
		Name:       cstr(a.props.DeviceName[:]),
		VendorID:   a.props.VendorID,
		DeviceID:   a.props.DeviceID,
		DeviceType: gputypes.DeviceTypeOther,
		Backend:    gputypes.BackendVulkan,
	}
}

// graphicsFamily returns the first graphics-capable queue family that
// can also present to surface (pass NullHandle to skip the present
// check), or -1.
func (a *Adapter) graphicsFamily(surface vk.SurfaceKHR) int {
	for i, fam := range a.families {
		if fam.QueueFlags&vk.QueueGraphicsBit == 0 {
			continue
		}
		if surface != vk.NullHandle {
			var supported uint32
			result := a.instance.cmds.GetPhysicalDeviceSurfaceSupportKHR(
				a.handle, uint32(i), surface, &supported)
			if result != vk.Success || supported == 0 {
				continue
			}
		}
		return i
	}
	return -1
}

// Open creates the logical device and its graphics queue.
func (a *Adapter) Open(desc *hal.DeviceDescriptor) (hal.OpenDevice, error) {
	family := a.graphicsFamily(vk.NullHandle)
	if family < 0 {
		return hal.OpenDevice{}, resultToError("queue family selection", vk.ErrorInitializationFailed)
	}

	priority := float32(1)
	queueInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: uint32(family),
		QueueCount:       1,
		PQueuePriorities: &priority,
	}

	extensions := desc.RequiredExtensions
	if len(extensions) == 0 {
		extensions = []string{"VK_KHR_swapchain"}
	}
	extPtrs, extBacking := vk.CStringArray(extensions)

	info := vk.DeviceCreateInfo{
		SType:                 vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:  1,
		PQueueCreateInfos:     &queueInfo,
		EnabledExtensionCount: uint32(len(extPtrs)),
	}
	if len(extPtrs) > 0 {
		info.PpEnabledExtensionNames = &extPtrs[0]
	}

	var handle vk.Device
	result := a.instance.cmds.CreateDevice(a.handle, &info, &handle)
	_ = extBacking
	if result != vk.Success {
		return hal.OpenDevice{}, resultToError("vkCreateDevice", result)
	}

	cmds := vk.NewCommands()
	*cmds = *a.instance.cmds
	if err := cmds.LoadDevice(handle); err != nil {
		return hal.OpenDevice{}, err
	}

	var queueHandle vk.Queue
	cmds.GetDeviceQueue(handle, uint32(family), 0, &queueHandle)

	device := &Device{
		adapter: a,
		handle:  handle,
		cmds:    cmds,
	}
	queue := &Queue{
		device: device,
		handle: queueHandle,
		family: uint32(family),
	}
	device.queue = queue
	return hal.OpenDevice{Device: device, Queue: queue}, nil
}

// SurfaceCapabilities queries surface support.
func (a *Adapter) SurfaceCapabilities(surface hal.Surface) (*hal.SurfaceCapabilities, error) {
	s, ok := surface.(*Surface)
	if !ok || s.handle == vk.NullHandle {
		return nil, hal.ErrSurfaceLost
	}

	var caps vk.SurfaceCapabilitiesKHR
	result := a.instance.cmds.GetPhysicalDeviceSurfaceCapabilitiesKHR(a.handle, s.handle, &caps)
	if result != vk.Success {
		return nil, resultToError("surface capabilities", result)
	}

	var count uint32
	a.instance.cmds.GetPhysicalDeviceSurfaceFormatsKHR(a.handle, s.handle, &count, nil)
	var formats []types.Format
	if count > 0 {
		raw := make([]vk.SurfaceFormatKHR, count)
		a.instance.cmds.GetPhysicalDeviceSurfaceFormatsKHR(a.handle, s.handle, &count, &raw[0])
		for _, f := range raw {
			if converted := formatFromVk(f.Format); converted != types.FormatUndefined {
				formats = append(formats, converted)
			}
		}
	}

	return &hal.SurfaceCapabilities{
		MinImageCount:  caps.MinImageCount,
		MaxImageCount:  caps.MaxImageCount,
		CurrentExtent:  types.Extent2D{Width: caps.CurrentExtent.Width, Height: caps.CurrentExtent.Height},
		MinImageExtent: types.Extent2D{Width: caps.MinImageExtent.Width, Height: caps.MinImageExtent.Height},
		MaxImageExtent: types.Extent2D{Width: caps.MaxImageExtent.Width, Height: caps.MaxImageExtent.Height},
		Formats:        formats,
	}, nil
}

// Destroy releases the adapter. Physical devices have no destroy call.
func (a *Adapter) Destroy() {}

// memoryTypeIndex picks a memory type matching the filter and
// properties, falling back to any type in the filter.
func (a *Adapter) memoryTypeIndex(typeBits uint32, wanted vk.MemoryPropertyFlags) (uint32, bool) {
	for i := uint32(0); i < a.memProps.MemoryTypeCount; i++ {
		if typeBits&(1<<i) == 0 {
			continue
		}
		if a.memProps.MemoryTypes[i].PropertyFlags&wanted == wanted {
			return i, true
		}
	}
	for i := uint32(0); i < a.memProps.MemoryTypeCount; i++ {
		if typeBits&(1<<i) != 0 {
			return i, true
		}
	}
	return 0, false
}
