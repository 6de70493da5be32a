// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"time"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/hal/vulkan/vk"
	"github.com/gogpu/forge/types"
)

// Swapchain implements hal.Swapchain.
type Swapchain struct {
	device *Device
	handle vk.SwapchainKHR
	format types.Format
	extent types.Extent2D
	images []*Texture
}

// CreateSwapchain builds a swapchain for the surface. The old
// swapchain, when present, is chained for resource reuse and left for
// the caller to destroy.
func (d *Device) CreateSwapchain(surface hal.Surface, desc *hal.SwapchainDescriptor) (hal.Swapchain, error) {
	s, ok := surface.(*Surface)
	if !ok || s.handle == vk.NullHandle {
		return nil, hal.ErrSurfaceLost
	}

	caps, err := d.adapter.SurfaceCapabilities(surface)
	if err != nil {
		return nil, err
	}

	format := desc.Format
	if format == types.FormatUndefined {
		if len(caps.Formats) > 0 {
			format = caps.Formats[0]
		} else {
			format = types.FormatBGRA8UnormSrgb
		}
	}

	extent := desc.Extent
	if caps.CurrentExtent.Width != hal.ExtentSentinel {
		extent = caps.CurrentExtent
	}

	imageCount := desc.ImageCount
	if imageCount == 0 {
		imageCount = caps.MinImageCount + 1
	}
	if caps.MaxImageCount > 0 && imageCount > caps.MaxImageCount {
		imageCount = caps.MaxImageCount
	}

	presentMode := vk.PresentModeFifoKHR
	if !desc.VSync {
		presentMode = vk.PresentModeImmediateKHR
	}

	var oldSwapchain vk.SwapchainKHR
	if old, ok := desc.OldSwapchain.(*Swapchain); ok && old != nil {
		oldSwapchain = old.handle
	}

	info := vk.SwapchainCreateInfoKHR{
		SType:            vk.StructureTypeSwapchainCreateInfoKHR,
		Surface:          s.handle,
		MinImageCount:    imageCount,
		ImageFormat:      formatToVk(format),
		ImageColorSpace:  0, // VK_COLOR_SPACE_SRGB_NONLINEAR_KHR
		ImageExtent:      vk.Extent2D{Width: extent.Width, Height: extent.Height},
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageColorAttachmentBit | vk.ImageUsageTransferDstBit,
		PreTransform:     1, // VK_SURFACE_TRANSFORM_IDENTITY_BIT_KHR
		CompositeAlpha:   vk.CompositeAlphaOpaqueBitKHR,
		PresentMode:      presentMode,
		Clipped:          1,
		OldSwapchain:     oldSwapchain,
	}

	var handle vk.SwapchainKHR
	if result := d.cmds.CreateSwapchainKHR(d.handle, &info, &handle); result != vk.Success {
		return nil, resultToError("vkCreateSwapchainKHR", result)
	}

	sc := &Swapchain{device: d, handle: handle, format: format, extent: extent}
	if err := sc.fetchImages(); err != nil {
		d.cmds.DestroySwapchainKHR(d.handle, handle)
		return nil, err
	}
	return sc, nil
}

func (s *Swapchain) fetchImages() error {
	var count uint32
	if result := s.device.cmds.GetSwapchainImagesKHR(s.device.handle, s.handle, &count, nil); result != vk.Success {
		return resultToError("vkGetSwapchainImagesKHR", result)
	}
	raw := make([]vk.Image, count)
	if result := s.device.cmds.GetSwapchainImagesKHR(s.device.handle, s.handle, &count, &raw[0]); result != vk.Success {
		return resultToError("vkGetSwapchainImagesKHR", result)
	}

	s.images = make([]*Texture, count)
	for i, img := range raw {
		tex := &Texture{
			device: s.device,
			handle: img,
			spec: types.TextureSpec{
				Type:        types.Texture2D,
				Format:      s.format,
				Extent:      types.Extent3D{Width: s.extent.Width, Height: s.extent.Height, Depth: 1},
				ArrayLayers: 1,
				MipLevels:   1,
				Samples:     types.Samples1,
				Usage:       types.TextureUsageColorAttachment | types.TextureUsageTransferDst,
			},
			layout:         vk.ImageLayoutUndefined,
			swapchainOwned: true,
		}
		view, err := s.device.createView(tex, 0, vk.RemainingArrayLayers)
		if err != nil {
			return err
		}
		tex.view = view
		s.images[i] = tex
	}
	return nil
}

// DestroySwapchain destroys the swapchain and its image views.
func (d *Device) DestroySwapchain(sc hal.Swapchain) {
	s, ok := sc.(*Swapchain)
	if !ok || s.handle == vk.NullHandle {
		return
	}
	for _, img := range s.images {
		d.DestroyTexture(img)
	}
	s.images = nil
	d.cmds.DestroySwapchainKHR(d.handle, s.handle)
	s.handle = vk.NullHandle
}

// Format returns the swapchain format.
func (s *Swapchain) Format() types.Format { return s.format }

// Extent returns the swapchain extent.
func (s *Swapchain) Extent() types.Extent2D { return s.extent }

// ImageCount returns the number of images.
func (s *Swapchain) ImageCount() uint32 { return uint32(len(s.images)) }

// Image returns the i-th swapchain image.
func (s *Swapchain) Image(i uint32) hal.Texture { return s.images[i] }

// Acquire acquires the next image.
func (s *Swapchain) Acquire(sem hal.Semaphore, timeout time.Duration) (uint32, error) {
	ns := ^uint64(0)
	if timeout >= 0 {
		ns = uint64(timeout.Nanoseconds())
	}

	var semHandle vk.Semaphore
	if vkSem, ok := sem.(*Semaphore); ok && vkSem != nil {
		semHandle = vkSem.handle
	}

	var index uint32
	result := s.device.cmds.AcquireNextImageKHR(s.device.handle, s.handle, ns, semHandle, 0, &index)
	switch result {
	case vk.Success:
		return index, nil
	case vk.SuboptimalKHR:
		// The image was acquired; report suboptimal so the caller can
		// rebuild at a frame boundary.
		return index, hal.ErrSuboptimal
	}
	return 0, resultToError("vkAcquireNextImageKHR", result)
}
