// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package forge

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/hal"
)

// InitOptions configures Initialize.
type InitOptions struct {
	// AppName is reported to the driver.
	AppName string

	// Backend selects a specific backend variant. Zero tries Vulkan
	// first, then whatever else is registered.
	Backend gputypes.Backend

	// EnableValidation attaches the backend's validation layer.
	EnableValidation bool

	// InstanceExtensions come from the Window collaborator.
	InstanceExtensions []string

	// DeviceExtensions come from the Window collaborator.
	DeviceExtensions []string

	// DisplayHandle and WindowHandle (from the Window's SurfaceHandles),
	// when non-zero, create a surface so adapter enumeration can filter
	// on presentability.
	DisplayHandle uintptr
	WindowHandle  uintptr
}

// System bundles everything Initialize opens.
type System struct {
	Instance hal.Instance
	Adapter  hal.Adapter
	Surface  hal.Surface
	Device   *Device
}

// Initialize selects a backend, opens an instance, picks the first
// usable adapter and opens a device on it.
func Initialize(opts *InitOptions) (*System, error) {
	backend, err := selectBackend(opts.Backend)
	if err != nil {
		return nil, err
	}

	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{
		AppName:            opts.AppName,
		EnableValidation:   opts.EnableValidation,
		RequiredExtensions: opts.InstanceExtensions,
	})
	if err != nil {
		return nil, fmt.Errorf("forge: create instance: %w", err)
	}

	var surface hal.Surface
	if opts.WindowHandle != 0 || opts.DisplayHandle != 0 {
		surface, err = instance.CreateSurface(opts.DisplayHandle, opts.WindowHandle)
		if err != nil {
			instance.Destroy()
			return nil, fmt.Errorf("forge: create surface: %w", err)
		}
	}

	adapters := instance.EnumerateAdapters(surface)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("forge: no usable adapter")
	}
	exposed := adapters[0]

	opened, err := exposed.Adapter.Open(&hal.DeviceDescriptor{
		RequiredExtensions: opts.DeviceExtensions,
	})
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("forge: open device: %w", err)
	}

	hal.Logger().Info("device opened",
		slog.String("adapter", exposed.Info.Name),
		slog.String("driver", exposed.Info.Driver))

	return &System{
		Instance: instance,
		Adapter:  exposed.Adapter,
		Surface:  surface,
		Device:   NewDevice(opened.Device, opened.Queue),
	}, nil
}

func selectBackend(variant gputypes.Backend) (hal.Backend, error) {
	if variant != 0 {
		b, ok := hal.GetBackend(variant)
		if !ok {
			return nil, hal.ErrBackendNotFound
		}
		return b, nil
	}
	if b, ok := hal.GetBackend(gputypes.BackendVulkan); ok {
		return b, nil
	}
	for _, v := range hal.AvailableBackends() {
		if b, ok := hal.GetBackend(v); ok {
			return b, nil
		}
	}
	return nil, hal.ErrBackendNotFound
}
