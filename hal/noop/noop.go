// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package noop provides a no-operation backend.
//
// Operations run without touching a GPU and succeed unless their input
// is invalid or a test has forced an error (ForceAcquireError). The
// backend keeps
// counters and an operation log that tests (and headless runs) can
// inspect: draws, dispatches, barriers, descriptor writes, presents,
// and a per-texture layout shadow that mirrors what a real backend's
// image layouts would be.
package noop

import (
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/types"
)

// API implements hal.Backend for the noop backend.
type API struct{}

// Variant returns the backend type identifier.
func (API) Variant() gputypes.Backend {
	return gputypes.BackendEmpty
}

// CreateInstance creates a new noop instance. Always succeeds.
func (API) CreateInstance(_ *hal.InstanceDescriptor) (hal.Instance, error) {
	return &Instance{}, nil
}

func init() {
	hal.RegisterBackend(API{})
}

// Instance implements hal.Instance for the noop backend.
type Instance struct{}

// CreateSurface creates a noop surface regardless of handles.
func (i *Instance) CreateSurface(_, _ uintptr) (hal.Surface, error) {
	return &Surface{}, nil
}

// DestroySurface is a no-op.
func (i *Instance) DestroySurface(_ hal.Surface) {}

// EnumerateAdapters returns a single default noop adapter.
func (i *Instance) EnumerateAdapters(_ hal.Surface) []hal.ExposedAdapter {
	return []hal.ExposedAdapter{
		{
			Adapter: &Adapter{},
			Info: gputypes.AdapterInfo{
				Name:       "Noop Adapter",
				Vendor:     "GoGPU",
				DeviceType: gputypes.DeviceTypeOther,
				Driver:     "noop-1.0",
				DriverInfo: "No-operation backend for testing",
				Backend:    gputypes.BackendEmpty,
			},
			Limits: gputypes.DefaultLimits(),
		},
	}
}

// Destroy is a no-op.
func (i *Instance) Destroy() {}

// Surface implements hal.Surface. The current extent defaults to the
// sentinel (caller-chosen); tests install a concrete extent to drive
// the resize path.
type Surface struct {
	mu     sync.Mutex
	extent types.Extent2D
	hasExt bool
}

// SetCurrentExtent makes the surface report a fixed current extent.
func (s *Surface) SetCurrentExtent(extent types.Extent2D) {
	s.mu.Lock()
	s.extent = extent
	s.hasExt = true
	s.mu.Unlock()
}

func (s *Surface) currentExtent() types.Extent2D {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasExt {
		return types.Extent2D{Width: hal.ExtentSentinel, Height: hal.ExtentSentinel}
	}
	return s.extent
}

// Adapter implements hal.Adapter.
type Adapter struct{}

// Open opens a noop device and queue.
func (a *Adapter) Open(_ *hal.DeviceDescriptor) (hal.OpenDevice, error) {
	d := &Device{}
	return hal.OpenDevice{Device: d, Queue: &Queue{device: d}}, nil
}

// SurfaceCapabilities reports the surface's current extent — the
// sentinel unless a test installed one — with fixed min/max bounds.
func (a *Adapter) SurfaceCapabilities(surface hal.Surface) (*hal.SurfaceCapabilities, error) {
	current := types.Extent2D{Width: hal.ExtentSentinel, Height: hal.ExtentSentinel}
	if s, ok := surface.(*Surface); ok && s != nil {
		current = s.currentExtent()
	}
	return &hal.SurfaceCapabilities{
		MinImageCount:  2,
		CurrentExtent:  current,
		MinImageExtent: types.Extent2D{Width: 1, Height: 1},
		MaxImageExtent: types.Extent2D{Width: 16384, Height: 16384},
		Formats:        []types.Format{types.FormatBGRA8UnormSrgb, types.FormatRGBA8UnormSrgb},
	}, nil
}

// Destroy is a no-op.
func (a *Adapter) Destroy() {}
