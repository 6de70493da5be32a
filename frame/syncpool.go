// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package frame

import (
	"time"

	"github.com/gogpu/forge/hal"
)

// SyncPool recycles fences and semaphores across frames.
//
// Semaphores come in two tiers. RequestSemaphore lends a semaphore for
// the current frame; it returns to circulation at Reset.
// RequestSemaphoreWithOwnership transfers the semaphore to the caller:
// the pool forgets it until ReleaseSemaphoreWithOwnership hands it
// back. An ownership semaphore may only be waited on by the
// submission of the frame that requested it; the release pile rejoins
// the pool at Reset and is never handed out before then.
type SyncPool struct {
	device hal.Device

	fences       []hal.Fence
	activeFences int

	semaphores []hal.Semaphore
	activeSems int

	// released holds ownership semaphores waiting for Reset.
	released []hal.Semaphore
}

// NewSyncPool creates an empty pool over a device.
func NewSyncPool(device hal.Device) *SyncPool {
	return &SyncPool{device: device}
}

// RequestFence returns an unsignaled fence, creating one on demand.
func (p *SyncPool) RequestFence() (hal.Fence, error) {
	if p.activeFences < len(p.fences) {
		f := p.fences[p.activeFences]
		p.activeFences++
		return f, nil
	}
	f, err := p.device.CreateFence(false)
	if err != nil {
		return nil, err
	}
	p.fences = append(p.fences, f)
	p.activeFences++
	return f, nil
}

// RequestSemaphore lends a semaphore until the next Reset.
func (p *SyncPool) RequestSemaphore() (hal.Semaphore, error) {
	if p.activeSems < len(p.semaphores) {
		s := p.semaphores[p.activeSems]
		p.activeSems++
		return s, nil
	}
	s, err := p.device.CreateSemaphore()
	if err != nil {
		return nil, err
	}
	p.semaphores = append(p.semaphores, s)
	p.activeSems++
	return s, nil
}

// RequestSemaphoreWithOwnership transfers a semaphore to the caller.
func (p *SyncPool) RequestSemaphoreWithOwnership() (hal.Semaphore, error) {
	if p.activeSems < len(p.semaphores) {
		s := p.semaphores[len(p.semaphores)-1]
		p.semaphores = p.semaphores[:len(p.semaphores)-1]
		return s, nil
	}
	return p.device.CreateSemaphore()
}

// ReleaseSemaphoreWithOwnership returns an owned semaphore to the
// release pile. It rejoins circulation at the next Reset.
func (p *SyncPool) ReleaseSemaphoreWithOwnership(s hal.Semaphore) {
	p.released = append(p.released, s)
}

// WaitForFences blocks until every active fence signals. A negative
// timeout waits without bound.
func (p *SyncPool) WaitForFences(timeout time.Duration) error {
	for _, f := range p.fences[:p.activeFences] {
		if err := f.Wait(timeout); err != nil {
			return err
		}
	}
	return nil
}

// Reset returns every fence to the unsignaled state and every
// semaphore — including the release pile — to circulation.
func (p *SyncPool) Reset() error {
	for _, f := range p.fences[:p.activeFences] {
		if err := f.Reset(); err != nil {
			return err
		}
	}
	p.activeFences = 0
	p.semaphores = append(p.semaphores, p.released...)
	p.released = p.released[:0]
	p.activeSems = 0
	return nil
}

// Destroy releases every pooled object.
func (p *SyncPool) Destroy() {
	for _, f := range p.fences {
		p.device.DestroyFence(f)
	}
	p.fences = nil
	for _, s := range p.semaphores {
		p.device.DestroySemaphore(s)
	}
	p.semaphores = nil
	for _, s := range p.released {
		p.device.DestroySemaphore(s)
	}
	p.released = nil
	p.activeFences = 0
	p.activeSems = 0
}
