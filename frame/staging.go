// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package frame

import (
	"errors"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/types"
)

// MaxStagingBufferSize caps each frame's staging buffer.
const MaxStagingBufferSize = 64 * 1024 * 1024

// ErrStagingFull is returned when a submission does not fit in the
// staging buffer's remaining space this frame.
var ErrStagingFull = errors.New("frame: staging buffer exhausted")

// StagingSubmit describes where one submission landed.
type StagingSubmit struct {
	Offset uint64
	Size   uint64
}

// StagingBuffer is a host-visible sequential-write buffer with a
// per-frame cursor. Data is appended front to back; the cursor resets
// when the frame resets.
type StagingBuffer struct {
	device hal.Device
	buffer hal.Buffer
	mapped []byte
	offset uint64
}

// NewStagingBuffer creates and maps a staging buffer of the given
// size.
func NewStagingBuffer(device hal.Device, size uint64) (*StagingBuffer, error) {
	buf, err := device.CreateBuffer(&types.BufferSpec{
		Size:      size,
		Usage:     types.BufferUsageTransferSrc,
		Placement: types.MemoryHostSeqWrite,
	})
	if err != nil {
		return nil, err
	}
	mapped, err := buf.Map()
	if err != nil {
		device.DestroyBuffer(buf)
		return nil, err
	}
	return &StagingBuffer{device: device, buffer: buf, mapped: mapped}, nil
}

// Buffer returns the backing transfer-source buffer.
func (s *StagingBuffer) Buffer() hal.Buffer { return s.buffer }

// Offset returns the current cursor.
func (s *StagingBuffer) Offset() uint64 { return s.offset }

// Submit copies data at the cursor and advances it. A nil data slice
// reserves space without writing.
func (s *StagingBuffer) Submit(data []byte) (StagingSubmit, error) {
	size := uint64(len(data))
	if s.offset+size > s.buffer.Size() {
		return StagingSubmit{}, ErrStagingFull
	}
	if data != nil {
		copy(s.mapped[s.offset:], data)
	}
	sub := StagingSubmit{Offset: s.offset, Size: size}
	s.offset += size
	return sub, nil
}

// Flush makes everything up to the cursor visible to the device.
func (s *StagingBuffer) Flush() error {
	return s.buffer.Flush(0, s.offset)
}

// ResetOffset rewinds the cursor. Called at frame reset, after the
// GPU has consumed the frame's copies.
func (s *StagingBuffer) ResetOffset() {
	s.offset = 0
}

// Destroy unmaps and releases the buffer.
func (s *StagingBuffer) Destroy() {
	s.buffer.Unmap()
	s.device.DestroyBuffer(s.buffer)
}
