//go:build windows

package webgpu

import (
	"fmt"
	"unsafe"

	"github.com/born-ml/stdalgo/internal/exec"
	"github.com/go-webgpu/webgpu/wgpu"
)

// copyAlignment is the granularity of buffer-to-buffer copies.
const copyAlignment = 4

func alignedSize(n int) uint64 {
	//nolint:gosec // G115: n is a non-negative byte length
	return (uint64(n) + copyAlignment - 1) &^ (copyAlignment - 1)
}

// stage round-trips src through device memory.
func (s *Space) stage(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil, exec.ErrSpaceClosed
	}

	size := alignedSize(len(src))
	usage := wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst
	upload := s.createBuffer(src, size, usage)
	defer upload.Release()

	data, err := s.readBuffer(upload, size)
	if err != nil {
		return nil, err
	}
	return data[:len(src)], nil
}

// createBuffer creates a GPU buffer of size bytes holding data.
func (s *Space) createBuffer(data []byte, size uint64, usage wgpu.BufferUsage) *wgpu.Buffer {
	// Create buffer with MappedAtCreation for initial data upload
	buffer := s.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// readBuffer reads data back from a GPU buffer to CPU memory.
// Uses a staging buffer since storage buffers can't be mapped directly.
func (s *Space) readBuffer(srcBuffer *wgpu.Buffer, size uint64) ([]byte, error) {
	stagingUsage := wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst
	stagingBuffer := s.buffers.Acquire(size, stagingUsage)
	defer s.buffers.Release(stagingBuffer, size, stagingUsage)

	encoder := s.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuffer, 0, stagingBuffer, 0, size)
	cmdBuffer := encoder.Finish(nil)
	s.queue.Submit(cmdBuffer)

	err := stagingBuffer.MapAsync(s.device, wgpu.MapModeRead, 0, size)
	if err != nil {
		return nil, fmt.Errorf("failed to map staging buffer: %w", err)
	}

	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)

	stagingBuffer.Unmap()

	return result, nil
}
