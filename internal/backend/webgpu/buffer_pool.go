//go:build windows

package webgpu

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

// BufferSize represents different buffer size categories for pooling.
type BufferSize int

const (
	// SmallBuffer for staging buffers < 4KB.
	SmallBuffer BufferSize = iota
	// MediumBuffer for staging buffers 4KB-1MB.
	MediumBuffer
	// LargeBuffer for staging buffers > 1MB.
	LargeBuffer
)

const (
	smallThreshold  = 4 * 1024    // 4KB
	mediumThreshold = 1024 * 1024 // 1MB
	maxPoolSize     = 32          // Max buffers per category
)

// pooledBuffer wraps a GPU buffer with metadata.
type pooledBuffer struct {
	buffer *wgpu.Buffer
	size   uint64
	usage  wgpu.BufferUsage
}

// BufferPool manages device buffer reuse across staged copies.
// Buffers are categorized by size and usage flags.
type BufferPool struct {
	device *wgpu.Device

	mu      sync.Mutex
	buckets [3][]*pooledBuffer

	// Statistics
	totalAllocated uint64
	totalReleased  uint64
	poolHits       uint64
	poolMisses     uint64
}

// NewBufferPool creates a new buffer pool for the given device.
func NewBufferPool(device *wgpu.Device) *BufferPool {
	return &BufferPool{device: device}
}

// Acquire gets a buffer from the pool or creates a new one.
// Returns a buffer that matches or exceeds the requested size and usage.
func (p *BufferPool) Acquire(size uint64, usage wgpu.BufferUsage) *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()

	category := categorize(size)
	bucket := p.buckets[category]
	for i, pb := range bucket {
		if pb.size >= size && pb.usage == usage {
			p.buckets[category] = append(bucket[:i], bucket[i+1:]...)
			p.poolHits++
			return pb.buffer
		}
	}

	p.poolMisses++
	p.totalAllocated++
	return p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: usage,
		Size:  size,
	})
}

// Release returns a buffer to the pool for reuse.
// If the pool is full, the buffer is immediately released.
func (p *BufferPool) Release(buffer *wgpu.Buffer, size uint64, usage wgpu.BufferUsage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.totalReleased++
	category := categorize(size)
	if len(p.buckets[category]) >= maxPoolSize {
		buffer.Release()
		return
	}
	p.buckets[category] = append(p.buckets[category], &pooledBuffer{buffer: buffer, size: size, usage: usage})
}

// Clear releases all pooled buffers.
func (p *BufferPool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, bucket := range p.buckets {
		for _, pb := range bucket {
			pb.buffer.Release()
		}
		p.buckets[i] = nil
	}
}

// Stats returns statistics about buffer pool usage.
func (p *BufferPool) Stats() (allocated, released, hits, misses uint64, pooledCount int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, bucket := range p.buckets {
		pooledCount += len(bucket)
	}
	return p.totalAllocated, p.totalReleased, p.poolHits, p.poolMisses, pooledCount
}

// categorize determines the size category for a buffer.
func categorize(size uint64) BufferSize {
	if size < smallThreshold {
		return SmallBuffer
	}
	if size < mediumThreshold {
		return MediumBuffer
	}
	return LargeBuffer
}
