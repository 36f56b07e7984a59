package exec

import (
	"sync"
	"unsafe"
)

// SizeClass represents the buffer size categories used for pooling.
type SizeClass int

const (
	// SmallScratch for requests < 4KB.
	SmallScratch SizeClass = iota
	// MediumScratch for requests 4KB-1MB.
	MediumScratch
	// LargeScratch for requests > 1MB.
	LargeScratch
)

const (
	smallThreshold  = 4 * 1024    // 4KB
	mediumThreshold = 1024 * 1024 // 1MB
	maxPoolSize     = 64          // Max buffers per category
)

// Pool recycles 8-byte aligned scratch buffers between launches.
// Buffers are categorized by capacity.
type Pool struct {
	mu sync.Mutex

	small  [][]byte
	medium [][]byte
	large  [][]byte

	// Statistics
	allocated uint64
	released  uint64
	hits      uint64
	misses    uint64
}

// PoolStats reports pool usage.
type PoolStats struct {
	Allocated, Released, Hits, Misses uint64
	Pooled                            int
}

// scratch is the process-wide pool used by launches.
var scratch = NewPool()

// Scratch returns the process-wide scratch pool.
func Scratch() *Pool {
	return scratch
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Acquire returns a buffer of exactly size bytes whose
// first byte is 8-byte aligned. The contents are unspecified.
func (p *Pool) Acquire(size int) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	class := p.classify(size)
	pool := p.bucket(class)
	for i, buf := range *pool {
		if cap(buf) >= size {
			*pool = append((*pool)[:i], (*pool)[i+1:]...)
			p.hits++
			return buf[:size]
		}
	}

	p.misses++
	p.allocated++
	return alignedBytes(size)
}

// Release returns a buffer obtained from Acquire to the pool.
// If the pool is full the buffer is left to the garbage collector.
func (p *Pool) Release(buf []byte) {
	if cap(buf) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.released++
	pool := p.bucket(p.classify(cap(buf)))
	if len(*pool) >= maxPoolSize {
		return
	}
	*pool = append(*pool, buf[:cap(buf)])
}

// Clear drops all pooled buffers.
func (p *Pool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.small = nil
	p.medium = nil
	p.large = nil
}

// Stats returns statistics about pool usage.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return PoolStats{
		Allocated: p.allocated,
		Released:  p.released,
		Hits:      p.hits,
		Misses:    p.misses,
		Pooled:    len(p.small) + len(p.medium) + len(p.large),
	}
}

// classify determines the size category for a buffer.
func (p *Pool) classify(size int) SizeClass {
	if size < smallThreshold {
		return SmallScratch
	}
	if size < mediumThreshold {
		return MediumScratch
	}
	return LargeScratch
}

// bucket returns the pool slice for a given category.
func (p *Pool) bucket(class SizeClass) *[][]byte {
	switch class {
	case SmallScratch:
		return &p.small
	case MediumScratch:
		return &p.medium
	default:
		return &p.large
	}
}

// alignedBytes allocates size bytes backed by uint64 words so that any
// Scalar element type can be overlaid on the buffer.
func alignedBytes(size int) []byte {
	if size <= 0 {
		return nil
	}
	words := make([]uint64, (size+7)/8)
	//nolint:gosec // unsafe.Slice for aligned byte view over word storage
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), len(words)*8)[:size]
}
