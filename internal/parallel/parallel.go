// Package parallel provides the goroutine fan-out primitives the execution
// spaces are built on.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64, // Typical cache line aware chunk.
	}
}

// Workers returns the effective number of workers, at least 1.
func (c Config) Workers() int {
	if !c.Enabled || c.NumWorkers < 1 {
		return 1
	}
	return c.NumWorkers
}

// ForRange splits [0, n) into contiguous chunks and executes f(lo, hi) for
// each chunk, returning once every chunk has finished.
// Falls back to a single inline call if parallelism is disabled or n is too small.
func ForRange(n int, f func(lo, hi int), cfg Config) {
	if n <= 0 {
		return
	}
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < cfg.MinChunkSize {
		f(0, n)
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			f(s, e)
		}(start, end)
	}
	wg.Wait()
}

// Group runs f(rank) for rank in [0, size) on size goroutines at once and
// waits for all of them. Unlike ForRange it never serializes, so the goroutines
// may synchronize with each other through a Barrier.
func Group(size int, f func(rank int)) {
	if size == 1 {
		f(0)
		return
	}

	var wg sync.WaitGroup
	wg.Add(size)
	for r := 0; r < size; r++ {
		go func(rank int) {
			defer wg.Done()
			f(rank)
		}(r)
	}
	wg.Wait()
}
