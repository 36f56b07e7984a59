package exec

import (
	"sync/atomic"
	"testing"

	"github.com/born-ml/stdalgo/internal/profiling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceString(t *testing.T) {
	assert.Equal(t, "CPU", CPU.String())
	assert.Equal(t, "WebGPU", WebGPU.String())
	assert.Equal(t, "Unknown", Device(42).String())
}

func TestLaunchRunsPhasesInOrder(t *testing.T) {
	s := newMockSpace(4)
	const n = 1000

	var gathered []int64
	src := make([]int64, n)
	for i := range src {
		src[i] = int64(i)
	}
	dst := make([]int64, n)

	err := s.Launch("phases", Work{
		N:            n,
		ScratchBytes: n * 8,
		Bind: func(b []byte) {
			require.Len(t, b, n*8)
			gathered = make([]int64, n)
		},
		Phases: []func(lo, hi int){
			func(lo, hi int) {
				for i := lo; i < hi; i++ {
					gathered[i] = src[i]
				}
			},
			func(lo, hi int) {
				// Reads slots gathered by other chunks.
				for i := lo; i < hi; i++ {
					dst[i] = gathered[n-1-i]
				}
			},
		},
	})
	require.NoError(t, err)

	for i := range dst {
		require.Equal(t, int64(n-1-i), dst[i])
	}
}

func TestLaunchReportsLabel(t *testing.T) {
	profiling.Reset()
	t.Cleanup(profiling.Reset)
	rec := profiling.NewRecorder()
	profiling.Register(rec)

	s := newMockSpace(2)
	require.NoError(t, s.Launch("my-kernel", Work{N: 3, Phases: []func(lo, hi int){func(int, int) {}}}))
	require.NoError(t, ParallelFor("my-for", s, 5, func(int) {}))
	require.NoError(t, Fence("my-fence", s))

	assert.Equal(t, []string{"my-kernel", "my-for"}, rec.Labels(profiling.KindParallelFor))
	assert.Equal(t, []string{"my-fence"}, rec.Labels(profiling.KindFence))
	assert.Equal(t, int32(1), s.fences.Load())

	events := rec.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, 3, events[0].Size)
	assert.Equal(t, "mock", events[0].Device)
}

func TestLaunchPropagatesSpaceErrors(t *testing.T) {
	profiling.Reset()
	t.Cleanup(profiling.Reset)
	rec := profiling.NewRecorder()
	profiling.Register(rec)

	s := newMockSpace(2)
	s.close(t)

	ran := false
	err := s.Launch("closed", Work{N: 1, Phases: []func(lo, hi int){func(int, int) { ran = true }}})
	require.ErrorIs(t, err, ErrSpaceClosed)
	assert.False(t, ran)

	require.ErrorIs(t, ParallelFor("closed-for", s, 1, func(int) {}), ErrSpaceClosed)
	require.ErrorIs(t, Fence("closed-fence", s), ErrSpaceClosed)

	events := rec.Events()
	require.Len(t, events, 3)
	for _, ev := range events {
		assert.ErrorIs(t, ev.Err, ErrSpaceClosed)
	}
}

func TestParallelForVisitsEveryIndex(t *testing.T) {
	s := newMockSpace(8)
	var sum atomic.Int64
	require.NoError(t, ParallelFor("sum", s, 100, func(i int) { sum.Add(int64(i)) }))
	assert.Equal(t, int64(4950), sum.Load())
}

func TestPoolReuse(t *testing.T) {
	p := NewPool()

	a := p.Acquire(100)
	require.Len(t, a, 100)
	p.Release(a)

	b := p.Acquire(64)
	require.Len(t, b, 64)

	stats := p.Stats()
	assert.Equal(t, uint64(1), stats.Allocated)
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 0, stats.Pooled)

	p.Release(b)
	big := p.Acquire(2 * mediumThreshold)
	require.Len(t, big, 2*mediumThreshold)
	p.Release(big)
	assert.Equal(t, 2, p.Stats().Pooled)

	p.Clear()
	assert.Equal(t, 0, p.Stats().Pooled)
	assert.Nil(t, p.Acquire(0))
}

func TestPoolAlignment(t *testing.T) {
	p := NewPool()
	for _, size := range []int{1, 7, 9, 4096, 5000} {
		buf := p.Acquire(size)
		require.Len(t, buf, size)
		assert.Zero(t, uintptr(unsafePointer(buf))%8, "size %d", size)
	}
}

func TestPoolClassify(t *testing.T) {
	p := NewPool()
	assert.Equal(t, SmallScratch, p.classify(10))
	assert.Equal(t, MediumScratch, p.classify(smallThreshold))
	assert.Equal(t, LargeScratch, p.classify(mediumThreshold))
}
