package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/born-ml/stdalgo/internal/profiling"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTimer(t *testing.T) *KernelTimer {
	t.Helper()
	k, err := Open(filepath.Join(t.TempDir(), "events.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { k.Close() })
	return k
}

func TestKernelTimerRecordsEvents(t *testing.T) {
	profiling.Reset()
	t.Cleanup(profiling.Reset)

	k := openTimer(t)
	profiling.Register(k)

	profiling.End(profiling.Begin(profiling.KindParallelFor, "copy", "CPU", 16), nil)
	profiling.End(profiling.Begin(profiling.KindParallelFor, "copy", "CPU", 16), errors.New("device lost"))
	profiling.End(profiling.Begin(profiling.KindFence, "fence", "CPU", 0), nil)
	require.NoError(t, k.Err())

	ctx := context.Background()
	records, err := k.Events(ctx, "copy")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "parallel_for", records[0].Kind)
	assert.Equal(t, 16, records[0].Size)
	assert.Empty(t, records[0].Error)
	assert.Equal(t, "device lost", records[1].Error)
	assert.WithinDuration(t, time.Now(), records[1].StartedAt, time.Minute)

	latest, err := k.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fence", latest.Label)
}

func TestKernelTimerSummarize(t *testing.T) {
	k := openTimer(t)

	for _, d := range []time.Duration{time.Millisecond, 3 * time.Millisecond} {
		k.End(&profiling.Event{
			ID:       ulid.Make(),
			Kind:     profiling.KindParallelFor,
			Label:    "copy",
			Device:   "CPU",
			Start:    time.Now(),
			Duration: d,
		})
	}
	k.End(&profiling.Event{
		ID:       ulid.Make(),
		Kind:     profiling.KindParallelFor,
		Label:    "copy",
		Device:   "CPU",
		Start:    time.Now(),
		Duration: 2 * time.Millisecond,
		Err:      errors.New("boom"),
	})

	summary, err := k.Summarize(context.Background())
	require.NoError(t, err)
	require.Len(t, summary, 1)

	s := summary[0]
	assert.Equal(t, "copy", s.Label)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 1, s.Failures)
	assert.Equal(t, 2*time.Millisecond, s.Mean)
	assert.Equal(t, 3*time.Millisecond, s.Max)
}

func TestKernelTimerEmpty(t *testing.T) {
	k := openTimer(t)

	_, err := k.Latest(context.Background())
	require.ErrorIs(t, err, ErrNoEvents)

	summary, err := k.Summarize(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summary)
}

func TestKernelTimerRemembersWriteFailures(t *testing.T) {
	k := openTimer(t)
	ev := &profiling.Event{ID: ulid.Make(), Label: "dup", Start: time.Now()}

	k.End(ev)
	require.NoError(t, k.Err())

	k.End(ev)
	require.Error(t, k.Err(), "duplicate primary key must be reported")
}
