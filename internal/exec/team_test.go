package exec

import (
	"sync"
	"sync/atomic"
	"testing"
	"unsafe"

	"github.com/born-ml/stdalgo/internal/profiling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsafePointer(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

func TestTeamPolicyValidate(t *testing.T) {
	require.NoError(t, TeamPolicy{LeagueSize: 1, TeamSize: 1}.Validate())
	require.ErrorIs(t, TeamPolicy{LeagueSize: 0, TeamSize: 1}.Validate(), ErrInvalidPolicy)
	require.ErrorIs(t, TeamPolicy{LeagueSize: 1, TeamSize: 0}.Validate(), ErrInvalidPolicy)
	require.ErrorIs(t, TeamPolicy{LeagueSize: 1, TeamSize: 1, ScratchSize: -1}.Validate(), ErrInvalidPolicy)

	err := ParallelTeams("bad", newMockSpace(1), TeamPolicy{}, func(*TeamMember) {})
	require.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestParallelTeamsRanks(t *testing.T) {
	const league, size = 5, 3
	var (
		mu   sync.Mutex
		seen = make(map[[2]int]bool)
	)

	err := ParallelTeams("ranks", newMockSpace(4), TeamPolicy{LeagueSize: league, TeamSize: size, ScratchSize: 64},
		func(m *TeamMember) {
			assert.Equal(t, league, m.LeagueSize())
			assert.Equal(t, size, m.TeamSize())
			assert.Len(t, m.TeamScratch(), 64)
			assert.Equal(t, 64, m.ScratchLimit())

			mu.Lock()
			seen[[2]int{m.LeagueRank(), m.TeamRank()}] = true
			mu.Unlock()
		})
	require.NoError(t, err)
	assert.Len(t, seen, league*size)
}

func TestTeamThreadRangeCoversOnce(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 64} {
		hits := make([]int32, n)
		err := ParallelTeams("range", newMockSpace(1), TeamPolicy{LeagueSize: 1, TeamSize: 4}, func(m *TeamMember) {
			m.TeamThreadRange(n, func(i int) { atomic.AddInt32(&hits[i], 1) })
		})
		require.NoError(t, err)
		for i, h := range hits {
			require.Equal(t, int32(1), h, "n=%d index %d", n, i)
		}
	}
}

func TestTeamScratchIsShared(t *testing.T) {
	err := ParallelTeams("share", newMockSpace(2), TeamPolicy{LeagueSize: 4, TeamSize: 4, ScratchSize: 4}, func(m *TeamMember) {
		s := m.TeamScratch()
		s[m.TeamRank()] = byte(m.LeagueRank()*10 + m.TeamRank())
		m.TeamBarrier()
		for r := 0; r < m.TeamSize(); r++ {
			assert.Equal(t, byte(m.LeagueRank()*10+r), s[r])
		}
	})
	require.NoError(t, err)
}

func TestTeamLaunchOverwritesTeamScratch(t *testing.T) {
	err := ParallelTeams("reuse", newMockSpace(1), TeamPolicy{LeagueSize: 2, TeamSize: 2, ScratchSize: 16}, func(m *TeamMember) {
		s := m.TeamScratch()
		if m.TeamRank() == 0 {
			for i := range s {
				s[i] = 0xAA
			}
		}
		m.TeamBarrier()

		var bound []byte
		assert.NoError(t, m.Launch("fill", Work{
			N:            8,
			ScratchBytes: 8,
			Bind:         func(b []byte) { bound = b },
			Phases: []func(lo, hi int){func(lo, hi int) {
				for i := lo; i < hi; i++ {
					bound[i] = byte(i)
				}
			}},
		}))

		assert.Equal(t, unsafePointer(s), unsafePointer(bound), "launch scratch is the team scratch")
		for i := 0; i < 8; i++ {
			assert.Equal(t, byte(i), s[i])
		}
		assert.Equal(t, byte(0xAA), s[8], "bytes past the launch scratch are untouched")
	})
	require.NoError(t, err)
}

func TestTeamLaunchPhasesAndScratch(t *testing.T) {
	profiling.Reset()
	t.Cleanup(profiling.Reset)
	rec := profiling.NewRecorder()
	profiling.Register(rec)

	tests := []struct {
		name        string
		scratchSize int
	}{
		{"team scratch", 256},
		{"pooled fallback", 0},
		{"scratch too small", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec.Reset()
			const league, size, n = 3, 4, 32

			out := make([][]int64, league)
			for l := range out {
				out[l] = make([]int64, n)
			}

			err := ParallelTeams("outer", newMockSpace(2), TeamPolicy{LeagueSize: league, TeamSize: size, ScratchSize: tt.scratchSize},
				func(m *TeamMember) {
					var buf []int64
					dst := out[m.LeagueRank()]
					err := m.Launch("inner", Work{
						N:            n,
						ScratchBytes: n * 8,
						Bind: func(b []byte) {
							buf = unsafe.Slice((*int64)(unsafe.Pointer(unsafe.SliceData(b))), n)
						},
						Phases: []func(lo, hi int){
							func(lo, hi int) {
								for i := lo; i < hi; i++ {
									buf[i] = int64(m.LeagueRank()*1000 + i)
								}
							},
							func(lo, hi int) {
								for i := lo; i < hi; i++ {
									dst[i] = buf[n-1-i]
								}
							},
						},
					})
					assert.NoError(t, err)
				})
			require.NoError(t, err)

			for l := range out {
				for i := range out[l] {
					require.Equal(t, int64(l*1000+n-1-i), out[l][i])
				}
			}
			assert.Len(t, rec.Labels(profiling.KindRegion), league, "one region per team")
			assert.Equal(t, []string{"outer"}, rec.Labels(profiling.KindParallelTeams))
		})
	}
}

func TestTeamLaunchWithoutPhases(t *testing.T) {
	err := ParallelTeams("empty", newMockSpace(1), TeamPolicy{LeagueSize: 2, TeamSize: 3}, func(m *TeamMember) {
		bound := false
		assert.NoError(t, m.Launch("noop", Work{N: 0, ScratchBytes: 16, Bind: func([]byte) { bound = true }}))
		assert.True(t, bound)
	})
	require.NoError(t, err)
}

func TestParallelTeamsPropagatesSpaceErrors(t *testing.T) {
	s := newMockSpace(1)
	s.close(t)

	ran := false
	err := ParallelTeams("closed", s, TeamPolicy{LeagueSize: 1, TeamSize: 1}, func(*TeamMember) { ran = true })
	require.ErrorIs(t, err, ErrSpaceClosed)
	assert.False(t, ran)
}
