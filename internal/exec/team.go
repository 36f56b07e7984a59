package exec

import (
	"fmt"

	"github.com/born-ml/stdalgo/internal/parallel"
	"github.com/born-ml/stdalgo/internal/profiling"
)

// TeamPolicy describes a league of teams for ParallelTeams.
type TeamPolicy struct {
	LeagueSize  int // Number of teams.
	TeamSize    int // Goroutines per team.
	ScratchSize int // Bytes of shared scratch per team, 0 for none.
}

// Validate checks the policy sizes.
func (p TeamPolicy) Validate() error {
	if p.LeagueSize < 1 || p.TeamSize < 1 || p.ScratchSize < 0 {
		return fmt.Errorf("%w: league %d, team %d, scratch %d",
			ErrInvalidPolicy, p.LeagueSize, p.TeamSize, p.ScratchSize)
	}
	return nil
}

// team is the state shared by the members of one team.
type team struct {
	barrier *parallel.Barrier
	scratch []byte
	shared  []byte // Launch scratch broadcast by rank 0.
}

// TeamMember is the handle each goroutine of a team receives. Algorithms
// called with a TeamMember must be called by every member of the team
// with the same arguments; the members then share the work between them.
type TeamMember struct {
	team       *team
	device     string
	league     int
	leagueSize int
	rank       int
	size       int
}

// Compile-time check that TeamMember is a Handle.
var _ Handle = (*TeamMember)(nil)

// ParallelTeams runs body once per member of every team of the league.
// Teams are distributed over s; members of one team run concurrently and
// may synchronize with TeamBarrier. Teams never synchronize with each other.
func ParallelTeams(label string, s Space, p TeamPolicy, body func(m *TeamMember)) error {
	if err := p.Validate(); err != nil {
		return err
	}

	ev := profiling.Begin(profiling.KindParallelTeams, label, s.Name(), p.LeagueSize*p.TeamSize)
	err := s.RunRange(p.LeagueSize, func(lo, hi int) {
		for league := lo; league < hi; league++ {
			runTeam(s.Name(), p, league, body)
		}
	})
	profiling.End(ev, err)
	return err
}

func runTeam(device string, p TeamPolicy, league int, body func(m *TeamMember)) {
	t := &team{barrier: parallel.NewBarrier(p.TeamSize)}
	if p.ScratchSize > 0 {
		t.scratch = scratch.Acquire(p.ScratchSize)
		defer scratch.Release(t.scratch)
	}

	parallel.Group(p.TeamSize, func(rank int) {
		body(&TeamMember{
			team:       t,
			device:     device,
			league:     league,
			leagueSize: p.LeagueSize,
			rank:       rank,
			size:       p.TeamSize,
		})
	})
}

// LeagueRank returns the index of the member's team.
func (m *TeamMember) LeagueRank() int { return m.league }

// LeagueSize returns the number of teams.
func (m *TeamMember) LeagueSize() int { return m.leagueSize }

// TeamRank returns the member's index within its team.
func (m *TeamMember) TeamRank() int { return m.rank }

// TeamSize returns the number of members in the team.
func (m *TeamMember) TeamSize() int { return m.size }

// TeamBarrier blocks until every member of the team has reached it.
func (m *TeamMember) TeamBarrier() { m.team.barrier.Wait() }

// TeamScratch returns the team's shared scratch, nil if the policy had none.
// Algorithms called with a TeamMember handle use this buffer as their
// launch scratch and may overwrite its contents.
func (m *TeamMember) TeamScratch() []byte { return m.team.scratch }

// ScratchLimit implements Handle.
func (m *TeamMember) ScratchLimit() int { return len(m.team.scratch) }

// TeamThreadRange runs body for this member's share of [0, n).
// Shares are contiguous and together cover [0, n) exactly once.
func (m *TeamMember) TeamThreadRange(n int, body func(i int)) {
	lo, hi := m.share(n)
	for i := lo; i < hi; i++ {
		body(i)
	}
}

func (m *TeamMember) share(n int) (lo, hi int) {
	return m.rank * n / m.size, (m.rank + 1) * n / m.size
}

// Launch implements Handle for one team. Every member runs its share of
// each phase and the team synchronizes after every phase, so the work is
// complete for all members when Launch returns. Team rank 0 reports label
// to the profiling hub as a region.
func (m *TeamMember) Launch(label string, w Work) error {
	if m.rank == 0 {
		ev := profiling.Begin(profiling.KindRegion, label, m.device, w.N)
		defer profiling.End(ev, nil)
	}

	pooled := false
	if w.ScratchBytes > 0 {
		buf := m.team.scratch
		if len(buf) < w.ScratchBytes {
			if m.rank == 0 {
				m.team.shared = scratch.Acquire(w.ScratchBytes)
			}
			m.TeamBarrier()
			buf = m.team.shared
			pooled = true
		}
		w.Bind(buf[:w.ScratchBytes])
	}

	lo, hi := m.share(w.N)
	for _, phase := range w.Phases {
		if lo < hi {
			phase(lo, hi)
		}
		m.TeamBarrier()
	}

	if pooled && len(w.Phases) == 0 {
		m.TeamBarrier()
	}
	if pooled && m.rank == 0 {
		scratch.Release(m.team.shared)
		m.team.shared = nil
	}
	return nil
}
