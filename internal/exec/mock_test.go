package exec

import (
	"sync/atomic"
	"testing"

	"github.com/born-ml/stdalgo/internal/parallel"
)

// mockSpace is a minimal Space for testing the launch machinery.
type mockSpace struct {
	cfg    parallel.Config
	gate   Gate
	fences atomic.Int32
}

var _ Space = (*mockSpace)(nil)

func newMockSpace(workers int) *mockSpace {
	return &mockSpace{cfg: parallel.Config{Enabled: workers > 1, NumWorkers: workers, MinChunkSize: 1}}
}

func (s *mockSpace) Name() string     { return "mock" }
func (s *mockSpace) Device() Device   { return CPU }
func (s *mockSpace) Concurrency() int { return s.cfg.Workers() }
func (s *mockSpace) ScratchLimit() int {
	return 0
}

func (s *mockSpace) RunRange(n int, body func(lo, hi int)) error {
	if err := s.gate.Enter(); err != nil {
		return err
	}
	defer s.gate.Exit()
	s.run(n, body)
	return nil
}

func (s *mockSpace) run(n int, body func(lo, hi int)) {
	parallel.ForRange(n, body, s.cfg)
}

func (s *mockSpace) Fence() error {
	if err := s.gate.Drain(false); err != nil {
		return err
	}
	s.fences.Add(1)
	return nil
}

func (s *mockSpace) Launch(label string, w Work) error {
	return LaunchWith(s.Name(), &s.gate, s.run, label, w)
}

func (s *mockSpace) close(t *testing.T) {
	t.Helper()
	if err := s.gate.Drain(true); err != nil {
		t.Fatalf("close mock space: %v", err)
	}
}
