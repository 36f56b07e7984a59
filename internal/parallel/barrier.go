package parallel

import "sync"

// Barrier is a reusable rendezvous point for a fixed number of goroutines.
// Every call to Wait blocks until all parties have called it, then the
// barrier resets for the next round.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	parties    int
	waiting    int
	generation uint64
}

// NewBarrier creates a barrier for the given number of parties.
func NewBarrier(parties int) *Barrier {
	if parties < 1 {
		panic("parallel: barrier needs at least one party")
	}
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Parties returns the number of goroutines the barrier waits for.
func (b *Barrier) Parties() int {
	return b.parties
}

// Wait blocks until all parties have reached the barrier.
// Writes made by any party before Wait are visible to every party after it.
func (b *Barrier) Wait() {
	if b.parties == 1 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.generation++
		b.cond.Broadcast()
		return
	}
	for gen == b.generation {
		b.cond.Wait()
	}
}
