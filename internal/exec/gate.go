package exec

import "sync"

// Gate counts the launches in flight on a space so that Fence and Close
// can wait for them. Enter never blocks, so a launch may start another
// launch on the same space from inside one of its phases. The zero value
// is an open gate. A Gate must not be copied after first use.
type Gate struct {
	mu       sync.Mutex
	idle     sync.Cond
	inflight int
	closed   bool
}

// Enter admits one launch. It returns ErrSpaceClosed once the gate has
// been closed; otherwise the caller must call Exit when the launch ends.
func (g *Gate) Enter() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return ErrSpaceClosed
	}
	g.inflight++
	return nil
}

// Exit ends a launch admitted by Enter.
func (g *Gate) Exit() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inflight--
	if g.inflight == 0 {
		g.cond().Broadcast()
	}
}

// Drain waits until no launch is in flight. With closing set the gate
// stops admitting launches before it waits. Draining a closed gate
// returns ErrSpaceClosed.
func (g *Gate) Drain(closing bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return ErrSpaceClosed
	}
	g.closed = closing
	for g.inflight > 0 {
		g.cond().Wait()
	}
	return nil
}

// InFlight returns the number of admitted launches that have not exited.
func (g *Gate) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inflight
}

// cond must be called with mu held.
func (g *Gate) cond() *sync.Cond {
	if g.idle.L == nil {
		g.idle.L = &g.mu
	}
	return &g.idle
}
