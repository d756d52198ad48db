package flow

import "sync"

// guard admits one multi-step operation at a time. Every acquisition gets a
// fresh token; clear invalidates the outstanding token so a late release from
// an interrupted operation cannot undo a forced reset.
type guard struct {
	mu   sync.Mutex
	held bool
	gen  uint64
}

func (g *guard) acquire() (uint64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held {
		return 0, false
	}
	g.held = true
	g.gen++
	return g.gen, true
}

func (g *guard) release(token uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gen == token {
		g.held = false
	}
}

// valid reports whether token still owns the guard.
func (g *guard) valid(token uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.held && g.gen == token
}

func (g *guard) clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.held = false
	g.gen++
}

func (g *guard) busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.held
}
