package anim

import (
	"context"
	"sync"
	"time"
)

// Backend starts timelines. Play must invoke Spec.OnStart before returning.
type Backend interface {
	Play(spec Spec) *Timeline
}

// maxFrameStep caps how far a single Advance can move timelines, so a stalled
// host does not make every running transition jump to its end.
const maxFrameStep = 100 * time.Millisecond

// Engine is a frame-driven Backend. Hosts either call Advance from their own
// frame loop or let Run drive it from a ticker.
type Engine struct {
	mu     sync.Mutex
	active []*Timeline
	last   time.Time
}

// NewEngine constructs an idle engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Play implements Backend.
func (e *Engine) Play(spec Spec) *Timeline {
	tl := newTimeline(spec)
	tl.begin()
	if !tl.Active() {
		return tl
	}
	e.mu.Lock()
	e.active = append(e.active, tl)
	e.mu.Unlock()
	return tl
}

// Pending reports the number of timelines still registered with the engine.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.active)
}

// Advance moves every timeline forward by the wall time since the previous
// call. The first call after an idle period only records the timestamp.
func (e *Engine) Advance(now time.Time) int {
	e.mu.Lock()
	if len(e.active) == 0 {
		e.last = time.Time{}
		e.mu.Unlock()
		return 0
	}
	last := e.last
	e.last = now
	pending := len(e.active)
	e.mu.Unlock()
	if last.IsZero() {
		return pending
	}
	dt := now.Sub(last)
	if dt < 0 {
		dt = 0
	}
	if dt > maxFrameStep {
		dt = maxFrameStep
	}
	return e.Step(dt)
}

// Step advances every running timeline by dt and returns how many remain.
func (e *Engine) Step(dt time.Duration) int {
	e.mu.Lock()
	running := make([]*Timeline, len(e.active))
	copy(running, e.active)
	e.mu.Unlock()

	for _, tl := range running {
		tl.step(dt)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.active[:0]
	for _, tl := range e.active {
		if tl.Active() {
			kept = append(kept, tl)
		}
	}
	for i := len(kept); i < len(e.active); i++ {
		e.active[i] = nil
	}
	e.active = kept
	return len(e.active)
}

// Run drives the engine from a ticker until ctx is cancelled.
func (e *Engine) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second / 60
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			e.Advance(now)
		}
	}
}

// Instant is a Backend whose timelines start and complete inside Play.
type Instant struct{}

// Play implements Backend.
func (Instant) Play(spec Spec) *Timeline {
	tl := newTimeline(spec)
	tl.begin()
	tl.Kill(true)
	return tl
}
