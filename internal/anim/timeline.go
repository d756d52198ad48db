package anim

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Track animates one scalar property from From to To.
type Track struct {
	Property string
	From     float64
	To       float64
	Set      func(float64)
}

// Spec describes one timeline: its tracks, timing and lifecycle callbacks.
//
// OnStart runs synchronously inside Backend.Play before the first frame is
// applied. OnComplete runs at most once, and only when the timeline reaches its
// end (naturally or through Kill(true)); it never runs for a cancelled
// timeline. Track setters run with the timeline lock held and must not call
// back into the timeline.
type Spec struct {
	// ID is used as the timeline id when set; otherwise one is generated.
	ID         string
	Label      string
	Duration   time.Duration
	Ease       Ease
	Tracks     []Track
	OnStart    func()
	OnComplete func()
}

// Outcome reports how a timeline ended.
type Outcome int

const (
	Pending Outcome = iota
	Completed
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	default:
		return "pending"
	}
}

type timelineState int

const (
	stateRunning timelineState = iota
	stateCompleting
	stateCompleted
	stateCancelled
)

// Timeline is the cancellable, awaitable handle for one running transition.
type Timeline struct {
	id   string
	spec Spec

	mu      sync.Mutex
	elapsed time.Duration
	state   timelineState
	done    chan struct{}
}

func newTimeline(spec Spec) *Timeline {
	id := spec.ID
	if id == "" {
		id = uuid.NewString()
	}
	return &Timeline{
		id:   id,
		spec: spec,
		done: make(chan struct{}),
	}
}

// ID identifies the timeline in traces.
func (t *Timeline) ID() string {
	return t.id
}

// Label returns the descriptive label from the spec.
func (t *Timeline) Label() string {
	return t.spec.Label
}

// Done is closed once the timeline has completed or been cancelled.
func (t *Timeline) Done() <-chan struct{} {
	return t.done
}

// Active reports whether frames are still being applied.
func (t *Timeline) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == stateRunning
}

// Outcome reports Pending until the timeline settles.
func (t *Timeline) Outcome() Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state {
	case stateCompleted:
		return Completed
	case stateCancelled:
		return Cancelled
	default:
		return Pending
	}
}

// Progress returns the linear (un-eased) progress in [0,1].
func (t *Timeline) Progress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progressLocked()
}

func (t *Timeline) progressLocked() float64 {
	switch t.state {
	case stateCompleting, stateCompleted:
		return 1
	}
	if t.spec.Duration <= 0 {
		return 0
	}
	p := float64(t.elapsed) / float64(t.spec.Duration)
	if p > 1 {
		return 1
	}
	return p
}

// Wait blocks until the timeline settles or ctx is done.
func (t *Timeline) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Kill stops the timeline. With complete set the end values are applied and
// OnComplete runs before Kill returns; otherwise the timeline is cancelled in
// place and OnComplete never runs. Killing a settled timeline is a no-op.
// Kill returns only after any frame being applied concurrently has finished.
func (t *Timeline) Kill(complete bool) {
	t.mu.Lock()
	if t.state != stateRunning {
		t.mu.Unlock()
		return
	}
	if complete {
		t.applyLocked(1)
		t.state = stateCompleting
		t.mu.Unlock()
		t.finish()
		return
	}
	t.state = stateCancelled
	close(t.done)
	t.mu.Unlock()
}

func (t *Timeline) begin() {
	if t.spec.OnStart != nil {
		t.spec.OnStart()
	}
	t.mu.Lock()
	if t.state != stateRunning {
		t.mu.Unlock()
		return
	}
	if t.spec.Duration <= 0 {
		t.applyLocked(1)
		t.state = stateCompleting
		t.mu.Unlock()
		t.finish()
		return
	}
	t.applyLocked(0)
	t.mu.Unlock()
}

// step advances the timeline by dt and reports whether it has settled.
func (t *Timeline) step(dt time.Duration) bool {
	t.mu.Lock()
	if t.state != stateRunning {
		t.mu.Unlock()
		return true
	}
	t.elapsed += dt
	p := t.progressLocked()
	t.applyLocked(t.spec.Ease.Apply(p))
	if p < 1 {
		t.mu.Unlock()
		return false
	}
	t.state = stateCompleting
	t.mu.Unlock()
	t.finish()
	return true
}

func (t *Timeline) applyLocked(eased float64) {
	for _, track := range t.spec.Tracks {
		if track.Set == nil {
			continue
		}
		if eased == 1 {
			track.Set(track.To)
			continue
		}
		track.Set(track.From + (track.To-track.From)*eased)
	}
}

func (t *Timeline) finish() {
	if t.spec.OnComplete != nil {
		t.spec.OnComplete()
	}
	t.mu.Lock()
	t.state = stateCompleted
	close(t.done)
	t.mu.Unlock()
}
