package testutil

import (
	"fmt"
	"sync"

	"github.com/atomicstack/paneldeck/internal/layout"
	"github.com/atomicstack/paneldeck/internal/window"
)

// HookRecorder collects window lifecycle hooks as "name:event" strings in the
// order they fire, across any number of windows.
type HookRecorder struct {
	mu     sync.Mutex
	events []string
	starts map[string][]layout.Vec2
}

func NewHookRecorder() *HookRecorder {
	return &HookRecorder{starts: make(map[string][]layout.Vec2)}
}

// Hooks returns hooks that record into r.
func (r *HookRecorder) Hooks() window.Hooks {
	return window.Hooks{
		OnStart: func(w *window.Window) {
			st := w.Snapshot()
			r.mu.Lock()
			r.starts[w.Name()] = append(r.starts[w.Name()], st.Transform.Position)
			r.mu.Unlock()
			r.record(w.Name(), "start")
		},
		OnOpened: func(w *window.Window) { r.record(w.Name(), "opened") },
		OnClosed: func(w *window.Window) { r.record(w.Name(), "closed") },
	}
}

func (r *HookRecorder) record(name, event string) {
	r.mu.Lock()
	r.events = append(r.events, fmt.Sprintf("%s:%s", name, event))
	r.mu.Unlock()
}

// Events returns a copy of everything recorded so far.
func (r *HookRecorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

// Count reports how often event fired for the named window.
func (r *HookRecorder) Count(name, event string) int {
	want := fmt.Sprintf("%s:%s", name, event)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == want {
			n++
		}
	}
	return n
}

// StartPositions returns where the named window stood each time a transition
// started.
func (r *HookRecorder) StartPositions(name string) []layout.Vec2 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]layout.Vec2, len(r.starts[name]))
	copy(out, r.starts[name])
	return out
}

// Reset forgets everything recorded.
func (r *HookRecorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.starts = make(map[string][]layout.Vec2)
	r.mu.Unlock()
}
