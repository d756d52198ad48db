package flow

import (
	"context"
	"fmt"
	"sync"

	"github.com/atomicstack/paneldeck/internal/logging/events"
	"github.com/atomicstack/paneldeck/internal/window"
)

// Strategy is a navigation policy over a fixed set of windows. At most one
// multi-step operation runs at a time; requests arriving while one is in
// flight are rejected with ErrTransitionInProgress and have no effect.
type Strategy interface {
	Kind() Kind
	AllWindows() []*window.Window
	CurrentWindow() *window.Window
	ActiveCount() int
	AllowWrap() bool
	SetAllowWrap(bool)
	Busy() bool

	// Add appends w to the navigable set; Forget removes it.
	Add(w *window.Window) bool
	Forget(w *window.Window) bool

	OpenWindow(ctx context.Context, w *window.Window, animated, reversed bool) error
	CloseCurrentWindow(ctx context.Context, animated bool) error
	CloseAllInstantly()
	NextWindow(ctx context.Context, animated bool) error
	PreviousWindow(ctx context.Context, animated bool) error
}

// New builds the strategy for kind.
func New(kind Kind, allowWrap bool) (Strategy, error) {
	switch kind {
	case KindStack:
		return NewStack(allowWrap), nil
	case KindCarousel:
		return NewCarousel(allowWrap), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
}

// base holds the state shared by both policies. mu guards the window list,
// the wrap flag and the policy's own position fields; it is never held while
// a window transition runs.
type base struct {
	kind      Kind
	mu        sync.Mutex
	windows   []*window.Window
	allowWrap bool
	guard     guard
}

func (b *base) Kind() Kind {
	return b.kind
}

func (b *base) AllWindows() []*window.Window {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*window.Window, len(b.windows))
	copy(out, b.windows)
	return out
}

func (b *base) AllowWrap() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.allowWrap
}

func (b *base) SetAllowWrap(allow bool) {
	b.mu.Lock()
	b.allowWrap = allow
	b.mu.Unlock()
}

func (b *base) Busy() bool {
	return b.guard.busy()
}

func (b *base) addLocked(w *window.Window) bool {
	if w == nil || b.indexLocked(w) >= 0 {
		return false
	}
	b.windows = append(b.windows, w)
	return true
}

// forgetLocked removes w and returns its former index, or -1.
func (b *base) forgetLocked(w *window.Window) int {
	idx := b.indexLocked(w)
	if idx < 0 {
		return -1
	}
	b.windows = append(b.windows[:idx], b.windows[idx+1:]...)
	return idx
}

func (b *base) indexLocked(w *window.Window) int {
	for i, candidate := range b.windows {
		if candidate == w {
			return i
		}
	}
	return -1
}

// begin acquires the guard for op or reports the rejection.
func (b *base) begin(op string) (uint64, error) {
	token, ok := b.guard.acquire()
	if !ok {
		return 0, b.reject(op, ErrTransitionInProgress)
	}
	return token, nil
}

func (b *base) reject(op string, err error) error {
	events.Flow.Reject(string(b.kind), op, err)
	return err
}

// validate checks that w can be navigated to and returns its index.
func (b *base) validate(op string, w *window.Window) (int, error) {
	if w == nil {
		return -1, b.reject(op, ErrNilWindow)
	}
	b.mu.Lock()
	idx := b.indexLocked(w)
	b.mu.Unlock()
	if idx < 0 {
		return -1, b.reject(op, fmt.Errorf("%q: %w", w.Name(), ErrUnknownWindow))
	}
	return idx, nil
}

// step computes the neighbour of from in direction delta over n windows.
// An index of -1 means nothing is current.
func step(from, delta, n int, wrap bool) (int, bool) {
	if from < 0 && delta < 0 {
		if !wrap {
			return from, false
		}
		return n - 1, true
	}
	next := from + delta
	if next >= 0 && next < n {
		return next, true
	}
	if !wrap {
		return from, false
	}
	return ((next % n) + n) % n, true
}

// closeAll forces every window closed without animation. The guard is
// cleared first so a waiting operation sees it lost ownership as soon as its
// window is cancelled.
func (b *base) closeAll(reset func()) {
	b.mu.Lock()
	b.guard.clear()
	reset()
	windows := make([]*window.Window, len(b.windows))
	copy(windows, b.windows)
	b.mu.Unlock()

	for _, w := range windows {
		w.CloseNow()
	}
	events.Flow.CloseAll(string(b.kind), len(windows))
}
