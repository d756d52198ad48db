package flow

import (
	"context"

	"github.com/atomicstack/paneldeck/internal/logging/events"
	"github.com/atomicstack/paneldeck/internal/window"
)

// Stack keeps a history of opened windows. Closing the top re-opens the one
// beneath it. Next and previous page through all windows in registration
// order starting from the history top, pushing the target.
type Stack struct {
	base
	history *History
	// cursor is the index of the history top in windows, or -1.
	cursor int
}

// NewStack returns an empty stack flow.
func NewStack(allowWrap bool) *Stack {
	return &Stack{
		base:    base{kind: KindStack, allowWrap: allowWrap},
		history: NewHistory(),
		cursor:  -1,
	}
}

// History exposes the open order, bottom to top.
func (s *Stack) History() []*window.Window {
	return s.history.Windows()
}

func (s *Stack) CurrentWindow() *window.Window {
	return s.history.Top()
}

// ActiveCount is the history depth.
func (s *Stack) ActiveCount() int {
	return s.history.Len()
}

func (s *Stack) Add(w *window.Window) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(w)
}

func (s *Stack) Forget(w *window.Window) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forgetLocked(w) < 0 {
		return false
	}
	s.history.Remove(w)
	s.syncCursorLocked()
	return true
}

func (s *Stack) syncCursorLocked() {
	s.cursor = s.indexLocked(s.history.Top())
}

func (s *Stack) OpenWindow(ctx context.Context, w *window.Window, animated, reversed bool) error {
	token, err := s.begin("open")
	if err != nil {
		return err
	}
	defer s.guard.release(token)
	return s.open(ctx, token, "open", w, animated, reversed)
}

func (s *Stack) open(ctx context.Context, token uint64, op string, w *window.Window, animated, reversed bool) error {
	if _, err := s.validate(op, w); err != nil {
		return err
	}
	if w.IsOpen() {
		return nil
	}

	if top := s.history.Top(); top != nil && top != w {
		events.Flow.Close(string(s.kind), top.Name(), animated)
		if err := top.Close(ctx, animated, reversed); err != nil {
			return err
		}
		if !s.guard.valid(token) {
			return ErrInterrupted
		}
	}

	events.Flow.Open(string(s.kind), w.Name(), animated, reversed)
	err := w.Open(ctx, w.WaitUntilOpeningEnds(), animated, reversed)

	// the transition has started even if waiting for it was cut short
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.guard.valid(token) {
		if err == nil {
			err = ErrInterrupted
		}
		return err
	}
	s.history.Push(w)
	s.syncCursorLocked()
	return err
}

func (s *Stack) CloseCurrentWindow(ctx context.Context, animated bool) error {
	token, err := s.begin("close")
	if err != nil {
		return err
	}
	defer s.guard.release(token)

	s.mu.Lock()
	closing, ok := s.history.Pop()
	s.syncCursorLocked()
	s.mu.Unlock()
	if !ok {
		events.Flow.HistoryEmpty(string(s.kind))
		return nil
	}

	events.Flow.Close(string(s.kind), closing.Name(), animated)
	if err := closing.Close(ctx, animated, false); err != nil {
		return err
	}
	if !s.guard.valid(token) {
		return ErrInterrupted
	}

	top := s.history.Top()
	if top == nil {
		events.Flow.HistoryEmpty(string(s.kind))
		return nil
	}
	events.Flow.Reopen(string(s.kind), top.Name())
	return top.Open(ctx, top.WaitUntilOpeningEnds(), animated, false)
}

func (s *Stack) CloseAllInstantly() {
	s.closeAll(func() {
		s.history.Clear()
		s.cursor = -1
	})
}

func (s *Stack) NextWindow(ctx context.Context, animated bool) error {
	return s.move(ctx, "next", 1, animated)
}

func (s *Stack) PreviousWindow(ctx context.Context, animated bool) error {
	return s.move(ctx, "previous", -1, animated)
}

func (s *Stack) move(ctx context.Context, op string, delta int, animated bool) error {
	token, err := s.begin(op)
	if err != nil {
		return err
	}
	defer s.guard.release(token)

	s.mu.Lock()
	n := len(s.windows)
	from := s.cursor
	to, ok := 0, false
	if n > 0 {
		to, ok = step(from, delta, n, s.allowWrap)
	}
	var target *window.Window
	if ok {
		target = s.windows[to]
	}
	s.mu.Unlock()

	if n == 0 {
		return nil
	}
	if !ok {
		return s.reject(op, ErrBoundary)
	}
	events.Flow.Step(string(s.kind), op, from, to)
	return s.open(ctx, token, op, target, animated, false)
}
