package flow

import (
	"context"

	"github.com/atomicstack/paneldeck/internal/logging/events"
	"github.com/atomicstack/paneldeck/internal/window"
)

// Carousel shows exactly one window of an ordered ring. Previous plays
// mirrored animations.
type Carousel struct {
	base
	index int
}

// NewCarousel returns an empty carousel.
func NewCarousel(allowWrap bool) *Carousel {
	return &Carousel{base: base{kind: KindCarousel, allowWrap: allowWrap}, index: -1}
}

func (c *Carousel) CurrentWindow() *window.Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLocked()
}

func (c *Carousel) currentLocked() *window.Window {
	if c.index < 0 || c.index >= len(c.windows) {
		return nil
	}
	return c.windows[c.index]
}

// ActiveCount is 1 while a window is current, 0 otherwise.
func (c *Carousel) ActiveCount() int {
	if c.CurrentWindow() != nil {
		return 1
	}
	return 0
}

func (c *Carousel) Add(w *window.Window) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addLocked(w)
}

func (c *Carousel) Forget(w *window.Window) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.forgetLocked(w)
	switch {
	case idx < 0:
		return false
	case idx == c.index:
		c.index = -1
	case idx < c.index:
		c.index--
	}
	return true
}

func (c *Carousel) OpenWindow(ctx context.Context, w *window.Window, animated, reversed bool) error {
	token, err := c.begin("open")
	if err != nil {
		return err
	}
	defer c.guard.release(token)
	return c.open(ctx, token, "open", w, animated, reversed)
}

func (c *Carousel) open(ctx context.Context, token uint64, op string, w *window.Window, animated, reversed bool) error {
	idx, err := c.validate(op, w)
	if err != nil {
		return err
	}
	if w.IsOpen() {
		return nil
	}

	prev := c.CurrentWindow()
	if prev != nil && prev != w {
		events.Flow.Close(string(c.kind), prev.Name(), animated)
		if err := prev.Close(ctx, animated, reversed); err != nil {
			return err
		}
	}

	c.mu.Lock()
	if !c.guard.valid(token) {
		c.mu.Unlock()
		return ErrInterrupted
	}
	c.index = idx
	c.mu.Unlock()

	events.Flow.Open(string(c.kind), w.Name(), animated, reversed)
	return w.Open(ctx, w.WaitUntilOpeningEnds(), animated, reversed)
}

func (c *Carousel) CloseCurrentWindow(ctx context.Context, animated bool) error {
	token, err := c.begin("close")
	if err != nil {
		return err
	}
	defer c.guard.release(token)

	cur := c.CurrentWindow()
	if cur == nil {
		return nil
	}
	events.Flow.Close(string(c.kind), cur.Name(), animated)
	err = cur.Close(ctx, animated, false)

	c.mu.Lock()
	if c.guard.valid(token) && c.currentLocked() == cur {
		c.index = -1
	}
	c.mu.Unlock()
	return err
}

func (c *Carousel) CloseAllInstantly() {
	c.closeAll(func() { c.index = -1 })
}

func (c *Carousel) NextWindow(ctx context.Context, animated bool) error {
	return c.move(ctx, "next", 1, animated)
}

func (c *Carousel) PreviousWindow(ctx context.Context, animated bool) error {
	return c.move(ctx, "previous", -1, animated)
}

func (c *Carousel) move(ctx context.Context, op string, delta int, animated bool) error {
	token, err := c.begin(op)
	if err != nil {
		return err
	}
	defer c.guard.release(token)

	c.mu.Lock()
	n := len(c.windows)
	from := c.index
	to, ok := 0, false
	if n > 0 {
		to, ok = step(from, delta, n, c.allowWrap)
	}
	var target *window.Window
	if ok {
		target = c.windows[to]
	}
	c.mu.Unlock()

	if n == 0 {
		return nil
	}
	if !ok {
		return c.reject(op, ErrBoundary)
	}
	events.Flow.Step(string(c.kind), op, from, to)
	return c.open(ctx, token, op, target, animated, delta < 0)
}
