package window

import (
	"context"
	"fmt"
	"time"

	"github.com/atomicstack/paneldeck/internal/anim"
	"github.com/atomicstack/paneldeck/internal/layout"
	"github.com/atomicstack/paneldeck/internal/logging/events"
	"github.com/google/uuid"
)

// Open shows the window. Any active transition is completed first. Without
// animation the resting values are applied directly and no hooks fire. With
// animation the window travels from its entry pose (its exit pose when
// reversed) to its resting pose; wait decides whether Open returns before the
// transition completes.
func (w *Window) Open(ctx context.Context, wait, animated, reversed bool) error {
	w.killActive(true)
	if !animated {
		w.snap(true)
		return nil
	}
	start := w.cfg.From
	if reversed {
		start = w.cfg.To
	}
	return w.transition(ctx, wait, start, w.cfg.Stay, true, w.cfg.OpeningDuration, true)
}

// Close hides the window, cancelling any active transition without completing
// it. Unlike Open, whether Close waits is decided by the window's own
// WaitUntilClosingEnds setting.
func (w *Window) Close(ctx context.Context, animated, reversed bool) error {
	w.killActive(false)
	if !animated {
		w.snap(false)
		return nil
	}
	end := w.cfg.To
	if reversed {
		end = w.cfg.From
	}
	return w.transition(ctx, w.cfg.WaitUntilClosingEnds, w.cfg.Stay, end, false, w.cfg.ClosingDuration, false)
}

// CloseNow cancels any transition and jumps straight to the exit pose.
func (w *Window) CloseNow() {
	w.killActive(false)
	w.snap(false)
}

// AsyncAnimate runs a bespoke transition between two pose tokens and waits
// for it. opening selects the entry-side blend, ease and value triples and the
// logical state the window takes when the transition starts.
func (w *Window) AsyncAnimate(ctx context.Context, start, end layout.Position, opening bool, duration time.Duration, interactable bool) error {
	return w.transition(ctx, true, start, end, opening, duration, interactable)
}

// Animate is the non-blocking form of AsyncAnimate.
func (w *Window) Animate(start, end layout.Position, opening bool, duration time.Duration, interactable bool) {
	_ = w.transition(context.Background(), false, start, end, opening, duration, interactable)
}

func (w *Window) transition(ctx context.Context, wait bool, start, end layout.Position, opening bool, duration time.Duration, interactable bool) error {
	w.killActive(false)

	w.mu.Lock()
	w.gen++
	gen := w.gen
	spec := w.specLocked(gen, start, end, opening, duration, interactable)
	w.mu.Unlock()

	tl := w.backend.Play(spec)

	w.mu.Lock()
	if w.gen != gen {
		// A hook started another transition while this one was starting.
		w.mu.Unlock()
		tl.Kill(false)
		return nil
	}
	w.timeline = tl
	w.mu.Unlock()

	dir := events.DirectionClosing
	if opening {
		dir = events.DirectionOpening
	}
	events.Window.TransitionStart(w.cfg.Name, tl.ID(), dir, start.String(), end.String(), duration)

	if !wait {
		return nil
	}
	return w.await(ctx, tl)
}

func (w *Window) await(ctx context.Context, tl *anim.Timeline) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var watchdog <-chan time.Time
	if w.cfg.Watchdog > 0 {
		timer := time.NewTimer(w.cfg.Watchdog)
		defer timer.Stop()
		watchdog = timer.C
	}
	select {
	case <-tl.Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("await %s transition: %w", w.cfg.Name, ctx.Err())
	case <-watchdog:
		events.Window.Watchdog(w.cfg.Name, tl.ID(), w.cfg.Watchdog)
		tl.Kill(true)
		return nil
	}
}

// specLocked builds the timeline for one transition. Entry-side poses use
// FromBlend and exit-side poses ToBlend; the resting side always travels in
// full.
func (w *Window) specLocked(gen uint64, start, end layout.Position, opening bool, duration time.Duration, interactable bool) anim.Spec {
	cfg := w.cfg
	var (
		scaleFrom, scaleTo layout.Vec2
		rotFrom, rotTo     float64
		alphaFrom, alphaTo float64
		posFrom, posTo     layout.Vec2
		ease               anim.Ease
		phase              Phase
		settled            Phase
		completeHook       func(*Window)
	)
	if opening {
		scaleFrom, scaleTo = cfg.Scale.From, cfg.Scale.Stay
		rotFrom, rotTo = cfg.Rotation.From, cfg.Rotation.Stay
		alphaFrom, alphaTo = cfg.Alpha.From, cfg.Alpha.Stay
		posFrom = w.poseLocked(start, cfg.FromBlend, scaleFrom)
		posTo = w.poseLocked(end, 1, scaleTo)
		ease = cfg.OpeningEase
		phase, settled = Opening, Open
		completeHook = cfg.Hooks.OnOpened
	} else {
		scaleFrom, scaleTo = cfg.Scale.Stay, cfg.Scale.To
		rotFrom, rotTo = cfg.Rotation.Stay, cfg.Rotation.To
		alphaFrom, alphaTo = cfg.Alpha.Stay, cfg.Alpha.To
		posFrom = w.poseLocked(start, 1, scaleFrom)
		posTo = w.poseLocked(end, cfg.ToBlend, scaleTo)
		ease = cfg.ClosingEase
		phase, settled = Closing, Closed
		completeHook = cfg.Hooks.OnClosed
	}

	guarded := func(apply func(v float64)) func(float64) {
		return func(v float64) {
			w.mu.Lock()
			if w.gen == gen {
				apply(v)
			}
			w.mu.Unlock()
		}
	}
	dir := events.DirectionClosing
	if opening {
		dir = events.DirectionOpening
	}

	id := uuid.NewString()
	spec := anim.Spec{
		ID:       id,
		Label:    fmt.Sprintf("%s %s->%s", cfg.Name, start, end),
		Duration: duration,
		Ease:     ease,
		Tracks: []anim.Track{
			{Property: "position.x", From: posFrom.X, To: posTo.X, Set: guarded(func(v float64) { w.transform.Position.X = v })},
			{Property: "position.y", From: posFrom.Y, To: posTo.Y, Set: guarded(func(v float64) { w.transform.Position.Y = v })},
			{Property: "alpha", From: alphaFrom, To: alphaTo, Set: guarded(func(v float64) { w.surface.Alpha = layout.Clamp01(v) })},
			{Property: "scale.x", From: scaleFrom.X, To: scaleTo.X, Set: guarded(func(v float64) { w.transform.Scale.X = v })},
			{Property: "scale.y", From: scaleFrom.Y, To: scaleTo.Y, Set: guarded(func(v float64) { w.transform.Scale.Y = v })},
			{Property: "rotation", From: rotFrom, To: rotTo, Set: guarded(func(v float64) { w.transform.Rotation = v })},
		},
	}
	spec.OnStart = func() {
		w.mu.Lock()
		if w.gen != gen {
			w.mu.Unlock()
			return
		}
		w.open = opening
		w.phase = phase
		w.surface.Interactable = false
		w.surface.BlocksInput = false
		w.surface.Alpha = alphaFrom
		w.transform.Position = posFrom
		w.transform.Scale = scaleFrom
		w.transform.Rotation = rotFrom
		w.mu.Unlock()
		w.fire(cfg.Hooks.OnStart)
	}
	spec.OnComplete = func() {
		w.mu.Lock()
		if w.gen != gen {
			w.mu.Unlock()
			return
		}
		w.surface.Interactable = interactable
		w.surface.BlocksInput = interactable
		w.phase = settled
		w.mu.Unlock()
		events.Window.TransitionComplete(cfg.Name, id, dir)
		w.fire(completeHook)
	}
	return spec
}

// snap applies the resting (open) or exit (closed) values immediately.
func (w *Window) snap(open bool) {
	cfg := w.cfg
	w.mu.Lock()
	w.gen++
	w.open = open
	if open {
		w.phase = Open
		w.surface = Surface{Alpha: cfg.Alpha.Stay, Interactable: true, BlocksInput: true}
		w.transform.Scale = cfg.Scale.Stay
		w.transform.Rotation = cfg.Rotation.Stay
		w.transform.Position = w.poseLocked(cfg.Stay, 1, cfg.Scale.Stay)
	} else {
		w.phase = Closed
		w.surface = Surface{Alpha: cfg.Alpha.To}
		w.transform.Scale = cfg.Scale.To
		w.transform.Rotation = cfg.Rotation.To
		w.transform.Position = w.poseLocked(cfg.To, cfg.ToBlend, cfg.Scale.To)
	}
	w.mu.Unlock()
	events.Window.Snap(cfg.Name, open)
}

func (w *Window) killActive(complete bool) {
	w.mu.Lock()
	tl := w.timeline
	w.timeline = nil
	w.mu.Unlock()
	if tl == nil {
		return
	}
	if !complete && tl.Active() {
		events.Window.TransitionCancel(w.cfg.Name, tl.ID())
	}
	tl.Kill(complete)
}
