package dispatcher

import (
	"context"
	"fmt"

	"github.com/atomicstack/paneldeck/internal/anim"
	"github.com/atomicstack/paneldeck/internal/backend"
	"github.com/atomicstack/paneldeck/internal/deck"
	"github.com/atomicstack/paneldeck/internal/layout"
	"github.com/atomicstack/paneldeck/internal/logging/events"
	"github.com/atomicstack/paneldeck/internal/manager"
	"github.com/atomicstack/paneldeck/internal/window"
)

// Result describes what a backend event changed.
type Result struct {
	// Manager is the freshly installed manager when Reloaded is set.
	Manager  *manager.Manager
	Reloaded bool
	// Restored is the window re-opened from the previous deck, if any.
	Restored string
	Err      error
}

// Dispatcher rebuilds the installed manager whenever the deck file changes.
// The overrides given on the command line keep precedence over the new file.
type Dispatcher struct {
	backend   anim.Backend
	hooks     *window.Hooks
	overrides deck.Overrides
}

func New(backend anim.Backend, hooks *window.Hooks, overrides deck.Overrides) *Dispatcher {
	return &Dispatcher{backend: backend, hooks: hooks, overrides: overrides}
}

// Handle applies evt. On a successful reload the previous manager is shut
// down and the new one attached to frame; the window that was current before
// is re-opened when the new deck still has it. Errors leave the running
// manager untouched.
func (d *Dispatcher) Handle(ctx context.Context, evt backend.Event, frame layout.Frame) Result {
	if evt.Err != nil {
		events.Deck.Error(pathOf(evt.Deck), evt.Err)
		return Result{Err: evt.Err}
	}
	if evt.Kind != backend.KindDeck || evt.Deck == nil {
		return Result{}
	}
	file := evt.Deck
	if err := file.Apply(d.overrides); err != nil {
		events.Deck.Error(file.Path, err)
		return Result{Err: err}
	}
	next, err := deck.Build(file, d.backend, d.hooks)
	if err != nil {
		events.Deck.Error(file.Path, err)
		return Result{Err: err}
	}

	restore := ""
	if prev := manager.Replace(next); prev != nil {
		if cur := prev.CurrentWindow(); cur != nil {
			restore = cur.Name()
		}
		prev.Shutdown()
	}
	events.Deck.Load(file.Path, len(file.Windows), string(file.Options().Flow))

	res := Result{Manager: next, Reloaded: true}
	if err := next.Attach(ctx, frame); err != nil {
		res.Err = fmt.Errorf("attach reloaded deck: %w", err)
	}
	if restore != "" && restore != file.Options().DefaultWindow && hasWindow(next, restore) {
		if err := next.OpenWindow(ctx, restore, false); err == nil {
			res.Restored = restore
		}
	}
	return res
}

func hasWindow(m *manager.Manager, name string) bool {
	for _, candidate := range m.Container().Names() {
		if candidate == name {
			return true
		}
	}
	return false
}

func pathOf(file *deck.File) string {
	if file == nil {
		return ""
	}
	return file.Path
}
