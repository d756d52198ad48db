package container

import (
	"context"

	"github.com/atomicstack/paneldeck/internal/flow"
	"github.com/atomicstack/paneldeck/internal/layout"
	"github.com/atomicstack/paneldeck/internal/registry"
	"github.com/atomicstack/paneldeck/internal/window"
)

// Container pairs the name registry with one navigation strategy. Windows
// join both on registration and navigation by name resolves through the
// registry.
type Container struct {
	registry *registry.Registry
	strategy flow.Strategy
}

// New wraps strategy. A nil strategy is a wiring mistake and panics.
func New(strategy flow.Strategy) *Container {
	if strategy == nil {
		panic("container: nil flow strategy")
	}
	return &Container{registry: registry.New(), strategy: strategy}
}

// Strategy exposes the underlying policy.
func (c *Container) Strategy() flow.Strategy {
	return c.strategy
}

// RegisterWindow initializes w against frame and makes it navigable.
// Duplicate names are rejected and leave the first window in place.
func (c *Container) RegisterWindow(w *window.Window, frame layout.Frame) error {
	if err := c.registry.Register(w, frame); err != nil {
		return err
	}
	c.strategy.Add(w)
	return nil
}

// UnregisterWindow removes the named window from navigation and closes it.
func (c *Container) UnregisterWindow(name string) (*window.Window, bool) {
	w, ok := c.registry.Unregister(name)
	if !ok {
		return nil, false
	}
	c.strategy.Forget(w)
	w.CloseNow()
	return w, true
}

// Lookup resolves a registered window by name.
func (c *Container) Lookup(name string) (*window.Window, error) {
	return c.registry.Lookup(name)
}

// Names lists registered windows in registration order.
func (c *Container) Names() []string {
	return c.registry.Names()
}

func (c *Container) OpenWindow(ctx context.Context, name string, animated bool) error {
	w, err := c.registry.Lookup(name)
	if err != nil {
		return err
	}
	return c.strategy.OpenWindow(ctx, w, animated, false)
}

func (c *Container) OpenWindowRef(ctx context.Context, w *window.Window, animated bool) error {
	return c.strategy.OpenWindow(ctx, w, animated, false)
}

func (c *Container) CloseCurrentWindow(ctx context.Context, animated bool) error {
	return c.strategy.CloseCurrentWindow(ctx, animated)
}

func (c *Container) CloseAllWindowsInstantly() {
	c.strategy.CloseAllInstantly()
}

func (c *Container) OpenNextWindow(ctx context.Context, animated bool) error {
	return c.strategy.NextWindow(ctx, animated)
}

func (c *Container) OpenPreviousWindow(ctx context.Context, animated bool) error {
	return c.strategy.PreviousWindow(ctx, animated)
}

func (c *Container) CurrentWindow() *window.Window {
	return c.strategy.CurrentWindow()
}

func (c *Container) ActiveCount() int {
	return c.strategy.ActiveCount()
}

// Windows returns the navigable windows in order.
func (c *Container) Windows() []*window.Window {
	return c.strategy.AllWindows()
}
