package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/atomicstack/paneldeck/internal/container"
	"github.com/atomicstack/paneldeck/internal/flow"
	"github.com/atomicstack/paneldeck/internal/layout"
	"github.com/atomicstack/paneldeck/internal/logging/events"
	"github.com/atomicstack/paneldeck/internal/window"
)

// Options configures a Manager.
type Options struct {
	Flow      flow.Kind
	AllowWrap bool
	// DefaultWindow is opened without animation once Attach has registered
	// every window. Empty opens nothing.
	DefaultWindow   string
	CloseAllOnStart bool
	Animated        bool
}

// DefaultOptions mirrors a freshly added manager: carousel, wrapping, all
// windows closed on start, animated navigation.
func DefaultOptions() Options {
	return Options{
		Flow:            flow.KindCarousel,
		AllowWrap:       true,
		CloseAllOnStart: true,
		Animated:        true,
	}
}

// Affordances says which navigation triggers can currently act.
type Affordances struct {
	CanNext     bool
	CanPrevious bool
}

// Manager is the host-facing façade: it owns the container, registers the
// configured windows and keeps next/previous triggers in sync.
type Manager struct {
	opts      Options
	windows   []*window.Window
	container *container.Container

	mu       sync.Mutex
	ctx      context.Context
	animated bool
	attached bool
	next     Trigger
	prev     Trigger
	unsub    []func()
	onChange []func(Affordances)
}

// New builds a manager over windows. An unknown flow kind is refused.
func New(opts Options, windows []*window.Window) (*Manager, error) {
	strategy, err := flow.New(opts.Flow, opts.AllowWrap)
	if err != nil {
		return nil, fmt.Errorf("new manager: %w", err)
	}
	return &Manager{
		opts:      opts,
		windows:   windows,
		container: container.New(strategy),
		ctx:       context.Background(),
		animated:  opts.Animated,
	}, nil
}

// Options returns the construction options.
func (m *Manager) Options() Options {
	return m.opts
}

// Container exposes the underlying container.
func (m *Manager) Container() *container.Container {
	return m.container
}

// Attach registers every configured window against frame, optionally closes
// them all and opens the default window without animation. Duplicate and nil
// windows are skipped. A default window that cannot be opened is reported
// but leaves the manager attached.
func (m *Manager) Attach(ctx context.Context, frame layout.Frame) error {
	m.mu.Lock()
	if m.attached {
		m.mu.Unlock()
		return nil
	}
	m.attached = true
	if ctx != nil {
		m.ctx = ctx
	}
	m.mu.Unlock()

	for _, w := range m.windows {
		if w == nil {
			continue
		}
		_ = m.container.RegisterWindow(w, frame)
	}
	events.Manager.Attach(string(m.opts.Flow), len(m.container.Windows()), m.opts.DefaultWindow)

	if m.opts.CloseAllOnStart {
		m.container.CloseAllWindowsInstantly()
	}
	var err error
	if m.opts.DefaultWindow != "" {
		err = m.container.OpenWindow(m.context(), m.opts.DefaultWindow, false)
		events.Manager.Op("default", err)
	}
	m.refresh()
	return err
}

// SetFrame rebinds every window to a new frame, e.g. after a resize.
func (m *Manager) SetFrame(frame layout.Frame) {
	for _, w := range m.container.Windows() {
		w.SetFrame(frame)
	}
}

// Enable subscribes to the triggers; either may be nil.
func (m *Manager) Enable(next, previous Trigger) {
	m.Disable()
	m.mu.Lock()
	m.next, m.prev = next, previous
	if next != nil {
		m.unsub = append(m.unsub, next.Subscribe(func() { _ = m.OpenNextWindow(m.context()) }))
	}
	if previous != nil {
		m.unsub = append(m.unsub, previous.Subscribe(func() { _ = m.OpenPreviousWindow(m.context()) }))
	}
	m.mu.Unlock()
	events.Manager.Triggers(true)
	m.refresh()
}

// Disable removes the trigger subscriptions. The triggers keep their last
// enabled state.
func (m *Manager) Disable() {
	m.mu.Lock()
	unsub := m.unsub
	m.unsub = nil
	m.mu.Unlock()
	if len(unsub) == 0 {
		return
	}
	for _, fn := range unsub {
		fn()
	}
	events.Manager.Triggers(false)
}

// OnChange registers fn to receive the affordances after every operation.
func (m *Manager) OnChange(fn func(Affordances)) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.onChange = append(m.onChange, fn)
	m.mu.Unlock()
}

// Animated reports whether trigger-driven navigation animates.
func (m *Manager) Animated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.animated
}

func (m *Manager) SetAnimated(animated bool) {
	m.mu.Lock()
	m.animated = animated
	m.mu.Unlock()
}

// Affordances derives the trigger states: nothing is possible without
// windows; otherwise wrapping or a neighbour in range enables a direction.
func (m *Manager) Affordances() Affordances {
	strategy := m.container.Strategy()
	windows := strategy.AllWindows()
	if len(windows) == 0 {
		return Affordances{}
	}
	index := -1
	if cur := strategy.CurrentWindow(); cur != nil {
		for i, w := range windows {
			if w == cur {
				index = i
				break
			}
		}
	}
	wrap := strategy.AllowWrap()
	return Affordances{
		CanNext:     wrap || index+1 < len(windows),
		CanPrevious: wrap || index-1 >= 0,
	}
}

func (m *Manager) refresh() {
	aff := m.Affordances()
	m.mu.Lock()
	next, prev := m.next, m.prev
	listeners := make([]func(Affordances), len(m.onChange))
	copy(listeners, m.onChange)
	m.mu.Unlock()

	if next != nil {
		next.SetEnabled(aff.CanNext)
	}
	if prev != nil {
		prev.SetEnabled(aff.CanPrevious)
	}
	events.Manager.Affordances(aff.CanNext, aff.CanPrevious)
	for _, fn := range listeners {
		fn(aff)
	}
}

func (m *Manager) context() context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ctx
}

func (m *Manager) finish(op string, err error) error {
	if errors.Is(err, flow.ErrInterrupted) {
		err = nil
	}
	events.Manager.Op(op, err)
	m.refresh()
	return err
}

// OpenWindow opens a window by name.
func (m *Manager) OpenWindow(ctx context.Context, name string, animated bool) error {
	return m.finish("open", m.container.OpenWindow(ctx, name, animated))
}

// OpenWindowRef opens a window by reference.
func (m *Manager) OpenWindowRef(ctx context.Context, w *window.Window, animated bool) error {
	return m.finish("open", m.container.OpenWindowRef(ctx, w, animated))
}

// CloseLastWindow closes the current window; under the stack policy the
// previous one re-opens.
func (m *Manager) CloseLastWindow(ctx context.Context) error {
	return m.finish("close", m.container.CloseCurrentWindow(ctx, m.Animated()))
}

// CloseAllWindows closes everything instantly.
func (m *Manager) CloseAllWindows() {
	m.container.CloseAllWindowsInstantly()
	_ = m.finish("close-all", nil)
}

func (m *Manager) OpenNextWindow(ctx context.Context) error {
	return m.finish("next", m.container.OpenNextWindow(ctx, m.Animated()))
}

func (m *Manager) OpenPreviousWindow(ctx context.Context) error {
	return m.finish("previous", m.container.OpenPreviousWindow(ctx, m.Animated()))
}

func (m *Manager) CurrentWindow() *window.Window {
	return m.container.CurrentWindow()
}

func (m *Manager) ActiveCount() int {
	return m.container.ActiveCount()
}

func (m *Manager) Windows() []*window.Window {
	return m.container.Windows()
}

// Busy reports whether a navigation is in flight.
func (m *Manager) Busy() bool {
	return m.container.Strategy().Busy()
}

// Shutdown disables the triggers, closes every window instantly and cancels
// any running transition.
func (m *Manager) Shutdown() {
	m.Disable()
	m.container.CloseAllWindowsInstantly()
	for _, w := range m.container.Windows() {
		w.Destroy()
	}
	m.mu.Lock()
	m.next, m.prev = nil, nil
	m.onChange = nil
	m.mu.Unlock()
	events.Manager.Shutdown()
}
