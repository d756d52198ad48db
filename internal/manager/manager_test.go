package manager

import (
	"context"
	"errors"
	"testing"

	"github.com/atomicstack/paneldeck/internal/flow"
	"github.com/atomicstack/paneldeck/internal/layout"
	"github.com/atomicstack/paneldeck/internal/registry"
	"github.com/atomicstack/paneldeck/internal/testutil"
	"github.com/atomicstack/paneldeck/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var frame = layout.FixedFrame{W: 80, H: 24}

func newManager(t *testing.T, opts Options, names ...string) (*Manager, *testutil.HookRecorder) {
	t.Helper()
	rec := testutil.NewHookRecorder()
	windows := make([]*window.Window, 0, len(names))
	for _, name := range names {
		cfg := window.DefaultConfig(name)
		cfg.Hooks = rec.Hooks()
		windows = append(windows, window.New(cfg, nil))
	}
	m, err := New(opts, windows)
	require.NoError(t, err)
	return m, rec
}

func TestNewRejectsUnknownFlow(t *testing.T) {
	opts := DefaultOptions()
	opts.Flow = flow.Kind("spiral")
	_, err := New(opts, nil)
	if !errors.Is(err, flow.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestAttachOpensDefaultWithoutAnimation(t *testing.T) {
	opts := DefaultOptions()
	opts.DefaultWindow = "home"
	m, rec := newManager(t, opts, "home", "settings", "home")

	require.NoError(t, m.Attach(context.Background(), frame))
	assert.Len(t, m.Windows(), 2, "duplicate skipped")
	require.NotNil(t, m.CurrentWindow())
	assert.Equal(t, "home", m.CurrentWindow().Name())
	assert.True(t, m.CurrentWindow().IsOpen())
	assert.Empty(t, rec.Events(), "default window opens without a transition")

	// attaching twice is harmless
	require.NoError(t, m.Attach(context.Background(), frame))
	assert.Len(t, m.Windows(), 2)
}

func TestAttachReportsMissingDefault(t *testing.T) {
	opts := DefaultOptions()
	opts.DefaultWindow = "hom"
	m, _ := newManager(t, opts, "home")

	err := m.Attach(context.Background(), frame)
	if !errors.Is(err, registry.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	require.NoError(t, m.OpenWindow(context.Background(), "home", true))
	assert.Equal(t, "home", m.CurrentWindow().Name())
}

func TestAffordances(t *testing.T) {
	empty, _ := newManager(t, DefaultOptions())
	require.NoError(t, empty.Attach(context.Background(), frame))
	assert.Equal(t, Affordances{}, empty.Affordances())

	opts := DefaultOptions()
	opts.AllowWrap = false
	m, _ := newManager(t, opts, "a", "b", "c")
	require.NoError(t, m.Attach(context.Background(), frame))
	ctx := context.Background()

	assert.Equal(t, Affordances{CanNext: true, CanPrevious: false}, m.Affordances())
	require.NoError(t, m.OpenNextWindow(ctx))
	assert.Equal(t, Affordances{CanNext: true, CanPrevious: false}, m.Affordances())
	require.NoError(t, m.OpenNextWindow(ctx))
	assert.Equal(t, Affordances{CanNext: true, CanPrevious: true}, m.Affordances())
	require.NoError(t, m.OpenNextWindow(ctx))
	assert.Equal(t, Affordances{CanNext: false, CanPrevious: true}, m.Affordances())

	m.Container().Strategy().SetAllowWrap(true)
	assert.Equal(t, Affordances{CanNext: true, CanPrevious: true}, m.Affordances())
}

func TestTriggersDriveNavigation(t *testing.T) {
	opts := DefaultOptions()
	opts.AllowWrap = false
	m, _ := newManager(t, opts, "a", "b")
	require.NoError(t, m.Attach(context.Background(), frame))

	next, prev := NewButton(), NewButton()
	var seen []Affordances
	m.OnChange(func(a Affordances) { seen = append(seen, a) })
	m.Enable(next, prev)

	if prev.Enabled() {
		t.Fatalf("expected previous disabled before anything is open")
	}
	if !next.Press() {
		t.Fatalf("expected next to be pressable")
	}
	assert.Equal(t, "a", m.CurrentWindow().Name())
	next.Press()
	assert.Equal(t, "b", m.CurrentWindow().Name())
	assert.False(t, next.Enabled(), "last window reached")
	assert.False(t, next.Press())
	assert.True(t, prev.Press())
	assert.Equal(t, "a", m.CurrentWindow().Name())
	assert.NotEmpty(t, seen)

	m.Disable()
	assert.Zero(t, next.Subscribers())
	prev.SetEnabled(true)
	prev.Press()
	assert.Equal(t, "a", m.CurrentWindow().Name(), "disabled triggers do nothing")
}

func TestRejectionsAreReturnedNotFatal(t *testing.T) {
	opts := DefaultOptions()
	opts.AllowWrap = false
	m, _ := newManager(t, opts, "a")
	require.NoError(t, m.Attach(context.Background(), frame))
	ctx := context.Background()

	require.NoError(t, m.OpenNextWindow(ctx))
	assert.ErrorIs(t, m.OpenNextWindow(ctx), flow.ErrBoundary)
	assert.ErrorIs(t, m.OpenWindow(ctx, "zzz", true), registry.ErrNotFound)
	assert.Equal(t, "a", m.CurrentWindow().Name())
}

func TestStackManagerCloseLast(t *testing.T) {
	opts := DefaultOptions()
	opts.Flow = flow.KindStack
	m, rec := newManager(t, opts, "a", "b")
	require.NoError(t, m.Attach(context.Background(), frame))
	ctx := context.Background()

	require.NoError(t, m.OpenWindow(ctx, "a", true))
	require.NoError(t, m.OpenWindow(ctx, "b", true))
	require.NoError(t, m.CloseLastWindow(ctx))
	assert.Equal(t, "a", m.CurrentWindow().Name())
	assert.Equal(t, 1, m.ActiveCount())
	assert.Equal(t, 2, rec.Count("a", "opened"))
}

func TestSetAnimatedSkipsTransitions(t *testing.T) {
	m, rec := newManager(t, DefaultOptions(), "a")
	require.NoError(t, m.Attach(context.Background(), frame))
	m.SetAnimated(false)

	require.NoError(t, m.OpenNextWindow(context.Background()))
	assert.True(t, m.CurrentWindow().IsOpen())
	assert.Empty(t, rec.Events())
}

func TestShutdownClosesEverything(t *testing.T) {
	opts := DefaultOptions()
	opts.DefaultWindow = "a"
	m, _ := newManager(t, opts, "a", "b")
	require.NoError(t, m.Attach(context.Background(), frame))
	next := NewButton()
	m.Enable(next, nil)

	m.Shutdown()
	assert.Nil(t, m.CurrentWindow())
	for _, w := range m.Windows() {
		assert.False(t, w.IsOpen(), w.Name())
	}
	assert.Zero(t, next.Subscribers())
}

func TestProcessWideHandle(t *testing.T) {
	t.Cleanup(Teardown)
	if _, ok := Default(); ok {
		t.Fatalf("expected no manager installed")
	}
	first, _ := newManager(t, DefaultOptions(), "a")
	second, _ := newManager(t, DefaultOptions(), "b")

	require.NoError(t, Install(first))
	require.NoError(t, Install(first))
	assert.ErrorIs(t, Install(second), ErrAlreadyInstalled)
	got, ok := Default()
	require.True(t, ok)
	assert.Same(t, first, got)

	assert.Same(t, first, Replace(second))
	Teardown()
	if _, ok := Default(); ok {
		t.Fatalf("expected teardown to clear the handle")
	}
}
