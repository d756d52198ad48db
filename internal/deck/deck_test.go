package deck

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/paneldeck/internal/anim"
	"github.com/atomicstack/paneldeck/internal/flow"
	"github.com/atomicstack/paneldeck/internal/layout"
	"github.com/atomicstack/paneldeck/internal/window"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDeck = `
flow: Stack
allow_wrap: false
default_window: home
windows:
  - name: home
    title: Home
    body: [hello, world]
    size: {w: 30, h: 6}
    from: left
    to: right
    from_blend: 0.5
    scale:
      from: {x: 0.5, y: 0.5}
      stay: {x: 1, y: 1}
      to: {x: 2, y: 2}
    opening: {duration: 250ms, ease: out-cubic, wait: false}
    closing: {duration: 1s, ease: linear}
    watchdog: 2s
  - name: about
`

func TestParseSampleDeck(t *testing.T) {
	file, err := Parse([]byte(sampleDeck))
	require.NoError(t, err)

	opts := file.Options()
	assert.Equal(t, flow.KindStack, opts.Flow)
	assert.False(t, opts.AllowWrap)
	assert.True(t, opts.CloseAllOnStart, "default kept")
	assert.True(t, opts.Animated, "default kept")
	assert.Equal(t, "home", opts.DefaultWindow)

	configs := file.Configs()
	require.Len(t, configs, 2)

	want := window.DefaultConfig("home")
	want.Title = "Home"
	want.Body = []string{"hello", "world"}
	want.Size = layout.Size{W: 30, H: 6}
	want.From = layout.Left
	want.To = layout.Right
	want.FromBlend = 0.5
	want.Scale = window.Triple[layout.Vec2]{From: layout.Vec2{X: 0.5, Y: 0.5}, Stay: layout.Vec2{X: 1, Y: 1}, To: layout.Vec2{X: 2, Y: 2}}
	want.OpeningDuration = 250 * time.Millisecond
	want.OpeningEase = anim.OutCubic
	want.WaitUntilOpeningEnds = false
	want.ClosingDuration = time.Second
	want.ClosingEase = anim.Linear
	want.Watchdog = 2 * time.Second

	opt := cmp.FilterPath(func(p cmp.Path) bool { return p.Last().String() == ".Hooks" }, cmp.Ignore())
	if diff := cmp.Diff(want, configs[0], opt); diff != "" {
		t.Fatalf("home config mismatch (-want +got):\n%s", diff)
	}
	defaults := window.DefaultConfig("about")
	if diff := cmp.Diff(defaults, configs[1], opt); diff != "" {
		t.Fatalf("about should use defaults (-want +got):\n%s", diff)
	}
}

func TestParseRejectsInvalidDecks(t *testing.T) {
	cases := map[string]string{
		"unknown flow":     "flow: spiral\nwindows: [{name: a}]",
		"no windows":       "flow: stack",
		"missing name":     "windows: [{title: x}]",
		"bad position":     "windows: [{name: a, from: sideways}]",
		"bad ease":         "windows: [{name: a, opening: {ease: wobble}}]",
		"blend range":      "windows: [{name: a, to_blend: 1.5}]",
		"zero size":        "windows: [{name: a, size: {w: 0, h: 3}}]",
		"negative time":    "windows: [{name: a, closing: {duration: -1s}}]",
		"unknown key":      "windows: [{name: a, colour: red}]",
		"malformed":        "windows: [",
		"negative watchdg": "windows: [{name: a, watchdog: -2s}]",
	}
	for name, doc := range cases {
		_, err := Parse([]byte(doc))
		if !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: expected ErrInvalid, got %v", name, err)
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	file, err := Parse([]byte(sampleDeck))
	require.NoError(t, err)
	wrap := true
	require.NoError(t, file.Apply(Overrides{Flow: "carousel", AllowWrap: &wrap, DefaultWindow: "about", NoAnimation: true}))

	opts := file.Options()
	assert.Equal(t, flow.KindCarousel, opts.Flow)
	assert.True(t, opts.AllowWrap)
	assert.Equal(t, "about", opts.DefaultWindow)
	assert.False(t, opts.Animated)

	assert.Error(t, file.Apply(Overrides{Flow: "spiral"}))
}

func TestDemoDeckBuilds(t *testing.T) {
	file := Demo()
	require.NotEmpty(t, file.Windows)

	m, err := Build(file, nil, nil)
	require.NoError(t, err)
	require.NoError(t, m.Attach(context.Background(), layout.FixedFrame{W: 100, H: 30}))
	require.NotNil(t, m.CurrentWindow())
	assert.Equal(t, file.DefaultWindow, m.CurrentWindow().Name())
	assert.Len(t, m.Windows(), len(file.Windows))
}

func TestBuildAttachesHooks(t *testing.T) {
	file, err := Parse([]byte(sampleDeck))
	require.NoError(t, err)
	opened := 0
	hooks := &window.Hooks{OnOpened: func(*window.Window) { opened++ }}

	m, err := Build(file, anim.Instant{}, hooks)
	require.NoError(t, err)
	require.NoError(t, m.Attach(context.Background(), layout.FixedFrame{W: 80, H: 24}))
	require.NoError(t, m.OpenWindow(context.Background(), "about", true))
	assert.Equal(t, 1, opened)
}

func TestLoadRecordsPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDeck), 0o644))

	file, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, file.Path)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("flow: spiral"), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
}
