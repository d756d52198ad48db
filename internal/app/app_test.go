package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/paneldeck/internal/deck"
	"github.com/atomicstack/paneldeck/internal/flow"
	"github.com/atomicstack/paneldeck/internal/manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func writeDeck(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestPrepareDemoDeck(t *testing.T) {
	defer goleak.VerifyNone(t)
	s, err := Prepare(Config{FPS: 60})
	require.NoError(t, err)
	defer s.Close()

	installed, ok := manager.Default()
	require.True(t, ok)
	assert.Same(t, s.Manager, installed)
	assert.NotNil(t, s.Engine)
	assert.Nil(t, s.Watcher)
	assert.Equal(t, len(deck.Demo().Windows), len(s.Manager.Windows()))
}

func TestPrepareAppliesOverrides(t *testing.T) {
	path := writeDeck(t, "flow: stack\nallow_wrap: true\nwindows: [{name: a}, {name: b}]\n")
	wrap := false
	s, err := Prepare(Config{DeckPath: path, Flow: "carousel", AllowWrap: &wrap, DefaultWindow: "b", NoAnimation: true, FPS: 60})
	require.NoError(t, err)
	defer s.Close()

	opts := s.Manager.Options()
	assert.Equal(t, flow.KindCarousel, opts.Flow)
	assert.False(t, opts.AllowWrap)
	assert.Equal(t, "b", opts.DefaultWindow)
	assert.False(t, opts.Animated)
	assert.Nil(t, s.Engine, "instant decks need no frame engine")
}

func TestPrepareWatchStartsWatcher(t *testing.T) {
	defer goleak.VerifyNone(t)
	path := writeDeck(t, "windows: [{name: a}]\n")
	s, err := Prepare(Config{DeckPath: path, Watch: true, FPS: 60})
	require.NoError(t, err)
	require.NotNil(t, s.Watcher)
	require.NotNil(t, s.Dispatcher)
	s.Close()
	if _, ok := manager.Default(); ok {
		t.Fatalf("expected manager torn down on close")
	}
}

func TestPrepareRejectsBadDeck(t *testing.T) {
	path := writeDeck(t, "windows: []\n")
	_, err := Prepare(Config{DeckPath: path})
	if !errors.Is(err, deck.ErrInvalid) {
		t.Fatalf("expected invalid deck error, got %v", err)
	}
	if _, ok := manager.Default(); ok {
		t.Fatalf("expected nothing installed")
	}

	_, err = Prepare(Config{DeckPath: filepath.Join(t.TempDir(), "missing.yaml")})
	if err == nil || !strings.Contains(err.Error(), "read deck") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestSessionModelUsesPinnedSize(t *testing.T) {
	s, err := Prepare(Config{NoAnimation: true, Width: 90, Height: 30})
	require.NoError(t, err)
	defer s.Close()
	m := s.Model(Config{NoAnimation: true, Width: 90, Height: 30})
	assert.Len(t, strings.Split(m.View(), "\n"), 30)
	assert.NotNil(t, m.Manager().CurrentWindow())
}
