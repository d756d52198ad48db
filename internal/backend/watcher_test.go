package backend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/paneldeck/internal/deck"
	"go.uber.org/goleak"
)

const deckA = "windows: [{name: alpha}]\n"
const deckB = "flow: stack\nwindows: [{name: alpha}, {name: beta}]\n"

func nextEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		if !ok {
			t.Fatalf("events channel closed")
		}
		return evt
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
	}
	return Event{}
}

func TestWatcherReloadsDeck(t *testing.T) {
	defer goleak.VerifyNone(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.yaml")
	if err := os.WriteFile(path, []byte(deckA), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w, err := NewWatcher(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()

	if err := os.WriteFile(path, []byte(deckB), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	evt := nextEvent(t, w)
	if evt.Kind != KindDeck || evt.Err != nil {
		t.Fatalf("expected deck event, got %#v", evt)
	}
	if len(evt.Deck.Windows) != 2 || evt.Deck.Path != w.Path() {
		t.Fatalf("unexpected deck %#v", evt.Deck)
	}

	if err := os.WriteFile(path, []byte("windows: []\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	evt = nextEvent(t, w)
	if !errors.Is(evt.Err, deck.ErrInvalid) {
		t.Fatalf("expected invalid deck error, got %v", evt.Err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	evt = nextEvent(t, w)
	if !errors.Is(evt.Err, ErrDeckRemoved) {
		t.Fatalf("expected ErrDeckRemoved, got %v", evt.Err)
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	defer goleak.VerifyNone(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.yaml")
	if err := os.WriteFile(path, []byte(deckA), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w, err := NewWatcher(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case evt := <-w.Events():
		t.Fatalf("expected no event for sibling file, got %#v", evt)
	case <-time.After(200 * time.Millisecond):
	}
	w.Stop()
	w.Wait()
	if _, ok := <-w.Events(); ok {
		t.Fatalf("expected events channel closed after Wait")
	}
}

func TestNewWatcherMissingDirectory(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "deck.yaml"), 0); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestThrottleHonoursContext(t *testing.T) {
	th := newThrottle(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	if !th.wait(ctx) {
		t.Fatalf("expected first slot immediately")
	}
	cancel()
	if th.wait(ctx) {
		t.Fatalf("expected cancelled wait to report false")
	}
	if !newThrottle(0).wait(context.Background()) {
		t.Fatalf("expected zero interval to never block")
	}
}
