package ui

import (
	"strings"
	"testing"
)

func TestPickerOpensFilteredWindow(t *testing.T) {
	h := newHarness(t, carouselDeck)
	h.Key("/")
	if h.Model().Mode() != ModePicker {
		t.Fatalf("expected picker mode")
	}
	if item, ok := h.Model().picker.Selected(); !ok || item.ID != "a" {
		t.Fatalf("expected picker focused on current window, got %#v", item)
	}
	h.Type("char")
	if n := len(h.Model().picker.Items); n != 1 {
		t.Fatalf("expected one match, got %d", n)
	}
	if !strings.Contains(h.View(), "Charlie") {
		t.Fatalf("expected match listed, got:\n%s", h.View())
	}
	h.Key("enter")
	if h.Model().Mode() != ModeDeck {
		t.Fatalf("expected picker closed after open")
	}
	if got := currentName(h); got != "c" {
		t.Fatalf("expected c, got %q", got)
	}
}

func TestPickerCursorKeys(t *testing.T) {
	h := newHarness(t, carouselDeck)
	h.Key("o")
	h.Key("down")
	h.Key("down")
	h.Key("down")
	if item, _ := h.Model().picker.Selected(); item.ID != "c" {
		t.Fatalf("expected cursor clamped on c, got %q", item.ID)
	}
	h.Key("up")
	h.Key("enter")
	if got := currentName(h); got != "b" {
		t.Fatalf("expected b, got %q", got)
	}
}

func TestPickerCancelLeavesDeck(t *testing.T) {
	h := newHarness(t, carouselDeck)
	h.Key("/")
	h.Type("b")
	h.Key("esc")
	if h.Model().Mode() != ModeDeck {
		t.Fatalf("expected deck mode after cancel")
	}
	if got := currentName(h); got != "a" {
		t.Fatalf("expected a untouched, got %q", got)
	}
	// q only quits outside the picker
	h.Key("/")
	h.Key("q")
	if h.Quit() {
		t.Fatalf("expected q to be typed into the filter")
	}
}

func TestPickerWithoutMatchesOpensNothing(t *testing.T) {
	h := newHarness(t, carouselDeck)
	h.Key("/")
	h.Type("zzz")
	if !strings.Contains(h.View(), "no matches") {
		t.Fatalf("expected empty state, got:\n%s", h.View())
	}
	h.Key("enter")
	if got := currentName(h); got != "a" {
		t.Fatalf("expected a untouched, got %q", got)
	}
	if h.Model().Busy() {
		t.Fatalf("expected no command queued")
	}
}
