package registry

import (
	"errors"
	"reflect"
	"testing"

	"github.com/atomicstack/paneldeck/internal/layout"
	"github.com/atomicstack/paneldeck/internal/window"
)

var frame = layout.FixedFrame{W: 80, H: 24}

func newWindow(name string) *window.Window {
	return window.New(window.DefaultConfig(name), nil)
}

func TestRegisterInitializesOnce(t *testing.T) {
	reg := New()
	w := newWindow("home")
	if err := reg.Register(w, frame); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !w.Initialized() {
		t.Fatalf("expected window to be initialized on registration")
	}
	if w.IsOpen() {
		t.Fatalf("expected registered window to start closed")
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	reg := New()
	first := newWindow("home")
	second := newWindow("home")
	if err := reg.Register(first, frame); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := reg.Register(second, frame)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if second.Initialized() {
		t.Fatalf("expected rejected window to stay inert")
	}
	got, err := reg.Lookup("home")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != first {
		t.Fatalf("expected name to resolve to the first window")
	}
	if reg.Len() != 1 {
		t.Fatalf("expected 1 window, got %d", reg.Len())
	}
}

func TestRegisterNil(t *testing.T) {
	if err := New().Register(nil, frame); !errors.Is(err, ErrNilWindow) {
		t.Fatalf("expected ErrNilWindow, got %v", err)
	}
}

func TestLookupSuggestsNames(t *testing.T) {
	reg := New()
	for _, name := range []string{"settings", "profile", "inventory"} {
		if err := reg.Register(newWindow(name), frame); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	_, err := reg.Lookup("setings")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
	if len(nf.Suggestions) == 0 || nf.Suggestions[0] != "settings" {
		t.Fatalf("expected settings suggested first, got %v", nf.Suggestions)
	}
}

func TestSuggestEditDistance(t *testing.T) {
	got := Suggest("profiel", []string{"settings", "profile"})
	if !reflect.DeepEqual(got, []string{"profile"}) {
		t.Fatalf("expected [profile], got %v", got)
	}
	if got := Suggest("zzz", []string{"settings", "profile"}); len(got) != 0 {
		t.Fatalf("expected no suggestions, got %v", got)
	}
	if got := Suggest("  ", []string{"settings"}); got != nil {
		t.Fatalf("expected nil for blank query, got %v", got)
	}
}

func TestNamesKeepRegistrationOrder(t *testing.T) {
	reg := New()
	for _, name := range []string{"c", "a", "b"} {
		if err := reg.Register(newWindow(name), frame); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	if got := reg.Names(); !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
		t.Fatalf("expected registration order, got %v", got)
	}

	if _, ok := reg.Unregister("a"); !ok {
		t.Fatalf("expected a to be removed")
	}
	if _, ok := reg.Unregister("a"); ok {
		t.Fatalf("expected second removal to report false")
	}
	if got := reg.Names(); !reflect.DeepEqual(got, []string{"c", "b"}) {
		t.Fatalf("expected [c b], got %v", got)
	}
	windows := reg.Windows()
	if len(windows) != 2 || windows[0].Name() != "c" || windows[1].Name() != "b" {
		t.Fatalf("unexpected windows %v", windows)
	}
}
