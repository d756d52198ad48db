package theme

import "testing"

func TestFadeEndpoints(t *testing.T) {
	if got := Fade(1); got != "#e4e4e4" {
		t.Fatalf("expected full text colour, got %s", got)
	}
	if got := Fade(0); got != "#1c1c1c" {
		t.Fatalf("expected backdrop at zero alpha, got %s", got)
	}
	if Fade(-3) != Fade(0) || Fade(7) != Fade(1) {
		t.Fatalf("expected alpha to be clamped")
	}
	if mid := Fade(0.5); mid == Fade(0) || mid == Fade(1) {
		t.Fatalf("expected an intermediate colour, got %s", mid)
	}
	if FadeAccent(1) != "#0087ff" {
		t.Fatalf("expected accent colour, got %s", FadeAccent(1))
	}
}
