package testutil

import "testing"

func TestTrimLines(t *testing.T) {
	got := trimLines("a  \nb \n\n\n")
	if got != "a\nb\n" {
		t.Fatalf("expected trailing blanks trimmed, got %q", got)
	}
}
