package command

import (
	"context"
	"errors"
	"testing"
)

type ctxKey struct{}

func TestExecuteRunsRequest(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxKey{}, "deck")
	bus := New(ctx)
	var seen interface{}
	cmd := bus.Execute(Request{Label: "next", Run: func(ctx context.Context) error {
		seen = ctx.Value(ctxKey{})
		return errors.New("boom")
	}})
	res, ok := cmd().(Result)
	if !ok {
		t.Fatalf("expected Result message")
	}
	if seen != "deck" {
		t.Fatalf("expected bus context passed through, got %v", seen)
	}
	if res.Label != "next" || res.ID == "" || res.Err == nil {
		t.Fatalf("unexpected result %#v", res)
	}
}

func TestExecuteSkipsEmptyRequest(t *testing.T) {
	if msg := New(context.Background()).Execute(Request{Label: "noop"})(); msg != nil {
		t.Fatalf("expected nil message, got %#v", msg)
	}
}
