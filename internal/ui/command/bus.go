package command

import (
	"context"

	"github.com/atomicstack/paneldeck/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Request encapsulates one manager operation.
type Request struct {
	Label string
	Run   func(ctx context.Context) error
}

// Result is delivered to the model once a request finished.
type Result struct {
	ID    string
	Label string
	Err   error
}

// Bus runs manager operations off the Bubble Tea event loop. Operations
// block until their transitions complete, and the frames that complete them
// are delivered by that same loop.
type Bus struct {
	ctx context.Context
}

// New initialises a command bus whose operations observe ctx.
func New(ctx context.Context) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{ctx: ctx}
}

// Execute wraps req into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	id := uuid.NewString()
	events.Command.Queue(id, req.Label)
	return func() tea.Msg {
		if req.Run == nil {
			events.Command.Skip(id, req.Label)
			return nil
		}
		res := Result{ID: id, Label: req.Label, Err: req.Run(b.ctx)}
		events.Command.Result(id, req.Label, resultKind(res.Err))
		return res
	}
}

func resultKind(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
