package window

import (
	"time"

	"github.com/atomicstack/paneldeck/internal/anim"
	"github.com/atomicstack/paneldeck/internal/layout"
)

// Triple holds the value a property takes before opening (From), while open
// (Stay) and after closing (To).
type Triple[T any] struct {
	From T
	Stay T
	To   T
}

// Hooks are invoked from whichever goroutine drives the timeline. They must not
// block; start follow-up transitions from a separate goroutine.
type Hooks struct {
	OnStart  func(*Window)
	OnOpened func(*Window)
	OnClosed func(*Window)
}

// Config is the construction-time configuration of a window.
type Config struct {
	Name  string
	Title string
	Body  []string
	Size  layout.Size

	From layout.Position
	Stay layout.Position
	To   layout.Position

	// FromBlend scales the travel of the entry side, ToBlend the exit side.
	FromBlend float64
	ToBlend   float64

	Scale    Triple[layout.Vec2]
	Rotation Triple[float64]
	Alpha    Triple[float64]

	OpeningDuration time.Duration
	ClosingDuration time.Duration
	OpeningEase     anim.Ease
	ClosingEase     anim.Ease

	WaitUntilOpeningEnds bool
	WaitUntilClosingEnds bool

	// Watchdog force-completes an awaited transition that has not finished
	// after this long. Zero disables it.
	Watchdog time.Duration

	Hooks Hooks
}

var unitScale = layout.Vec2{X: 1, Y: 1}

// DefaultConfig returns a panel that rises from below, rests in the centre and
// sinks back down.
func DefaultConfig(name string) Config {
	return Config{
		Name:                 name,
		Title:                name,
		Size:                 layout.Size{W: 40, H: 10},
		From:                 layout.Down,
		Stay:                 layout.Center,
		To:                   layout.Down,
		FromBlend:            1,
		ToBlend:              1,
		Scale:                Triple[layout.Vec2]{From: unitScale, Stay: unitScale, To: unitScale},
		Alpha:                Triple[float64]{From: 0, Stay: 1, To: 0},
		OpeningDuration:      500 * time.Millisecond,
		ClosingDuration:      500 * time.Millisecond,
		OpeningEase:          anim.OutBack,
		ClosingEase:          anim.InBack,
		WaitUntilOpeningEnds: true,
		WaitUntilClosingEnds: true,
	}
}
