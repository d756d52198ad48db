package flow

import "errors"

// Policy rejections. A rejected request leaves the strategy untouched.
var (
	ErrTransitionInProgress = errors.New("another transition is in progress")
	ErrBoundary             = errors.New("no window beyond this one and wrapping is disabled")
	ErrUnknownWindow        = errors.New("window is not part of this flow")
	ErrNilWindow            = errors.New("nil window")
	// ErrInterrupted is returned by an operation whose remaining steps were
	// abandoned because CloseAllInstantly reset the flow while it waited.
	ErrInterrupted = errors.New("interrupted by close-all")
)

// ErrUnknownKind is a wiring mistake: the requested flow does not exist.
var ErrUnknownKind = errors.New("unknown flow kind")
