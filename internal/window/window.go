package window

import (
	"fmt"
	"sync"

	"github.com/atomicstack/paneldeck/internal/anim"
	"github.com/atomicstack/paneldeck/internal/layout"
	"github.com/atomicstack/paneldeck/internal/logging/events"
)

// Phase is the transition state of a window.
type Phase int

const (
	Closed Phase = iota
	Opening
	Open
	Closing
)

func (p Phase) String() string {
	switch p {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Surface is the render handle: visibility and input state.
type Surface struct {
	Alpha        float64
	Interactable bool
	BlocksInput  bool
}

// Transform is the layout handle: where and how large the panel is drawn.
type Transform struct {
	Position layout.Vec2
	Scale    layout.Vec2
	Rotation float64
	Size     layout.Size
}

// State is a point-in-time copy of a window for renderers and tests.
type State struct {
	Name       string
	Title      string
	Body       []string
	Open       bool
	Phase      Phase
	Surface    Surface
	Transform  Transform
	Transition string
	Progress   float64
}

// Window is a single navigable panel. Its render and layout handles are owned
// exclusively by the window and only change through its transition API.
type Window struct {
	cfg     Config
	backend anim.Backend

	mu          sync.Mutex
	frame       layout.Frame
	initialized bool
	surface     Surface
	transform   Transform
	open        bool
	phase       Phase
	// gen increments with every transition or snap; callbacks from older
	// timelines compare against it and drop their writes.
	gen      uint64
	timeline *anim.Timeline
}

// New constructs an inert window. A nil backend completes every transition
// immediately.
func New(cfg Config, backend anim.Backend) *Window {
	if backend == nil {
		backend = anim.Instant{}
	}
	return &Window{
		cfg:     cfg,
		backend: backend,
		transform: Transform{
			Scale: cfg.Scale.To,
			Size:  cfg.Size,
		},
	}
}

// Name returns the window's unique name.
func (w *Window) Name() string {
	return w.cfg.Name
}

// Config returns a copy of the construction-time configuration.
func (w *Window) Config() Config {
	return w.cfg
}

// WaitUntilOpeningEnds reports whether flows should await this window's opening.
func (w *Window) WaitUntilOpeningEnds() bool {
	return w.cfg.WaitUntilOpeningEnds
}

// WaitUntilClosingEnds reports whether Close suspends until the closing ends.
func (w *Window) WaitUntilClosingEnds() bool {
	return w.cfg.WaitUntilClosingEnds
}

// IsOpen reports the logical target state. It flips the moment a transition
// starts, not when it completes.
func (w *Window) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

// Phase reports the current transition phase.
func (w *Window) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Initialized reports whether Initialize has run.
func (w *Window) Initialized() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.initialized
}

// Initialize binds the window to its ancestor frame and forces the closed
// pose. A nil frame is a configuration error: it is reported once and every
// pose falls back to the current raw position. Later calls are ignored.
func (w *Window) Initialize(frame layout.Frame) {
	w.mu.Lock()
	if w.initialized {
		w.mu.Unlock()
		return
	}
	w.initialized = true
	w.frame = frame
	w.transform.Size = w.cfg.Size
	w.mu.Unlock()

	events.Window.Initialize(w.cfg.Name, frame != nil)
	if frame == nil {
		events.Window.MissingFrame(w.cfg.Name)
	}
	w.CloseNow()
}

// SetFrame swaps the ancestor frame, for example after a terminal resize. A
// settled window is snapped to its pose in the new frame; a running transition
// keeps its endpoints.
func (w *Window) SetFrame(frame layout.Frame) {
	w.mu.Lock()
	if frame == nil {
		w.mu.Unlock()
		return
	}
	w.frame = frame
	tl := w.timeline
	w.mu.Unlock()

	if tl != nil && tl.Active() {
		return
	}
	w.mu.Lock()
	if w.timeline == tl {
		w.transform.Position = w.settledPositionLocked()
	}
	w.mu.Unlock()
}

// Snapshot copies the window's current state.
func (w *Window) Snapshot() State {
	w.mu.Lock()
	st := State{
		Name:      w.cfg.Name,
		Title:     w.cfg.Title,
		Body:      w.cfg.Body,
		Open:      w.open,
		Phase:     w.phase,
		Surface:   w.surface,
		Transform: w.transform,
	}
	tl := w.timeline
	w.mu.Unlock()

	if tl != nil && tl.Active() {
		st.Transition = tl.ID()
		st.Progress = tl.Progress()
	}
	return st
}

// Destroy cancels any in-flight transition without completing it.
func (w *Window) Destroy() {
	w.killActive(false)
	w.mu.Lock()
	w.gen++
	if w.open {
		w.phase = Open
	} else {
		w.phase = Closed
	}
	w.mu.Unlock()
	events.Window.Destroy(w.cfg.Name)
}

func (w *Window) settledPositionLocked() layout.Vec2 {
	if w.open {
		return w.poseLocked(w.cfg.Stay, 1, w.transform.Scale)
	}
	return w.poseLocked(w.cfg.To, w.cfg.ToBlend, w.transform.Scale)
}

func (w *Window) poseLocked(pos layout.Position, blend float64, scale layout.Vec2) layout.Vec2 {
	if w.frame == nil {
		return w.transform.Position
	}
	return layout.Resolve(w.frame.Bounds(), w.cfg.Size.Scaled(scale), pos, blend)
}

func (w *Window) fire(hook func(*Window)) {
	if hook != nil {
		hook(w)
	}
}
