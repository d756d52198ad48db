package events

import (
	"time"

	"github.com/atomicstack/paneldeck/internal/logging"
	"go.uber.org/zap"
)

type WindowTracer struct{}

type Direction string

const (
	DirectionOpening Direction = "opening"
	DirectionClosing Direction = "closing"
)

var Window = WindowTracer{}

func (WindowTracer) Initialize(name string, hasFrame bool) {
	logging.Trace("window.init", map[string]interface{}{"window": name, "frame": hasFrame})
}

// MissingFrame is reported once per window; the window keeps working with its
// raw position as every pose.
func (WindowTracer) MissingFrame(name string) {
	logging.Warn("window has no ancestor frame; transitions will not move it", zap.String("window", name))
	logging.Trace("window.frame.missing", map[string]interface{}{"window": name})
}

func (WindowTracer) TransitionStart(name, id string, dir Direction, from, to string, duration time.Duration) {
	logging.Trace("window.transition.start", map[string]interface{}{
		"window":    name,
		"id":        id,
		"direction": string(dir),
		"from":      from,
		"to":        to,
		"duration":  duration.String(),
	})
}

func (WindowTracer) TransitionComplete(name, id string, dir Direction) {
	logging.Trace("window.transition.complete", map[string]interface{}{"window": name, "id": id, "direction": string(dir)})
}

func (WindowTracer) TransitionCancel(name, id string) {
	logging.Trace("window.transition.cancel", map[string]interface{}{"window": name, "id": id})
}

func (WindowTracer) Watchdog(name, id string, after time.Duration) {
	logging.Warn("transition watchdog fired; forcing completion",
		zap.String("window", name), zap.String("id", id), zap.Duration("after", after))
	logging.Trace("window.transition.watchdog", map[string]interface{}{"window": name, "id": id, "after": after.String()})
}

func (WindowTracer) Snap(name string, open bool) {
	logging.Trace("window.snap", map[string]interface{}{"window": name, "open": open})
}

func (WindowTracer) Destroy(name string) {
	logging.Trace("window.destroy", map[string]interface{}{"window": name})
}
