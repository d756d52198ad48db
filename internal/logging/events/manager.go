package events

import (
	"github.com/atomicstack/paneldeck/internal/logging"
	"go.uber.org/zap"
)

type ManagerTracer struct{}

var Manager = ManagerTracer{}

func (ManagerTracer) Attach(flow string, windows int, defaultWindow string) {
	logging.Trace("manager.attach", map[string]interface{}{"flow": flow, "windows": windows, "default": defaultWindow})
}

// Op records one manager operation. Failures are logged at warn level; they
// never stop the host.
func (ManagerTracer) Op(op string, err error) {
	payload := map[string]interface{}{"op": op}
	if err != nil {
		payload["error"] = err.Error()
		logging.Warn("window manager operation failed", zap.String("op", op), zap.Error(err))
	}
	logging.Trace("manager.op", payload)
}

func (ManagerTracer) Affordances(next, previous bool) {
	logging.Trace("manager.affordances", map[string]interface{}{"next": next, "previous": previous})
}

func (ManagerTracer) Triggers(enabled bool) {
	logging.Trace("manager.triggers", map[string]interface{}{"enabled": enabled})
}

func (ManagerTracer) Install(replaced bool) {
	logging.Trace("manager.install", map[string]interface{}{"replaced": replaced})
}

func (ManagerTracer) Shutdown() {
	logging.Trace("manager.shutdown", nil)
}
