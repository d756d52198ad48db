package events

import (
	"github.com/atomicstack/paneldeck/internal/logging"
	"go.uber.org/zap"
)

type FlowTracer struct{}

var Flow = FlowTracer{}

// Reject records a policy rejection. The request had no effect.
func (FlowTracer) Reject(kind, op string, reason error) {
	if reason == nil {
		return
	}
	logging.Warn("navigation request rejected",
		zap.String("flow", kind), zap.String("op", op), zap.Error(reason))
	logging.Trace("flow.reject", map[string]interface{}{"flow": kind, "op": op, "reason": reason.Error()})
}

func (FlowTracer) Open(kind, window string, animated, reversed bool) {
	logging.Trace("flow.open", map[string]interface{}{
		"flow":     kind,
		"window":   window,
		"animated": animated,
		"reversed": reversed,
	})
}

func (FlowTracer) Close(kind, window string, animated bool) {
	logging.Trace("flow.close", map[string]interface{}{"flow": kind, "window": window, "animated": animated})
}

func (FlowTracer) Reopen(kind, window string) {
	logging.Trace("flow.reopen", map[string]interface{}{"flow": kind, "window": window})
}

func (FlowTracer) Step(kind, op string, from, to int) {
	logging.Trace("flow.step", map[string]interface{}{"flow": kind, "op": op, "from": from, "to": to})
}

func (FlowTracer) CloseAll(kind string, count int) {
	logging.Trace("flow.close-all", map[string]interface{}{"flow": kind, "windows": count})
}

func (FlowTracer) HistoryEmpty(kind string) {
	logging.Trace("flow.history.empty", map[string]interface{}{"flow": kind})
}
