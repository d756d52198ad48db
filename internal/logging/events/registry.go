package events

import (
	"github.com/atomicstack/paneldeck/internal/logging"
	"go.uber.org/zap"
)

type RegistryTracer struct{}

var Registry = RegistryTracer{}

func (RegistryTracer) Register(name string, total int) {
	logging.Trace("registry.register", map[string]interface{}{"window": name, "total": total})
}

func (RegistryTracer) Duplicate(name string) {
	logging.Warn("window already registered", zap.String("window", name))
	logging.Trace("registry.duplicate", map[string]interface{}{"window": name})
}

func (RegistryTracer) Missing(name string, suggestions []string) {
	logging.Warn("window not registered", zap.String("window", name), zap.Strings("suggestions", suggestions))
	logging.Trace("registry.missing", map[string]interface{}{"window": name, "suggestions": suggestions})
}

func (RegistryTracer) Unregister(name string) {
	logging.Trace("registry.unregister", map[string]interface{}{"window": name})
}
