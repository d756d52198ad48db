package events

import "github.com/atomicstack/paneldeck/internal/logging"

type UITracer struct{}

type PickerTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Picker  = PickerTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Key(key string, mode string) {
	logging.Trace("ui.key", map[string]interface{}{"key": key, "mode": mode})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (PickerTracer) Open(count int) {
	logging.Trace("picker.open", map[string]interface{}{"windows": count})
}

func (PickerTracer) Filter(query string, matches int) {
	logging.Trace("picker.filter", map[string]interface{}{"query": query, "matches": matches})
}

func (PickerTracer) Cancel() {
	logging.Trace("picker.cancel", nil)
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, outcome string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "outcome": outcome})
}
