package events

import "github.com/atomicstack/paneldeck/internal/logging"

type DeckTracer struct{}

var Deck = DeckTracer{}

func (DeckTracer) Load(path string, windows int, flow string) {
	logging.Trace("deck.load", map[string]interface{}{"path": path, "windows": windows, "flow": flow})
}

func (DeckTracer) Reload(path string) {
	logging.Trace("deck.reload", map[string]interface{}{"path": path})
}

func (DeckTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	logging.Trace("deck.error", map[string]interface{}{"path": path, "error": err.Error()})
}
