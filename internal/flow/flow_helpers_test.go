package flow

import (
	"testing"

	"github.com/atomicstack/paneldeck/internal/anim"
	"github.com/atomicstack/paneldeck/internal/layout"
	"github.com/atomicstack/paneldeck/internal/testutil"
	"github.com/atomicstack/paneldeck/internal/window"
)

var testFrame = layout.FixedFrame{W: 80, H: 24}

// newWindows builds initialized windows sharing one hook recorder. A nil
// backend completes every transition synchronously.
func newWindows(t *testing.T, backend anim.Backend, names ...string) ([]*window.Window, *testutil.HookRecorder) {
	t.Helper()
	rec := testutil.NewHookRecorder()
	out := make([]*window.Window, 0, len(names))
	for _, name := range names {
		cfg := window.DefaultConfig(name)
		cfg.From = layout.Left
		cfg.To = layout.Right
		cfg.Hooks = rec.Hooks()
		w := window.New(cfg, backend)
		w.Initialize(testFrame)
		out = append(out, w)
	}
	return out, rec
}

func populate(s Strategy, windows []*window.Window) {
	for _, w := range windows {
		s.Add(w)
	}
}

func openNames(windows []*window.Window) []string {
	var out []string
	for _, w := range windows {
		if w.IsOpen() {
			out = append(out, w.Name())
		}
	}
	return out
}

func names(windows []*window.Window) []string {
	out := make([]string, len(windows))
	for i, w := range windows {
		out[i] = w.Name()
	}
	return out
}
