package deck

import (
	"fmt"

	"github.com/atomicstack/paneldeck/internal/anim"
	"github.com/atomicstack/paneldeck/internal/manager"
	"github.com/atomicstack/paneldeck/internal/window"
)

// Build creates the deck's windows on backend and a manager over them. hooks
// is attached to every window; nil leaves them without hooks.
func Build(file *File, backend anim.Backend, hooks *window.Hooks) (*manager.Manager, error) {
	if file == nil {
		return nil, fmt.Errorf("build deck: nil deck")
	}
	windows := make([]*window.Window, 0, len(file.Windows))
	for _, cfg := range file.Configs() {
		if hooks != nil {
			cfg.Hooks = *hooks
		}
		windows = append(windows, window.New(cfg, backend))
	}
	m, err := manager.New(file.Options(), windows)
	if err != nil {
		return nil, fmt.Errorf("build deck: %w", err)
	}
	return m, nil
}
