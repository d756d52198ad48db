package flow

import (
	"sync"

	"github.com/atomicstack/paneldeck/internal/window"
)

// History is the LIFO of windows opened under the stack policy. The top is
// the visible window. A window may appear more than once.
type History struct {
	mu    sync.Mutex
	items []*window.Window
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

func (h *History) Push(w *window.Window) {
	if w == nil {
		return
	}
	h.mu.Lock()
	h.items = append(h.items, w)
	h.mu.Unlock()
}

// Pop removes the top. Popping an empty history reports false.
func (h *History) Pop() (*window.Window, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.items) == 0 {
		return nil, false
	}
	last := len(h.items) - 1
	w := h.items[last]
	h.items[last] = nil
	h.items = h.items[:last]
	return w, true
}

// Top returns the visible window, or nil.
func (h *History) Top() *window.Window {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.items) == 0 {
		return nil
	}
	return h.items[len(h.items)-1]
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

// Windows returns a copy ordered bottom to top.
func (h *History) Windows() []*window.Window {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*window.Window, len(h.items))
	copy(out, h.items)
	return out
}

// Remove drops every entry for w and reports how many were removed.
func (h *History) Remove(w *window.Window) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	kept := h.items[:0]
	removed := 0
	for _, item := range h.items {
		if item == w {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	for i := len(kept); i < len(h.items); i++ {
		h.items[i] = nil
	}
	h.items = kept
	return removed
}

func (h *History) Clear() {
	h.mu.Lock()
	h.items = nil
	h.mu.Unlock()
}
