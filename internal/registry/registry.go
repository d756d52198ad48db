package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/atomicstack/paneldeck/internal/layout"
	"github.com/atomicstack/paneldeck/internal/logging/events"
	"github.com/atomicstack/paneldeck/internal/window"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

var (
	// ErrDuplicate is returned when a name is already taken. The existing
	// window keeps the name.
	ErrDuplicate = errors.New("window already registered")
	// ErrNotFound is returned by Lookup for unknown names.
	ErrNotFound  = errors.New("window not registered")
	ErrNilWindow = errors.New("nil window")
)

// maxSuggestions bounds the "did you mean" list attached to ErrNotFound.
const maxSuggestions = 3

// NotFoundError carries the requested name and close matches.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("%s: %q", ErrNotFound, e.Name)
	}
	return fmt.Sprintf("%s: %q (did you mean %s?)", ErrNotFound, e.Name, strings.Join(e.Suggestions, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// Registry maps window names to windows and remembers registration order.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*window.Window
	order  []string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{byName: make(map[string]*window.Window)}
}

// Register initializes w against frame and records it under its name.
// Initialization happens exactly once, on the first successful registration.
func (r *Registry) Register(w *window.Window, frame layout.Frame) error {
	if w == nil {
		return ErrNilWindow
	}
	name := w.Name()
	r.mu.Lock()
	if _, exists := r.byName[name]; exists {
		r.mu.Unlock()
		events.Registry.Duplicate(name)
		return fmt.Errorf("register %q: %w", name, ErrDuplicate)
	}
	r.byName[name] = w
	r.order = append(r.order, name)
	total := len(r.order)
	r.mu.Unlock()

	w.Initialize(frame)
	events.Registry.Register(name, total)
	return nil
}

// Unregister removes the named window and returns it.
func (r *Registry) Unregister(name string) (*window.Window, bool) {
	r.mu.Lock()
	w, ok := r.byName[name]
	if ok {
		delete(r.byName, name)
		for i, n := range r.order {
			if n == name {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	r.mu.Unlock()
	if ok {
		events.Registry.Unregister(name)
	}
	return w, ok
}

// Find locates a window by name without logging misses.
func (r *Registry) Find(name string) (*window.Window, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.byName[name]
	return w, ok
}

// Lookup resolves a name, reporting misses with suggestions.
func (r *Registry) Lookup(name string) (*window.Window, error) {
	if w, ok := r.Find(name); ok {
		return w, nil
	}
	suggestions := Suggest(name, r.Names())
	events.Registry.Missing(name, suggestions)
	return nil, &NotFoundError{Name: name, Suggestions: suggestions}
}

// Names returns window names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Windows returns the registered windows in registration order.
func (r *Registry) Windows() []*window.Window {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*window.Window, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Len reports how many windows are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Suggest ranks candidates that look like query: subsequence matches first,
// then small edit distances.
func Suggest(query string, candidates []string) []string {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || len(candidates) == 0 {
		return nil
	}
	type scored struct {
		name  string
		score int
		index int
	}
	seen := make(map[string]struct{})
	var picks []scored
	for _, rank := range fuzzy.RankFindNormalizedFold(trimmed, candidates) {
		seen[rank.Target] = struct{}{}
		picks = append(picks, scored{name: rank.Target, score: rank.Distance, index: rank.OriginalIndex})
	}
	lower := strings.ToLower(trimmed)
	limit := len(lower)/3 + 1
	for i, candidate := range candidates {
		if _, ok := seen[candidate]; ok {
			continue
		}
		d := fuzzy.LevenshteinDistance(lower, strings.ToLower(candidate))
		if d <= limit {
			// edit-distance matches rank behind every subsequence match
			picks = append(picks, scored{name: candidate, score: 1000 + d, index: i})
		}
	}
	sort.SliceStable(picks, func(i, j int) bool {
		if picks[i].score != picks[j].score {
			return picks[i].score < picks[j].score
		}
		return picks[i].index < picks[j].index
	})
	if len(picks) > maxSuggestions {
		picks = picks[:maxSuggestions]
	}
	out := make([]string, len(picks))
	for i, p := range picks {
		out[i] = p.name
	}
	return out
}
