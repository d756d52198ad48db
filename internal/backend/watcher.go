package backend

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/atomicstack/paneldeck/internal/deck"
	"github.com/atomicstack/paneldeck/internal/logging/events"
	"github.com/fsnotify/fsnotify"
)

// Kind represents the type of data emitted by the watcher.
type Kind int

const (
	// KindDeck carries a freshly loaded deck, or the error loading it.
	KindDeck Kind = iota
	// KindWatchError reports a failure of the file watcher itself.
	KindWatchError
)

// Event conveys a reloaded deck or an error.
type Event struct {
	Kind Kind
	Deck *deck.File
	Err  error
}

// ErrDeckRemoved is reported when the watched deck file disappears. The
// running deck stays in place.
var ErrDeckRemoved = errors.New("deck file removed")

const (
	// DefaultSettle is how long a burst of writes must stay quiet before the
	// deck is reloaded.
	DefaultSettle = 150 * time.Millisecond
	minReloadGap  = 250 * time.Millisecond
)

// Watcher reloads a deck file whenever it changes on disk and publishes the
// result. The directory is watched rather than the file so editors that save
// by renaming are followed.
type Watcher struct {
	path   string
	settle time.Duration
	fsw    *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. settle <= 0 uses DefaultSettle.
func NewWatcher(path string, settle time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch deck: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch deck: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch deck: %w", err)
	}
	if settle <= 0 {
		settle = DefaultSettle
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:   abs,
		settle: settle,
		fsw:    fsw,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 4),
	}
	w.wg.Add(1)
	go w.run()
	go func() {
		w.wg.Wait()
		close(w.events)
	}()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns a channel of reload events. It is closed after Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher and releases the underlying inotify handle.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watcher goroutine has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer w.fsw.Close()

	gap := newThrottle(minReloadGap)
	var (
		settle  *time.Timer
		settled <-chan time.Time
	)
	defer func() {
		if settle != nil {
			settle.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Remove) {
				if !w.emit(Event{Kind: KindDeck, Err: fmt.Errorf("%s: %w", w.path, ErrDeckRemoved)}) {
					return
				}
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if settle == nil {
				settle = time.NewTimer(w.settle)
			} else {
				if !settle.Stop() {
					select {
					case <-settle.C:
					default:
					}
				}
				settle.Reset(w.settle)
			}
			settled = settle.C
		case <-settled:
			settled = nil
			if !gap.wait(w.ctx) {
				return
			}
			events.Deck.Reload(w.path)
			file, err := deck.Load(w.path)
			if !w.emit(Event{Kind: KindDeck, Deck: file, Err: err}) {
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if !w.emit(Event{Kind: KindWatchError, Err: err}) {
				return
			}
		}
	}
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
