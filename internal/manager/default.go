package manager

import (
	"errors"
	"sync"

	"github.com/atomicstack/paneldeck/internal/logging/events"
)

// ErrAlreadyInstalled is returned when a different manager already holds the
// process-wide slot.
var ErrAlreadyInstalled = errors.New("a window manager is already installed")

var (
	defaultMu sync.Mutex
	installed *Manager
)

// Install makes m the process-wide manager. Installing the same manager again
// is a no-op.
func Install(m *Manager) error {
	if m == nil {
		return errors.New("install: nil manager")
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if installed != nil && installed != m {
		return ErrAlreadyInstalled
	}
	installed = m
	events.Manager.Install(false)
	return nil
}

// Replace installs m and returns the previous manager, which is not shut
// down.
func Replace(m *Manager) *Manager {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := installed
	installed = m
	events.Manager.Install(prev != nil)
	return prev
}

// Default returns the installed manager. Nothing is constructed implicitly.
func Default() (*Manager, bool) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return installed, installed != nil
}

// Teardown shuts down and removes the installed manager.
func Teardown() {
	defaultMu.Lock()
	m := installed
	installed = nil
	defaultMu.Unlock()
	if m != nil {
		m.Shutdown()
	}
}
