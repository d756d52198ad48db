package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/paneldeck/internal/anim"
	"github.com/atomicstack/paneldeck/internal/backend"
	"github.com/atomicstack/paneldeck/internal/data/dispatcher"
	"github.com/atomicstack/paneldeck/internal/deck"
	"github.com/atomicstack/paneldeck/internal/manager"
	"github.com/atomicstack/paneldeck/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Config describes user-provided application options.
type Config struct {
	DeckPath      string
	Flow          string
	AllowWrap     *bool
	DefaultWindow string
	NoAnimation   bool
	FPS           int
	Watch         bool
	Width         int
	Height        int
	Verbose       bool
}

func (c Config) overrides() deck.Overrides {
	return deck.Overrides{
		Flow:          c.Flow,
		AllowWrap:     c.AllowWrap,
		DefaultWindow: c.DefaultWindow,
		NoAnimation:   c.NoAnimation,
	}
}

// Session holds everything a running deck needs. Close releases it.
type Session struct {
	Manager    *manager.Manager
	Engine     *anim.Engine
	Watcher    *backend.Watcher
	Dispatcher *dispatcher.Dispatcher
	Deck       *deck.File
}

// Prepare loads the deck, builds and installs its manager and starts the
// optional file watcher. The manager is not attached yet.
func Prepare(cfg Config) (*Session, error) {
	file := deck.Demo()
	if cfg.DeckPath != "" {
		loaded, err := deck.Load(cfg.DeckPath)
		if err != nil {
			return nil, err
		}
		file = loaded
	}
	if err := file.Apply(cfg.overrides()); err != nil {
		return nil, err
	}

	s := &Session{Deck: file}
	var be anim.Backend = anim.Instant{}
	if !cfg.NoAnimation {
		s.Engine = anim.NewEngine()
		be = s.Engine
	}

	m, err := deck.Build(file, be, nil)
	if err != nil {
		return nil, err
	}
	if err := manager.Install(m); err != nil {
		m.Shutdown()
		return nil, err
	}
	s.Manager = m

	if cfg.Watch && cfg.DeckPath != "" {
		w, err := backend.NewWatcher(cfg.DeckPath, backend.DefaultSettle)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.Watcher = w
		s.Dispatcher = dispatcher.New(be, nil, cfg.overrides())
	}
	return s, nil
}

// Close stops the watcher and shuts down whichever manager is installed,
// which may be a reloaded one.
func (s *Session) Close() {
	if s.Watcher != nil {
		s.Watcher.Stop()
		s.Watcher.Wait()
	}
	manager.Teardown()
}

// Model builds the UI model for the session.
func (s *Session) Model(cfg Config) *ui.Model {
	tw, th := terminalSize()
	return ui.NewModel(ui.Options{
		Manager:    s.Manager,
		Engine:     s.Engine,
		FPS:        cfg.FPS,
		Width:      cfg.Width,
		Height:     cfg.Height,
		TermWidth:  tw,
		TermHeight: th,
		Verbose:    cfg.Verbose,
		Watcher:    s.Watcher,
		Dispatcher: s.Dispatcher,
	})
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	session, err := Prepare(cfg)
	if err != nil {
		return fmt.Errorf("prepare deck: %w", err)
	}
	defer session.Close()

	program := tea.NewProgram(session.Model(cfg), tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func terminalSize() (int, int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		return 0, 0
	}
	return w, h
}
