package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/atomicstack/paneldeck/internal/anim"
	"github.com/atomicstack/paneldeck/internal/backend"
	"github.com/atomicstack/paneldeck/internal/data/dispatcher"
	"github.com/atomicstack/paneldeck/internal/layout"
	"github.com/atomicstack/paneldeck/internal/logging/events"
	"github.com/atomicstack/paneldeck/internal/manager"
	"github.com/atomicstack/paneldeck/internal/theme"
	"github.com/atomicstack/paneldeck/internal/ui/command"
	uistate "github.com/atomicstack/paneldeck/internal/ui/state"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type Mode int

const (
	ModeDeck Mode = iota
	ModePicker
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures the host model.
type Options struct {
	Manager *manager.Manager
	// Engine is advanced on every frame tick. Nil means the deck runs on an
	// instant backend and no ticks are scheduled.
	Engine *anim.Engine
	FPS    int
	// Width and Height pin the viewport; zero follows the terminal.
	Width  int
	Height int
	// TermWidth and TermHeight seed an unpinned viewport until the first
	// resize arrives.
	TermWidth  int
	TermHeight int
	Verbose    bool

	Watcher    *backend.Watcher
	Dispatcher *dispatcher.Dispatcher
	Context    context.Context
}

// Model implements the Bubble Tea model hosting a window deck.
type Model struct {
	manager  *manager.Manager
	engine   *anim.Engine
	interval time.Duration
	next     *manager.Button
	prev     *manager.Button

	keys       keyMap
	pickerKeys pickerKeyMap
	help       help.Model
	mode       Mode
	picker     *uistate.Picker
	input      textinput.Model
	inspector  bool

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	frame       layout.Size

	errMsg         string
	infoMsg        string
	infoExpire     time.Time
	backendLastErr string
	verbose        bool
	pending        int

	ctx        context.Context
	bus        *command.Bus
	backend    *backend.Watcher
	dispatcher *dispatcher.Dispatcher

	handlers map[reflect.Type]msgHandler
}

// NewModel wires the triggers into the manager and attaches it to the
// initial viewport.
func NewModel(opts Options) *Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := &Model{
		manager:    opts.Manager,
		engine:     opts.Engine,
		next:       manager.NewButton(),
		prev:       manager.NewButton(),
		keys:       defaultKeyMap(),
		pickerKeys: defaultPickerKeyMap(),
		help:       help.New(),
		mode:       ModeDeck,
		width:      defaultWidth,
		height:     defaultHeight,
		verbose:    opts.Verbose,
		ctx:        ctx,
		bus:        command.New(ctx),
		backend:    opts.Watcher,
		dispatcher: opts.Dispatcher,
	}
	if opts.Engine != nil && opts.FPS > 0 {
		m.interval = time.Second / time.Duration(opts.FPS)
	}
	if opts.TermWidth > 0 {
		m.width = opts.TermWidth
	}
	if opts.TermHeight > 0 {
		m.height = opts.TermHeight
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.frame = m.canvasSize()
	if m.manager != nil {
		if err := m.manager.Attach(ctx, layout.FixedFrame(m.frame)); err != nil {
			m.errMsg = err.Error()
		}
		m.manager.Enable(m.next, m.prev)
	}
	m.syncKeys()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if cmd := m.tick(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(frameMsg{}):          m.handleFrameMsg,
		reflect.TypeOf(command.Result{}):    m.handleCommandResult,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(reloadMsg{}):         m.handleReloadMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// Manager returns the manager currently hosted; it changes on deck reload.
func (m *Model) Manager() *manager.Manager {
	return m.manager
}

func (m *Model) Mode() Mode {
	return m.mode
}

// frameMsg carries the wall time of a frame tick.
type frameMsg time.Time

func (m *Model) tick() tea.Cmd {
	if m.engine == nil || m.interval <= 0 {
		return nil
	}
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) handleFrameMsg(msg tea.Msg) tea.Cmd {
	frame, ok := msg.(frameMsg)
	if !ok {
		return nil
	}
	if m.engine != nil {
		m.engine.Advance(time.Time(frame))
	}
	m.syncKeys()
	return m.tick()
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	m.applyFrame()
	return nil
}

// applyFrame hands the canvas size to the manager whenever it changes.
func (m *Model) applyFrame() {
	size := m.canvasSize()
	if size == m.frame {
		return
	}
	m.frame = size
	if m.manager != nil {
		m.manager.SetFrame(layout.FixedFrame(size))
	}
}

// syncKeys mirrors the trigger buttons onto the key bindings so disabled
// directions neither match nor show in the help footer.
func (m *Model) syncKeys() {
	m.keys.Next.SetEnabled(m.next.Enabled())
	m.keys.Previous.SetEnabled(m.prev.Enabled())
	active := m.manager != nil && m.manager.ActiveCount() > 0
	m.keys.Back.SetEnabled(active)
	m.keys.CloseAll.SetEnabled(active)
	m.keys.Pick.SetEnabled(m.manager != nil && len(m.manager.Windows()) > 0)
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}
