package ui

import (
	"context"

	"github.com/atomicstack/paneldeck/internal/logging/events"
	uistate "github.com/atomicstack/paneldeck/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const maxPickerRows = 8

func (m *Model) openPicker() {
	windows := m.manager.Windows()
	items := make([]uistate.Item, len(windows))
	for i, w := range windows {
		items[i] = uistate.Item{ID: w.Name(), Label: w.Config().Title}
	}
	m.picker = uistate.NewPicker(items)
	if cur := m.manager.CurrentWindow(); cur != nil {
		m.picker.Focus(cur.Name())
	}
	m.picker.EnsureCursorVisible(maxPickerRows)

	ti := textinput.New()
	ti.Prompt = "open › "
	ti.Placeholder = "window name"
	ti.CharLimit = 64
	// a blinking cursor would keep a timer command in flight for as long as
	// the picker is open
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	m.input = ti
	m.mode = ModePicker
	events.Picker.Open(len(items))
}

func (m *Model) closePicker() {
	m.mode = ModeDeck
	m.picker = nil
	m.input.Blur()
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	if m.picker == nil {
		m.closePicker()
		return nil
	}
	switch {
	case key.Matches(msg, m.pickerKeys.Cancel):
		m.closePicker()
		events.Picker.Cancel()
		return nil
	case key.Matches(msg, m.pickerKeys.Open):
		item, ok := m.picker.Selected()
		m.closePicker()
		if !ok {
			return nil
		}
		mgr := m.manager
		name := item.ID
		return m.run("open "+name, func(ctx context.Context) error {
			return mgr.OpenWindow(ctx, name, mgr.Animated())
		})
	case key.Matches(msg, m.pickerKeys.Up):
		m.picker.MoveCursorUp()
		m.picker.EnsureCursorVisible(maxPickerRows)
		return nil
	case key.Matches(msg, m.pickerKeys.Down):
		m.picker.MoveCursorDown()
		m.picker.EnsureCursorVisible(maxPickerRows)
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if query := m.input.Value(); query != m.picker.Filter {
		m.picker.SetFilter(query)
		m.picker.EnsureCursorVisible(maxPickerRows)
		events.Picker.Filter(query, len(m.picker.Items))
	}
	return cmd
}
