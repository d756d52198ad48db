package ui

import (
	"context"
	"errors"

	"github.com/atomicstack/paneldeck/internal/logging/events"
	"github.com/atomicstack/paneldeck/internal/manager"
	"github.com/atomicstack/paneldeck/internal/ui/command"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// errTriggerDisabled is reported when a trigger was pressed after the
// manager disabled it.
var errTriggerDisabled = errors.New("nothing to navigate to")

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.mode == ModePicker {
		events.UI.Key(keyMsg.String(), "picker")
		return m.handlePickerKey(keyMsg)
	}
	events.UI.Key(keyMsg.String(), "deck")
	if m.manager == nil {
		if key.Matches(keyMsg, m.keys.Quit) {
			return tea.Quit
		}
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.applyFrame()
	case key.Matches(keyMsg, m.keys.Next):
		return m.press("next", m.next)
	case key.Matches(keyMsg, m.keys.Previous):
		return m.press("previous", m.prev)
	case key.Matches(keyMsg, m.keys.Back):
		mgr := m.manager
		return m.run("close", mgr.CloseLastWindow)
	case key.Matches(keyMsg, m.keys.CloseAll):
		m.manager.CloseAllWindows()
		m.errMsg = ""
		m.setInfo("closed all windows")
		m.syncKeys()
	case key.Matches(keyMsg, m.keys.Pick):
		m.openPicker()
	case key.Matches(keyMsg, m.keys.Animate):
		animated := !m.manager.Animated()
		m.manager.SetAnimated(animated)
		if animated {
			m.setInfo("animation on")
		} else {
			m.setInfo("animation off")
		}
	case key.Matches(keyMsg, m.keys.Inspector):
		m.inspector = !m.inspector
		m.applyFrame()
	}
	return nil
}

// press fires a navigation trigger off the event loop; the manager's
// subscription performs the move.
func (m *Model) press(label string, trigger *manager.Button) tea.Cmd {
	return m.run(label, func(context.Context) error {
		if !trigger.Press() {
			return errTriggerDisabled
		}
		return nil
	})
}

func (m *Model) run(label string, fn func(ctx context.Context) error) tea.Cmd {
	m.pending++
	m.errMsg = ""
	return m.bus.Execute(command.Request{Label: label, Run: fn})
}

func (m *Model) handleCommandResult(msg tea.Msg) tea.Cmd {
	res, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	if m.pending > 0 {
		m.pending--
	}
	m.syncKeys()
	if res.Err != nil {
		m.errMsg = res.Err.Error()
		m.forceClearInfo()
		events.Action.Error(res.Err)
		return nil
	}
	if m.verbose {
		if cur := m.manager.CurrentWindow(); cur != nil {
			m.setInfo(res.Label + ": " + cur.Name())
		} else {
			m.setInfo(res.Label)
		}
	}
	events.Action.Success(res.Label)
	return nil
}

// Busy reports whether manager operations started from the keyboard are
// still running.
func (m *Model) Busy() bool {
	return m.pending > 0
}
