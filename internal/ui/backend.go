package ui

import (
	"fmt"

	"github.com/atomicstack/paneldeck/internal/backend"
	"github.com/atomicstack/paneldeck/internal/data/dispatcher"
	"github.com/atomicstack/paneldeck/internal/layout"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

type reloadMsg struct {
	result dispatcher.Result
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent rebuilds the deck off the event loop, like every other
// manager operation.
func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	if m.dispatcher == nil {
		if evt.Err != nil {
			m.backendLastErr = evt.Err.Error()
		}
		return nil
	}
	d := m.dispatcher
	ctx := m.ctx
	frame := layout.FixedFrame(m.frame)
	return func() tea.Msg {
		return reloadMsg{result: d.Handle(ctx, evt, frame)}
	}
}

func (m *Model) handleReloadMsg(msg tea.Msg) tea.Cmd {
	reload, ok := msg.(reloadMsg)
	if !ok {
		return nil
	}
	res := reload.result
	if res.Err != nil {
		m.backendLastErr = fmt.Sprintf("deck reload: %v", res.Err)
	} else {
		m.backendLastErr = ""
	}
	if !res.Reloaded || res.Manager == nil {
		return nil
	}
	m.adopt(res)
	return nil
}

// adopt switches the model to a reloaded manager. The dispatcher already shut
// the previous one down, which also dropped its trigger subscriptions.
func (m *Model) adopt(res dispatcher.Result) {
	if m.mode == ModePicker {
		m.closePicker()
	}
	m.manager = res.Manager
	m.manager.Enable(m.next, m.prev)
	m.manager.SetFrame(layout.FixedFrame(m.frame))
	m.syncKeys()
	if res.Restored != "" {
		m.setInfo(fmt.Sprintf("deck reloaded, kept %s", res.Restored))
	} else {
		m.setInfo("deck reloaded")
	}
}
