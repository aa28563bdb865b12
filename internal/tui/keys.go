package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/snmpconsole/internal/console"
	"github.com/studiowebux/snmpconsole/internal/keybinds"
)

// keyContext returns the keybind context for the current focus
func (m *Model) keyContext() keybinds.Context {
	switch {
	case m.focus == FocusSearch:
		return keybinds.ContextSearch
	case m.focus == FocusForm:
		return keybinds.ContextForm
	case m.Section() == console.SectionHistory:
		return keybinds.ContextHistory
	default:
		return keybinds.ContextTabs
	}
}

// handleKeyPress routes key presses based on current focus
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if m.showHelp {
		if action, ok := m.keybinds.Match(keybinds.ContextGlobal, key); ok && action == keybinds.ActionQuitForce {
			return tea.Quit
		}
		m.showHelp = false
		return nil
	}

	context := m.keyContext()
	action, ok := m.keybinds.Match(context, key)
	if !ok && context == keybinds.ContextTabs && m.Section() == console.SectionRequest {
		action, ok = m.keybinds.Match(keybinds.ContextResponse, key)
	}
	if !ok {
		return m.updateFocusedInput(msg)
	}

	return m.handleAction(action)
}

// handleAction performs one keybind action
func (m *Model) handleAction(action keybinds.Action) tea.Cmd {
	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		return tea.Quit
	case keybinds.ActionHelp:
		m.showHelp = true

	// Tabs
	case keybinds.ActionNextTab:
		m.blurForm()
		m.tabs.Next()
	case keybinds.ActionPrevTab:
		m.blurForm()
		m.tabs.Prev()
	case keybinds.ActionTabRequest:
		m.activate(console.SectionRequest)
	case keybinds.ActionTabHistory:
		m.activate(console.SectionHistory)
	case keybinds.ActionTabConfig:
		m.activate(console.SectionConfig)

	// Forms
	case keybinds.ActionFocusForm:
		return m.focusForm()
	case keybinds.ActionBlurForm:
		m.blurForm()
	case keybinds.ActionNextField:
		return m.moveField(1)
	case keybinds.ActionPrevField:
		return m.moveField(-1)
	case keybinds.ActionSubmit:
		switch m.Section() {
		case console.SectionRequest:
			return m.submit()
		case console.SectionConfig:
			m.saveConfig()
		}
	case keybinds.ActionSaveConfig:
		m.saveConfig()
	case keybinds.ActionRestore:
		m.restoreConfig()
	case keybinds.ActionPrefill:
		m.prefillRequest()
	case keybinds.ActionPing:
		return m.pingBackend()

	// History
	case keybinds.ActionRefreshHistory:
		return m.loadHistory()
	case keybinds.ActionOpenSearch:
		m.focus = FocusSearch
		return m.searchInput.Focus()
	case keybinds.ActionCloseSearch:
		m.focus = FocusNone
		m.searchInput.Blur()
	case keybinds.ActionClearSearch:
		m.searchInput.SetValue("")
		m.searchQuery = ""
		m.updateHistoryView()

	// Response
	case keybinds.ActionCopyResponse:
		m.copyToClipboard()
	case keybinds.ActionScrollUp:
		m.scrolledView().ScrollUp(1)
	case keybinds.ActionScrollDown:
		m.scrolledView().ScrollDown(1)
	case keybinds.ActionPageUp:
		m.scrolledView().PageUp()
	case keybinds.ActionPageDown:
		m.scrolledView().PageDown()
	case keybinds.ActionGoToTop:
		m.scrolledView().GotoTop()
	case keybinds.ActionGoToBottom:
		m.scrolledView().GotoBottom()
	}

	return nil
}

// updateFocusedInput forwards a key to the input being edited
func (m *Model) updateFocusedInput(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch m.focus {
	case FocusSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
		if q := m.searchInput.Value(); q != m.searchQuery {
			m.searchQuery = q
			m.updateHistoryView()
		}
	case FocusForm:
		inputs := m.formInputs()
		if inputs == nil {
			return nil
		}
		inputs[m.fieldIndex], cmd = inputs[m.fieldIndex].Update(msg)
	}

	return cmd
}

// activate switches tab, dropping any field focus
func (m *Model) activate(section console.Section) {
	m.blurForm()
	if err := m.tabs.Activate(section); err != nil {
		m.log.WithError(err).Warn("activate tab")
	}
}

// formInputs returns the inputs of the visible form, nil when it has none
func (m *Model) formInputs() []textinput.Model {
	switch m.Section() {
	case console.SectionRequest:
		return m.requestInputs
	case console.SectionConfig:
		return m.configInputs
	default:
		return nil
	}
}

func (m *Model) focusForm() tea.Cmd {
	inputs := m.formInputs()
	if inputs == nil {
		return nil
	}
	m.focus = FocusForm
	if m.fieldIndex >= len(inputs) {
		m.fieldIndex = 0
	}
	return inputs[m.fieldIndex].Focus()
}

func (m *Model) blurForm() {
	for i := range m.requestInputs {
		m.requestInputs[i].Blur()
	}
	for i := range m.configInputs {
		m.configInputs[i].Blur()
	}
	m.searchInput.Blur()
	m.focus = FocusNone
	m.fieldIndex = 0
}

func (m *Model) moveField(delta int) tea.Cmd {
	inputs := m.formInputs()
	if inputs == nil {
		return nil
	}
	inputs[m.fieldIndex].Blur()
	m.fieldIndex = (m.fieldIndex + delta + len(inputs)) % len(inputs)
	return inputs[m.fieldIndex].Focus()
}

// scrolledView returns the viewport scroll keys apply to
func (m *Model) scrolledView() *viewport.Model {
	if m.Section() == console.SectionHistory {
		return &m.historyView
	}
	return &m.responseView
}
