package tui

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/snmpconsole/internal/console"
)

const (
	statusNoPreferences = "Aucune configuration sauvegardée."
	statusRestored      = "Configuration restaurée."
	statusPrefilled     = "Formulaire pré-rempli depuis la configuration."
	statusCopied        = "Réponse copiée dans le presse-papiers."
	statusNothingToCopy = "Aucune réponse à copier."
)

// submit enters pending synchronously and sends the request form.
// The payload is built here and handed to the command, never stored.
func (m *Model) submit() tea.Cmd {
	payload := m.RequestForm().Payload()
	seq := m.dispatcher.Begin()
	m.updateResponseView()

	dispatcher := m.dispatcher
	return func() tea.Msg {
		result, err := dispatcher.Exchange(context.Background(), payload)
		return submitResultMsg{seq: seq, result: result, err: err}
	}
}

// loadHistory shows the loading row synchronously and fetches the history
func (m *Model) loadHistory() tea.Cmd {
	seq := m.loader.Begin()
	m.updateHistoryView()

	loader := m.loader
	return func() tea.Msg {
		entries, err := loader.Fetch(context.Background())
		return historyResultMsg{seq: seq, entries: entries, err: err}
	}
}

// pingBackend checks whether the backend answers
func (m *Model) pingBackend() tea.Cmd {
	m.ping = PingPending

	backend := m.backend
	return func() tea.Msg {
		return pingResultMsg{err: backend.Ping(context.Background())}
	}
}

// saveConfig persists the config form
func (m *Model) saveConfig() {
	text, err := console.SavePreferences(m.prefs, m.ConfigForm())
	if err != nil {
		m.log.WithError(err).Error("save preferences")
		m.setErrorMessage(err.Error())
		return
	}
	m.log.Info("preferences saved")
	m.setStatusMessage(text)
}

// restoreConfig fills the config form from the saved preferences
func (m *Model) restoreConfig() {
	p, ok, err := m.prefs.Load()
	if err != nil {
		m.log.WithError(err).Error("load preferences")
		m.setErrorMessage(err.Error())
		return
	}
	if !ok {
		m.setStatusMessage(statusNoPreferences)
		return
	}

	form := m.ConfigForm()
	form.Restore(p)
	m.setConfigForm(form)
	m.setStatusMessage(statusRestored)
}

// prefillRequest copies the saved target and community into the request form
func (m *Model) prefillRequest() {
	p, ok, err := m.prefs.Load()
	if err != nil {
		m.log.WithError(err).Error("load preferences")
		m.setErrorMessage(err.Error())
		return
	}
	if !ok {
		m.setStatusMessage(statusNoPreferences)
		return
	}

	form := m.RequestForm()
	form.ApplyDefaults(p)
	m.setRequestForm(form)
	m.setStatusMessage(statusPrefilled)
}

// copyToClipboard copies the response region text
func (m *Model) copyToClipboard() {
	view := console.RenderResponse(m.dispatcher.State())
	if !view.Visible {
		m.setStatusMessage(statusNothingToCopy)
		return
	}

	if err := clipboard.WriteAll(view.Text); err != nil {
		m.setErrorMessage("Copie impossible: " + err.Error())
		return
	}
	m.setStatusMessage(statusCopied)
}

func (m *Model) setStatusMessage(msg string) {
	m.errorMsg = ""
	m.statusMsg = msg
}

func (m *Model) setErrorMessage(msg string) {
	m.statusMsg = ""
	m.errorMsg = msg
}
