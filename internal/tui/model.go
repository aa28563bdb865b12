package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/studiowebux/snmpconsole/internal/console"
	"github.com/studiowebux/snmpconsole/internal/keybinds"
	"github.com/studiowebux/snmpconsole/internal/prefs"
	"github.com/studiowebux/snmpconsole/internal/types"
)

// Backend is the agent backend as seen by the console
type Backend interface {
	console.Submitter
	console.HistoryFetcher
	Ping(ctx context.Context) error
}

// Focus tells which widget receives typed characters
type Focus int

const (
	FocusNone   Focus = iota // Keys drive tabs and scrolling
	FocusForm                // A form field is being edited
	FocusSearch              // The history search input is being edited
)

// PingState is the backend reachability indicator
type PingState int

const (
	PingUnknown PingState = iota
	PingPending
	PingUp
	PingDown
)

// Request form field order
const (
	fieldType = iota
	fieldCommunity
	fieldTarget
	fieldOID
	fieldValue
)

// Config form field order
const (
	fieldIP = iota
	fieldPort
	fieldConfigCommunity
)

// Model is the console state
type Model struct {
	backend  Backend
	prefs    prefs.Store
	keybinds *keybinds.Registry
	log      logrus.FieldLogger

	tabs       *console.Tabs
	dispatcher *console.Dispatcher
	loader     *console.Loader

	// Forms
	requestInputs []textinput.Model
	configInputs  []textinput.Model
	fieldIndex    int // Focused field of the visible form
	focus         Focus

	// Response region
	responseView viewport.Model

	// History table
	historyView viewport.Model
	searchInput textinput.Model
	searchQuery string

	ping      PingState
	showHelp  bool
	statusMsg string
	errorMsg  string

	width  int
	height int
}

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewport()

	case submitResultMsg:
		m.dispatcher.Complete(msg.seq, msg.result, msg.err)
		m.updateResponseView()

	case historyResultMsg:
		m.loader.Complete(msg.seq, msg.entries, msg.err)
		m.updateHistoryView()

	case pingResultMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("backend unreachable")
			m.ping = PingDown
		} else {
			m.ping = PingUp
		}
	}

	return m, cmd
}

// View renders the TUI
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// Section returns the visible section
func (m *Model) Section() console.Section {
	return m.tabs.Active()
}

// RequestForm returns the request fields as typed
func (m *Model) RequestForm() console.RequestForm {
	return console.RequestForm{
		Type:      m.requestInputs[fieldType].Value(),
		Community: m.requestInputs[fieldCommunity].Value(),
		Target:    m.requestInputs[fieldTarget].Value(),
		OID:       m.requestInputs[fieldOID].Value(),
		Value:     m.requestInputs[fieldValue].Value(),
	}
}

func (m *Model) setRequestForm(f console.RequestForm) {
	m.requestInputs[fieldType].SetValue(f.Type)
	m.requestInputs[fieldCommunity].SetValue(f.Community)
	m.requestInputs[fieldTarget].SetValue(f.Target)
	m.requestInputs[fieldOID].SetValue(f.OID)
	m.requestInputs[fieldValue].SetValue(f.Value)
}

// ConfigForm returns the connection default fields as typed
func (m *Model) ConfigForm() console.ConfigForm {
	return console.ConfigForm{
		IP:        m.configInputs[fieldIP].Value(),
		Port:      m.configInputs[fieldPort].Value(),
		Community: m.configInputs[fieldConfigCommunity].Value(),
	}
}

func (m *Model) setConfigForm(f console.ConfigForm) {
	m.configInputs[fieldIP].SetValue(f.IP)
	m.configInputs[fieldPort].SetValue(f.Port)
	m.configInputs[fieldConfigCommunity].SetValue(f.Community)
}

// visibleEntries returns the loaded rows matching the search query
func (m *Model) visibleEntries() []types.HistoryEntry {
	return console.SearchEntries(m.loader.State().Entries(), m.searchQuery)
}

// Custom message types
type submitResultMsg struct {
	seq    uint64
	result types.RequestResult
	err    error
}

type historyResultMsg struct {
	seq     uint64
	entries []types.HistoryEntry
	err     error
}

type pingResultMsg struct {
	err error
}
