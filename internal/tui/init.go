package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/studiowebux/snmpconsole/internal/config"
	"github.com/studiowebux/snmpconsole/internal/console"
	"github.com/studiowebux/snmpconsole/internal/executor"
	"github.com/studiowebux/snmpconsole/internal/keybinds"
	"github.com/studiowebux/snmpconsole/internal/logger"
	"github.com/studiowebux/snmpconsole/internal/migrations"
	"github.com/studiowebux/snmpconsole/internal/prefs"
)

// New creates a new TUI model
func New(backend Backend, store prefs.Store, registry *keybinds.Registry, log logrus.FieldLogger) Model {
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	m := Model{
		backend:      backend,
		prefs:        store,
		keybinds:     registry,
		log:          log,
		tabs:         console.NewTabs(console.DefaultSections...),
		dispatcher:   console.NewDispatcher(console.NewDispatcherState(), backend, log),
		loader:       console.NewLoader(console.NewLoaderState(), backend, log),
		responseView: viewport.New(80, 20),
		historyView:  viewport.New(80, 20),
		searchInput:  newInput("recherche"),
		ping:         PingUnknown,
	}

	m.requestInputs = []textinput.Model{
		newInput("GET, GETNEXT, SET, TRAP"),
		newInput("public"),
		newInput("192.168.1.10"),
		newInput("1.3.6.1.2.1.1.1.0"),
		newInput("valeur (SET)"),
	}
	m.configInputs = []textinput.Model{
		newInput("192.168.1.10"),
		newInput("161"),
		newInput("public"),
	}

	return m
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = FormInputLimit
	ti.Width = FormInputWidth
	ti.Prompt = ""
	return ti
}

// Run starts the TUI
func Run(logLevel string) error {
	// Initialize config
	if err := config.Initialize(); err != nil {
		return err
	}

	log, logFile, err := logger.InitFile(config.LogFile, logLevel)
	if err != nil {
		return err
	}
	defer logFile.Close()

	db, err := migrations.Open(config.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open preferences database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing preferences database: %v\n", err)
		}
	}()

	registry, err := keybinds.LoadOrDefault(keybinds.GetDefaultConfigPath())
	if err != nil {
		return err
	}

	backend := executor.NewClient(config.BackendURL)
	m := New(backend, prefs.NewSQLiteStore(db), registry, log)

	log.WithField("backend", config.BackendURL).Info("console started")

	// Pass pointer since Update uses pointer receiver
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
