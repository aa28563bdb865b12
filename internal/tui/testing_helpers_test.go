package tui

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/studiowebux/snmpconsole/internal/keybinds"
	"github.com/studiowebux/snmpconsole/internal/prefs"
	"github.com/studiowebux/snmpconsole/internal/types"
)

// fakeBackend answers from canned values and records submissions
type fakeBackend struct {
	mu         sync.Mutex
	submitted  []types.RequestPayload
	result     types.RequestResult
	submitErr  error
	entries    []types.HistoryEntry
	historyErr error
	pingErr    error
}

func (f *fakeBackend) Submit(_ context.Context, payload types.RequestPayload) (types.RequestResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, payload)
	return f.result, f.submitErr
}

func (f *fakeBackend) History(_ context.Context) ([]types.HistoryEntry, error) {
	return f.entries, f.historyErr
}

func (f *fakeBackend) Ping(_ context.Context) error {
	return f.pingErr
}

// CreateTestModel creates a sized Model over a fake backend and in-memory preferences
func CreateTestModel(t *testing.T) (*Model, *fakeBackend, *prefs.KVStore) {
	t.Helper()

	backend := &fakeBackend{}
	store := prefs.NewMemoryStore()
	log, _ := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	m := New(backend, store, keybinds.NewDefaultRegistry(), log)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	return &m, backend, store
}

// keyMsg builds the key message a terminal would send for key
func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

// press sends one key and returns the command it produced
func press(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyMsg(key))
	return cmd
}

// typeText types text into the focused input, one rune at a time
func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertNoError verifies that an error is nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}
