package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// errPromptCancelled is returned when the operator leaves the selector
var errPromptCancelled = errors.New("sélection annulée")

// operation is one entry of the type selector
type operation struct {
	name, desc string
}

func (o operation) Title() string       { return o.name }
func (o operation) Description() string { return o.desc }
func (o operation) FilterValue() string { return o.name }

// Operations offered by send -i when --type is missing
var operations = []operation{
	{"GET", "Lire la valeur d'un OID"},
	{"GETNEXT", "Lire l'OID suivant"},
	{"SET", "Écrire une valeur"},
	{"TRAP", "Émettre une notification"},
}

// typeSelector is a one-shot bubbletea program around a list.
// An empty choice means the operator cancelled; other means free text.
type typeSelector struct {
	list   list.Model
	choice string
	other  bool
	done   bool
}

func newTypeSelector() typeSelector {
	items := make([]list.Item, len(operations))
	for i, op := range operations {
		items[i] = op
	}

	l := list.New(items, list.NewDefaultDelegate(), 48, 14)
	l.Title = "Type de trame"
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return typeSelector{list: l}
}

func (s typeSelector) Init() tea.Cmd { return nil }

func (s typeSelector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q", "ctrl+c":
			s.done = true
			return s, tea.Quit
		case "o":
			s.other, s.done = true, true
			return s, tea.Quit
		case "enter":
			if op, ok := s.list.SelectedItem().(operation); ok {
				s.choice = op.name
			}
			s.done = true
			return s, tea.Quit
		}
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s typeSelector) View() string {
	if s.done {
		return ""
	}
	hint := lipgloss.NewStyle().Faint(true).Render("entrée: choisir  o: autre type  q: annuler")
	return s.list.View() + "\n" + hint
}

// promptForType lets the operator pick the operation type on stderr
func promptForType() (string, error) {
	final, err := tea.NewProgram(newTypeSelector(), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return "", fmt.Errorf("type selector: %w", err)
	}

	s := final.(typeSelector)
	switch {
	case s.other:
		return promptLine(os.Stdin, os.Stderr, "Type: ")
	case s.choice == "":
		return "", errPromptCancelled
	default:
		return s.choice, nil
	}
}

// promptForCustomValue reads a free-form operation type, kept as typed
func promptForCustomValue(in io.Reader, out io.Writer) (string, error) {
	return promptLine(in, out, "Type: ")
}

// promptLine prints label and returns one line of input without its newline
func promptLine(in io.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// isInteractive reports whether stdin is a terminal
func isInteractive() bool {
	fi, err := os.Stdin.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
