package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/studiowebux/snmpconsole/internal/console"
	"github.com/studiowebux/snmpconsole/internal/keybinds"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#0000ff"} // Dark blue / Blue
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleTab = lipgloss.NewStyle().
			Padding(0, 2)

	styleLabel = lipgloss.NewStyle().
			Width(FormLabelWidth).
			Foreground(colorBlue)
)

// Tab titles, cased at render time
var sectionTitles = map[console.Section]string{
	console.SectionRequest: "requête",
	console.SectionHistory: "historique",
	console.SectionConfig:  "configuration",
}

var titleCaser = cases.Title(language.French)

func tabTitle(section console.Section) string {
	title, ok := sectionTitles[section]
	if !ok {
		title = string(section)
	}
	return titleCaser.String(title)
}

// renderMain renders the tab bar, the visible section and the status bar
func (m *Model) renderMain() string {
	contentWidth := m.width - BorderWidth
	contentHeight := m.height - TabBarHeight - StatusBarHeight - BorderWidth
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	switch m.Section() {
	case console.SectionHistory:
		content = m.renderHistoryTab()
	case console.SectionConfig:
		content = m.renderConfigTab()
	default:
		content = m.renderRequestTab()
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(contentWidth).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTabBar(),
		box,
		m.renderStatusBar(),
	)
}

// renderTabBar renders one header per section, the active one highlighted
func (m *Model) renderTabBar() string {
	var headers []string
	for i, tab := range console.RenderTabs(m.tabs) {
		label := fmt.Sprintf("%d %s", i+1, tabTitle(tab.Section))
		if tab.Active {
			headers = append(headers, styleTab.Inherit(styleSelected).Render(label))
		} else {
			headers = append(headers, styleTab.Inherit(styleSubtle).Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, headers...) + "\n"
}

var requestLabels = []string{"Type", "Communauté", "Cible", "OID", "Valeur"}

var configLabels = []string{"IP", "Port", "Communauté"}

func (m *Model) renderRequestTab() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Envoyer une trame SNMP"))
	b.WriteString("\n\n")
	b.WriteString(m.renderForm(requestLabels, m.requestInputs))

	view := console.RenderResponse(m.dispatcher.State())
	if !view.Visible {
		return b.String()
	}

	border := colorGray
	switch view.Phase {
	case console.PhaseSuccess:
		border = colorGreen
	case console.PhaseError:
		border = colorRed
	case console.PhasePending:
		border = colorYellow
	}

	b.WriteString("\n")
	b.WriteString(styleTitle.Render("Réponse"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(m.responseView.Width).
		Render(m.responseView.View()))

	return b.String()
}

func (m *Model) renderConfigTab() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Configuration du serveur SNMP"))
	b.WriteString("\n\n")
	b.WriteString(m.renderForm(configLabels, m.configInputs))
	return b.String()
}

func (m *Model) renderForm(labels []string, inputs []textinput.Model) string {
	var b strings.Builder
	for i, input := range inputs {
		cursor := "  "
		if m.focus == FocusForm && i == m.fieldIndex {
			cursor = styleTitle.Render("> ")
		}
		b.WriteString(cursor)
		b.WriteString(styleLabel.Render(labels[i]))
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderHistoryTab() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Historique des trames"))
	b.WriteString("\n")

	switch {
	case m.focus == FocusSearch:
		b.WriteString("/ " + m.searchInput.View())
	case m.searchQuery != "":
		b.WriteString(styleSubtle.Render("/ " + m.searchQuery))
	default:
		b.WriteString(styleSubtle.Render(m.keybinds.GetBindingString(keybinds.ContextHistory, keybinds.ActionRefreshHistory) + ": actualiser"))
	}
	b.WriteString("\n")
	b.WriteString(m.historyView.View())

	return b.String()
}

// historyTable returns the table on display, narrowed by the search query
func (m *Model) historyTable() console.TableView {
	state := m.loader.State()
	if state.Phase() != console.LoadPopulated || m.searchQuery == "" {
		return console.RenderHistory(state)
	}
	return console.RenderEntries(m.visibleEntries())
}

// renderTable draws the history table; a spanning row goes below the headers
func renderTable(view console.TableView, width int) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(view.Columns...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTitle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	if width > 0 {
		t = t.Width(width)
	}

	if len(view.Rows) == 1 && view.Rows[0].Span {
		row := view.Rows[0]
		text := row.Cells[0]
		switch row.Style {
		case console.RowMuted:
			text = styleSubtle.Render(text)
		case console.RowError:
			text = styleError.Render(text)
		}
		return t.String() + "\n " + text
	}

	for _, r := range view.Rows {
		t.Row(r.Cells...)
	}
	return t.String()
}

// highlightJSON colours a JSON document for display only
func highlightJSON(text string) string {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, text, "json", "terminal256", "monokai"); err != nil {
		return text
	}
	return buf.String()
}

// renderStatusBar renders the ping indicator, the last message and a help hint
func (m *Model) renderStatusBar() string {
	var ping string
	switch m.ping {
	case PingPending:
		ping = styleWarning.Render("● ...")
	case PingUp:
		ping = styleSuccess.Render("● backend")
	case PingDown:
		ping = styleError.Render("● backend")
	default:
		ping = styleSubtle.Render("○ backend")
	}

	var msg string
	switch {
	case m.errorMsg != "":
		msg = styleError.Render(truncate(m.errorMsg, StatusMaxLength))
	case m.statusMsg != "":
		msg = styleSuccess.Render(truncate(m.statusMsg, StatusMaxLength))
	}

	help := styleSubtle.Render(m.keybinds.GetBindingString(keybinds.ContextTabs, keybinds.ActionHelp) + " aide")

	return strings.Join([]string{ping, msg, help}, "  ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// renderHelp lists the bindings of every context
func (m *Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Raccourcis"))
	b.WriteString("\n\n")

	for _, context := range keybinds.AllContexts {
		bindings := m.keybinds.ListBindings(context)
		if len(bindings) == 0 {
			continue
		}
		b.WriteString(styleWarning.Render(string(context)))
		b.WriteString("\n")
		for _, binding := range bindings {
			fmt.Fprintf(&b, "  %-14s %s\n", binding.Key, binding.Action)
		}
	}

	b.WriteString("\n")
	b.WriteString(styleSubtle.Render("Appuyez sur une touche pour fermer"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(m.width - BorderWidth).
		Render(b.String())
}

// updateViewport sizes the viewports to the window
func (m *Model) updateViewport() {
	width := m.width - BorderWidth*2
	if width < 1 {
		width = 1
	}

	contentHeight := m.height - TabBarHeight - StatusBarHeight - BorderWidth
	responseHeight := contentHeight - FormHeaderLines - len(m.requestInputs) - FormHeaderLines - BorderWidth
	if responseHeight < MinResponseHeight {
		responseHeight = MinResponseHeight
	}
	historyHeight := contentHeight - HistoryHeaderLines
	if historyHeight < 1 {
		historyHeight = 1
	}

	m.responseView.Width = width - BorderWidth
	m.responseView.Height = responseHeight
	m.historyView.Width = width
	m.historyView.Height = historyHeight

	m.updateResponseView()
	m.updateHistoryView()
}

// updateResponseView refreshes the response region content
func (m *Model) updateResponseView() {
	view := console.RenderResponse(m.dispatcher.State())

	content := view.Text
	switch view.Phase {
	case console.PhaseSuccess:
		content = highlightJSON(view.Text)
	case console.PhaseError:
		content = styleError.Render(view.Text)
	}

	m.responseView.SetContent(content)
	m.responseView.GotoTop()
}

// updateHistoryView refreshes the history table content
func (m *Model) updateHistoryView() {
	m.historyView.SetContent(renderTable(m.historyTable(), m.historyView.Width))
	m.historyView.GotoTop()
}
