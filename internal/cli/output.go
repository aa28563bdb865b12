package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/snmpconsole/internal/analytics"
	"github.com/studiowebux/snmpconsole/internal/console"
	"github.com/studiowebux/snmpconsole/internal/filter"
	"github.com/studiowebux/snmpconsole/internal/types"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// formatResult renders the submission result in the requested format
func formatResult(result types.RequestResult, view console.ResponseView, opts SendOptions) (string, error) {
	body := view.Text
	if opts.Filter != "" || opts.Query != "" {
		filtered, err := filter.ApplyResult(result, opts.Filter, opts.Query)
		if err != nil {
			return "", err
		}
		body = filtered
	}

	switch opts.OutputFormat {
	case "json":
		return ensureNewline(body), nil

	case "yaml":
		var data interface{}
		if err := json.Unmarshal([]byte(body), &data); err != nil {
			// shell queries may return plain text
			return ensureNewline(body), nil
		}
		out, err := yaml.Marshal(data)
		if err != nil {
			return "", err
		}
		return string(out), nil

	case "", "text":
		return ensureNewline(body), nil

	default:
		return "", fmt.Errorf("unsupported output format: %s (use text, json or yaml)", opts.OutputFormat)
	}
}

// formatHistory renders the history rows in the requested format
func formatHistory(entries []types.HistoryEntry, view console.TableView, format string) (string, error) {
	return formatValue(entries, format, func() string {
		return renderTable(view)
	})
}

// formatValue marshals v as json or yaml, or calls text for the text format
func formatValue(v interface{}, format string, text func() string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "", "text":
		return text(), nil

	default:
		return "", fmt.Errorf("unsupported output format: %s (use text, json or yaml)", format)
	}
}

// renderTable draws the history table; a spanning row is printed on its own
func renderTable(view console.TableView) string {
	if len(view.Rows) == 1 && view.Rows[0].Span {
		row := view.Rows[0]
		text := row.Cells[0]
		switch row.Style {
		case console.RowMuted:
			text = mutedStyle.Render(text)
		case console.RowError:
			text = errorStyle.Render(text)
		}
		return text + "\n"
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(view.Columns...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, r := range view.Rows {
		t.Row(r.Cells...)
	}

	return t.String() + "\n"
}

// renderStats draws one table per grouping
func renderStats(report analytics.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Frames: %d\n", report.Total)

	groups := []struct {
		title string
		stats []analytics.Stats
	}{
		{"Type", report.PerType},
		{"Cible", report.PerTarget},
	}

	for _, g := range groups {
		if len(g.stats) == 0 {
			continue
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(g.title, "Appels", "Moy. (ms)", "Min (ms)", "Max (ms)", "Dernier").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})

		for _, s := range g.stats {
			last := "-"
			if !s.LastCalled.IsZero() {
				last = s.LastCalled.Format("2006-01-02 15:04:05")
			}
			t.Row(
				s.Key,
				fmt.Sprintf("%d", s.TotalCalls),
				fmt.Sprintf("%.1f", s.AvgLatencyMs),
				fmt.Sprintf("%d", s.MinLatencyMs),
				fmt.Sprintf("%d", s.MaxLatencyMs),
				last,
			)
		}

		b.WriteString(t.String())
		b.WriteString("\n")
	}

	return b.String()
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
