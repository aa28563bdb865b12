// Package cli runs the console flows once, without the TUI, and prints
// what the corresponding panel would show.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/jsonc"

	"github.com/studiowebux/snmpconsole/internal/analytics"
	"github.com/studiowebux/snmpconsole/internal/config"
	"github.com/studiowebux/snmpconsole/internal/console"
	"github.com/studiowebux/snmpconsole/internal/filter"
	"github.com/studiowebux/snmpconsole/internal/prefs"
	"github.com/studiowebux/snmpconsole/internal/types"
)

// ErrSubmitFailed is returned when the backend could not be reached or
// answered with something that is not JSON
var ErrSubmitFailed = errors.New(console.SubmitErrorText)

// ErrLoadFailed is returned when the history could not be loaded
var ErrLoadFailed = errors.New(console.LoadErrorText)

// Backend is what the CLI needs from the backend client
type Backend interface {
	console.Submitter
	console.HistoryFetcher
}

// Env carries the collaborators of every command
type Env struct {
	Backend Backend
	Prefs   prefs.Store
	Log     logrus.FieldLogger
	Out     io.Writer
	Err     io.Writer
}

func (e Env) logger() logrus.FieldLogger {
	if e.Log == nil {
		return logrus.StandardLogger()
	}
	return e.Log
}

// SendOptions contains options for one submission in CLI mode
type SendOptions struct {
	Type      string
	Community string
	Target    string
	OID       string
	Value     string

	FilePath     string // JSON or JSONC payload file, flags override its fields
	NoDefaults   bool   // do not fill target/community from saved preferences
	OutputFormat string // text, json, yaml
	Filter       string // JMESPath filter expression
	Query        string // JMESPath query or $(bash command)
	SavePath     string
	Interactive  bool // prompt for a missing type, and a missing SET value
}

// Send builds one payload, submits it and prints the response region
func Send(ctx context.Context, env Env, opts SendOptions) error {
	form, err := buildForm(opts)
	if err != nil {
		return err
	}

	if !opts.NoDefaults && env.Prefs != nil {
		p, ok, err := env.Prefs.Load()
		if err != nil {
			fmt.Fprintf(env.Err, "Warning: %v\n", err)
		} else if ok {
			fillDefaults(&form, p)
		}
	}

	if form.Type == "" && opts.Interactive && isInteractive() {
		op, err := promptForType()
		if err != nil {
			return err
		}
		form.Type = op
	}
	if strings.EqualFold(form.Type, "SET") && form.Value == "" && opts.Interactive && isInteractive() {
		v, err := promptLine(os.Stdin, os.Stderr, "Valeur: ")
		if err != nil {
			return err
		}
		form.Value = v
	}

	dispatcher := console.NewDispatcher(console.NewDispatcherState(), env.Backend, env.logger())
	view := dispatcher.Submit(ctx, form.Payload(), func(v console.ResponseView) {
		fmt.Fprintln(env.Err, v.Text)
	})

	if view.Phase == console.PhaseError {
		return ErrSubmitFailed
	}

	output, err := formatResult(dispatcher.State().Result(), view, opts)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if opts.SavePath != "" {
		if err := os.WriteFile(opts.SavePath, []byte(output), config.FilePermissions); err != nil {
			return fmt.Errorf("failed to save response: %w", err)
		}
		fmt.Fprintf(env.Err, "Response saved to %s\n", opts.SavePath)
		return nil
	}

	fmt.Fprint(env.Out, output)
	return nil
}

// buildForm reads the payload file, if any, then applies the flags
func buildForm(opts SendOptions) (console.RequestForm, error) {
	var form console.RequestForm

	if opts.FilePath != "" {
		p, err := loadPayloadFile(opts.FilePath)
		if err != nil {
			return form, err
		}
		form = console.RequestForm{Type: p.Type, Community: p.Community, Target: p.Target, OID: p.OID, Value: p.Value}
	}

	override(&form.Type, opts.Type)
	override(&form.Community, opts.Community)
	override(&form.Target, opts.Target)
	override(&form.OID, opts.OID)
	override(&form.Value, opts.Value)

	return form, nil
}

func override(field *string, flag string) {
	if flag != "" {
		*field = flag
	}
}

// loadPayloadFile parses a payload written as JSON with comments
func loadPayloadFile(path string) (types.RequestPayload, error) {
	var p types.RequestPayload

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read payload file: %w", err)
	}

	if err := json.Unmarshal(jsonc.ToJSON(data), &p); err != nil {
		return p, fmt.Errorf("failed to parse payload file %s: %w", path, err)
	}
	return p, nil
}

// fillDefaults copies saved defaults into the fields left empty
func fillDefaults(form *console.RequestForm, p types.Preferences) {
	defaults := *form
	defaults.ApplyDefaults(p)
	if form.Target == "" {
		form.Target = defaults.Target
	}
	if form.Community == "" {
		form.Community = defaults.Community
	}
}

// HistoryOptions contains options for one history load in CLI mode
type HistoryOptions struct {
	OutputFormat string // text, json, yaml
	Search       string // fuzzy search over every column
	Filter       string // JMESPath filter over the rows
}

// History loads the frame history and prints the table
func History(ctx context.Context, env Env, opts HistoryOptions) error {
	loader := console.NewLoader(console.NewLoaderState(), env.Backend, env.logger())
	view := loader.Load(ctx, func(v console.TableView) {
		if opts.OutputFormat == "" || opts.OutputFormat == "text" {
			fmt.Fprintln(env.Err, v.Rows[0].Cells[0])
		}
	})

	if loader.State().Phase() == console.LoadFailed {
		return ErrLoadFailed
	}

	entries := console.SearchEntries(loader.State().Entries(), opts.Search)
	entries, err := filter.Entries(entries, opts.Filter)
	if err != nil {
		return err
	}
	if (opts.Search != "" || opts.Filter != "") && loader.State().Phase() == console.LoadPopulated {
		view = console.RenderEntries(entries)
	}

	output, err := formatHistory(entries, view, opts.OutputFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Fprint(env.Out, output)
	return nil
}

// SavePreferences stores the connection defaults
func SavePreferences(env Env, form console.ConfigForm) error {
	msg, err := console.SavePreferences(env.Prefs, form)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Out, msg)
	return nil
}

// ShowPreferences prints the saved connection defaults
func ShowPreferences(env Env, format string) error {
	p, ok, err := env.Prefs.Load()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(env.Err, "No saved configuration")
		return nil
	}

	output, err := formatValue(p, format, func() string {
		return fmt.Sprintf("IP: %s\nPort: %s\nCommunity: %s\n", p.IP, p.Port, p.Community)
	})
	if err != nil {
		return err
	}
	fmt.Fprint(env.Out, output)
	return nil
}

// Stats prints the frame statistics of the backend database
func Stats(env Env, stats *analytics.Manager, format string) error {
	report, err := stats.GetReport()
	if err != nil {
		return err
	}

	output, err := formatValue(report, format, func() string {
		return renderStats(report)
	})
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Fprint(env.Out, output)
	return nil
}
