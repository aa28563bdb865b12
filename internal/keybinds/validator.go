package keybinds

import (
	"errors"
	"fmt"
	"strings"
)

// IssueKind classifies a problem found in a keybinds file
type IssueKind string

const (
	IssueConflict IssueKind = "conflict" // one key, two actions, same context
	IssueInvalid  IssueKind = "invalid"  // unknown action or malformed key
	IssueReserved IssueKind = "reserved" // a reserved key given another action
)

// Issue is one problem, located by context and key (or action name)
type Issue struct {
	Kind    IssueKind
	Context Context
	Key     string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s.%s: %s", i.Kind, i.Context, i.Key, i.Message)
}

// Report collects the issues of one file. Reserved-key issues are warnings
// and do not prevent loading.
type Report struct {
	Errors   []Issue
	Warnings []Issue
}

func (r *Report) HasErrors() bool   { return len(r.Errors) > 0 }
func (r *Report) HasWarnings() bool { return len(r.Warnings) > 0 }

func (r *Report) add(i Issue) {
	if i.Kind == IssueReserved {
		r.Warnings = append(r.Warnings, i)
		return
	}
	r.Errors = append(r.Errors, i)
}

func (r *Report) String() string {
	if !r.HasErrors() && !r.HasWarnings() {
		return "ok"
	}
	var lines []string
	for _, i := range r.Errors {
		lines = append(lines, "  error "+i.String())
	}
	for _, i := range r.Warnings {
		lines = append(lines, "  warning "+i.String())
	}
	return strings.Join(lines, "\n")
}

// Validator checks a user file before ApplyConfig sees it
type Validator struct {
	reserved map[string]Action
}

// NewValidator reserves ctrl+c for the forced quit
func NewValidator() *Validator {
	return &Validator{reserved: map[string]Action{"ctrl+c": ActionQuitForce}}
}

func (v *Validator) ValidateConfig(cfg *Config) *Report {
	report := &Report{}
	sections := cfg.sections()

	for _, context := range AllContexts {
		taken := map[string]string{}

		for name, list := range sections[context] {
			if err := ValidateAction(Action(name)); err != nil {
				report.add(Issue{Kind: IssueInvalid, Context: context, Key: name, Message: err.Error()})
				continue
			}

			for _, key := range SplitKeys(list) {
				if err := ValidateKey(key); err != nil {
					report.add(Issue{Kind: IssueInvalid, Context: context, Key: key, Message: err.Error()})
					continue
				}
				if other, ok := taken[key]; ok && other != name {
					report.add(Issue{Kind: IssueConflict, Context: context, Key: key,
						Message: fmt.Sprintf("%s and %s", other, name)})
				}
				taken[key] = name

				if want, ok := v.reserved[key]; ok && Action(name) != want {
					report.add(Issue{Kind: IssueReserved, Context: context, Key: key,
						Message: "reserved for " + string(want)})
				}
			}
		}
	}

	return report
}

// ValidateKey rejects empty keys and bare modifiers such as "ctrl+"
func ValidateKey(key string) error {
	switch key {
	case "":
		return errors.New("empty key")
	case "ctrl+", "alt+", "shift+":
		return fmt.Errorf("modifier without key: %s", key)
	}
	return nil
}

// ValidateAction rejects actions the TUI does not know
func ValidateAction(action Action) error {
	if action == "" {
		return errors.New("empty action")
	}
	if !KnownActions[action] {
		return fmt.Errorf("unknown action: %s", action)
	}
	return nil
}
