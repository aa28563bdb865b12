// Package filter narrows and reshapes JSON documents printed by the CLI:
// the raw result of a submission or the rows of the history.
package filter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/jmespath/go-jmespath"

	"github.com/studiowebux/snmpconsole/internal/types"
)

// QueryShellTimeout bounds a $(...) query
const QueryShellTimeout = 30 * time.Second

// Apply narrows body with filter then selects from it with query, both
// JMESPath. A query written $(cmd) instead pipes the document to sh -c cmd.
// With no expressions body is returned as is.
func Apply(body string, filter string, query string) (string, error) {
	if filter == "" && query == "" {
		return body, nil
	}

	var doc any
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return "", fmt.Errorf("body is not JSON: %w", err)
	}

	if filter != "" {
		var err error
		if doc, err = search(doc, filter); err != nil {
			return "", fmt.Errorf("filter: %w", err)
		}
	}

	if cmd, ok := shellCommand(query); ok {
		in := body
		if filter != "" {
			out, err := encode(doc)
			if err != nil {
				return "", err
			}
			in = out
		}
		return runShell(in, cmd)
	}

	if query != "" {
		var err error
		if doc, err = search(doc, query); err != nil {
			return "", fmt.Errorf("query: %w", err)
		}
	}
	return encode(doc)
}

// ApplyResult runs Apply on the raw JSON held by a submission result
func ApplyResult(result types.RequestResult, filter, query string) (string, error) {
	return Apply(string(result.Value), filter, query)
}

// Entries keeps the history rows matched by a JMESPath filter such as
// [?type=='SET']. The expression must yield an array of rows.
func Entries(entries []types.HistoryEntry, filter string) ([]types.HistoryEntry, error) {
	if filter == "" {
		return entries, nil
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	narrowed, err := Apply(string(data), filter, "")
	if err != nil {
		return nil, err
	}

	out := []types.HistoryEntry{}
	if narrowed == "null" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(narrowed), &out); err != nil {
		return nil, fmt.Errorf("filter %q does not select history rows: %w", filter, err)
	}
	return out, nil
}

func search(doc any, expression string) (any, error) {
	jp, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid JMESPath %q: %w", expression, err)
	}
	return jp.Search(doc)
}

// encode prints a search result; a missing value prints as null
func encode(v any) (string, error) {
	if v == nil {
		return "null", nil
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func runShell(stdin, command string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), QueryShellTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %s", command, msg)
		}
		return "", fmt.Errorf("%s: %w", command, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// shellCommand extracts cmd from a "$(cmd)" query
func shellCommand(query string) (string, bool) {
	if len(query) < 4 || !strings.HasPrefix(query, "$(") || !strings.HasSuffix(query, ")") {
		return "", false
	}
	return query[2 : len(query)-1], true
}

func IsValidJMESPath(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}

// IsShellCommand reports whether query is a $(...) shell query
func IsShellCommand(query string) bool {
	_, ok := shellCommand(query)
	return ok
}
