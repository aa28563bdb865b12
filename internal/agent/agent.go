// Package agent performs management-protocol operations on behalf of the
// stub backend. Simulated answers with canned values; SNMP talks to a real
// agent over UDP.
package agent

import (
	"context"
	"strings"

	"github.com/studiowebux/snmpconsole/internal/types"
)

// Operation types understood by the performers
const (
	OpGet     = "GET"
	OpGetNext = "GETNEXT"
	OpSet     = "SET"
	OpTrap    = "TRAP"
)

// Performer runs one request and reports its outcome.
// Failures are reported in the outcome, never as a Go error.
type Performer interface {
	Perform(ctx context.Context, req types.AgentRequest) types.AgentOutcome
}

// Recordable reports whether a successful outcome of this type is stored
// in the frame history
func Recordable(opType string) bool {
	switch strings.ToUpper(opType) {
	case OpGet, OpSet:
		return true
	default:
		return false
	}
}

func valueOf(req types.AgentRequest) string {
	if req.Value == nil {
		return ""
	}
	return *req.Value
}
