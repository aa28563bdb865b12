package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/studiowebux/snmpconsole/internal/types"
)

// Simulated answers every request locally without touching the network
type Simulated struct{}

func (Simulated) Perform(_ context.Context, req types.AgentRequest) types.AgentOutcome {
	start := time.Now()

	var out types.AgentOutcome
	switch req.Type {
	case OpGet:
		out = types.AgentOutcome{Status: types.StatusSuccess, Value: fmt.Sprintf("Simulated GET value for OID %s", req.OID)}
	case OpSet:
		out = types.AgentOutcome{Status: types.StatusSuccess, Value: fmt.Sprintf("Simulated SET value '%s' on OID %s", valueOf(req), req.OID)}
	case OpTrap:
		out = types.AgentOutcome{Status: types.StatusSuccess, Value: "Simulated TRAP sent (nothing to store in metrics)"}
	default:
		out = types.AgentOutcome{Status: types.StatusError, Value: "Unknown type"}
	}

	out.LatencyMs = time.Since(start).Milliseconds()
	return out
}
