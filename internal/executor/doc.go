/*
Package executor talks to the agent backend over HTTP.

# Overview

Client wraps the two backend exchanges the console needs:
  - Submit: POST /api/snmp with a JSON RequestPayload
  - History: GET /api/history, a JSON array of HistoryEntry
  - Ping: GET /api/ping, a reachability probe

# Status Codes

Submit does not look at the status code. Any syntactically valid JSON
body is a result, including a backend error document returned with a 4xx
or 5xx status.

# Error Handling

Every way an exchange can fail collapses into one error kind:
  - connection refused, DNS failure
  - timeout (the client enforces DefaultTimeout)
  - a body that is not valid JSON
  - for History, a body that is not a JSON array of objects

All of them match errors.Is(err, ErrTransport). Callers never need to
tell them apart.

# Example Usage

	client := NewClient(config.BackendURL)

	result, err := client.Submit(ctx, types.RequestPayload{
		Type:      "GET",
		Community: "public",
		Target:    "192.168.1.10",
		OID:       "1.3.6.1.2.1.1.5.0",
	})
	if errors.Is(err, ErrTransport) {
		// show the fixed failure message
	}

# Thread Safety

Client is safe for concurrent use. Two overlapping Submit calls are two
independent exchanges.
*/
package executor
