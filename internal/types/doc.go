/*
Package types defines the data structures shared by the console, the CLI
and the stub agent backend.

# Console types

RequestPayload:
  - The five request form fields, sent as JSON to POST /api/snmp
  - Never trimmed, defaulted or validated client side

RequestResult:
  - Tagged union, currently only ResultRaw
  - Holds the backend answer as json.RawMessage and is rendered verbatim

HistoryEntry:
  - One row of GET /api/history
  - Keys keep the backend names (cible, valeur, statut)

Preferences:
  - Connection defaults (ip, port, community) persisted locally

# Backend types

TrameRecord, AgentRequest and AgentOutcome are only used by the stub
backend (internal/mock, internal/agent, internal/history).

# Example Structures

Request payload:
	{
	  "type": "GET",
	  "community": "public",
	  "target": "192.168.1.10",
	  "oid": "1.3.6.1.2.1.1.5.0",
	  "value": ""
	}

History entry:
	{
	  "date": "2025-01-01 10:00:00",
	  "type": "GET",
	  "oid": "1.3.6.1.2.1.1.5.0",
	  "cible": "192.168.1.10",
	  "valeur": "router-01",
	  "statut": "3 ms"
	}
*/
package types
