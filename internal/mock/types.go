package mock

// Config represents the stub backend configuration
type Config struct {
	Port         int    `json:"port" yaml:"port"`                                     // Server port (default: 5000)
	Host         string `json:"host" yaml:"host"`                                     // Server host (default: 127.0.0.1)
	Live         bool   `json:"live" yaml:"live"`                                     // Talk to real agents instead of simulating
	Version      string `json:"version,omitempty" yaml:"version,omitempty"`           // SNMP version for live mode: 1 or 2c
	Timeout      int    `json:"timeout,omitempty" yaml:"timeout,omitempty"`           // Live request timeout in seconds
	Retries      int    `json:"retries,omitempty" yaml:"retries,omitempty"`           // Live request retries
	HistoryLimit int    `json:"historyLimit,omitempty" yaml:"historyLimit,omitempty"` // Rows returned by /api/history (default: 200)
	Database     string `json:"database,omitempty" yaml:"database,omitempty"`         // Frame database path (default: global database)
	Logging      bool   `json:"logging" yaml:"logging"`                               // Log every request
	EnableCORS   bool   `json:"cors" yaml:"cors"`                                     // Send CORS headers
	Debug        bool   `json:"debug,omitempty" yaml:"debug,omitempty"`               // Gin debug mode
}

// SNMPResponse is the body of POST /api/snmp once the request was performed
type SNMPResponse struct {
	Status   string       `json:"status"`
	Request  EchoRequest  `json:"request"`
	Response AgentPayload `json:"response"`
}

// EchoRequest repeats the normalised request
type EchoRequest struct {
	Type      string      `json:"type"`
	Community string      `json:"community"`
	Target    string      `json:"target"`
	OID       string      `json:"oid"`
	Value     interface{} `json:"value"`
}

// AgentPayload carries the performer output
type AgentPayload struct {
	Value     string `json:"value"`
	LatencyMs int64  `json:"latency_ms"`
}

// ErrorResponse is returned for rejected requests
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}
