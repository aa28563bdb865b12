package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// RequestPayload is one operator request as typed in the request form.
// Fields are sent exactly as entered; an empty Value marks a read operation.
type RequestPayload struct {
	Type      string `json:"type" yaml:"type"`
	Community string `json:"community" yaml:"community"`
	Target    string `json:"target" yaml:"target"`
	OID       string `json:"oid" yaml:"oid"`
	Value     string `json:"value" yaml:"value"`
}

// ResultKind tags the variant held by a RequestResult
type ResultKind string

const (
	// ResultRaw holds the backend JSON untouched
	ResultRaw ResultKind = "raw"
)

// RequestResult is whatever JSON the backend answered with.
// The console never looks inside Value.
type RequestResult struct {
	Kind  ResultKind      `json:"kind"`
	Value json.RawMessage `json:"value"`
}

// NewRawResult wraps a backend JSON document
func NewRawResult(value json.RawMessage) RequestResult {
	return RequestResult{Kind: ResultRaw, Value: value}
}

// HistoryEntry is one recorded frame ("trame") as listed by the backend.
// Valeur is nil when the backend omitted it or sent null.
type HistoryEntry struct {
	Date   string  `json:"date" yaml:"date"`
	Type   string  `json:"type" yaml:"type"`
	OID    string  `json:"oid" yaml:"oid"`
	Cible  string  `json:"cible" yaml:"cible"`
	Valeur *string `json:"valeur,omitempty" yaml:"valeur,omitempty"`
	Statut string  `json:"statut" yaml:"statut"`
}

// Preferences are the connection defaults saved from the config panel
type Preferences struct {
	IP        string `json:"ip" yaml:"ip"`
	Port      string `json:"port" yaml:"port"`
	Community string `json:"community" yaml:"community"`
}

// TrameRecord is a frame as stored by the stub backend
type TrameRecord struct {
	ID        int64
	Timestamp time.Time
	Type      string
	Target    string
	OID       string
	ValueRaw  *string
	LatencyMs *int64
}

// AgentRequest is the normalised request handed to an agent performer
type AgentRequest struct {
	Type      string  `json:"type"`
	Community string  `json:"community"`
	Target    string  `json:"target"`
	OID       string  `json:"oid"`
	Value     *string `json:"value"`
}

// AgentOutcome is what a performer reports back
type AgentOutcome struct {
	Status    string `json:"status"`
	Value     string `json:"value"`
	LatencyMs int64  `json:"latency_ms"`
}

// Success reports whether the performer considers the operation done
func (o AgentOutcome) Success() bool {
	return o.Status == StatusSuccess
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// UnmarshalJSON accepts any scalar JSON value for the history columns.
// Backends disagree on whether statut or valeur are strings or numbers.
func (h *HistoryEntry) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("history entry must be an object")
	}

	*h = HistoryEntry{}
	targets := map[string]*string{
		"date":   &h.Date,
		"type":   &h.Type,
		"oid":    &h.OID,
		"cible":  &h.Cible,
		"statut": &h.Statut,
	}
	for key, dst := range targets {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		text, present, err := scalarText(raw)
		if err != nil {
			return fmt.Errorf("history entry field %q: %w", key, err)
		}
		if present {
			*dst = text
		}
	}

	if raw, ok := fields["valeur"]; ok {
		text, present, err := scalarText(raw)
		if err != nil {
			return fmt.Errorf("history entry field %q: %w", "valeur", err)
		}
		// a zero or false valeur has nothing to show, like a missing one
		if present && !falsyScalar(raw) {
			h.Valeur = &text
		}
	}

	return nil
}

// falsyScalar reports a JSON false or numeric zero
func falsyScalar(raw json.RawMessage) bool {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	return v == false || v == float64(0)
}

// scalarText renders a JSON scalar as text. null reports present=false.
func scalarText(raw json.RawMessage) (string, bool, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false, err
	}
	switch val := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return val, true, nil
	case bool:
		return strconv.FormatBool(val), true, nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true, nil
	default:
		// objects and arrays are shown as compact JSON
		return string(raw), true, nil
	}
}
