package agent

import (
	"context"
	"testing"

	"github.com/gosnmp/gosnmp"

	"github.com/studiowebux/snmpconsole/internal/types"
)

func strPtr(s string) *string { return &s }

func TestSimulated_Perform(t *testing.T) {
	tests := []struct {
		name       string
		req        types.AgentRequest
		wantStatus string
		wantValue  string
	}{
		{"get", types.AgentRequest{Type: "GET", OID: "1.3.6.1.2.1.1.1.0"}, types.StatusSuccess, "Simulated GET value for OID 1.3.6.1.2.1.1.1.0"},
		{"set", types.AgentRequest{Type: "SET", OID: "1.3.6.1.2.1.1.5.0", Value: strPtr("router")}, types.StatusSuccess, "Simulated SET value 'router' on OID 1.3.6.1.2.1.1.5.0"},
		{"set without value", types.AgentRequest{Type: "SET", OID: "1.3"}, types.StatusSuccess, "Simulated SET value '' on OID 1.3"},
		{"trap", types.AgentRequest{Type: "TRAP", OID: "1.3"}, types.StatusSuccess, "Simulated TRAP sent (nothing to store in metrics)"},
		{"unknown", types.AgentRequest{Type: "WALK", OID: "1.3"}, types.StatusError, "Unknown type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Simulated{}.Perform(context.Background(), tt.req)
			if out.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", out.Status, tt.wantStatus)
			}
			if out.Value != tt.wantValue {
				t.Errorf("value = %q, want %q", out.Value, tt.wantValue)
			}
			if out.LatencyMs < 0 {
				t.Errorf("negative latency %d", out.LatencyMs)
			}
		})
	}
}

func TestRecordable(t *testing.T) {
	tests := map[string]bool{"GET": true, "set": true, "TRAP": false, "GETNEXT": false, "": false}
	for op, want := range tests {
		if got := Recordable(op); got != want {
			t.Errorf("Recordable(%q) = %v, want %v", op, got, want)
		}
	}
}

func TestSplitTarget(t *testing.T) {
	tests := []struct {
		target   string
		wantHost string
		wantPort uint16
		wantErr  bool
	}{
		{"10.0.0.1", "10.0.0.1", 161, false},
		{"10.0.0.1:1161", "10.0.0.1", 1161, false},
		{"[::1]:162", "::1", 162, false},
		{"host:notaport", "", 0, true},
	}
	for _, tt := range tests {
		host, port, err := splitTarget(tt.target, 161)
		if (err != nil) != tt.wantErr {
			t.Errorf("splitTarget(%q) error = %v, wantErr %v", tt.target, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if host != tt.wantHost || port != tt.wantPort {
			t.Errorf("splitTarget(%q) = %s:%d, want %s:%d", tt.target, host, port, tt.wantHost, tt.wantPort)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name    string
		pdu     gosnmp.SnmpPDU
		want    string
		wantErr bool
	}{
		{"octet string", gosnmp.SnmpPDU{Type: gosnmp.OctetString, Value: []byte("Linux")}, "Linux", false},
		{"integer", gosnmp.SnmpPDU{Type: gosnmp.Integer, Value: 42}, "42", false},
		{"timeticks", gosnmp.SnmpPDU{Type: gosnmp.TimeTicks, Value: uint32(9000000)}, "1d 1h 0m 0s", false},
		{"no such object", gosnmp.SnmpPDU{Name: ".1.3", Type: gosnmp.NoSuchObject}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatValue(tt.pdu)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSNMP_UnknownTypeIsError(t *testing.T) {
	out := NewSNMP(0, 0).Perform(context.Background(), types.AgentRequest{Type: "WALK", Target: "127.0.0.1", Community: "public", OID: "1.3"})
	if out.Success() {
		t.Error("expected error outcome")
	}
}
