package agent

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/studiowebux/snmpconsole/internal/types"
)

const (
	defaultPort     = 161
	defaultTrapPort = 162

	// snmpTrapOID.0, the varbind carrying the notification identity
	trapOID = "1.3.6.1.6.3.1.1.4.1.0"
)

// SNMP performs requests against a live agent with gosnmp
type SNMP struct {
	Version gosnmp.SnmpVersion
	Timeout time.Duration
	Retries int
}

// NewSNMP returns a v2c performer
func NewSNMP(timeout time.Duration, retries int) *SNMP {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &SNMP{
		Version: gosnmp.Version2c,
		Timeout: timeout,
		Retries: retries,
	}
}

// ParseVersion converts a version string to the gosnmp constant
func ParseVersion(version string) gosnmp.SnmpVersion {
	switch strings.ToLower(version) {
	case "1":
		return gosnmp.Version1
	default:
		return gosnmp.Version2c
	}
}

func (s *SNMP) Perform(ctx context.Context, req types.AgentRequest) types.AgentOutcome {
	start := time.Now()

	value, err := s.perform(ctx, req)
	out := types.AgentOutcome{
		Status:    types.StatusSuccess,
		Value:     value,
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		out.Status = types.StatusError
		out.Value = err.Error()
	}
	return out
}

func (s *SNMP) perform(ctx context.Context, req types.AgentRequest) (string, error) {
	port := uint16(defaultPort)
	if req.Type == OpTrap {
		port = defaultTrapPort
	}

	host, port, err := splitTarget(req.Target, port)
	if err != nil {
		return "", err
	}

	client := &gosnmp.GoSNMP{
		Target:    host,
		Port:      port,
		Community: req.Community,
		Version:   s.Version,
		Timeout:   s.Timeout,
		Retries:   s.Retries,
		Context:   ctx,
	}

	if err := client.Connect(); err != nil {
		return "", fmt.Errorf("SNMP connect failed: %w", err)
	}
	defer client.Conn.Close()

	switch req.Type {
	case OpGet:
		return firstValue(client.Get([]string{req.OID}))
	case OpGetNext:
		return firstValue(client.GetNext([]string{req.OID}))
	case OpSet:
		pdu := gosnmp.SnmpPDU{Name: req.OID, Type: gosnmp.OctetString, Value: valueOf(req)}
		return firstValue(client.Set([]gosnmp.SnmpPDU{pdu}))
	case OpTrap:
		return s.sendTrap(client, req)
	default:
		return "", errors.New("Unknown type")
	}
}

func (s *SNMP) sendTrap(client *gosnmp.GoSNMP, req types.AgentRequest) (string, error) {
	vars := []gosnmp.SnmpPDU{
		{Name: trapOID, Type: gosnmp.ObjectIdentifier, Value: req.OID},
	}
	if req.Value != nil {
		vars = append(vars, gosnmp.SnmpPDU{Name: req.OID, Type: gosnmp.OctetString, Value: *req.Value})
	}

	if _, err := client.SendTrap(gosnmp.SnmpTrap{Variables: vars}); err != nil {
		return "", fmt.Errorf("SNMP trap failed: %w", err)
	}
	return fmt.Sprintf("TRAP %s sent to %s:%d", req.OID, client.Target, client.Port), nil
}

func splitTarget(target string, fallback uint16) (string, uint16, error) {
	host, portStr, err := net.SplitHostPort(target)
	if err != nil {
		return target, fallback, nil
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port in target %q", target)
	}
	return host, uint16(port), nil
}

func firstValue(pkt *gosnmp.SnmpPacket, err error) (string, error) {
	if err != nil {
		return "", fmt.Errorf("SNMP request failed: %w", err)
	}
	if pkt.Error != gosnmp.NoError {
		return "", fmt.Errorf("SNMP agent error: %s", pkt.Error)
	}
	if len(pkt.Variables) == 0 {
		return "", fmt.Errorf("SNMP agent returned no variables")
	}
	return FormatValue(pkt.Variables[0])
}

// FormatValue renders a varbind as display text
func FormatValue(v gosnmp.SnmpPDU) (string, error) {
	switch v.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView:
		return "", fmt.Errorf("%s: %s", v.Name, v.Type)
	case gosnmp.OctetString:
		if b, ok := v.Value.([]byte); ok {
			return string(b), nil
		}
	case gosnmp.TimeTicks:
		if ticks, ok := v.Value.(uint32); ok {
			d := time.Duration(ticks) * 10 * time.Millisecond
			days := int(d.Hours() / 24)
			return fmt.Sprintf("%dd %dh %dm %ds", days, int(d.Hours())%24, int(d.Minutes())%60, int(d.Seconds())%60), nil
		}
	}
	return fmt.Sprintf("%v", v.Value), nil
}
