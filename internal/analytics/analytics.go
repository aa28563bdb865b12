// Package analytics aggregates the frames recorded by the stub backend.
package analytics

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/studiowebux/snmpconsole/internal/history"
)

// DefaultCacheTTL is how long computed stats are served from cache
const DefaultCacheTTL = 5 * time.Second

// Grouping selects the column stats are grouped by
type Grouping string

const (
	ByType   Grouping = "type"
	ByTarget Grouping = "target"
)

// Stats summarises the frames sharing one key
type Stats struct {
	Key          string    `json:"key" yaml:"key"`
	TotalCalls   int       `json:"total_calls" yaml:"total_calls"`
	AvgLatencyMs float64   `json:"avg_latency_ms" yaml:"avg_latency_ms"`
	MinLatencyMs int64     `json:"min_latency_ms" yaml:"min_latency_ms"`
	MaxLatencyMs int64     `json:"max_latency_ms" yaml:"max_latency_ms"`
	LastCalled   time.Time `json:"last_called" yaml:"last_called"`
}

// Report is the full stats document
type Report struct {
	Total     int     `json:"total" yaml:"total"`
	PerType   []Stats `json:"per_type" yaml:"per_type"`
	PerTarget []Stats `json:"per_target" yaml:"per_target"`
}

type Manager struct {
	db    *sql.DB
	cache *statsCache
}

// NewManager computes stats over an already migrated database
func NewManager(db *sql.DB) *Manager {
	return &Manager{db: db, cache: newStatsCache(DefaultCacheTTL)}
}

// GetStats returns the stats grouped by g, most called first
func (m *Manager) GetStats(g Grouping) ([]Stats, error) {
	if cached, ok := m.cache.get(g); ok {
		return cached, nil
	}

	var column string
	switch g {
	case ByType:
		column = "op_type"
	case ByTarget:
		column = "source_ip"
	default:
		return nil, fmt.Errorf("unknown grouping %q", g)
	}

	rows, err := m.db.Query(`
		SELECT
			` + column + ` AS key,
			COUNT(*) AS total_calls,
			COALESCE(AVG(latency_ms), 0) AS avg_latency,
			COALESCE(MIN(latency_ms), 0) AS min_latency,
			COALESCE(MAX(latency_ms), 0) AS max_latency,
			MAX(ts) AS last_called
		FROM snmp_metrics
		GROUP BY ` + column + `
		ORDER BY total_calls DESC, key ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	stats := []Stats{}
	for rows.Next() {
		var s Stats
		var lastCalled sql.NullString
		if err := rows.Scan(&s.Key, &s.TotalCalls, &s.AvgLatencyMs, &s.MinLatencyMs, &s.MaxLatencyMs, &lastCalled); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		if lastCalled.Valid {
			s.LastCalled = parseTimestamp(lastCalled.String)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	m.cache.set(g, stats)
	return stats, nil
}

// GetReport returns the frame count and both groupings
func (m *Manager) GetReport() (Report, error) {
	var r Report
	if err := m.db.QueryRow("SELECT COUNT(*) FROM snmp_metrics").Scan(&r.Total); err != nil {
		return Report{}, fmt.Errorf("failed to count frames: %w", err)
	}

	var err error
	if r.PerType, err = m.GetStats(ByType); err != nil {
		return Report{}, err
	}
	if r.PerTarget, err = m.GetStats(ByTarget); err != nil {
		return Report{}, err
	}
	return r, nil
}

// Invalidate drops cached stats after frames were written
func (m *Manager) Invalidate() {
	m.cache.invalidate()
}

// MAX(ts) loses the column type, so sqlite hands the raw text back
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{history.TimestampLayout, time.RFC3339Nano, "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
