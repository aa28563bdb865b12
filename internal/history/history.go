// Package history records the frames handled by the stub backend and
// lists them back in the shape the console history table consumes.
package history

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/studiowebux/snmpconsole/internal/migrations"
	"github.com/studiowebux/snmpconsole/internal/types"
)

// DefaultLimit caps the number of frames returned by Load
const DefaultLimit = 200

// TimestampLayout is the layout of the date column
const TimestampLayout = "2006-01-02 15:04:05"

// Manager stores frames in the snmp_metrics table
type Manager struct {
	db    *sql.DB
	owned bool
	now   func() time.Time
}

// NewManager opens the database at dbPath, migrating it if needed
func NewManager(dbPath string) (*Manager, error) {
	db, err := migrations.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return &Manager{db: db, owned: true, now: time.Now}, nil
}

// NewManagerWithDB shares an already migrated database handle.
// Close leaves the handle open.
func NewManagerWithDB(db *sql.DB) *Manager {
	return &Manager{db: db, now: time.Now}
}

// DB returns the underlying database handle
func (m *Manager) DB() *sql.DB {
	return m.db
}

// Save inserts a frame and returns its id.
// A zero Timestamp is replaced by the current time.
func (m *Manager) Save(rec types.TrameRecord) (int64, error) {
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = m.now()
	}

	var valueNum interface{}
	if rec.ValueRaw != nil {
		if f, err := strconv.ParseFloat(*rec.ValueRaw, 64); err == nil {
			valueNum = f
		}
	}

	var valueRaw, latency interface{}
	if rec.ValueRaw != nil {
		valueRaw = *rec.ValueRaw
	}
	if rec.LatencyMs != nil {
		latency = *rec.LatencyMs
	}

	res, err := m.db.Exec(`
		INSERT INTO snmp_metrics (ts, source_ip, oid, value_raw, value_num, latency_ms, op_type)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		ts.UTC().Format(TimestampLayout),
		rec.Target,
		rec.OID,
		valueRaw,
		valueNum,
		latency,
		rec.Type,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save frame: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read frame id: %w", err)
	}
	return id, nil
}

// Records returns at most limit frames, newest first
func (m *Manager) Records(limit int) ([]types.TrameRecord, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := m.db.Query(`
		SELECT id, ts, op_type, source_ip, oid, value_raw, latency_ms
		FROM snmp_metrics
		ORDER BY ts DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load frames: %w", err)
	}
	defer rows.Close()

	records := []types.TrameRecord{}
	for rows.Next() {
		var (
			rec      types.TrameRecord
			ts       sql.NullTime
			valueRaw sql.NullString
			latency  sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &ts, &rec.Type, &rec.Target, &rec.OID, &valueRaw, &latency); err != nil {
			return nil, fmt.Errorf("failed to scan frame: %w", err)
		}
		if ts.Valid {
			rec.Timestamp = ts.Time.UTC()
		}
		if valueRaw.Valid {
			v := valueRaw.String
			rec.ValueRaw = &v
		}
		if latency.Valid {
			l := latency.Int64
			rec.LatencyMs = &l
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Load returns the latest frames as history entries, newest first
func (m *Manager) Load(limit int) ([]types.HistoryEntry, error) {
	records, err := m.Records(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]types.HistoryEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, ToEntry(rec))
	}
	return entries, nil
}

// ToEntry maps a stored frame to a history row
func ToEntry(rec types.TrameRecord) types.HistoryEntry {
	statut := "OK"
	if rec.LatencyMs != nil {
		statut = fmt.Sprintf("%d ms", *rec.LatencyMs)
	}

	var date string
	if !rec.Timestamp.IsZero() {
		date = rec.Timestamp.Format(TimestampLayout)
	}

	return types.HistoryEntry{
		Date:   date,
		Type:   rec.Type,
		OID:    rec.OID,
		Cible:  rec.Target,
		Valeur: rec.ValueRaw,
		Statut: statut,
	}
}

func (m *Manager) Clear() error {
	_, err := m.db.Exec("DELETE FROM snmp_metrics")
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (m *Manager) Delete(id int64) error {
	_, err := m.db.Exec("DELETE FROM snmp_metrics WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete frame: %w", err)
	}
	return nil
}

func (m *Manager) GetCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM snmp_metrics").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get history count: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil && m.owned {
		return m.db.Close()
	}
	return nil
}
