// Package migrations owns the SQLite schema shared by the preferences store
// and the stub backend's frame history.
package migrations

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Migration is one forward-only schema step
type Migration struct {
	Version int
	Name    string
	Up      string
}

// AllMigrations are applied in order on top of baseSchema
var AllMigrations = []Migration{
	{
		Version: 1,
		Name:    "snmp_metrics.op_type",
		Up:      `ALTER TABLE snmp_metrics ADD COLUMN op_type TEXT NOT NULL DEFAULT 'METRIC'`,
	},
	{
		Version: 2,
		Name:    "history indices",
		Up: `CREATE INDEX IF NOT EXISTS idx_snmp_metrics_ts ON snmp_metrics(ts DESC, id DESC);
CREATE INDEX IF NOT EXISTS idx_snmp_metrics_source ON snmp_metrics(source_ip);`,
	},
}

// baseSchema is the layout the backend started with; later columns come
// from AllMigrations
const baseSchema = `
CREATE TABLE IF NOT EXISTS local_storage (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS snmp_metrics (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	ts         TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	source_ip  TEXT NOT NULL,
	oid        TEXT NOT NULL,
	value_raw  TEXT,
	value_num  REAL,
	latency_ms INTEGER
);

CREATE TABLE IF NOT EXISTS schema_migrations (
	version    INTEGER PRIMARY KEY,
	name       TEXT NOT NULL,
	applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// InitSchema creates the base tables if they are missing
func InitSchema(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("base schema: %w", err)
	}
	return nil
}

// Run brings db to the latest version. Already applied steps are skipped.
func Run(db *sql.DB) error {
	if err := InitSchema(db); err != nil {
		return err
	}

	current, err := GetCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("schema version: %w", err)
	}

	for _, m := range AllMigrations {
		if m.Version > current {
			if err := m.apply(db); err != nil {
				return err
			}
		}
	}
	return nil
}

// apply runs the step and records its version in one transaction
func (m Migration) apply(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.Up); err != nil {
		return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.Version, m.Name); err != nil {
		return fmt.Errorf("migration %d: record version: %w", m.Version, err)
	}
	return tx.Commit()
}

// GetCurrentVersion returns the highest applied version, 0 for a fresh db
func GetCurrentVersion(db *sql.DB) (int, error) {
	var v int
	err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return v, err
}

// Open opens the SQLite file at path and migrates it
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := Run(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
