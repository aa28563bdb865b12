package prefs

import (
	"database/sql"
	"fmt"
)

// SQLiteKV is a key-value table in the console database
type SQLiteKV struct {
	db *sql.DB
}

// NewSQLiteKV wraps a database whose schema is already migrated
func NewSQLiteKV(db *sql.DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

// SetItem inserts or replaces the value of key
func (s *SQLiteKV) SetItem(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO local_storage (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set item %s: %w", key, err)
	}
	return nil
}

// GetItem returns the value of key and whether it exists
func (s *SQLiteKV) GetItem(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM local_storage WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get item %s: %w", key, err)
	}
	return value, true, nil
}

// NewSQLiteStore is a preferences store backed by the console database
func NewSQLiteStore(db *sql.DB) *KVStore {
	return NewKVStore(NewSQLiteKV(db))
}
