// Package prefs persists the console connection defaults in a durable
// key-value store, the terminal counterpart of a browser local storage.
package prefs

import (
	"github.com/studiowebux/snmpconsole/internal/config"
	"github.com/studiowebux/snmpconsole/internal/types"
)

// Store saves and restores the connection defaults.
// Save always replaces the whole value; fields are never merged.
type Store interface {
	Save(prefs types.Preferences) error
	// Load returns false when nothing was saved yet
	Load() (types.Preferences, bool, error)
}

// KeyValue is the storage capability a Store is built on
type KeyValue interface {
	SetItem(key, value string) error
	GetItem(key string) (string, bool, error)
}

// Key is the fixed key the preferences live under
const Key = config.PreferencesKey
