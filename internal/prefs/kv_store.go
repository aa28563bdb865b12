package prefs

import (
	"encoding/json"
	"fmt"

	"github.com/studiowebux/snmpconsole/internal/types"
)

// KVStore stores the preferences as JSON under Key
type KVStore struct {
	kv KeyValue
}

// NewKVStore creates a preferences store over kv
func NewKVStore(kv KeyValue) *KVStore {
	return &KVStore{kv: kv}
}

// Save serialises prefs and overwrites the stored value
func (s *KVStore) Save(prefs types.Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := s.kv.SetItem(Key, string(data)); err != nil {
		return fmt.Errorf("failed to store preferences: %w", err)
	}
	return nil
}

// Load reads the stored value back
func (s *KVStore) Load() (types.Preferences, bool, error) {
	raw, ok, err := s.kv.GetItem(Key)
	if err != nil {
		return types.Preferences{}, false, fmt.Errorf("failed to read preferences: %w", err)
	}
	if !ok {
		return types.Preferences{}, false, nil
	}

	var prefs types.Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return types.Preferences{}, false, fmt.Errorf("failed to parse preferences: %w", err)
	}
	return prefs, true, nil
}
