package prefs

import "sync"

// MemoryKV is an in-memory key-value store for tests and throwaway sessions
type MemoryKV struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryKV creates an empty in-memory store
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{items: make(map[string]string)}
}

// SetItem stores value under key
func (m *MemoryKV) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

// GetItem returns the value of key and whether it exists
func (m *MemoryKV) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

// NewMemoryStore is a preferences store kept in memory
func NewMemoryStore() *KVStore {
	return NewKVStore(NewMemoryKV())
}
