package cache

import (
	"sync"
	"time"
)

// MemoryStore is an ephemeral in-process store, used in tests and when no
// cache database is configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	payload  []byte
	cachedAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Get implements Store.
func (s *MemoryStore) Get(key string) ([]byte, time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, time.Time{}, false, nil
	}
	return e.payload, e.cachedAt, true, nil
}

// Set implements Store.
func (s *MemoryStore) Set(key string, payload []byte, cachedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{payload: payload, cachedAt: cachedAt}
	return nil
}

// Size returns the number of stored entries.
func (s *MemoryStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
