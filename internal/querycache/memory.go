package querycache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore is the default in-process store: a mutex-guarded map.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	entry    Entry
	expireAt time.Time // zero => no expiry
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	s.mu.RLock()
	held, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return Entry{}, false, nil
	}
	if !held.expireAt.IsZero() && time.Now().After(held.expireAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return Entry{}, false, nil
	}
	return held.entry, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, entry Entry, ttl time.Duration) error {
	var expireAt time.Time
	if ttl > 0 {
		expireAt = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = memoryEntry{entry: entry, expireAt: expireAt}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) DeleteFamily(_ context.Context, family string) error {
	s.mu.Lock()
	for key := range s.entries {
		if keyInFamily(key, family) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	s.entries = make(map[string]memoryEntry)
	s.mu.Unlock()
	return nil
}

// Len reports the number of held entries. Test hook.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// keyInFamily matches `/buses`, `/buses?...`, and `/buses/...` for family
// `/buses`, without catching `/busesX`.
func keyInFamily(key, family string) bool {
	if !strings.HasPrefix(key, family) {
		return false
	}
	rest := key[len(family):]
	return rest == "" || rest[0] == '/' || rest[0] == '?'
}
