package kv

import (
	"context"
	"sync"
)

// MemoryStore keeps entries in process memory. A positive quota caps the
// summed size of keys and values, like a browser storage area.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
	quota   int
	used    int
}

func NewMemoryStore(quota int) *MemoryStore {
	return &MemoryStore{entries: map[string][]byte{}, quota: quota}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	used := s.used + len(value)
	if old, ok := s.entries[key]; ok {
		used -= len(old)
	} else {
		used += len(key)
	}
	if s.quota > 0 && used > s.quota {
		return ErrQuotaExceeded
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.entries[key] = v
	s.used = used
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.entries[key]; ok {
		s.used -= len(key) + len(old)
		delete(s.entries, key)
	}
	return nil
}

// SetQuota changes the cap; zero or negative disables it.
func (s *MemoryStore) SetQuota(quota int) {
	s.mu.Lock()
	s.quota = quota
	s.mu.Unlock()
}

// Used returns the bytes currently accounted against the quota.
func (s *MemoryStore) Used() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used
}
