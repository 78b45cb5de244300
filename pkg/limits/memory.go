package limits

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore keeps usage counters in process memory. Counters are lost
// on restart, which for daily quotas means at worst a reset budget.
type MemoryStore struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewMemoryStore creates an empty in-memory counter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counts: make(map[string]int)}
}

// Increment adds one use and returns the new count.
func (s *MemoryStore) Increment(_ context.Context, client, tool, day string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memoryKey(client, tool, day)
	s.counts[key]++
	return s.counts[key], nil
}

// Prune drops counters for days other than keepDay.
func (s *MemoryStore) Prune(_ context.Context, keepDay string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	suffix := "\x00" + keepDay
	for key := range s.counts {
		if !strings.HasSuffix(key, suffix) {
			delete(s.counts, key)
		}
	}
	return nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// memoryKey joins the counter dimensions with NUL, which cannot appear
// in a tool id or a day string.
func memoryKey(client, tool, day string) string {
	return client + "\x00" + tool + "\x00" + day
}
