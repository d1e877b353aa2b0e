// Package memory provides in-memory implementations of the driven
// storage ports. Used by tests and by sessions without durable storage.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
	"github.com/accesskit-labs/permscope-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
type HistoryStore struct {
	mu      sync.RWMutex
	entries map[string]domain.SearchHistoryEntry
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		entries: make(map[string]domain.SearchHistoryEntry),
	}
}

// List returns all stored entries, newest first.
func (s *HistoryStore) List(_ context.Context) ([]domain.SearchHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SearchHistoryEntry, 0, len(s.entries))
	for id := range s.entries {
		out = append(out, s.entries[id])
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// Save stores or updates an entry.
func (s *HistoryStore) Save(_ context.Context, entry domain.SearchHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = entry
	return nil
}

// Delete removes an entry by ID.
func (s *HistoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

// DeleteAll clears all stored history.
func (s *HistoryStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]domain.SearchHistoryEntry)
	return nil
}
