package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
	"github.com/accesskit-labs/permscope-cli/internal/core/ports/driven"
)

// Ensure SavedSearchStore implements the interface.
var _ driven.SavedSearchStore = (*SavedSearchStore)(nil)

// SavedSearchStore is an in-memory implementation of driven.SavedSearchStore.
type SavedSearchStore struct {
	mu      sync.RWMutex
	savedBy map[string]domain.SavedSearch
}

// NewSavedSearchStore creates a new in-memory saved-search store.
func NewSavedSearchStore() *SavedSearchStore {
	return &SavedSearchStore{
		savedBy: make(map[string]domain.SavedSearch),
	}
}

// List returns all saved searches, most recently created first.
func (s *SavedSearchStore) List(_ context.Context) ([]domain.SavedSearch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SavedSearch, 0, len(s.savedBy))
	for id := range s.savedBy {
		out = append(out, s.savedBy[id])
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Get retrieves a saved search by ID.
func (s *SavedSearchStore) Get(_ context.Context, id string) (*domain.SavedSearch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	saved, ok := s.savedBy[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &saved, nil
}

// Save stores or updates a saved search.
func (s *SavedSearchStore) Save(_ context.Context, saved domain.SavedSearch) error {
	if err := saved.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.savedBy[saved.ID] = saved
	return nil
}

// Delete removes a saved search by ID.
func (s *SavedSearchStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.savedBy[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.savedBy, id)
	return nil
}
