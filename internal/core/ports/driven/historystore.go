package driven

import (
	"context"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
)

// HistoryStore persists search history entries across sessions.
// The session keeps its own bounded in-memory log; the store mirrors
// it so history survives process restarts.
type HistoryStore interface {
	// List returns all stored entries, newest first.
	List(ctx context.Context) ([]domain.SearchHistoryEntry, error)

	// Save stores or updates an entry.
	Save(ctx context.Context, entry domain.SearchHistoryEntry) error

	// Delete removes an entry by ID.
	Delete(ctx context.Context, id string) error

	// DeleteAll clears all stored history.
	DeleteAll(ctx context.Context) error
}

// SavedSearchStore persists named saved searches.
type SavedSearchStore interface {
	// List returns all saved searches, most recently created first.
	List(ctx context.Context) ([]domain.SavedSearch, error)

	// Get retrieves a saved search by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.SavedSearch, error)

	// Save stores or updates a saved search.
	Save(ctx context.Context, saved domain.SavedSearch) error

	// Delete removes a saved search by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}
