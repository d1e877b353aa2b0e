package domain

import "time"

// HistoryLimit is the maximum number of history entries retained.
// Older entries are evicted newest-first-wins.
const HistoryLimit = 20

// SearchHistoryEntry records one executed query. History is append-only,
// capped at HistoryLimit, newest first, deduplicated by query text:
// repeating a query moves its entry to the front rather than adding a
// second one.
type SearchHistoryEntry struct {
	// ID identifies the entry for durable stores.
	ID string

	// Query is the raw query text as typed.
	Query string

	// Timestamp is when the query ran.
	Timestamp time.Time

	// ResultCount is how many results the query produced.
	ResultCount int

	// Filters is a snapshot of the filter state at query time.
	Filters SearchFilters
}

// SavedSearch is a named, reusable (query, filters) bundle created
// explicitly by the user. UseCount and LastUsed mutate only when the
// saved search is loaded, never on creation.
type SavedSearch struct {
	// ID is a generated unique identifier.
	ID string

	// Name is the user-chosen label. Must be non-empty.
	Name string

	// Query is the saved query text.
	Query string

	// Description is optional free text.
	Description string

	// Filters is the saved filter state.
	Filters SearchFilters

	// CreatedAt is when the search was saved.
	CreatedAt time.Time

	// LastUsed is when the search was last loaded, zero if never.
	LastUsed time.Time

	// UseCount is how many times the search has been loaded.
	UseCount int
}

// Validate checks the saved search is well formed.
func (s SavedSearch) Validate() error {
	if s.Name == "" {
		return ErrInvalidInput
	}
	return nil
}
