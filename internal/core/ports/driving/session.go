package driving

import (
	"context"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
)

// SessionService is the programmatic surface of one permission search
// session. A session owns its index, result cache and selection state;
// each hosting surface (TUI view, CLI invocation, MCP server) gets its
// own instance.
type SessionService interface {
	// RefreshPermissions loads (or reloads) the catalog and rebuilds
	// the search index. Also the retry entry point after an error.
	RefreshPermissions(ctx context.Context) error

	// Search schedules a debounced search for the query. The pipeline
	// runs after the debounce interval unless a newer query supersedes
	// it first. Completion is signalled via the OnChange callback.
	Search(query string)

	// SearchNow runs the search pipeline synchronously and returns the
	// ranked results. Used by non-interactive surfaces (CLI, MCP).
	SearchNow(query string) []domain.SearchResult

	// ClearSearch empties the query, returning to browsing mode.
	ClearSearch()

	// Query returns the current query text.
	Query() string

	// Results returns the current ranked results.
	Results() []domain.SearchResult

	// Status returns the session lifecycle state.
	Status() domain.SessionStatus

	// Err returns the error that put the session into StatusError,
	// or nil.
	Err() error

	// UpdateFilters applies a partial filter mutation. The cache is
	// invalidated and the current query re-scored immediately.
	UpdateFilters(apply func(*domain.SearchFilters))

	// ResetFilters restores the default filter state.
	ResetFilters()

	// Filters returns a snapshot of the active filters.
	Filters() domain.SearchFilters

	// Selection operations mutate only the selection set; they are
	// independent of the search state machine.
	SelectPermission(name string)
	DeselectPermission(name string)
	ToggleSelection(name string)
	SelectAll()
	ClearSelection()

	// Selected returns the selected permission names, sorted.
	Selected() []string

	// AddToHistory records an executed query. Empty queries are
	// rejected with domain.ErrInvalidInput.
	AddToHistory(ctx context.Context, query string, resultCount int) error

	// History returns the bounded history log, newest first.
	History() []domain.SearchHistoryEntry

	// ClearHistory empties the history log and the durable store.
	ClearHistory(ctx context.Context) error

	// SaveSearch bundles the current query and filters under a name.
	// An empty name is rejected with domain.ErrInvalidInput.
	SaveSearch(ctx context.Context, name, description string) (*domain.SavedSearch, error)

	// SavedSearches lists all saved searches.
	SavedSearches(ctx context.Context) ([]domain.SavedSearch, error)

	// DeleteSavedSearch removes a saved search by ID.
	DeleteSavedSearch(ctx context.Context, id string) error

	// LoadSavedSearch restores a saved search's query and filters,
	// re-runs the search, increments UseCount and stamps LastUsed.
	LoadSavedSearch(ctx context.Context, id string) (*domain.SavedSearch, error)

	// PopularPermissions returns the top entries by popularity.
	PopularPermissions(limit int) []domain.IndexEntry

	// RecentPermissions returns the most recently selected entries,
	// newest first.
	RecentPermissions(limit int) []domain.IndexEntry

	// SetSort changes the ranking strategy for subsequent searches.
	SetSort(sortBy domain.SortBy, order domain.SortOrder)

	// SetSearchContext changes the scoring context
	// ("" disables context boosts).
	SetSearchContext(context string)

	// ExportResults builds the pretty-printed JSON export payload for
	// the current results.
	ExportResults() (string, error)

	// CopyPermissionNames places the newline-joined selected names
	// (or all result names when nothing is selected) on the clipboard.
	CopyPermissionNames() error

	// OnChange registers a callback invoked whenever results, status
	// or selection change. Used by reactive hosts (TUI).
	OnChange(fn func())

	// Close cancels any pending debounce timer.
	Close()
}
