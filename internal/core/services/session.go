package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
	"github.com/accesskit-labs/permscope-cli/internal/core/ports/driven"
	"github.com/accesskit-labs/permscope-cli/internal/core/ports/driving"
	"github.com/accesskit-labs/permscope-cli/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.SessionService = (*Session)(nil)

// DefaultDebounce is the delay between a query change and search
// execution.
const DefaultDebounce = 300 * time.Millisecond

// recentLimit bounds the recently-selected permission list.
const recentLimit = 10

// Session is the aggregate root of one permission search. It owns the
// index, the result cache, the selection set and the history log, and
// drives the filter -> cache -> score -> rank pipeline on every query
// change.
//
// The session is safe for use from one cooperative event loop plus its
// own debounce timer; a single mutex serialises all state access.
type Session struct {
	catalog      driven.CatalogProvider
	historyStore driven.HistoryStore
	savedStore   driven.SavedSearchStore
	clipboard    driven.Clipboard

	indexer *Indexer
	scorer  *Scorer
	ranker  *Ranker
	cache   *ResultCache

	debounce time.Duration

	mu         sync.Mutex
	opts       domain.SearchOptions
	index      []domain.IndexEntry
	query      string
	filters    domain.SearchFilters
	results    []domain.SearchResult
	selected   map[string]bool
	recent     []string
	history    []domain.SearchHistoryEntry
	status     domain.SessionStatus
	err        error
	timer      *time.Timer
	generation uint64
	onChange   func()
}

// NewSession creates a search session over the given catalog provider.
// The lookup tables are injected so tests can substitute fixtures.
func NewSession(catalog driven.CatalogProvider, lookups domain.Lookups, opts domain.SearchOptions) *Session {
	if opts.MinScore <= 0 {
		opts.MinScore = domain.DefaultSearchOptions().MinScore
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = domain.DefaultSearchOptions().MaxResults
	}
	if !opts.SortBy.IsValid() {
		opts.SortBy = domain.SortByRelevance
	}
	if !opts.SortOrder.IsValid() {
		opts.SortOrder = domain.SortDesc
	}

	return &Session{
		catalog:  catalog,
		indexer:  NewIndexer(lookups),
		scorer:   NewScorer(),
		ranker:   NewRanker(),
		cache:    NewResultCache(),
		debounce: DefaultDebounce,
		opts:     opts,
		filters:  domain.DefaultFilters(),
		selected: make(map[string]bool),
		status:   domain.StatusIdle,
	}
}

// SetHistoryStore attaches a durable history store. Existing stored
// entries seed the in-memory log on the next RefreshPermissions.
func (s *Session) SetHistoryStore(store driven.HistoryStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.historyStore = store
}

// SetSavedSearchStore attaches a durable saved-search store.
func (s *Session) SetSavedSearchStore(store driven.SavedSearchStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.savedStore = store
}

// SetClipboard attaches a clipboard sink for CopyPermissionNames.
func (s *Session) SetClipboard(clip driven.Clipboard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clipboard = clip
}

// SetDebounce overrides the debounce interval. Useful for tests and
// configurable hosts.
func (s *Session) SetDebounce(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d > 0 {
		s.debounce = d
	}
}

// OnChange registers the change callback. Invoked after every state
// publication, outside the session lock.
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Close cancels any pending debounce timer.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// RefreshPermissions loads the catalog and rebuilds the index. On
// failure the session enters StatusError until a retry succeeds.
func (s *Session) RefreshPermissions(ctx context.Context) error {
	logger.Section("Catalog Refresh")

	records, err := s.catalog.FetchPermissions(ctx)
	if err != nil {
		logger.Warn("Catalog load failed: %v", err)
		s.mu.Lock()
		s.status = domain.StatusError
		s.err = fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
		s.results = nil
		s.mu.Unlock()
		s.notify()
		return s.Err()
	}

	logger.Info("Catalog loaded: %d permissions", len(records))

	s.mu.Lock()
	s.index = s.indexer.BuildIndex(records)
	s.cache.InvalidateAll()
	s.err = nil
	s.seedHistoryLocked(ctx)
	s.runPipelineLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

// Search schedules a debounced search for the query. A newer query
// cancels the pending timer; a stale timer that fires anyway is
// rejected by generation check so older results can never overwrite
// newer ones.
func (s *Session) Search(query string) {
	s.mu.Lock()

	s.query = query
	s.generation++
	gen := s.generation
	if s.timer != nil {
		s.timer.Stop()
	}

	if strings.TrimSpace(query) == "" {
		// No keystroke settling needed to return to browse mode.
		s.runPipelineLocked()
		s.mu.Unlock()
		s.notify()
		return
	}

	s.status = domain.StatusSearching
	logger.Debug("Query changed: %q (debouncing %v)", query, s.debounce)

	s.timer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		if s.generation != gen {
			// A newer query superseded this timer.
			s.mu.Unlock()
			return
		}
		s.runPipelineLocked()
		s.recordHistoryLocked()
		s.mu.Unlock()
		s.notify()
	})
	s.mu.Unlock()
	s.notify()
}

// SearchNow runs the pipeline synchronously, bypassing the debounce.
func (s *Session) SearchNow(query string) []domain.SearchResult {
	s.mu.Lock()
	s.query = query
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.runPipelineLocked()
	s.recordHistoryLocked()
	results := s.results
	s.mu.Unlock()
	s.notify()
	return results
}

// ClearSearch empties the query and returns to browsing mode.
func (s *Session) ClearSearch() {
	s.mu.Lock()
	s.query = ""
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.cache.InvalidateAll()
	s.runPipelineLocked()
	s.mu.Unlock()
	s.notify()
}

// Query returns the current query text.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Results returns the current ranked results.
func (s *Session) Results() []domain.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// Status returns the session lifecycle state.
func (s *Session) Status() domain.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Err returns the error behind StatusError, or nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// UpdateFilters applies a partial filter mutation, invalidates the
// cache and re-scores the current query immediately. No debounce: no
// keystroke is involved.
func (s *Session) UpdateFilters(apply func(*domain.SearchFilters)) {
	s.mu.Lock()
	updated := s.filters
	apply(&updated)
	s.filters = updated
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.cache.InvalidateAll()
	s.runPipelineLocked()
	s.mu.Unlock()
	s.notify()
}

// ResetFilters restores the default filter state.
func (s *Session) ResetFilters() {
	s.UpdateFilters(func(f *domain.SearchFilters) {
		*f = domain.DefaultFilters()
	})
}

// Filters returns a snapshot of the active filters.
func (s *Session) Filters() domain.SearchFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// SetSort changes the ranking strategy and re-ranks immediately.
func (s *Session) SetSort(sortBy domain.SortBy, order domain.SortOrder) {
	s.mu.Lock()
	if sortBy.IsValid() {
		s.opts.SortBy = sortBy
	}
	if order.IsValid() {
		s.opts.SortOrder = order
	}
	// Cached lists were ranked under the old strategy.
	s.cache.InvalidateAll()
	s.runPipelineLocked()
	s.mu.Unlock()
	s.notify()
}

// SetSearchContext changes the scoring context and re-scores the
// current query. Cached scores were computed under the old context.
func (s *Session) SetSearchContext(context string) {
	s.mu.Lock()
	if s.opts.Context == context {
		s.mu.Unlock()
		return
	}
	s.opts.Context = context
	s.cache.InvalidateAll()
	s.runPipelineLocked()
	s.mu.Unlock()
	s.notify()
}

// runPipelineLocked executes filter -> cache -> score -> rank for the
// current query and publishes the result state. Caller holds s.mu.
func (s *Session) runPipelineLocked() {
	if s.err != nil {
		// Stay in error until a refresh succeeds.
		s.status = domain.StatusError
		return
	}

	query := strings.ToLower(strings.TrimSpace(s.query))
	candidates := ApplyFilters(s.index, s.filters)

	if query == "" {
		s.results = s.browseResults(candidates)
		s.status = domain.StatusBrowsing
		return
	}

	if cached, ok := s.cache.Get(query, s.filters); ok {
		logger.Debug("Cache hit for %q", query)
		s.results = cached
		s.status = domain.StatusResultsReady
		return
	}

	results := make([]domain.SearchResult, 0, len(candidates))
	for _, entry := range candidates {
		result, err := s.scoreEntry(entry, query)
		if err != nil {
			// One bad catalog entry must not abort the whole search.
			logger.Warn("Scoring %s failed: %v", entry.Name, err)
			continue
		}
		if result.Score >= s.opts.MinScore {
			results = append(results, result)
		}
	}

	results = s.ranker.Rank(results, s.opts.SortBy, s.opts.SortOrder)
	results = Truncate(results, s.opts.MaxResults)

	s.cache.Put(query, s.filters, results)
	s.results = results
	s.status = domain.StatusResultsReady
	logger.Debug("Search %q: %d candidates, %d results", query, len(candidates), len(results))
}

// scoreEntry scores one entry, converting a scorer panic into an error.
// Scoring is pure and should not panic, but catalogs are external data.
func (s *Session) scoreEntry(entry domain.IndexEntry, query string) (result domain.SearchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scoring panic: %v", r)
		}
	}()
	return s.scorer.Score(entry, query, s.opts.Context), nil
}

// browseResults builds the empty-query browse list: popularity-ranked
// entries with score = popularity/100.
func (s *Session) browseResults(candidates []domain.IndexEntry) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(candidates))
	for _, entry := range candidates {
		results = append(results, domain.SearchResult{
			Permission:      entry,
			Score:           float64(entry.Popularity) / 100,
			MatchedFields:   []string{"popularity"},
			HighlightedText: entry.DisplayName,
		})
	}
	results = s.ranker.Rank(results, domain.SortByPopularity, domain.SortDesc)
	return Truncate(results, s.opts.MaxResults)
}

// SelectPermission adds a permission name to the selection set.
// Selection is replace-on-write so published snapshots stay immutable.
func (s *Session) SelectPermission(name string) {
	s.mutateSelection(func(sel map[string]bool) {
		sel[name] = true
	})
	s.touchRecent(name)
}

// DeselectPermission removes a permission name from the selection set.
func (s *Session) DeselectPermission(name string) {
	s.mutateSelection(func(sel map[string]bool) {
		delete(sel, name)
	})
}

// ToggleSelection flips one permission's selection state.
func (s *Session) ToggleSelection(name string) {
	s.mu.Lock()
	selected := s.selected[name]
	s.mu.Unlock()
	if selected {
		s.DeselectPermission(name)
	} else {
		s.SelectPermission(name)
	}
}

// SelectAll selects every permission in the current result list.
func (s *Session) SelectAll() {
	s.mu.Lock()
	names := make([]string, 0, len(s.results))
	for i := range s.results {
		names = append(names, s.results[i].Permission.Name)
	}
	s.mu.Unlock()

	s.mutateSelection(func(sel map[string]bool) {
		for _, name := range names {
			sel[name] = true
		}
	})
}

// ClearSelection empties the selection set.
func (s *Session) ClearSelection() {
	s.mutateSelection(func(sel map[string]bool) {
		for name := range sel {
			delete(sel, name)
		}
	})
}

// Selected returns the selected permission names, sorted.
func (s *Session) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.selected))
	for name := range s.selected {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// mutateSelection applies a mutation to a copy of the selection set
// and swaps it in.
func (s *Session) mutateSelection(mutate func(map[string]bool)) {
	s.mu.Lock()
	next := make(map[string]bool, len(s.selected))
	for name := range s.selected {
		next[name] = true
	}
	mutate(next)
	s.selected = next
	s.mu.Unlock()
	s.notify()
}

// touchRecent moves a name to the front of the recently-selected list.
func (s *Session) touchRecent(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recent := make([]string, 0, len(s.recent)+1)
	recent = append(recent, name)
	for _, n := range s.recent {
		if n != name {
			recent = append(recent, n)
		}
	}
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	s.recent = recent
}

// AddToHistory records an executed query. A repeated query moves to
// the front rather than creating a second entry.
func (s *Session) AddToHistory(ctx context.Context, query string, resultCount int) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	entry := s.upsertHistoryLocked(query, resultCount)
	store := s.historyStore
	s.mu.Unlock()

	if store != nil {
		if err := store.Save(ctx, entry); err != nil {
			return fmt.Errorf("saving history entry: %w", err)
		}
	}
	return nil
}

// History returns the bounded history log, newest first.
func (s *Session) History() []domain.SearchHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.SearchHistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// ClearHistory empties the history log and the durable store.
func (s *Session) ClearHistory(ctx context.Context) error {
	s.mu.Lock()
	s.history = nil
	store := s.historyStore
	s.mu.Unlock()

	if store != nil {
		if err := store.DeleteAll(ctx); err != nil {
			return fmt.Errorf("clearing history store: %w", err)
		}
	}
	s.notify()
	return nil
}

// recordHistoryLocked appends the current query to history after a
// completed search cycle. Caller holds s.mu. The durable store write
// is best-effort: history must never fail a search.
func (s *Session) recordHistoryLocked() {
	if strings.TrimSpace(s.query) == "" || s.status != domain.StatusResultsReady {
		return
	}
	entry := s.upsertHistoryLocked(s.query, len(s.results))
	if s.historyStore != nil {
		if err := s.historyStore.Save(context.Background(), entry); err != nil {
			logger.Warn("Persisting history entry failed: %v", err)
		}
	}
}

// upsertHistoryLocked performs the dedup/move-to-front/cap bookkeeping.
// Caller holds s.mu.
func (s *Session) upsertHistoryLocked(query string, resultCount int) domain.SearchHistoryEntry {
	entry := domain.SearchHistoryEntry{
		ID:          uuid.NewString(),
		Query:       query,
		Timestamp:   time.Now().UTC(),
		ResultCount: resultCount,
		Filters:     s.filters,
	}

	history := make([]domain.SearchHistoryEntry, 0, len(s.history)+1)
	history = append(history, entry)
	for _, h := range s.history {
		if h.Query == query {
			// Keep the original ID so durable stores update in place.
			history[0].ID = h.ID
			continue
		}
		history = append(history, h)
	}
	if len(history) > domain.HistoryLimit {
		history = history[:domain.HistoryLimit]
	}
	s.history = history
	return history[0]
}

// seedHistoryLocked loads stored history into the in-memory log on the
// first successful catalog load. Caller holds s.mu.
func (s *Session) seedHistoryLocked(ctx context.Context) {
	if s.historyStore == nil || len(s.history) > 0 {
		return
	}
	stored, err := s.historyStore.List(ctx)
	if err != nil {
		logger.Warn("Loading stored history failed: %v", err)
		return
	}
	if len(stored) > domain.HistoryLimit {
		stored = stored[:domain.HistoryLimit]
	}
	s.history = stored
}

// SaveSearch bundles the current query and filters under a name.
func (s *Session) SaveSearch(ctx context.Context, name, description string) (*domain.SavedSearch, error) {
	s.mu.Lock()
	saved := domain.SavedSearch{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Query:       s.query,
		Description: description,
		Filters:     s.filters,
		CreatedAt:   time.Now().UTC(),
	}
	store := s.savedStore
	s.mu.Unlock()

	if err := saved.Validate(); err != nil {
		return nil, fmt.Errorf("%w: saved search needs a name", domain.ErrInvalidInput)
	}
	if store == nil {
		return nil, fmt.Errorf("saving search: no saved-search store configured")
	}
	if err := store.Save(ctx, saved); err != nil {
		return nil, fmt.Errorf("saving search: %w", err)
	}
	return &saved, nil
}

// SavedSearches lists all saved searches.
func (s *Session) SavedSearches(ctx context.Context) ([]domain.SavedSearch, error) {
	s.mu.Lock()
	store := s.savedStore
	s.mu.Unlock()
	if store == nil {
		return nil, nil
	}
	return store.List(ctx)
}

// DeleteSavedSearch removes a saved search by ID.
func (s *Session) DeleteSavedSearch(ctx context.Context, id string) error {
	s.mu.Lock()
	store := s.savedStore
	s.mu.Unlock()
	if store == nil {
		return domain.ErrNotFound
	}
	return store.Delete(ctx, id)
}

// LoadSavedSearch restores the saved query and filters, re-runs the
// search synchronously and records the use.
func (s *Session) LoadSavedSearch(ctx context.Context, id string) (*domain.SavedSearch, error) {
	s.mu.Lock()
	store := s.savedStore
	s.mu.Unlock()
	if store == nil {
		return nil, domain.ErrNotFound
	}

	saved, err := store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading saved search: %w", err)
	}

	s.mu.Lock()
	s.filters = saved.Filters
	s.query = saved.Query
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.cache.InvalidateAll()
	s.runPipelineLocked()
	s.mu.Unlock()
	s.notify()

	saved.UseCount++
	saved.LastUsed = time.Now().UTC()
	if err := store.Save(ctx, *saved); err != nil {
		return nil, fmt.Errorf("recording saved search use: %w", err)
	}
	return saved, nil
}

// PopularPermissions returns the top index entries by popularity.
func (s *Session) PopularPermissions(limit int) []domain.IndexEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 {
		limit = recentLimit
	}

	entries := make([]domain.IndexEntry, len(s.index))
	copy(entries, s.index)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Popularity > entries[j].Popularity
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// RecentPermissions returns the most recently selected entries,
// newest first.
func (s *Session) RecentPermissions(limit int) []domain.IndexEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 {
		limit = recentLimit
	}

	byName := make(map[string]domain.IndexEntry, len(s.index))
	for _, e := range s.index {
		byName[e.Name] = e
	}

	entries := make([]domain.IndexEntry, 0, limit)
	for _, name := range s.recent {
		if e, ok := byName[name]; ok {
			entries = append(entries, e)
			if len(entries) == limit {
				break
			}
		}
	}
	return entries
}

// ExportResults builds the pretty-printed JSON export payload.
func (s *Session) ExportResults() (string, error) {
	s.mu.Lock()
	query := s.query
	filters := s.filters
	results := s.results
	s.mu.Unlock()

	if len(results) == 0 {
		return "", domain.ErrNoResults
	}
	return BuildExportJSON(query, filters, results)
}

// CopyPermissionNames places the newline-joined selected names (or all
// result names when nothing is selected) on the clipboard.
func (s *Session) CopyPermissionNames() error {
	s.mu.Lock()
	clip := s.clipboard
	names := make([]string, 0, len(s.selected))
	for name := range s.selected {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		for i := range s.results {
			names = append(names, s.results[i].Permission.Name)
		}
	}
	s.mu.Unlock()

	if clip == nil {
		return domain.ErrClipboardUnavailable
	}
	if err := clip.WriteText(JoinNames(names)); err != nil {
		return fmt.Errorf("copying permission names: %w", err)
	}
	return nil
}

// notify invokes the change callback outside the session lock.
func (s *Session) notify() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}
