package services

import (
	"sync"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
)

// ResultCache memoises scored result lists keyed by (query, filter
// state) to avoid rescoring repeated queries. The cache is unbounded
// for the session lifetime: sessions are short-lived and catalogs are
// small, so no eviction policy is applied.
//
// TODO: add an LRU bound if catalogs grow past a few thousand entries.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string][]domain.SearchResult
	hits    int
	misses  int
}

// NewResultCache creates an empty cache.
func NewResultCache() *ResultCache {
	return &ResultCache{
		entries: make(map[string][]domain.SearchResult),
	}
}

// Get returns the cached results for a query+filter pair, if present.
func (c *ResultCache) Get(query string, filters domain.SearchFilters) ([]domain.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	results, ok := c.entries[cacheKey(query, filters)]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return results, ok
}

// Put stores results for a query+filter pair.
func (c *ResultCache) Put(query string, filters domain.SearchFilters, results []domain.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(query, filters)] = results
}

// InvalidateAll empties the cache. Called whenever filters change, the
// catalog refreshes, or the search is cleared.
func (c *ResultCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]domain.SearchResult)
}

// Stats returns hit and miss counters since creation.
func (c *ResultCache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// Len returns the number of cached result lists.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// cacheKey combines the normalised query with the deterministic,
// order-independent filter serialization.
func cacheKey(query string, filters domain.SearchFilters) string {
	return query + "|" + filters.Key()
}
