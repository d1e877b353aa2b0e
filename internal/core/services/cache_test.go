package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
)

// TestResultCache_PutGet tests the basic store/lookup cycle
func TestResultCache_PutGet(t *testing.T) {
	c := NewResultCache()
	filters := domain.DefaultFilters()
	results := []domain.SearchResult{{Score: 0.5}}

	_, ok := c.Get("user", filters)
	assert.False(t, ok)

	c.Put("user", filters, results)

	cached, ok := c.Get("user", filters)
	require.True(t, ok)
	assert.Equal(t, results, cached)
	assert.Equal(t, 1, c.Len())
}

// TestResultCache_FilterStateKeyed tests that different filter states
// produce independent cache slots
func TestResultCache_FilterStateKeyed(t *testing.T) {
	c := NewResultCache()
	a := domain.DefaultFilters()
	b := domain.DefaultFilters()
	b.Resources = []string{"user"}

	c.Put("q", a, []domain.SearchResult{{Score: 0.1}})

	_, ok := c.Get("q", b)
	assert.False(t, ok)
}

// TestResultCache_OrderIndependentKey tests set-order independence
func TestResultCache_OrderIndependentKey(t *testing.T) {
	c := NewResultCache()
	a := domain.SearchFilters{Resources: []string{"user", "document"}}
	b := domain.SearchFilters{Resources: []string{"document", "user"}}

	c.Put("q", a, []domain.SearchResult{{Score: 0.4}})

	cached, ok := c.Get("q", b)
	require.True(t, ok)
	assert.Equal(t, 0.4, cached[0].Score)
}

// TestResultCache_InvalidateAll tests full invalidation
func TestResultCache_InvalidateAll(t *testing.T) {
	c := NewResultCache()
	filters := domain.DefaultFilters()
	c.Put("one", filters, nil)
	c.Put("two", filters, nil)
	require.Equal(t, 2, c.Len())

	c.InvalidateAll()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("one", filters)
	assert.False(t, ok)
}

// TestResultCache_Stats tests hit/miss counting
func TestResultCache_Stats(t *testing.T) {
	c := NewResultCache()
	filters := domain.DefaultFilters()

	c.Get("q", filters)
	c.Put("q", filters, nil)
	c.Get("q", filters)
	c.Get("q", filters)

	hits, misses := c.Stats()
	assert.Equal(t, 2, hits)
	assert.Equal(t, 1, misses)
}
