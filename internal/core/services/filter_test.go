package services

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
)

// TestApplyFilters_NoRestriction tests that default filters keep everything
func TestApplyFilters_NoRestriction(t *testing.T) {
	entries := NewIndexer(domain.DefaultLookups()).BuildIndex(testCatalog())

	filtered := ApplyFilters(entries, domain.DefaultFilters())

	assert.Len(t, filtered, len(entries))
}

// TestApplyFilters_ResourceSet tests scenario C: a resource set filter
// keeps only matching entries regardless of anything else
func TestApplyFilters_ResourceSet(t *testing.T) {
	entries := NewIndexer(domain.DefaultLookups()).BuildIndex(testCatalog())

	f := domain.DefaultFilters()
	f.Resources = []string{"document"}
	filtered := ApplyFilters(entries, f)

	require.Len(t, filtered, 1)
	assert.Equal(t, "document.approve.property", filtered[0].Name)
}

// TestApplyFilters_ExcludeFlags tests the system/conditional flags
func TestApplyFilters_ExcludeFlags(t *testing.T) {
	entries := NewIndexer(domain.DefaultLookups()).BuildIndex(testCatalog())

	f := domain.DefaultFilters()
	f.IncludeSystemPermissions = false
	f.IncludeConditionalPermissions = false
	filtered := ApplyFilters(entries, f)

	for _, e := range filtered {
		assert.False(t, e.IsSystemPermission)
		assert.False(t, e.IsConditional)
	}
	assert.Len(t, filtered, 4)
}

// TestApplyFilters_Property tests filter correctness against random
// filter/entry combinations: retained iff every constraint is satisfied
func TestApplyFilters_Property(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	resources := []string{"user", "document", "guest", "rate"}
	actions := []string{"create", "view", "update"}
	scopes := []string{"own", "property", "platform"}

	var entries []domain.IndexEntry
	for i := 0; i < 200; i++ {
		entries = append(entries, domain.IndexEntry{
			Resource:           resources[rng.Intn(len(resources))],
			Action:             actions[rng.Intn(len(actions))],
			Scope:              scopes[rng.Intn(len(scopes))],
			Category:           "Other",
			Popularity:         rng.Intn(101),
			IsSystemPermission: rng.Intn(4) == 0,
			IsConditional:      rng.Intn(4) == 0,
		})
	}

	pickSome := func(from []string) []string {
		var out []string
		for _, v := range from {
			if rng.Intn(2) == 0 {
				out = append(out, v)
			}
		}
		return out
	}

	for trial := 0; trial < 50; trial++ {
		f := domain.SearchFilters{
			Resources:                     pickSome(resources),
			Actions:                       pickSome(actions),
			Scopes:                        pickSome(scopes),
			IncludeSystemPermissions:      rng.Intn(2) == 0,
			IncludeConditionalPermissions: rng.Intn(2) == 0,
			PopularityThreshold:           rng.Intn(80),
		}

		filtered := ApplyFilters(entries, f)
		for _, e := range filtered {
			assert.True(t, f.Matches(e))
		}
		// Every excluded entry must violate at least one constraint.
		excluded := len(entries) - len(filtered)
		violations := 0
		for _, e := range entries {
			if !f.Matches(e) {
				violations++
			}
		}
		assert.Equal(t, violations, excluded)
	}
}
