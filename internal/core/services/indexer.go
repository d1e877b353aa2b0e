package services

import (
	"strings"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
)

// Indexer transforms raw permission records into enriched search-index
// entries. Indexing is deterministic and idempotent: identical catalogs
// always produce structurally identical indexes.
type Indexer struct {
	lookups  domain.Lookups
	expander *KeywordExpander
}

// NewIndexer creates an indexer backed by the given lookup tables.
func NewIndexer(lookups domain.Lookups) *Indexer {
	return &Indexer{
		lookups:  lookups,
		expander: NewKeywordExpander(lookups),
	}
}

// BuildIndex projects the catalog into index entries. The input is
// never mutated.
func (ix *Indexer) BuildIndex(catalog []domain.PermissionRecord) []domain.IndexEntry {
	entries := make([]domain.IndexEntry, 0, len(catalog))
	for _, record := range catalog {
		entries = append(entries, ix.buildEntry(record))
	}
	return entries
}

// buildEntry projects one record.
func (ix *Indexer) buildEntry(r domain.PermissionRecord) domain.IndexEntry {
	keywords := ix.expander.Expand(r.Resource, r.Action, r.Scope)

	parts := []string{r.Resource, r.Action, r.Scope, r.Description}
	parts = append(parts, keywords...)
	searchable := strings.ToLower(strings.Join(parts, " "))

	return domain.IndexEntry{
		ID:                 r.ID,
		Name:               r.Name(),
		Resource:           r.Resource,
		Action:             r.Action,
		Scope:              r.Scope,
		Description:        r.Description,
		Category:           ix.lookups.CategoryFor(r.Resource),
		Keywords:           keywords,
		Popularity:         ix.lookups.PopularityFor(r.Resource, r.Action),
		SearchableText:     searchable,
		DisplayName:        ix.lookups.DisplayNameFor(r.Resource, r.Action, r.Scope),
		IsSystemPermission: ix.lookups.SystemResources[r.Resource],
		IsConditional:      r.IsConditional(),
	}
}
