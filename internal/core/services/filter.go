package services

import "github.com/accesskit-labs/permscope-cli/internal/core/domain"

// ApplyFilters narrows the candidate set before scoring. An entry is
// retained iff it passes every non-empty set filter, the two boolean
// include flags, and the popularity threshold when one is set.
//
// Filtering runs before scoring so cache keys reflect the filtered
// candidate set and scoring cost is bounded by the filtered size.
func ApplyFilters(entries []domain.IndexEntry, filters domain.SearchFilters) []domain.IndexEntry {
	filtered := make([]domain.IndexEntry, 0, len(entries))
	for _, e := range entries {
		if filters.Matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
