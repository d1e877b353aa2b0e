package services

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
)

// comparator orders two results: negative if a sorts before b.
type comparator func(a, b domain.SearchResult) int

// Ranker sorts scored results by the selected sort strategy. The
// comparator is selected once per search cycle from a lookup table
// rather than branching on the strategy at every comparison.
type Ranker struct {
	collator *collate.Collator
	table    map[domain.SortBy]func(order domain.SortOrder) comparator
}

// NewRanker creates a ranker with locale-aware alphabetical ordering.
func NewRanker() *Ranker {
	r := &Ranker{
		collator: collate.New(language.English, collate.IgnoreCase),
	}
	r.table = map[domain.SortBy]func(order domain.SortOrder) comparator{
		domain.SortByRelevance:    r.byRelevance,
		domain.SortByAlphabetical: r.byAlphabetical,
		domain.SortByCategory:     r.byCategory,
		domain.SortByPopularity:   r.byPopularity,
	}
	return r
}

// Rank stable-sorts results by the given strategy and direction.
// Unknown strategies fall back to relevance.
func (r *Ranker) Rank(results []domain.SearchResult, sortBy domain.SortBy, order domain.SortOrder) []domain.SearchResult {
	pick, ok := r.table[sortBy]
	if !ok {
		pick = r.byRelevance
	}
	cmp := pick(order)

	sort.SliceStable(results, func(i, j int) bool {
		return cmp(results[i], results[j]) < 0
	})
	return results
}

// byRelevance orders by score, descending by default. No secondary
// tie-break beyond sort stability.
func (r *Ranker) byRelevance(order domain.SortOrder) comparator {
	if order == domain.SortAsc {
		return func(a, b domain.SearchResult) int {
			return compareFloat(a.Score, b.Score)
		}
	}
	return func(a, b domain.SearchResult) int {
		return compareFloat(b.Score, a.Score)
	}
}

// byAlphabetical orders by display name using locale collation.
func (r *Ranker) byAlphabetical(order domain.SortOrder) comparator {
	if order == domain.SortAsc {
		return func(a, b domain.SearchResult) int {
			return r.collator.CompareString(a.Permission.DisplayName, b.Permission.DisplayName)
		}
	}
	return func(a, b domain.SearchResult) int {
		return r.collator.CompareString(b.Permission.DisplayName, a.Permission.DisplayName)
	}
}

// byCategory orders by category in the requested direction. Ties
// always break by score descending, irrespective of the direction:
// category order is user-controlled, relevance-within-category is not.
func (r *Ranker) byCategory(order domain.SortOrder) comparator {
	return func(a, b domain.SearchResult) int {
		cmp := r.collator.CompareString(a.Permission.Category, b.Permission.Category)
		if order == domain.SortDesc {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp
		}
		return compareFloat(b.Score, a.Score)
	}
}

// byPopularity orders by the popularity heuristic. The base comparator
// is descending; ascending negates it rather than comparing directly.
// The direction asymmetry is kept for compatibility with the original
// ordering.
func (r *Ranker) byPopularity(order domain.SortOrder) comparator {
	desc := func(a, b domain.SearchResult) int {
		return b.Permission.Popularity - a.Permission.Popularity
	}
	if order == domain.SortAsc {
		return func(a, b domain.SearchResult) int {
			return -desc(a, b)
		}
	}
	return desc
}

// compareFloat returns -1, 0 or 1 ordering a before b when a is smaller.
func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Truncate limits results to at most max entries.
func Truncate(results []domain.SearchResult, max int) []domain.SearchResult {
	if max > 0 && len(results) > max {
		return results[:max]
	}
	return results
}
