package domain

import (
	"sort"
	"strconv"
	"strings"
)

// SortBy selects the ranking strategy for search results.
type SortBy string

// Available sort strategies.
const (
	// SortByRelevance orders by score (default).
	SortByRelevance SortBy = "relevance"

	// SortByAlphabetical orders by display name.
	SortByAlphabetical SortBy = "alphabetical"

	// SortByCategory orders by category, then score descending.
	SortByCategory SortBy = "category"

	// SortByPopularity orders by the static popularity heuristic.
	SortByPopularity SortBy = "popularity"
)

// IsValid returns true if the sort strategy is recognised.
func (s SortBy) IsValid() bool {
	switch s {
	case SortByRelevance, SortByAlphabetical, SortByCategory, SortByPopularity:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s SortBy) String() string {
	return string(s)
}

// SortOrder is the requested sort direction.
type SortOrder string

// Available sort directions.
const (
	// SortDesc is descending order (default for relevance).
	SortDesc SortOrder = "desc"

	// SortAsc is ascending order.
	SortAsc SortOrder = "asc"
)

// IsValid returns true if the sort order is recognised.
func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

// Search contexts bias scoring towards resources relevant to the
// hosting surface.
const (
	// ContextRoleCreation boosts user/permission/role resources.
	ContextRoleCreation = "role-creation"

	// ContextUserManagement boosts the user resource.
	ContextUserManagement = "user-management"
)

// SearchFilters narrows the candidate set before scoring.
// All set fields default to empty, meaning "no restriction": an entry
// passes a set filter if the set is empty OR the value is a member.
type SearchFilters struct {
	// Resources restricts to the given resource values.
	Resources []string

	// Actions restricts to the given action values.
	Actions []string

	// Scopes restricts to the given scope values.
	Scopes []string

	// Categories restricts to the given derived categories.
	Categories []string

	// IncludeSystemPermissions admits system permissions.
	IncludeSystemPermissions bool

	// IncludeConditionalPermissions admits conditional permissions.
	IncludeConditionalPermissions bool

	// PopularityThreshold, when > 0, excludes entries with popularity
	// below the threshold. Zero means no threshold.
	PopularityThreshold int
}

// DefaultFilters returns the filter state of a fresh session:
// no set restrictions, system and conditional permissions included.
func DefaultFilters() SearchFilters {
	return SearchFilters{
		IncludeSystemPermissions:      true,
		IncludeConditionalPermissions: true,
	}
}

// Matches reports whether the entry passes every non-empty set filter,
// the two boolean include flags, and the popularity threshold.
func (f SearchFilters) Matches(e IndexEntry) bool {
	if !setAllows(f.Resources, e.Resource) {
		return false
	}
	if !setAllows(f.Actions, e.Action) {
		return false
	}
	if !setAllows(f.Scopes, e.Scope) {
		return false
	}
	if !setAllows(f.Categories, e.Category) {
		return false
	}
	if !f.IncludeSystemPermissions && e.IsSystemPermission {
		return false
	}
	if !f.IncludeConditionalPermissions && e.IsConditional {
		return false
	}
	if f.PopularityThreshold > 0 && e.Popularity < f.PopularityThreshold {
		return false
	}
	return true
}

// Key returns a deterministic serialization of the filter state,
// order-independent for set fields. Used as part of result cache keys.
func (f SearchFilters) Key() string {
	var b strings.Builder
	writeSet := func(label string, values []string) {
		b.WriteString(label)
		b.WriteByte('=')
		sorted := append([]string(nil), values...)
		sort.Strings(sorted)
		b.WriteString(strings.Join(sorted, ","))
		b.WriteByte(';')
	}
	writeSet("r", f.Resources)
	writeSet("a", f.Actions)
	writeSet("s", f.Scopes)
	writeSet("c", f.Categories)
	b.WriteString("sys=")
	b.WriteString(strconv.FormatBool(f.IncludeSystemPermissions))
	b.WriteString(";cond=")
	b.WriteString(strconv.FormatBool(f.IncludeConditionalPermissions))
	b.WriteString(";pop=")
	b.WriteString(strconv.Itoa(f.PopularityThreshold))
	return b.String()
}

// setAllows implements the empty-set-means-no-restriction rule.
func setAllows(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}

// SearchResult is one scored hit. Results are ephemeral: recomputed
// per query, never persisted.
type SearchResult struct {
	// Permission is the matched index entry.
	Permission IndexEntry

	// Score is the normalised relevance score in [0,1].
	Score float64

	// MatchedFields lists which fields contributed, in the order
	// they were checked.
	MatchedFields []string

	// HighlightedText is the display name with the query substring
	// wrapped for emphasis, when it occurs there.
	HighlightedText string
}

// SearchOptions bundles the tunable knobs of a search session.
type SearchOptions struct {
	// MinScore drops results scoring below it before ranking.
	MinScore float64

	// MaxResults truncates the ranked list.
	MaxResults int

	// Context is an optional scoring context
	// (ContextRoleCreation, ContextUserManagement).
	Context string

	// SortBy is the ranking strategy.
	SortBy SortBy

	// SortOrder is the requested direction.
	SortOrder SortOrder
}

// DefaultSearchOptions returns the engine defaults.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		MinScore:   0.1,
		MaxResults: 50,
		SortBy:     SortByRelevance,
		SortOrder:  SortDesc,
	}
}

// SessionStatus is the lifecycle state of a search session.
type SessionStatus string

// Session states.
const (
	// StatusIdle is the initial state before the catalog loads.
	StatusIdle SessionStatus = "idle"

	// StatusBrowsing shows popularity-ranked defaults for an empty query.
	StatusBrowsing SessionStatus = "browsing"

	// StatusSearching means a query is pending or being scored.
	StatusSearching SessionStatus = "searching"

	// StatusResultsReady means scored and ranked results are available.
	StatusResultsReady SessionStatus = "results-ready"

	// StatusError means the catalog failed to load. Recoverable via
	// RefreshPermissions.
	StatusError SessionStatus = "error"
)

// String returns the string representation.
func (s SessionStatus) String() string {
	return string(s)
}
