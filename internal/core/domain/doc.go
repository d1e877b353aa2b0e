// Package domain defines the core business entities for Permscope.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - PermissionRecord: A raw catalog entry from a provider
//   - IndexEntry: A search-optimised projection of one permission
//   - SearchFilters: The active filter state of a search session
//   - SearchResult: One scored hit, recomputed per query
//   - SearchHistoryEntry / SavedSearch: User search bookkeeping
//   - Lookups: Static configuration tables for indexing and scoring
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
