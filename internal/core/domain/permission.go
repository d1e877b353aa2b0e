package domain

import "strings"

// PermissionRecord is a raw permission catalog entry as supplied by an
// external catalog provider. Records are immutable; the engine never
// writes back to the catalog.
type PermissionRecord struct {
	// ID is the provider-assigned identifier. Not guaranteed stable
	// across catalog reloads; use IndexEntry.Name as the durable key.
	ID string

	// Resource is the object the permission applies to (e.g. "user").
	Resource string

	// Action is the operation granted (e.g. "create", "approve").
	Action string

	// Scope is the breadth of applicability
	// (own/department/property/organization/platform).
	Scope string

	// Description is optional human-readable text.
	Description string

	// Conditions holds optional conditional-grant expressions.
	// A permission with any conditions is treated as conditional.
	Conditions []string
}

// Name returns the stable dotted identity "resource.action.scope".
// Selection sets, history and exports key on this rather than ID.
func (r PermissionRecord) Name() string {
	return r.Resource + "." + r.Action + "." + r.Scope
}

// IsConditional returns true if the record carries grant conditions.
func (r PermissionRecord) IsConditional() bool {
	return len(r.Conditions) > 0
}

// IndexEntry is an enriched, search-optimised projection of one
// permission record. Entries are rebuilt whenever the catalog refreshes.
type IndexEntry struct {
	// ID is the raw catalog identifier.
	ID string

	// Name is the stable "resource.action.scope" identity.
	Name string

	// Resource, Action and Scope are the raw catalog axes.
	Resource string
	Action   string
	Scope    string

	// Description is the catalog description, possibly empty.
	Description string

	// Category is derived from the resource via static lookup.
	Category string

	// Keywords holds the resource, action, scope and their synonym
	// expansions, lowercased.
	Keywords []string

	// Popularity is a static heuristic score in [0,100] approximating
	// how commonly the permission is used.
	Popularity int

	// SearchableText is the lowercase concatenation of all searchable
	// fields. Used only as a token-scan fallback, not the primary
	// score path.
	SearchableText string

	// DisplayName is the human-readable form
	// "{ActionVerb} {ResourceNoun} ({ScopeNoun})".
	DisplayName string

	// IsSystemPermission marks internal/system permissions that are
	// hidden unless explicitly included by filters.
	IsSystemPermission bool

	// IsConditional marks permissions with grant conditions.
	IsConditional bool
}

// HasKeyword returns true if any keyword contains the given lowercase
// substring.
func (e IndexEntry) HasKeyword(sub string) bool {
	for _, kw := range e.Keywords {
		if strings.Contains(kw, sub) {
			return true
		}
	}
	return false
}
