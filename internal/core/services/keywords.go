package services

import (
	"strings"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
)

// KeywordExpander enriches a permission's searchable keywords with
// static synonym expansions (e.g. "user" also matches "staff").
type KeywordExpander struct {
	lookups domain.Lookups
}

// NewKeywordExpander creates an expander backed by the given lookup tables.
func NewKeywordExpander(lookups domain.Lookups) *KeywordExpander {
	return &KeywordExpander{lookups: lookups}
}

// Expand returns the lowercased, de-duplicated keyword set for a
// permission: its resource, action and scope plus synonym expansions.
// The result order is deterministic for identical inputs.
func (x *KeywordExpander) Expand(resource, action, scope string) []string {
	raw := []string{resource, action, scope}
	raw = append(raw, x.lookups.SynonymsFor(resource, action)...)

	seen := make(map[string]bool, len(raw))
	keywords := make([]string, 0, len(raw))
	for _, kw := range raw {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}
	return keywords
}
