package services

import (
	"regexp"
	"strings"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
)

// Field contribution weights for the additive scoring model. The raw
// point total is normalised to [0,1] by dividing by 100 and clamping.
const (
	pointsExactName   = 100
	pointsExactDispl  = 95
	pointsResource    = 80
	pointsAction      = 75
	pointsScope       = 70
	pointsDescription = 60
	pointsKeyword     = 50
	pointsCategory    = 40
	pointsToken       = 30

	popularityWeight = 0.1

	boostRoleCreation   = 10
	boostUserManagement = 15

	// minTokenLength is the shortest query token considered in the
	// searchable-text fallback scan.
	minTokenLength = 2
)

// Scorer computes relevance scores for index entries against a
// normalised query. Scoring is pure: no state, no side effects.
type Scorer struct{}

// NewScorer creates a scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes the relevance of one entry for a normalised
// (lowercased, trimmed) non-empty query. The context string optionally
// biases scoring towards resources relevant to the hosting surface.
func (sc *Scorer) Score(entry domain.IndexEntry, query, context string) domain.SearchResult {
	var points float64
	var matched []string

	switch {
	case strings.ToLower(entry.Name) == query:
		// Exact identity match is authoritative: no further field checks.
		points += pointsExactName
		matched = append(matched, "name")

	case strings.ToLower(entry.DisplayName) == query:
		points += pointsExactDispl
		matched = append(matched, "displayName")

	default:
		if strings.Contains(strings.ToLower(entry.Resource), query) {
			points += pointsResource
			matched = append(matched, "resource")
		}
		if strings.Contains(strings.ToLower(entry.Action), query) {
			points += pointsAction
			matched = append(matched, "action")
		}
		if strings.Contains(strings.ToLower(entry.Scope), query) {
			points += pointsScope
			matched = append(matched, "scope")
		}
		if entry.Description != "" && strings.Contains(strings.ToLower(entry.Description), query) {
			points += pointsDescription
			matched = append(matched, "description")
		}
		// Counted once regardless of how many keywords match.
		if entry.HasKeyword(query) {
			points += pointsKeyword
			matched = append(matched, "keywords")
		}
		if strings.Contains(strings.ToLower(entry.Category), query) {
			points += pointsCategory
			matched = append(matched, "category")
		}

		// Token fallback against the concatenated searchable text.
		// Stacks across tokens.
		tokenHits := 0
		for _, token := range strings.Fields(query) {
			if len(token) < minTokenLength {
				continue
			}
			if strings.Contains(entry.SearchableText, token) {
				points += pointsToken
				tokenHits++
			}
		}
		if tokenHits > 0 {
			matched = append(matched, "searchableText")
		}
	}

	// Popularity contributes 0-10 points regardless of match path.
	points += float64(entry.Popularity) * popularityWeight

	points += contextBoost(context, entry.Resource)

	score := points / 100
	if score > 1 {
		score = 1
	}

	return domain.SearchResult{
		Permission:      entry,
		Score:           score,
		MatchedFields:   matched,
		HighlightedText: Highlight(entry.DisplayName, query),
	}
}

// contextBoost returns the additive boost for the hosting context.
func contextBoost(context, resource string) float64 {
	switch context {
	case domain.ContextRoleCreation:
		switch resource {
		case "user", "permission", "role":
			return boostRoleCreation
		}
	case domain.ContextUserManagement:
		if resource == "user" {
			return boostUserManagement
		}
	}
	return 0
}

// Highlight wraps every case-insensitive occurrence of query in text
// with "**" emphasis markers. The query is regex-escaped so special
// characters cannot inject pattern syntax.
func Highlight(text, query string) string {
	if query == "" || text == "" {
		return text
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return text
	}
	return re.ReplaceAllString(text, "**$0**")
}
