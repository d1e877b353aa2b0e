package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
)

// ExportPayload is the JSON document produced for result exports.
type ExportPayload struct {
	Query   string                `json:"query"`
	Filters domain.SearchFilters  `json:"filters"`
	Count   int                   `json:"count"`
	Results []ExportResultSummary `json:"results"`
}

// ExportResultSummary is one result line in an export.
type ExportResultSummary struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Score       float64 `json:"score"`
}

// BuildExportJSON renders the pretty-printed export payload for a
// result set.
func BuildExportJSON(query string, filters domain.SearchFilters, results []domain.SearchResult) (string, error) {
	payload := ExportPayload{
		Query:   query,
		Filters: filters,
		Count:   len(results),
		Results: make([]ExportResultSummary, len(results)),
	}
	for i := range results {
		p := results[i].Permission
		payload.Results[i] = ExportResultSummary{
			Name:        p.Name,
			DisplayName: p.DisplayName,
			Description: p.Description,
			Category:    p.Category,
			Score:       results[i].Score,
		}
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshalling export payload: %w", err)
	}
	return string(data), nil
}

// JoinNames returns the newline-joined permission name list handed to
// the clipboard sink.
func JoinNames(names []string) string {
	return strings.Join(names, "\n")
}
