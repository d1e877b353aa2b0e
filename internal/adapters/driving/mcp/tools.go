package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
)

// defaultToolLimit caps tool results when no limit is given.
const defaultToolLimit = 10

// SearchInput is the input schema for the search_permissions tool.
type SearchInput struct {
	Query              string   `json:"query" jsonschema:"the search query, matched against permission names, descriptions and synonyms"`
	Limit              int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Resources          []string `json:"resources,omitempty" jsonschema:"restrict to these resource values"`
	Actions            []string `json:"actions,omitempty" jsonschema:"restrict to these action values"`
	Scopes             []string `json:"scopes,omitempty" jsonschema:"restrict to these scope values"`
	ExcludeSystem      bool     `json:"exclude_system,omitempty" jsonschema:"hide system permissions"`
	ExcludeConditional bool     `json:"exclude_conditional,omitempty" jsonschema:"hide conditional permissions"`
	Context            string   `json:"context,omitempty" jsonschema:"scoring context, e.g. role-creation or user-management"`
}

// SearchOutput is the output schema for the search_permissions tool.
type SearchOutput struct {
	Results []PermissionOutput `json:"results"`
	Count   int                `json:"count"`
}

// PermissionOutput represents a single permission in tool output.
type PermissionOutput struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Score       float64 `json:"score,omitempty"`
	Popularity  int     `json:"popularity"`
	Conditional bool    `json:"conditional,omitempty"`
	System      bool    `json:"system,omitempty"`
}

// PopularInput is the input schema for the popular_permissions tool.
type PopularInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of permissions to return (default 10)"`
}

// PopularOutput is the output schema for the popular_permissions tool.
type PopularOutput struct {
	Permissions []PermissionOutput `json:"permissions"`
	Count       int                `json:"count"`
}

// ExportInput is the input schema for the export_results tool.
type ExportInput struct {
	Query string `json:"query" jsonschema:"the search query whose results to export"`
}

// ExportOutput is the output schema for the export_results tool.
type ExportOutput struct {
	JSON  string `json:"json"`
	Count int    `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_permissions",
		Description: "Search the permission catalog with fuzzy matching and synonym expansion",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "popular_permissions",
		Description: "List the most commonly used permissions",
	}, s.handlePopular)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export_results",
		Description: "Run a search and return the full JSON export payload",
	}, s.handleExport)
}

// handleSearch handles the search_permissions tool invocation.
func (s *Server) handleSearch(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultToolLimit
	}

	s.session.SetSearchContext(input.Context)
	s.session.UpdateFilters(func(f *domain.SearchFilters) {
		f.Resources = input.Resources
		f.Actions = input.Actions
		f.Scopes = input.Scopes
		f.IncludeSystemPermissions = !input.ExcludeSystem
		f.IncludeConditionalPermissions = !input.ExcludeConditional
	})

	results := s.session.SearchNow(input.Query)
	if err := s.session.Err(); err != nil {
		return nil, SearchOutput{}, fmt.Errorf("searching permissions: %w", err)
	}
	if len(results) > limit {
		results = results[:limit]
	}

	output := SearchOutput{
		Results: make([]PermissionOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = toPermissionOutput(results[i].Permission, results[i].Score)
	}

	return nil, output, nil
}

// handlePopular handles the popular_permissions tool invocation.
func (s *Server) handlePopular(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input PopularInput,
) (*mcp.CallToolResult, PopularOutput, error) {
	entries := s.session.PopularPermissions(input.Limit)

	output := PopularOutput{
		Permissions: make([]PermissionOutput, len(entries)),
		Count:       len(entries),
	}
	for i, e := range entries {
		output.Permissions[i] = toPermissionOutput(e, 0)
	}

	return nil, output, nil
}

// handleExport handles the export_results tool invocation.
func (s *Server) handleExport(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ExportInput,
) (*mcp.CallToolResult, ExportOutput, error) {
	results := s.session.SearchNow(input.Query)

	payload, err := s.session.ExportResults()
	if err != nil {
		if errors.Is(err, domain.ErrNoResults) {
			return nil, ExportOutput{JSON: "[]", Count: 0}, nil
		}
		return nil, ExportOutput{}, fmt.Errorf("exporting results: %w", err)
	}

	return nil, ExportOutput{JSON: payload, Count: len(results)}, nil
}

// toPermissionOutput maps an index entry to the tool output shape.
func toPermissionOutput(e domain.IndexEntry, score float64) PermissionOutput {
	return PermissionOutput{
		Name:        e.Name,
		DisplayName: e.DisplayName,
		Description: e.Description,
		Category:    e.Category,
		Score:       score,
		Popularity:  e.Popularity,
		Conditional: e.IsConditional,
		System:      e.IsSystemPermission,
	}
}
