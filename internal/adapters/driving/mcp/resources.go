package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
)

// uriScheme is the custom URI scheme for Permscope resources.
const uriScheme = "permscope://"

// catalogResourceLimit bounds the catalog resource. Far above any
// realistic catalog size.
const catalogResourceLimit = 10000

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "catalog",
		Name:        "catalog",
		Description: "The full permission catalog, ordered by popularity",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Recent search queries, newest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "saved-searches",
		Name:        "saved-searches",
		Description: "Saved searches with their queries and filters",
		MIMEType:    "application/json",
	}, s.handleSavedSearchesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "permissions/{name}",
		Name:        "permission",
		Description: "Details of a single permission by its dotted name",
		MIMEType:    "application/json",
	}, s.handlePermissionResource)
}

// handleCatalogResource returns the indexed catalog as JSON.
func (s *Server) handleCatalogResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	entries := s.session.PopularPermissions(catalogResourceLimit)

	infos := make([]PermissionOutput, len(entries))
	for i, e := range entries {
		infos[i] = toPermissionOutput(e, 0)
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling catalog: %w", err)
	}

	return jsonResource(req.Params.URI, string(data)), nil
}

// handleHistoryResource returns the search history as JSON.
func (s *Server) handleHistoryResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type historyInfo struct {
		Query       string `json:"query"`
		ResultCount int    `json:"result_count"`
		Timestamp   string `json:"timestamp"`
	}

	entries := s.session.History()
	infos := make([]historyInfo, len(entries))
	for i, e := range entries {
		infos[i] = historyInfo{
			Query:       e.Query,
			ResultCount: e.ResultCount,
			Timestamp:   e.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history: %w", err)
	}

	return jsonResource(req.Params.URI, string(data)), nil
}

// handleSavedSearchesResource returns all saved searches as JSON.
func (s *Server) handleSavedSearchesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	saved, err := s.session.SavedSearches(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing saved searches: %w", err)
	}

	type savedInfo struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Query       string `json:"query"`
		Description string `json:"description,omitempty"`
		UseCount    int    `json:"use_count"`
	}

	infos := make([]savedInfo, len(saved))
	for i, sv := range saved {
		infos[i] = savedInfo{
			ID:          sv.ID,
			Name:        sv.Name,
			Query:       sv.Query,
			Description: sv.Description,
			UseCount:    sv.UseCount,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling saved searches: %w", err)
	}

	return jsonResource(req.Params.URI, string(data)), nil
}

// handlePermissionResource returns one permission by dotted name.
func (s *Server) handlePermissionResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractPermissionName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	entry, ok := s.lookupPermission(name)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	type detail struct {
		PermissionOutput
		Resource string   `json:"resource"`
		Action   string   `json:"action"`
		Scope    string   `json:"scope"`
		Keywords []string `json:"keywords,omitempty"`
	}

	data, err := json.MarshalIndent(detail{
		PermissionOutput: toPermissionOutput(entry, 0),
		Resource:         entry.Resource,
		Action:           entry.Action,
		Scope:            entry.Scope,
		Keywords:         entry.Keywords,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling permission: %w", err)
	}

	return jsonResource(req.Params.URI, string(data)), nil
}

// lookupPermission finds an index entry by its dotted name.
func (s *Server) lookupPermission(name string) (domain.IndexEntry, bool) {
	for _, e := range s.session.PopularPermissions(catalogResourceLimit) {
		if e.Name == name {
			return e, true
		}
	}
	return domain.IndexEntry{}, false
}

// extractPermissionName extracts the name from a URI like
// permscope://permissions/{name}.
func extractPermissionName(uri string) string {
	const prefix = uriScheme + "permissions/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return strings.TrimPrefix(uri, prefix)
}

// jsonResource wraps a JSON payload in a read resource result.
func jsonResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}
