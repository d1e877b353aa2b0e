// Package static provides the built-in permission catalog. It is the
// fallback when no catalog file is configured, compiled into the
// binary so a fresh install works without any setup.
package static

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
	"github.com/accesskit-labs/permscope-cli/internal/core/ports/driven"
)

// Ensure Provider implements the catalog port.
var _ driven.CatalogProvider = (*Provider)(nil)

//go:embed catalog.toml
var catalogTOML []byte

// catalogDocument mirrors the on-disk catalog shape.
type catalogDocument struct {
	Permissions []permissionEntry `toml:"permission"`
}

type permissionEntry struct {
	ID          string   `toml:"id"`
	Resource    string   `toml:"resource"`
	Action      string   `toml:"action"`
	Scope       string   `toml:"scope"`
	Description string   `toml:"description"`
	Conditions  []string `toml:"conditions"`
}

// Provider serves the embedded default catalog.
type Provider struct {
	records []domain.PermissionRecord
}

// NewProvider parses the embedded catalog once at construction.
func NewProvider() (*Provider, error) {
	var doc catalogDocument
	if err := toml.Unmarshal(catalogTOML, &doc); err != nil {
		return nil, fmt.Errorf("parsing embedded catalog: %w", err)
	}

	records := make([]domain.PermissionRecord, 0, len(doc.Permissions))
	for _, entry := range doc.Permissions {
		records = append(records, domain.PermissionRecord{
			ID:          entry.ID,
			Resource:    entry.Resource,
			Action:      entry.Action,
			Scope:       entry.Scope,
			Description: entry.Description,
			Conditions:  entry.Conditions,
		})
	}

	return &Provider{records: records}, nil
}

// FetchPermissions returns a copy of the embedded catalog. Callers get
// their own slice so sessions cannot affect each other.
func (p *Provider) FetchPermissions(ctx context.Context) ([]domain.PermissionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.PermissionRecord, len(p.records))
	copy(out, p.records)
	return out, nil
}
