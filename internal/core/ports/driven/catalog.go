package driven

import (
	"context"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
)

// CatalogProvider supplies the raw permission catalog. Invoked on
// session start and on explicit refresh. The returned records are
// treated as a read-only snapshot: sessions re-index independently
// rather than mutating shared structures.
type CatalogProvider interface {
	// FetchPermissions returns the full permission catalog.
	FetchPermissions(ctx context.Context) ([]domain.PermissionRecord, error)
}

// CatalogWatcher is an optional extension of CatalogProvider whose
// backing data can change underneath the session (e.g. a catalog file
// edited on disk).
type CatalogWatcher interface {
	// Watch delivers a signal on ch whenever the catalog changes.
	// Watching stops when the context is cancelled.
	Watch(ctx context.Context, ch chan<- struct{}) error
}
