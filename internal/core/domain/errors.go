package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	// Saving a search with an empty name or recording an empty query
	// in history is rejected with this error before any state mutates.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCatalogUnavailable indicates the permission catalog could not
	// be loaded from its provider. Recoverable via RefreshPermissions.
	ErrCatalogUnavailable = errors.New("failed to load permissions")

	// ErrNoResults indicates an export was requested with no results
	// available to export.
	ErrNoResults = errors.New("no results to export")

	// ErrClipboardUnavailable indicates no clipboard sink is configured.
	// Name copying is disabled without one.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
)
