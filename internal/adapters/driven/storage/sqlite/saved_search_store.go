package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
	"github.com/accesskit-labs/permscope-cli/internal/core/ports/driven"
)

// savedSearchStore implements driven.SavedSearchStore.
type savedSearchStore struct {
	store *Store
}

var _ driven.SavedSearchStore = (*savedSearchStore)(nil)

// List returns all saved searches, most recently created first.
func (s *savedSearchStore) List(ctx context.Context) ([]domain.SavedSearch, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, query, description, filters, created_at, last_used, use_count
		FROM saved_searches
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying saved searches: %w", err)
	}
	defer rows.Close()

	var saved []domain.SavedSearch //nolint:prealloc // size unknown from query
	for rows.Next() {
		entry, err := scanSavedSearch(rows.Scan)
		if err != nil {
			return nil, err
		}
		saved = append(saved, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating saved searches: %w", err)
	}
	return saved, nil
}

// Get retrieves a saved search by ID.
func (s *savedSearchStore) Get(ctx context.Context, id string) (*domain.SavedSearch, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, query, description, filters, created_at, last_used, use_count
		FROM saved_searches WHERE id = ?
	`, id)

	entry, err := scanSavedSearch(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Save stores or updates a saved search.
func (s *savedSearchStore) Save(ctx context.Context, saved domain.SavedSearch) error {
	if err := saved.Validate(); err != nil {
		return err
	}

	filtersJSON, err := json.Marshal(saved.Filters)
	if err != nil {
		return fmt.Errorf("marshalling saved search filters: %w", err)
	}
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = time.Now().UTC()
	}

	var lastUsed any
	if !saved.LastUsed.IsZero() {
		lastUsed = saved.LastUsed
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO saved_searches (id, name, query, description, filters, created_at, last_used, use_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			query = excluded.query,
			description = excluded.description,
			filters = excluded.filters,
			last_used = excluded.last_used,
			use_count = excluded.use_count
	`, saved.ID, saved.Name, saved.Query, saved.Description, string(filtersJSON),
		saved.CreatedAt, lastUsed, saved.UseCount)

	if err != nil {
		return fmt.Errorf("saving saved search: %w", err)
	}
	return nil
}

// Delete removes a saved search by ID.
func (s *savedSearchStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, `DELETE FROM saved_searches WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting saved search: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanSavedSearch scans one saved-search row.
func scanSavedSearch(scan func(dest ...any) error) (*domain.SavedSearch, error) {
	var saved domain.SavedSearch
	var filtersJSON string
	var createdAt, lastUsed sql.NullTime
	if err := scan(&saved.ID, &saved.Name, &saved.Query, &saved.Description,
		&filtersJSON, &createdAt, &lastUsed, &saved.UseCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning saved search: %w", err)
	}

	if err := json.Unmarshal([]byte(filtersJSON), &saved.Filters); err != nil {
		return nil, fmt.Errorf("unmarshalling saved search filters: %w", err)
	}
	if createdAt.Valid {
		saved.CreatedAt = createdAt.Time
	}
	if lastUsed.Valid {
		saved.LastUsed = lastUsed.Time
	}
	return &saved, nil
}
