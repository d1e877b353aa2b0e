package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
	"github.com/accesskit-labs/permscope-cli/internal/core/ports/driven"
)

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// List returns all stored entries, newest first.
func (s *historyStore) List(ctx context.Context) ([]domain.SearchHistoryEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, query, searched_at, result_count, filters
		FROM search_history
		ORDER BY searched_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []domain.SearchHistoryEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry domain.SearchHistoryEntry
		var filtersJSON string
		var searchedAt sql.NullTime
		if err := rows.Scan(&entry.ID, &entry.Query, &searchedAt, &entry.ResultCount, &filtersJSON); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		if searchedAt.Valid {
			entry.Timestamp = searchedAt.Time
		}
		if err := json.Unmarshal([]byte(filtersJSON), &entry.Filters); err != nil {
			return nil, fmt.Errorf("unmarshalling history filters: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}

// Save stores or updates an entry.
func (s *historyStore) Save(ctx context.Context, entry domain.SearchHistoryEntry) error {
	filtersJSON, err := json.Marshal(entry.Filters)
	if err != nil {
		return fmt.Errorf("marshalling history filters: %w", err)
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO search_history (id, query, searched_at, result_count, filters)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			query = excluded.query,
			searched_at = excluded.searched_at,
			result_count = excluded.result_count,
			filters = excluded.filters
	`, entry.ID, entry.Query, entry.Timestamp, entry.ResultCount, string(filtersJSON))

	if err != nil {
		return fmt.Errorf("saving history entry: %w", err)
	}
	return nil
}

// Delete removes an entry by ID.
func (s *historyStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, `DELETE FROM search_history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting history entry: %w", err)
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

// DeleteAll clears all stored history.
func (s *historyStore) DeleteAll(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, `DELETE FROM search_history`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}
