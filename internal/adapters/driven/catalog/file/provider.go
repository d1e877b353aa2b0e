// Package file provides a catalog provider backed by a TOML file on
// disk. The file holds [[permission]] entries and can be watched for
// edits so running sessions pick up catalog changes.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
	"github.com/accesskit-labs/permscope-cli/internal/core/ports/driven"
)

// Ensure Provider implements both catalog ports.
var (
	_ driven.CatalogProvider = (*Provider)(nil)
	_ driven.CatalogWatcher  = (*Provider)(nil)
)

// debounceInterval coalesces bursts of filesystem events into one
// change signal. Editors typically emit several events per save.
const debounceInterval = 200 * time.Millisecond

// catalogDocument is the TOML shape of a catalog file.
type catalogDocument struct {
	Permissions []permissionEntry `toml:"permission"`
}

// permissionEntry is one [[permission]] table.
type permissionEntry struct {
	ID          string   `toml:"id"`
	Resource    string   `toml:"resource"`
	Action      string   `toml:"action"`
	Scope       string   `toml:"scope"`
	Description string   `toml:"description"`
	Conditions  []string `toml:"conditions"`
}

// Provider loads permission records from a TOML catalog file.
type Provider struct {
	path string
}

// NewProvider creates a provider reading from the given catalog path.
func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

// Path returns the catalog file path.
func (p *Provider) Path() string {
	return p.path
}

// FetchPermissions reads and parses the catalog file.
func (p *Provider) FetchPermissions(ctx context.Context) ([]domain.PermissionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", p.path, err)
	}

	var doc catalogDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", p.path, err)
	}

	records := make([]domain.PermissionRecord, 0, len(doc.Permissions))
	for i, entry := range doc.Permissions {
		if entry.Resource == "" || entry.Action == "" || entry.Scope == "" {
			return nil, fmt.Errorf("catalog entry %d missing resource/action/scope: %w", i, domain.ErrInvalidInput)
		}

		id := entry.ID
		if id == "" {
			id = entry.Resource + "." + entry.Action + "." + entry.Scope
		}

		records = append(records, domain.PermissionRecord{
			ID:          id,
			Resource:    entry.Resource,
			Action:      entry.Action,
			Scope:       entry.Scope,
			Description: entry.Description,
			Conditions:  entry.Conditions,
		})
	}

	return records, nil
}

// Watch signals on ch whenever the catalog file changes on disk.
// The containing directory is watched rather than the file itself so
// atomic replace-on-save (rename over the original) is still seen.
func (p *Provider) Watch(ctx context.Context, ch chan<- struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating catalog watcher: %w", err)
	}

	dir := filepath.Dir(p.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching catalog directory %s: %w", dir, err)
	}

	go p.watchLoop(ctx, watcher, ch)
	return nil
}

// watchLoop forwards relevant filesystem events as debounced change
// signals until the context is cancelled.
func (p *Provider) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, ch chan<- struct{}) {
	defer watcher.Close()

	var debounce *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(p.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceInterval, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case <-pending:
			select {
			case ch <- struct{}{}:
			case <-ctx.Done():
				return
			}

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next explicit refresh
			// still re-reads the file.
		}
	}
}
