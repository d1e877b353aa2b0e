// Command permscope is a fuzzy search tool for permission catalogs.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/accesskit-labs/permscope-cli/internal/adapters/driven/catalog/file"
	"github.com/accesskit-labs/permscope-cli/internal/adapters/driven/catalog/static"
	"github.com/accesskit-labs/permscope-cli/internal/adapters/driven/clipboard"
	configfile "github.com/accesskit-labs/permscope-cli/internal/adapters/driven/config/file"
	"github.com/accesskit-labs/permscope-cli/internal/adapters/driven/storage/sqlite"
	"github.com/accesskit-labs/permscope-cli/internal/adapters/driving/cli"
	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
	"github.com/accesskit-labs/permscope-cli/internal/core/ports/driven"
	"github.com/accesskit-labs/permscope-cli/internal/core/services"
	"github.com/accesskit-labs/permscope-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	config, err := configfile.NewConfigStore("")
	if err != nil {
		return err
	}

	catalog, err := buildCatalog(config)
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(config.GetString(configfile.KeyDataDir))
	if err != nil {
		return err
	}
	defer store.Close()

	session := services.NewSession(catalog, domain.DefaultLookups(), buildOptions(config))
	defer session.Close()

	session.SetHistoryStore(store.HistoryStore())
	session.SetSavedSearchStore(store.SavedSearchStore())
	session.SetClipboard(clipboard.NewWriter())

	if ms := config.GetInt(configfile.KeyDebounceMS); ms > 0 {
		session.SetDebounce(time.Duration(ms) * time.Millisecond)
	}

	// Build the index up front so every surface starts with a loaded
	// catalog. A failure is recoverable: the session reports its error
	// state and a refresh retries.
	if err := session.RefreshPermissions(ctx); err != nil {
		logger.Error("loading catalog: %v", err)
	}

	// A file-backed catalog is reloaded when the file changes.
	if watcher, ok := catalog.(driven.CatalogWatcher); ok {
		watchCatalog(ctx, watcher, session)
	}

	cli.SetSession(session)
	cli.SetConfigStore(config)
	cli.SetVersion(version)

	return cli.Execute(ctx)
}

// buildCatalog picks the configured TOML catalog, falling back to the
// embedded one.
func buildCatalog(config *configfile.ConfigStore) (driven.CatalogProvider, error) {
	if path := config.GetString(configfile.KeyCatalogPath); path != "" {
		return file.NewProvider(path), nil
	}
	return static.NewProvider()
}

// buildOptions merges configured search knobs over the defaults.
func buildOptions(config *configfile.ConfigStore) domain.SearchOptions {
	opts := domain.DefaultSearchOptions()
	if min := config.GetFloat(configfile.KeyMinScore); min > 0 {
		opts.MinScore = min
	}
	if max := config.GetInt(configfile.KeyMaxResults); max > 0 {
		opts.MaxResults = max
	}
	opts.Context = config.GetString(configfile.KeySearchContext)
	return opts
}

// watchCatalog refreshes the session whenever the catalog file changes.
func watchCatalog(ctx context.Context, watcher driven.CatalogWatcher, session *services.Session) {
	changes := make(chan struct{}, 1)
	if err := watcher.Watch(ctx, changes); err != nil {
		logger.Warn("catalog watch unavailable: %v", err)
		return
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-changes:
				if err := session.RefreshPermissions(ctx); err != nil {
					logger.Error("reloading catalog: %v", err)
				}
			}
		}
	}()
}
