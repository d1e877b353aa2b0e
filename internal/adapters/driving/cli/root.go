// Package cli implements the cobra command tree. Commands talk to the
// search session through the driving port; wiring happens in main.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
	"github.com/accesskit-labs/permscope-cli/internal/core/ports/driven"
	"github.com/accesskit-labs/permscope-cli/internal/core/ports/driving"
	"github.com/accesskit-labs/permscope-cli/internal/logger"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// Injected services. Set once during startup, before Execute.
var (
	session     driving.SessionService
	configStore driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "permscope",
	Short: "Search and explore permission catalogs",
	Long: `Permscope is a fuzzy search engine for permission catalogs.

Type a few characters of a resource, action or synonym and get ranked,
filterable matches. Searches, filters and saved searches persist across
invocations.

Run without arguments to launch the interactive TUI.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
		ensureCatalogLoaded(cmd.Context())
	},
	RunE: runTUI,
}

// ensureCatalogLoaded performs the session-start catalog load for
// commands reaching the index before anything else has. A failure
// leaves the session in its error state, which the commands report.
func ensureCatalogLoaded(ctx context.Context) {
	if session == nil || session.Status() != domain.StatusIdle {
		return
	}
	if err := session.RefreshPermissions(ctx); err != nil {
		logger.Error("loading catalog: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetSession injects the search session used by all commands.
func SetSession(s driving.SessionService) {
	session = s
}

// SetConfigStore injects the configuration store.
func SetConfigStore(store driven.ConfigStore) {
	configStore = store
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
