package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	catalogfile "github.com/accesskit-labs/permscope-cli/internal/adapters/driven/catalog/file"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Catalog management commands",
}

var catalogRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reload the permission catalog",
	Long:  `Reloads the catalog from its source and rebuilds the search index.`,
	RunE:  runCatalogRefresh,
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Validate a catalog file",
	Long:  `Parses a TOML catalog file and reports whether it is usable.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogCheck,
}

func init() {
	catalogCmd.AddCommand(catalogRefreshCmd)
	catalogCmd.AddCommand(catalogCheckCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogRefresh(cmd *cobra.Command, _ []string) error {
	if session == nil {
		return errors.New("search session not configured")
	}

	if err := session.RefreshPermissions(cmd.Context()); err != nil {
		return fmt.Errorf("refreshing catalog: %w", err)
	}

	cmd.Println("Catalog reloaded.")
	return nil
}

func runCatalogCheck(cmd *cobra.Command, args []string) error {
	provider := catalogfile.NewProvider(args[0])

	records, err := provider.FetchPermissions(cmd.Context())
	if err != nil {
		return fmt.Errorf("catalog invalid: %w", err)
	}

	cmd.Printf("Catalog OK: %d permission(s).\n", len(records))
	return nil
}
