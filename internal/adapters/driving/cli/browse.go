package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var browseLimit int

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "List the catalog by popularity",
	Long: `Lists the permission catalog ranked by popularity, the same view
an empty search query produces. Useful for discovering what exists
before narrowing down with search.`,
	RunE: runBrowse,
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently selected permissions",
	RunE:  runRecent,
}

func init() {
	browseCmd.Flags().IntVarP(&browseLimit, "limit", "n", 20, "maximum number of entries")
	recentCmd.Flags().IntVarP(&browseLimit, "limit", "n", 10, "maximum number of entries")
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(recentCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	if session == nil {
		return errors.New("search session not configured")
	}

	entries := session.PopularPermissions(browseLimit)
	if len(entries) == 0 {
		cmd.Println("Catalog is empty.")
		return nil
	}

	cmd.Println("Catalog by popularity:")
	cmd.Println()
	for i, e := range entries {
		cmd.Printf("  [%d] %s (popularity %d)\n", i+1, e.DisplayName, e.Popularity)
		cmd.Printf("      %s  %s\n", e.Name, e.Category)
		cmd.Println()
	}
	return nil
}

func runRecent(cmd *cobra.Command, _ []string) error {
	if session == nil {
		return errors.New("search session not configured")
	}

	entries := session.RecentPermissions(browseLimit)
	if len(entries) == 0 {
		cmd.Println("No recently selected permissions.")
		return nil
	}

	cmd.Println("Recently selected:")
	for i, e := range entries {
		cmd.Printf("  [%d] %s  (%s)\n", i+1, e.Name, e.DisplayName)
	}
	return nil
}
