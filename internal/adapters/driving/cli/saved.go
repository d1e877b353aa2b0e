package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	savedQuery       string
	savedDescription string
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved searches",
	Long: `Saved searches bundle a query and filter state under a name so a
frequently used search can be re-run in one step.`,
	RunE: runSavedList,
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved searches",
	RunE:  runSavedList,
}

var savedAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Save the given query under a name",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedAdd,
}

var savedRunCmd = &cobra.Command{
	Use:   "run [id]",
	Short: "Run a saved search",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedRun,
}

var savedDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a saved search",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedDelete,
}

func init() {
	savedAddCmd.Flags().StringVarP(&savedQuery, "query", "q", "", "query text to save (required)")
	savedAddCmd.Flags().StringVarP(&savedDescription, "description", "d", "", "optional description")
	_ = savedAddCmd.MarkFlagRequired("query")

	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedAddCmd)
	savedCmd.AddCommand(savedRunCmd)
	savedCmd.AddCommand(savedDeleteCmd)
	rootCmd.AddCommand(savedCmd)
}

func runSavedList(cmd *cobra.Command, _ []string) error {
	if session == nil {
		return errors.New("search session not configured")
	}

	saved, err := session.SavedSearches(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing saved searches: %w", err)
	}
	if len(saved) == 0 {
		cmd.Println("No saved searches.")
		return nil
	}

	cmd.Println("Saved searches:")
	for _, s := range saved {
		cmd.Printf("  %s  %q (query: %q, used %d time(s))\n", s.ID, s.Name, s.Query, s.UseCount)
		if s.Description != "" {
			cmd.Printf("      %s\n", s.Description)
		}
	}
	return nil
}

func runSavedAdd(cmd *cobra.Command, args []string) error {
	if session == nil {
		return errors.New("search session not configured")
	}

	// Run the query first so the saved bundle reflects a real search
	session.SearchNow(savedQuery)
	if err := session.Err(); err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	saved, err := session.SaveSearch(cmd.Context(), args[0], savedDescription)
	if err != nil {
		return fmt.Errorf("saving search: %w", err)
	}

	cmd.Printf("Saved search %q (%s)\n", saved.Name, saved.ID)
	return nil
}

func runSavedRun(cmd *cobra.Command, args []string) error {
	if session == nil {
		return errors.New("search session not configured")
	}

	saved, err := session.LoadSavedSearch(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("loading saved search: %w", err)
	}

	cmd.Printf("Running saved search %q (query: %q)\n", saved.Name, saved.Query)
	cmd.Println()
	return outputResultsTable(cmd, session.Results())
}

func runSavedDelete(cmd *cobra.Command, args []string) error {
	if session == nil {
		return errors.New("search session not configured")
	}

	if err := session.DeleteSavedSearch(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting saved search: %w", err)
	}
	cmd.Println("Saved search deleted.")
	return nil
}
