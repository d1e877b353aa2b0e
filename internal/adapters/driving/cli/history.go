package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show search history",
	Long: `Shows the bounded search history, newest first. Repeating a query
moves it to the front rather than adding a duplicate.`,
	RunE: runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear search history",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if session == nil {
		return errors.New("search session not configured")
	}

	entries := session.History()
	if len(entries) == 0 {
		cmd.Println("No search history.")
		return nil
	}

	cmd.Println("Search history:")
	for i, e := range entries {
		cmd.Printf("  [%d] %q  %d result(s)  %s\n",
			i+1, e.Query, e.ResultCount, e.Timestamp.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if session == nil {
		return errors.New("search session not configured")
	}

	if err := session.ClearHistory(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Search history cleared.")
	return nil
}
