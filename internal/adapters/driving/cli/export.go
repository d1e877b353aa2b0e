package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
)

var exportCopy bool

var exportCmd = &cobra.Command{
	Use:   "export [query]",
	Short: "Export search results as JSON",
	Long: `Runs a search and prints the results as a JSON document suitable
for piping into other tools. With --copy the permission names are
also placed on the system clipboard.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportCopy, "copy", false, "also copy permission names to the clipboard")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if session == nil {
		return errors.New("search session not configured")
	}

	session.SearchNow(args[0])
	if err := session.Err(); err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	payload, err := session.ExportResults()
	if err != nil {
		if errors.Is(err, domain.ErrNoResults) {
			return fmt.Errorf("nothing to export for %q: %w", args[0], err)
		}
		return err
	}

	cmd.Println(payload)

	if exportCopy {
		if err := session.CopyPermissionNames(); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Permission names copied to clipboard.")
	}

	return nil
}
