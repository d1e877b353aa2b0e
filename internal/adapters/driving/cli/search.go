package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
)

var (
	searchResources  []string
	searchActions    []string
	searchScopes     []string
	searchCategories []string
	searchNoSystem   bool
	searchNoCond     bool
	searchMinPop     int
	searchContext    string
	searchSort       string
	searchOrder      string
	searchLimit      int
	searchJSON       bool
	searchNoHistory  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the permission catalog",
	Long: `Searches the permission catalog with fuzzy multi-field matching.

Queries match resources, actions, scopes, descriptions and synonyms:
"add staff" finds user.create permissions. An empty query lists the
catalog ranked by popularity.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringSliceVarP(&searchResources, "resource", "r", nil, "restrict to resources")
	searchCmd.Flags().StringSliceVarP(&searchActions, "action", "a", nil, "restrict to actions")
	searchCmd.Flags().StringSliceVarP(&searchScopes, "scope", "s", nil, "restrict to scopes")
	searchCmd.Flags().StringSliceVarP(&searchCategories, "category", "c", nil, "restrict to categories")
	searchCmd.Flags().BoolVar(&searchNoSystem, "no-system", false, "exclude system permissions")
	searchCmd.Flags().BoolVar(&searchNoCond, "no-conditional", false, "exclude conditional permissions")
	searchCmd.Flags().IntVar(&searchMinPop, "min-popularity", 0, "exclude permissions below this popularity")
	searchCmd.Flags().StringVar(&searchContext, "context", "", "scoring context (role-creation, user-management)")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "sort strategy (relevance, alphabetical, category, popularity)")
	searchCmd.Flags().StringVar(&searchOrder, "order", "", "sort direction (asc, desc)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchNoHistory, "no-history", false, "do not record the query in history")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if session == nil {
		return errors.New("search session not configured")
	}

	query := ""
	if len(args) == 1 {
		query = args[0]
	}

	if err := applySearchFlags(); err != nil {
		return err
	}

	results := session.SearchNow(query)
	if err := session.Err(); err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchLimit > 0 && len(results) > searchLimit {
		results = results[:searchLimit]
	}

	if query != "" && !searchNoHistory {
		if err := session.AddToHistory(cmd.Context(), query, len(results)); err != nil {
			return fmt.Errorf("recording history: %w", err)
		}
	}

	if searchJSON {
		payload, err := session.ExportResults()
		if err != nil {
			if errors.Is(err, domain.ErrNoResults) {
				cmd.Println("[]")
				return nil
			}
			return err
		}
		cmd.Println(payload)
		return nil
	}

	return outputResultsTable(cmd, results)
}

// applySearchFlags pushes the flag values into the session's filter
// and sort state.
func applySearchFlags() error {
	if searchSort != "" && !domain.SortBy(searchSort).IsValid() {
		return fmt.Errorf("unknown sort strategy %q: %w", searchSort, domain.ErrInvalidInput)
	}
	if searchOrder != "" && !domain.SortOrder(searchOrder).IsValid() {
		return fmt.Errorf("unknown sort direction %q: %w", searchOrder, domain.ErrInvalidInput)
	}

	if searchContext != "" {
		session.SetSearchContext(searchContext)
	}

	session.UpdateFilters(func(f *domain.SearchFilters) {
		f.Resources = searchResources
		f.Actions = searchActions
		f.Scopes = searchScopes
		f.Categories = searchCategories
		f.IncludeSystemPermissions = !searchNoSystem
		f.IncludeConditionalPermissions = !searchNoCond
		f.PopularityThreshold = searchMinPop
	})

	if searchSort != "" {
		order := domain.SortDesc
		if searchOrder != "" {
			order = domain.SortOrder(searchOrder)
		} else if domain.SortBy(searchSort) == domain.SortByAlphabetical ||
			domain.SortBy(searchSort) == domain.SortByCategory {
			order = domain.SortAsc
		}
		session.SetSort(domain.SortBy(searchSort), order)
	}

	return nil
}

func outputResultsTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No permissions found.")
		return nil
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range results {
		display := r.Permission.DisplayName
		if r.HighlightedText != "" {
			display = renderHighlight(r.HighlightedText, interactive)
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, display, r.Score)
		cmd.Printf("      %s  %s\n", r.Permission.Name, r.Permission.Category)
		if r.Permission.Description != "" {
			cmd.Printf("      %s\n", r.Permission.Description)
		}
		if len(r.MatchedFields) > 0 {
			cmd.Printf("      matched: %s\n", strings.Join(r.MatchedFields, ", "))
		}
		cmd.Println()
	}

	return nil
}

var highlightStyle = lipgloss.NewStyle().Bold(true)

// renderHighlight converts **emphasis** markers into bold terminal
// output, or strips them when stdout is not a terminal.
func renderHighlight(s string, interactive bool) string {
	parts := strings.Split(s, "**")
	if len(parts) == 1 {
		return s
	}

	var b strings.Builder
	for i, part := range parts {
		if i%2 == 1 && interactive {
			b.WriteString(highlightStyle.Render(part))
		} else {
			b.WriteString(part)
		}
	}
	return b.String()
}
