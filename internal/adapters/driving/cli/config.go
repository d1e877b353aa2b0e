package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	configfile "github.com/accesskit-labs/permscope-cli/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change configuration.

Keys:
  catalog.path        path to a TOML catalog file (empty = built-in catalog)
  storage.data_dir    directory for the history database
  search.debounce_ms  search debounce interval in milliseconds
  search.min_score    minimum relevance score for a result
  search.max_results  maximum number of results
  search.context      default scoring context`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Printf("Configuration (%s)\n", configStore.Path())
	cmd.Println()

	cmd.Println("[catalog]")
	printConfigValue(cmd, "path", configStore.GetString(configfile.KeyCatalogPath))
	cmd.Println()

	cmd.Println("[storage]")
	printConfigValue(cmd, "data_dir", configStore.GetString(configfile.KeyDataDir))
	cmd.Println()

	cmd.Println("[search]")
	if v := configStore.GetInt(configfile.KeyDebounceMS); v > 0 {
		cmd.Printf("  debounce_ms: %d\n", v)
	} else {
		cmd.Println("  debounce_ms: (default)")
	}
	if v := configStore.GetFloat(configfile.KeyMinScore); v > 0 {
		cmd.Printf("  min_score: %g\n", v)
	} else {
		cmd.Println("  min_score: (default)")
	}
	if v := configStore.GetInt(configfile.KeyMaxResults); v > 0 {
		cmd.Printf("  max_results: %d\n", v)
	} else {
		cmd.Println("  max_results: (default)")
	}
	printConfigValue(cmd, "context", configStore.GetString(configfile.KeySearchContext))

	return nil
}

func printConfigValue(cmd *cobra.Command, name, value string) {
	if value == "" {
		cmd.Printf("  %s: (not set)\n", name)
		return
	}
	cmd.Printf("  %s: %s\n", name, value)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	val, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	cmd.Printf("%v\n", val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]

	// Store numbers and booleans typed so Get* accessors work
	var value any = raw
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		value = i
	} else if f, err := strconv.ParseFloat(raw, 64); err == nil {
		value = f
	} else if b, err := strconv.ParseBool(raw); err == nil {
		value = b
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	cmd.Printf("%s = %v\n", key, value)
	return nil
}
