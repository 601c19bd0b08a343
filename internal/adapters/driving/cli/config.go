package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docvault-labs/docvault/internal/core/ports/driven"
)

// configStore is wired from main.
var configStore driven.ConfigStore

// secretKeys are masked in config list output.
var secretKeys = map[string]bool{
	driven.ConfigKeyLLMAPIKey: true,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Read and write docvault settings, stored in ~/.docvault/config.toml.

Common keys:
  llm.provider             openai or ollama
  llm.model                model name (provider default when empty)
  llm.api_key              API key for hosted providers
  llm.base_url             endpoint override
  watch.inbox_dir          directory for the watch command
  ocr.tesseract_path       tesseract binary override`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

// SetConfigStore wires the config store into the config commands.
func SetConfigStore(store driven.ConfigStore) {
	configStore = store
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	value, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}

	cmd.Printf("%v\n", value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]

	// Store numbers and booleans typed so readers get the type they
	// expect back from TOML.
	var value any = raw
	if b, err := strconv.ParseBool(raw); err == nil && isBoolish(raw) {
		value = b
	} else if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		value = i
	} else if f, err := strconv.ParseFloat(raw, 64); err == nil {
		value = f
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	keys := configStore.Keys()
	sort.Strings(keys)

	if len(keys) == 0 {
		cmd.Println("No configuration set.")
		return nil
	}

	for _, key := range keys {
		value, _ := configStore.Get(key)
		if secretKeys[key] {
			value = "********"
		}
		cmd.Printf("%s = %v\n", key, value)
	}
	return nil
}

// isBoolish limits bool parsing to the unambiguous spellings, so "1"
// stays a number.
func isBoolish(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "false":
		return true
	}
	return false
}
