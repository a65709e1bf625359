package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/skillpick/internal/config"
	"github.com/runger/skillpick/internal/sanitize"
)

var configCmd = &cobra.Command{
	Use:     "config [key] [value]",
	Short:   "Get or set configuration values",
	GroupID: groupSetup,
	Long: `Get or set skillpick configuration values.

Without arguments, lists all configuration keys.
With one argument, shows the value of that key.
With two arguments, sets the key to the value.

Configuration is stored in ~/.config/skillpick/config.yaml (XDG compliant).

Keys are in the format: section.key
Sections: catalog, picker, recents, log
List values are comma-separated.

Examples:
  skillpick config                                  # List all keys
  skillpick config picker.max_visible               # Get a value
  skillpick config picker.max_visible 20            # Show more rows
  skillpick config catalog.trusted_dirs ~/skills,/opt/skills
  skillpick config recents.backend sqlite`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	paths := config.DefaultPaths()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch len(args) {
	case 0:
		// List all keys
		return listConfig(cfg, paths)
	case 1:
		// Get value
		return getConfig(cfg, args[0])
	case 2:
		// Set value
		return setConfig(cfg, paths, args[0], args[1])
	}

	return nil
}

func listConfig(cfg *config.Config, paths *config.Paths) error {
	fmt.Printf("%sConfiguration Keys%s\n", colorBold, colorReset)
	fmt.Println(strings.Repeat("-", 40))
	fmt.Println()

	keys := config.ListKeys()
	var failedKeys []string
	for _, key := range keys {
		value, err := cfg.Get(key)
		if err != nil {
			failedKeys = append(failedKeys, key)
			continue
		}

		// Format empty values; long directory lists keep both ends visible.
		displayValue := sanitize.MiddleTruncate(value, max(terminalWidth()-len(key)-5, 20))
		if displayValue == "" {
			displayValue = colorDim + "(not set)" + colorReset
		}

		fmt.Printf("  %s%s%s = %s\n", colorCyan, key, colorReset, displayValue)
	}

	if len(failedKeys) > 0 {
		fmt.Printf("\n%sWarning:%s Failed to retrieve keys: %s\n", colorYellow, colorReset, strings.Join(failedKeys, ", "))
	}

	fmt.Println()
	fmt.Printf("Config file: %s\n", paths.ConfigFile())

	return nil
}

func getConfig(cfg *config.Config, key string) error {
	value, err := cfg.Get(key)
	if err != nil {
		return err
	}

	if value == "" {
		fmt.Printf("%s(not set)%s\n", colorDim, colorReset)
	} else {
		fmt.Println(value)
	}

	return nil
}

func setConfig(cfg *config.Config, paths *config.Paths, key, value string) error {
	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Ensure directories exist before saving
	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if err := cfg.SaveToFile(paths.ConfigFile()); err != nil {
		return err
	}

	fmt.Printf("%s%s%s = %s\n", colorCyan, key, colorReset, value)
	fmt.Printf("Saved to: %s\n", paths.ConfigFile())

	return nil
}
