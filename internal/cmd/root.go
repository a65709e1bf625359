package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/runger/skillpick/internal/config"
	applog "github.com/runger/skillpick/internal/log"
)

// Command groups shown in help output.
const (
	groupCore  = "core"
	groupSetup = "setup"
)

var (
	logStderr bool
	colorMode string

	// closeLog flushes the log file opened by setupLogging.
	closeLog = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "skillpick",
	Short: "pick a skill from your skill catalog",
	Long: `skillpick - pick a skill from your skill catalog
  - type to fuzzy-search names, or namespace:name
  - the picked skill is queued; pick it again to unqueue`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { closeLog() },
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: groupCore, Title: "Skills:"},
		&cobra.Group{ID: groupSetup, Title: "Setup:"},
	)
	rootCmd.PersistentFlags().BoolVar(&logStderr, "log-stderr", false, "write logs to stderr instead of the log file")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "color output: auto, always, or never")

	rootCmd.AddCommand(versionCmd)
}

// setupLogging points slog at the log file (or stderr) using the level
// from the config file and environment.
func setupLogging(cmd *cobra.Command, args []string) error {
	applyColorMode()

	level := "info"
	file := ""
	if cfg, err := config.Load(); err == nil {
		level = cfg.Log.Level
		file = cfg.Log.File
	}

	if logStderr {
		slog.SetDefault(applog.New(&applog.Config{Output: os.Stderr, Level: applog.ParseLevel(level)}))
		return nil
	}

	if file == "" {
		file = config.DefaultPaths().LogFile()
	}
	_, closeLog = applog.Setup(config.ExpandHome(file), level)
	return nil
}
