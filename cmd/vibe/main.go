// Package main provides the vibe CLI: elemental readings, radar charts and
// narrative profiles from a birthdate and a name.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/elemental-vibe/internal/config"
	"github.com/jonathan/elemental-vibe/internal/elements"
	"github.com/jonathan/elemental-vibe/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "vibe",
	Short: "Elemental Vibe readings from a birthdate and a name",
	Long: "Elemental Vibe scores a birthdate and a name into a five-element profile, resolves its archetype, " +
		"draws it as a radar chart and asks Gemini for a short narrative.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

var (
	configPath    string
	logLevelFlag  string
	logFormatFlag string
	verboseFlag   bool

	// resolved in setup
	cfg    = config.Defaults()
	logger = zap.NewNop()
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON config file (overrides VIBE_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format: console or json")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Print detailed output")
}

// setup resolves configuration (flags > env > file > defaults) and builds the logger
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		loaded.LogLevel = logLevelFlag
	}
	if cmd.Flags().Changed("log-format") {
		loaded.LogFormat = logFormatFlag
	}
	if verboseFlag {
		loaded.Verbose = true
		if !cmd.Flags().Changed("log-level") {
			loaded.LogLevel = "debug"
		}
	}

	l, err := logging.New(loaded.LogLevel, loaded.LogFormat)
	if err != nil {
		return err
	}
	cfg = loaded
	logger = l
	logger.Debug("Configuration resolved",
		zap.String("tier", cfg.Tier),
		zap.String("variant", cfg.Variant),
		zap.Duration("min_duration", cfg.MinDuration.Std()),
		zap.Int("max_retries", cfg.Retries()))
	return nil
}

// assetTable returns the built-in assets with configured overrides applied
func assetTable() elements.AssetTable {
	return elements.DefaultAssets().Merge(cfg.Assets)
}

// checkFormat rejects output formats a command does not support
func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q (want one of %v)", format, allowed)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
