package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/brogergvhs/magnify/internal/config"
	"github.com/brogergvhs/magnify/internal/ui"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool
	flagEnvFile      string
)

var rootCmd = &cobra.Command{
	Use:           "magnify",
	Short:         "Product page inspector with paperback royalty estimates",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnvFile(flagEnvFile)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "dotenv file with MAGNIFY_* variables")
}

// loadEnvFile applies a dotenv file without overriding the real environment.
// A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// loadConfig resolves the effective configuration for a command and the
// logger that goes with it.
func loadConfig(opts config.Options) (*config.Config, *ui.Logger, error) {
	opts.IgnoreConfig = flagIgnoreConfig
	opts.Debug = flagDebug

	cfg, used, err := config.LoadMerged(opts)
	if err != nil {
		return nil, nil, err
	}

	log := ui.NewLogger(cfg.Debug)
	log.Debugf("Config file: %s\n", used)

	return cfg, log, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
