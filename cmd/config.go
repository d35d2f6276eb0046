package cmd

import (
	"fmt"

	"github.com/brogergvhs/magnify/internal/config"

	"github.com/spf13/cobra"
)

var flagConfigPath bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration and manage profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if flagConfigPath {
			path, err := config.ActiveConfigPath()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, path)
			return nil
		}

		cfg, used, err := config.LoadMerged(config.Options{
			IgnoreConfig: flagIgnoreConfig,
			Debug:        flagDebug,
		})
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(out, "Effective configuration (source: %s)\n", used)
		cfg.Print(out)

		costs := cfg.Calculator().Costs
		_, _ = fmt.Fprintf(out, "\n%d marketplaces available, see `magnify marketplaces`\n", len(costs))
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigPath, "path", false, "print only the active profile path")
	rootCmd.AddCommand(configCmd)
}
