package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/brogergvhs/magnify/internal/config"
	"github.com/brogergvhs/magnify/internal/ui"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var flagYes bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the Default config",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		_, _ = fmt.Fprintln(out, "Configuration files live in:")
		_, _ = fmt.Fprintln(out, "  ", config.ConfigsDir())
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, "Default configuration:")
		config.DefaultConfig().Print(out)
		_, _ = fmt.Fprintln(out)

		if !flagYes && ui.IsInteractive() {
			prompt := promptui.Prompt{
				Label:     "Create the Default config",
				IsConfirm: true,
			}
			if _, err := prompt.Run(); err != nil {
				_, _ = fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		path, err := config.InitDefaultConfig()
		if errors.Is(err, os.ErrExist) {
			_, _ = fmt.Fprintln(out, "Configuration already exists at:")
			_, _ = fmt.Fprintln(out, "  ", path)
			_, _ = fmt.Fprintln(out, "It is now active. Use `magnify config reset` to recreate it.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		_, _ = fmt.Fprintln(out, "Config created at:", path)
		_, _ = fmt.Fprintln(out, "This config is now active (label: Default).")
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "do not ask for confirmation")
	configCmd.AddCommand(configInitCmd)
}
