package cmd

import (
	"errors"
	"fmt"

	"github.com/brogergvhs/magnify/internal/config"
	"github.com/brogergvhs/magnify/internal/ui"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var flagResetYes bool

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Overwrite the active profile with the built-in defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		label, err := config.CurrentLabel()
		if err == nil && label == "" {
			err = config.ErrNoConfig
		}
		if errors.Is(err, config.ErrNoConfig) {
			return fmt.Errorf("%w: run `magnify config init` first", err)
		}
		if err != nil {
			return err
		}

		activePath, err := config.ActiveConfigPath()
		if err != nil {
			return err
		}

		if !flagResetYes && ui.IsInteractive() {
			prompt := promptui.Prompt{
				Label:     fmt.Sprintf("Discard the settings of %q", label),
				IsConfirm: true,
			}
			if _, err := prompt.Run(); err != nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		if err := config.SaveYAML(config.DefaultConfig(), activePath); err != nil {
			return fmt.Errorf("failed to reset %s: %w", label, err)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Profile %s reset to defaults (%s)\n", label, activePath)
		return nil
	},
}

func init() {
	configResetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "do not ask for confirmation")
	configCmd.AddCommand(configResetCmd)
}
