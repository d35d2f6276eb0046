package cmd

import (
	"errors"
	"fmt"

	"github.com/brogergvhs/magnify/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// profileSummary is the one-line description shown in the switch menu.
func profileSummary(c config.ConfigInfo) string {
	line := c.Label
	if cfg, err := config.Load(c.Path); err == nil {
		mp := cfg.Marketplace
		if mp == "" {
			mp = "page language"
		}
		line += fmt.Sprintf("  [marketplace: %s, format: %s]", mp, cfg.Format)
	}
	if c.Active {
		line += "  (active)"
	}
	return line
}

var configSwitchCmd = &cobra.Command{
	Use:   "switch [label]",
	Short: "Switch to a different configuration profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var label string

		if len(args) == 1 {
			label = args[0]
		} else {
			list, err := config.ListConfigs()
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return errors.New("no configs available, run `magnify config init` first")
			}

			items := make([]string, len(list))
			for i, c := range list {
				items[i] = profileSummary(c)
			}

			prompt := promptui.Select{
				Label: "Select config",
				Items: items,
			}

			idx, _, err := prompt.Run()
			if err != nil {
				return errors.New("selection cancelled")
			}

			label = list[idx].Label
		}

		if err := config.SwitchConfig(label); err != nil {
			return err
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Switched to:", label)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSwitchCmd)
}
