package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/brogergvhs/magnify/internal/config"
	"github.com/brogergvhs/magnify/internal/panel"

	"github.com/spf13/cobra"
)

var marketplacesCmd = &cobra.Command{
	Use:   "marketplaces",
	Short: "List the marketplaces and their print costs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(config.Options{})
		if err != nil {
			return err
		}

		calc := cfg.Calculator()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 4, ' ', 0)
		_, _ = fmt.Fprintln(w, "CODE\tCURRENCY\tFIXED\tPER PAGE")

		for _, code := range calc.Costs.Codes() {
			c := calc.Costs[code]
			_, _ = fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n",
				code, c.Currency, panel.CurrencySymbol(c.Currency),
				strconv.FormatFloat(c.FixedCost, 'f', -1, 64),
				strconv.FormatFloat(c.PerPageCost, 'f', -1, 64),
			)
		}

		_, _ = fmt.Fprintf(w, "\nrate %g, flat cost up to %d pages\n", calc.Rate, calc.PageThreshold)
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(marketplacesCmd)
}
