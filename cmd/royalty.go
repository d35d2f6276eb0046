package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/brogergvhs/magnify/internal/config"
	"github.com/brogergvhs/magnify/internal/panel"
	"github.com/brogergvhs/magnify/internal/royalty"
	"github.com/brogergvhs/magnify/internal/ui"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var (
	flagPages     int
	flagPrice     float64
	flagRoyaltyMP string
	flagJSON      bool
)

func init() {
	royaltyCmd := &cobra.Command{
		Use:   "royalty",
		Short: "Estimate the paperback royalty for a page count and list price",
		Args:  cobra.NoArgs,
		RunE:  runRoyalty,
	}

	royaltyCmd.Flags().IntVar(&flagPages, "pages", 0, "page count")
	royaltyCmd.Flags().Float64Var(&flagPrice, "price", 0, "list price in the marketplace currency")
	royaltyCmd.Flags().StringVar(&flagRoyaltyMP, "marketplace", "", "marketplace code, e.g. en-us (prompted when omitted)")
	royaltyCmd.Flags().BoolVar(&flagJSON, "json", false, "print the result as JSON")

	rootCmd.AddCommand(royaltyCmd)
}

func runRoyalty(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig(config.Options{Marketplace: flagRoyaltyMP})
	if err != nil {
		return err
	}

	calc := cfg.Calculator()
	marketplace := cfg.Marketplace
	if marketplace == "" {
		if !ui.IsInteractive() {
			return errors.New("missing --marketplace and no marketplace in config")
		}
		if marketplace, err = pickMarketplace(calc.Costs); err != nil {
			return err
		}
	}

	log.Debugf("Royalty calculation inputs: pages=%d price=%g marketplace=%s\n", flagPages, flagPrice, marketplace)

	res, err := calc.Calculate(flagPages, flagPrice, marketplace)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Marketplace:\t%s\n", royalty.NormalizeCode(marketplace))
	_, _ = fmt.Fprintf(w, "Currency:\t%s (%s)\n", res.Currency, panel.CurrencySymbol(res.Currency))
	_, _ = fmt.Fprintf(w, "Printing Cost:\t%s\n", res.FormatPrintingCost())
	_, _ = fmt.Fprintf(w, "Min List Price:\t%s\n", res.FormatMinListPrice())
	_, _ = fmt.Fprintf(w, "Royalty:\t%s\n", res.FormatRoyalty())
	if res.BelowMinimum {
		_, _ = fmt.Fprintln(w, "Note:\tprice is below the minimum list price")
	}

	return w.Flush()
}

func pickMarketplace(costs royalty.CostTable) (string, error) {
	codes := costs.Codes()
	items := make([]string, len(codes))
	for i, code := range codes {
		items[i] = fmt.Sprintf("%s  (%s)", code, costs[code].Currency)
	}

	prompt := promptui.Select{
		Label: "Select marketplace",
		Items: items,
		Size:  len(items),
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled")
	}

	return codes[idx], nil
}
