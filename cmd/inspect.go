package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/brogergvhs/magnify/internal/extract"
	"github.com/brogergvhs/magnify/internal/page"
	"github.com/brogergvhs/magnify/internal/util"

	"github.com/spf13/cobra"
)

func init() {
	inspectCmd := &cobra.Command{
		Use:   "inspect <file|->",
		Short: "Extract product details from a saved page and show the panel",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}

	inspectCmd.Flags().StringVar(&flagFormat, "format", "", "output format: text, html, json or pdf")
	inspectCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write the panel to this file instead of stdout")
	inspectCmd.Flags().StringVar(&flagMarketplace, "marketplace", "", "marketplace code for the royalty (default: page language)")
	inspectCmd.Flags().StringVar(&flagInject, "inject", "", "also write the page with the panel injected to this file")
	inspectCmd.Flags().BoolVar(&flagShowDimensions, "show-dimensions", false, "include the dimensions card")
	inspectCmd.Flags().StringVar(&flagLogo, "logo", "", "logo image URL for the HTML panel header")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(outputOptions())
	if err != nil {
		return err
	}

	in, err := util.OpenInput(args[0])
	if err != nil {
		return err
	}
	raw, err := io.ReadAll(in)
	_ = in.Close()
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	log.Debugf("Read %s (%s)\n", args[0], util.ByteSize(int64(len(raw))))

	doc, err := page.FromReader(bytes.NewReader(raw))
	if err != nil {
		return err
	}

	details := extract.New(log).Extract(doc)
	p := buildPanel(cfg, log, details)

	return writeResults(cmd.OutOrStdout(), cfg, log, doc, p)
}
