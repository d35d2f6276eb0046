package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/brogergvhs/magnify/internal/config"
	"github.com/brogergvhs/magnify/internal/extract"
	"github.com/brogergvhs/magnify/internal/page"
	"github.com/brogergvhs/magnify/internal/panel"
	"github.com/brogergvhs/magnify/internal/royalty"
	"github.com/brogergvhs/magnify/internal/ui"
	"github.com/brogergvhs/magnify/internal/util"
)

// output flags shared by inspect and watch
var (
	flagFormat         string
	flagOutput         string
	flagMarketplace    string
	flagInject         string
	flagShowDimensions bool
	flagLogo           string
)

func outputOptions() config.Options {
	return config.Options{
		Marketplace:    flagMarketplace,
		Format:         flagFormat,
		ShowDimensions: flagShowDimensions,
	}
}

// buildPanel estimates the royalty for details and lays out the panel. The
// marketplace defaults to the page language, as on the live storefront.
func buildPanel(cfg *config.Config, log *ui.Logger, details extract.ProductDetails) panel.Panel {
	marketplace := cfg.Marketplace
	if marketplace == "" {
		marketplace = details.Language
	}

	res, err := cfg.Calculator().Estimate(details, marketplace)
	switch {
	case errors.Is(err, royalty.ErrNotEligible):
		log.Debugf("Skipping royalty calculation: price=%s pages=%s format=%s publisher=%s\n",
			details.Price, details.Pages, details.Format, details.Publisher)
	case err != nil:
		log.Debugf("Royalty calculation failed for %s: %v\n", marketplace, err)
	default:
		log.Debugf("Royalty for %s: %s %s\n", marketplace, res.FormatRoyalty(), res.Currency)
	}

	return panel.Build(details, panel.Estimate{Result: res, Err: err}, panel.Options{
		ShowDimensions: cfg.ShowDimensions,
		LogoURL:        flagLogo,
	})
}

func renderPanel(w io.Writer, format string, p panel.Panel) error {
	switch format {
	case "text":
		return panel.RenderText(w, p)
	case "json":
		return panel.RenderJSON(w, p)
	case "pdf":
		return panel.RenderPDF(w, p)
	case "html":
		markup, err := panel.RenderHTML(p)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, markup+"\n")
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}

// writeResults writes the rendered panel and, when requested, a copy of the
// page with the panel injected.
func writeResults(stdout io.Writer, cfg *config.Config, log *ui.Logger, doc *page.Document, p panel.Panel) error {
	if flagInject == util.StdStream && (flagOutput == "" || flagOutput == util.StdStream) {
		return errors.New("--inject and --output cannot both use stdout")
	}

	if flagInject != "" {
		markup, err := panel.RenderHTML(p)
		if err != nil {
			return err
		}

		where := panel.Inject(doc.Goquery(), markup)
		log.Debugf("Panel inserted (%s)\n", where)

		injected, err := doc.HTML()
		if err != nil {
			return err
		}
		if err := util.WriteOutput(flagInject, stdout, func(w io.Writer) error {
			_, err := io.WriteString(w, injected)
			return err
		}); err != nil {
			return err
		}
		log.Infof("Wrote page with panel to %s\n", flagInject)
	}

	return util.WriteOutput(flagOutput, stdout, func(w io.Writer) error {
		return renderPanel(w, cfg.Format, p)
	})
}
