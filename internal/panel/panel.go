// Package panel assembles extracted product details and the royalty estimate
// into an ordered list of cards, and renders that list as HTML, plain text,
// JSON or PDF.
package panel

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/brogergvhs/magnify/internal/extract"
	"github.com/brogergvhs/magnify/internal/royalty"
)

const (
	Title = "Product Magnify"

	LabelASIN        = "ASIN"
	LabelBSR         = "BSR"
	LabelPublisher   = "Publisher"
	LabelPublishDate = "Publication Date"
	LabelDimensions  = "Dimensions"
	LabelPages       = "Pages"
	LabelReviews     = "Reviews"
	LabelRoyalty     = "Estimated Royalty"
)

// Card is one labelled box of the panel.
type Card struct {
	Label string   `json:"label"`
	Lines []string `json:"lines"`
	// Currency is set on the royalty card so renderers can show a symbol.
	Currency string `json:"currency,omitempty"`
}

// Estimate is the outcome of a royalty calculation as the panel sees it.
// An Err wrapping royalty.ErrNotEligible hides the royalty card.
type Estimate struct {
	Result royalty.Result
	Err    error
}

type Options struct {
	ShowDimensions bool
	// LogoURL is the header image; no image is emitted when empty.
	LogoURL string
}

type Panel struct {
	Title   string                 `json:"title"`
	Cards   []Card                 `json:"cards"`
	Details extract.ProductDetails `json:"details"`
	Royalty *royalty.Result        `json:"royalty,omitempty"`
	Error   string                 `json:"royalty_error,omitempty"`

	logoURL string
}

// Build lays out the cards for d. ASIN is always shown, other fields only
// when present. Dimensions stay hidden unless opts.ShowDimensions is set.
func Build(d extract.ProductDetails, est Estimate, opts Options) Panel {
	p := Panel{Title: Title, Details: d, logoURL: opts.LogoURL}

	p.add(LabelASIN, d.ASIN.String())

	if bsr, ok := d.BestSellerRank.Get(); ok {
		p.add(LabelBSR, bsr)
	}
	if pub, ok := d.Publisher.Get(); ok {
		p.add(LabelPublisher, pub)
	}
	if date, ok := d.PublishDate.Get(); ok {
		p.add(LabelPublishDate, date)
	}
	if dim, ok := d.Dimensions.Get(); ok && opts.ShowDimensions {
		p.add(LabelDimensions, dim)
	}
	if pages, ok := d.Pages.Get(); ok {
		p.add(LabelPages, strconv.Itoa(pages))
	}
	if rv, ok := d.Reviews.Get(); ok && rv.TotalReviews > 0 {
		p.add(LabelReviews,
			fmt.Sprintf("Total Reviews: %d", rv.TotalReviews),
			fmt.Sprintf("Average Rating: %s", strconv.FormatFloat(rv.AverageRating, 'f', 1, 64)),
		)
	}

	switch {
	case errors.Is(est.Err, royalty.ErrNotEligible):
	case est.Err != nil:
		p.Error = est.Err.Error()
		p.add(LabelRoyalty, "Error: "+p.Error)
	default:
		res := est.Result
		p.Royalty = &res
		p.Cards = append(p.Cards, Card{
			Label: LabelRoyalty,
			Lines: []string{
				fmt.Sprintf("Royalty: %s %s", res.FormatRoyalty(), res.Currency),
				fmt.Sprintf("Printing Cost: %s %s", res.FormatPrintingCost(), res.Currency),
			},
			Currency: res.Currency,
		})
	}

	return p
}

func (p *Panel) add(label string, lines ...string) {
	p.Cards = append(p.Cards, Card{Label: label, Lines: lines})
}

// Card returns the card with the given label.
func (p Panel) Card(label string) (Card, bool) {
	for _, c := range p.Cards {
		if c.Label == label {
			return c, true
		}
	}
	return Card{}, false
}
