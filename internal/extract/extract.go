// Package extract turns a product detail page into ProductDetails. Every
// field is looked up independently; a field that cannot be found is absent,
// never an error.
package extract

import (
	"strings"

	"github.com/brogergvhs/magnify/internal/locale"
	"github.com/brogergvhs/magnify/internal/normalize"
	"github.com/brogergvhs/magnify/internal/page"
)

// Reviews is the review summary of a product.
type Reviews struct {
	TotalReviews  int     `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
}

// ProductDetails are the fields scraped from one product page.
type ProductDetails struct {
	Language       string            `json:"language"`
	ASIN           Optional[string]  `json:"asin"`
	BestSellerRank Optional[string]  `json:"best_seller_rank"`
	Publisher      Optional[string]  `json:"publisher"`
	PublishDate    Optional[string]  `json:"publish_date"`
	Dimensions     Optional[string]  `json:"dimensions"`
	Pages          Optional[int]     `json:"pages"`
	Reviews        Optional[Reviews] `json:"reviews"`
	Price          Optional[float64] `json:"price"`
	Format         Optional[string]  `json:"format"`
}

// Logger receives a trace of what each extractor found.
type Logger interface {
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}

type Extractor struct {
	log Logger
}

func New(log Logger) *Extractor {
	if log == nil {
		log = nopLogger{}
	}

	return &Extractor{log: log}
}

// Extract reads every field from acc with a silent logger.
func Extract(acc page.Accessor) ProductDetails {
	return New(nil).Extract(acc)
}

func (e *Extractor) Extract(acc page.Accessor) ProductDetails {
	lang, ok := acc.FindAttr(LanguageSelector, "lang")
	if !ok || strings.TrimSpace(lang) == "" {
		lang = DefaultLanguage
	}
	t := locale.For(lang)
	e.log.Debugf("Detected language: %s (labels: %s)\n", lang, t.Lang)

	d := ProductDetails{Language: lang}

	if asin, ok := acc.FindAttr(ASINSelector, "value"); ok {
		d.ASIN = nonEmpty(strings.TrimSpace(asin))
	}
	e.log.Debugf("ASIN: %s\n", d.ASIN)

	lines := acc.FindAll(DetailLinesSelector)
	e.log.Debugf("Detail elements found: %d\n", len(lines))

	for i, raw := range lines {
		line := normalize.CollapseSpace(raw)
		e.log.Debugf("Checking detail element %d: %s\n", i, line)
		e.scanLine(t, line, &d)
	}

	if !d.Pages.Present() {
		if text, ok := acc.FindText(PagesFallbackSection); ok {
			if n, ok := PagesFallback(text); ok {
				d.Pages = Some(n)
				e.log.Debugf("Pages found (fallback): %d\n", n)
			}
		}
	}

	d.Price = e.price(acc)
	d.Format = e.format(acc)
	d.Reviews = e.reviews(acc)

	return d
}

func (e *Extractor) scanLine(t locale.Translations, line string, d *ProductDetails) {
	if t.Matches(locale.BestSellersRank, line) {
		if rank, ok := BestSellerRank(line); ok {
			d.BestSellerRank = Some(rank)
			e.log.Debugf("Best Sellers Rank found: %s\n", rank)
		} else {
			e.log.Debugf("No rank extracted from best sellers line\n")
		}
	}

	if t.Matches(locale.Publisher, line) {
		pub, date := PublisherInfo(line)
		if pub.Present() {
			d.Publisher = pub
			d.PublishDate = date
		}
		e.log.Debugf("Publisher: %s, publication date: %s\n", pub, date)
	}

	if t.Matches(locale.Dimensions, line) {
		if dims, ok := DimensionsFrom(line); ok {
			d.Dimensions = Some(dims)
			e.log.Debugf("Dimensions found: %s\n", dims)
		}
	}

	if t.Matches(locale.Pages, line) {
		if n, ok := PagesFrom(line); ok {
			d.Pages = Some(n)
			e.log.Debugf("Pages found: %d\n", n)
		}
	}
}

func (e *Extractor) price(acc page.Accessor) Optional[float64] {
	text, ok := acc.FindText(PriceSelector)
	if !ok {
		return None[float64]()
	}

	v, ok := ParsePrice(text)
	if !ok {
		e.log.Debugf("Could not parse price from %q\n", text)
		return None[float64]()
	}
	e.log.Debugf("Price: %.2f\n", v)

	return Some(v)
}

func (e *Extractor) format(acc page.Accessor) Optional[string] {
	text, ok := acc.FindText(FormatSelector)
	if !ok {
		return None[string]()
	}

	return nonEmpty(text)
}

func (e *Extractor) reviews(acc page.Accessor) Optional[Reviews] {
	count, okCount := acc.FindText(ReviewCountSelector)
	rating, okRating := acc.FindText(StarRatingSelector)
	if !okCount || !okRating {
		e.log.Debugf("Reviews or rating element not found\n")
		return None[Reviews]()
	}

	r, ok := ParseReviews(count, rating)
	if !ok {
		e.log.Debugf("Failed to parse reviews (%q) or rating (%q)\n", count, rating)
		return None[Reviews]()
	}

	return Some(r)
}
