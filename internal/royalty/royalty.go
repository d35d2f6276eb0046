// Package royalty estimates the paperback royalty of the print-on-demand
// program: a flat print cost up to a page threshold, a per-page cost above it,
// and a fixed revenue share of the list price.
package royalty

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/brogergvhs/magnify/internal/extract"
)

const (
	DefaultRate          = 0.6
	DefaultPageThreshold = 108
)

var (
	ErrUnsupportedMarketplace = errors.New("unsupported marketplace")
	ErrInvalidInput           = errors.New("invalid input: pages and price must be positive numbers")
	ErrNotEligible            = errors.New("not an independently published paperback")
)

// Result is a royalty breakdown. Money values are rounded to 2 decimals.
type Result struct {
	Royalty      float64 `json:"royalty"`
	Currency     string  `json:"currency"`
	PrintingCost float64 `json:"printing_cost"`
	MinListPrice float64 `json:"min_list_price"`
	BelowMinimum bool    `json:"below_minimum"`
}

// FormatRoyalty renders the royalty with 2 decimals, or "0" when the price is
// below the minimum list price.
func (r Result) FormatRoyalty() string {
	if r.BelowMinimum {
		return "0"
	}
	return toFixed2(r.Royalty)
}

func (r Result) FormatPrintingCost() string { return toFixed2(r.PrintingCost) }
func (r Result) FormatMinListPrice() string { return toFixed2(r.MinListPrice) }

type Calculator struct {
	Costs         CostTable
	Rate          float64
	PageThreshold int
}

// NewCalculator returns a calculator over the built-in cost schedule.
func NewCalculator() *Calculator {
	return &Calculator{
		Costs:         DefaultCosts(),
		Rate:          DefaultRate,
		PageThreshold: DefaultPageThreshold,
	}
}

// Calculate returns the royalty breakdown for a paperback of the given page
// count sold at price on marketplace. Unknown marketplaces and non-positive
// inputs are reported as errors; a price under the minimum list price is not
// an error and yields a zero royalty.
func (c *Calculator) Calculate(pages int, price float64, marketplace string) (Result, error) {
	cost, ok := c.Costs.Lookup(marketplace)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedMarketplace, marketplace)
	}

	if pages <= 0 || !(price > 0) || math.IsInf(price, 0) {
		return Result{}, ErrInvalidInput
	}

	printing := cost.FixedCost
	if pages > c.PageThreshold {
		printing = cost.FixedCost + float64(pages)*cost.PerPageCost
	}

	minList := printing / c.Rate

	res := Result{
		Currency:     cost.Currency,
		PrintingCost: round2(printing),
		MinListPrice: round2(minList),
	}

	if price < minList {
		res.BelowMinimum = true
		return res, nil
	}

	res.Royalty = round2(price*c.Rate - printing)

	return res, nil
}

var eligibleFormats = []string{"paperback", "flessibile", "broché", "tapa blanda"}

const independentPublisher = "independently published"

// Eligible reports whether a product qualifies for the royalty estimate: an
// independently published paperback with a known price and page count.
func Eligible(d extract.ProductDetails) bool {
	if !d.Price.Present() || !d.Pages.Present() {
		return false
	}

	format, _ := d.Format.Get()
	format = strings.ToLower(format)
	paperback := false
	for _, f := range eligibleFormats {
		if strings.Contains(format, f) {
			paperback = true
			break
		}
	}

	publisher, _ := d.Publisher.Get()

	return paperback && strings.ToLower(publisher) == independentPublisher
}

// Estimate calculates the royalty for extracted product details, or returns
// ErrNotEligible when the product does not qualify.
func (c *Calculator) Estimate(d extract.ProductDetails, marketplace string) (Result, error) {
	if !Eligible(d) {
		return Result{}, ErrNotEligible
	}

	pages, _ := d.Pages.Get()
	price, _ := d.Price.Get()

	return c.Calculate(pages, price, marketplace)
}

func round2(v float64) float64 {
	f, err := strconv.ParseFloat(toFixed2(v), 64)
	if err != nil {
		return v
	}
	if f == 0 {
		// drop the sign of -0.00
		return 0
	}
	return f
}

var (
	hundred = big.NewRat(100, 1)
	half    = big.NewRat(1, 2)
)

// toFixed2 renders v with two decimals, rounding the exact binary value to
// the nearest cent and ties away from zero (4.625 -> "4.63").
func toFixed2(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}

	r := new(big.Rat).SetFloat64(math.Abs(v))
	r.Mul(r, hundred)
	r.Add(r, half)
	cents := new(big.Int).Quo(r.Num(), r.Denom())

	digits := cents.String()
	for len(digits) < 3 {
		digits = "0" + digits
	}
	out := digits[:len(digits)-2] + "." + digits[len(digits)-2:]

	if v < 0 && cents.Sign() != 0 {
		return "-" + out
	}
	return out
}
