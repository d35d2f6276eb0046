package royalty

import (
	"sort"
	"strings"
)

// Cost is the print-cost schedule of one marketplace.
type Cost struct {
	FixedCost   float64 `yaml:"fixed_cost" json:"fixed_cost"`
	PerPageCost float64 `yaml:"per_page_cost" json:"per_page_cost"`
	Currency    string  `yaml:"currency" json:"currency"`
}

// CostTable maps a marketplace code such as "en-us" to its print costs.
type CostTable map[string]Cost

var defaultCosts = CostTable{
	"en-us": {FixedCost: 1.00, PerPageCost: 0.012, Currency: "USD"},
	"en-uk": {FixedCost: 0.85, PerPageCost: 0.010, Currency: "GBP"},
	"de-de": {FixedCost: 0.75, PerPageCost: 0.012, Currency: "EUR"},
	"ca-ca": {FixedCost: 1.26, PerPageCost: 0.016, Currency: "CAD"},
	"fr-fr": {FixedCost: 0.75, PerPageCost: 0.012, Currency: "EUR"},
	"es-es": {FixedCost: 0.75, PerPageCost: 0.012, Currency: "EUR"},
	"it-it": {FixedCost: 0.75, PerPageCost: 0.012, Currency: "EUR"},
	"jp-jp": {FixedCost: 206, PerPageCost: 2, Currency: "JPY"},
}

// marketplaceAlias maps page language tags that name the same storefront
// under a different code back to the cost table key.
var marketplaceAlias = map[string]string{
	"en-gb": "en-uk",
	"ja-jp": "jp-jp",
	"en-ca": "ca-ca",
	"fr-ca": "ca-ca",
}

// DefaultCosts returns a copy of the built-in cost table.
func DefaultCosts() CostTable {
	out := make(CostTable, len(defaultCosts))
	for k, v := range defaultCosts {
		out[k] = v
	}
	return out
}

// NormalizeCode lower-cases a marketplace code and resolves known aliases.
func NormalizeCode(code string) string {
	normalized := strings.ToLower(strings.TrimSpace(code))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	if canonical, ok := marketplaceAlias[normalized]; ok {
		return canonical
	}
	return normalized
}

// Lookup returns the costs for code after normalisation.
func (t CostTable) Lookup(code string) (Cost, bool) {
	c, ok := t[NormalizeCode(code)]
	return c, ok
}

// Merge returns a copy of t with the entries of override added or replaced.
func (t CostTable) Merge(override CostTable) CostTable {
	out := make(CostTable, len(t)+len(override))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range override {
		out[NormalizeCode(k)] = v
	}
	return out
}

// Codes returns the marketplace codes in t, sorted.
func (t CostTable) Codes() []string {
	codes := make([]string, 0, len(t))
	for code := range t {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
