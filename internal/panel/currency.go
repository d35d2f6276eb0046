package panel

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol returns the narrow display symbol of an ISO 4217 code, such
// as "€" for EUR. Unknown codes are returned unchanged.
func CurrencySymbol(code string) string {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return code
	}

	sym := message.NewPrinter(language.English).Sprint(currency.NarrowSymbol(unit))
	if sym == "" {
		return unit.String()
	}
	return sym
}
