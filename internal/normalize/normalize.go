// Package normalize cleans the loosely structured text pulled out of product
// detail pages before it is shown or matched against.
package normalize

import (
	"regexp"
	"strings"
)

var (
	reTags        = regexp.MustCompile(`<[^>]*>`)
	reNonWord     = regexp.MustCompile(`[^\w\s\p{Zs}\x{FEFF}-]`)
	reNonDimChars = regexp.MustCompile(`[^0-9.,x×\s\p{Zs}\p{L}]`)
	reDigitLetter = regexp.MustCompile(`(\d)([a-zA-Z])`)
)

// CleanText strips markup and everything that is not a word character,
// whitespace or a hyphen. Used for publisher names and dates.
func CleanText(s string) string {
	s = reTags.ReplaceAllString(s, "")
	s = reNonWord.ReplaceAllString(s, "")

	return strings.TrimSpace(s)
}

// CleanDimensions keeps numbers, separators, the "x" multiplier and unit
// letters, and makes sure units are separated from their value ("20cm" -> "20 cm").
func CleanDimensions(s string) string {
	s = reTags.ReplaceAllString(s, "")
	s = reNonDimChars.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	return reDigitLetter.ReplaceAllString(s, "${1} ${2}")
}

// CollapseSpace turns every whitespace run into a single space and trims.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
