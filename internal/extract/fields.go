package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/brogergvhs/magnify/internal/normalize"
)

var (
	reRank          = regexp.MustCompile(`(?i)(?:nr?\.\s*([\d,.]+)|#([\d,.]+))`)
	rePublisher     = regexp.MustCompile(`([^(]+)\s*\(([^)]+)\)`)
	reDigits        = regexp.MustCompile(`\d+`)
	rePagesFallback = regexp.MustCompile(`(?i)(\d+)\s*(?:pages|pagine|Seiten|páginas)`)
	reNumber        = regexp.MustCompile(`\d[\d,.]*`)
	reLeadingFloat  = regexp.MustCompile(`^\d+(?:\.\d+)?`)
	reNonDigit      = regexp.MustCompile(`\D`)
)

// BestSellerRank pulls the first rank number out of a best-seller line,
// keeping its own separators ("#1,234" -> "1,234", "Nr. 5.678" -> "5.678",
// "n. 1.234" -> "1.234").
func BestSellerRank(line string) (string, bool) {
	m := reRank.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}

	return m[2], m[2] != ""
}

// PublisherInfo splits a publisher line into the publisher name and the
// parenthesised publication date. Text before the first colon is the label.
func PublisherInfo(line string) (publisher, date Optional[string]) {
	text := line
	if _, after, ok := strings.Cut(line, ":"); ok {
		text = after
	}
	text = strings.TrimSpace(text)

	rawPub, rawDate := text, ""
	if m := rePublisher.FindStringSubmatch(text); m != nil {
		rawPub = strings.TrimSpace(m[1])
		rawDate = strings.TrimSpace(m[2])
	}

	return nonEmpty(normalize.CleanText(rawPub)), nonEmpty(normalize.CleanText(rawDate))
}

// DimensionsFrom returns the cleaned value after the first colon of line.
func DimensionsFrom(line string) (string, bool) {
	_, after, ok := strings.Cut(line, ":")
	if !ok {
		return "", false
	}

	dims := normalize.CleanDimensions(strings.TrimSpace(after))

	return dims, dims != ""
}

// PagesFrom returns the first run of digits in line.
func PagesFrom(line string) (int, bool) {
	return atoi(reDigits.FindString(line))
}

// PagesFallback looks for a digit run followed by a localized "pages" word.
func PagesFallback(text string) (int, bool) {
	m := rePagesFallback.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}

	return atoi(m[1])
}

// ParsePrice reads the first number in a price display. A comma followed by
// one or two digits at the end is a decimal comma ("1.234,56", "12,99");
// otherwise dots are decimal points and commas group thousands ("1,234.56").
func ParsePrice(text string) (float64, bool) {
	raw := strings.TrimRight(reNumber.FindString(text), ",.")
	if raw == "" {
		return 0, false
	}

	var s string
	if decimalComma(raw) {
		s = strings.ReplaceAll(raw, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(raw, ",", "")
	}

	return leadingFloat(s)
}

func decimalComma(raw string) bool {
	comma := strings.LastIndex(raw, ",")
	if comma < 0 || comma < strings.LastIndex(raw, ".") {
		return false
	}

	frac := len(raw) - comma - 1

	return frac == 1 || frac == 2
}

// ParseReviews parses the review count and star rating texts. Both must
// parse or no review data is reported.
func ParseReviews(countText, ratingText string) (Reviews, bool) {
	total, ok := atoi(reNonDigit.ReplaceAllString(countText, ""))
	if !ok {
		return Reviews{}, false
	}

	fields := strings.Fields(ratingText)
	if len(fields) == 0 {
		return Reviews{}, false
	}

	rating, ok := leadingFloat(strings.Replace(fields[0], ",", ".", 1))
	if !ok {
		return Reviews{}, false
	}

	return Reviews{TotalReviews: total, AverageRating: math.Round(rating*10) / 10}, true
}

func leadingFloat(s string) (float64, bool) {
	num := reLeadingFloat.FindString(s)
	if num == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}

	return v, true
}

func atoi(s string) (int, bool) {
	if s == "" {
		return 0, false
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}

	return n, true
}

func nonEmpty(s string) Optional[string] {
	if s == "" {
		return None[string]()
	}

	return Some(s)
}
