package panel

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// RenderText writes the panel as an aligned two-column listing.
func RenderText(w io.Writer, p Panel) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(tw, p.Title)
	_, _ = fmt.Fprintln(tw, strings.Repeat("=", len(p.Title)))

	for _, c := range p.Cards {
		label := c.Label
		if c.Currency != "" {
			label = fmt.Sprintf("%s (%s)", label, CurrencySymbol(c.Currency))
		}
		for i, line := range c.Lines {
			if i > 0 {
				label = ""
			}
			_, _ = fmt.Fprintf(tw, "%s\t%s\n", label, line)
		}
	}

	return tw.Flush()
}

// RenderJSON writes the panel, including the raw details, as indented JSON.
func RenderJSON(w io.Writer, p Panel) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(p)
}
