package panel

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// RenderPDF writes the panel as a one-page A4 document.
func RenderPDF(w io.Writer, p Panel) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(p.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(p.Title), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, c := range p.Cards {
		label := c.Label
		if c.Currency != "" {
			label = fmt.Sprintf("%s (%s)", label, c.Currency)
		}

		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, tr(label), "B", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 11)
		for _, line := range c.Lines {
			pdf.MultiCell(0, 5, tr(line), "", "L", false)
		}
		pdf.Ln(3)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
