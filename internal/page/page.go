// Package page exposes a read-only view over a product detail page so the
// extractors can work on a parsed snapshot instead of a live document.
package page

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Accessor is the document capability the extractors depend on.
type Accessor interface {
	// FindText returns the trimmed text of the first element matching selector.
	FindText(selector string) (string, bool)
	// FindAll returns the text of every element matching selector, in document order.
	FindAll(selector string) []string
	// FindAttr returns an attribute of the first element matching selector.
	FindAttr(selector, attr string) (string, bool)
	// Exists reports whether any element matches selector.
	Exists(selector string) bool
}

// Document is an Accessor backed by a goquery document.
type Document struct {
	doc *goquery.Document
}

var _ Accessor = (*Document)(nil)

func FromReader(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	return &Document{doc: doc}, nil
}

func FromString(s string) (*Document, error) {
	return FromReader(strings.NewReader(s))
}

func FromFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	return FromReader(f)
}

// Goquery returns the underlying document, for callers that modify the page.
func (d *Document) Goquery() *goquery.Document {
	return d.doc
}

func (d *Document) FindText(selector string) (string, bool) {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}

	return strings.TrimSpace(sel.Text()), true
}

func (d *Document) FindAll(selector string) []string {
	var out []string
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Text())
	})

	return out
}

func (d *Document) FindAttr(selector, attr string) (string, bool) {
	return d.doc.Find(selector).First().Attr(attr)
}

func (d *Document) Exists(selector string) bool {
	return d.doc.Find(selector).Length() > 0
}

// HTML renders the (possibly modified) document back to markup.
func (d *Document) HTML() (string, error) {
	return d.doc.Html()
}
