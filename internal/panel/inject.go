package panel

import (
	"github.com/PuerkitoBio/goquery"
)

// Anchors are tried in order when placing the panel or the placeholder.
var Anchors = []string{"#dp-container", "#ppd"}

// Placement says where Inject put the panel.
type Placement string

const (
	ReplacedPlaceholder Placement = "placeholder"
	BeforeContainer     Placement = "container"
	BodyStart           Placement = "body"
)

func anchor(doc *goquery.Document) *goquery.Selection {
	for _, sel := range Anchors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return nil
}

// Inject inserts markup into doc. A loading placeholder is replaced when
// present; otherwise the markup goes before the product container, or at the
// start of body when the page has no container.
func Inject(doc *goquery.Document, markup string) Placement {
	if ph := doc.Find("#" + PlaceholderID).First(); ph.Length() > 0 {
		ph.ReplaceWithHtml(markup)
		return ReplacedPlaceholder
	}

	if a := anchor(doc); a != nil {
		a.BeforeHtml(markup)
		return BeforeContainer
	}

	doc.Find("body").First().PrependHtml(markup)
	return BodyStart
}

// InsertPlaceholder puts the loading indicator before the product container.
// It reports false when the page has no container yet.
func InsertPlaceholder(doc *goquery.Document) bool {
	if doc.Find("#"+PlaceholderID).Length() > 0 {
		return true
	}

	a := anchor(doc)
	if a == nil {
		return false
	}

	a.BeforeHtml(PlaceholderHTML())
	return true
}
