package panel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/brogergvhs/magnify/internal/extract"
	"github.com/brogergvhs/magnify/internal/page"
	"github.com/brogergvhs/magnify/internal/royalty"
)

func fullDetails() extract.ProductDetails {
	return extract.ProductDetails{
		Language:       "en-US",
		ASIN:           extract.Some("B0TEST1234"),
		BestSellerRank: extract.Some("12,345"),
		Publisher:      extract.Some("Independently published"),
		PublishDate:    extract.Some("March 3 2021"),
		Dimensions:     extract.Some("6 x 0.25 x 9 inches"),
		Pages:          extract.Some(108),
		Reviews:        extract.Some(extract.Reviews{TotalReviews: 42, AverageRating: 4.5}),
		Price:          extract.Some(10.0),
		Format:         extract.Some("Paperback"),
	}
}

func estimateFor(t *testing.T, d extract.ProductDetails, marketplace string) Estimate {
	t.Helper()
	res, err := royalty.NewCalculator().Estimate(d, marketplace)
	return Estimate{Result: res, Err: err}
}

func labels(p Panel) []string {
	var out []string
	for _, c := range p.Cards {
		out = append(out, c.Label)
	}
	return out
}

func TestBuildCardOrder(t *testing.T) {
	d := fullDetails()
	p := Build(d, estimateFor(t, d, "en-us"), Options{})

	want := []string{LabelASIN, LabelBSR, LabelPublisher, LabelPublishDate, LabelPages, LabelReviews, LabelRoyalty}
	if got := labels(p); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("cards = %v, want %v", got, want)
	}

	c, _ := p.Card(LabelRoyalty)
	if c.Lines[0] != "Royalty: 5.00 USD" || c.Lines[1] != "Printing Cost: 1.00 USD" {
		t.Fatalf("royalty card = %v", c.Lines)
	}
	if c.Currency != "USD" {
		t.Fatalf("currency = %q", c.Currency)
	}

	rv, _ := p.Card(LabelReviews)
	if rv.Lines[0] != "Total Reviews: 42" || rv.Lines[1] != "Average Rating: 4.5" {
		t.Fatalf("reviews card = %v", rv.Lines)
	}
}

func TestBuildShowDimensions(t *testing.T) {
	d := fullDetails()
	p := Build(d, estimateFor(t, d, "en-us"), Options{ShowDimensions: true})

	c, ok := p.Card(LabelDimensions)
	if !ok || c.Lines[0] != "6 x 0.25 x 9 inches" {
		t.Fatalf("dimensions card = %v, %v", c, ok)
	}
	if got := labels(p); got[4] != LabelDimensions {
		t.Fatalf("dimensions should follow the publication date: %v", got)
	}
}

func TestBuildEmptyDetails(t *testing.T) {
	d := extract.ProductDetails{Language: "en-US"}
	p := Build(d, estimateFor(t, d, "en-us"), Options{ShowDimensions: true})

	if len(p.Cards) != 1 {
		t.Fatalf("cards = %v, want ASIN only", labels(p))
	}
	if p.Cards[0].Lines[0] != extract.NA {
		t.Fatalf("ASIN = %q, want %q", p.Cards[0].Lines[0], extract.NA)
	}
	if p.Royalty != nil || p.Error != "" {
		t.Fatalf("ineligible product should carry no royalty: %+v %q", p.Royalty, p.Error)
	}
}

func TestBuildHidesZeroReviews(t *testing.T) {
	d := fullDetails()
	d.Reviews = extract.Some(extract.Reviews{TotalReviews: 0, AverageRating: 0})
	p := Build(d, Estimate{Err: royalty.ErrNotEligible}, Options{})

	if _, ok := p.Card(LabelReviews); ok {
		t.Fatal("reviews card shown for zero reviews")
	}
}

func TestBuildRoyaltyError(t *testing.T) {
	d := fullDetails()
	p := Build(d, estimateFor(t, d, "xx-xx"), Options{})

	c, ok := p.Card(LabelRoyalty)
	if !ok {
		t.Fatal("missing royalty card")
	}
	if c.Lines[0] != "Error: unsupported marketplace: xx-xx" {
		t.Fatalf("line = %q", c.Lines[0])
	}
	if p.Royalty != nil {
		t.Fatal("error result should not carry numbers")
	}
}

func TestBuildBelowMinimum(t *testing.T) {
	d := fullDetails()
	d.Pages = extract.Some(200)
	d.Price = extract.Some(5.0)
	p := Build(d, estimateFor(t, d, "en-us"), Options{})

	c, _ := p.Card(LabelRoyalty)
	if c.Lines[0] != "Royalty: 0 USD" || c.Lines[1] != "Printing Cost: 3.40 USD" {
		t.Fatalf("royalty card = %v", c.Lines)
	}
}

func TestRenderHTML(t *testing.T) {
	d := fullDetails()
	d.Publisher = extract.Some("Independently published <b>")
	p := Build(d, Estimate{Err: royalty.ErrNotEligible}, Options{LogoURL: "logo.png"})

	out, err := RenderHTML(p)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		`<div id="lsp-amazon-tools">`,
		`<img src="logo.png" alt="LSP Logo" class="lsp-logo"/>`,
		`<div class="tit">Product</div>`,
		`<span class="lsp-title-highlight-text">Magnify</span>`,
		`<div class="product-info-card"><h3>ASIN</h3><p>B0TEST1234</p></div>`,
		`<h3>BSR</h3><div>12,345</div>`,
		`<p>Independently published &lt;b&gt;</p>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markup missing %s\n%s", want, out)
		}
	}
}

func TestRenderHTMLNoLogo(t *testing.T) {
	out, err := RenderHTML(Build(extract.ProductDetails{}, Estimate{Err: royalty.ErrNotEligible}, Options{}))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "<img") {
		t.Fatalf("unexpected logo: %s", out)
	}
}

func TestRenderText(t *testing.T) {
	d := fullDetails()
	var buf bytes.Buffer
	if err := RenderText(&buf, Build(d, estimateFor(t, d, "en-us"), Options{})); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, Title+"\n") {
		t.Fatalf("missing title:\n%s", out)
	}
	for _, want := range []string{"ASIN", "B0TEST1234", "Total Reviews: 42", "Royalty: 5.00 USD"} {
		if !strings.Contains(out, want) {
			t.Errorf("text missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, fmt.Sprintf("%s (%s)", LabelRoyalty, CurrencySymbol("USD"))) {
		t.Errorf("royalty label without currency:\n%s", out)
	}
}

func TestRenderJSON(t *testing.T) {
	d := extract.ProductDetails{Language: "en-US", ASIN: extract.Some("B0X")}
	var buf bytes.Buffer
	if err := RenderJSON(&buf, Build(d, Estimate{Err: royalty.ErrNotEligible}, Options{})); err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["title"] != Title {
		t.Fatalf("title = %v", got["title"])
	}
	details := got["details"].(map[string]any)
	if details["asin"] != "B0X" || details["pages"] != nil {
		t.Fatalf("details = %v", details)
	}
	if _, ok := got["royalty"]; ok {
		t.Fatal("royalty should be omitted")
	}
}

func TestRenderPDF(t *testing.T) {
	d := fullDetails()
	d.Publisher = extract.Some("Éditions Indépendantes")
	var buf bytes.Buffer
	if err := RenderPDF(&buf, Build(d, estimateFor(t, d, "fr-fr"), Options{})); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("not a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestCurrencySymbol(t *testing.T) {
	if got := CurrencySymbol("not-a-code"); got != "not-a-code" {
		t.Fatalf("unknown code = %q", got)
	}
	if got := CurrencySymbol("EUR"); got != "€" {
		t.Fatalf("EUR = %q", got)
	}
}

const productPage = `<html><body><div id="nav">nav</div><div id="dp-container"><span id="productTitle">Book</span></div></body></html>`

func TestInjectBeforeContainer(t *testing.T) {
	doc, err := page.FromString(productPage)
	if err != nil {
		t.Fatal(err)
	}

	markup, _ := RenderHTML(Build(extract.ProductDetails{}, Estimate{Err: royalty.ErrNotEligible}, Options{}))
	if got := Inject(doc.Goquery(), markup); got != BeforeContainer {
		t.Fatalf("placement = %s", got)
	}

	next := doc.Goquery().Find("#" + ContainerID).Next()
	if id, _ := next.Attr("id"); id != "dp-container" {
		t.Fatalf("panel followed by %q", id)
	}
}

func TestInjectReplacesPlaceholder(t *testing.T) {
	doc, err := page.FromString(productPage)
	if err != nil {
		t.Fatal(err)
	}
	if !InsertPlaceholder(doc.Goquery()) {
		t.Fatal("placeholder not inserted")
	}
	if !doc.Exists("#" + PlaceholderID) {
		t.Fatal("placeholder missing")
	}

	markup, _ := RenderHTML(Build(extract.ProductDetails{}, Estimate{Err: royalty.ErrNotEligible}, Options{}))
	if got := Inject(doc.Goquery(), markup); got != ReplacedPlaceholder {
		t.Fatalf("placement = %s", got)
	}
	if doc.Exists("#" + PlaceholderID) {
		t.Fatal("placeholder left behind")
	}
	if n := doc.Goquery().Find("#" + ContainerID).Length(); n != 1 {
		t.Fatalf("panels = %d", n)
	}
}

func TestInjectBodyStart(t *testing.T) {
	doc, err := page.FromString(`<html><body><p id="first">hi</p></body></html>`)
	if err != nil {
		t.Fatal(err)
	}
	if InsertPlaceholder(doc.Goquery()) {
		t.Fatal("placeholder needs a container")
	}

	markup, _ := RenderHTML(Build(extract.ProductDetails{}, Estimate{Err: royalty.ErrNotEligible}, Options{}))
	if got := Inject(doc.Goquery(), markup); got != BodyStart {
		t.Fatalf("placement = %s", got)
	}
	if id, _ := doc.Goquery().Find("body").Children().First().Attr("id"); id != ContainerID {
		t.Fatalf("first child = %q", id)
	}
}
