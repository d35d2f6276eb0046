package panel

import (
	"bytes"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	ContainerID   = "lsp-amazon-tools"
	PlaceholderID = "product-info-loading"
)

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func appendAll(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}

// Node builds the panel as a detached DOM subtree rooted at #lsp-amazon-tools.
func (p Panel) Node() *html.Node {
	root := element(atom.Div, "id", ContainerID)

	header := element(atom.Div, "class", "lsp-header")
	if p.logoURL != "" {
		header.AppendChild(element(atom.Img, "src", p.logoURL, "alt", "LSP Logo", "class", "lsp-logo"))
	}

	title := appendAll(element(atom.Div, "class", "boxtitle"),
		appendAll(element(atom.Div, "class", "tit"), textNode("Product")),
		appendAll(element(atom.Span, "class", "lsp-title-highlight"),
			appendAll(element(atom.Span, "class", "lsp-title-highlight-text"), textNode("Magnify")),
		),
	)
	header.AppendChild(appendAll(element(atom.Blockquote, "class", "lsp-title"), title))
	root.AppendChild(header)

	grid := element(atom.Div, "class", "product-info-grid")
	for _, c := range p.Cards {
		grid.AppendChild(cardNode(c))
	}
	root.AppendChild(grid)

	return root
}

func cardNode(c Card) *html.Node {
	box := element(atom.Div, "class", "product-info-card")
	box.AppendChild(appendAll(element(atom.H3), textNode(c.Label)))

	// the rank card uses a div body
	body := atom.P
	if c.Label == LabelBSR {
		body = atom.Div
	}
	for _, line := range c.Lines {
		box.AppendChild(appendAll(element(body), textNode(line)))
	}

	return box
}

// RenderHTML returns the panel markup.
func RenderHTML(p Panel) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, p.Node()); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PlaceholderHTML is the loading indicator shown while the page settles.
func PlaceholderHTML() string {
	root := element(atom.Div, "id", PlaceholderID)
	bar := element(atom.Div, "class", "loading-bar")
	bar.AppendChild(element(atom.Div, "class", "loading-progress"))
	root.AppendChild(bar)
	root.AppendChild(appendAll(element(atom.P), textNode("Extracting product information...")))

	var buf bytes.Buffer
	_ = html.Render(&buf, root)
	return buf.String()
}
