package render

import "golang.org/x/net/html"

// NodeKind is the kind of a PDF primitive.
type NodeKind int

const (
	KindPage NodeKind = iota
	KindView
	KindText
	KindLink
)

func (k NodeKind) String() string {
	switch k {
	case KindPage:
		return "page"
	case KindView:
		return "view"
	case KindText:
		return "text"
	case KindLink:
		return "link"
	default:
		return "unknown"
	}
}

// A4 page size in points.
const (
	A4Width  = 595.28
	A4Height = 841.89
)

// PDFNode is one primitive of the export tree. Text and links are leaves.
type PDFNode struct {
	Kind     NodeKind
	Style    Style
	Text     string
	Href     string
	Children []*PDFNode
}

type pdfFactory struct{}

func (pdfFactory) Page(s Style, children ...*PDFNode) *PDFNode {
	return &PDFNode{Kind: KindPage, Style: s, Children: compact(children)}
}

func (pdfFactory) View(s Style, children ...*PDFNode) *PDFNode {
	return &PDFNode{Kind: KindView, Style: s, Children: compact(children)}
}

func (pdfFactory) Text(s Style, text string) *PDFNode {
	return &PDFNode{Kind: KindText, Style: s, Text: text}
}

func (pdfFactory) Link(s Style, href, text string) *PDFNode {
	return &PDFNode{Kind: KindLink, Style: s, Href: href, Text: text}
}

func compact(ns []*PDFNode) []*PDFNode {
	out := make([]*PDFNode, 0, len(ns))
	for _, n := range ns {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Walk visits n and its descendants depth first.
func (n *PDFNode) Walk(fn func(*PDFNode)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Texts returns the text of every leaf in document order.
func (n *PDFNode) Texts() []string {
	var out []string
	n.Walk(func(c *PDFNode) {
		if c.Kind == KindText || c.Kind == KindLink {
			out = append(out, c.Text)
		}
	})
	return out
}

// HTMLTexts returns the text nodes under n in document order.
func HTMLTexts(n *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			out = append(out, c.Data)
		}
		for k := c.FirstChild; k != nil; k = k.NextSibling {
			walk(k)
		}
	}
	if n != nil {
		walk(n)
	}
	return out
}
