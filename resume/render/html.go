package render

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"curriculum-backend/resume/viewmodel"
)

// A4PixelWidth is the intrinsic CSS pixel width of an A4 page at 96 dpi.
const A4PixelWidth = 794.0

const pageFont = "Helvetica,Arial,sans-serif"

// HTMLOptions controls the preview page.
type HTMLOptions struct {
	// ContainerWidth scales the page to fit a container of this many CSS pixels. Zero renders
	// the page at its natural 210mm width.
	ContainerWidth float64
	Title          string
}

// Scale is the factor applied to the page for the container width.
func (o HTMLOptions) Scale() float64 {
	if o.ContainerWidth <= 0 {
		return 1
	}
	return o.ContainerWidth / A4PixelWidth
}

type htmlFactory struct {
	opts HTMLOptions
}

func (h htmlFactory) Page(s Style, children ...*html.Node) *html.Node {
	css := s.CSS() + ";background-color:#ffffff;box-sizing:border-box;font-family:" + pageFont
	if h.opts.ContainerWidth > 0 {
		css += fmt.Sprintf(";width:%spx;min-height:297mm;transform:scale(%s);transform-origin:top left",
			num(A4PixelWidth), num(h.opts.Scale()))
	} else {
		css += ";width:210mm;min-height:297mm"
	}
	return element(atom.Div, []html.Attribute{{Key: "class", Val: "resume-page"}, {Key: "style", Val: css}}, children...)
}

func (h htmlFactory) View(s Style, children ...*html.Node) *html.Node {
	return element(atom.Div, styleAttr(s), children...)
}

func (h htmlFactory) Text(s Style, text string) *html.Node {
	return element(atom.Div, styleAttr(s), &html.Node{Type: html.TextNode, Data: text})
}

func (h htmlFactory) Link(s Style, href, text string) *html.Node {
	css := s.CSS()
	if css != "" {
		css += ";"
	}
	css += "text-decoration:none;display:block"
	attrs := []html.Attribute{{Key: "href", Val: href}, {Key: "style", Val: css}}
	return element(atom.A, attrs, &html.Node{Type: html.TextNode, Data: text})
}

func styleAttr(s Style) []html.Attribute {
	css := s.CSS()
	if css == "" {
		return nil
	}
	return []html.Attribute{{Key: "style", Val: css}}
}

func element(a atom.Atom, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

// HTML renders vm as a standalone HTML document.
func (t Template) HTML(vm *viewmodel.Resume, opts HTMLOptions) (string, error) {
	page := t.HTMLTree(vm, opts)
	title := opts.Title
	if title == "" {
		title = orEmpty(vm).ProfileInfo.FullName
	}

	head := element(atom.Head, nil,
		element(atom.Meta, []html.Attribute{{Key: "charset", Val: "utf-8"}}),
		element(atom.Title, nil, &html.Node{Type: html.TextNode, Data: title}),
		element(atom.Style, nil, &html.Node{Type: html.TextNode, Data: "body{margin:0;background:#f3f4f6}a{color:inherit}"}),
	)
	body := element(atom.Body, nil, page)
	root := element(atom.Html, []html.Attribute{{Key: "lang", Val: "en"}}, head, body)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("render %s preview: %w", t.ID, err)
	}
	return buf.String(), nil
}

// RenderHTML renders the preview for templateID, falling back to the default template.
func RenderHTML(templateID string, vm *viewmodel.Resume, opts HTMLOptions) (string, error) {
	return Resolve(templateID).HTML(vm, opts)
}
