// Package render draws a résumé view model with one of the registered templates. Each template
// is a single generic layout function written against Factory; the HTML preview and the PDF
// primitive tree are two Factory implementations of the same layout.
package render

import (
	"golang.org/x/net/html"

	"curriculum-backend/resume/model"
	"curriculum-backend/resume/viewmodel"
)

// Factory builds nodes of one output back-end.
type Factory[N any] interface {
	// Page is the A4 root.
	Page(s Style, children ...N) N
	// View is a styled container.
	View(s Style, children ...N) N
	Text(s Style, text string) N
	Link(s Style, href, text string) N
}

// Layout draws vm with the factory f.
type Layout[N any] func(f Factory[N], vm *viewmodel.Resume, th Theme) N

// Template is a registered layout instantiated for both back-ends.
type Template struct {
	ID          string
	Name        string
	Description string

	html Layout[*html.Node]
	pdf  Layout[*PDFNode]
}

func newTemplate(id, name, desc string, h Layout[*html.Node], p Layout[*PDFNode]) Template {
	return Template{ID: id, Name: name, Description: desc, html: h, pdf: p}
}

var registry = []Template{
	newTemplate(model.TemplateClassic, "Classic", "Header with a contact sidebar and a main column",
		classic[*html.Node], classic[*PDFNode]),
	newTemplate(model.TemplateModern, "Modern", "Centered header, single column",
		modern[*html.Node], modern[*PDFNode]),
	newTemplate(model.TemplateProfessional, "Professional", "Accent bar with a photo sidebar",
		professional[*html.Node], professional[*PDFNode]),
}

// Templates returns the registered templates in catalog order.
func Templates() []Template {
	return append([]Template(nil), registry...)
}

// Lookup finds a template by id.
func Lookup(id string) (Template, bool) {
	for _, t := range registry {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Resolve is Lookup with a fallback to the default template.
func Resolve(id string) Template {
	if t, ok := Lookup(id); ok {
		return t
	}
	t, _ := Lookup(model.DefaultTemplate)
	return t
}

// PDFTree draws vm as a PDF primitive tree.
func (t Template) PDFTree(vm *viewmodel.Resume) *PDFNode {
	vm = orEmpty(vm)
	return t.pdf(pdfFactory{}, vm, NewTheme(vm.AccentColor))
}

// HTMLTree draws vm as a detached HTML element tree rooted at the page.
func (t Template) HTMLTree(vm *viewmodel.Resume, opts HTMLOptions) *html.Node {
	vm = orEmpty(vm)
	return t.html(htmlFactory{opts: opts}, vm, NewTheme(vm.AccentColor))
}

func orEmpty(vm *viewmodel.Resume) *viewmodel.Resume {
	if vm == nil {
		return viewmodel.Project(nil)
	}
	return vm
}
