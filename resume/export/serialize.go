package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const creator = "curriculum-backend"

// fpdfMeasurer measures with the same core font metrics the document is written with.
type fpdfMeasurer struct {
	doc       *fpdf.Fpdf
	translate func(string) string
}

func newDocument(title string) (*fpdf.Fpdf, *fpdfMeasurer) {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle(title, true)
	doc.SetCreator(creator, true)
	doc.SetFont(fontFamily, "", 10)
	return doc, &fpdfMeasurer{doc: doc, translate: doc.UnicodeTranslatorFromDescriptor("")}
}

func (m *fpdfMeasurer) Width(text string, f font) float64 {
	if text == "" {
		return 0
	}
	m.doc.SetFont(fontFamily, f.style, f.size)
	return m.doc.GetStringWidth(text)
}

func (m *fpdfMeasurer) Translate(s string) string {
	return m.translate(s)
}

// serialize draws every page and returns the encoded document.
func serialize(doc *fpdf.Fpdf, pages [][]op) ([]byte, error) {
	for _, ops := range pages {
		doc.AddPage()
		for _, o := range ops {
			draw(doc, o)
		}
	}
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("draw pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("encode pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func draw(doc *fpdf.Fpdf, o op) {
	switch o.kind {
	case opRect:
		doc.SetFillColor(o.color.r, o.color.g, o.color.b)
		doc.Rect(o.x, o.y, o.w, o.h, "F")
	case opLine:
		doc.SetDrawColor(o.color.r, o.color.g, o.color.b)
		doc.SetLineWidth(o.stroke)
		doc.Line(o.x, o.y, o.x2, o.y2)
	case opText:
		doc.SetFont(fontFamily, o.font.style, o.font.size)
		doc.SetTextColor(o.color.r, o.color.g, o.color.b)
		baseline := o.y + (o.h-o.font.size)/2 + o.font.size*0.8
		doc.Text(o.x, baseline, o.text)
	case opLink:
		doc.LinkString(o.x, o.y, o.w, o.h, o.href)
	}
}
