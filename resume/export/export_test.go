package export

import (
	"context"
	"errors"
	"strings"
	"testing"

	"curriculum-backend/resume/model"
	"curriculum-backend/resume/render"
	"curriculum-backend/resume/viewmodel"
)

type fixedMeasurer struct{}

func (fixedMeasurer) Width(text string, f font) float64 { return float64(len(text)) * f.size * 0.5 }
func (fixedMeasurer) Translate(s string) string         { return s }

func sampleView() *viewmodel.Resume {
	return &viewmodel.Resume{
		AccentColor: "#2563eb",
		ProfileInfo: viewmodel.ProfileInfo{
			FullName:    "Jordan Lee",
			Designation: "Backend Engineer",
			Summary:     "Builds APIs.",
		},
		ContactInfo: viewmodel.ContactInfo{Email: "jordan@example.com", Phone: "+1 555 0102"},
		WorkExperience: []viewmodel.WorkExperience{{
			Title:       "Engineer",
			Company:     "Acme",
			StartDate:   "2020-01",
			EndDate:     viewmodel.PresentLabel,
			IsCurrent:   true,
			Description: "Shipped billing\nCut latency",
		}},
		Skills: []viewmodel.Skill{{Name: "Go"}},
	}
}

func TestPDFUnknownTemplate(t *testing.T) {
	art, err := PDF(context.Background(), "nope", sampleView())
	if !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
	if len(art.Bytes) != 0 || art.FileName != "" {
		t.Fatalf("expected no artifact, got %+v", art)
	}
}

func TestPDFEveryTemplateReadsBack(t *testing.T) {
	for _, id := range model.Templates {
		t.Run(id, func(t *testing.T) {
			art, err := PDF(context.Background(), id, sampleView())
			if err != nil {
				t.Fatalf("export: %v", err)
			}
			if art.ContentType != ContentTypePDF {
				t.Fatalf("content type = %q", art.ContentType)
			}
			if art.FileName != "Jordan Lee.pdf" {
				t.Fatalf("file name = %q", art.FileName)
			}
			if !strings.HasPrefix(string(art.Bytes), "%PDF-") {
				t.Fatalf("missing pdf header")
			}
			if art.Pages != 1 {
				t.Fatalf("pages = %d, want 1", art.Pages)
			}
			text, err := PlainText(context.Background(), art.Bytes)
			if err != nil {
				t.Fatalf("read back: %v", err)
			}
			// Some templates draw the name and headings uppercase.
			folded := strings.ToUpper(text)
			for _, want := range []string{"Jordan Lee", "Shipped billing", "Acme"} {
				if !strings.Contains(folded, strings.ToUpper(want)) {
					t.Fatalf("expected %q in extracted text %q", want, text)
				}
			}
		})
	}
}

func TestPDFLongContentPaginates(t *testing.T) {
	vm := sampleView()
	var lines []string
	for i := 0; i < 120; i++ {
		lines = append(lines, "Delivered a measurable improvement to the platform")
	}
	vm.WorkExperience[0].Description = strings.Join(lines, "\n")

	art, err := PDF(context.Background(), model.TemplateModern, vm)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if art.Pages < 2 {
		t.Fatalf("expected several pages, got %d", art.Pages)
	}
	n, err := PageCount(art.Bytes)
	if err != nil {
		t.Fatalf("page count: %v", err)
	}
	if n != art.Pages {
		t.Fatalf("reader sees %d pages, artifact says %d", n, art.Pages)
	}
}

func TestPDFCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := PDF(ctx, model.TemplateClassic, sampleView()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPDFNonLatinTextDoesNotPanic(t *testing.T) {
	vm := sampleView()
	vm.ProfileInfo.FullName = "Zoë Łukasz 名前"
	vm.ProfileInfo.Summary = "Café “quoted” – résumé"
	if _, err := PDF(context.Background(), model.TemplateProfessional, vm); err != nil {
		t.Fatalf("export: %v", err)
	}
}

func TestFileName(t *testing.T) {
	cases := map[string]string{
		"Jordan Lee":  "Jordan Lee.pdf",
		"":            "resume.pdf",
		"   ":         "resume.pdf",
		"a/b":         "a_b.pdf",
		"../../":      "resume.pdf",
		"Ana: Dev?":   "Ana_ Dev_.pdf",
		"Zoë Martín": "Zoë Martín.pdf",
	}
	for in, want := range cases {
		if got := FileName(in); got != want {
			t.Fatalf("FileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWrap(t *testing.T) {
	e := &engine{m: fixedMeasurer{}}
	f := font{size: 10}

	lines := e.wrap("aa bb cc", f, 25)
	if len(lines) != 2 || lines[0] != "aa bb" || lines[1] != "cc" {
		t.Fatalf("unexpected lines %q", lines)
	}
	if got := e.wrap("   ", f, 100); len(got) != 0 {
		t.Fatalf("blank text should have no lines, got %q", got)
	}
	long := e.wrap("abcdefghij", f, 20)
	if len(long) != 3 || long[0] != "abcd" || long[2] != "ij" {
		t.Fatalf("long word split = %q", long)
	}
}

func TestRowGrowAndFraction(t *testing.T) {
	e := &engine{m: fixedMeasurer{}}
	row := &render.PDFNode{Kind: render.KindView, Style: render.Style{Row: true}, Children: []*render.PDFNode{
		{Kind: render.KindText, Style: render.Style{Width: 0.25}, Text: "a"},
		{Kind: render.KindText, Style: render.Style{Grow: true}, Text: "b"},
	}}
	e.node(row, 0, 0, 400, rootProps())

	var xs []float64
	for _, o := range e.ops {
		if o.kind == opText {
			xs = append(xs, o.x)
		}
	}
	if len(xs) != 2 || xs[0] != 0 || xs[1] != 100 {
		t.Fatalf("unexpected text positions %v", xs)
	}
}

func TestBackgroundDrawnBeforeContent(t *testing.T) {
	e := &engine{m: fixedMeasurer{}}
	box := &render.PDFNode{Kind: render.KindView, Style: render.Style{Background: "#ff0000", Padding: render.All(4)},
		Children: []*render.PDFNode{{Kind: render.KindText, Text: "x"}}}
	h := e.node(box, 0, 0, 100, rootProps())

	if len(e.ops) != 2 || e.ops[0].kind != opRect || e.ops[1].kind != opText {
		t.Fatalf("unexpected ops %+v", e.ops)
	}
	if want := 8 + render.BaseFontSize*render.BaseLineHeight; h < want-epsilon || h > want+epsilon {
		t.Fatalf("height = %v, want %v", h, want)
	}
}

func TestPaginateKeepsLinesWhole(t *testing.T) {
	var ops []op
	for i := 0; i < 100; i++ {
		ops = append(ops, op{kind: opText, y: float64(i) * 14, h: 14, text: "line"})
	}
	pages := paginate(ops, 40, 40)
	if len(pages) < 2 {
		t.Fatalf("expected multiple pages, got %d", len(pages))
	}
	total := 0
	for i, p := range pages {
		for _, o := range p {
			if o.y+o.h > render.A4Height-40+epsilon {
				t.Fatalf("page %d: line at %v overflows the bottom margin", i, o.y)
			}
			if i > 0 && o.y < 40-epsilon {
				t.Fatalf("page %d: line at %v is above the top margin", i, o.y)
			}
		}
		total += len(p)
	}
	if total != len(ops) {
		t.Fatalf("lost ops: %d of %d placed", total, len(ops))
	}
}

func TestPaginateSplitsBackgrounds(t *testing.T) {
	ops := []op{
		{kind: opRect, y: 0, h: 1500, w: 100},
		{kind: opText, y: 1400, h: 14, text: "tail"},
	}
	pages := paginate(ops, 30, 30)
	if len(pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(pages))
	}
	if pages[0][0].kind != opRect || pages[1][0].kind != opRect {
		t.Fatalf("background should be split across both pages")
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]rgb{
		"#2563eb":   {37, 99, 235},
		"#fff":      {255, 255, 255},
		"#00000080": {127, 127, 127},
		"bogus":     {17, 24, 39},
	}
	for in, want := range cases {
		if got := parseColor(in); got != want {
			t.Fatalf("parseColor(%q) = %v, want %v", in, got, want)
		}
	}
}
