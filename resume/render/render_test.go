package render

import (
	"reflect"
	"strings"
	"testing"

	"curriculum-backend/resume/model"
	"curriculum-backend/resume/viewmodel"
)

func sampleResume() *viewmodel.Resume {
	doc := model.New("CV", "")
	doc.PersonalDetails = model.PersonalDetails{FullName: "Ada Lovelace", Designation: "Engineer", Email: "ada@example.com", Phone: "+44 1", Location: "London"}
	doc.Summary = "Writes programs."
	doc.Socials.LinkedIn = "https://linkedin.com/in/ada"
	doc.Socials.GitHub = "https://github.com/ada"
	doc.Skills = []string{"Go", "SQL"}
	doc.Languages = []model.Language{{Name: "English", Level: "native"}}
	doc.Experiences = []model.Experience{{Position: "Eng", Organization: "Acme", StartDate: "2020-01", IsCurrent: true, Description: "Built things\nShipped things"}}
	doc.Education = []model.Education{{Institution: "UCL", Degree: "BSc", StartDate: "2014-09", EndDate: "2017-06", Grade: "First"}}
	doc.Projects = []model.Project{{Name: "cv", Description: "Résumé builder", TechStack: model.TechText("Go, Postgres"), LiveLink: "https://cv.dev"}}
	doc.Certifications = []model.Certification{{Title: "CKA", Issuer: "CNCF", IssuedDate: "2022-05"}}
	return viewmodel.Project(doc)
}

func TestBackendsProduceSameText(t *testing.T) {
	vm := sampleResume()
	for _, tpl := range Templates() {
		pdfTexts := tpl.PDFTree(vm).Texts()
		htmlTexts := HTMLTexts(tpl.HTMLTree(vm, HTMLOptions{}))
		if !reflect.DeepEqual(pdfTexts, htmlTexts) {
			t.Fatalf("%s: text mismatch\npdf:  %q\nhtml: %q", tpl.ID, pdfTexts, htmlTexts)
		}
	}
}

// sectionMarkers names the text that only appears when a section is rendered.
// Classic has no summary heading, so the summary body stands in for it.
var sectionMarkers = map[string]map[string]string{
	model.TemplateClassic: {
		"summary": "Writes programs.", "languages": "Languages", "skills": "Skills", "experience": "Professional Experience",
		"education": "Education", "projects": "Projects", "certifications": "Certifications",
	},
	model.TemplateModern: {
		"summary": "Summary", "languages": "Languages", "skills": "Skills", "experience": "Experience",
		"education": "Education", "projects": "Projects", "certifications": "Certifications",
	},
	model.TemplateProfessional: {
		"summary": "Professional Summary", "languages": "Languages", "skills": "Core Qualifications", "experience": "Experience",
		"education": "Education", "projects": "Projects", "certifications": "Additional Info",
	},
}

func TestSectionPresenceFollowsData(t *testing.T) {
	cases := []struct {
		section string
		fill    func(doc *model.Document)
	}{
		{"none", func(doc *model.Document) {}},
		{"summary", func(doc *model.Document) { doc.Summary = "Writes programs." }},
		{"languages", func(doc *model.Document) { doc.Languages = []model.Language{{Name: "English", Level: "native"}} }},
		{"skills", func(doc *model.Document) { doc.Skills = []string{"Go"} }},
		{"experience", func(doc *model.Document) {
			doc.Experiences = []model.Experience{{Position: "Eng", Organization: "Acme", StartDate: "2020-01", IsCurrent: true}}
		}},
		{"education", func(doc *model.Document) {
			doc.Education = []model.Education{{Institution: "UCL", Degree: "BSc", EndDate: "2017-06"}}
		}},
		{"projects", func(doc *model.Document) { doc.Projects = []model.Project{{Name: "cv", Description: "Résumé builder"}} }},
		{"certifications", func(doc *model.Document) {
			doc.Certifications = []model.Certification{{Title: "CKA", Issuer: "CNCF", IssuedDate: "2022-05"}}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.section, func(t *testing.T) {
			doc := model.New("", "")
			tc.fill(doc)
			vm := viewmodel.Project(doc)
			for _, tpl := range Templates() {
				pdfTexts := tpl.PDFTree(vm).Texts()
				htmlTexts := HTMLTexts(tpl.HTMLTree(vm, HTMLOptions{ContainerWidth: 400}))
				if !reflect.DeepEqual(pdfTexts, htmlTexts) {
					t.Fatalf("%s: text mismatch\npdf:  %q\nhtml: %q", tpl.ID, pdfTexts, htmlTexts)
				}
				for key, marker := range sectionMarkers[tpl.ID] {
					want := key == tc.section
					if got := contains(pdfTexts, marker); got != want {
						t.Fatalf("%s pdf %s present=%v, want %v", tpl.ID, marker, got, want)
					}
					if got := contains(htmlTexts, marker); got != want {
						t.Fatalf("%s html %s present=%v, want %v", tpl.ID, marker, got, want)
					}
				}
			}
		})
	}
}

func TestCurrentRoleReadsPresentInEveryTemplate(t *testing.T) {
	cases := []struct {
		name  string
		start string
		want  string
	}{
		{"with start", "2020-01", "Jan 2020 – Present"},
		{"without start", "", "Present"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := model.New("", "")
			doc.Experiences = []model.Experience{{Position: "Eng", Organization: "Acme", StartDate: tc.start, IsCurrent: true}}
			vm := viewmodel.Project(doc)
			for _, tpl := range Templates() {
				texts := tpl.PDFTree(vm).Texts()
				if !containsSubstring(texts, tc.want) {
					t.Fatalf("%s: %q not rendered in %q", tpl.ID, tc.want, texts)
				}
				if containsSubstring(texts, "Current") {
					t.Fatalf("%s: unexpected Current label in %q", tpl.ID, texts)
				}
			}
		})
	}
}

func TestDescriptionSplitsIntoBullets(t *testing.T) {
	texts := Resolve(model.TemplateClassic).PDFTree(sampleResume()).Texts()
	if !contains(texts, "Built things") || !contains(texts, "Shipped things") {
		t.Fatalf("bullets missing: %q", texts)
	}
	if !contains(texts, "Jan 2020 – Present") {
		t.Fatalf("date range missing: %q", texts)
	}
}

func TestResolveFallsBackToClassic(t *testing.T) {
	if Resolve("nonexistent").ID != model.TemplateClassic {
		t.Fatalf("fallback should be classic")
	}
	if _, ok := Lookup("nonexistent"); ok {
		t.Fatalf("lookup should fail")
	}
	ids := make([]string, 0, 3)
	for _, tpl := range Templates() {
		ids = append(ids, tpl.ID)
	}
	if !reflect.DeepEqual(ids, model.Templates) {
		t.Fatalf("templates = %v", ids)
	}
}

func TestHTMLScalesToContainer(t *testing.T) {
	vm := sampleResume()
	scaled, err := RenderHTML(model.TemplateModern, vm, HTMLOptions{ContainerWidth: 397})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(scaled, "transform:scale(0.5)") {
		t.Fatalf("expected scale 0.5 in %s", scaled[:200])
	}
	natural, err := RenderHTML(model.TemplateModern, vm, HTMLOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(natural, "width:210mm") || strings.Contains(natural, "transform:scale") {
		t.Fatalf("natural render should use 210mm width")
	}
	if !strings.HasPrefix(natural, "<!DOCTYPE html>") {
		t.Fatalf("missing doctype")
	}
	if !strings.Contains(natural, "Ada Lovelace") {
		t.Fatalf("name missing")
	}
}

func TestHTMLEscapesContent(t *testing.T) {
	vm := sampleResume()
	vm.ProfileInfo.Summary = `<script>alert("x")</script>`
	out, err := RenderHTML(model.TemplateClassic, vm, HTMLOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("summary was not escaped")
	}
}

func TestThemeDerivesShades(t *testing.T) {
	th := NewTheme("#ABC")
	if th.Accent != "#aabbcc" || th.TagFill != "#aabbcc20" || th.Muted != "#aabbccaa" {
		t.Fatalf("theme = %+v", th)
	}
	if NewTheme("red").Accent != model.DefaultAccentColor {
		t.Fatalf("invalid accent should fall back")
	}
}

func TestFormatYearMonth(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"Present":    "Present",
		"2021-03":    "Mar 2021",
		"2021-03-15": "Mar 2021",
		"last year":  "last year",
	}
	for in, want := range tests {
		if got := FormatYearMonth(in); got != want {
			t.Fatalf("FormatYearMonth(%q) = %q, want %q", in, got, want)
		}
	}
	if got := DateRange("", "2020-01", " – "); got != "Jan 2020" {
		t.Fatalf("DateRange = %q", got)
	}
	if got := FormatYear("2017-06"); got != "2017" {
		t.Fatalf("FormatYear = %q", got)
	}
}

func containsSubstring(list []string, s string) bool {
	for _, v := range list {
		if strings.Contains(v, s) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
