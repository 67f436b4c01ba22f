package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"curriculum-backend/resume/export"
	"curriculum-backend/resume/model"
	"curriculum-backend/resume/render"
	"curriculum-backend/resume/viewmodel"
)

func main() {
	outDir := flag.String("out", "./out", "output directory")
	templateID := flag.String("template", "", "template to render; empty renders every template")
	width := flag.Float64("width", 0, "preview container width in CSS pixels")
	chrome := flag.Bool("chrome", false, "also print the HTML preview with headless Chrome")
	flag.Parse()

	doc := sampleDocument()
	ids := model.Templates
	if *templateID != "" {
		ids = []string{*templateID}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}
	if err := writeJSON(filepath.Join(*outDir, "sample_resume.json"), doc); err != nil {
		fmt.Fprintf(os.Stderr, "write model: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	vm := viewmodel.Project(doc)
	for _, id := range ids {
		if err := renderOne(ctx, *outDir, id, vm, *width, *chrome); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", id, err)
			os.Exit(1)
		}
	}
}

func renderOne(ctx context.Context, dir, id string, vm *viewmodel.Resume, width float64, chrome bool) error {
	art, err := export.PDF(ctx, id, vm)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	pdfPath := filepath.Join(dir, id+".pdf")
	if err := os.WriteFile(pdfPath, art.Bytes, 0o644); err != nil {
		return err
	}
	if err := validatePDF(ctx, art.Bytes, vm); err != nil {
		return fmt.Errorf("validate %s: %w", pdfPath, err)
	}

	html, err := render.RenderHTML(id, vm, render.HTMLOptions{ContainerWidth: width, Title: vm.ProfileInfo.FullName})
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	htmlPath := filepath.Join(dir, id+".html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return err
	}

	fmt.Printf("OK: %s (%d pages), %s\n", pdfPath, art.Pages, htmlPath)

	if !chrome {
		return nil
	}
	printed, err := export.ChromePDF(ctx, html)
	if err != nil {
		return fmt.Errorf("chrome: %w", err)
	}
	chromePath := filepath.Join(dir, id+".chrome.pdf")
	if err := os.WriteFile(chromePath, printed, 0o644); err != nil {
		return err
	}
	fmt.Printf("OK: %s\n", chromePath)
	return nil
}

// validatePDF reads the text layer back and checks the headline content made it in.
func validatePDF(ctx context.Context, data []byte, vm *viewmodel.Resume) error {
	text, err := export.PlainText(ctx, data)
	if err != nil {
		return err
	}
	want := []string{vm.ProfileInfo.FullName}
	if len(vm.WorkExperience) > 0 {
		want = append(want, vm.WorkExperience[0].Company)
	}
	folded := strings.ToUpper(text)
	for _, w := range want {
		if !strings.Contains(folded, strings.ToUpper(w)) {
			return fmt.Errorf("missing %q in extracted text", w)
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

func sampleDocument() *model.Document {
	doc := model.New("Jordan Lee - Backend", model.TemplateClassic)
	doc.Summary = "Backend engineer with 8+ years of experience building resilient APIs and data services."
	doc.PersonalDetails = model.PersonalDetails{
		FullName:    "Jordan Lee",
		Designation: "Senior Backend Engineer",
		Email:       "jordan.lee@example.com",
		Phone:       "+1-555-0102",
		Location:    "Austin, TX",
	}
	doc.Socials = model.Socials{
		LinkedIn: "https://www.linkedin.com/in/jordanlee",
		GitHub:   "https://github.com/jordanlee",
	}
	doc.Skills = []string{"Go", "PostgreSQL", "Redis", "Kubernetes", "AWS"}
	doc.Languages = []model.Language{
		{Name: "English", Level: model.LevelNative},
		{Name: "Spanish", Level: model.LevelIntermediate},
	}
	doc.Experiences = []model.Experience{
		{
			Position:     "Senior Backend Engineer",
			Organization: "Northwind Labs",
			StartDate:    "2021-03",
			IsCurrent:    true,
			Description:  "Led the billing platform rewrite\nCut p99 latency by 40%",
		},
		{
			Position:     "Backend Engineer",
			Organization: "Acme Cloud",
			StartDate:    "2017-06",
			EndDate:      "2021-02",
			Description:  "Built the event ingestion pipeline",
		},
	}
	doc.Education = []model.Education{{
		Degree:      "B.Sc. Computer Science",
		Institution: "University of Texas",
		StartDate:   "2012-09",
		EndDate:     "2016-05",
	}}
	doc.Projects = []model.Project{{
		Name:        "pgqueue",
		Description: "Postgres-backed job queue",
		TechStack:   model.TechList("Go", "PostgreSQL"),
	}}
	doc.Certifications = []model.Certification{{
		Title:  "AWS Solutions Architect",
		Issuer: "Amazon Web Services",
	}}
	return doc
}
