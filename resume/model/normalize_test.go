package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizeFillsEveryList(t *testing.T) {
	inputs := []map[string]any{
		{},
		{"skills": nil, "languages": "nope", "experiences": 42},
		{"personal_details": "broken", "socials": []any{1, 2}},
		{"projects": []any{"x", 3, nil}, "education": map[string]any{"a": 1}},
		{"certifications": []any{map[string]any{"title": 7}}},
	}
	for i, raw := range inputs {
		doc := Normalize(raw)
		if doc.Skills == nil || doc.Languages == nil || doc.Experiences == nil ||
			doc.Education == nil || doc.Projects == nil || doc.Certifications == nil {
			t.Fatalf("input %d: expected all lists to be non-nil, got %+v", i, doc)
		}
		if doc.Template != DefaultTemplate {
			t.Fatalf("input %d: expected default template, got %q", i, doc.Template)
		}
		if doc.AccentColor != DefaultAccentColor {
			t.Fatalf("input %d: expected default accent, got %q", i, doc.AccentColor)
		}
		if doc.Version != DefaultVersion {
			t.Fatalf("input %d: expected version 1, got %d", i, doc.Version)
		}
	}
}

func TestNormalizeCoercesMalformedEntries(t *testing.T) {
	raw := map[string]any{
		"skills":      []any{"Go", 12, "", nil, "SQL"},
		"experiences": []any{"junk", map[string]any{"position": "Eng", "is_current": "true", "end_date": 2020}},
		"education":   []any{map[string]any{"institution": "MIT", "grade": 3.8}},
		"version":     "3",
	}
	doc := Normalize(raw)

	if want := []string{"Go", "", "SQL"}; !reflect.DeepEqual(doc.Skills, want) {
		t.Fatalf("skills = %v, want %v", doc.Skills, want)
	}
	if len(doc.Experiences) != 1 {
		t.Fatalf("expected 1 experience, got %d", len(doc.Experiences))
	}
	exp := doc.Experiences[0]
	if !exp.IsCurrent || exp.EndDate != "2020" {
		t.Fatalf("unexpected experience: %+v", exp)
	}
	if doc.Education[0].Grade != "3.8" {
		t.Fatalf("grade = %q, want 3.8", doc.Education[0].Grade)
	}
	if doc.Version != 3 {
		t.Fatalf("version = %d, want 3", doc.Version)
	}
}

func TestNormalizeSummaryFallsBackToPersonalDetails(t *testing.T) {
	doc := Normalize(map[string]any{
		"personal_details": map[string]any{"full_name": "Ada", "summary": "Builder"},
	})
	if doc.Summary != "Builder" {
		t.Fatalf("summary = %q", doc.Summary)
	}

	doc = Normalize(map[string]any{
		"summary":          "Top level",
		"personal_details": map[string]any{"summary": "Nested"},
	})
	if doc.Summary != "Top level" {
		t.Fatalf("summary = %q", doc.Summary)
	}
}

func TestDecodeAcceptsTechStackShapes(t *testing.T) {
	payload := []byte(`{
		"projects": [
			{"name": "a", "tech_stack": "Go, Postgres"},
			{"name": "b", "tech_stack": ["Go", "Postgres", 5]},
			{"name": "c", "tech_stack": null}
		]
	}`)
	doc, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(doc.Projects) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(doc.Projects))
	}
	want := []string{"Go", "Postgres"}
	if got := doc.Projects[0].TechStack.Technologies(); !reflect.DeepEqual(got, want) {
		t.Fatalf("text stack = %v", got)
	}
	if !doc.Projects[1].TechStack.IsList() {
		t.Fatalf("expected list tech stack")
	}
	if got := doc.Projects[1].TechStack.Technologies(); !reflect.DeepEqual(got, want) {
		t.Fatalf("list stack = %v", got)
	}
	if !doc.Projects[2].TechStack.IsEmpty() {
		t.Fatalf("expected empty tech stack")
	}
}

func TestDecodeRejectsNonObject(t *testing.T) {
	if _, err := Decode([]byte(`[1,2]`)); err != ErrNotObject {
		t.Fatalf("expected ErrNotObject, got %v", err)
	}
	if _, err := Decode([]byte(`{`)); err == nil {
		t.Fatalf("expected syntax error")
	}
}

func TestCloneSharesNothing(t *testing.T) {
	doc := Normalize(map[string]any{
		"skills":   []any{"Go"},
		"projects": []any{map[string]any{"name": "p", "tech_stack": []any{"Go"}}},
	})
	cp := doc.Clone()
	cp.Skills[0] = "Rust"
	cp.Projects[0].Name = "q"
	if doc.Skills[0] != "Go" || doc.Projects[0].Name != "p" {
		t.Fatalf("clone mutated the original: %+v", doc)
	}

	data, err := json.Marshal(cp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Projects[0].TechStack.String() != "Go" {
		t.Fatalf("tech stack after decode = %q", back.Projects[0].TechStack.String())
	}
}
