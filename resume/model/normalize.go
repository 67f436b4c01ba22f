package model

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrNotObject is returned by Decode when the payload root is not a JSON object.
var ErrNotObject = errors.New("resume document must be a JSON object")

// Decode parses a JSON document and normalizes it. Only malformed JSON is an error; shape
// problems are coerced away by Normalize.
func Decode(data []byte) (*Document, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return Normalize(obj), nil
}

// Normalize turns a partial or malformed document into a fully shaped one. Every list is
// non-nil and every nested object exists. It never fails.
func Normalize(raw map[string]any) *Document {
	personal := asObject(raw["personal_details"])
	doc := &Document{
		ID:          asString(raw["id"]),
		Title:       asString(raw["title"]),
		Template:    strings.TrimSpace(asString(raw["template"])),
		AccentColor: strings.TrimSpace(asString(raw["accent_color"])),
		Version:     asInt(raw["version"], DefaultVersion),
		PersonalDetails: PersonalDetails{
			FullName:    asString(personal["full_name"]),
			Designation: asString(personal["designation"]),
			Email:       asString(personal["email"]),
			Phone:       asString(personal["phone"]),
			Location:    asString(personal["location"]),
		},
		Socials:        normalizeSocials(asObject(raw["socials"])),
		Skills:         normalizeSkills(raw["skills"]),
		Languages:      []Language{},
		Experiences:    []Experience{},
		Education:      []Education{},
		Projects:       []Project{},
		Certifications: []Certification{},
	}

	if summary, ok := raw["summary"]; ok && summary != nil {
		doc.Summary = asString(summary)
	} else {
		doc.Summary = asString(personal["summary"])
	}
	if doc.Template == "" {
		doc.Template = DefaultTemplate
	}
	if doc.AccentColor == "" {
		doc.AccentColor = DefaultAccentColor
	}

	for _, item := range asList(raw["languages"]) {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		doc.Languages = append(doc.Languages, Language{
			Name:  asString(obj["name"]),
			Level: asString(obj["level"]),
		})
	}
	for _, item := range asList(raw["experiences"]) {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		doc.Experiences = append(doc.Experiences, Experience{
			Organization: asString(obj["organization"]),
			Position:     asString(obj["position"]),
			Location:     asString(obj["location"]),
			Description:  asString(obj["description"]),
			StartDate:    asString(obj["start_date"]),
			EndDate:      asString(obj["end_date"]),
			IsCurrent:    asBool(obj["is_current"]),
		})
	}
	for _, item := range asList(raw["education"]) {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		doc.Education = append(doc.Education, Education{
			Institution: asString(obj["institution"]),
			Degree:      asString(obj["degree"]),
			Field:       asString(obj["field"]),
			Grade:       asString(obj["grade"]),
			StartDate:   asString(obj["start_date"]),
			EndDate:     asString(obj["end_date"]),
		})
	}
	for _, item := range asList(raw["projects"]) {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		doc.Projects = append(doc.Projects, Project{
			Name:        asString(obj["name"]),
			Description: asString(obj["description"]),
			TechStack:   techStackFrom(obj["tech_stack"]),
			StartDate:   asString(obj["start_date"]),
			EndDate:     asString(obj["end_date"]),
			LiveLink:    asString(obj["live_link"]),
			GitHubLink:  asString(obj["github_link"]),
		})
	}
	for _, item := range asList(raw["certifications"]) {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		doc.Certifications = append(doc.Certifications, Certification{
			Title:      asString(obj["title"]),
			Issuer:     asString(obj["issuer"]),
			IssuedDate: asString(obj["issued_date"]),
			URL:        asString(obj["url"]),
		})
	}
	return doc
}

func normalizeSocials(obj map[string]any) Socials {
	return Socials{
		LinkedIn:  asString(obj["linkedIn"]),
		GitHub:    asString(obj["github"]),
		Portfolio: asString(obj["portfolio"]),
		Twitter:   asString(obj["twitter"]),
	}
}

func normalizeSkills(raw any) []string {
	out := []string{}
	for _, item := range asList(raw) {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func asObject(v any) map[string]any {
	if obj, ok := v.(map[string]any); ok {
		return obj
	}
	return map[string]any{}
}

func asList(v any) []any {
	switch list := v.(type) {
	case []any:
		return list
	case []string:
		out := make([]any, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out
	default:
		return nil
	}
}

func asString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case json.Number:
		return val.String()
	default:
		return ""
	}
}

func asBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return strings.EqualFold(strings.TrimSpace(val), "true")
	default:
		return false
	}
}

func asInt(v any, def int) int {
	switch val := v.(type) {
	case float64:
		if val >= 1 && val <= math.MaxInt32 {
			return int(val)
		}
	case int:
		if val >= 1 {
			return val
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil && n >= 1 {
			return n
		}
	}
	return def
}
