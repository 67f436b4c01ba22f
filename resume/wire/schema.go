package wire

import (
	_ "embed"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"curriculum-backend/resume/model"
	"curriculum-backend/resume/validate"
)

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

// keyOrder is the order top-level keys appear in a payload; errors are reported in it.
var keyOrder = map[string]int{
	"version":          0,
	"title":            1,
	"summary":          2,
	"template":         3,
	"accent_color":     4,
	"personal_details": 5,
	"socials":          6,
	"skills":           7,
	"languages":        8,
	"experiences":      9,
	"projects":         10,
	"education":        11,
	"certifications":   12,
}

func compiled() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

// Validate checks a raw save body against the payload schema. Field errors come back in
// payload key order, list entries by index. The error is non-nil only for malformed JSON.
func Validate(data []byte) (validate.FieldErrors, error) {
	s, err := compiled()
	if err != nil {
		return nil, fmt.Errorf("compile payload schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, err
	}
	if res.Valid() {
		return nil, nil
	}

	type item struct {
		field string
		msg   string
	}
	items := make([]item, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		field := fieldPath(e)
		items = append(items, item{field: field, msg: message(field, e)})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return lessPath(items[i].field, items[j].field)
	})

	var out validate.FieldErrors
	for _, it := range items {
		out.Add(it.field, it.msg)
	}
	return out, nil
}

func fieldPath(e gojsonschema.ResultError) string {
	field := e.Field()
	if e.Type() != "required" {
		return field
	}
	prop, _ := e.Details()["property"].(string)
	switch {
	case prop == "":
		return field
	case field == "" || field == "(root)":
		return prop
	case strings.HasSuffix(field, "."+prop):
		return field
	default:
		return field + "." + prop
	}
}

func message(field string, e gojsonschema.ResultError) string {
	leaf := field
	if i := strings.LastIndex(field, "."); i >= 0 {
		leaf = field[i+1:]
	}
	switch {
	case leaf == "version":
		return "Version is required"
	case leaf == "summary" && e.Type() == "string_lte":
		return "Summary cannot exceed 1500 characters"
	case leaf == "template":
		return "Template must be one of " + strings.Join(model.Templates, ", ")
	case leaf == "accent_color":
		return "Accent color must be a hex color like #2563eb"
	case leaf == "level":
		return "Level must be one of " + strings.Join(model.Levels, ", ")
	case strings.HasSuffix(leaf, "_date"):
		return "Dates must use YYYY-MM or YYYY-MM-DD"
	case e.Type() == "required" || e.Type() == "string_gte":
		return humanize(leaf) + " is required"
	default:
		return e.Description()
	}
}

func humanize(key string) string {
	if key == "" {
		return "Value"
	}
	words := strings.Split(key, "_")
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	return strings.Join(words, " ")
}

func lessPath(a, b string) bool {
	pa, pb := strings.Split(a, "."), strings.Split(b, ".")
	ra, oka := keyOrder[pa[0]]
	rb, okb := keyOrder[pb[0]]
	if oka != okb {
		return oka
	}
	if ra != rb {
		return ra < rb
	}
	for i := 1; i < len(pa) && i < len(pb); i++ {
		if pa[i] == pb[i] {
			continue
		}
		na, ea := strconv.Atoi(pa[i])
		nb, eb := strconv.Atoi(pb[i])
		if ea == nil && eb == nil {
			return na < nb
		}
		return pa[i] < pb[i]
	}
	if len(pa) != len(pb) {
		return len(pa) < len(pb)
	}
	return a < b
}
