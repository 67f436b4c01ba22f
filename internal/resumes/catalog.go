package resumes

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"curriculum-backend/resume/model"
)

//go:embed templates.yaml
var catalogYAML []byte

// TemplateInfo describes a template in the picker.
type TemplateInfo struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Layout      string   `yaml:"layout" json:"layout"`
	Tags        []string `yaml:"tags" json:"tags"`
}

var (
	catalogOnce sync.Once
	catalog     []TemplateInfo
	catalogErr  error
)

// Catalog returns the template catalog in display order.
func Catalog() ([]TemplateInfo, error) {
	catalogOnce.Do(func() {
		catalog, catalogErr = parseCatalog(catalogYAML)
	})
	if catalogErr != nil {
		return nil, catalogErr
	}
	return append([]TemplateInfo(nil), catalog...), nil
}

func parseCatalog(data []byte) ([]TemplateInfo, error) {
	var file struct {
		Templates []TemplateInfo `yaml:"templates"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse template catalog: %w", err)
	}
	seen := make(map[string]bool, len(file.Templates))
	for _, t := range file.Templates {
		if !model.IsKnownTemplate(t.ID) {
			return nil, fmt.Errorf("template catalog: unknown template %q", t.ID)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("template catalog: duplicate template %q", t.ID)
		}
		seen[t.ID] = true
	}
	return file.Templates, nil
}
