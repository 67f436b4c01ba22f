package forms

import (
	"strings"

	"curriculum-backend/resume/model"
)

// SkillInput is the pending text of the skills form.
type SkillInput struct {
	Value string
}

// Submit adds the pending skill and clears the buffer. A blank buffer leaves both untouched.
func (in *SkillInput) Submit(doc *model.Document) (*model.Document, error) {
	if strings.TrimSpace(in.Value) == "" {
		return doc, nil
	}
	next, err := Apply(doc, Patch{Section: SectionSkills, Op: OpAdd, Value: in.Value})
	if err != nil {
		return doc, err
	}
	in.Value = ""
	return next, nil
}

// LanguageInput is the pending name and level of the languages form.
type LanguageInput struct {
	Name  string
	Level string
}

// NewLanguageInput returns a buffer primed with the default level.
func NewLanguageInput() LanguageInput {
	return LanguageInput{Level: model.DefaultLanguageLevel}
}

// Submit adds the pending language and resets the buffer to its defaults.
func (in *LanguageInput) Submit(doc *model.Document) (*model.Document, error) {
	if strings.TrimSpace(in.Name) == "" {
		return doc, nil
	}
	next, err := Apply(doc, Patch{
		Section: SectionLanguages,
		Op:      OpAdd,
		Value:   model.Language{Name: in.Name, Level: in.Level},
	})
	if err != nil {
		return doc, err
	}
	*in = NewLanguageInput()
	return next, nil
}
