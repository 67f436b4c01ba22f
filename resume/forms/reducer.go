package forms

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"curriculum-backend/resume/model"
)

// Apply returns the document produced by p. The input is never modified; untouched sections
// are shared between the two snapshots. A no-op patch returns doc itself.
func Apply(doc *model.Document, p Patch) (*model.Document, error) {
	if doc == nil {
		doc = model.Normalize(nil)
	}
	switch p.Section {
	case SectionDocument:
		return applyScalar(doc, p)
	case SectionPersonal:
		return applyPersonal(doc, p)
	case SectionSocials:
		return applySocials(doc, p)
	case SectionSkills:
		return applySkills(doc, p)
	case SectionLanguages:
		return applyLanguages(doc, p)
	case SectionExperiences:
		return applyList(doc, p, doc.Experiences, prependEntry[model.Experience], setExperienceField,
			func(next *model.Document, list []model.Experience) { next.Experiences = list })
	case SectionEducation:
		return applyList(doc, p, doc.Education, prependEntry[model.Education], setEducationField,
			func(next *model.Document, list []model.Education) { next.Education = list })
	case SectionProjects:
		return applyList(doc, p, doc.Projects, prependEntry[model.Project], setProjectField,
			func(next *model.Document, list []model.Project) { next.Projects = list })
	case SectionCertifications:
		return applyList(doc, p, doc.Certifications, appendEntry[model.Certification], setCertificationField,
			func(next *model.Document, list []model.Certification) { next.Certifications = list })
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, p.Section)
	}
}

// ApplyAll folds patches left to right, stopping at the first error.
func ApplyAll(doc *model.Document, patches []Patch) (*model.Document, error) {
	for i, p := range patches {
		next, err := Apply(doc, p)
		if err != nil {
			return doc, fmt.Errorf("patch %d: %w", i, err)
		}
		doc = next
	}
	return doc, nil
}

func applyScalar(doc *model.Document, p Patch) (*model.Document, error) {
	if p.Op != OpSet {
		return nil, fmt.Errorf("%w: %s on %s", ErrUnsupportedOp, p.Op, p.Section)
	}
	next := *doc
	value := asString(p.Value)
	switch p.Field {
	case "title":
		next.Title = value
	case "summary":
		next.Summary = value
	case "template":
		next.Template = value
	case "accent_color":
		next.AccentColor = value
	default:
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, p.Section, p.Field)
	}
	return &next, nil
}

func applyPersonal(doc *model.Document, p Patch) (*model.Document, error) {
	if p.Op != OpSet {
		return nil, fmt.Errorf("%w: %s on %s", ErrUnsupportedOp, p.Op, p.Section)
	}
	next := *doc
	value := asString(p.Value)
	switch p.Field {
	case "full_name":
		next.PersonalDetails.FullName = value
	case "designation":
		next.PersonalDetails.Designation = value
	case "email":
		next.PersonalDetails.Email = value
	case "phone":
		next.PersonalDetails.Phone = value
	case "location":
		next.PersonalDetails.Location = value
	case "summary":
		next.Summary = value
	default:
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, p.Section, p.Field)
	}
	return &next, nil
}

func applySocials(doc *model.Document, p Patch) (*model.Document, error) {
	if p.Op != OpSet {
		return nil, fmt.Errorf("%w: %s on %s", ErrUnsupportedOp, p.Op, p.Section)
	}
	next := *doc
	value := asString(p.Value)
	switch p.Field {
	case "linkedIn":
		next.Socials.LinkedIn = value
	case "github":
		next.Socials.GitHub = value
	case "portfolio":
		next.Socials.Portfolio = value
	case "twitter":
		next.Socials.Twitter = value
	default:
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, p.Section, p.Field)
	}
	return &next, nil
}

func applySkills(doc *model.Document, p Patch) (*model.Document, error) {
	next := *doc
	switch p.Op {
	case OpAdd:
		skill := strings.TrimSpace(asString(p.Value))
		if skill == "" {
			return doc, nil
		}
		next.Skills = appendEntry(doc.Skills, skill)
	case OpRemove:
		next.Skills = removeEntry(doc.Skills, p.Index)
	case OpSet:
		list, err := setEntry(doc.Skills, p.Index, func(s *string) error {
			*s = asString(p.Value)
			return nil
		})
		if err != nil {
			return nil, err
		}
		next.Skills = list
	default:
		return nil, fmt.Errorf("%w: %s on %s", ErrUnsupportedOp, p.Op, p.Section)
	}
	return &next, nil
}

func applyLanguages(doc *model.Document, p Patch) (*model.Document, error) {
	next := *doc
	switch p.Op {
	case OpAdd:
		lang := asLanguage(p.Value)
		lang.Name = strings.TrimSpace(lang.Name)
		if lang.Name == "" {
			return doc, nil
		}
		if lang.Level == "" {
			lang.Level = model.DefaultLanguageLevel
		}
		next.Languages = appendEntry(doc.Languages, lang)
	case OpRemove:
		next.Languages = removeEntry(doc.Languages, p.Index)
	case OpSet:
		list, err := setEntry(doc.Languages, p.Index, func(l *model.Language) error {
			switch p.Field {
			case "name":
				l.Name = asString(p.Value)
			case "level":
				l.Level = asString(p.Value)
			default:
				return fmt.Errorf("%w: %s.%s", ErrUnknownField, p.Section, p.Field)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		next.Languages = list
	default:
		return nil, fmt.Errorf("%w: %s on %s", ErrUnsupportedOp, p.Op, p.Section)
	}
	return &next, nil
}

func applyList[T any](
	doc *model.Document,
	p Patch,
	list []T,
	insert func([]T, T) []T,
	set func(*T, string, any) error,
	assign func(*model.Document, []T),
) (*model.Document, error) {
	next := *doc
	switch p.Op {
	case OpAdd:
		var blank T
		assign(&next, insert(list, blank))
	case OpRemove:
		assign(&next, removeEntry(list, p.Index))
	case OpSet:
		updated, err := setEntry(list, p.Index, func(entry *T) error {
			if err := set(entry, p.Field, p.Value); err != nil {
				return fmt.Errorf("%w: %s.%s", err, p.Section, p.Field)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		assign(&next, updated)
	default:
		return nil, fmt.Errorf("%w: %s on %s", ErrUnsupportedOp, p.Op, p.Section)
	}
	return &next, nil
}

func setExperienceField(e *model.Experience, field string, value any) error {
	switch field {
	case "organization":
		e.Organization = asString(value)
	case "position":
		e.Position = asString(value)
	case "location":
		e.Location = asString(value)
	case "description":
		e.Description = asString(value)
	case "start_date":
		e.StartDate = asString(value)
	case "end_date":
		e.EndDate = asString(value)
	case "is_current":
		// end_date is left alone so unchecking restores what the user typed.
		e.IsCurrent = asBool(value)
	default:
		return ErrUnknownField
	}
	return nil
}

func setEducationField(e *model.Education, field string, value any) error {
	switch field {
	case "institution":
		e.Institution = asString(value)
	case "degree":
		e.Degree = asString(value)
	case "field":
		e.Field = asString(value)
	case "grade":
		e.Grade = asString(value)
	case "start_date":
		e.StartDate = asString(value)
	case "end_date":
		e.EndDate = asString(value)
	default:
		return ErrUnknownField
	}
	return nil
}

func setProjectField(pr *model.Project, field string, value any) error {
	switch field {
	case "name":
		pr.Name = asString(value)
	case "description":
		pr.Description = asString(value)
	case "tech_stack":
		pr.TechStack = asTechStack(value)
	case "start_date":
		pr.StartDate = asString(value)
	case "end_date":
		pr.EndDate = asString(value)
	case "live_link":
		pr.LiveLink = asString(value)
	case "github_link":
		pr.GitHubLink = asString(value)
	default:
		return ErrUnknownField
	}
	return nil
}

func setCertificationField(c *model.Certification, field string, value any) error {
	switch field {
	case "title":
		c.Title = asString(value)
	case "issuer":
		c.Issuer = asString(value)
	case "issued_date":
		c.IssuedDate = asString(value)
	case "url":
		c.URL = asString(value)
	default:
		return ErrUnknownField
	}
	return nil
}

func prependEntry[T any](list []T, v T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, v)
	return append(out, list...)
}

func appendEntry[T any](list []T, v T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, list...)
	return append(out, v)
}

func removeEntry[T any](list []T, index int) []T {
	out := make([]T, 0, len(list))
	for i, v := range list {
		if i != index {
			out = append(out, v)
		}
	}
	return out
}

func setEntry[T any](list []T, index int, fn func(*T) error) ([]T, error) {
	if index < 0 || index >= len(list) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	out := append([]T(nil), list...)
	if err := fn(&out[index]); err != nil {
		return nil, err
	}
	return out, nil
}

func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	default:
		return fmt.Sprint(val)
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

func asLanguage(v any) model.Language {
	switch val := v.(type) {
	case model.Language:
		return val
	case string:
		return model.Language{Name: val}
	case map[string]any:
		return model.Language{Name: asString(val["name"]), Level: asString(val["level"])}
	default:
		return model.Language{}
	}
}

func asTechStack(v any) model.TechStack {
	switch val := v.(type) {
	case model.TechStack:
		return val
	case []string:
		return model.TechList(val...)
	case []any:
		tokens := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				tokens = append(tokens, s)
			}
		}
		return model.TechList(tokens...)
	default:
		return model.TechText(asString(v))
	}
}
