package model

import "strings"

const (
	TemplateClassic      = "classic"
	TemplateModern       = "modern"
	TemplateProfessional = "professional"

	DefaultTemplate      = TemplateClassic
	DefaultAccentColor   = "#2563eb"
	DefaultLanguageLevel = LevelIntermediate
	DefaultVersion       = 1
)

// Language proficiency levels accepted by the editor.
const (
	LevelBasic        = "basic"
	LevelIntermediate = "intermediate"
	LevelFluent       = "fluent"
	LevelNative       = "native"
)

// Templates lists the known template ids in catalog order.
var Templates = []string{TemplateClassic, TemplateModern, TemplateProfessional}

// Levels lists the accepted language levels.
var Levels = []string{LevelBasic, LevelIntermediate, LevelFluent, LevelNative}

// Document is the canonical, editable résumé. JSON names follow the persisted wire format.
type Document struct {
	ID              string          `json:"id,omitempty"`
	Title           string          `json:"title"`
	Template        string          `json:"template"`
	AccentColor     string          `json:"accent_color"`
	Version         int             `json:"version"`
	Summary         string          `json:"summary"`
	PersonalDetails PersonalDetails `json:"personal_details"`
	Socials         Socials         `json:"socials"`
	Skills          []string        `json:"skills"`
	Languages       []Language      `json:"languages"`
	Experiences     []Experience    `json:"experiences"`
	Education       []Education     `json:"education"`
	Projects        []Project       `json:"projects"`
	Certifications  []Certification `json:"certifications"`
}

// PersonalDetails holds identity and contact fields.
type PersonalDetails struct {
	FullName    string `json:"full_name"`
	Designation string `json:"designation"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
}

// Socials holds profile links.
type Socials struct {
	LinkedIn  string `json:"linkedIn"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
	Twitter   string `json:"twitter"`
}

type Language struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// Experience is one work history entry. When IsCurrent is set, EndDate is kept as typed
// but treated as absent everywhere downstream.
type Experience struct {
	Organization string `json:"organization"`
	Position     string `json:"position"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	IsCurrent    bool   `json:"is_current"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Grade       string `json:"grade"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type Project struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TechStack   TechStack `json:"tech_stack"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	LiveLink    string    `json:"live_link"`
	GitHubLink  string    `json:"github_link"`
}

type Certification struct {
	Title      string `json:"title"`
	Issuer     string `json:"issuer"`
	IssuedDate string `json:"issued_date"`
	URL        string `json:"url"`
}

// New returns a blank, fully shaped document.
func New(title, template string) *Document {
	return Normalize(map[string]any{
		"title":    title,
		"template": template,
	})
}

// Accent returns the accent color, falling back to the brand default.
func (d *Document) Accent() string {
	if d == nil {
		return DefaultAccentColor
	}
	if c := strings.TrimSpace(d.AccentColor); c != "" {
		return c
	}
	return DefaultAccentColor
}

// TemplateID returns the stored template id, or the default when unset.
func (d *Document) TemplateID() string {
	if d == nil || strings.TrimSpace(d.Template) == "" {
		return DefaultTemplate
	}
	return strings.TrimSpace(d.Template)
}

// Clone returns a deep copy that shares no slices with d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Skills = append(make([]string, 0, len(d.Skills)), d.Skills...)
	out.Languages = append(make([]Language, 0, len(d.Languages)), d.Languages...)
	out.Experiences = append(make([]Experience, 0, len(d.Experiences)), d.Experiences...)
	out.Education = append(make([]Education, 0, len(d.Education)), d.Education...)
	out.Certifications = append(make([]Certification, 0, len(d.Certifications)), d.Certifications...)
	out.Projects = make([]Project, len(d.Projects))
	for i, p := range d.Projects {
		p.TechStack = p.TechStack.clone()
		out.Projects[i] = p
	}
	return &out
}

// IsKnownTemplate reports whether id names a registered template.
func IsKnownTemplate(id string) bool {
	for _, t := range Templates {
		if t == id {
			return true
		}
	}
	return false
}

// IsKnownLevel reports whether level is an accepted language level.
func IsKnownLevel(level string) bool {
	for _, l := range Levels {
		if l == level {
			return true
		}
	}
	return false
}
