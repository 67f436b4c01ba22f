// Package wire converts the editable document into the body accepted by the save endpoint.
package wire

import (
	"encoding/json"
	"strings"

	"curriculum-backend/resume/model"
)

// Payload is the PUT body for a résumé. Empty sections are omitted entirely.
type Payload struct {
	Version         int             `json:"version"`
	Title           *string         `json:"title"`
	Summary         *string         `json:"summary"`
	Template        string          `json:"template"`
	AccentColor     string          `json:"accent_color"`
	PersonalDetails PersonalDetails `json:"personal_details"`
	Socials         Socials         `json:"socials"`
	Skills          []string        `json:"skills,omitempty"`
	Languages       []Language      `json:"languages,omitempty"`
	Experiences     []Experience    `json:"experiences,omitempty"`
	Projects        []Project       `json:"projects,omitempty"`
	Education       []Education     `json:"education,omitempty"`
	Certifications  []Certification `json:"certifications,omitempty"`
}

type PersonalDetails struct {
	FullName    string `json:"full_name"`
	Designation string `json:"designation"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
}

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

// Experience carries a null end date for current roles.
type Experience struct {
	Organization string  `json:"organization"`
	Position     string  `json:"position"`
	Location     string  `json:"location"`
	Description  string  `json:"description"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	IsCurrent    bool    `json:"is_current"`
}

// Project always carries the tech stack as comma-separated text.
type Project struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	TechStack   string  `json:"tech_stack"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	LiveLink    string  `json:"live_link"`
	GitHubLink  string  `json:"github_link"`
}

// UnmarshalJSON accepts tech_stack as text, an array of strings or null and keeps it as text.
func (p *Project) UnmarshalJSON(data []byte) error {
	type plain Project
	var aux struct {
		plain
		TechStack model.TechStack `json:"tech_stack"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Project(aux.plain)
	p.TechStack = aux.TechStack.String()
	return nil
}

type Education struct {
	Institution string  `json:"institution"`
	Degree      string  `json:"degree"`
	Field       string  `json:"field"`
	Grade       string  `json:"grade"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

type Certification struct {
	Title      string  `json:"title"`
	Issuer     string  `json:"issuer"`
	IssuedDate *string `json:"issued_date"`
	URL        string  `json:"url"`
}

// ToWirePayload prunes draft entries and applies the persistence rules. It never fails.
func ToWirePayload(doc *model.Document) Payload {
	if doc == nil {
		doc = model.Normalize(nil)
	}
	p := Payload{
		Version:     doc.Version,
		Title:       nullable(doc.Title),
		Summary:     nullable(doc.Summary),
		Template:    doc.TemplateID(),
		AccentColor: doc.Accent(),
		PersonalDetails: PersonalDetails{
			FullName:    doc.PersonalDetails.FullName,
			Designation: doc.PersonalDetails.Designation,
			Email:       doc.PersonalDetails.Email,
			Phone:       doc.PersonalDetails.Phone,
			Location:    doc.PersonalDetails.Location,
		},
		Socials: Socials{
			LinkedIn:  doc.Socials.LinkedIn,
			GitHub:    doc.Socials.GitHub,
			Portfolio: doc.Socials.Portfolio,
			Twitter:   doc.Socials.Twitter,
		},
	}
	if p.Version < 1 {
		p.Version = model.DefaultVersion
	}

	for _, s := range doc.Skills {
		if !blank(s) {
			p.Skills = append(p.Skills, s)
		}
	}
	for _, l := range doc.Languages {
		if blank(l.Name) {
			continue
		}
		level := l.Level
		if level == "" {
			level = model.DefaultLanguageLevel
		}
		p.Languages = append(p.Languages, Language{Name: l.Name, Level: level})
	}
	for _, e := range doc.Experiences {
		if blank(e.Position) && blank(e.Organization) {
			continue
		}
		out := Experience{
			Organization: e.Organization,
			Position:     e.Position,
			Location:     e.Location,
			Description:  e.Description,
			StartDate:    nullable(e.StartDate),
			EndDate:      nullable(e.EndDate),
			IsCurrent:    e.IsCurrent,
		}
		if e.IsCurrent {
			out.EndDate = nil
		}
		p.Experiences = append(p.Experiences, out)
	}
	for _, pr := range doc.Projects {
		if blank(pr.Name) {
			continue
		}
		p.Projects = append(p.Projects, Project{
			Name:        pr.Name,
			Description: pr.Description,
			TechStack:   pr.TechStack.String(),
			StartDate:   nullable(pr.StartDate),
			EndDate:     nullable(pr.EndDate),
			LiveLink:    pr.LiveLink,
			GitHubLink:  pr.GitHubLink,
		})
	}
	for _, ed := range doc.Education {
		if blank(ed.Institution) && blank(ed.Degree) {
			continue
		}
		p.Education = append(p.Education, Education{
			Institution: ed.Institution,
			Degree:      ed.Degree,
			Field:       ed.Field,
			Grade:       ed.Grade,
			StartDate:   nullable(ed.StartDate),
			EndDate:     nullable(ed.EndDate),
		})
	}
	for _, c := range doc.Certifications {
		if blank(c.Title) {
			continue
		}
		p.Certifications = append(p.Certifications, Certification{
			Title:      c.Title,
			Issuer:     c.Issuer,
			IssuedDate: nullable(c.IssuedDate),
			URL:        c.URL,
		})
	}
	return p
}

// Document converts the payload back into a normalized document.
func (p Payload) Document() *model.Document {
	doc := model.New(deref(p.Title), p.Template)
	doc.Version = p.Version
	if doc.Version < 1 {
		doc.Version = model.DefaultVersion
	}
	doc.Summary = deref(p.Summary)
	if p.AccentColor != "" {
		doc.AccentColor = p.AccentColor
	}
	doc.PersonalDetails = model.PersonalDetails(p.PersonalDetails)
	doc.Socials = model.Socials(p.Socials)
	doc.Skills = append(doc.Skills, p.Skills...)
	for _, l := range p.Languages {
		doc.Languages = append(doc.Languages, model.Language(l))
	}
	for _, e := range p.Experiences {
		doc.Experiences = append(doc.Experiences, model.Experience{
			Organization: e.Organization,
			Position:     e.Position,
			Location:     e.Location,
			Description:  e.Description,
			StartDate:    deref(e.StartDate),
			EndDate:      deref(e.EndDate),
			IsCurrent:    e.IsCurrent,
		})
	}
	for _, pr := range p.Projects {
		doc.Projects = append(doc.Projects, model.Project{
			Name:        pr.Name,
			Description: pr.Description,
			TechStack:   model.TechText(pr.TechStack),
			StartDate:   deref(pr.StartDate),
			EndDate:     deref(pr.EndDate),
			LiveLink:    pr.LiveLink,
			GitHubLink:  pr.GitHubLink,
		})
	}
	for _, ed := range p.Education {
		doc.Education = append(doc.Education, model.Education{
			Institution: ed.Institution,
			Degree:      ed.Degree,
			Field:       ed.Field,
			Grade:       ed.Grade,
			StartDate:   deref(ed.StartDate),
			EndDate:     deref(ed.EndDate),
		})
	}
	for _, c := range p.Certifications {
		doc.Certifications = append(doc.Certifications, model.Certification{
			Title:      c.Title,
			Issuer:     c.Issuer,
			IssuedDate: deref(c.IssuedDate),
			URL:        c.URL,
		})
	}
	return doc
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func nullable(s string) *string {
	if blank(s) {
		return nil
	}
	v := s
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
