// Package viewmodel flattens a résumé document into the template-agnostic shape every layout
// renders from.
package viewmodel

import (
	"sync"

	"curriculum-backend/resume/model"
)

const (
	PlaceholderName        = "Your Name"
	PlaceholderDesignation = "Designation"
	PresentLabel           = "Present"
)

// Resume is the projected view model. Templates only read it.
type Resume struct {
	AccentColor    string
	ProfileInfo    ProfileInfo
	ContactInfo    ContactInfo
	WorkExperience []WorkExperience
	Projects       []ProjectEntry
	Education      []Education
	Skills         []Skill
	Languages      []Language
	Certifications []Certification
}

type ProfileInfo struct {
	FullName    string
	Designation string
	Summary     string
}

type ContactInfo struct {
	Email    string
	Phone    string
	Location string
	LinkedIn string
	GitHub   string
	Website  string
}

// WorkExperience.EndDate holds PresentLabel for current roles.
type WorkExperience struct {
	Title       string
	Company     string
	Location    string
	StartDate   string
	EndDate     string
	Description string
	IsCurrent   bool
}

type ProjectEntry struct {
	Title        string
	Description  string
	StartDate    string
	EndDate      string
	LiveDemo     string
	GitHub       string
	Technologies []string
}

type Education struct {
	Institution string
	Degree      string
	Field       string
	StartDate   string
	EndDate     string
	GPA         string
}

type Skill struct {
	Name string
}

type Language struct {
	Name  string
	Level string
}

type Certification struct {
	Name      string
	Issuer    string
	IssueDate string
	URL       string
}

// Project builds the view model for doc. A nil document projects as an empty one.
func Project(doc *model.Document) *Resume {
	if doc == nil {
		doc = model.Normalize(nil)
	}
	vm := &Resume{
		AccentColor: doc.Accent(),
		ProfileInfo: ProfileInfo{
			FullName:    orDefault(doc.PersonalDetails.FullName, PlaceholderName),
			Designation: orDefault(doc.PersonalDetails.Designation, PlaceholderDesignation),
			Summary:     doc.Summary,
		},
		ContactInfo: ContactInfo{
			Email:    doc.PersonalDetails.Email,
			Phone:    doc.PersonalDetails.Phone,
			Location: doc.PersonalDetails.Location,
			LinkedIn: doc.Socials.LinkedIn,
			GitHub:   doc.Socials.GitHub,
			Website:  doc.Socials.Portfolio,
		},
		WorkExperience: make([]WorkExperience, 0, len(doc.Experiences)),
		Projects:       make([]ProjectEntry, 0, len(doc.Projects)),
		Education:      make([]Education, 0, len(doc.Education)),
		Skills:         make([]Skill, 0, len(doc.Skills)),
		Languages:      make([]Language, 0, len(doc.Languages)),
		Certifications: make([]Certification, 0, len(doc.Certifications)),
	}

	for _, e := range doc.Experiences {
		end := e.EndDate
		if e.IsCurrent {
			end = PresentLabel
		}
		vm.WorkExperience = append(vm.WorkExperience, WorkExperience{
			Title:       e.Position,
			Company:     e.Organization,
			Location:    e.Location,
			StartDate:   e.StartDate,
			EndDate:     end,
			Description: e.Description,
			IsCurrent:   e.IsCurrent,
		})
	}
	for _, p := range doc.Projects {
		vm.Projects = append(vm.Projects, ProjectEntry{
			Title:        p.Name,
			Description:  p.Description,
			StartDate:    p.StartDate,
			EndDate:      p.EndDate,
			LiveDemo:     p.LiveLink,
			GitHub:       p.GitHubLink,
			Technologies: p.TechStack.Technologies(),
		})
	}
	for _, ed := range doc.Education {
		vm.Education = append(vm.Education, Education{
			Institution: ed.Institution,
			Degree:      ed.Degree,
			Field:       ed.Field,
			StartDate:   ed.StartDate,
			EndDate:     ed.EndDate,
			GPA:         ed.Grade,
		})
	}
	for _, s := range doc.Skills {
		vm.Skills = append(vm.Skills, Skill{Name: s})
	}
	for _, l := range doc.Languages {
		vm.Languages = append(vm.Languages, Language{Name: l.Name, Level: l.Level})
	}
	for _, c := range doc.Certifications {
		vm.Certifications = append(vm.Certifications, Certification{
			Name:      c.Title,
			Issuer:    c.Issuer,
			IssueDate: c.IssuedDate,
			URL:       c.URL,
		})
	}
	return vm
}

// Projector caches the last projection and recomputes only when handed a different document
// pointer. Documents are replaced, never mutated, so pointer identity is enough.
type Projector struct {
	mu   sync.Mutex
	last *model.Document
	view *Resume
}

// Project returns the cached view model for doc, projecting it if doc changed.
func (p *Projector) Project(doc *model.Document) *Resume {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.view != nil && doc == p.last {
		return p.view
	}
	p.last = doc
	p.view = Project(doc)
	return p.view
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
