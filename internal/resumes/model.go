package resumes

import (
	"time"

	"curriculum-backend/resume/model"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Resume is a stored document with its ownership and lifecycle metadata. Document.ID and
// Document.Version always mirror ID and Version.
type Resume struct {
	ID          string
	UserID      string
	Status      string
	Document    *model.Document
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt *time.Time
}

// Title returns the document title.
func (r Resume) Title() string {
	if r.Document == nil {
		return ""
	}
	return r.Document.Title
}

// TemplateID returns the document template, defaulting when unset.
func (r Resume) TemplateID() string {
	return r.Document.TemplateID()
}

func (r *Resume) syncDocument() {
	if r.Document == nil {
		r.Document = model.New("", "")
	}
	r.Document.ID = r.ID
	r.Document.Version = r.Version
}
