package resumes

import (
	"time"

	"curriculum-backend/resume/model"
)

// ResumeResponse is the document plus its lifecycle metadata.
type ResumeResponse struct {
	*model.Document
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// SummaryResponse is one row of the résumé list.
type SummaryResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Template  string    `json:"template"`
	Status    string    `json:"status"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

type createRequest struct {
	Title    string `json:"title"`
	Template string `json:"template"`
}

func toResponse(r Resume) ResumeResponse {
	r.syncDocument()
	return ResumeResponse{
		Document:    r.Document,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		PublishedAt: r.PublishedAt,
	}
}

func toSummary(r Resume) SummaryResponse {
	return SummaryResponse{
		ID:        r.ID,
		Title:     r.Title(),
		Template:  r.TemplateID(),
		Status:    r.Status,
		Version:   r.Version,
		UpdatedAt: r.UpdatedAt,
	}
}
