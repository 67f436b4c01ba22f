package exports

import "time"

// ExportResponse is the outward-facing representation of a stored export.
type ExportResponse struct {
	ExportID   string    `json:"exportId"`
	ResumeID   string    `json:"resumeId"`
	TemplateID string    `json:"templateId"`
	FileName   string    `json:"fileName"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	Pages      int       `json:"pages"`
	CreatedAt  time.Time `json:"createdAt"`
}

type createRequest struct {
	Template string `json:"template"`
}

func toResponse(e Export) ExportResponse {
	return ExportResponse{
		ExportID:   e.ID,
		ResumeID:   e.ResumeID,
		TemplateID: e.TemplateID,
		FileName:   e.FileName,
		MimeType:   e.MimeType,
		SizeBytes:  e.SizeBytes,
		Pages:      e.Pages,
		CreatedAt:  e.CreatedAt,
	}
}
