package editor

import (
	"context"

	"curriculum-backend/internal/client"
	"curriculum-backend/internal/resumes"
	"curriculum-backend/resume/model"
	"curriculum-backend/resume/wire"
)

// ServiceStore saves in-process through the résumé service.
type ServiceStore struct {
	Svc      *resumes.Service
	UserID   string
	ResumeID string
}

func (s ServiceStore) Save(ctx context.Context, doc *model.Document) (*model.Document, error) {
	saved, err := s.Svc.SaveDocument(ctx, s.UserID, s.ResumeID, doc)
	if err != nil {
		return nil, err
	}
	return saved.Document, nil
}

// ClientStore saves through the REST API.
type ClientStore struct {
	Client   *client.Client
	ResumeID string
}

func (s ClientStore) Save(ctx context.Context, doc *model.Document) (*model.Document, error) {
	return s.Client.SaveResume(ctx, s.ResumeID, wire.ToWirePayload(doc))
}
