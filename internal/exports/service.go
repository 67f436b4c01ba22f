package exports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"curriculum-backend/internal/resumes"
	"curriculum-backend/internal/shared/storage/object"
	"curriculum-backend/internal/shared/telemetry"
)

// ResumeReader loads the résumé an export is rendered from.
type ResumeReader interface {
	Get(ctx context.Context, userID, resumeID string) (resumes.Resume, error)
}

// Service renders PDFs into the object store and keeps a record of each one.
type Service struct {
	Repo    Repo
	Resumes ResumeReader
	Store   object.Store
	Now     func() time.Time
}

// Create renders the résumé with templateID (or its own template when empty), stores the
// file and records it.
func (s *Service) Create(ctx context.Context, userID, resumeID, templateID string) (Export, error) {
	if userID == "" || strings.TrimSpace(resumeID) == "" {
		return Export{}, ErrInvalidInput
	}
	if s.Repo == nil || s.Resumes == nil || s.Store == nil {
		return Export{}, errors.New("missing dependencies")
	}

	resume, err := s.Resumes.Get(ctx, userID, resumeID)
	if err != nil {
		switch {
		case errors.Is(err, resumes.ErrNotFound):
			return Export{}, ErrNotFound
		case errors.Is(err, resumes.ErrForbidden):
			return Export{}, ErrForbidden
		}
		return Export{}, err
	}

	templateID = strings.TrimSpace(templateID)
	if templateID == "" {
		templateID = resume.TemplateID()
	}
	art, err := resumes.RenderPDF(ctx, resume.Document, templateID)
	if err != nil {
		return Export{}, err
	}

	obj, err := s.Store.Put(ctx, userID, art.FileName, art.ContentType, bytes.NewReader(art.Bytes))
	if err != nil {
		return Export{}, fmt.Errorf("store export: %w", err)
	}

	export := Export{
		ID:         uuid.NewString(),
		UserID:     userID,
		ResumeID:   resume.ID,
		TemplateID: templateID,
		FileName:   art.FileName,
		StorageKey: obj.Key,
		MimeType:   art.ContentType,
		SizeBytes:  obj.Size,
		Pages:      art.Pages,
		CreatedAt:  s.now(),
	}
	if err := s.Repo.Create(ctx, export); err != nil {
		if delErr := s.Store.Delete(ctx, obj.Key); delErr != nil {
			telemetry.Warn("export.cleanup_failed", map[string]any{"storage_key": obj.Key, "error": delErr.Error()})
		}
		return Export{}, err
	}
	telemetry.Info("export.stored", map[string]any{
		"export_id": export.ID,
		"resume_id": export.ResumeID,
		"template":  export.TemplateID,
		"bytes":     export.SizeBytes,
	})
	return export, nil
}

// List returns the user's exports newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Export, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Open returns the export record and a reader over the stored file. The caller closes it.
func (s *Service) Open(ctx context.Context, userID, exportID string) (Export, io.ReadCloser, error) {
	if userID == "" || strings.TrimSpace(exportID) == "" {
		return Export{}, nil, ErrInvalidInput
	}
	export, err := s.Repo.GetByID(ctx, userID, exportID)
	if err != nil {
		return Export{}, nil, err
	}
	rc, err := s.Store.Open(ctx, export.StorageKey)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return Export{}, nil, ErrNotFound
		}
		return Export{}, nil, err
	}
	return export, rc, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
