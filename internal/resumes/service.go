package resumes

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"curriculum-backend/internal/shared/cache"
	"curriculum-backend/internal/shared/metrics"
	"curriculum-backend/internal/shared/telemetry"
	"curriculum-backend/resume/export"
	"curriculum-backend/resume/model"
	"curriculum-backend/resume/render"
	"curriculum-backend/resume/viewmodel"
	"curriculum-backend/resume/wire"
)

const (
	defaultTitle     = "Untitled Resume"
	copySuffix       = " (Copy)"
	defaultCacheTTL  = 10 * time.Minute
	maxPreviewWidth  = 4096
	previewKeyPrefix = "preview:"
)

// Service contains business logic for résumés.
type Service struct {
	Repo     Repo
	Cache    cache.Cache
	CacheTTL time.Duration
	Now      func() time.Time
}

// NewService constructs a Service. A nil cache disables preview caching.
func NewService(repo Repo, c cache.Cache, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Service{Repo: repo, Cache: c, CacheTTL: ttl}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Create stores a blank draft. An empty template selects the default one.
func (s *Service) Create(ctx context.Context, userID, title, template string) (Resume, error) {
	if userID == "" {
		return Resume{}, ErrInvalidInput
	}
	template = strings.TrimSpace(template)
	if template == "" {
		template = model.DefaultTemplate
	}
	if !model.IsKnownTemplate(template) {
		return Resume{}, fmt.Errorf("%w: unknown template %q", ErrInvalidInput, template)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultTitle
	}

	now := s.now()
	resume := Resume{
		ID:        uuid.NewString(),
		UserID:    userID,
		Status:    StatusDraft,
		Document:  model.New(title, template),
		Version:   model.DefaultVersion,
		CreatedAt: now,
		UpdatedAt: now,
	}
	resume.syncDocument()
	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	telemetry.Info("resume.created", map[string]any{"resume_id": resume.ID, "user_id": userID, "template": template})
	return resume, nil
}

// Get returns one résumé owned by userID.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	if userID == "" || strings.TrimSpace(resumeID) == "" {
		return Resume{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// List returns the user's résumés, most recently updated first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Save replaces the document with a raw wire payload. The body is checked against the
// payload schema first; a version other than the stored one is rejected with
// ErrVersionConflict and leaves the stored document untouched.
func (s *Service) Save(ctx context.Context, userID, resumeID string, body []byte) (Resume, error) {
	fields, err := wire.Validate(body)
	if err != nil {
		return Resume{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(fields) > 0 {
		return Resume{}, &ValidationError{Fields: fields}
	}
	var payload wire.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return Resume{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.save(ctx, userID, resumeID, payload)
}

// SaveDocument serializes doc through the wire rules and saves it like a PUT body.
func (s *Service) SaveDocument(ctx context.Context, userID, resumeID string, doc *model.Document) (Resume, error) {
	body, err := json.Marshal(wire.ToWirePayload(doc))
	if err != nil {
		return Resume{}, err
	}
	return s.Save(ctx, userID, resumeID, body)
}

func (s *Service) save(ctx context.Context, userID, resumeID string, payload wire.Payload) (Resume, error) {
	current, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, err
	}
	if payload.Version != current.Version {
		metrics.IncVersionConflict()
		telemetry.Warn("resume.version_conflict", map[string]any{
			"resume_id": resumeID,
			"stored":    current.Version,
			"received":  payload.Version,
		})
		return Resume{}, ErrVersionConflict
	}

	updated := current
	updated.Document = payload.Document()
	updated.Version = current.Version + 1
	updated.UpdatedAt = s.now()
	updated.syncDocument()
	if err := s.Repo.Update(ctx, updated, current.Version); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			metrics.IncVersionConflict()
		}
		return Resume{}, err
	}
	metrics.IncResumeSaved()
	return updated, nil
}

// Delete removes a résumé.
func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	if userID == "" || strings.TrimSpace(resumeID) == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, userID, resumeID)
}

// Publish marks a résumé as published. The version is left alone.
func (s *Service) Publish(ctx context.Context, userID, resumeID string) (Resume, error) {
	return s.setStatus(ctx, userID, resumeID, StatusPublished)
}

// Draft moves a résumé back to draft.
func (s *Service) Draft(ctx context.Context, userID, resumeID string) (Resume, error) {
	return s.setStatus(ctx, userID, resumeID, StatusDraft)
}

func (s *Service) setStatus(ctx context.Context, userID, resumeID, status string) (Resume, error) {
	current, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, err
	}
	now := s.now()
	updated := current
	updated.Status = status
	updated.UpdatedAt = now
	if status == StatusPublished {
		updated.PublishedAt = &now
	} else {
		updated.PublishedAt = nil
	}
	if err := s.Repo.Update(ctx, updated, current.Version); err != nil {
		return Resume{}, err
	}
	return updated, nil
}

// Duplicate copies a résumé into a new draft at version 1.
func (s *Service) Duplicate(ctx context.Context, userID, resumeID string) (Resume, error) {
	source, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, err
	}
	now := s.now()
	dup := Resume{
		ID:        uuid.NewString(),
		UserID:    userID,
		Status:    StatusDraft,
		Document:  source.Document.Clone(),
		Version:   model.DefaultVersion,
		CreatedAt: now,
		UpdatedAt: now,
	}
	title := strings.TrimSpace(source.Title())
	if title == "" {
		title = defaultTitle
	}
	dup.Document.Title = title + copySuffix
	dup.syncDocument()
	if err := s.Repo.Create(ctx, dup); err != nil {
		return Resume{}, err
	}
	telemetry.Info("resume.duplicated", map[string]any{"resume_id": dup.ID, "source_id": source.ID, "user_id": userID})
	return dup, nil
}

// Preview renders the HTML preview. An unknown or empty template renders with the document's
// own template, then with the default one. Rendered pages are cached by content.
func (s *Service) Preview(ctx context.Context, userID, resumeID, templateID string, width float64) (string, error) {
	resume, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return "", err
	}
	return s.RenderPreview(ctx, resume.Document, templateID, width)
}

// RenderPreview renders doc without loading it from the store.
func (s *Service) RenderPreview(ctx context.Context, doc *model.Document, templateID string, width float64) (string, error) {
	if width < 0 || width > maxPreviewWidth {
		return "", fmt.Errorf("%w: width out of range", ErrInvalidInput)
	}
	templateID = strings.TrimSpace(templateID)
	if templateID == "" {
		templateID = doc.TemplateID()
	}
	tpl := render.Resolve(templateID)

	key, err := previewKey(doc, tpl.ID, width)
	if err != nil {
		return "", err
	}
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, key); err == nil {
			metrics.IncPreviewCache(true)
			return string(cached), nil
		} else if !errors.Is(err, cache.ErrMiss) {
			telemetry.Warn("preview.cache_get_failed", map[string]any{"error": err.Error()})
		}
		metrics.IncPreviewCache(false)
	}

	out, err := tpl.HTML(viewmodel.Project(doc), render.HTMLOptions{ContainerWidth: width, Title: doc.Title})
	if err != nil {
		return "", err
	}
	metrics.IncPreviewRendered()
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, []byte(out), s.CacheTTL); err != nil {
			telemetry.Warn("preview.cache_set_failed", map[string]any{"error": err.Error()})
		}
	}
	return out, nil
}

// Export renders the PDF for a stored résumé. An empty template uses the document's own;
// an unknown one fails with export.ErrUnknownTemplate.
func (s *Service) Export(ctx context.Context, userID, resumeID, templateID string) (export.Artifact, error) {
	resume, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return export.Artifact{}, err
	}
	return RenderPDF(ctx, resume.Document, templateID)
}

// RenderPDF exports doc and records export metrics.
func RenderPDF(ctx context.Context, doc *model.Document, templateID string) (export.Artifact, error) {
	templateID = strings.TrimSpace(templateID)
	if templateID == "" {
		templateID = doc.TemplateID()
	}
	metrics.IncExport()
	start := time.Now()
	art, err := export.PDF(ctx, templateID, viewmodel.Project(doc))
	metrics.ObserveExportDurationMs(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.IncExportFailed()
		return export.Artifact{}, err
	}
	return art, nil
}

func previewKey(doc *model.Document, templateID string, width float64) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write(raw)
	h.Write([]byte{0})
	h.Write([]byte(templateID))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatFloat(width, 'f', -1, 64)))
	return previewKeyPrefix + hex.EncodeToString(h.Sum(nil)), nil
}
