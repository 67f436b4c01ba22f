// Package editor holds one résumé being edited: it applies form patches, renders live previews
// and saves through a Store.
package editor

import (
	"context"
	"errors"

	"curriculum-backend/internal/resumes"
	"curriculum-backend/resume/export"
	"curriculum-backend/resume/forms"
	"curriculum-backend/resume/model"
	"curriculum-backend/resume/render"
	"curriculum-backend/resume/validate"
	"curriculum-backend/resume/viewmodel"
)

// Store persists a document and returns the stored copy.
type Store interface {
	Save(ctx context.Context, doc *model.Document) (*model.Document, error)
}

// Session owns one document. It is not safe for concurrent use.
type Session struct {
	doc       *model.Document
	store     Store
	projector viewmodel.Projector
	width     float64

	Skills    forms.SkillInput
	Languages forms.LanguageInput
}

// NewSession starts editing doc. A nil doc starts from a blank document.
func NewSession(doc *model.Document, store Store) *Session {
	if doc == nil {
		doc = model.New("", "")
	}
	return &Session{
		doc:       doc,
		store:     store,
		Languages: forms.NewLanguageInput(),
	}
}

// Document returns the current snapshot. Snapshots are replaced, never mutated.
func (s *Session) Document() *model.Document {
	return s.doc
}

// Apply runs one patch through the form reducer.
func (s *Session) Apply(p forms.Patch) error {
	next, err := forms.Apply(s.doc, p)
	if err != nil {
		return err
	}
	s.doc = next
	return nil
}

// SubmitSkill adds the buffered skill.
func (s *Session) SubmitSkill() error {
	next, err := s.Skills.Submit(s.doc)
	if err != nil {
		return err
	}
	s.doc = next
	return nil
}

// SubmitLanguage adds the buffered language.
func (s *Session) SubmitLanguage() error {
	next, err := s.Languages.Submit(s.doc)
	if err != nil {
		return err
	}
	s.doc = next
	return nil
}

// View returns the projected view model, recomputed only after the document changes.
func (s *Session) View() *viewmodel.Resume {
	return s.projector.Project(s.doc)
}

// SetWidth sets the preview container width in CSS pixels. Zero means natural width.
func (s *Session) SetWidth(width float64) {
	if width < 0 {
		width = 0
	}
	s.width = width
}

// Preview renders the HTML preview at width. Unknown templates render as the default one.
func (s *Session) Preview(width float64) (string, error) {
	return render.RenderHTML(s.doc.TemplateID(), s.View(), render.HTMLOptions{
		ContainerWidth: width,
		Title:          s.doc.Title,
	})
}

// CurrentPreview renders at the width last set with SetWidth.
func (s *Session) CurrentPreview() (string, error) {
	return s.Preview(s.width)
}

// FieldErrors reports the personal form problems. They never block a patch or a save.
func (s *Session) FieldErrors() validate.FieldErrors {
	return forms.ValidatePersonal(s.doc.PersonalDetails, s.doc.Summary)
}

// Export renders the PDF for the selected template.
func (s *Session) Export(ctx context.Context) (export.Artifact, error) {
	return resumes.RenderPDF(ctx, s.doc, "")
}

// Save persists the current document. On success the session adopts the stored version and
// keeps its own content; on failure nothing changes and the error is a *SaveError.
func (s *Session) Save(ctx context.Context) error {
	if s.store == nil {
		return &SaveError{Message: MsgSaveFailed, Err: errors.New("no store configured")}
	}
	saved, err := s.store.Save(ctx, s.doc)
	if err != nil {
		return classify(err)
	}
	next := s.doc.Clone()
	next.Version = saved.Version
	if saved.ID != "" {
		next.ID = saved.ID
	}
	s.doc = next
	return nil
}
