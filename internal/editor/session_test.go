package editor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"curriculum-backend/internal/client"
	"curriculum-backend/internal/resumes"
	"curriculum-backend/internal/shared/cache"
	"curriculum-backend/resume/forms"
	"curriculum-backend/resume/model"
	"curriculum-backend/resume/validate"
)

type stubStore struct {
	saved *model.Document
	err   error
	calls int
}

func (s *stubStore) Save(ctx context.Context, doc *model.Document) (*model.Document, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := doc.Clone()
	out.Version = doc.Version + 1
	s.saved = out
	return out, nil
}

func TestApplyReplacesSnapshot(t *testing.T) {
	sess := NewSession(nil, &stubStore{})
	before := sess.Document()

	err := sess.Apply(forms.Patch{Section: forms.SectionPersonal, Op: forms.OpSet, Field: "full_name", Value: "Ada Lovelace"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if before.PersonalDetails.FullName != "" {
		t.Fatalf("previous snapshot was mutated")
	}
	if sess.Document().PersonalDetails.FullName != "Ada Lovelace" {
		t.Fatalf("patch not applied")
	}
	if sess.View().ProfileInfo.FullName != "Ada Lovelace" {
		t.Fatalf("view not refreshed")
	}
}

func TestApplyRejectsUnknownSection(t *testing.T) {
	sess := NewSession(nil, nil)
	if err := sess.Apply(forms.Patch{Section: "hobbies", Op: forms.OpAdd}); !errors.Is(err, forms.ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}
}

func TestBufferedSkillSubmit(t *testing.T) {
	sess := NewSession(nil, nil)
	sess.Skills.Value = "Go"
	if err := sess.SubmitSkill(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := sess.Document().Skills; len(got) != 1 || got[0] != "Go" {
		t.Fatalf("skills = %q", got)
	}
	if sess.Skills.Value != "" {
		t.Fatalf("buffer not cleared")
	}
}

func TestPreviewScalesToWidth(t *testing.T) {
	sess := NewSession(model.New("CV", model.TemplateModern), nil)
	sess.SetWidth(397)
	html, err := sess.CurrentPreview()
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(html, "scale(0.5)") {
		t.Fatalf("expected half scale in preview")
	}
}

func TestSaveAdoptsVersion(t *testing.T) {
	store := &stubStore{}
	doc := model.New("CV", "")
	doc.Version = 3
	sess := NewSession(doc, store)
	_ = sess.Apply(forms.Patch{Section: forms.SectionDocument, Op: forms.OpSet, Field: "summary", Value: "hello"})

	if err := sess.Save(context.Background()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if sess.Document().Version != 4 {
		t.Fatalf("version = %d, want 4", sess.Document().Version)
	}
	if sess.Document().Summary != "hello" {
		t.Fatalf("content lost on save")
	}
	if store.saved.Version != 4 {
		t.Fatalf("store saw version %d", store.saved.Version)
	}
}

func TestSaveFailureKeepsDocument(t *testing.T) {
	store := &stubStore{err: resumes.ErrVersionConflict}
	doc := model.New("CV", "")
	sess := NewSession(doc, store)

	err := sess.Save(context.Background())
	var se *SaveError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SaveError, got %T", err)
	}
	if se.Status != http.StatusConflict || se.Message != MsgConflict {
		t.Fatalf("unexpected save error %+v", se)
	}
	if sess.Document() != doc {
		t.Fatalf("document replaced after failed save")
	}
}

func TestClassify(t *testing.T) {
	var fields validate.FieldErrors
	fields.Add("personal_details.email", "Email is invalid")

	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"service validation", &resumes.ValidationError{Fields: fields}, 422, "Email is invalid"},
		{"service validation empty", &resumes.ValidationError{}, 422, MsgValidation},
		{"service conflict", fmt.Errorf("save: %w", resumes.ErrVersionConflict), 409, MsgConflict},
		{"api validation", &client.APIError{Status: 422, Fields: fields}, 422, "Email is invalid"},
		{"api conflict", &client.APIError{Status: 409}, 409, MsgConflict},
		{"api server", &client.APIError{Status: 500}, 500, MsgSaveFailed},
		{"transport", context.DeadlineExceeded, 500, MsgSaveFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			se := classify(tc.err)
			if se.Status != tc.status || se.Message != tc.msg {
				t.Fatalf("got %d %q, want %d %q", se.Status, se.Message, tc.status, tc.msg)
			}
			if !errors.Is(se, tc.err) {
				t.Fatalf("cause not wrapped")
			}
		})
	}
}

func TestServiceStoreRoundTrip(t *testing.T) {
	svc := resumes.NewService(resumes.NewMemoryRepo(), cache.NewMemory(8), time.Minute)
	ctx := context.Background()
	res, err := svc.Create(ctx, "u1", "CV", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	sess := NewSession(res.Document, ServiceStore{Svc: svc, UserID: "u1", ResumeID: res.ID})
	_ = sess.Apply(forms.Patch{Section: forms.SectionPersonal, Op: forms.OpSet, Field: "full_name", Value: "Ada"})
	if err := sess.Save(ctx); err != nil {
		t.Fatalf("first save: %v", err)
	}
	_ = sess.Apply(forms.Patch{Section: forms.SectionDocument, Op: forms.OpSet, Field: "summary", Value: "again"})
	if err := sess.Save(ctx); err != nil {
		t.Fatalf("second save: %v", err)
	}

	stored, _ := svc.Get(ctx, "u1", res.ID)
	if stored.Version != 3 || stored.Document.Summary != "again" {
		t.Fatalf("stored v%d %q", stored.Version, stored.Document.Summary)
	}

	stale := NewSession(res.Document, ServiceStore{Svc: svc, UserID: "u1", ResumeID: res.ID})
	var se *SaveError
	if err := stale.Save(ctx); !errors.As(err, &se) || se.Status != http.StatusConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestExportUsesSelectedTemplate(t *testing.T) {
	doc := model.New("CV", model.TemplateProfessional)
	doc.PersonalDetails.FullName = "Ada Lovelace"
	sess := NewSession(doc, nil)
	art, err := sess.Export(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if art.FileName != "Ada Lovelace.pdf" || art.Pages < 1 {
		t.Fatalf("unexpected artifact %s %d", art.FileName, art.Pages)
	}
}
