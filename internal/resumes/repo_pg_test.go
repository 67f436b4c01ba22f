package resumes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"curriculum-backend/resume/model"
)

var pgColumns = []string{"id", "owner_id", "status", "version", "document", "published_at", "created_at", "updated_at"}

func TestPGRepoCreateStoresDocumentAsJSON(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	resume := Resume{
		ID:        "r-1",
		UserID:    "u-1",
		Status:    StatusDraft,
		Document:  model.New("CV", model.TemplateModern),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs(
			"r-1",
			"u-1",
			"CV",
			model.TemplateModern,
			StatusDraft,
			1,
			sqlmock.AnyArg(), // document
			nil,              // published_at
			now,
			now,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDDecodesDocument(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	doc := []byte(`{"title":"CV","template":"professional","skills":["Go"],"projects":[{"name":"p","tech_stack":["Go","SQL"]}]}`)
	mock.ExpectQuery("SELECT id, owner_id").
		WithArgs("r-1").
		WillReturnRows(sqlmock.NewRows(pgColumns).AddRow("r-1", "u-1", StatusPublished, 3, doc, now, now, now))

	repo := &PGRepo{DB: db}
	resume, err := repo.GetByID(context.Background(), "u-1", "r-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if resume.Document.ID != "r-1" || resume.Document.Version != 3 {
		t.Fatalf("document meta not synced: %q v%d", resume.Document.ID, resume.Document.Version)
	}
	if resume.TemplateID() != model.TemplateProfessional || resume.PublishedAt == nil {
		t.Fatalf("unexpected resume %+v", resume)
	}
	if got := resume.Document.Projects[0].TechStack.String(); got != "Go, SQL" {
		t.Fatalf("tech stack = %q", got)
	}
}

func TestPGRepoGetByIDOwnership(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, owner_id").
		WithArgs("r-1").
		WillReturnRows(sqlmock.NewRows(pgColumns).AddRow("r-1", "someone-else", StatusDraft, 1, []byte(`{}`), nil, now, now))
	mock.ExpectQuery("SELECT id, owner_id").
		WithArgs("r-2").
		WillReturnRows(sqlmock.NewRows(pgColumns))

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "u-1", "r-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "u-1", "r-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateStaleVersion(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	resume := Resume{
		ID:        "r-1",
		UserID:    "u-1",
		Status:    StatusDraft,
		Document:  model.New("CV", ""),
		Version:   3,
		UpdatedAt: now,
	}

	mock.ExpectExec("UPDATE resumes").
		WithArgs("r-1", "u-1", "CV", model.TemplateClassic, StatusDraft, 3, sqlmock.AnyArg(), nil, now, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, owner_id").
		WithArgs("r-1").
		WillReturnRows(sqlmock.NewRows(pgColumns).AddRow("r-1", "u-1", StatusDraft, 5, []byte(`{}`), nil, now, now))

	repo := &PGRepo{DB: db}
	if err := repo.Update(context.Background(), resume, 2); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListDefaultsLimit(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT id, owner_id").
		WithArgs("u-1", 20, 0).
		WillReturnRows(sqlmock.NewRows(pgColumns))

	repo := &PGRepo{DB: db}
	out, err := repo.ListByUser(context.Background(), "u-1", 0, -5)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", out)
	}
}
