package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPGRepoCreateMapsUniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key"})

	repo := &PGRepo{DB: db}
	err = repo.Create(context.Background(), User{ID: "u-1", Email: "a@b.co", Username: "ab", Role: "user", CreatedAt: now, UpdatedAt: now})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestPGRepoGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT id, email").
		WithArgs("a@b.co").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByEmail(context.Background(), "a@b.co"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListBuildsFilters(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cols := []string{"id", "email", "username", "full_name", "picture_url", "role", "password_hash", "created_at", "updated_at"}
	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT count\(\*\) FROM users WHERE role = \$1 AND`).
		WithArgs("admin", "%ada%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT id, email, .* FROM users WHERE role = \$1 AND .* ORDER BY created_at DESC, id LIMIT \$3 OFFSET \$4`).
		WithArgs("admin", "%ada%", 20, 0).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("u-1", "ada@example.com", "ada", "Ada", "", "admin", "hash", now, now))

	repo := &PGRepo{DB: db}
	users, total, err := repo.List(context.Background(), ListFilter{Role: "admin", Search: " Ada "})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(users) != 1 || users[0].Username != "ada" {
		t.Fatalf("unexpected result total=%d users=%+v", total, users)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteManyBuildsPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec(`DELETE FROM users WHERE id IN \(\$1, \$2\)`).
		WithArgs("a", "b").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: db}
	n, err := repo.DeleteMany(context.Background(), []string{"a", "b"})
	if err != nil || n != 1 {
		t.Fatalf("DeleteMany: n=%d err=%v", n, err)
	}
}
