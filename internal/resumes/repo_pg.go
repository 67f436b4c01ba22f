package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"curriculum-backend/resume/model"
)

// PGRepo implements Repo using Postgres. The document is stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, owner_id, status, version, document, published_at, created_at, updated_at`

// Create inserts a résumé.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	doc, err := marshalDocument(resume)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO resumes (
    id, owner_id, title, template, status, version, document, published_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.Title(),
		resume.TemplateID(),
		resume.Status,
		resume.Version,
		doc,
		resume.PublishedAt,
		resume.CreatedAt,
		resume.UpdatedAt,
	)
	return err
}

// GetByID returns a résumé by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	query := `
SELECT ` + resumeColumns + `
FROM resumes
WHERE id = $1
LIMIT 1`
	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, resumeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if resume.UserID != userID {
		return Resume{}, ErrForbidden
	}
	return resume, nil
}

// ListByUser lists résumés ordered by last update.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `
SELECT ` + resumeColumns + `
FROM resumes
WHERE owner_id = $1
ORDER BY updated_at DESC, id
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// Update writes the résumé only if the stored version is still expectedVersion.
func (r *PGRepo) Update(ctx context.Context, resume Resume, expectedVersion int) error {
	doc, err := marshalDocument(resume)
	if err != nil {
		return err
	}
	const query = `
UPDATE resumes
SET title = $3, template = $4, status = $5, version = $6, document = $7, published_at = $8, updated_at = $9
WHERE id = $1 AND owner_id = $2 AND version = $10`
	res, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.Title(),
		resume.TemplateID(),
		resume.Status,
		resume.Version,
		doc,
		resume.PublishedAt,
		resume.UpdatedAt,
		expectedVersion,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	// Nothing matched: tell a missing row apart from a stale version.
	if _, err := r.GetByID(ctx, resume.UserID, resume.ID); err != nil {
		return err
	}
	return ErrVersionConflict
}

// Delete removes a résumé owned by userID.
func (r *PGRepo) Delete(ctx context.Context, userID, resumeID string) error {
	const query = `DELETE FROM resumes WHERE id = $1 AND owner_id = $2`
	res, err := r.DB.ExecContext(ctx, query, resumeID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, userID, resumeID); err != nil {
			return err
		}
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var (
		resume    Resume
		raw       []byte
		published sql.NullTime
	)
	if err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Status,
		&resume.Version,
		&raw,
		&published,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}
	doc, err := model.Decode(raw)
	if err != nil {
		return Resume{}, fmt.Errorf("decode resume %s: %w", resume.ID, err)
	}
	resume.Document = doc
	if published.Valid {
		at := published.Time
		resume.PublishedAt = &at
	}
	resume.syncDocument()
	return resume, nil
}

func marshalDocument(resume Resume) ([]byte, error) {
	resume.Document = resume.Document.Clone()
	resume.syncDocument()
	raw, err := json.Marshal(resume.Document)
	if err != nil {
		return nil, fmt.Errorf("encode resume %s: %w", resume.ID, err)
	}
	return raw, nil
}

var _ Repo = (*PGRepo)(nil)
