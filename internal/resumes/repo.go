package resumes

import "context"

// Repo defines persistence operations for résumés.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error)
	// Update replaces the stored résumé if its version still equals expectedVersion.
	Update(ctx context.Context, resume Resume, expectedVersion int) error
	Delete(ctx context.Context, userID, resumeID string) error
}
