package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores résumés in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Resume)}
}

// Create stores a copy of the résumé.
func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[resume.ID]; exists {
		return ErrInvalidInput
	}
	r.byID[resume.ID] = detach(resume)
	return nil
}

// GetByID returns the résumé if it belongs to userID.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.byID[resumeID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	if resume.UserID != userID {
		return Resume{}, ErrForbidden
	}
	return detach(resume), nil
}

// ListByUser returns the user's résumés, most recently updated first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	var owned []Resume
	for _, resume := range r.byID {
		if resume.UserID == userID {
			owned = append(owned, detach(resume))
		}
	}
	r.mu.RUnlock()

	if offset >= len(owned) {
		return []Resume{}, nil
	}
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].UpdatedAt.Equal(owned[j].UpdatedAt) {
			return owned[i].ID < owned[j].ID
		}
		return owned[i].UpdatedAt.After(owned[j].UpdatedAt)
	})

	end := len(owned)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return owned[offset:end], nil
}

// Update swaps in the résumé when the stored version matches expectedVersion.
func (r *MemoryRepo) Update(ctx context.Context, resume Resume, expectedVersion int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[resume.ID]
	if !ok {
		return ErrNotFound
	}
	if current.UserID != resume.UserID {
		return ErrForbidden
	}
	if current.Version != expectedVersion {
		return ErrVersionConflict
	}
	r.byID[resume.ID] = detach(resume)
	return nil
}

// Delete removes the résumé.
func (r *MemoryRepo) Delete(ctx context.Context, userID, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[resumeID]
	if !ok {
		return ErrNotFound
	}
	if current.UserID != userID {
		return ErrForbidden
	}
	delete(r.byID, resumeID)
	return nil
}

// detach copies the document so callers never share it with the store.
func detach(resume Resume) Resume {
	resume.Document = resume.Document.Clone()
	if resume.PublishedAt != nil {
		at := *resume.PublishedAt
		resume.PublishedAt = &at
	}
	resume.syncDocument()
	return resume
}

var _ Repo = (*MemoryRepo)(nil)
