package exports

import "time"

// Export is a rendered PDF kept in the object store.
type Export struct {
	ID         string
	UserID     string
	ResumeID   string
	TemplateID string
	FileName   string
	StorageKey string
	MimeType   string
	SizeBytes  int64
	Pages      int
	CreatedAt  time.Time
}
