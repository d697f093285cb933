package exports

import "time"

// CVExport represents a stored CV artifact produced by an export job.
type CVExport struct {
	ID         string
	UserID     string
	SubjectID  string
	Template   string
	Format     string
	FileName   string
	StorageKey string
	MimeType   string
	SizeBytes  int64
	CreatedAt  time.Time
	DeletedAt  *time.Time
}
