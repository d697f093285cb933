package exports

import "context"

// Repo defines persistence operations for CV exports.
type Repo interface {
	Create(ctx context.Context, export CVExport) error
	GetByID(ctx context.Context, userID, exportID string) (CVExport, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]CVExport, error)
}
