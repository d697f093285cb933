package exports

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores exports in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]CVExport
	byUser map[string][]CVExport
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]CVExport),
		byUser: make(map[string][]CVExport),
	}
}

// Create stores the export record.
func (r *MemoryRepo) Create(ctx context.Context, export CVExport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[export.ID] = export
	r.byUser[export.UserID] = append(r.byUser[export.UserID], export)
	return nil
}

// GetByID returns an export by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, exportID string) (CVExport, error) {
	if err := ctx.Err(); err != nil {
		return CVExport{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	export, ok := r.byID[exportID]
	if !ok {
		return CVExport{}, ErrNotFound
	}
	if export.UserID != userID {
		return CVExport{}, ErrForbidden
	}
	return export, nil
}

// ListByUser returns exports for a user, newest first, with limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]CVExport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	userExports := r.byUser[userID]
	r.mu.RUnlock()

	if len(userExports) == 0 || offset >= len(userExports) {
		return []CVExport{}, nil
	}

	list := make([]CVExport, len(userExports))
	copy(list, userExports)
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end], nil
}

var _ Repo = (*MemoryRepo)(nil)
