package note

import (
	"context"
)

// ListFilter narrows List results. Tombstones are excluded unless
// IncludeDeleted is set; FolderID filters by folder when non-nil.
type ListFilter struct {
	IncludeDeleted bool
	FolderID       *string
}

type Repository interface {
	List(ctx context.Context, userID string, filter ListFilter) ([]Note, error)
	Get(ctx context.Context, userID, noteID string) (*Note, error)
	Create(ctx context.Context, n *Note) error
	Update(ctx context.Context, n *Note) error
	// Delete physically removes the row. Soft deletion goes through Update.
	Delete(ctx context.Context, userID, noteID string) error
}
