package folder

import (
	"context"
	"time"
)

type ListFilter struct {
	IncludeDeleted bool
}

type Repository interface {
	List(ctx context.Context, userID string, filter ListFilter) ([]Folder, error)
	Get(ctx context.Context, userID, folderID string) (*Folder, error)
	Create(ctx context.Context, f *Folder) error
	Update(ctx context.Context, f *Folder) error
	// DeleteCascade removes the folder (hard) or tombstones it (soft) and, in
	// the same transaction, reassigns every note referencing it to the null
	// folder. The reassignment stamps the notes with now so they propagate to
	// other devices on their next sync.
	DeleteCascade(ctx context.Context, userID, folderID string, hard bool, now time.Time) error
}
