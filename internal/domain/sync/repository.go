package sync

import (
	"context"
	"time"

	"notesync/internal/domain/folder"
	"notesync/internal/domain/note"
)

// Repository is the storage surface the reconciler runs against. WithinTx
// executes fn against a transaction-bound Repository: every read and write fn
// performs commits or rolls back as one unit, which is what makes a
// reconciliation pass atomic per record kind.
type Repository interface {
	WithinTx(ctx context.Context, fn func(Repository) error) error

	GetNote(ctx context.Context, userID, noteID string) (*note.Note, error)
	InsertNote(ctx context.Context, n *note.Note) error
	UpdateNote(ctx context.Context, n *note.Note) error
	// NotesChangedSince returns notes with updated_at or synced_at after the
	// checkpoint. Both columns are compared: a server-side touch (cascade
	// reassignment, sync acceptance stamp) moves synced_at without changing
	// updated_at, and the client must still learn about it. A nil checkpoint
	// returns all of the owner's notes, tombstones included.
	NotesChangedSince(ctx context.Context, userID string, since *time.Time) ([]note.Note, error)

	GetFolder(ctx context.Context, userID, folderID string) (*folder.Folder, error)
	InsertFolder(ctx context.Context, f *folder.Folder) error
	UpdateFolder(ctx context.Context, f *folder.Folder) error
	FoldersChangedSince(ctx context.Context, userID string, since *time.Time) ([]folder.Folder, error)

	// ReassignFolderNotes moves every note referencing the folder to the null
	// folder, stamping updated_at and synced_at with now. Zero affected rows
	// is not an error.
	ReassignFolderNotes(ctx context.Context, userID, folderID string, now time.Time) error
}
