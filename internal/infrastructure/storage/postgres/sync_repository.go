package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"notesync/internal/domain/folder"
	"notesync/internal/domain/note"
	"notesync/internal/domain/sync"
)

// SyncRepository runs reconciliation reads and writes. Outside WithinTx it
// queries the pool directly; WithinTx hands the callback a child bound to an
// open transaction, so a whole reconciliation pass commits or rolls back as
// one unit.
type SyncRepository struct {
	pool *pgxpool.Pool
	q    Querier
	log  *slog.Logger
}

func NewSyncRepository(pool *pgxpool.Pool, log *slog.Logger) *SyncRepository {
	return &SyncRepository{
		pool: pool,
		q:    pool,
		log:  log.With("component", "sync_repository"),
	}
}

func (r *SyncRepository) WithinTx(ctx context.Context, fn func(sync.Repository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	child := &SyncRepository{pool: r.pool, q: tx, log: r.log}
	if err := fn(child); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *SyncRepository) GetNote(ctx context.Context, userID, noteID string) (*note.Note, error) {
	const query = `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE user_id = $1 AND id = $2`

	n, err := scanNote(r.q.QueryRow(ctx, query, userID, noteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, note.ErrNotFound
		}
		r.log.Error("failed to get note", "note_id", noteID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

func (r *SyncRepository) InsertNote(ctx context.Context, n *note.Note) error {
	return insertNote(ctx, r.q, n)
}

func (r *SyncRepository) UpdateNote(ctx context.Context, n *note.Note) error {
	return updateNote(ctx, r.q, n)
}

// NotesChangedSince returns every note, tombstones included, the server has
// touched after the checkpoint. A nil checkpoint means full state.
func (r *SyncRepository) NotesChangedSince(ctx context.Context, userID string, since *time.Time) ([]note.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE user_id = $1`
	args := []any{userID}

	if since != nil {
		query += ` AND (updated_at > $2 OR synced_at > $2)`
		args = append(args, *since)
	}
	query += ` ORDER BY updated_at`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to query changed notes", "user_id", userID, "error", err)
		return nil, fmt.Errorf("notes changed since: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

func (r *SyncRepository) GetFolder(ctx context.Context, userID, folderID string) (*folder.Folder, error) {
	const query = `
		SELECT ` + folderColumns + `
		FROM folders
		WHERE user_id = $1 AND id = $2`

	f, err := scanFolder(r.q.QueryRow(ctx, query, userID, folderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, folder.ErrNotFound
		}
		r.log.Error("failed to get folder", "folder_id", folderID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return f, nil
}

func (r *SyncRepository) InsertFolder(ctx context.Context, f *folder.Folder) error {
	return insertFolder(ctx, r.q, f)
}

func (r *SyncRepository) UpdateFolder(ctx context.Context, f *folder.Folder) error {
	return updateFolder(ctx, r.q, f)
}

func (r *SyncRepository) FoldersChangedSince(ctx context.Context, userID string, since *time.Time) ([]folder.Folder, error) {
	query := `
		SELECT ` + folderColumns + `
		FROM folders
		WHERE user_id = $1`
	args := []any{userID}

	if since != nil {
		query += ` AND (updated_at > $2 OR synced_at > $2)`
		args = append(args, *since)
	}
	query += ` ORDER BY updated_at`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to query changed folders", "user_id", userID, "error", err)
		return nil, fmt.Errorf("folders changed since: %w", err)
	}
	defer rows.Close()

	return scanFolders(rows)
}

func (r *SyncRepository) ReassignFolderNotes(ctx context.Context, userID, folderID string, now time.Time) error {
	return reassignFolderNotes(ctx, r.q, userID, folderID, now)
}
