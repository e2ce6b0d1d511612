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
)

const folderColumns = `id, user_id, name, color,
	       created_at, updated_at, synced_at, is_deleted`

type FolderRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewFolderRepository(pool *pgxpool.Pool, log *slog.Logger) *FolderRepository {
	return &FolderRepository{
		pool: pool,
		log:  log.With("component", "folder_repository"),
	}
}

func (r *FolderRepository) List(ctx context.Context, userID string, filter folder.ListFilter) ([]folder.Folder, error) {
	query := `
		SELECT ` + folderColumns + `
		FROM folders
		WHERE user_id = $1`
	if !filter.IncludeDeleted {
		query += " AND is_deleted = FALSE"
	}
	query += " ORDER BY created_at"

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list folders", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	return scanFolders(rows)
}

func (r *FolderRepository) Get(ctx context.Context, userID, folderID string) (*folder.Folder, error) {
	const query = `
		SELECT ` + folderColumns + `
		FROM folders
		WHERE user_id = $1 AND id = $2`

	f, err := scanFolder(r.pool.QueryRow(ctx, query, userID, folderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, folder.ErrNotFound
		}
		r.log.Error("failed to get folder", "folder_id", folderID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return f, nil
}

func (r *FolderRepository) Create(ctx context.Context, f *folder.Folder) error {
	return insertFolder(ctx, r.pool, f)
}

func (r *FolderRepository) Update(ctx context.Context, f *folder.Folder) error {
	return updateFolder(ctx, r.pool, f)
}

// DeleteCascade reassigns the folder's notes to the null folder and removes
// (or tombstones) the folder itself in one transaction. Reassigned notes are
// stamped with now so they reach other devices as changes.
func (r *FolderRepository) DeleteCascade(ctx context.Context, userID, folderID string, hard bool, now time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := reassignFolderNotes(ctx, tx, userID, folderID, now); err != nil {
		return err
	}

	if hard {
		result, err := tx.Exec(ctx,
			`DELETE FROM folders WHERE user_id = $1 AND id = $2`, userID, folderID)
		if err != nil {
			r.log.Error("failed to delete folder", "folder_id", folderID, "user_id", userID, "error", err)
			return fmt.Errorf("delete folder: %w", err)
		}
		if result.RowsAffected() == 0 {
			return folder.ErrNotFound
		}
	} else {
		result, err := tx.Exec(ctx,
			`UPDATE folders SET is_deleted = TRUE, updated_at = $3, synced_at = $3
			 WHERE user_id = $1 AND id = $2`,
			userID, folderID, now)
		if err != nil {
			r.log.Error("failed to tombstone folder", "folder_id", folderID, "user_id", userID, "error", err)
			return fmt.Errorf("tombstone folder: %w", err)
		}
		if result.RowsAffected() == 0 {
			return folder.ErrNotFound
		}
	}

	return tx.Commit(ctx)
}

func insertFolder(ctx context.Context, q Querier, f *folder.Folder) error {
	const query = `
		INSERT INTO folders (id, user_id, name, color,
		                     created_at, updated_at, synced_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := q.Exec(ctx, query,
		f.ID, f.UserID, f.Name, f.Color,
		f.CreatedAt, f.UpdatedAt, f.SyncedAt, f.IsDeleted)
	if err != nil {
		return fmt.Errorf("insert folder: %w", err)
	}
	return nil
}

func updateFolder(ctx context.Context, q Querier, f *folder.Folder) error {
	const query = `
		UPDATE folders
		SET name = $3, color = $4, updated_at = $5, synced_at = $6, is_deleted = $7
		WHERE user_id = $1 AND id = $2`

	result, err := q.Exec(ctx, query,
		f.UserID, f.ID, f.Name, f.Color, f.UpdatedAt, f.SyncedAt, f.IsDeleted)
	if err != nil {
		return fmt.Errorf("update folder: %w", err)
	}
	if result.RowsAffected() == 0 {
		return folder.ErrNotFound
	}
	return nil
}

func reassignFolderNotes(ctx context.Context, q Querier, userID, folderID string, now time.Time) error {
	_, err := q.Exec(ctx,
		`UPDATE notes SET folder_id = NULL, updated_at = $3, synced_at = $3
		 WHERE user_id = $1 AND folder_id = $2`,
		userID, folderID, now)
	if err != nil {
		return fmt.Errorf("reassign folder notes: %w", err)
	}
	return nil
}

func scanFolders(rows pgx.Rows) ([]folder.Folder, error) {
	var folders []folder.Folder
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		folders = append(folders, *f)
	}
	return folders, rows.Err()
}

func scanFolder(row pgx.Row) (*folder.Folder, error) {
	var f folder.Folder
	err := row.Scan(
		&f.ID, &f.UserID, &f.Name, &f.Color,
		&f.CreatedAt, &f.UpdatedAt, &f.SyncedAt, &f.IsDeleted,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
