package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"notesync/internal/domain/note"
)

const noteColumns = `id, user_id, folder_id, title, content, audio_path,
	       date, created_at, updated_at, synced_at, is_deleted`

type NoteRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewNoteRepository(pool *pgxpool.Pool, log *slog.Logger) *NoteRepository {
	return &NoteRepository{
		pool: pool,
		log:  log.With("component", "note_repository"),
	}
}

func (r *NoteRepository) List(ctx context.Context, userID string, filter note.ListFilter) ([]note.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE user_id = $1`

	args := []any{userID}
	argIndex := 2

	if !filter.IncludeDeleted {
		query += " AND is_deleted = FALSE"
	}
	if filter.FolderID != nil {
		query += fmt.Sprintf(" AND folder_id = $%d", argIndex)
		args = append(args, *filter.FolderID)
		argIndex++
	}

	query += " ORDER BY date DESC, created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list notes", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

func (r *NoteRepository) Get(ctx context.Context, userID, noteID string) (*note.Note, error) {
	const query = `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE user_id = $1 AND id = $2`

	n, err := scanNote(r.pool.QueryRow(ctx, query, userID, noteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, note.ErrNotFound
		}
		r.log.Error("failed to get note", "note_id", noteID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

func (r *NoteRepository) Create(ctx context.Context, n *note.Note) error {
	return insertNote(ctx, r.pool, n)
}

func (r *NoteRepository) Update(ctx context.Context, n *note.Note) error {
	return updateNote(ctx, r.pool, n)
}

func (r *NoteRepository) Delete(ctx context.Context, userID, noteID string) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM notes WHERE user_id = $1 AND id = $2`, userID, noteID)
	if err != nil {
		r.log.Error("failed to delete note", "note_id", noteID, "user_id", userID, "error", err)
		return fmt.Errorf("delete note: %w", err)
	}
	if result.RowsAffected() == 0 {
		return note.ErrNotFound
	}
	return nil
}

// insertNote and updateNote take a Querier so the sync repository can reuse
// them inside its transactions.

func insertNote(ctx context.Context, q Querier, n *note.Note) error {
	const query = `
		INSERT INTO notes (id, user_id, folder_id, title, content, audio_path,
		                   date, created_at, updated_at, synced_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := q.Exec(ctx, query,
		n.ID, n.UserID, n.FolderID, n.Title, n.Content, n.AudioPath,
		n.Date, n.CreatedAt, n.UpdatedAt, n.SyncedAt, n.IsDeleted)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func updateNote(ctx context.Context, q Querier, n *note.Note) error {
	const query = `
		UPDATE notes
		SET folder_id = $3, title = $4, content = $5, audio_path = $6,
		    date = $7, updated_at = $8, synced_at = $9, is_deleted = $10
		WHERE user_id = $1 AND id = $2`

	result, err := q.Exec(ctx, query,
		n.UserID, n.ID, n.FolderID, n.Title, n.Content, n.AudioPath,
		n.Date, n.UpdatedAt, n.SyncedAt, n.IsDeleted)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if result.RowsAffected() == 0 {
		return note.ErrNotFound
	}
	return nil
}

func scanNotes(rows pgx.Rows) ([]note.Note, error) {
	var notes []note.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

func scanNote(row pgx.Row) (*note.Note, error) {
	var n note.Note
	err := row.Scan(
		&n.ID, &n.UserID, &n.FolderID, &n.Title, &n.Content, &n.AudioPath,
		&n.Date, &n.CreatedAt, &n.UpdatedAt, &n.SyncedAt, &n.IsDeleted,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
