package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"notesync/internal/domain/folder"
	"notesync/internal/domain/note"
)

type Servicer interface {
	Sync(ctx context.Context, userID string, req Request) (*Response, error)
}

// Service reconciles client-asserted record states with server state using
// last-write-wins on updated_at, strict inequality, ties favoring the server.
// Each record kind is processed in its own transaction; reconciliation is
// safe to re-run with the same batch, so a failed call is retried wholesale.
type Service struct {
	repo        Repository
	attachments note.AttachmentStore
	indexer     note.Indexer
	log         *slog.Logger

	now func() time.Time
}

func NewService(repo Repository, attachments note.AttachmentStore, indexer note.Indexer, log *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		attachments: attachments,
		indexer:     indexer,
		log:         log.With("component", "sync_service"),
		now:         time.Now,
	}
}

// Sync runs one reconciliation pass per record kind and assembles the
// combined delta. Folders go first so a batch that creates a folder and a
// note inside it lands in a single cycle. If the folder pass fails nothing is
// returned; if the note pass fails after the folder pass committed, the
// folder pass stands and the client retries the whole call.
func (s *Service) Sync(ctx context.Context, userID string, req Request) (*Response, error) {
	folders, rejectedFolders, err := s.reconcileFolders(ctx, userID, req.Folders, req.LastSyncAt)
	if err != nil {
		s.log.Error("folder pass failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("reconcile folders: %w", err)
	}

	notes, rejectedNotes, err := s.reconcileNotes(ctx, userID, req.Notes, req.LastSyncAt)
	if err != nil {
		s.log.Error("note pass failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("reconcile notes: %w", err)
	}

	s.log.Info("sync completed",
		"user_id", userID,
		"client_notes", len(req.Notes),
		"client_folders", len(req.Folders),
		"delta_notes", len(notes),
		"delta_folders", len(folders),
		"rejected", len(rejectedNotes)+len(rejectedFolders),
	)

	return &Response{
		Notes:         notes,
		Folders:       folders,
		Rejected:      append(rejectedFolders, rejectedNotes...),
		SyncTimestamp: s.now().UTC(),
	}, nil
}

func (s *Service) reconcileNotes(ctx context.Context, userID string, batch []NoteState, checkpoint *time.Time) ([]note.Note, []RejectedEntry, error) {
	syncedAt := s.now().UTC()

	delta := []note.Note{}
	var rejected []RejectedEntry
	var cleanup []string
	var toIndex []note.Note

	err := s.repo.WithinTx(ctx, func(r Repository) error {
		for i, state := range batch {
			if err := state.validate(); err != nil {
				rejected = append(rejected, RejectedEntry{Kind: "note", Index: i, ID: state.ID, Reason: err.Error()})
				continue
			}

			existing, err := r.GetNote(ctx, userID, state.ID)
			if err != nil && !errors.Is(err, note.ErrNotFound) {
				return err
			}

			if existing == nil {
				// Deleting something the server never had is a no-op: a
				// cancelled offline creation must not leave a tombstone row.
				if state.IsDeleted {
					continue
				}
				n := state.toNote(userID, syncedAt)
				if err := r.InsertNote(ctx, n); err != nil {
					return err
				}
				if n.Title != "" || n.Content != "" {
					toIndex = append(toIndex, *n)
				}
				continue
			}

			// Strict inequality: ties favor the server.
			if !state.UpdatedAt.After(existing.UpdatedAt) {
				continue
			}

			n := state.toNote(userID, syncedAt)
			n.CreatedAt = existing.CreatedAt
			if n.IsDeleted {
				if existing.AudioPath != nil {
					cleanup = append(cleanup, *existing.AudioPath)
				}
				n.AudioPath = nil
			}
			if err := r.UpdateNote(ctx, n); err != nil {
				return err
			}
			if !n.IsDeleted && (n.Title != "" || n.Content != "") {
				toIndex = append(toIndex, *n)
			}
		}

		var err error
		delta, err = r.NotesChangedSince(ctx, userID, checkpoint)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	// Side effects run after the transaction committed. Neither attachment
	// cleanup nor indexing may fail the sync response.
	for _, key := range cleanup {
		if err := s.attachments.Delete(ctx, key); err != nil {
			s.log.Warn("failed to delete audio attachment", "user_id", userID, "path", key, "error", err)
		}
	}
	for _, n := range toIndex {
		s.indexer.EnqueueReindex(n.ID, userID, n.Title, n.Content)
	}

	return delta, rejected, nil
}

func (s *Service) reconcileFolders(ctx context.Context, userID string, batch []FolderState, checkpoint *time.Time) ([]folder.Folder, []RejectedEntry, error) {
	syncedAt := s.now().UTC()

	delta := []folder.Folder{}
	var rejected []RejectedEntry

	err := s.repo.WithinTx(ctx, func(r Repository) error {
		for i, state := range batch {
			if err := state.validate(); err != nil {
				rejected = append(rejected, RejectedEntry{Kind: "folder", Index: i, ID: state.ID, Reason: err.Error()})
				continue
			}

			existing, err := r.GetFolder(ctx, userID, state.ID)
			if err != nil && !errors.Is(err, folder.ErrNotFound) {
				return err
			}

			if existing == nil {
				if state.IsDeleted {
					continue
				}
				if err := r.InsertFolder(ctx, state.toFolder(userID, syncedAt)); err != nil {
					return err
				}
				continue
			}

			if !state.UpdatedAt.After(existing.UpdatedAt) {
				continue
			}

			f := state.toFolder(userID, syncedAt)
			f.CreatedAt = existing.CreatedAt
			if f.IsDeleted {
				// Notes must never point at a deleted folder: reassign them
				// in the same transaction, before the folder mutation lands.
				if err := r.ReassignFolderNotes(ctx, userID, f.ID, syncedAt); err != nil {
					return err
				}
			}
			if err := r.UpdateFolder(ctx, f); err != nil {
				return err
			}
		}

		var err error
		delta, err = r.FoldersChangedSince(ctx, userID, checkpoint)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return delta, rejected, nil
}
