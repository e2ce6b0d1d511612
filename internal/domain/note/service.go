package note

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Indexer schedules note content for out-of-band reindexing in the external
// search collaborator. Implementations must never block the caller and never
// surface failures.
type Indexer interface {
	EnqueueReindex(noteID, userID, title, text string)
}

// AttachmentStore removes stored attachment objects. Deleting a missing
// object is not an error.
type AttachmentStore interface {
	Delete(ctx context.Context, key string) error
}

type Servicer interface {
	List(ctx context.Context, userID string, filter ListFilter) ([]Note, error)
	Find(ctx context.Context, userID, noteID string) (*Note, error)
	Create(ctx context.Context, userID string, req CreateRequest) (*Note, error)
	Update(ctx context.Context, userID, noteID string, req UpdateRequest) (*Note, error)
	Delete(ctx context.Context, userID, noteID string, hard bool) error
}

type CreateRequest struct {
	ID        string
	Title     string
	Content   string
	FolderID  *string
	AudioPath *string
	Date      *time.Time
}

type UpdateRequest struct {
	Title     *string
	Content   *string
	FolderID  *string
	AudioPath *string
	Date      *time.Time
}

type Service struct {
	repo        Repository
	attachments AttachmentStore
	indexer     Indexer
	log         *slog.Logger
}

func NewService(repo Repository, attachments AttachmentStore, indexer Indexer, log *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		attachments: attachments,
		indexer:     indexer,
		log:         log.With("component", "note_service"),
	}
}

func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]Note, error) {
	notes, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		s.log.Error("failed to list notes", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (s *Service) Find(ctx context.Context, userID, noteID string) (*Note, error) {
	n, err := s.repo.Get(ctx, userID, noteID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to find note", "note_id", noteID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("find note: %w", err)
	}
	return n, nil
}

// Create inserts a new note. The id may be supplied by the client so offline
// creations keep their identity across sync.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Note, error) {
	now := time.Now().UTC()

	n := &Note{
		ID:        req.ID,
		UserID:    userID,
		FolderID:  req.FolderID,
		Title:     req.Title,
		Content:   req.Content,
		AudioPath: req.AudioPath,
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
		SyncedAt:  &now,
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if req.Date != nil {
		n.Date = *req.Date
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.log.Error("failed to create note", "note_id", n.ID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("create note: %w", err)
	}

	if n.Content != "" {
		s.indexer.EnqueueReindex(n.ID, userID, n.Title, n.Content)
	}

	s.log.Info("note created", "note_id", n.ID, "user_id", userID)
	return n, nil
}

func (s *Service) Update(ctx context.Context, userID, noteID string, req UpdateRequest) (*Note, error) {
	n, err := s.repo.Get(ctx, userID, noteID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get note for update: %w", err)
	}

	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Content != nil {
		n.Content = *req.Content
	}
	if req.FolderID != nil {
		n.FolderID = req.FolderID
	}
	if req.AudioPath != nil {
		n.AudioPath = req.AudioPath
	}
	if req.Date != nil {
		n.Date = *req.Date
	}

	now := time.Now().UTC()
	n.UpdatedAt = now
	n.SyncedAt = &now

	if err := s.repo.Update(ctx, n); err != nil {
		s.log.Error("failed to update note", "note_id", noteID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("update note: %w", err)
	}

	if req.Title != nil || req.Content != nil {
		s.indexer.EnqueueReindex(n.ID, userID, n.Title, n.Content)
	}

	s.log.Info("note updated", "note_id", noteID, "user_id", userID)
	return n, nil
}

// Delete applies the shared tombstone policy: soft delete flags the row and
// bumps timestamps so other devices learn about it on their next sync; hard
// delete removes the row and the audio attachment.
func (s *Service) Delete(ctx context.Context, userID, noteID string, hard bool) error {
	n, err := s.repo.Get(ctx, userID, noteID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get note for delete: %w", err)
	}

	if !hard {
		now := time.Now().UTC()
		n.IsDeleted = true
		n.UpdatedAt = now
		n.SyncedAt = &now

		if err := s.repo.Update(ctx, n); err != nil {
			s.log.Error("failed to soft delete note", "note_id", noteID, "user_id", userID, "error", err)
			return fmt.Errorf("soft delete note: %w", err)
		}

		s.log.Info("note soft deleted", "note_id", noteID, "user_id", userID)
		return nil
	}

	if n.AudioPath != nil {
		if err := s.attachments.Delete(ctx, *n.AudioPath); err != nil {
			// Attachment cleanup never blocks the record mutation.
			s.log.Warn("failed to delete audio attachment", "note_id", noteID, "path", *n.AudioPath, "error", err)
		}
	}

	if err := s.repo.Delete(ctx, userID, noteID); err != nil {
		s.log.Error("failed to delete note", "note_id", noteID, "user_id", userID, "error", err)
		return fmt.Errorf("delete note: %w", err)
	}

	s.log.Info("note deleted", "note_id", noteID, "user_id", userID)
	return nil
}
