package folder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	List(ctx context.Context, userID string, filter ListFilter) ([]Folder, error)
	Find(ctx context.Context, userID, folderID string) (*Folder, error)
	Create(ctx context.Context, userID string, req CreateRequest) (*Folder, error)
	Update(ctx context.Context, userID, folderID string, req UpdateRequest) (*Folder, error)
	Delete(ctx context.Context, userID, folderID string, hard bool) error
}

type CreateRequest struct {
	ID    string
	Name  string
	Color string
}

type UpdateRequest struct {
	Name  *string
	Color *string
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "folder_service"),
	}
}

func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]Folder, error) {
	folders, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		s.log.Error("failed to list folders", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return folders, nil
}

func (s *Service) Find(ctx context.Context, userID, folderID string) (*Folder, error) {
	f, err := s.repo.Get(ctx, userID, folderID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to find folder", "folder_id", folderID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("find folder: %w", err)
	}
	return f, nil
}

func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Folder, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidData)
	}

	now := time.Now().UTC()
	f := &Folder{
		ID:        req.ID,
		UserID:    userID,
		Name:      req.Name,
		Color:     req.Color,
		CreatedAt: now,
		UpdatedAt: now,
		SyncedAt:  &now,
	}
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.Color == "" {
		f.Color = DefaultColor
	}

	if err := s.repo.Create(ctx, f); err != nil {
		s.log.Error("failed to create folder", "folder_id", f.ID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("create folder: %w", err)
	}

	s.log.Info("folder created", "folder_id", f.ID, "user_id", userID)
	return f, nil
}

func (s *Service) Update(ctx context.Context, userID, folderID string, req UpdateRequest) (*Folder, error) {
	f, err := s.repo.Get(ctx, userID, folderID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get folder for update: %w", err)
	}

	if req.Name != nil {
		f.Name = *req.Name
	}
	if req.Color != nil {
		f.Color = *req.Color
	}

	now := time.Now().UTC()
	f.UpdatedAt = now
	f.SyncedAt = &now

	if err := s.repo.Update(ctx, f); err != nil {
		s.log.Error("failed to update folder", "folder_id", folderID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("update folder: %w", err)
	}

	s.log.Info("folder updated", "folder_id", folderID, "user_id", userID)
	return f, nil
}

// Delete removes a folder, reassigning its notes to the null folder in the
// same transaction regardless of their own deletion state.
func (s *Service) Delete(ctx context.Context, userID, folderID string, hard bool) error {
	if _, err := s.repo.Get(ctx, userID, folderID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get folder for delete: %w", err)
	}

	now := time.Now().UTC()
	if err := s.repo.DeleteCascade(ctx, userID, folderID, hard, now); err != nil {
		s.log.Error("failed to delete folder", "folder_id", folderID, "user_id", userID, "hard", hard, "error", err)
		return fmt.Errorf("delete folder: %w", err)
	}

	s.log.Info("folder deleted", "folder_id", folderID, "user_id", userID, "hard", hard)
	return nil
}
