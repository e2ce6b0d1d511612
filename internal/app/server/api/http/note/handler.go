package note

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"notesync/internal/app/server/api/http/middleware/auth"
	"notesync/internal/domain/note"
)

type Handler struct {
	service    note.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service note.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	filter := note.ListFilter{IncludeDeleted: input.IncludeDeleted}
	if input.FolderID != "" {
		filter.FolderID = &input.FolderID
	}

	notes, err := h.service.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []note.Note{}
	}

	return &listOutput{Body: notes}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*findOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	n, err := h.service.Find(ctx, userID, input.ID)
	if err != nil {
		if errors.Is(err, note.ErrNotFound) {
			return nil, huma.Error404NotFound("Note not found")
		}
		return nil, err
	}

	return &findOutput{Body: *n}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	n, err := h.service.Create(ctx, userID, note.CreateRequest{
		ID:        input.Body.ID,
		Title:     input.Body.Title,
		Content:   input.Body.Content,
		FolderID:  input.Body.FolderID,
		AudioPath: input.Body.AudioPath,
		Date:      input.Body.Date,
	})
	if err != nil {
		if errors.Is(err, note.ErrInvalidData) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return nil, err
	}

	return &createOutput{Body: *n}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*updateOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	n, err := h.service.Update(ctx, userID, input.ID, note.UpdateRequest{
		Title:     input.Body.Title,
		Content:   input.Body.Content,
		FolderID:  input.Body.FolderID,
		AudioPath: input.Body.AudioPath,
		Date:      input.Body.Date,
	})
	if err != nil {
		if errors.Is(err, note.ErrNotFound) {
			return nil, huma.Error404NotFound("Note not found")
		}
		return nil, err
	}

	return &updateOutput{Body: *n}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, input.ID, input.Hard); err != nil {
		if errors.Is(err, note.ErrNotFound) {
			return nil, huma.Error404NotFound("Note not found")
		}
		return nil, err
	}

	return &deleteOutput{Body: deleteResponse{Status: "Ok"}}, nil
}
