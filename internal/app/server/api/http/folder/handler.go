package folder

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"notesync/internal/app/server/api/http/middleware/auth"
	"notesync/internal/domain/folder"
)

type Handler struct {
	service    folder.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service folder.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
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

	folders, err := h.service.List(ctx, userID, folder.ListFilter{IncludeDeleted: input.IncludeDeleted})
	if err != nil {
		return nil, err
	}
	if folders == nil {
		folders = []folder.Folder{}
	}

	return &listOutput{Body: folders}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*findOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	f, err := h.service.Find(ctx, userID, input.ID)
	if err != nil {
		if errors.Is(err, folder.ErrNotFound) {
			return nil, huma.Error404NotFound("Folder not found")
		}
		return nil, err
	}

	return &findOutput{Body: *f}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	f, err := h.service.Create(ctx, userID, folder.CreateRequest{
		ID:    input.Body.ID,
		Name:  input.Body.Name,
		Color: input.Body.Color,
	})
	if err != nil {
		if errors.Is(err, folder.ErrInvalidData) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return nil, err
	}

	return &createOutput{Body: *f}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*updateOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	f, err := h.service.Update(ctx, userID, input.ID, folder.UpdateRequest{
		Name:  input.Body.Name,
		Color: input.Body.Color,
	})
	if err != nil {
		if errors.Is(err, folder.ErrNotFound) {
			return nil, huma.Error404NotFound("Folder not found")
		}
		return nil, err
	}

	return &updateOutput{Body: *f}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, input.ID, input.Hard); err != nil {
		if errors.Is(err, folder.ErrNotFound) {
			return nil, huma.Error404NotFound("Folder not found")
		}
		return nil, err
	}

	return &deleteOutput{Body: deleteResponse{Status: "Ok"}}, nil
}
