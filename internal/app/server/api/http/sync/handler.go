package sync

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"notesync/internal/app/server/api/http/middleware/auth"
	"notesync/internal/domain/sync"
)

type Handler struct {
	service    sync.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service sync.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.syncOp(), h.sync)
}

func (h *Handler) sync(ctx context.Context, input *syncInput) (*syncOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	resp, err := h.service.Sync(ctx, userID, input.Body)
	if err != nil {
		// Reconciliation is idempotent, so the client retries the whole
		// batch against the same checkpoint.
		return nil, huma.Error503ServiceUnavailable("Sync failed, retry with the same checkpoint")
	}

	return &syncOutput{Body: *resp}, nil
}
