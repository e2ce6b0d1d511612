package upload

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"notesync/internal/app/server/api/http/middleware/auth"
)

// Presigner issues presigned URLs for the attachment bucket.
type Presigner interface {
	PresignPut(ctx context.Context, userID string) (string, string, error)
	PresignGet(ctx context.Context, key string) (string, error)
}

type Handler struct {
	store      Presigner
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(store Presigner, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		store:      store,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.downloadOp(), h.download)
}

func (h *Handler) create(ctx context.Context, _ *createInput) (*createOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	key, url, err := h.store.PresignPut(ctx, userID)
	if err != nil {
		h.log.Error("failed to presign upload", "user_id", userID, "error", err)
		return nil, huma.Error503ServiceUnavailable("Attachment storage unavailable")
	}

	return &createOutput{Body: CreateResponse{Key: key, URL: url}}, nil
}

func (h *Handler) download(ctx context.Context, input *downloadInput) (*downloadOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	// Keys are namespaced per user; anything outside the caller's prefix is
	// someone else's attachment.
	if !strings.HasPrefix(input.Key, "audio/"+userID+"/") {
		return nil, huma.Error404NotFound("Attachment not found")
	}

	url, err := h.store.PresignGet(ctx, input.Key)
	if err != nil {
		h.log.Error("failed to presign download", "user_id", userID, "key", input.Key, "error", err)
		return nil, huma.Error503ServiceUnavailable("Attachment storage unavailable")
	}

	return &downloadOutput{Body: DownloadResponse{URL: url}}, nil
}
