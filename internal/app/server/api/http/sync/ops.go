package sync

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) syncOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync",
		Method:      http.MethodPost,
		Path:        "/api/sync",
		Summary:     "Reconcile offline changes",
		Description: "Accepts the client's changed notes and folders, resolves conflicts last-write-wins, and returns everything changed on the server since the client's checkpoint.",
		Tags:        []string{"sync"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
