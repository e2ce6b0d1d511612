package upload

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "uploads-create",
		Method:      http.MethodPost,
		Path:        "/api/uploads",
		Summary:     "Request an audio upload URL",
		Description: "Issues a fresh storage key and a presigned PUT URL. The client uploads directly to the bucket and stores the key in the note's audio_path.",
		Tags:        []string{"uploads"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) downloadOp() huma.Operation {
	return huma.Operation{
		OperationID: "uploads-download",
		Method:      http.MethodGet,
		Path:        "/api/uploads",
		Summary:     "Request an audio download URL",
		Tags:        []string{"uploads"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
