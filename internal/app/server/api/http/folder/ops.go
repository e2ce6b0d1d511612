package folder

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "folders-list",
		Method:      http.MethodGet,
		Path:        "/api/folders",
		Summary:     "List the user's folders",
		Tags:        []string{"folders"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "folders-create",
		Method:      http.MethodPost,
		Path:        "/api/folders",
		Summary:     "Create a folder",
		Tags:        []string{"folders"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "folders-find",
		Method:      http.MethodGet,
		Path:        "/api/folders/{id}",
		Summary:     "Get a folder",
		Tags:        []string{"folders"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "folders-update",
		Method:      http.MethodPut,
		Path:        "/api/folders/{id}",
		Summary:     "Update a folder",
		Tags:        []string{"folders"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "folders-delete",
		Method:      http.MethodDelete,
		Path:        "/api/folders/{id}",
		Summary:     "Delete a folder",
		Description: "Deletes the folder and reassigns its notes to the null folder in the same transaction.",
		Tags:        []string{"folders"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
