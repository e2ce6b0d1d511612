package folder

import (
	"notesync/internal/domain/folder"
)

type listInput struct {
	IncludeDeleted bool `query:"include_deleted" doc:"Include tombstoned folders"`
}

type listOutput struct {
	Body []folder.Folder
}

type findInput struct {
	ID string `path:"id" doc:"Folder id"`
}

type findOutput struct {
	Body folder.Folder
}

type createInput struct {
	Body createRequest
}

type createRequest struct {
	ID    string `json:"id,omitempty" doc:"Client-assigned id, generated when empty"`
	Name  string `json:"name" minLength:"1"`
	Color string `json:"color,omitempty" doc:"Hex color, palette default when empty"`
}

type createOutput struct {
	Body folder.Folder
}

type updateInput struct {
	ID   string `path:"id" doc:"Folder id"`
	Body updateRequest
}

type updateRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

type updateOutput struct {
	Body folder.Folder
}

type deleteInput struct {
	ID   string `path:"id" doc:"Folder id"`
	Hard bool   `query:"hard" doc:"Physically remove the row instead of tombstoning"`
}

type deleteOutput struct {
	Body deleteResponse
}

type deleteResponse struct {
	Status string `json:"status"`
}
