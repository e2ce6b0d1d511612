package note

import (
	"time"

	"notesync/internal/domain/note"
)

type listInput struct {
	FolderID       string `query:"folder_id" doc:"Filter by folder id"`
	IncludeDeleted bool   `query:"include_deleted" doc:"Include tombstoned notes"`
}

type listOutput struct {
	Body []note.Note
}

type findInput struct {
	ID string `path:"id" doc:"Note id"`
}

type findOutput struct {
	Body note.Note
}

type createInput struct {
	Body createRequest
}

type createRequest struct {
	ID        string     `json:"id,omitempty" doc:"Client-assigned id, generated when empty"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	FolderID  *string    `json:"folder_id,omitempty"`
	AudioPath *string    `json:"audio_path,omitempty"`
	Date      *time.Time `json:"date,omitempty" format:"date-time"`
}

type createOutput struct {
	Body note.Note
}

type updateInput struct {
	ID   string `path:"id" doc:"Note id"`
	Body updateRequest
}

type updateRequest struct {
	Title     *string    `json:"title,omitempty"`
	Content   *string    `json:"content,omitempty"`
	FolderID  *string    `json:"folder_id,omitempty"`
	AudioPath *string    `json:"audio_path,omitempty"`
	Date      *time.Time `json:"date,omitempty" format:"date-time"`
}

type updateOutput struct {
	Body note.Note
}

type deleteInput struct {
	ID   string `path:"id" doc:"Note id"`
	Hard bool   `query:"hard" doc:"Physically remove the row instead of tombstoning"`
}

type deleteOutput struct {
	Body deleteResponse
}

type deleteResponse struct {
	Status string `json:"status"`
}
