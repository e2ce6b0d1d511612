package sync

import (
	"fmt"
	"time"

	"notesync/internal/domain/folder"
	"notesync/internal/domain/note"
)

// NoteState is a client-asserted note: the full field set the client believes
// is current, plus the conflict-resolution timestamp and tombstone flag.
type NoteState struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	FolderID  *string   `json:"folder_id"`
	AudioPath *string   `json:"audio_path"`
	Date      time.Time `json:"date"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `json:"is_deleted"`
}

// FolderState is a client-asserted folder.
type FolderState struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `json:"is_deleted"`
}

// Request is one sync cycle from a client. LastSyncAt is the checkpoint of the
// previous successful cycle; nil means first-ever sync and returns everything.
type Request struct {
	Notes      []NoteState   `json:"notes"`
	Folders    []FolderState `json:"folders"`
	LastSyncAt *time.Time    `json:"last_sync_at"`
}

// RejectedEntry reports a batch entry skipped by per-entry validation.
type RejectedEntry struct {
	Kind   string `json:"kind"`
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// Response carries everything the client is missing since its checkpoint and
// the new checkpoint to use next time.
type Response struct {
	Notes         []note.Note     `json:"notes"`
	Folders       []folder.Folder `json:"folders"`
	Rejected      []RejectedEntry `json:"rejected,omitempty"`
	SyncTimestamp time.Time       `json:"sync_timestamp"`
}

func (st NoteState) validate() error {
	if st.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEntry)
	}
	if st.UpdatedAt.IsZero() {
		return fmt.Errorf("%w: missing updated_at", ErrInvalidEntry)
	}
	return nil
}

func (st FolderState) validate() error {
	if st.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEntry)
	}
	if st.UpdatedAt.IsZero() {
		return fmt.Errorf("%w: missing updated_at", ErrInvalidEntry)
	}
	if !st.IsDeleted && st.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidEntry)
	}
	return nil
}

func (st NoteState) toNote(userID string, syncedAt time.Time) *note.Note {
	n := &note.Note{
		ID:        st.ID,
		UserID:    userID,
		FolderID:  st.FolderID,
		Title:     st.Title,
		Content:   st.Content,
		AudioPath: st.AudioPath,
		Date:      st.Date,
		CreatedAt: syncedAt,
		UpdatedAt: st.UpdatedAt,
		SyncedAt:  &syncedAt,
		IsDeleted: st.IsDeleted,
	}
	if n.Date.IsZero() {
		n.Date = st.UpdatedAt
	}
	return n
}

func (st FolderState) toFolder(userID string, syncedAt time.Time) *folder.Folder {
	f := &folder.Folder{
		ID:        st.ID,
		UserID:    userID,
		Name:      st.Name,
		Color:     st.Color,
		CreatedAt: syncedAt,
		UpdatedAt: st.UpdatedAt,
		SyncedAt:  &syncedAt,
		IsDeleted: st.IsDeleted,
	}
	if f.Color == "" {
		f.Color = folder.DefaultColor
	}
	return f
}
