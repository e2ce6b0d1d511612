package note

import "time"

// Note is a user-owned diary entry. Identity is scoped by owner: (UserID, ID)
// is the unique key, and ID is assignable by the client for offline creation.
type Note struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	FolderID  *string    `json:"folder_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	AudioPath *string    `json:"audio_path"`
	Date      time.Time  `json:"date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	SyncedAt  *time.Time `json:"synced_at"`
	IsDeleted bool       `json:"is_deleted"`
}
