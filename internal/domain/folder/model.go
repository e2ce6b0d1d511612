package folder

import "time"

// Folder groups notes. Like notes, identity is (UserID, ID) with
// client-assignable ids.
type Folder struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Name      string     `json:"name"`
	Color     string     `json:"color"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	SyncedAt  *time.Time `json:"synced_at"`
	IsDeleted bool       `json:"is_deleted"`
}

// DefaultColor matches the client palette default.
const DefaultColor = "#E8B731"
