package sync

import (
	"notesync/internal/domain/sync"
)

type syncInput struct {
	Body sync.Request
}

type syncOutput struct {
	Body sync.Response
}
