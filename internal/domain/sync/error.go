package sync

import "errors"

// ErrInvalidEntry marks a malformed batch entry. Such entries are rejected
// individually and never abort the rest of the batch.
var ErrInvalidEntry = errors.New("invalid sync entry")
