package session

import "errors"

// ErrInvalidSession means the token matched no live session. Any other error
// from Validate is a storage failure and must not be treated as a bad token.
var ErrInvalidSession = errors.New("invalid session")
