package folder

import "errors"

var (
	ErrNotFound    = errors.New("folder not found")
	ErrInvalidData = errors.New("invalid folder data")
)
