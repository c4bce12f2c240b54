package conditions

import "errors"

var (
	ErrNotFound    = errors.New("condition not found")
	ErrInvalidName = errors.New("condition name is required")
)
