package suggestions

import "errors"

var (
	ErrNotFound          = errors.New("suggestion not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
)
