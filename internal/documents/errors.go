package documents

import "errors"

var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidInput = errors.New("invalid input")
	// ErrExtraction marks failures to turn a stored document into text.
	ErrExtraction = errors.New("document text extraction failed")
)
