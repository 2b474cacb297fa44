package scoring

import "errors"

// ErrInvalidInput is returned when the resume text is empty or whitespace only.
var ErrInvalidInput = errors.New("resume text is empty")
