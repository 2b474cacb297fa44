package analyses

import "errors"

var (
	ErrNotFound     = errors.New("analysis not found")
	ErrInvalidInput = errors.New("invalid analysis input")

	errStorage = errors.New("storage failed")
)

// Failure codes recorded on failed analyses and returned to pollers.
const (
	// ErrorCodeValidation: blank text or a document that no longer exists.
	ErrorCodeValidation = "VALIDATION_ERROR"
	// ErrorCodeExtraction: the stored file could not be turned into text.
	ErrorCodeExtraction        = "EXTRACTION_ERROR"
	ErrorCodeLLMTimeout        = "LLM_TIMEOUT"
	ErrorCodeLLMSchemaMismatch = "LLM_SCHEMA_MISMATCH"
	// ErrorCodeLLMUnavailable: the draft breaker is open.
	ErrorCodeLLMUnavailable = "LLM_UNAVAILABLE"
	ErrorCodeStorage        = "STORAGE_ERROR"
	ErrorCodeInternal       = "INTERNAL_ERROR"
)
