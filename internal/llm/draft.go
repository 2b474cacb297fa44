package llm

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed draft_schema.json
var draftSchemaJSON string

var draftSchema = gojsonschema.NewStringLoader(draftSchemaJSON)

// ErrSchemaMismatch is returned when a drafted payload does not match the draft schema.
var ErrSchemaMismatch = errors.New("llm output schema mismatch")

// Draft is the validated subset of a drafted analysis the scorer accepts.
type Draft struct {
	OverallScore    *int     `json:"overallScore,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// FieldError is a single schema violation.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every schema violation in a payload.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	parts := make([]string, 0, len(ve.Errors))
	for _, e := range ve.Errors {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return fmt.Sprintf("%s: %s", ErrSchemaMismatch.Error(), strings.Join(parts, "; "))
}

func (ve *ValidationError) Unwrap() error { return ErrSchemaMismatch }

// ParseDraft validates raw against the draft schema and decodes it.
func ParseDraft(raw json.RawMessage) (Draft, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return Draft{}, fmt.Errorf("%w: empty payload", ErrSchemaMismatch)
	}
	result, err := gojsonschema.Validate(draftSchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return Draft{}, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	if !result.Valid() {
		ve := &ValidationError{}
		for _, desc := range result.Errors() {
			ve.Errors = append(ve.Errors, FieldError{Field: desc.Field(), Message: desc.Description()})
		}
		return Draft{}, ve
	}

	var draft Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return Draft{}, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return draft, nil
}
