package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts LLM providers that draft an analysis of a resume.
type Client interface {
	DraftAnalysis(ctx context.Context, input DraftInput) (json.RawMessage, error)
}

// DraftInput captures the inputs needed for a drafted analysis.
type DraftInput struct {
	ResumeText     string
	JobDescription string
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient stands in until a provider is wired.
type PlaceholderClient struct{}

// DraftAnalysis returns ErrNotImplemented.
func (PlaceholderClient) DraftAnalysis(ctx context.Context, input DraftInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotImplemented
}

// StaticClient returns a fixed payload. Useful for local runs and tests.
type StaticClient struct {
	Payload json.RawMessage
	Err     error
}

// DraftAnalysis returns the configured payload or error.
func (s StaticClient) DraftAnalysis(ctx context.Context, input DraftInput) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_ = input
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Payload, nil
}
