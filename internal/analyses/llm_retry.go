package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/llm"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/telemetry"
)

const (
	llmRetryBaseDelay   = 300 * time.Millisecond
	llmRetryMaxAttempts = 3
)

// retryingLLM retries transient draft failures with doubling delays. An open
// breaker or a malformed draft ends the loop at once.
type retryingLLM struct {
	base        llm.Client
	requestID   string
	analysisID  string
	delay       time.Duration
	maxAttempts int
}

func newRetryingLLM(base llm.Client, analysisID, requestID string) llm.Client {
	if base == nil {
		return nil
	}
	return retryingLLM{
		base:        base,
		requestID:   requestID,
		analysisID:  analysisID,
		delay:       llmRetryBaseDelay,
		maxAttempts: llmRetryMaxAttempts,
	}
}

func (r retryingLLM) DraftAnalysis(ctx context.Context, input llm.DraftInput) (json.RawMessage, error) {
	delay := r.delay
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		resp, err := r.base.DraftAnalysis(ctx, input)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if attempt == r.maxAttempts || !transientLLMError(ctx, err) {
			break
		}

		telemetry.Warn("llm.retry", map[string]any{
			"attempt":     attempt,
			"delay_ms":    delay.Milliseconds(),
			"request_id":  r.requestID,
			"analysis_id": r.analysisID,
			"error":       sanitizeError(err),
		})
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		delay *= 2
	}
	return nil, lastErr
}

// transientLLMError reports whether another attempt could succeed within ctx.
func transientLLMError(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	switch {
	case errors.Is(err, llm.ErrNotImplemented),
		errors.Is(err, llm.ErrSchemaMismatch),
		errors.Is(err, gobreaker.ErrOpenState),
		errors.Is(err, gobreaker.ErrTooManyRequests),
		errors.Is(err, context.Canceled):
		return false
	case errors.Is(err, context.DeadlineExceeded):
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
