package llm

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/telemetry"
)

// BreakerSettings tunes BreakerClient.
type BreakerSettings struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

// DefaultBreakerSettings trips after half of at least five calls fail.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:             "llm-draft",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		MinRequests:      5,
		FailureThreshold: 0.5,
	}
}

// BreakerClient wraps a Client with a circuit breaker. ErrNotImplemented
// does not count as a failure.
type BreakerClient struct {
	base Client
	cb   *gobreaker.CircuitBreaker[json.RawMessage]
}

// NewBreakerClient wraps base.
func NewBreakerClient(base Client, s BreakerSettings) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= s.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotImplemented) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			telemetry.Warn("llm.breaker.state", map[string]any{
				"name": name,
				"from": from.String(),
				"to":   to.String(),
			})
		},
	}
	return &BreakerClient{
		base: base,
		cb:   gobreaker.NewCircuitBreaker[json.RawMessage](settings),
	}
}

// DraftAnalysis calls the wrapped client unless the breaker is open.
func (b *BreakerClient) DraftAnalysis(ctx context.Context, input DraftInput) (json.RawMessage, error) {
	return b.cb.Execute(func() (json.RawMessage, error) {
		return b.base.DraftAnalysis(ctx, input)
	})
}

// State reports the breaker state.
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

var _ Client = (*BreakerClient)(nil)
