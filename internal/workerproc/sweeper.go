package workerproc

import (
	"context"
	"time"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/telemetry"
)

// Expirer expires suggestions left pending for longer than olderThan.
type Expirer interface {
	ExpireStale(ctx context.Context, olderThan time.Duration) (int, error)
}

// Sweeper periodically expires stale pending suggestions.
type Sweeper struct {
	Expirer  Expirer
	TTL      time.Duration
	Interval time.Duration
}

// Run sweeps once immediately and then every Interval until ctx is done.
func (s Sweeper) Run(ctx context.Context) {
	if s.Expirer == nil || s.TTL <= 0 {
		return
	}
	interval := s.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.SweepOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// SweepOnce runs a single expiry pass and returns the number expired.
func (s Sweeper) SweepOnce(ctx context.Context) int {
	n, err := s.Expirer.ExpireStale(ctx, s.TTL)
	if err != nil {
		if ctx.Err() == nil {
			telemetry.Warn("worker.suggestions.expire_failed", map[string]any{"error": err.Error()})
		}
		return 0
	}
	if n > 0 {
		telemetry.Info("worker.suggestions.expired", map[string]any{"count": n, "ttl": s.TTL.String()})
	}
	return n
}
