package cache

import (
	"context"
	"errors"
	"time"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/util"
)

// ErrMiss is returned by Get when no entry exists for the key.
var ErrMiss = errors.New("cache miss")

// ResultCache stores scoring results keyed by their inputs.
type ResultCache interface {
	Get(ctx context.Context, key string) (scoring.AnalysisResult, error)
	Set(ctx context.Context, key string, result scoring.AnalysisResult, ttl time.Duration) error
}

// Key derives a cache key from the weights version and the scored text.
func Key(weightsVersion, text, jobDescription string) string {
	return "analysis:" + util.Digest(weightsVersion, text, jobDescription)
}
