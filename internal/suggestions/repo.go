package suggestions

import (
	"context"
	"time"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring/suggest"
)

// Repo defines persistence operations for suggestions.
type Repo interface {
	CreateBatch(ctx context.Context, items []Suggestion) error
	GetByID(ctx context.Context, userID, suggestionID string) (Suggestion, error)
	ListByAnalysis(ctx context.Context, userID, analysisID string) ([]Suggestion, error)
	// UpdateStatus moves a suggestion from one status to another. It returns
	// ErrInvalidTransition when the stored status is no longer from.
	UpdateStatus(ctx context.Context, userID, suggestionID string, from, to suggest.Status, at time.Time) error
	// ExpirePendingBefore expires pending suggestions created before cutoff.
	ExpirePendingBefore(ctx context.Context, cutoff, at time.Time) (int, error)
}
