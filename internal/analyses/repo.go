package analyses

import (
	"context"
	"time"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring"
)

// Repo persists analyses and their status transitions:
// queued -> processing -> completed | failed.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	// GetByID is not owner-scoped; callers check UserID.
	GetByID(ctx context.Context, analysisID string) (Analysis, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error)
	// FindActive returns the newest queued or processing analysis for the
	// same document and job description, or ErrNotFound.
	FindActive(ctx context.Context, userID, documentID, jobDescription string) (Analysis, error)

	// The transition methods return ErrNotFound for unknown ids.
	MarkProcessing(ctx context.Context, analysisID string, startedAt time.Time) error
	Complete(ctx context.Context, analysisID string, result scoring.AnalysisResult, completedAt time.Time) error
	Fail(ctx context.Context, analysisID, code, message string, retryable bool, completedAt time.Time) error
}
