package analyses

import (
	"time"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring"
)

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Analysis represents a document analysis job.
type Analysis struct {
	ID             string                  `json:"id"`
	DocumentID     string                  `json:"documentId"`
	UserID         string                  `json:"userId"`
	JobDescription string                  `json:"jobDescription,omitempty"`
	WeightsVersion string                  `json:"weightsVersion"`
	Status         string                  `json:"status"`
	Result         *scoring.AnalysisResult `json:"result,omitempty"`
	OverallScore   *int                    `json:"overallScore,omitempty"`
	Grade          string                  `json:"grade,omitempty"`
	ErrorCode      string                  `json:"errorCode,omitempty"`
	ErrorMessage   string                  `json:"errorMessage,omitempty"`
	ErrorRetryable bool                    `json:"errorRetryable,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
	StartedAt      *time.Time              `json:"startedAt,omitempty"`
	CompletedAt    *time.Time              `json:"completedAt,omitempty"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

// Active reports whether the analysis is still queued or processing.
func (a Analysis) Active() bool {
	return a.Status == StatusQueued || a.Status == StatusProcessing
}
