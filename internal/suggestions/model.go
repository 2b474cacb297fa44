package suggestions

import (
	"time"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring/suggest"
)

// Suggestion is a persisted suggestion attached to an analysis.
type Suggestion struct {
	ID            string           `json:"id"`
	AnalysisID    string           `json:"analysisId"`
	UserID        string           `json:"-"`
	Rank          int              `json:"rank"`
	Type          suggest.Type     `json:"type"`
	Priority      suggest.Priority `json:"priority"`
	ATSImpact     int              `json:"atsImpact"`
	Section       string           `json:"section,omitempty"`
	Message       string           `json:"message"`
	OriginalText  string           `json:"originalText,omitempty"`
	SuggestedText string           `json:"suggestedText,omitempty"`
	Status        suggest.Status   `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
	ResolvedAt    *time.Time       `json:"resolvedAt,omitempty"`
}
