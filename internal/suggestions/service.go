package suggestions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring/suggest"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/metrics"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/telemetry"
)

// Service manages the suggestion lifecycle: pending, then exactly one of
// applied, dismissed or expired.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// CreateForAnalysis persists ranked suggestions as pending, preserving their order.
func (s *Service) CreateForAnalysis(ctx context.Context, analysisID, userID string, ranked []suggest.Suggestion) ([]Suggestion, error) {
	if strings.TrimSpace(analysisID) == "" || strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	now := s.now()
	items := make([]Suggestion, 0, len(ranked))
	for i, sg := range ranked {
		items = append(items, Suggestion{
			ID:            uuid.NewString(),
			AnalysisID:    analysisID,
			UserID:        userID,
			Rank:          i,
			Type:          sg.Type,
			Priority:      sg.Priority,
			ATSImpact:     sg.ATSImpact,
			Section:       sg.Section,
			Message:       sg.Message,
			OriginalText:  sg.OriginalText,
			SuggestedText: sg.SuggestedText,
			Status:        suggest.StatusPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	if err := s.Repo.CreateBatch(ctx, items); err != nil {
		return nil, fmt.Errorf("store suggestions for analysis %s: %w", analysisID, err)
	}
	return items, nil
}

// ListByAnalysis returns an analysis' suggestions in ranked order.
func (s *Service) ListByAnalysis(ctx context.Context, userID, analysisID string) ([]Suggestion, error) {
	if userID == "" || analysisID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByAnalysis(ctx, userID, analysisID)
}

// Apply marks a pending suggestion as applied.
func (s *Service) Apply(ctx context.Context, userID, suggestionID string) (Suggestion, error) {
	return s.transition(ctx, userID, suggestionID, suggest.StatusApplied)
}

// Dismiss marks a pending suggestion as dismissed.
func (s *Service) Dismiss(ctx context.Context, userID, suggestionID string) (Suggestion, error) {
	return s.transition(ctx, userID, suggestionID, suggest.StatusDismissed)
}

// ExpireStale expires every pending suggestion older than olderThan.
func (s *Service) ExpireStale(ctx context.Context, olderThan time.Duration) (int, error) {
	if olderThan <= 0 {
		return 0, ErrInvalidInput
	}
	now := s.now()
	n, err := s.Repo.ExpirePendingBefore(ctx, now.Add(-olderThan), now)
	if err != nil {
		return 0, fmt.Errorf("expire suggestions: %w", err)
	}
	for i := 0; i < n; i++ {
		metrics.IncSuggestionTransition(string(suggest.StatusExpired))
	}
	if n > 0 {
		telemetry.Info("suggestions.expired", map[string]any{
			"count":      n,
			"older_than": olderThan.String(),
		})
	}
	return n, nil
}

func (s *Service) transition(ctx context.Context, userID, suggestionID string, to suggest.Status) (Suggestion, error) {
	if userID == "" || suggestionID == "" {
		return Suggestion{}, ErrInvalidInput
	}
	current, err := s.Repo.GetByID(ctx, userID, suggestionID)
	if err != nil {
		return Suggestion{}, err
	}
	if !suggest.CanTransition(current.Status, to) {
		return current, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
	}

	now := s.now()
	if err := s.Repo.UpdateStatus(ctx, userID, suggestionID, current.Status, to, now); err != nil {
		return current, err
	}
	metrics.IncSuggestionTransition(string(to))
	telemetry.Info("suggestion.status", map[string]any{
		"suggestion_id":     suggestionID,
		"analysis_id":       current.AnalysisID,
		"user_id":           userID,
		"status_transition": string(current.Status) + "->" + string(to),
	})

	current.Status = to
	current.UpdatedAt = now
	current.ResolvedAt = &now
	return current, nil
}
