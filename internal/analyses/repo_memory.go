package analyses

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring"
)

// MemoryRepo stores analyses in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Analysis
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID: make(map[string]Analysis),
	}
}

// Create stores the analysis.
func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if analysis.UpdatedAt.IsZero() {
		analysis.UpdatedAt = analysis.CreatedAt
	}
	r.byID[analysis.ID] = analysis
	return nil
}

// GetByID returns an analysis by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	analysis, ok := r.byID[analysisID]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

func (r *MemoryRepo) FindActive(ctx context.Context, userID, documentID, jobDescription string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found *Analysis
	for _, a := range r.byID {
		if a.UserID != userID || a.DocumentID != documentID || a.JobDescription != jobDescription || !a.Active() {
			continue
		}
		if found == nil || a.CreatedAt.After(found.CreatedAt) {
			candidate := a
			found = &candidate
		}
	}
	if found == nil {
		return Analysis{}, ErrNotFound
	}
	return *found, nil
}

func (r *MemoryRepo) MarkProcessing(ctx context.Context, analysisID string, startedAt time.Time) error {
	return r.update(ctx, analysisID, func(a *Analysis) {
		a.Status = StatusProcessing
		a.StartedAt = &startedAt
		a.UpdatedAt = startedAt
	})
}

func (r *MemoryRepo) Complete(ctx context.Context, analysisID string, result scoring.AnalysisResult, completedAt time.Time) error {
	return r.update(ctx, analysisID, func(a *Analysis) {
		overall := result.Overall
		a.Status = StatusCompleted
		a.Result = &result
		a.OverallScore = &overall
		a.Grade = result.Grade
		a.ErrorCode = ""
		a.ErrorMessage = ""
		a.ErrorRetryable = false
		a.CompletedAt = &completedAt
		a.UpdatedAt = completedAt
	})
}

func (r *MemoryRepo) Fail(ctx context.Context, analysisID, code, message string, retryable bool, completedAt time.Time) error {
	return r.update(ctx, analysisID, func(a *Analysis) {
		a.Status = StatusFailed
		a.ErrorCode = code
		a.ErrorMessage = message
		a.ErrorRetryable = retryable
		a.CompletedAt = &completedAt
		a.UpdatedAt = completedAt
	})
}

func (r *MemoryRepo) update(ctx context.Context, analysisID string, fn func(*Analysis)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis, ok := r.byID[analysisID]
	if !ok {
		return ErrNotFound
	}
	fn(&analysis)
	r.byID[analysisID] = analysis
	return nil
}

// ListByUser returns analyses for a user, newest first, with limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	analyses := []Analysis{}
	for _, a := range r.byID {
		if a.UserID == userID {
			analyses = append(analyses, a)
		}
	}
	r.mu.RUnlock()

	if offset >= len(analyses) {
		return []Analysis{}, nil
	}
	sort.Slice(analyses, func(i, j int) bool {
		if analyses[i].CreatedAt.Equal(analyses[j].CreatedAt) {
			return analyses[i].ID > analyses[j].ID
		}
		return analyses[i].CreatedAt.After(analyses[j].CreatedAt)
	})

	end := len(analyses)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return analyses[offset:end], nil
}

var _ Repo = (*MemoryRepo)(nil)
