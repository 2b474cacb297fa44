package suggestions

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring/suggest"
)

// MemoryRepo stores suggestions in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Suggestion
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Suggestion)}
}

func (r *MemoryRepo) CreateBatch(ctx context.Context, items []Suggestion) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.byID[item.ID] = item
	}
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, suggestionID string) (Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return Suggestion{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.byID[suggestionID]
	if !ok || item.UserID != userID {
		return Suggestion{}, ErrNotFound
	}
	return item, nil
}

func (r *MemoryRepo) ListByAnalysis(ctx context.Context, userID, analysisID string) ([]Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := []Suggestion{}
	for _, item := range r.byID {
		if item.AnalysisID == analysisID && item.UserID == userID {
			out = append(out, item)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, userID, suggestionID string, from, to suggest.Status, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byID[suggestionID]
	if !ok || item.UserID != userID {
		return ErrNotFound
	}
	if item.Status != from {
		return ErrInvalidTransition
	}
	item.Status = to
	item.UpdatedAt = at
	resolved := at
	item.ResolvedAt = &resolved
	r.byID[suggestionID] = item
	return nil
}

func (r *MemoryRepo) ExpirePendingBefore(ctx context.Context, cutoff, at time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, item := range r.byID {
		if item.Status != suggest.StatusPending || !item.CreatedAt.Before(cutoff) {
			continue
		}
		item.Status = suggest.StatusExpired
		item.UpdatedAt = at
		resolved := at
		item.ResolvedAt = &resolved
		r.byID[id] = item
		n++
	}
	return n, nil
}

var _ Repo = (*MemoryRepo)(nil)
