package cache

import (
	"context"
	"sync"
	"time"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring"
)

const (
	// DefaultMaxEntries bounds a MemoryCache built by NewMemoryCache.
	DefaultMaxEntries = 1024
	// sweepEvery is the minimum gap between expiry sweeps run from Set.
	sweepEvery = time.Minute
)

type memoryEntry struct {
	result    scoring.AnalysisResult
	storedAt  time.Time
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryCache is an in-process ResultCache. Expired entries are swept on
// Set, and once MaxEntries is reached the oldest entry makes room.
type MemoryCache struct {
	MaxEntries int

	mu        sync.RWMutex
	entries   map[string]memoryEntry
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryCache constructs a MemoryCache holding up to DefaultMaxEntries.
func NewMemoryCache(now func() time.Time) *MemoryCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryCache{
		MaxEntries: DefaultMaxEntries,
		entries:    make(map[string]memoryEntry),
		now:        now,
	}
}

func (m *MemoryCache) Get(ctx context.Context, key string) (scoring.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return scoring.AnalysisResult{}, err
	}
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return scoring.AnalysisResult{}, ErrMiss
	}
	if entry.expired(m.now()) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return scoring.AnalysisResult{}, ErrMiss
	}
	return entry.result, nil
}

// Set stores result; a non-positive ttl never expires.
func (m *MemoryCache) Set(ctx context.Context, key string, result scoring.AnalysisResult, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := m.now()
	entry := memoryEntry{result: result, storedAt: now}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	_, replacing := m.entries[key]
	if !replacing {
		limit := m.MaxEntries
		if limit <= 0 {
			limit = DefaultMaxEntries
		}
		if len(m.entries) >= limit || now.Sub(m.lastSweep) >= sweepEvery {
			m.sweepLocked(now)
		}
		for len(m.entries) >= limit {
			m.evictOldestLocked()
		}
	}
	m.entries[key] = entry
	return nil
}

// Len reports the number of stored entries, expired or not.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *MemoryCache) sweepLocked(now time.Time) {
	for k, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, k)
		}
	}
	m.lastSweep = now
}

func (m *MemoryCache) evictOldestLocked() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for k, e := range m.entries {
		if !found || e.storedAt.Before(oldest) || (e.storedAt.Equal(oldest) && k < oldestKey) {
			oldestKey, oldest, found = k, e.storedAt, true
		}
	}
	if found {
		delete(m.entries, oldestKey)
	}
}

var _ ResultCache = (*MemoryCache)(nil)
