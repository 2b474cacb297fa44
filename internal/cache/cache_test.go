package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring"
)

func TestKeyDependsOnEveryInput(t *testing.T) {
	base := Key("w1", "resume", "jd")
	if base != Key("w1", "resume", "jd") {
		t.Fatalf("expected stable key")
	}
	for _, other := range []string{Key("w2", "resume", "jd"), Key("w1", "resume2", "jd"), Key("w1", "resume", "")} {
		if other == base {
			t.Fatalf("expected distinct key for changed input")
		}
	}
	if Key("w1", "ab", "c") == Key("w1", "a", "bc") {
		t.Fatalf("expected separator between text and job description")
	}
}

func TestMemoryCacheExpires(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache(func() time.Time { return now })
	ctx := context.Background()

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
	if err := c.Set(ctx, "k", scoring.AnalysisResult{Overall: 71, Grade: "B"}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Overall != 71 || got.Grade != "B" {
		t.Fatalf("unexpected cached result %+v", got)
	}

	now = now.Add(2 * time.Minute)
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected expiry miss, got %v", err)
	}
}

func TestMemoryCacheReclaimsExpiredEntries(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache(func() time.Time { return now })
	c.MaxEntries = 20000
	ctx := context.Background()

	for i := 0; i < 10000; i++ {
		if err := c.Set(ctx, fmt.Sprintf("k-%d", i), scoring.AnalysisResult{Overall: i % 100}, time.Second); err != nil {
			t.Fatalf("set: %v", err)
		}
	}
	if n := c.Len(); n != 10000 {
		t.Fatalf("expected 10000 live entries, got %d", n)
	}

	now = now.Add(time.Hour)
	if err := c.Set(ctx, "fresh", scoring.AnalysisResult{Overall: 80}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if n := c.Len(); n != 1 {
		t.Fatalf("expected expired entries to be reclaimed, have %d", n)
	}
}

func TestMemoryCacheEvictsOldestAtCapacity(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache(func() time.Time { return now })
	c.MaxEntries = 3
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c", "d"} {
		now = now.Add(time.Second)
		if err := c.Set(ctx, k, scoring.AnalysisResult{Grade: k}, 0); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}
	if n := c.Len(); n != 3 {
		t.Fatalf("expected cap of 3, have %d", n)
	}
	if _, err := c.Get(ctx, "a"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected oldest entry to be evicted, got %v", err)
	}
	if got, err := c.Get(ctx, "d"); err != nil || got.Grade != "d" {
		t.Fatalf("expected newest entry, got %+v %v", got, err)
	}

	// Overwriting an existing key never evicts another one.
	if err := c.Set(ctx, "d", scoring.AnalysisResult{Grade: "d2"}, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := c.Get(ctx, "b"); err != nil {
		t.Fatalf("expected b to survive an overwrite, got %v", err)
	}
}
