package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sony/gobreaker/v2"
)

func TestParseDraft(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		wantErr   bool
		wantScore *int
		wantRecs  int
	}{
		{name: "full", raw: `{"overallScore": 82, "recommendations": ["Add metrics"]}`, wantScore: intPtr(82), wantRecs: 1},
		{name: "empty object", raw: `{}`},
		{name: "score out of range", raw: `{"overallScore": 140}`, wantErr: true},
		{name: "unknown field", raw: `{"grade": "A"}`, wantErr: true},
		{name: "not json", raw: `{not-json`, wantErr: true},
		{name: "blank", raw: ``, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft, err := ParseDraft(json.RawMessage(tc.raw))
			if tc.wantErr {
				if !errors.Is(err, ErrSchemaMismatch) {
					t.Fatalf("expected ErrSchemaMismatch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (draft.OverallScore == nil) != (tc.wantScore == nil) {
				t.Fatalf("unexpected score %v", draft.OverallScore)
			}
			if tc.wantScore != nil && *draft.OverallScore != *tc.wantScore {
				t.Fatalf("expected score %d, got %d", *tc.wantScore, *draft.OverallScore)
			}
			if len(draft.Recommendations) != tc.wantRecs {
				t.Fatalf("expected %d recommendations, got %d", tc.wantRecs, len(draft.Recommendations))
			}
		})
	}
}

func TestPlaceholderClientNotImplemented(t *testing.T) {
	_, err := PlaceholderClient{}.DraftAnalysis(context.Background(), DraftInput{ResumeText: "x"})
	if !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	boom := errors.New("upstream 503")
	settings := DefaultBreakerSettings()
	settings.MinRequests = 2
	client := NewBreakerClient(StaticClient{Err: boom}, settings)

	for i := 0; i < 2; i++ {
		if _, err := client.DraftAnalysis(context.Background(), DraftInput{}); !errors.Is(err, boom) {
			t.Fatalf("call %d: expected upstream error, got %v", i, err)
		}
	}
	if client.State() != gobreaker.StateOpen {
		t.Fatalf("expected open breaker, got %s", client.State())
	}
	if _, err := client.DraftAnalysis(context.Background(), DraftInput{}); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected ErrOpenState, got %v", err)
	}
}

func TestBreakerIgnoresNotImplemented(t *testing.T) {
	settings := DefaultBreakerSettings()
	settings.MinRequests = 1
	client := NewBreakerClient(PlaceholderClient{}, settings)
	for i := 0; i < 3; i++ {
		_, _ = client.DraftAnalysis(context.Background(), DraftInput{})
	}
	if client.State() != gobreaker.StateClosed {
		t.Fatalf("expected closed breaker, got %s", client.State())
	}
}

func intPtr(v int) *int { return &v }
