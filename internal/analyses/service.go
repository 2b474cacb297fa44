package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/cache"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/documents"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/llm"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/queue"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring/suggest"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/metrics"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/telemetry"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/tracing"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/suggestions"
)

const defaultLLMTimeout = 20 * time.Second

// DocumentSource resolves documents and their plain text.
type DocumentSource interface {
	Get(ctx context.Context, userID, documentID string) (documents.Document, error)
	Text(ctx context.Context, doc documents.Document) (string, error)
}

// SuggestionStore persists the ranked suggestions of a completed analysis.
type SuggestionStore interface {
	CreateForAnalysis(ctx context.Context, analysisID, userID string, ranked []suggest.Suggestion) ([]suggestions.Suggestion, error)
}

// Service contains business logic for analyses.
type Service struct {
	Repo           Repo
	Docs           DocumentSource
	Analyzer       *scoring.Analyzer
	WeightsVersion string
	Cache          cache.ResultCache
	CacheTTL       time.Duration
	LLM            llm.Client
	LLMTimeout     time.Duration
	Suggestions    SuggestionStore
	JobQueue       queue.Client
}

// Create records a queued analysis for one of the user's documents and hands
// it to the job queue, or processes it in the background when no queue is
// configured. A queued or processing analysis for the same inputs is reused.
func (s *Service) Create(ctx context.Context, documentID, userID, jobDescription string) (Analysis, bool, error) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" || strings.TrimSpace(userID) == "" {
		return Analysis{}, false, ErrInvalidInput
	}
	jobDescription = strings.TrimSpace(jobDescription)

	if _, err := s.Docs.Get(ctx, userID, documentID); err != nil {
		return Analysis{}, false, err
	}

	existing, err := s.Repo.FindActive(ctx, userID, documentID, jobDescription)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Analysis{}, false, err
	}

	now := time.Now().UTC()
	analysis := Analysis{
		ID:             uuid.NewString(),
		DocumentID:     documentID,
		UserID:         userID,
		JobDescription: jobDescription,
		WeightsVersion: s.weightsVersion(),
		Status:         StatusQueued,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(ctx, analysis); err != nil {
		return Analysis{}, false, err
	}

	if s.JobQueue != nil {
		msg := queue.NewMessage(analysis.ID, requestIDFromContext(ctx), now)
		if err := s.JobQueue.Send(ctx, msg); err != nil {
			s.failAnalysis(ctx, analysis, fmt.Errorf("enqueue analysis: %w", err), nil)
			return Analysis{}, false, fmt.Errorf("enqueue analysis %s: %w", analysis.ID, err)
		}
		telemetry.Info("analysis.enqueued", logFields(ctx, analysis))
		return analysis, true, nil
	}

	go s.completeAsync(backgroundWithRequestID(ctx), analysis.ID)
	return analysis, true, nil
}

// Get returns an analysis owned by userID.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (Analysis, error) {
	if analysisID == "" || userID == "" {
		return Analysis{}, ErrInvalidInput
	}
	analysis, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		return Analysis{}, err
	}
	if analysis.UserID != userID {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

// List returns analyses for a user ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// AnalyzeText scores text synchronously without persisting anything.
func (s *Service) AnalyzeText(ctx context.Context, text, jobDescription string) (scoring.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return scoring.AnalysisResult{}, ErrInvalidInput
	}
	return s.score(ctx, "", text, jobDescription)
}

// Match compares text against a job description.
func (s *Service) Match(ctx context.Context, text, jobDescription string) (scoring.JobMatch, error) {
	if err := ctx.Err(); err != nil {
		return scoring.JobMatch{}, err
	}
	if strings.TrimSpace(text) == "" || strings.TrimSpace(jobDescription) == "" {
		return scoring.JobMatch{}, ErrInvalidInput
	}
	return scoring.Match(text, jobDescription)
}

func (s *Service) completeAsync(ctx context.Context, analysisID string) {
	defer func() {
		if r := recover(); r != nil {
			s.failAnalysis(ctx, Analysis{ID: analysisID}, fmt.Errorf("panic: %v", r), nil)
		}
	}()
	_ = s.ProcessAnalysis(ctx, analysisID)
}

// ProcessAnalysis runs a queued analysis to completion. Analyses that are
// already completed, or failed without a retryable error, are left untouched.
// The returned error is the failure recorded on the analysis.
func (s *Service) ProcessAnalysis(ctx context.Context, analysisID string) error {
	analysis, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		return fmt.Errorf("analysis lookup: %w", err)
	}
	if analysis.Status == StatusCompleted || (analysis.Status == StatusFailed && !analysis.ErrorRetryable) {
		telemetry.Info("analysis.skip", map[string]any{
			"analysis_id": analysisID,
			"status":      analysis.Status,
		})
		return nil
	}

	ctx, span := tracing.Start(ctx, "analysis.process",
		attribute.String("analysis.id", analysis.ID),
		attribute.String("document.id", analysis.DocumentID),
	)
	defer span.End()

	startedAt := time.Now().UTC()
	if err := s.Repo.MarkProcessing(ctx, analysisID, startedAt); err != nil {
		err = fmt.Errorf("%w: set processing: %w", errStorage, err)
		s.failAnalysis(ctx, analysis, err, &startedAt)
		return err
	}
	metrics.IncAnalysisStarted()
	fields := logFields(ctx, analysis)
	fields["status"] = StatusProcessing
	fields["status_transition"] = analysis.Status + "->" + StatusProcessing
	telemetry.Info("analysis.status", fields)

	result, err := s.run(ctx, analysis)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "analysis failed")
		s.failAnalysis(ctx, analysis, err, &startedAt)
		return err
	}

	completedAt := time.Now().UTC()
	if err := s.Repo.Complete(ctx, analysisID, result, completedAt); err != nil {
		err = fmt.Errorf("%w: set analysis result: %w", errStorage, err)
		s.failAnalysis(ctx, analysis, err, &startedAt)
		return err
	}
	if s.Suggestions != nil && len(result.Suggestions) > 0 {
		if _, err := s.Suggestions.CreateForAnalysis(ctx, analysis.ID, analysis.UserID, result.Suggestions); err != nil {
			warn := logFields(ctx, analysis)
			warn["error"] = sanitizeError(err)
			telemetry.Warn("analysis.suggestions_not_stored", warn)
		}
	}

	span.SetAttributes(attribute.Int("analysis.overall", result.Overall))
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(durationMs(&startedAt, &completedAt))
	metrics.ObserveOverallScore(result.Overall)
	fields = logFields(ctx, analysis)
	fields["status"] = StatusCompleted
	fields["status_transition"] = "processing->completed"
	fields["duration_ms"] = durationMs(&startedAt, &completedAt)
	fields["overall"] = result.Overall
	fields["grade"] = result.Grade
	fields["degraded"] = result.Degraded
	telemetry.Info("analysis.status", fields)
	return nil
}

func (s *Service) run(ctx context.Context, analysis Analysis) (scoring.AnalysisResult, error) {
	if s.Docs == nil {
		return scoring.AnalysisResult{}, errors.New("missing document source")
	}
	doc, err := s.Docs.Get(ctx, analysis.UserID, analysis.DocumentID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return scoring.AnalysisResult{}, fmt.Errorf("document lookup id=%s: %w", analysis.DocumentID, err)
		}
		return scoring.AnalysisResult{}, fmt.Errorf("%w: document lookup id=%s: %w", errStorage, analysis.DocumentID, err)
	}

	text, err := s.Docs.Text(ctx, doc)
	if err != nil {
		if errors.Is(err, documents.ErrExtraction) {
			return scoring.AnalysisResult{}, fmt.Errorf("document %s mime %s: %w", doc.ID, doc.MimeType, err)
		}
		return scoring.AnalysisResult{}, fmt.Errorf("%w: document %s text: %w", errStorage, doc.ID, err)
	}

	return s.score(ctx, analysis.ID, text, analysis.JobDescription)
}

// score runs the scorer, consulting the cache when no drafted override applies.
func (s *Service) score(ctx context.Context, analysisID, text, jobDescription string) (scoring.AnalysisResult, error) {
	opts := scoring.Options{JobDescription: jobDescription}
	opts.Override = s.draftOverride(ctx, analysisID, text, jobDescription)

	key := cache.Key(s.weightsVersion(), text, jobDescription)
	if s.Cache != nil && opts.Override == nil {
		cached, err := s.Cache.Get(ctx, key)
		switch {
		case err == nil:
			metrics.IncCacheHit()
			return cached, nil
		case errors.Is(err, cache.ErrMiss):
			metrics.IncCacheMiss()
		default:
			metrics.IncCacheMiss()
			telemetry.Warn("analysis.cache_get_failed", map[string]any{
				"analysis_id": analysisID,
				"error":       sanitizeError(err),
			})
		}
	}

	result, err := s.analyzer().Analyze(text, opts)
	if err != nil {
		return scoring.AnalysisResult{}, err
	}

	if s.Cache != nil && opts.Override == nil {
		if err := s.Cache.Set(ctx, key, result, s.CacheTTL); err != nil {
			telemetry.Warn("analysis.cache_set_failed", map[string]any{
				"analysis_id": analysisID,
				"error":       sanitizeError(err),
			})
		}
	}
	return result, nil
}

// draftOverride asks the LLM collaborator for a draft. Any failure falls back
// to heuristic scoring; the classified failure is logged.
func (s *Service) draftOverride(ctx context.Context, analysisID, text, jobDescription string) *scoring.Override {
	if s.LLM == nil {
		return nil
	}
	timeout := s.LLMTimeout
	if timeout <= 0 {
		timeout = defaultLLMTimeout
	}
	llmCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := newRetryingLLM(s.LLM, analysisID, requestIDFromContext(ctx))
	raw, err := client.DraftAnalysis(llmCtx, llm.DraftInput{ResumeText: text, JobDescription: jobDescription})
	if err != nil {
		if !errors.Is(err, llm.ErrNotImplemented) {
			s.logDraftFailure(ctx, analysisID, fmt.Errorf("llm draft: %w", err))
		}
		return nil
	}
	draft, err := llm.ParseDraft(raw)
	if err != nil {
		s.logDraftFailure(ctx, analysisID, err)
		return nil
	}
	if draft.OverallScore == nil && len(draft.Recommendations) == 0 {
		return nil
	}
	return &scoring.Override{
		OverallScore:    draft.OverallScore,
		Recommendations: draft.Recommendations,
	}
}

func (s *Service) logDraftFailure(ctx context.Context, analysisID string, err error) {
	code, retryable := classifyFailure(err)
	telemetry.Warn("analysis.draft_skipped", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"analysis_id": analysisID,
		"error_code":  code,
		"retryable":   retryable,
		"error":       sanitizeError(err),
	})
}

func (s *Service) analyzer() *scoring.Analyzer {
	if s.Analyzer != nil {
		return s.Analyzer
	}
	return scoring.NewAnalyzer(scoring.DefaultWeights())
}

func (s *Service) weightsVersion() string {
	if strings.TrimSpace(s.WeightsVersion) != "" {
		return s.WeightsVersion
	}
	return s.analyzer().Weights.Fingerprint()
}

func (s *Service) failAnalysis(ctx context.Context, analysis Analysis, err error, startedAt *time.Time) {
	code, retryable := classifyFailure(err)
	msg := sanitizeError(err)
	completedAt := time.Now().UTC()
	if updateErr := s.Repo.Fail(context.Background(), analysis.ID, code, msg, retryable, completedAt); updateErr != nil {
		telemetry.Error("analysis.fail_update", map[string]any{
			"analysis_id": analysis.ID,
			"error":       sanitizeError(updateErr),
			"cause":       msg,
		})
	}
	metrics.IncAnalysisFailed(code)
	if startedAt != nil {
		metrics.ObserveAnalysisDurationMs(durationMs(startedAt, &completedAt))
	}
	fields := logFields(ctx, analysis)
	fields["status"] = StatusFailed
	fields["status_transition"] = "processing->failed"
	fields["duration_ms"] = durationMs(startedAt, &completedAt)
	fields["error_code"] = code
	fields["retryable"] = retryable
	fields["error"] = msg
	telemetry.Error("analysis.status", fields)
}

func durationMs(startedAt, completedAt *time.Time) float64 {
	if startedAt == nil || completedAt == nil {
		return 0
	}
	return float64(completedAt.Sub(*startedAt).Microseconds()) / 1000.0
}

func classifyFailure(err error) (string, bool) {
	switch {
	case err == nil:
		return ErrorCodeInternal, false
	case errors.Is(err, scoring.ErrInvalidInput), errors.Is(err, ErrInvalidInput), errors.Is(err, documents.ErrNotFound):
		return ErrorCodeValidation, false
	case errors.Is(err, documents.ErrExtraction):
		return ErrorCodeExtraction, false
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorCodeLLMTimeout, true
	case errors.Is(err, llm.ErrSchemaMismatch):
		return ErrorCodeLLMSchemaMismatch, false
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return ErrorCodeLLMUnavailable, true
	case errors.Is(err, errStorage):
		return ErrorCodeStorage, true
	}
	return ErrorCodeInternal, false
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
