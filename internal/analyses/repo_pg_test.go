package analyses

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateStoresWeightsVersion(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	analysis := Analysis{
		ID:             "analysis-1",
		DocumentID:     "doc-1",
		UserID:         "user-1",
		WeightsVersion: "w-abc123",
		Status:         StatusQueued,
		CreatedAt:      now,
	}

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(
			analysis.ID,
			analysis.DocumentID,
			analysis.UserID,
			nil, // job_description
			analysis.WeightsVersion,
			analysis.Status,
			now,
			now,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), analysis); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDDecodesResult(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	columns := []string{"id", "document_id", "user_id", "job_description", "weights_version", "status", "result",
		"overall_score", "grade", "error_code", "error_message", "error_retryable", "created_at", "started_at", "completed_at", "updated_at"}

	mock.ExpectQuery("SELECT (.+) FROM analyses WHERE id = \\$1").
		WithArgs("analysis-1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			"analysis-1", "doc-1", "user-1", "Go engineer", "w-abc123", StatusCompleted,
			[]byte(`{"overall":77,"grade":"C"}`), int64(77), "C", nil, nil, false, now, now, now, now,
		))

	got, err := repo.GetByID(context.Background(), "analysis-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Result == nil || got.Result.Overall != 77 || got.Result.Grade != "C" {
		t.Fatalf("unexpected result %+v", got.Result)
	}
	if got.OverallScore == nil || *got.OverallScore != 77 {
		t.Fatalf("unexpected overall %v", got.OverallScore)
	}
	if got.JobDescription != "Go engineer" || got.CompletedAt == nil {
		t.Fatalf("unexpected analysis %+v", got)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM analyses").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoCompleteWritesScoreColumns(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	result := scoring.AnalysisResult{Overall: 88, Grade: "B"}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE analyses")).
		WithArgs("analysis-1", sqlmock.AnyArg(), 88, "B", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Complete(context.Background(), "analysis-1", result, now); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoFailMissingRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE analyses")).
		WithArgs("missing", ErrorCodeInternal, "boom", false, now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Fail(context.Background(), "missing", ErrorCodeInternal, "boom", false, now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
