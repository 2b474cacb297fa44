package suggestions

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring/suggest"
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

func TestPGRepoCreateBatchUsesTransaction(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	item := Suggestion{
		ID:         "s-1",
		AnalysisID: "analysis-1",
		UserID:     "user-1",
		Type:       suggest.TypeStructure,
		Priority:   suggest.PriorityCritical,
		ATSImpact:  20,
		Section:    "experience",
		Message:    "Add an experience section",
		Status:     suggest.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO suggestions").
		WithArgs("s-1", "analysis-1", "user-1", 0, "structure", "critical", 20, sqlmock.AnyArg(), "Add an experience section", sqlmock.AnyArg(), sqlmock.AnyArg(), "pending", now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.CreateBatch(context.Background(), []Suggestion{item}); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStatusStaleTransition(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE suggestions")).
		WithArgs("user-1", "s-1", "pending", "applied", now).
		WillReturnResult(sqlmock.NewResult(0, 0))
	rows := sqlmock.NewRows([]string{"id", "analysis_id", "user_id", "rank", "type", "priority", "ats_impact", "section", "message", "original_text", "suggested_text", "status", "created_at", "updated_at", "resolved_at"}).
		AddRow("s-1", "analysis-1", "user-1", 0, "structure", "critical", 20, "experience", "Add an experience section", nil, nil, "dismissed", now, now, now)
	mock.ExpectQuery("SELECT (.+) FROM suggestions").
		WithArgs("user-1", "s-1").
		WillReturnRows(rows)

	err := repo.UpdateStatus(context.Background(), "user-1", "s-1", suggest.StatusPending, suggest.StatusApplied, now)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoExpirePendingBefore(t *testing.T) {
	repo, mock := newMockRepo(t)
	cutoff := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	now := cutoff.Add(24 * time.Hour)

	mock.ExpectExec(regexp.QuoteMeta("SET status = 'expired'")).
		WithArgs(cutoff, now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.ExpirePendingBefore(context.Background(), cutoff, now)
	if err != nil {
		t.Fatalf("ExpirePendingBefore: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 rows, got %d", n)
	}
}
