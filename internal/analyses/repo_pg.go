package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const analysisColumns = `id, document_id, user_id, job_description, weights_version, status, result, overall_score, grade, error_code, error_message, error_retryable, created_at, started_at, completed_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (id, document_id, user_id, job_description, weights_version, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	updatedAt := analysis.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = analysis.CreatedAt
	}
	_, err := r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.DocumentID,
		analysis.UserID,
		nullString(analysis.JobDescription),
		analysis.WeightsVersion,
		analysis.Status,
		analysis.CreatedAt,
		updatedAt,
	)
	return err
}

// GetByID fetches an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	query := `SELECT ` + analysisColumns + `
FROM analyses
WHERE id = $1`
	analysis, err := scanAnalysis(r.DB.QueryRowContext(ctx, query, analysisID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	return analysis, nil
}

// FindActive returns the newest queued or processing analysis for the inputs.
func (r *PGRepo) FindActive(ctx context.Context, userID, documentID, jobDescription string) (Analysis, error) {
	query := `SELECT ` + analysisColumns + `
FROM analyses
WHERE user_id = $1 AND document_id = $2 AND COALESCE(job_description, '') = $3
  AND status IN ('queued', 'processing')
ORDER BY created_at DESC
LIMIT 1`
	analysis, err := scanAnalysis(r.DB.QueryRowContext(ctx, query, userID, documentID, jobDescription))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	return analysis, nil
}

// ListByUser lists analyses for a user ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + analysisColumns + `
FROM analyses
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, analysis)
	}
	return out, rows.Err()
}

func (r *PGRepo) MarkProcessing(ctx context.Context, analysisID string, startedAt time.Time) error {
	const query = `
UPDATE analyses
SET status = 'processing', started_at = $2, updated_at = $2
WHERE id = $1`
	return r.exec(ctx, query, analysisID, startedAt)
}

func (r *PGRepo) Complete(ctx context.Context, analysisID string, result scoring.AnalysisResult, completedAt time.Time) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode analysis result: %w", err)
	}
	const query = `
UPDATE analyses
SET status = 'completed', result = $2, overall_score = $3, grade = $4,
    error_code = NULL, error_message = NULL, error_retryable = FALSE,
    completed_at = $5, updated_at = $5
WHERE id = $1`
	return r.exec(ctx, query, analysisID, payload, result.Overall, result.Grade, completedAt)
}

func (r *PGRepo) Fail(ctx context.Context, analysisID, code, message string, retryable bool, completedAt time.Time) error {
	const query = `
UPDATE analyses
SET status = 'failed', error_code = $2, error_message = $3, error_retryable = $4,
    completed_at = $5, updated_at = $5
WHERE id = $1`
	return r.exec(ctx, query, analysisID, code, message, retryable, completedAt)
}

func (r *PGRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var (
		a              Analysis
		jobDescription sql.NullString
		resultRaw      []byte
		overall        sql.NullInt64
		grade          sql.NullString
		errorCode      sql.NullString
		errorMessage   sql.NullString
		errorRetryable sql.NullBool
		startedAt      sql.NullTime
		completedAt    sql.NullTime
	)
	if err := row.Scan(
		&a.ID,
		&a.DocumentID,
		&a.UserID,
		&jobDescription,
		&a.WeightsVersion,
		&a.Status,
		&resultRaw,
		&overall,
		&grade,
		&errorCode,
		&errorMessage,
		&errorRetryable,
		&a.CreatedAt,
		&startedAt,
		&completedAt,
		&a.UpdatedAt,
	); err != nil {
		return Analysis{}, err
	}
	a.JobDescription = jobDescription.String
	if len(resultRaw) > 0 {
		var result scoring.AnalysisResult
		if err := json.Unmarshal(resultRaw, &result); err != nil {
			return Analysis{}, fmt.Errorf("decode analysis %s result: %w", a.ID, err)
		}
		a.Result = &result
	}
	if overall.Valid {
		v := int(overall.Int64)
		a.OverallScore = &v
	}
	a.Grade = grade.String
	a.ErrorCode = errorCode.String
	a.ErrorMessage = errorMessage.String
	a.ErrorRetryable = errorRetryable.Valid && errorRetryable.Bool
	if startedAt.Valid {
		t := startedAt.Time
		a.StartedAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		a.CompletedAt = &t
	}
	return a, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
