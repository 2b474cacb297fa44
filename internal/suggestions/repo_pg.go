package suggestions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring/suggest"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const suggestionColumns = `id, analysis_id, user_id, rank, type, priority, ats_impact, section, message, original_text, suggested_text, status, created_at, updated_at, resolved_at`

// CreateBatch inserts all items in a single transaction.
func (r *PGRepo) CreateBatch(ctx context.Context, items []Suggestion) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const query = `
INSERT INTO suggestions (id, analysis_id, user_id, rank, type, priority, ats_impact, section, message, original_text, suggested_text, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, query,
			item.ID,
			item.AnalysisID,
			item.UserID,
			item.Rank,
			string(item.Type),
			string(item.Priority),
			item.ATSImpact,
			nullString(item.Section),
			item.Message,
			nullString(item.OriginalText),
			nullString(item.SuggestedText),
			string(item.Status),
			item.CreatedAt,
			item.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert suggestion %s: %w", item.ID, err)
		}
	}
	return tx.Commit()
}

func (r *PGRepo) GetByID(ctx context.Context, userID, suggestionID string) (Suggestion, error) {
	query := `SELECT ` + suggestionColumns + `
FROM suggestions
WHERE user_id = $1 AND id = $2`
	item, err := scanSuggestion(r.DB.QueryRowContext(ctx, query, userID, suggestionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Suggestion{}, ErrNotFound
		}
		return Suggestion{}, err
	}
	return item, nil
}

func (r *PGRepo) ListByAnalysis(ctx context.Context, userID, analysisID string) ([]Suggestion, error) {
	query := `SELECT ` + suggestionColumns + `
FROM suggestions
WHERE user_id = $1 AND analysis_id = $2
ORDER BY rank ASC`
	rows, err := r.DB.QueryContext(ctx, query, userID, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Suggestion{}
	for rows.Next() {
		item, err := scanSuggestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// UpdateStatus is a compare-and-set on status.
func (r *PGRepo) UpdateStatus(ctx context.Context, userID, suggestionID string, from, to suggest.Status, at time.Time) error {
	const query = `
UPDATE suggestions
SET status = $4, updated_at = $5, resolved_at = $5
WHERE user_id = $1 AND id = $2 AND status = $3`
	res, err := r.DB.ExecContext(ctx, query, userID, suggestionID, string(from), string(to), at)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, userID, suggestionID); err != nil {
		return err
	}
	return ErrInvalidTransition
}

func (r *PGRepo) ExpirePendingBefore(ctx context.Context, cutoff, at time.Time) (int, error) {
	const query = `
UPDATE suggestions
SET status = 'expired', updated_at = $2, resolved_at = $2
WHERE status = 'pending' AND created_at < $1`
	res, err := r.DB.ExecContext(ctx, query, cutoff, at)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSuggestion(row rowScanner) (Suggestion, error) {
	var (
		item          Suggestion
		typ           string
		priority      string
		status        string
		section       sql.NullString
		originalText  sql.NullString
		suggestedText sql.NullString
		resolvedAt    sql.NullTime
	)
	if err := row.Scan(
		&item.ID,
		&item.AnalysisID,
		&item.UserID,
		&item.Rank,
		&typ,
		&priority,
		&item.ATSImpact,
		&section,
		&item.Message,
		&originalText,
		&suggestedText,
		&status,
		&item.CreatedAt,
		&item.UpdatedAt,
		&resolvedAt,
	); err != nil {
		return Suggestion{}, err
	}
	item.Type = suggest.Type(typ)
	item.Priority = suggest.Priority(priority)
	parsed, ok := suggest.ParseStatus(status)
	if !ok {
		return Suggestion{}, fmt.Errorf("suggestion %s: unknown status %q", item.ID, status)
	}
	item.Status = parsed
	item.Section = section.String
	item.OriginalText = originalText.String
	item.SuggestedText = suggestedText.String
	if resolvedAt.Valid {
		t := resolvedAt.Time
		item.ResolvedAt = &t
	}
	return item, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
