package repository

import (
	"context"
	"fmt"

	"github.com/bhushananokar/interview-assistant/pkg/model"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) CreateInterview(ctx context.Context, interview *model.Interview) (*int64, error) {
	const q = `
INSERT INTO interviews (candidate_name, skill_area, status)
VALUES ($1, $2, $3) RETURNING id
`
	row := r.db.QueryRow(ctx, q, interview.CandidateName, interview.SkillArea, interview.Status)
	var interviewID int64
	if err := row.Scan(&interviewID); err != nil {
		return nil, fmt.Errorf("insert interview: %w", err)
	}
	return &interviewID, nil
}

func (r *Repository) UpdateInterview(ctx context.Context, interviewID int64, updates map[string]interface{}) error {
	validCols := map[string]bool{
		"status": true, "score": true, "feedback": true, "completed_at": true,
	}

	query := "UPDATE interviews SET "
	args := []interface{}{}
	argId := 1

	for col, val := range updates {
		if !validCols[col] {
			continue // Skip invalid columns
		}

		if argId > 1 {
			query += ", "
		}

		query += fmt.Sprintf("%s = $%d", col, argId)
		args = append(args, val)
		argId++
	}

	if argId == 1 {
		return fmt.Errorf("no valid columns to update")
	}

	query += fmt.Sprintf(" WHERE id = $%d", argId)
	args = append(args, interviewID)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update interview: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("interview not found")
	}

	return nil
}

func (r *Repository) GetInterviewByID(ctx context.Context, interviewID int64) (*model.Interview, error) {
	const q = `
SELECT id, candidate_name, skill_area, status, score, feedback, created_at, completed_at
FROM interviews WHERE id = $1
`
	var iv model.Interview
	row := r.db.QueryRow(ctx, q, interviewID)
	err := row.Scan(
		&iv.ID, &iv.CandidateName, &iv.SkillArea, &iv.Status, &iv.Score,
		&iv.Feedback, &iv.CreatedAt, &iv.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

func (r *Repository) ListRecentInterviews(ctx context.Context, limit int) ([]model.Interview, error) {
	const q = `
SELECT id, candidate_name, skill_area, status, score, feedback, created_at, completed_at
FROM interviews ORDER BY created_at DESC LIMIT $1
`
	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query interviews: %w", err)
	}
	defer rows.Close()

	out := make([]model.Interview, 0, limit)
	for rows.Next() {
		var iv model.Interview
		if err := rows.Scan(
			&iv.ID, &iv.CandidateName, &iv.SkillArea, &iv.Status, &iv.Score,
			&iv.Feedback, &iv.CreatedAt, &iv.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan interview row: %w", err)
		}
		out = append(out, iv)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (r *Repository) DeleteInterview(ctx context.Context, interviewID int64) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		const qQuestions = `DELETE FROM interview_questions WHERE interview_id = $1`
		if _, err := tx.Exec(ctx, qQuestions, interviewID); err != nil {
			return fmt.Errorf("delete questions: %w", err)
		}

		const qInterview = `DELETE FROM interviews WHERE id = $1`
		tag, err := tx.Exec(ctx, qInterview, interviewID)
		if err != nil {
			return fmt.Errorf("delete interview: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}

		return nil
	})
}
