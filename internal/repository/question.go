package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bhushananokar/interview-assistant/pkg/model"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) CreateQuestions(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	const q = `INSERT INTO interview_questions (interview_id, question, question_type, skill) VALUES ($1, $2, $3, $4)`

	for _, question := range questions {
		batch.Queue(q, question.InterviewID, question.Question, question.Type, question.Skill)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	// Execute each queued statement
	for i := 0; i < len(questions); i++ {
		_, err := br.Exec()
		if err != nil {
			return fmt.Errorf("batch insert question %d: %w", i, err)
		}
	}

	return nil
}

func (r *Repository) GetQuestionByID(ctx context.Context, questionID int64) (*model.Question, error) {
	const q = `
SELECT id, interview_id, question, question_type, skill, response, evaluation, score, created_at
FROM interview_questions WHERE id = $1
`
	row := r.db.QueryRow(ctx, q, questionID)
	return scanQuestion(row)
}

func (r *Repository) ListQuestionsByInterviewID(ctx context.Context, interviewID int64) ([]model.Question, error) {
	const q = `
SELECT id, interview_id, question, question_type, skill, response, evaluation, score, created_at
FROM interview_questions
WHERE interview_id = $1
ORDER BY id ASC
`
	rows, err := r.db.Query(ctx, q, interviewID)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []model.Question
	for rows.Next() {
		qs, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *qs)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (r *Repository) SaveResponse(ctx context.Context, questionID int64, response string) error {
	const q = `UPDATE interview_questions SET response = $1 WHERE id = $2`
	tag, err := r.db.Exec(ctx, q, response, questionID)
	if err != nil {
		return fmt.Errorf("save response: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("question not found")
	}
	return nil
}

// SaveEvaluation persists the evaluation blob and duplicates the score into
// its own column for query convenience.
func (r *Repository) SaveEvaluation(ctx context.Context, questionID int64, evaluation *model.Evaluation) error {
	blob, err := json.Marshal(evaluation)
	if err != nil {
		return fmt.Errorf("marshal evaluation: %w", err)
	}

	const q = `UPDATE interview_questions SET evaluation = $1, score = $2 WHERE id = $3`
	tag, err := r.db.Exec(ctx, q, blob, evaluation.Score, questionID)
	if err != nil {
		return fmt.Errorf("save evaluation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("question not found")
	}
	return nil
}

// CountProgress returns answered vs. total question counts for one interview.
func (r *Repository) CountProgress(ctx context.Context, interviewID int64) (answered, total int, err error) {
	const q = `
SELECT COUNT(response), COUNT(*)
FROM interview_questions WHERE interview_id = $1
`
	if err := r.db.QueryRow(ctx, q, interviewID).Scan(&answered, &total); err != nil {
		return 0, 0, fmt.Errorf("count progress: %w", err)
	}
	return answered, total, nil
}

// ListSkillScores returns skill/score pairs for every answered question of one
// interview, optionally restricted to a single skill.
func (r *Repository) ListSkillScores(ctx context.Context, interviewID int64, skill string) ([]model.Question, error) {
	q := `
SELECT id, interview_id, question, question_type, skill, response, evaluation, score, created_at
FROM interview_questions
WHERE interview_id = $1 AND response IS NOT NULL
`
	args := []interface{}{interviewID}
	if skill != "" {
		q += " AND skill = $2"
		args = append(args, skill)
	}
	q += " ORDER BY id ASC"

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query skill scores: %w", err)
	}
	defer rows.Close()

	var out []model.Question
	for rows.Next() {
		qs, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *qs)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

// CountSkillQuestions returns how many questions exist for one skill of an interview.
func (r *Repository) CountSkillQuestions(ctx context.Context, interviewID int64, skill string) (int, error) {
	const q = `SELECT COUNT(*) FROM interview_questions WHERE interview_id = $1 AND skill = $2`
	var count int
	if err := r.db.QueryRow(ctx, q, interviewID, skill).Scan(&count); err != nil {
		return 0, fmt.Errorf("count skill questions: %w", err)
	}
	return count, nil
}

func scanQuestion(row pgx.Row) (*model.Question, error) {
	var qs model.Question
	var blob []byte
	if err := row.Scan(
		&qs.ID, &qs.InterviewID, &qs.Question, &qs.Type, &qs.Skill,
		&qs.Response, &blob, &qs.Score, &qs.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan question: %w", err)
	}
	if len(blob) > 0 {
		var ev model.Evaluation
		if err := json.Unmarshal(blob, &ev); err != nil {
			return nil, fmt.Errorf("decode evaluation: %w", err)
		}
		qs.Evaluation = &ev
	}
	return &qs, nil
}
