package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS interviews (
	id             BIGSERIAL PRIMARY KEY,
	candidate_name TEXT NOT NULL DEFAULT 'Anonymous',
	skill_area     TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL DEFAULT 'pending',
	score          DOUBLE PRECISION,
	feedback       TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	completed_at   TIMESTAMPTZ
)`,
	`CREATE TABLE IF NOT EXISTS interview_questions (
	id            BIGSERIAL PRIMARY KEY,
	interview_id  BIGINT NOT NULL REFERENCES interviews (id),
	question      TEXT NOT NULL,
	question_type TEXT NOT NULL DEFAULT 'general',
	skill         TEXT NOT NULL DEFAULT '',
	response      TEXT,
	evaluation    JSONB,
	score         DOUBLE PRECISION,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS idx_interview_questions_interview_id
	ON interview_questions (interview_id)`,
}

// EnsureSchema creates the two tables if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
