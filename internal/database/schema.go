package database

import (
	"context"
	"fmt"
)

// schemaStatements create the two tables this subsystem owns. Candidate and
// job tables belong to collaborator services and are never created here.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS match_records (
		id UUID PRIMARY KEY,
		candidate_id UUID NOT NULL,
		job_id UUID NOT NULL,
		skill_match DOUBLE PRECISION NOT NULL DEFAULT 0,
		tool_match DOUBLE PRECISION NOT NULL DEFAULT 0,
		category_match DOUBLE PRECISION NOT NULL DEFAULT 0,
		work_mode_match DOUBLE PRECISION NOT NULL DEFAULT 0,
		semantic_similarity DOUBLE PRECISION NOT NULL DEFAULT 0,
		final_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		matched_skills TEXT[] NOT NULL DEFAULT '{}',
		skill_gap TEXT[] NOT NULL DEFAULT '{}',
		computed_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		active BOOLEAN NOT NULL DEFAULT TRUE,
		CONSTRAINT match_records_pair_unique UNIQUE (candidate_id, job_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_match_records_candidate ON match_records (candidate_id) WHERE active`,
	`CREATE INDEX IF NOT EXISTS idx_match_records_job ON match_records (job_id) WHERE active`,
	`CREATE TABLE IF NOT EXISTS notification_markers (
		id UUID PRIMARY KEY,
		candidate_id UUID NOT NULL,
		job_id UUID NOT NULL,
		channel TEXT NOT NULL DEFAULT '',
		score DOUBLE PRECISION NOT NULL DEFAULT 0,
		sent_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT notification_markers_pair_unique UNIQUE (candidate_id, job_id)
	)`,
}

// EnsureSchema creates the subsystem's owned tables when missing. The pair
// uniqueness constraints are load-bearing: upsert and insert-if-absent
// semantics depend on them.
func EnsureSchema(ctx context.Context, db DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
