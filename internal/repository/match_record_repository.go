package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campus-match/internal/database"
	"campus-match/internal/domain/match"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MatchRecordRepository is the durable match store. It is time-oblivious:
// TTL policy lives in the resolver, so the store can be swapped without
// re-deriving freshness rules.
type MatchRecordRepository interface {
	// Get returns the record for the pair only if it is active.
	Get(ctx context.Context, candidateID, jobID uuid.UUID) (match.Record, bool, error)
	// Upsert atomically replaces or inserts the pair's record, marking it
	// active and stamping computed_at.
	Upsert(ctx context.Context, rec match.Record) error
	InvalidateByCandidate(ctx context.Context, candidateID uuid.UUID) error
	InvalidateByJob(ctx context.Context, jobID uuid.UUID) error
	// ListActiveByCandidate returns the candidate's active records ordered
	// by final score, best first.
	ListActiveByCandidate(ctx context.Context, candidateID uuid.UUID) ([]match.Record, error)
}

type PostgresMatchRecordRepository struct {
	db database.DB
}

func NewPostgresMatchRecordRepository(db database.DB) *PostgresMatchRecordRepository {
	return &PostgresMatchRecordRepository{db: db}
}

const matchRecordColumns = `candidate_id, job_id, skill_match, tool_match, category_match,
	work_mode_match, semantic_similarity, final_score, matched_skills, skill_gap,
	computed_at, active`

func (r *PostgresMatchRecordRepository) Get(ctx context.Context, candidateID, jobID uuid.UUID) (match.Record, bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+matchRecordColumns+`
		 FROM match_records
		 WHERE candidate_id = $1 AND job_id = $2 AND active`,
		candidateID, jobID,
	)

	rec, err := scanMatchRecord(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return match.Record{}, false, nil
		}
		return match.Record{}, false, err
	}
	return rec, true, nil
}

func (r *PostgresMatchRecordRepository) Upsert(ctx context.Context, rec match.Record) error {
	if rec.CandidateID == uuid.Nil || rec.JobID == uuid.Nil {
		return errors.New("match record requires candidate and job ids")
	}
	computedAt := rec.ComputedAt
	if computedAt.IsZero() {
		computedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO match_records (id, `+matchRecordColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, TRUE)
		 ON CONFLICT (candidate_id, job_id) DO UPDATE SET
			skill_match = EXCLUDED.skill_match,
			tool_match = EXCLUDED.tool_match,
			category_match = EXCLUDED.category_match,
			work_mode_match = EXCLUDED.work_mode_match,
			semantic_similarity = EXCLUDED.semantic_similarity,
			final_score = EXCLUDED.final_score,
			matched_skills = EXCLUDED.matched_skills,
			skill_gap = EXCLUDED.skill_gap,
			computed_at = EXCLUDED.computed_at,
			active = TRUE`,
		uuid.New(),
		rec.CandidateID,
		rec.JobID,
		rec.SkillMatch,
		rec.ToolMatch,
		rec.CategoryMatch,
		rec.WorkModeMatch,
		rec.SemanticSimilarity,
		rec.FinalScore,
		rec.MatchedSkills,
		rec.SkillGap,
		computedAt,
	)
	return err
}

func (r *PostgresMatchRecordRepository) InvalidateByCandidate(ctx context.Context, candidateID uuid.UUID) error {
	if candidateID == uuid.Nil {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`UPDATE match_records SET active = FALSE WHERE candidate_id = $1 AND active`,
		candidateID,
	)
	return err
}

func (r *PostgresMatchRecordRepository) InvalidateByJob(ctx context.Context, jobID uuid.UUID) error {
	if jobID == uuid.Nil {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`UPDATE match_records SET active = FALSE WHERE job_id = $1 AND active`,
		jobID,
	)
	return err
}

func (r *PostgresMatchRecordRepository) ListActiveByCandidate(ctx context.Context, candidateID uuid.UUID) ([]match.Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+matchRecordColumns+`
		 FROM match_records
		 WHERE candidate_id = $1 AND active
		 ORDER BY final_score DESC`,
		candidateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.Record, 0)
	for rows.Next() {
		rec, err := scanMatchRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanMatchRecord(row database.Row) (match.Record, error) {
	var rec match.Record
	err := row.Scan(
		&rec.CandidateID,
		&rec.JobID,
		&rec.SkillMatch,
		&rec.ToolMatch,
		&rec.CategoryMatch,
		&rec.WorkModeMatch,
		&rec.SemanticSimilarity,
		&rec.FinalScore,
		&rec.MatchedSkills,
		&rec.SkillGap,
		&rec.ComputedAt,
		&rec.Active,
	)
	return rec, err
}
