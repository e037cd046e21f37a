package repository

import (
	"context"
	"database/sql"
	"errors"

	"campus-match/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrCandidateNotFound = errors.New("candidate not found")

// Candidate is the read-only collaborator view of a candidate profile.
// Profiles are owned elsewhere; this subsystem only reads them.
type Candidate struct {
	ID          uuid.UUID
	FullName    string
	ProfileText string
	Contact     string
	Active      bool
}

type CandidateRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Candidate, error)
	ListActive(ctx context.Context) ([]Candidate, error)
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id uuid.UUID) (Candidate, error) {
	var c Candidate
	row := r.db.QueryRow(ctx,
		`SELECT id, COALESCE(full_name, ''), COALESCE(profile_text, ''), COALESCE(contact, ''), active
		 FROM candidates
		 WHERE id = $1`,
		id,
	)
	if err := row.Scan(&c.ID, &c.FullName, &c.ProfileText, &c.Contact, &c.Active); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Candidate{}, ErrCandidateNotFound
		}
		return Candidate{}, err
	}
	return c, nil
}

func (r *PostgresCandidateRepository) ListActive(ctx context.Context) ([]Candidate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, COALESCE(full_name, ''), COALESCE(profile_text, ''), COALESCE(contact, ''), active
		 FROM candidates
		 WHERE active
		 ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Candidate, 0)
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.ID, &c.FullName, &c.ProfileText, &c.Contact, &c.Active); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
