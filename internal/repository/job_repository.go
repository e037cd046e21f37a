package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campus-match/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

// Job is the read-only collaborator view of a posting. Postings are owned
// elsewhere; this subsystem only reads them.
type Job struct {
	ID          uuid.UUID
	Title       string
	Company     string
	Description string
	Deadline    *time.Time
	Active      bool
}

// ContentText is the free text the analyzer and embedder consume.
func (j Job) ContentText() string {
	return j.Title + "\n" + j.Description
}

type JobRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	// ListActive returns postings that are open and whose deadline has not
	// passed.
	ListActive(ctx context.Context) ([]Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (Job, error) {
	var j Job
	row := r.db.QueryRow(ctx,
		`SELECT id, COALESCE(title, ''), COALESCE(company, ''), COALESCE(description, ''), deadline, active
		 FROM jobs
		 WHERE id = $1`,
		id,
	)
	if err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Description, &j.Deadline, &j.Active); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrJobNotFound
		}
		return Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) ListActive(ctx context.Context) ([]Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, COALESCE(title, ''), COALESCE(company, ''), COALESCE(description, ''), deadline, active
		 FROM jobs
		 WHERE active AND (deadline IS NULL OR deadline > now())
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Job, 0)
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Description, &j.Deadline, &j.Active); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
