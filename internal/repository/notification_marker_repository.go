package repository

import (
	"context"
	"errors"
	"time"

	"campus-match/internal/database"
	"campus-match/internal/domain/match"

	"github.com/google/uuid"
)

// NotificationMarkerRepository persists the "already notified" facts.
// InsertIfAbsent is the at-most-once guarantee: it must be a unique,
// conflict-detecting write, never a read-modify-write.
type NotificationMarkerRepository interface {
	Exists(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error)
	// InsertIfAbsent returns true when this call created the marker and
	// false when another writer already had.
	InsertIfAbsent(ctx context.Context, m match.NotificationMarker) (bool, error)
}

type PostgresNotificationMarkerRepository struct {
	db database.DB
}

func NewPostgresNotificationMarkerRepository(db database.DB) *PostgresNotificationMarkerRepository {
	return &PostgresNotificationMarkerRepository{db: db}
}

func (r *PostgresNotificationMarkerRepository) Exists(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM notification_markers WHERE candidate_id = $1 AND job_id = $2)`,
		candidateID, jobID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresNotificationMarkerRepository) InsertIfAbsent(ctx context.Context, m match.NotificationMarker) (bool, error) {
	if m.CandidateID == uuid.Nil || m.JobID == uuid.Nil {
		return false, errors.New("notification marker requires candidate and job ids")
	}
	sentAt := m.SentAt
	if sentAt.IsZero() {
		sentAt = time.Now().UTC()
	}

	affected, err := r.db.Exec(ctx,
		`INSERT INTO notification_markers (id, candidate_id, job_id, channel, score, sent_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (candidate_id, job_id) DO NOTHING`,
		uuid.New(),
		m.CandidateID,
		m.JobID,
		m.Channel,
		m.Score,
		sentAt,
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
