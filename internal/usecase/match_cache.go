package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MatchCache is the fast-path cache surface the pipeline needs. The redis
// implementation degrades to no-ops when unavailable; nothing here is
// authoritative.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateMatches(ctx context.Context, candidateID, jobID uuid.UUID) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

func matchCacheKey(candidateID, jobID uuid.UUID) string {
	return "match:" + candidateID.String() + ":" + jobID.String()
}

func sweepLockKey(kind string, id uuid.UUID) string {
	return "sweep:lock:" + kind + ":" + id.String()
}
