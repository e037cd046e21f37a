package usecase

import (
	"context"
	"errors"

	"campus-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNothingToInvalidate = errors.New("candidate or job id is required")

type InvalidationUsecase interface {
	// Invalidate marks cached match records stale for a candidate, a job,
	// or both. Collaborators call this after a profile or posting write.
	Invalidate(ctx context.Context, candidateID, jobID uuid.UUID) error
}

type Invalidation struct {
	records repository.MatchRecordRepository
	cache   MatchCache
	logger  *zap.Logger
}

func NewInvalidation(records repository.MatchRecordRepository, cache MatchCache, logger *zap.Logger) *Invalidation {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Invalidation{records: records, cache: cache, logger: logger}
}

func (u *Invalidation) Invalidate(ctx context.Context, candidateID, jobID uuid.UUID) error {
	if candidateID == uuid.Nil && jobID == uuid.Nil {
		return ErrNothingToInvalidate
	}

	if candidateID != uuid.Nil {
		if err := u.records.InvalidateByCandidate(ctx, candidateID); err != nil {
			return err
		}
	}
	if jobID != uuid.Nil {
		if err := u.records.InvalidateByJob(ctx, jobID); err != nil {
			return err
		}
	}

	// Fast-path purge is best effort; the store's active flags already
	// force recomputation.
	if u.cache != nil {
		if err := u.cache.InvalidateMatches(ctx, candidateID, jobID); err != nil {
			u.logger.Debug("fast-path invalidation failed", zap.Error(err))
		}
	}
	return nil
}
