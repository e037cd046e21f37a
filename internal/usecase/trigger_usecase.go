package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sweepLockTTL bounds how long a trigger suppresses a re-fire of the same
// sweep. A crashed sweep frees its slot when the lock expires.
const sweepLockTTL = 2 * time.Minute

// TaskRunner hands work off to a background task with its own lifecycle and
// error logging, so trigger HTTP responses never wait on a sweep.
type TaskRunner interface {
	Go(name string, task func(ctx context.Context) error)
}

type TriggerUsecase interface {
	// OnJobPublished invalidates the job's cached matches and starts a
	// job-centric sweep. Returns false when an identical sweep is already
	// running.
	OnJobPublished(ctx context.Context, jobID uuid.UUID) (bool, error)
	// OnProfileUpdated is the candidate-centric counterpart.
	OnProfileUpdated(ctx context.Context, candidateID uuid.UUID) (bool, error)
	// OnApplicationSubmitted runs the single-pair path in the background.
	OnApplicationSubmitted(ctx context.Context, candidateID, jobID uuid.UUID) error
}

type Trigger struct {
	invalidator InvalidationUsecase
	sweeps      SweepUsecase
	cache       MatchCache
	runner      TaskRunner
	logger      *zap.Logger
}

func NewTrigger(
	invalidator InvalidationUsecase,
	sweeps SweepUsecase,
	cache MatchCache,
	runner TaskRunner,
	logger *zap.Logger,
) *Trigger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Trigger{
		invalidator: invalidator,
		sweeps:      sweeps,
		cache:       cache,
		runner:      runner,
		logger:      logger,
	}
}

func (t *Trigger) OnJobPublished(ctx context.Context, jobID uuid.UUID) (bool, error) {
	if jobID == uuid.Nil {
		return false, ErrInvalidPair
	}

	// The publishing action must succeed even if matching hiccups, so
	// invalidation failures are telemetry, not errors.
	if err := t.invalidator.Invalidate(ctx, uuid.Nil, jobID); err != nil {
		t.logger.Error("job invalidation failed", zap.String("job_id", jobID.String()), zap.Error(err))
	}

	if !t.acquireSweepSlot(ctx, SweepKindJob, jobID) {
		return false, nil
	}

	t.runner.Go("job-sweep:"+jobID.String(), func(ctx context.Context) error {
		_, err := t.sweeps.RunJobSweep(ctx, jobID)
		return err
	})
	return true, nil
}

func (t *Trigger) OnProfileUpdated(ctx context.Context, candidateID uuid.UUID) (bool, error) {
	if candidateID == uuid.Nil {
		return false, ErrInvalidPair
	}

	if err := t.invalidator.Invalidate(ctx, candidateID, uuid.Nil); err != nil {
		t.logger.Error("candidate invalidation failed", zap.String("candidate_id", candidateID.String()), zap.Error(err))
	}

	if !t.acquireSweepSlot(ctx, SweepKindCandidate, candidateID) {
		return false, nil
	}

	t.runner.Go("candidate-sweep:"+candidateID.String(), func(ctx context.Context) error {
		_, err := t.sweeps.RunCandidateSweep(ctx, candidateID)
		return err
	})
	return true, nil
}

func (t *Trigger) OnApplicationSubmitted(ctx context.Context, candidateID, jobID uuid.UUID) error {
	if candidateID == uuid.Nil || jobID == uuid.Nil {
		return ErrInvalidPair
	}

	t.runner.Go("application:"+candidateID.String()+":"+jobID.String(), func(ctx context.Context) error {
		outcome, err := t.sweeps.NotifyPair(ctx, candidateID, jobID)
		if err != nil {
			return err
		}
		t.logger.Info("application pair processed",
			zap.String("candidate_id", candidateID.String()),
			zap.String("job_id", jobID.String()),
			zap.Bool("sent", outcome.Sent),
			zap.String("reason", outcome.Reason),
		)
		return nil
	})
	return nil
}

// acquireSweepSlot is a best-effort overlap guard. With redis down it always
// grants the slot: duplicate sweeps waste work but stay correct, because the
// notification markers still dedupe sends.
func (t *Trigger) acquireSweepSlot(ctx context.Context, kind string, id uuid.UUID) bool {
	if t.cache == nil {
		return true
	}
	ok, err := t.cache.SetIfNotExists(ctx, sweepLockKey(kind, id), "1", sweepLockTTL)
	if err != nil {
		return true
	}
	if !ok {
		t.logger.Info("sweep already running, skipping",
			zap.String("kind", kind),
			zap.String("trigger_id", id.String()),
		)
	}
	return ok
}
