package usecase

import (
	"context"
	"fmt"

	"campus-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultProgressEvery = 25

const (
	SweepKindJob       = "job"
	SweepKindCandidate = "candidate"
)

type SweepCounts struct {
	Processed int
	Matched   int
	Notified  int
	Failed    int
}

type SweepProgressEvent struct {
	Kind      string
	TriggerID uuid.UUID
	Counts    SweepCounts
	Done      bool
}

// ProgressSink receives sweep progress at a fixed cadence and on completion.
type ProgressSink interface {
	SweepProgress(evt SweepProgressEvent)
}

type SweepUsecase interface {
	// RunJobSweep fans a job out over every active candidate.
	RunJobSweep(ctx context.Context, jobID uuid.UUID) (SweepCounts, error)
	// RunCandidateSweep fans a candidate out over every open job.
	RunCandidateSweep(ctx context.Context, candidateID uuid.UUID) (SweepCounts, error)
	// NotifyPair runs the single-pair path (application submitted).
	NotifyPair(ctx context.Context, candidateID, jobID uuid.UUID) (NotifyOutcome, error)
}

// Sweep is the bulk orchestrator: one sequential loop per trigger, each pair
// a self-contained resolve+notify unit. A failing pair is counted and
// logged, never fatal to the sweep.
type Sweep struct {
	candidates    repository.CandidateRepository
	jobs          repository.JobRepository
	resolver      MatchResolverUsecase
	gate          NotificationUsecase
	progress      ProgressSink
	progressEvery int
	logger        *zap.Logger
}

func NewSweep(
	candidates repository.CandidateRepository,
	jobs repository.JobRepository,
	resolver MatchResolverUsecase,
	gate NotificationUsecase,
	progress ProgressSink,
	progressEvery int,
	logger *zap.Logger,
) *Sweep {
	if progressEvery <= 0 {
		progressEvery = DefaultProgressEvery
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweep{
		candidates:    candidates,
		jobs:          jobs,
		resolver:      resolver,
		gate:          gate,
		progress:      progress,
		progressEvery: progressEvery,
		logger:        logger,
	}
}

func (s *Sweep) RunJobSweep(ctx context.Context, jobID uuid.UUID) (SweepCounts, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return SweepCounts{}, fmt.Errorf("job sweep: %w", err)
	}

	candidates, err := s.candidates.ListActive(ctx)
	if err != nil {
		return SweepCounts{}, fmt.Errorf("job sweep: list candidates: %w", err)
	}

	counts := SweepCounts{}
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return counts, err
		}
		s.processPair(ctx, candidate, job, &counts)
		s.maybeReport(SweepKindJob, jobID, counts, false)
	}

	s.report(SweepKindJob, jobID, counts, true)
	return counts, nil
}

func (s *Sweep) RunCandidateSweep(ctx context.Context, candidateID uuid.UUID) (SweepCounts, error) {
	candidate, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return SweepCounts{}, fmt.Errorf("candidate sweep: %w", err)
	}

	jobs, err := s.jobs.ListActive(ctx)
	if err != nil {
		return SweepCounts{}, fmt.Errorf("candidate sweep: list jobs: %w", err)
	}

	counts := SweepCounts{}
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return counts, err
		}
		s.processPair(ctx, candidate, job, &counts)
		s.maybeReport(SweepKindCandidate, candidateID, counts, false)
	}

	s.report(SweepKindCandidate, candidateID, counts, true)
	return counts, nil
}

func (s *Sweep) NotifyPair(ctx context.Context, candidateID, jobID uuid.UUID) (NotifyOutcome, error) {
	candidate, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return NotifyOutcome{}, err
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return NotifyOutcome{}, err
	}

	rec, err := s.resolver.Resolve(ctx, candidateID, jobID, false)
	if err != nil {
		return NotifyOutcome{}, err
	}
	return s.gate.MaybeNotify(ctx, candidate, job, rec)
}

// processPair runs one resolve+notify unit. Processed counts every attempt,
// including the ones that fail.
func (s *Sweep) processPair(ctx context.Context, candidate repository.Candidate, job repository.Job, counts *SweepCounts) {
	counts.Processed++

	rec, err := s.resolver.Resolve(ctx, candidate.ID, job.ID, false)
	if err != nil {
		counts.Failed++
		s.logger.Warn("pair resolution failed",
			zap.String("candidate_id", candidate.ID.String()),
			zap.String("job_id", job.ID.String()),
			zap.Error(err),
		)
		return
	}

	if rec.FinalScore >= NotifyThreshold {
		counts.Matched++
	}

	outcome, err := s.gate.MaybeNotify(ctx, candidate, job, rec)
	if err != nil {
		counts.Failed++
		s.logger.Warn("pair notification failed",
			zap.String("candidate_id", candidate.ID.String()),
			zap.String("job_id", job.ID.String()),
			zap.Error(err),
		)
		return
	}
	if outcome.Sent {
		counts.Notified++
	}
}

func (s *Sweep) maybeReport(kind string, triggerID uuid.UUID, counts SweepCounts, done bool) {
	if counts.Processed%s.progressEvery != 0 {
		return
	}
	s.report(kind, triggerID, counts, done)
}

func (s *Sweep) report(kind string, triggerID uuid.UUID, counts SweepCounts, done bool) {
	s.logger.Info("sweep progress",
		zap.String("kind", kind),
		zap.String("trigger_id", triggerID.String()),
		zap.Int("processed", counts.Processed),
		zap.Int("matched", counts.Matched),
		zap.Int("notified", counts.Notified),
		zap.Int("failed", counts.Failed),
		zap.Bool("done", done),
	)
	if s.progress != nil {
		s.progress.SweepProgress(SweepProgressEvent{
			Kind:      kind,
			TriggerID: triggerID,
			Counts:    counts,
			Done:      done,
		})
	}
}
