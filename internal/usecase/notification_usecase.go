package usecase

import (
	"context"
	"fmt"
	"sync"

	"campus-match/internal/domain/match"
	"campus-match/internal/messenger"
	"campus-match/internal/pkg/ratelimit"
	"campus-match/internal/repository"

	"go.uber.org/zap"
)

// NotifyThreshold is the single eligibility cutoff for alerting a candidate
// about a job. A final score of exactly 0.70 is eligible.
const NotifyThreshold = 0.70

const (
	ReasonSent           = "sent"
	ReasonBelowThreshold = "below_threshold"
	ReasonDuplicate      = "duplicate"
	ReasonChannelError   = "channel_error"
)

type NotifyOutcome struct {
	Sent   bool
	Reason string
}

type NotificationUsecase interface {
	MaybeNotify(ctx context.Context, candidate repository.Candidate, job repository.Job, rec match.Record) (NotifyOutcome, error)
}

// NotificationGate decides eligibility and guards duplicate sends. The
// durable marker's insert-if-absent write owns at-most-once across
// restarts; the in-memory sent set and per-pair locks are in-process fast
// paths layered on top of it.
type NotificationGate struct {
	markers repository.NotificationMarkerRepository
	channel messenger.Channel
	pacer   ratelimit.Pacer
	logger  *zap.Logger

	sent  sync.Map // pair key -> struct{}
	locks sync.Map // pair key -> *sync.Mutex
}

func NewNotificationGate(
	markers repository.NotificationMarkerRepository,
	channel messenger.Channel,
	pacer ratelimit.Pacer,
	logger *zap.Logger,
) *NotificationGate {
	if pacer == nil {
		pacer = ratelimit.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationGate{
		markers: markers,
		channel: channel,
		pacer:   pacer,
		logger:  logger,
	}
}

func (g *NotificationGate) MaybeNotify(ctx context.Context, candidate repository.Candidate, job repository.Job, rec match.Record) (NotifyOutcome, error) {
	if rec.FinalScore < NotifyThreshold {
		return NotifyOutcome{Sent: false, Reason: ReasonBelowThreshold}, nil
	}

	key := rec.CandidateID.String() + ":" + rec.JobID.String()
	if _, ok := g.sent.Load(key); ok {
		return NotifyOutcome{Sent: false, Reason: ReasonDuplicate}, nil
	}

	mu := g.pairLock(key)
	mu.Lock()
	defer mu.Unlock()

	// Re-check under the lock: a concurrent attempt may have won the race
	// while we waited.
	if _, ok := g.sent.Load(key); ok {
		return NotifyOutcome{Sent: false, Reason: ReasonDuplicate}, nil
	}

	exists, err := g.markers.Exists(ctx, rec.CandidateID, rec.JobID)
	if err != nil {
		return NotifyOutcome{}, fmt.Errorf("check notification marker: %w", err)
	}
	if exists {
		g.sent.Store(key, struct{}{})
		g.logger.Debug("duplicate notification suppressed",
			zap.String("candidate_id", rec.CandidateID.String()),
			zap.String("job_id", rec.JobID.String()),
		)
		return NotifyOutcome{Sent: false, Reason: ReasonDuplicate}, nil
	}

	if err := g.pacer.Wait(ctx); err != nil {
		return NotifyOutcome{}, err
	}

	res, err := g.channel.Send(ctx, candidate.Contact, buildAlertBody(candidate, job, rec))
	if err != nil || !res.Success {
		g.logger.Warn("notification channel failed",
			zap.String("candidate_id", rec.CandidateID.String()),
			zap.String("job_id", rec.JobID.String()),
			zap.String("channel_message", res.Message),
			zap.Error(err),
		)
		// No marker on failure so a later attempt can retry.
		return NotifyOutcome{Sent: false, Reason: ReasonChannelError}, nil
	}

	created, err := g.markers.InsertIfAbsent(ctx, match.NotificationMarker{
		CandidateID: rec.CandidateID,
		JobID:       rec.JobID,
		Channel:     g.channel.Name(),
		Score:       rec.FinalScore,
	})
	if err != nil {
		// The alert went out; losing the marker risks a duplicate later,
		// which is the lesser failure. Log it loudly.
		g.logger.Error("notification marker write failed after send",
			zap.String("candidate_id", rec.CandidateID.String()),
			zap.String("job_id", rec.JobID.String()),
			zap.Error(err),
		)
	} else if !created {
		g.logger.Warn("concurrent notification detected for pair",
			zap.String("candidate_id", rec.CandidateID.String()),
			zap.String("job_id", rec.JobID.String()),
		)
	}

	g.sent.Store(key, struct{}{})
	return NotifyOutcome{Sent: true, Reason: ReasonSent}, nil
}

func (g *NotificationGate) pairLock(key string) *sync.Mutex {
	v, _ := g.locks.LoadOrStore(key, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func buildAlertBody(candidate repository.Candidate, job repository.Job, rec match.Record) string {
	company := job.Company
	if company == "" {
		company = "a recruiting company"
	}
	return fmt.Sprintf(
		"Hi %s! New opening that fits your profile: %s at %s (match %.0f%%). Log in to apply before the deadline.",
		candidate.FullName, job.Title, company, rec.FinalScore*100,
	)
}
