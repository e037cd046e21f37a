package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campus-match/internal/analyzer"
	"campus-match/internal/domain/match"
	"campus-match/internal/domain/matching"
	"campus-match/internal/domain/signals"
	"campus-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultMatchTTL = 24 * time.Hour

var ErrInvalidPair = errors.New("candidate and job ids are required")

// FinalScorer is an optional extra scorer over the raw pair texts. The
// resolver keeps the highest final score across the heuristic engine and
// every configured FinalScorer.
type FinalScorer interface {
	Name() string
	FinalScore(ctx context.Context, candidateText, jobText string) (float64, error)
}

type MatchResolverUsecase interface {
	Resolve(ctx context.Context, candidateID, jobID uuid.UUID, forceRefresh bool) (match.Record, error)
}

type MatchResolver struct {
	candidates repository.CandidateRepository
	jobs       repository.JobRepository
	records    repository.MatchRecordRepository
	cache      MatchCache
	analyzer   analyzer.Analyzer
	embedder   matching.Embedder
	engine     matching.Scorer
	extra      []FinalScorer
	ttl        time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewMatchResolver(
	candidates repository.CandidateRepository,
	jobs repository.JobRepository,
	records repository.MatchRecordRepository,
	cache MatchCache,
	textAnalyzer analyzer.Analyzer,
	embedder matching.Embedder,
	engine matching.Scorer,
	extra []FinalScorer,
	ttl time.Duration,
	logger *zap.Logger,
) *MatchResolver {
	if ttl <= 0 {
		ttl = DefaultMatchTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchResolver{
		candidates: candidates,
		jobs:       jobs,
		records:    records,
		cache:      cache,
		analyzer:   textAnalyzer,
		embedder:   embedder,
		engine:     engine,
		extra:      extra,
		ttl:        ttl,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (r *MatchResolver) Resolve(ctx context.Context, candidateID, jobID uuid.UUID, forceRefresh bool) (match.Record, error) {
	if candidateID == uuid.Nil || jobID == uuid.Nil {
		return match.Record{}, ErrInvalidPair
	}

	if !forceRefresh {
		if rec, ok := r.lookup(ctx, candidateID, jobID); ok {
			return rec, nil
		}
	}

	rec, err := r.compute(ctx, candidateID, jobID)
	if err != nil {
		return match.Record{}, err
	}

	// A failed cache write must not fail the call: the score is already
	// computed and correct for this caller.
	if err := r.records.Upsert(ctx, rec); err != nil {
		r.logger.Error("match store upsert failed",
			zap.String("candidate_id", candidateID.String()),
			zap.String("job_id", jobID.String()),
			zap.Error(err),
		)
	} else if r.cache != nil {
		if err := r.cache.SetJSON(ctx, matchCacheKey(candidateID, jobID), rec, r.ttl); err != nil {
			r.logger.Debug("match fast-path write failed", zap.Error(err))
		}
	}

	return rec, nil
}

// lookup tries the fast path and then the durable store, enforcing the TTL
// policy the store itself is oblivious to.
func (r *MatchResolver) lookup(ctx context.Context, candidateID, jobID uuid.UUID) (match.Record, bool) {
	if r.cache != nil {
		var cached match.Record
		if ok, err := r.cache.GetJSON(ctx, matchCacheKey(candidateID, jobID), &cached); err == nil && ok {
			if r.fresh(cached) {
				return cached, true
			}
		}
	}

	rec, ok, err := r.records.Get(ctx, candidateID, jobID)
	if err != nil {
		r.logger.Warn("match store read failed, recomputing",
			zap.String("candidate_id", candidateID.String()),
			zap.String("job_id", jobID.String()),
			zap.Error(err),
		)
		return match.Record{}, false
	}
	if !ok || !r.fresh(rec) {
		return match.Record{}, false
	}

	if r.cache != nil {
		_ = r.cache.SetJSON(ctx, matchCacheKey(candidateID, jobID), rec, r.ttl)
	}
	return rec, true
}

func (r *MatchResolver) fresh(rec match.Record) bool {
	return rec.Active && r.now().Sub(rec.ComputedAt) <= r.ttl
}

func (r *MatchResolver) compute(ctx context.Context, candidateID, jobID uuid.UUID) (match.Record, error) {
	candidate, err := r.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return match.Record{}, fmt.Errorf("load candidate: %w", err)
	}
	job, err := r.jobs.GetByID(ctx, jobID)
	if err != nil {
		return match.Record{}, fmt.Errorf("load job: %w", err)
	}

	candSig, err := r.deriveSignals(ctx, candidate.ProfileText, analyzer.KindResume)
	if err != nil {
		return match.Record{}, err
	}
	jobSig, err := r.deriveSignals(ctx, job.ContentText(), analyzer.KindJob)
	if err != nil {
		return match.Record{}, err
	}

	score, err := r.engine.Score(candSig, jobSig)
	if err != nil {
		return match.Record{}, fmt.Errorf("score pair: %w", err)
	}

	// Take the max of all configured scorers; an extra scorer failing only
	// costs its opinion, never the pair.
	for _, scorer := range r.extra {
		alt, err := scorer.FinalScore(ctx, candidate.ProfileText, job.ContentText())
		if err != nil {
			r.logger.Warn("extra scorer failed",
				zap.String("scorer", scorer.Name()),
				zap.Error(err),
			)
			continue
		}
		if alt > score.FinalScore {
			score.FinalScore = alt
		}
	}

	return match.Record{
		CandidateID: candidateID,
		JobID:       jobID,
		Score:       score,
		ComputedAt:  r.now(),
		Active:      true,
	}, nil
}

func (r *MatchResolver) deriveSignals(ctx context.Context, text string, kind analyzer.Kind) (signals.Signals, error) {
	ext, err := r.analyzer.Analyze(ctx, text, kind)
	if err != nil {
		return signals.Signals{}, fmt.Errorf("analyze %s: %w", kind, err)
	}
	return signals.FromExtract(ext, r.embedder.Embed(text)), nil
}
