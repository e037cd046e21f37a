package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"campus-match/internal/domain/match"
	"campus-match/internal/domain/signals"
	"campus-match/internal/messenger"
	"campus-match/internal/repository"

	"github.com/google/uuid"
)

type memCandidateRepo struct {
	byID map[uuid.UUID]repository.Candidate
}

func newMemCandidateRepo(candidates ...repository.Candidate) *memCandidateRepo {
	r := &memCandidateRepo{byID: make(map[uuid.UUID]repository.Candidate)}
	for _, c := range candidates {
		r.byID[c.ID] = c
	}
	return r
}

func (r *memCandidateRepo) GetByID(ctx context.Context, id uuid.UUID) (repository.Candidate, error) {
	c, ok := r.byID[id]
	if !ok {
		return repository.Candidate{}, repository.ErrCandidateNotFound
	}
	return c, nil
}

func (r *memCandidateRepo) ListActive(ctx context.Context) ([]repository.Candidate, error) {
	out := make([]repository.Candidate, 0, len(r.byID))
	for _, c := range r.byID {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

type memJobRepo struct {
	byID map[uuid.UUID]repository.Job
}

func newMemJobRepo(jobs ...repository.Job) *memJobRepo {
	r := &memJobRepo{byID: make(map[uuid.UUID]repository.Job)}
	for _, j := range jobs {
		r.byID[j.ID] = j
	}
	return r
}

func (r *memJobRepo) GetByID(ctx context.Context, id uuid.UUID) (repository.Job, error) {
	j, ok := r.byID[id]
	if !ok {
		return repository.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (r *memJobRepo) ListActive(ctx context.Context) ([]repository.Job, error) {
	out := make([]repository.Job, 0, len(r.byID))
	for _, j := range r.byID {
		if j.Active {
			out = append(out, j)
		}
	}
	return out, nil
}

type memRecordRepo struct {
	mu      sync.Mutex
	records map[string]match.Record

	upserts     int
	failUpsert  bool
	invalidated []string
}

func newMemRecordRepo() *memRecordRepo {
	return &memRecordRepo{records: make(map[string]match.Record)}
}

func pairKey(candidateID, jobID uuid.UUID) string {
	return candidateID.String() + ":" + jobID.String()
}

func (r *memRecordRepo) Get(ctx context.Context, candidateID, jobID uuid.UUID) (match.Record, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[pairKey(candidateID, jobID)]
	if !ok || !rec.Active {
		return match.Record{}, false, nil
	}
	return rec, true, nil
}

func (r *memRecordRepo) Upsert(ctx context.Context, rec match.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	if r.failUpsert {
		return errors.New("store unavailable")
	}
	r.records[pairKey(rec.CandidateID, rec.JobID)] = rec
	return nil
}

func (r *memRecordRepo) InvalidateByCandidate(ctx context.Context, candidateID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidated = append(r.invalidated, "candidate:"+candidateID.String())
	for k, rec := range r.records {
		if rec.CandidateID == candidateID {
			rec.Active = false
			r.records[k] = rec
		}
	}
	return nil
}

func (r *memRecordRepo) InvalidateByJob(ctx context.Context, jobID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidated = append(r.invalidated, "job:"+jobID.String())
	for k, rec := range r.records {
		if rec.JobID == jobID {
			rec.Active = false
			r.records[k] = rec
		}
	}
	return nil
}

func (r *memRecordRepo) ListActiveByCandidate(ctx context.Context, candidateID uuid.UUID) ([]match.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]match.Record, 0)
	for _, rec := range r.records {
		if rec.Active && rec.CandidateID == candidateID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type memMarkerRepo struct {
	mu      sync.Mutex
	markers map[string]match.NotificationMarker

	failExists bool
	failInsert bool
}

func newMemMarkerRepo() *memMarkerRepo {
	return &memMarkerRepo{markers: make(map[string]match.NotificationMarker)}
}

func (r *memMarkerRepo) Exists(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failExists {
		return false, errors.New("marker store unavailable")
	}
	_, ok := r.markers[pairKey(candidateID, jobID)]
	return ok, nil
}

func (r *memMarkerRepo) InsertIfAbsent(ctx context.Context, m match.NotificationMarker) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failInsert {
		return false, errors.New("marker store unavailable")
	}
	key := pairKey(m.CandidateID, m.JobID)
	if _, ok := r.markers[key]; ok {
		return false, nil
	}
	m.SentAt = time.Now().UTC()
	r.markers[key] = m
	return true, nil
}

func (r *memMarkerRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.markers)
}

type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	locked  map[string]bool
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte), locked: make(map[string]bool)}
}

func (c *memCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (c *memCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
	return nil
}

func (c *memCache) InvalidateMatches(ctx context.Context, candidateID, jobID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte)
	return nil
}

func (c *memCache) SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locked[key] {
		return false, nil
	}
	c.locked[key] = true
	return true, nil
}

// stubScorer ignores the signals and returns a canned score.
type stubScorer struct {
	score match.Score
	err   error
}

func (s stubScorer) Score(candidate, job signals.Signals) (match.Score, error) {
	return s.score, s.err
}

type stubFinalScorer struct {
	name  string
	score float64
	err   error
}

func (s stubFinalScorer) Name() string { return s.name }

func (s stubFinalScorer) FinalScore(ctx context.Context, candidateText, jobText string) (float64, error) {
	return s.score, s.err
}

// countingChannel records every delivery attempt.
type countingChannel struct {
	mu    sync.Mutex
	sends int
	fail  bool
}

func (c *countingChannel) Name() string { return "test" }

func (c *countingChannel) Send(ctx context.Context, to, body string) (messenger.SendResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sends++
	if c.fail {
		return messenger.SendResult{Success: false, Message: "provider rejected"}, nil
	}
	return messenger.SendResult{Success: true}, nil
}

func (c *countingChannel) sendCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sends
}

// stubResolver lets sweep tests script per-pair outcomes.
type stubResolver struct {
	scores map[string]float64
	fail   map[string]bool
}

func (r *stubResolver) Resolve(ctx context.Context, candidateID, jobID uuid.UUID, forceRefresh bool) (match.Record, error) {
	key := pairKey(candidateID, jobID)
	if r.fail[key] {
		return match.Record{}, errors.New("resolve failed")
	}
	return match.Record{
		CandidateID: candidateID,
		JobID:       jobID,
		Score:       match.Score{FinalScore: r.scores[key]},
		ComputedAt:  time.Now().UTC(),
		Active:      true,
	}, nil
}

// recordingSink collects progress events.
type recordingSink struct {
	mu     sync.Mutex
	events []SweepProgressEvent
}

func (s *recordingSink) SweepProgress(evt SweepProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
}

func (s *recordingSink) all() []SweepProgressEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SweepProgressEvent(nil), s.events...)
}

// taskRecorder runs submitted tasks synchronously.
type taskRecorder struct {
	names []string
}

func (t *taskRecorder) Go(name string, task func(ctx context.Context) error) {
	t.names = append(t.names, name)
	_ = task(context.Background())
}
