package usecase

import (
	"context"
	"testing"

	"campus-match/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunJobSweepCountsEveryAttempt(t *testing.T) {
	jobID := uuid.New()
	candA := repository.Candidate{ID: uuid.New(), FullName: "A", Contact: "+911", Active: true}
	candB := repository.Candidate{ID: uuid.New(), FullName: "B", Contact: "+912", Active: true}
	candC := repository.Candidate{ID: uuid.New(), FullName: "C", Contact: "+913", Active: true}

	resolver := &stubResolver{
		scores: map[string]float64{
			pairKey(candA.ID, jobID): 0.9,
			pairKey(candC.ID, jobID): 0.2,
		},
		fail: map[string]bool{
			pairKey(candB.ID, jobID): true,
		},
	}

	channel := &countingChannel{}
	gate := NewNotificationGate(newMemMarkerRepo(), channel, nil, nil)
	sink := &recordingSink{}

	sweep := NewSweep(
		newMemCandidateRepo(candA, candB, candC),
		newMemJobRepo(repository.Job{ID: jobID, Title: "Backend", Active: true}),
		resolver,
		gate,
		sink,
		1,
		nil,
	)

	counts, err := sweep.RunJobSweep(context.Background(), jobID)
	require.NoError(t, err)

	assert.Equal(t, 3, counts.Processed)
	assert.Equal(t, 1, counts.Failed)
	assert.Equal(t, 1, counts.Matched)
	assert.Equal(t, 1, counts.Notified)
	assert.Equal(t, 1, channel.sendCount())

	events := sink.all()
	require.NotEmpty(t, events)
	final := events[len(events)-1]
	assert.True(t, final.Done)
	assert.Equal(t, SweepKindJob, final.Kind)
	assert.Equal(t, jobID, final.TriggerID)
	assert.Equal(t, counts, final.Counts)
}

func TestRunCandidateSweep(t *testing.T) {
	candidate := repository.Candidate{ID: uuid.New(), FullName: "A", Contact: "+911", Active: true}
	jobA := repository.Job{ID: uuid.New(), Title: "One", Active: true}
	jobB := repository.Job{ID: uuid.New(), Title: "Two", Active: true}

	resolver := &stubResolver{
		scores: map[string]float64{
			pairKey(candidate.ID, jobA.ID): 0.75,
			pairKey(candidate.ID, jobB.ID): 0.75,
		},
		fail: map[string]bool{},
	}
	channel := &countingChannel{}
	gate := NewNotificationGate(newMemMarkerRepo(), channel, nil, nil)

	sweep := NewSweep(
		newMemCandidateRepo(candidate),
		newMemJobRepo(jobA, jobB),
		resolver,
		gate,
		nil,
		0,
		nil,
	)

	counts, err := sweep.RunCandidateSweep(context.Background(), candidate.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Processed)
	assert.Equal(t, 2, counts.Matched)
	assert.Equal(t, 2, counts.Notified)
	assert.Zero(t, counts.Failed)
}

func TestRunJobSweepUnknownJob(t *testing.T) {
	sweep := NewSweep(
		newMemCandidateRepo(),
		newMemJobRepo(),
		&stubResolver{scores: map[string]float64{}, fail: map[string]bool{}},
		NewNotificationGate(newMemMarkerRepo(), &countingChannel{}, nil, nil),
		nil,
		0,
		nil,
	)

	_, err := sweep.RunJobSweep(context.Background(), uuid.New())
	require.ErrorIs(t, err, repository.ErrJobNotFound)
}

func TestSweepStopsOnCancelledContext(t *testing.T) {
	jobID := uuid.New()
	candidate := repository.Candidate{ID: uuid.New(), FullName: "A", Active: true}

	sweep := NewSweep(
		newMemCandidateRepo(candidate),
		newMemJobRepo(repository.Job{ID: jobID, Active: true}),
		&stubResolver{scores: map[string]float64{}, fail: map[string]bool{}},
		NewNotificationGate(newMemMarkerRepo(), &countingChannel{}, nil, nil),
		nil,
		0,
		nil,
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sweep.RunJobSweep(ctx, jobID)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNotifyPair(t *testing.T) {
	candidate := repository.Candidate{ID: uuid.New(), FullName: "A", Contact: "+911", Active: true}
	job := repository.Job{ID: uuid.New(), Title: "Backend", Active: true}

	resolver := &stubResolver{
		scores: map[string]float64{pairKey(candidate.ID, job.ID): 0.95},
		fail:   map[string]bool{},
	}
	channel := &countingChannel{}

	sweep := NewSweep(
		newMemCandidateRepo(candidate),
		newMemJobRepo(job),
		resolver,
		NewNotificationGate(newMemMarkerRepo(), channel, nil, nil),
		nil,
		0,
		nil,
	)

	out, err := sweep.NotifyPair(context.Background(), candidate.ID, job.ID)
	require.NoError(t, err)
	assert.True(t, out.Sent)

	_, err = sweep.NotifyPair(context.Background(), uuid.New(), job.ID)
	require.ErrorIs(t, err, repository.ErrCandidateNotFound)
}
