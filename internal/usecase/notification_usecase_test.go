package usecase

import (
	"context"
	"sync"
	"testing"

	"campus-match/internal/domain/match"
	"campus-match/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gateFixture() (repository.Candidate, repository.Job, match.Record) {
	candidate := repository.Candidate{
		ID:       uuid.New(),
		FullName: "Ravi Kumar",
		Contact:  "+919876543210",
		Active:   true,
	}
	job := repository.Job{
		ID:     uuid.New(),
		Title:  "Data Engineer",
		Active: true,
	}
	rec := match.Record{
		CandidateID: candidate.ID,
		JobID:       job.ID,
		Score:       match.Score{FinalScore: 0.85},
		Active:      true,
	}
	return candidate, job, rec
}

func TestMaybeNotifyBelowThreshold(t *testing.T) {
	candidate, job, rec := gateFixture()
	rec.FinalScore = 0.6999

	channel := &countingChannel{}
	gate := NewNotificationGate(newMemMarkerRepo(), channel, nil, nil)

	out, err := gate.MaybeNotify(context.Background(), candidate, job, rec)
	require.NoError(t, err)
	assert.False(t, out.Sent)
	assert.Equal(t, ReasonBelowThreshold, out.Reason)
	assert.Zero(t, channel.sendCount())
}

func TestMaybeNotifyExactThresholdSends(t *testing.T) {
	candidate, job, rec := gateFixture()
	rec.FinalScore = 0.70

	channel := &countingChannel{}
	markers := newMemMarkerRepo()
	gate := NewNotificationGate(markers, channel, nil, nil)

	out, err := gate.MaybeNotify(context.Background(), candidate, job, rec)
	require.NoError(t, err)
	assert.True(t, out.Sent)
	assert.Equal(t, ReasonSent, out.Reason)
	assert.Equal(t, 1, channel.sendCount())
	assert.Equal(t, 1, markers.count())
}

func TestMaybeNotifySecondCallIsDuplicate(t *testing.T) {
	candidate, job, rec := gateFixture()

	channel := &countingChannel{}
	gate := NewNotificationGate(newMemMarkerRepo(), channel, nil, nil)

	out, err := gate.MaybeNotify(context.Background(), candidate, job, rec)
	require.NoError(t, err)
	require.True(t, out.Sent)

	out, err = gate.MaybeNotify(context.Background(), candidate, job, rec)
	require.NoError(t, err)
	assert.False(t, out.Sent)
	assert.Equal(t, ReasonDuplicate, out.Reason)
	assert.Equal(t, 1, channel.sendCount())
}

func TestMaybeNotifyExistingMarkerSuppressesSend(t *testing.T) {
	candidate, job, rec := gateFixture()

	markers := newMemMarkerRepo()
	_, err := markers.InsertIfAbsent(context.Background(), match.NotificationMarker{
		CandidateID: candidate.ID,
		JobID:       job.ID,
		Channel:     "test",
		Score:       0.9,
	})
	require.NoError(t, err)

	channel := &countingChannel{}
	gate := NewNotificationGate(markers, channel, nil, nil)

	out, err := gate.MaybeNotify(context.Background(), candidate, job, rec)
	require.NoError(t, err)
	assert.False(t, out.Sent)
	assert.Equal(t, ReasonDuplicate, out.Reason)
	assert.Zero(t, channel.sendCount())
}

func TestMaybeNotifyConcurrentAttemptsSendOnce(t *testing.T) {
	candidate, job, rec := gateFixture()

	channel := &countingChannel{}
	markers := newMemMarkerRepo()
	gate := NewNotificationGate(markers, channel, nil, nil)

	const attempts = 25
	var wg sync.WaitGroup
	sent := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := gate.MaybeNotify(context.Background(), candidate, job, rec)
			assert.NoError(t, err)
			sent <- out.Sent
		}()
	}
	wg.Wait()
	close(sent)

	sends := 0
	for s := range sent {
		if s {
			sends++
		}
	}
	assert.Equal(t, 1, sends)
	assert.Equal(t, 1, channel.sendCount())
	assert.Equal(t, 1, markers.count())
}

func TestMaybeNotifyChannelFailureAllowsRetry(t *testing.T) {
	candidate, job, rec := gateFixture()

	channel := &countingChannel{fail: true}
	markers := newMemMarkerRepo()
	gate := NewNotificationGate(markers, channel, nil, nil)

	out, err := gate.MaybeNotify(context.Background(), candidate, job, rec)
	require.NoError(t, err)
	assert.False(t, out.Sent)
	assert.Equal(t, ReasonChannelError, out.Reason)
	assert.Zero(t, markers.count())

	// Once the channel recovers the same pair is still deliverable.
	channel.fail = false
	out, err = gate.MaybeNotify(context.Background(), candidate, job, rec)
	require.NoError(t, err)
	assert.True(t, out.Sent)
	assert.Equal(t, 1, markers.count())
}

func TestMaybeNotifyMarkerCheckFailure(t *testing.T) {
	candidate, job, rec := gateFixture()

	markers := newMemMarkerRepo()
	markers.failExists = true
	channel := &countingChannel{}
	gate := NewNotificationGate(markers, channel, nil, nil)

	_, err := gate.MaybeNotify(context.Background(), candidate, job, rec)
	require.Error(t, err)
	assert.Zero(t, channel.sendCount())
}

func TestBuildAlertBody(t *testing.T) {
	candidate, job, rec := gateFixture()
	job.Title = "SRE Intern"
	job.Company = ""
	rec.FinalScore = 0.8

	body := buildAlertBody(candidate, job, rec)
	assert.Contains(t, body, candidate.FullName)
	assert.Contains(t, body, "SRE Intern")
	assert.Contains(t, body, "80%")
	assert.Contains(t, body, "a recruiting company")
}
