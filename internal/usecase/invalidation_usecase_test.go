package usecase

import (
	"context"
	"testing"
	"time"

	"campus-match/internal/domain/match"
	"campus-match/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidateRequiresAnID(t *testing.T) {
	u := NewInvalidation(newMemRecordRepo(), newMemCache(), nil)

	err := u.Invalidate(context.Background(), uuid.Nil, uuid.Nil)
	require.ErrorIs(t, err, ErrNothingToInvalidate)
}

func TestInvalidateDeactivatesRecords(t *testing.T) {
	records := newMemRecordRepo()
	candidateID := uuid.New()
	jobID := uuid.New()
	require.NoError(t, records.Upsert(context.Background(), match.Record{
		CandidateID: candidateID,
		JobID:       jobID,
		ComputedAt:  time.Now().UTC(),
		Active:      true,
	}))

	u := NewInvalidation(records, newMemCache(), nil)
	require.NoError(t, u.Invalidate(context.Background(), candidateID, uuid.Nil))

	_, ok, err := records.Get(context.Background(), candidateID, jobID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInvalidateBothSides(t *testing.T) {
	records := newMemRecordRepo()
	candidateID := uuid.New()
	jobID := uuid.New()

	u := NewInvalidation(records, newMemCache(), nil)
	require.NoError(t, u.Invalidate(context.Background(), candidateID, jobID))
	assert.Contains(t, records.invalidated, "candidate:"+candidateID.String())
	assert.Contains(t, records.invalidated, "job:"+jobID.String())
}

func TestListForCandidate(t *testing.T) {
	candidate := repository.Candidate{ID: uuid.New(), FullName: "A", Active: true}
	records := newMemRecordRepo()
	require.NoError(t, records.Upsert(context.Background(), match.Record{
		CandidateID: candidate.ID,
		JobID:       uuid.New(),
		Score:       match.Score{FinalScore: 0.8},
		ComputedAt:  time.Now().UTC(),
		Active:      true,
	}))

	u := NewMatchList(newMemCandidateRepo(candidate), records)

	out, err := u.ListForCandidate(context.Background(), candidate.ID)
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = u.ListForCandidate(context.Background(), uuid.New())
	require.ErrorIs(t, err, repository.ErrCandidateNotFound)

	_, err = u.ListForCandidate(context.Background(), uuid.Nil)
	require.ErrorIs(t, err, ErrInvalidPair)
}
