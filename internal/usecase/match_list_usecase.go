package usecase

import (
	"context"

	"campus-match/internal/domain/match"
	"campus-match/internal/repository"

	"github.com/google/uuid"
)

type MatchListUsecase interface {
	// ListForCandidate returns the candidate's active cached matches,
	// best score first. Read-only reporting over owned data.
	ListForCandidate(ctx context.Context, candidateID uuid.UUID) ([]match.Record, error)
}

type MatchList struct {
	candidates repository.CandidateRepository
	records    repository.MatchRecordRepository
}

func NewMatchList(candidates repository.CandidateRepository, records repository.MatchRecordRepository) *MatchList {
	return &MatchList{candidates: candidates, records: records}
}

func (u *MatchList) ListForCandidate(ctx context.Context, candidateID uuid.UUID) ([]match.Record, error) {
	if candidateID == uuid.Nil {
		return nil, ErrInvalidPair
	}
	if _, err := u.candidates.GetByID(ctx, candidateID); err != nil {
		return nil, err
	}
	return u.records.ListActiveByCandidate(ctx, candidateID)
}
