package handler

import (
	"errors"

	"campus-match/internal/delivery/http/dto"
	"campus-match/internal/delivery/http/middleware"
	"campus-match/internal/pkg/response"
	"campus-match/internal/repository"
	"campus-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	resolver usecase.MatchResolverUsecase
	lists    usecase.MatchListUsecase
}

func NewMatchHandler(resolver usecase.MatchResolverUsecase, lists usecase.MatchListUsecase) *MatchHandler {
	return &MatchHandler{resolver: resolver, lists: lists}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/matches/:candidate_id/:job_id", h.GetMatch)
	r.Get("/candidates/:candidate_id/matches", h.ListCandidateMatches)
}

func (h *MatchHandler) GetMatch(c fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidate_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid candidate id", nil, err)
	}
	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid job id", nil, err)
	}
	forceRefresh := c.Query("refresh") == "true"

	rec, err := h.resolver.Resolve(c.Context(), candidateID, jobID, forceRefresh)
	if err != nil {
		return mapPipelineError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromMatchRecord(rec))
}

func (h *MatchHandler) ListCandidateMatches(c fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidate_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid candidate id", nil, err)
	}

	recs, err := h.lists.ListForCandidate(c.Context(), candidateID)
	if err != nil {
		return mapPipelineError(err)
	}

	out := dto.MatchListResponse{
		CandidateID: candidateID.String(),
		Matches:     make([]dto.MatchRecordResponse, 0, len(recs)),
	}
	for _, rec := range recs {
		out.Matches = append(out.Matches, dto.FromMatchRecord(rec))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapPipelineError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidPair):
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid pair", nil, err)
	case errors.Is(err, repository.ErrCandidateNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "candidate not found", nil, err)
	case errors.Is(err, repository.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "job not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
}
