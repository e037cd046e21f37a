package handler

import (
	"campus-match/internal/delivery/http/dto"
	"campus-match/internal/delivery/http/middleware"
	"campus-match/internal/pkg/response"
	"campus-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// CacheHandler is the invalidation hook profile/job collaborators call
// after a write.
type CacheHandler struct {
	invalidator usecase.InvalidationUsecase
}

func NewCacheHandler(invalidator usecase.InvalidationUsecase) *CacheHandler {
	return &CacheHandler{invalidator: invalidator}
}

func (h *CacheHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/cache/invalidate", h.Invalidate)
}

func (h *CacheHandler) Invalidate(c fiber.Ctx) error {
	var req dto.InvalidateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "", nil, err)
	}

	candidateID, err := parseOptionalID(req.CandidateID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid candidate id", nil, err)
	}
	jobID, err := parseOptionalID(req.JobID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid job id", nil, err)
	}

	if err := h.invalidator.Invalidate(c.Context(), candidateID, jobID); err != nil {
		if err == usecase.ErrNothingToInvalidate {
			return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
		}
		return mapPipelineError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func parseOptionalID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(raw)
}
