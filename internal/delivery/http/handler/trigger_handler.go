package handler

import (
	"campus-match/internal/delivery/http/dto"
	"campus-match/internal/delivery/http/middleware"
	"campus-match/internal/pkg/response"
	"campus-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// TriggerHandler exposes the business-event entry points. All of them hand
// the heavy lifting to background tasks and answer 202 immediately: the
// triggering action never waits on, or fails because of, a sweep.
type TriggerHandler struct {
	triggers usecase.TriggerUsecase
}

func NewTriggerHandler(triggers usecase.TriggerUsecase) *TriggerHandler {
	return &TriggerHandler{triggers: triggers}
}

func (h *TriggerHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/events")
	grp.Post("/job-published", h.JobPublished)
	grp.Post("/profile-updated", h.ProfileUpdated)
	grp.Post("/application", h.ApplicationSubmitted)
}

func (h *TriggerHandler) JobPublished(c fiber.Ctx) error {
	var req dto.JobPublishedRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "", nil, err)
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid job id", nil, err)
	}

	started, err := h.triggers.OnJobPublished(c.Context(), jobID)
	if err != nil {
		return mapPipelineError(err)
	}
	return response.Success(c, fiber.StatusAccepted, response.MessageAccepted, dto.TriggerResponse{Started: started})
}

func (h *TriggerHandler) ProfileUpdated(c fiber.Ctx) error {
	var req dto.ProfileUpdatedRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "", nil, err)
	}
	candidateID, err := uuid.Parse(req.CandidateID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid candidate id", nil, err)
	}

	started, err := h.triggers.OnProfileUpdated(c.Context(), candidateID)
	if err != nil {
		return mapPipelineError(err)
	}
	return response.Success(c, fiber.StatusAccepted, response.MessageAccepted, dto.TriggerResponse{Started: started})
}

func (h *TriggerHandler) ApplicationSubmitted(c fiber.Ctx) error {
	var req dto.ApplicationSubmittedRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "", nil, err)
	}
	candidateID, err := uuid.Parse(req.CandidateID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid candidate id", nil, err)
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid job id", nil, err)
	}

	if err := h.triggers.OnApplicationSubmitted(c.Context(), candidateID, jobID); err != nil {
		return mapPipelineError(err)
	}
	return response.Success(c, fiber.StatusAccepted, response.MessageAccepted, dto.TriggerResponse{Started: true})
}
