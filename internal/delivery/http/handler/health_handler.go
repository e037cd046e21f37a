package handler

import (
	"context"
	"time"

	"campus-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}
	app.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	out := fiber.Map{"db": "ok", "cache": "ok"}

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			out["db"] = "down"
			return response.Error(c, fiber.StatusServiceUnavailable, "", out)
		}
	}
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			// Cache is a fast path only; report but stay healthy.
			out["cache"] = "down"
		}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
