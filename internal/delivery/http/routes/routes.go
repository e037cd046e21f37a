package routes

import (
	"campus-match/internal/delivery/http/handler"
	"campus-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health   *handler.HealthHandler
	matches  *handler.MatchHandler
	triggers *handler.TriggerHandler
	cache    *handler.CacheHandler
	progress *ws.Handler
}

func NewRegistry(
	health *handler.HealthHandler,
	matches *handler.MatchHandler,
	triggers *handler.TriggerHandler,
	cache *handler.CacheHandler,
	progress *ws.Handler,
) *Registry {
	return &Registry{
		health:   health,
		matches:  matches,
		triggers: triggers,
		cache:    cache,
		progress: progress,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	v1 := api.Group("/v1")
	r.matches.RegisterRoutes(v1)
	r.triggers.RegisterRoutes(v1)
	r.cache.RegisterRoutes(v1)

	if r.progress != nil {
		app.Get("/ws", r.progress.HandleProgressWS)
	}
}
