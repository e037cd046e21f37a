package app

import (
	"fmt"
	"strings"

	"campus-match/internal/config"
	"campus-match/internal/delivery/http/middleware"
	"campus-match/internal/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	log, err := logger.New(cfg.App.IsProduction(), !cfg.App.IsProduction())
	if err != nil {
		return nil, nil, err
	}

	container, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	f.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	f.Use(middleware.NewErrorMiddleware(log).Middleware())

	container.Registry.Register(f)

	go container.Hub.Run()

	cleanup := func() error {
		err := container.Close()
		_ = log.Sync()
		return err
	}
	return &App{Fiber: f, Container: container}, cleanup, nil
}

// ListenAddr normalizes an HTTP_PORT value into a fiber listen address.

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
