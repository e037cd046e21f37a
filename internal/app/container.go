package app

import (
	"context"
	"time"

	"campus-match/internal/analyzer"
	"campus-match/internal/config"
	"campus-match/internal/database"
	dbpostgres "campus-match/internal/database/postgres"
	"campus-match/internal/delivery/http/handler"
	"campus-match/internal/delivery/http/routes"
	"campus-match/internal/domain/matching"
	"campus-match/internal/infrastructure/cache"
	"campus-match/internal/messenger"
	"campus-match/internal/pkg/ratelimit"
	"campus-match/internal/repository"
	"campus-match/internal/usecase"
	"campus-match/internal/worker"
	"campus-match/internal/ws"

	"go.uber.org/zap"
)

// Container wires the whole pipeline: store and cache at the bottom,
// resolver and gate in the middle, triggers and HTTP surface on top.
type Container struct {
	Config   config.Config
	Logger   *zap.Logger
	DB       database.DB
	Cache    *cache.Redis
	Hub      *ws.Hub
	Runner   *worker.Runner
	Registry *routes.Registry

	extractor *analyzer.GeminiExtractor
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(logger)

	candidates := repository.NewPostgresCandidateRepository(db)
	jobs := repository.NewPostgresJobRepository(db)
	records := repository.NewPostgresMatchRecordRepository(db)
	markers := repository.NewPostgresNotificationMarkerRepository(db)

	engine, err := matching.NewEngine(matching.DefaultWeights())
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	embedder := matching.NewHashingEmbedder(cfg.Pipeline.EmbedDim)

	var (
		extractor *analyzer.GeminiExtractor
		primary   analyzer.Extractor
		extra     []usecase.FinalScorer
	)
	if cfg.Analyzer.GeminiAPIKey != "" {
		extractor, err = analyzer.NewGeminiExtractor(ctx, cfg.Analyzer.GeminiAPIKey, cfg.Analyzer.GeminiModel)
		if err != nil {
			logger.Warn("gemini analyzer unavailable, keyword fallback only", zap.Error(err))
		} else {
			primary = extractor
			extra = append(extra, analyzer.NewMatchScorer(extractor))
		}
	} else {
		logger.Info("no gemini api key configured, keyword fallback only")
	}
	textAnalyzer := analyzer.NewAdapter(primary, logger)

	resolver := usecase.NewMatchResolver(
		candidates, jobs, records, redisCache,
		textAnalyzer, embedder, engine, extra,
		cfg.Pipeline.MatchTTL, logger,
	)

	var channel messenger.Channel
	if cfg.Messenger.WebhookURL != "" {
		channel, err = messenger.NewWhatsAppWebhook(cfg.Messenger.WebhookURL, cfg.Messenger.WebhookToken, logger)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
	} else {
		logger.Info("no whatsapp webhook configured, using log channel")
		channel = messenger.NewLogChannel(logger)
	}

	pacer := ratelimit.NewIntervalPacer(cfg.Pipeline.SendInterval)
	gate := usecase.NewNotificationGate(markers, channel, pacer, logger)

	hub := ws.NewHub(logger)
	progress := ws.NewProgressBroadcaster(hub)

	sweeps := usecase.NewSweep(candidates, jobs, resolver, gate, progress, cfg.Pipeline.ProgressEvery, logger)
	invalidation := usecase.NewInvalidation(records, redisCache, logger)
	matchLists := usecase.NewMatchList(candidates, records)

	runner := worker.NewRunner(logger)
	triggers := usecase.NewTrigger(invalidation, sweeps, redisCache, runner, logger)

	registry := routes.NewRegistry(
		handler.NewHealthHandler(db, redisCache),
		handler.NewMatchHandler(resolver, matchLists),
		handler.NewTriggerHandler(triggers),
		handler.NewCacheHandler(invalidation),
		ws.NewHandler(hub, logger),
	)

	return &Container{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Cache:     redisCache,
		Hub:       hub,
		Runner:    runner,
		Registry:  registry,
		extractor: extractor,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.Runner.Shutdown(ctx); err != nil {
		c.Logger.Warn("background tasks did not drain before deadline", zap.Error(err))
	}

	if c.extractor != nil {
		_ = c.extractor.Close()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
