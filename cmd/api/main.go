package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/interview-service/internal/api/http"
	"github.com/spec-kit/interview-service/internal/api/http/handlers"
	"github.com/spec-kit/interview-service/internal/auth"
	"github.com/spec-kit/interview-service/internal/cache"
	"github.com/spec-kit/interview-service/internal/calendar"
	"github.com/spec-kit/interview-service/internal/config"
	"github.com/spec-kit/interview-service/internal/events"
	"github.com/spec-kit/interview-service/internal/observability"
	"github.com/spec-kit/interview-service/internal/persistence"
	"github.com/spec-kit/interview-service/internal/repository"
	"github.com/spec-kit/interview-service/internal/service"
	"github.com/spec-kit/interview-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	pool := pg.PoolHandle()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	loc, err := cfg.App.Location()
	if err != nil {
		logger.Fatal("invalid timezone", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(pool)
	interviewRepo := repository.NewInterviewRepository(pool)
	jobTitleRepo := repository.NewJobTitleRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	interviewCache := cache.NewInterviewCache(redis.ClientHandle(), cfg.Cache.InterviewTTL())
	if interviewCache != nil {
		worker.StartCacheInvalidator(dispatcher, interviewCache, logger)
	}
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	interviewDeps := service.InterviewDependencies{
		InterviewRepo: interviewRepo,
		Resolver:      calendar.NewResolver(time.Now, loc),
		Dispatcher:    dispatcher,
		Logger:        logger,
		Metrics:       metrics,
	}
	if interviewCache != nil {
		interviewDeps.Cache = interviewCache
	}
	interviewService := service.NewInterviewService(interviewDeps)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:     userRepo,
		SessionStore: auth.NewRedisSessionStore(redis.ClientHandle()),
		Logger:       logger,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	jobTitleService := service.NewJobTitleService(jobTitleRepo)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Interviews:     handlers.NewInterviewsHandler(interviewService),
		JobTitles:      handlers.NewJobTitlesHandler(jobTitleService),
		AuthMiddleware: authMiddleware,
		Gatherer:       registry,
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
