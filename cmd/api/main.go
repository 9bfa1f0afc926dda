package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/request-desk/internal/api/http"
	"github.com/spec-kit/request-desk/internal/api/http/handlers"
	"github.com/spec-kit/request-desk/internal/auth"
	"github.com/spec-kit/request-desk/internal/config"
	"github.com/spec-kit/request-desk/internal/events"
	"github.com/spec-kit/request-desk/internal/observability"
	"github.com/spec-kit/request-desk/internal/persistence"
	"github.com/spec-kit/request-desk/internal/repository"
	"github.com/spec-kit/request-desk/internal/service"
	"github.com/spec-kit/request-desk/internal/worker"
)

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

	store, pg := openStore(ctx, cfg, logger)
	defer pg.Close()

	if cfg.Storage.Seed {
		hash := func(plain string) (string, error) { return auth.HashPassword(plain, cfg.Auth.BcryptCost) }
		if err := persistence.Seed(ctx, store, hash, logger); err != nil {
			logger.Fatal("failed to seed data", zap.Error(err))
		}
	}

	var redis *persistence.Redis
	var sessionRepo repository.SessionRepository
	switch cfg.Session.Driver {
	case config.SessionDriverRedis:
		redis, err = persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Fatal("failed to connect redis", zap.Error(err))
		}
		defer redis.Close()
		sessionRepo = repository.NewRedisSessionRepository(redis.Client)
	default:
		sessionRepo = repository.NewMemorySessionRepository()
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartActivityWorker(service.NewActivityService(dispatcher, logger, metrics))

	userRepo := repository.NewUserRepository(store)
	requestRepo := repository.NewRequestRepository(store)
	categoryRepo := repository.NewCategoryRepository(store)
	commentRepo := repository.NewCommentRepository(store)

	sessions := auth.NewSessionManager(auth.NewTokenManager(cfg.Auth.SessionSecret, cfg.Session.TTL()), sessionRepo)
	authMiddleware := auth.NewAuthMiddleware(sessions, userRepo, cfg.Session.CookieName)

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   userRepo,
		Sessions:   sessions,
		Dispatcher: dispatcher,
	})
	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo:  requestRepo,
		CategoryRepo: categoryRepo,
		Dispatcher:   dispatcher,
	})
	commentService := service.NewCommentService(commentRepo, requestRepo, dispatcher)
	categoryService := service.NewCategoryService(categoryRepo)

	validate := handlers.NewValidator()
	deps := map[string]handlers.Pinger{"storage": store}
	if redis != nil {
		deps["redis"] = redis
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps),
		Auth:           handlers.NewAuthHandler(authService, authMiddleware, validate, cfg.Session),
		Requests:       handlers.NewRequestsHandler(requestService, validate),
		Comments:       handlers.NewCommentsHandler(commentService, validate),
		Categories:     handlers.NewCategoriesHandler(categoryService),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

// openStore selects the collection store. The returned Postgres handle is
// always safe to Close.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (persistence.CollectionStore, *persistence.Postgres) {
	if cfg.Storage.Driver != config.StorageDriverPostgres {
		store, err := persistence.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			logger.Fatal("failed to open data directory", zap.Error(err))
		}
		logger.Info("using file storage", zap.String("dir", store.Dir()))
		return store, &persistence.Postgres{}
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}
	store, err := persistence.NewPostgresStore(pg.PoolHandle())
	if err != nil {
		logger.Fatal("failed to open postgres store", zap.Error(err))
	}
	return store, pg
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
