package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/marketplace-service/internal/api/http"
	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/observability"
	"github.com/spec-kit/marketplace-service/internal/persistence"
	"github.com/spec-kit/marketplace-service/internal/repository"
	"github.com/spec-kit/marketplace-service/internal/service"
	"github.com/spec-kit/marketplace-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	propertyRepo := repository.NewPropertyRepository(pool)
	listingRepo := repository.NewListingRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	newsRepo := repository.NewNewsRepository(pool)
	contentRepo := repository.NewContentRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	tokens, err := auth.NewTokenManager(cfg.Auth)
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, tokens, service.AuthDependencies{
		UserRepo:  userRepo,
		AdminRepo: adminRepo,
	})
	userService := service.NewUserService(userRepo, dispatcher, cfg.Auth.BcryptCost)
	propertyService := service.NewPropertyService(propertyRepo, dispatcher, logger)
	listingService := service.NewListingService(listingRepo, reviewRepo, dispatcher)
	newsService := service.NewNewsService(newsRepo, contentRepo)
	notificationService := service.NewNotificationService(notificationRepo, dispatcher, logger)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(tokens)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.IsProduction(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	rateLimiter := httptransport.NewRateLimiter(redis.Client, logger, cfg.RateLimit.Window())
	if !cfg.RateLimit.Enabled {
		rateLimiter = httptransport.NewRateLimiter(nil, logger, cfg.RateLimit.Window())
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, cfg.App.IsProduction()),
		Users:          handlers.NewUsersHandler(userService),
		Properties:     handlers.NewPropertiesHandler(propertyService),
		Listings:       handlers.NewListingsHandler(listingService),
		News:           handlers.NewNewsHandler(newsService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		AuthMiddleware: authMiddleware,
		RateLimiter:    rateLimiter,
		GeneralMax:     cfg.RateLimit.GeneralMax,
		AuthMax:        cfg.RateLimit.AuthMax,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
