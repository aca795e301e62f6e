package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"thgamestore/internal/adapter/api"
	"thgamestore/internal/adapter/api/handler"
	apimiddleware "thgamestore/internal/adapter/api/middleware"
	"thgamestore/internal/adapter/api/router"
	"thgamestore/internal/domain/service"
	"thgamestore/internal/infrastructure/auth"
	"thgamestore/internal/infrastructure/imageproc"
	"thgamestore/internal/infrastructure/metrics"
	"thgamestore/internal/infrastructure/ratelimit"
	"thgamestore/internal/infrastructure/scheduler"
	"thgamestore/internal/infrastructure/storage"
	"thgamestore/internal/usecase"
	"thgamestore/pkg/config"
	"thgamestore/pkg/logger"
	"thgamestore/pkg/response"
)

const limiterIdleWindow = 10 * time.Minute

// infrastructure holds the external collaborators main resolves from config.
// uploadRoot is set when images are served from local disk.
type infrastructure struct {
	images     usecase.ImageStore
	uploadRoot string
	mailer     usecase.Mailer
	cache      usecase.CatalogCache
	events     usecase.EventPublisher
	metrics    *metrics.Metrics
}

// buildServer wires use cases, handlers, routes and background jobs on top
// of an open store. Jobs are registered but not started.
func buildServer(cfg *config.Config, store dataStore, infra infrastructure) (*echo.Echo, *scheduler.Scheduler, error) {
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	hasher := auth.NewBcryptHasher(0)
	limiter := ratelimit.NewRateLimiter(
		ratelimit.Policy{Limit: rate.Limit(cfg.RateLimitRPS * 4), Burst: cfg.RateLimitBurst * 4},
		map[string]ratelimit.Policy{
			router.AuthAction: {Limit: rate.Limit(cfg.RateLimitRPS), Burst: cfg.RateLimitBurst},
		},
	)

	// Use cases
	ratings := usecase.NewRatingAggregator(store.Reviews(), store.Games())
	authUseCase := usecase.NewAuthUseCase(store.Users(), hasher, tokens)
	passwordUseCase := usecase.NewPasswordUseCase(store.Users(), hasher, infra.mailer, cfg.ClientURL, cfg.ResetTokenTTL)
	userUseCase := usecase.NewUserUseCase(store.Users(), hasher)
	gameUseCase := usecase.NewGameUseCase(store.Games(), infra.cache)
	orderUseCase := usecase.NewOrderUseCase(
		store.Games(),
		store.Orders(),
		store.Library(),
		store.Users(),
		store,
		service.NewSimulatedPaymentService(),
		infra.events,
		infra.metrics,
	)
	libraryUseCase := usecase.NewLibraryUseCase(store.Library(), store.Games())
	reviewUseCase := usecase.NewReviewUseCase(store.Reviews(), store.Games(), store.Users(), libraryUseCase, ratings)
	wishlistUseCase := usecase.NewWishlistUseCase(store.Wishlist(), store.Games())
	adminUseCase := usecase.NewAdminUseCase(store.Users(), store.Games(), store.Orders())
	mediaUseCase := usecase.NewMediaUseCase(imageproc.NewResizer(), infra.images)

	handlers := &handler.Handlers{
		Auth:     handler.NewAuthHandler(authUseCase),
		Password: handler.NewPasswordHandler(passwordUseCase),
		User:     handler.NewUserHandler(userUseCase),
		Game:     handler.NewGameHandler(gameUseCase),
		Order:    handler.NewOrderHandler(orderUseCase),
		Library:  handler.NewLibraryHandler(libraryUseCase),
		Review:   handler.NewReviewHandler(reviewUseCase),
		Wishlist: handler.NewWishlistHandler(wishlistUseCase),
		Admin:    handler.NewAdminHandler(adminUseCase),
		Upload:   handler.NewUploadHandler(mediaUseCase),
		Health:   handler.NewHealthHandler(store),
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = response.HTTPErrorHandler
	e.Validator = api.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientURL},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		MaxAge:       int(time.Hour.Seconds()),
	}))
	e.Use(apimiddleware.RequestLogger())
	e.Use(infra.metrics.Middleware())

	if infra.uploadRoot != "" {
		e.Static(storage.PublicPath, infra.uploadRoot)
	}
	e.GET("/metrics", echo.WrapHandler(infra.metrics.Handler()))
	router.Setup(e, handlers, router.Middlewares{
		Auth:      apimiddleware.NewAuthMiddleware(tokens, store.Users()),
		Admin:     apimiddleware.NewAdminMiddleware(),
		RateLimit: apimiddleware.NewRateLimitMiddleware(limiter),
	})

	// Background jobs
	jobs := scheduler.New(infra.metrics)
	if err := jobs.Add(cfg.ResetPurgeSchedule, "purge_reset_tokens", func(ctx context.Context) error {
		cleared, err := passwordUseCase.PurgeExpiredTokens(ctx)
		if err == nil && cleared > 0 {
			logger.Info("Cleared %d expired password reset tokens", cleared)
		}
		return err
	}); err != nil {
		return nil, nil, fmt.Errorf("invalid RESET_PURGE_SCHEDULE: %w", err)
	}
	if err := jobs.Add("@every 5m", "rate_limiter_cleanup", func(context.Context) error {
		if removed := limiter.Cleanup(limiterIdleWindow); removed > 0 {
			logger.Debug("Dropped %d idle rate limit buckets", removed)
		}
		return nil
	}); err != nil {
		return nil, nil, fmt.Errorf("schedule limiter cleanup: %w", err)
	}

	return e, jobs, nil
}
