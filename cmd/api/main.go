package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thgamestore/internal/infrastructure/cache"
	"thgamestore/internal/infrastructure/events"
	"thgamestore/internal/infrastructure/mail"
	"thgamestore/internal/infrastructure/metrics"
	"thgamestore/internal/infrastructure/storage"
	"thgamestore/pkg/config"
	"thgamestore/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: %v", err)
	}
	logger.Setup(cfg.LogLevel, cfg.Environment)

	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open %s store: %v", cfg.DBDriver, err)
	}

	infra := infrastructure{
		mailer:  mail.LogMailer{},
		cache:   cache.Noop{},
		metrics: metrics.New(),
	}

	// Image storage
	if cfg.StorageBucket != "" {
		gcs, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.CredentialsPath)
		if err != nil {
			logger.Fatal("Failed to initialize Cloud Storage: %v", err)
		}
		defer gcs.Close()
		infra.images = gcs
	} else {
		local, err := storage.NewLocalStorage(cfg.UploadDir, cfg.PublicBaseURL)
		if err != nil {
			logger.Fatal("Failed to prepare upload directory: %v", err)
		}
		infra.images = local
		infra.uploadRoot = local.Root()
	}

	// Mail
	if cfg.SMTPHost != "" {
		smtp, err := mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
		if err != nil {
			logger.Fatal("Failed to configure SMTP: %v", err)
		}
		infra.mailer = smtp
	}

	// Catalog cache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			logger.Fatal("Failed to configure Redis: %v", err)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("Redis unreachable, catalog reads will miss the cache: %v", err)
		}
		defer redisCache.Close()
		infra.cache = redisCache
	}

	publisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic, cfg.KafkaEnabled)
	defer publisher.Close()
	infra.events = publisher

	e, jobs, err := buildServer(cfg, store, infra)
	if err != nil {
		logger.Fatal("Failed to build server: %v", err)
	}
	jobs.Start()

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown: %v", err)
	}
	jobs.Stop(shutdownCtx)
	if err := closeStore(shutdownCtx); err != nil {
		logger.Error("Closing store: %v", err)
	}
}
