package main

import (
	"context"
	"fmt"
	"time"

	"thgamestore/internal/adapter/repository"
	"thgamestore/internal/adapter/repository/memory"
	domainrepo "thgamestore/internal/domain/repository"
	"thgamestore/internal/infrastructure/firebase"
	"thgamestore/pkg/config"
	"thgamestore/pkg/logger"
)

// dataStore is what every storage driver provides to the use cases.
type dataStore interface {
	domainrepo.Transactor
	domainrepo.Pinger
	Games() domainrepo.GameRepository
	Users() domainrepo.UserRepository
	Orders() domainrepo.OrderRepository
	Library() domainrepo.LibraryRepository
	Reviews() domainrepo.ReviewRepository
	Wishlist() domainrepo.WishlistRepository
}

// openStore connects the configured driver. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config) (dataStore, func(context.Context) error, error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		store, err := repository.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoTransactions)
		if err != nil {
			return nil, nil, err
		}
		indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := store.EnsureIndexes(indexCtx); err != nil {
			_ = store.Close(ctx)
			return nil, nil, fmt.Errorf("ensure indexes: %w", err)
		}
		logger.Info("Connected to MongoDB database %s (transactions: %t)", cfg.MongoDatabase, cfg.MongoTransactions)
		return store, store.Close, nil

	case config.DriverFirestore:
		client, err := firebase.NewFirestoreClient(ctx, cfg.FirebaseProject, cfg.CredentialsPath)
		if err != nil {
			return nil, nil, err
		}
		store := repository.NewFirestoreStore(client)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("ping firestore: %w", err)
		}
		logger.Info("Connected to Firestore project %s", cfg.FirebaseProject)
		return store, func(context.Context) error { return store.Close() }, nil

	case config.DriverMemory:
		logger.Warn("Using the in-memory store, data is lost on restart")
		return memory.New(), func(context.Context) error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
}
