package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/errgroup"

	"thgamestore/internal/domain/repository"
	"thgamestore/pkg/errors"
	"thgamestore/pkg/logger"
)

const (
	colGames      = "games"
	colUsers      = "users"
	colOrders     = "orders"
	colOrderItems = "order_items"
	colLibrary    = "library"
	colReviews    = "reviews"
	colWishlist   = "wishlist"
)

// MongoStore owns the client and hands out repositories bound to one
// database.
type MongoStore struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool
}

func NewMongoStore(ctx context.Context, uri, database string, transactions bool) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &MongoStore{
		client:       client,
		db:           client.Database(database),
		transactions: transactions,
	}, nil
}

// EnsureIndexes creates the unique indexes the repositories rely on for
// slug, email and per-user pair uniqueness.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	pair := mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "gameId", Value: 1}}, Options: unique}

	indexes := map[string][]mongo.IndexModel{
		colGames: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "soldCount", Value: -1}}},
		},
		colUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		colOrders: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		colOrderItems: {
			{Keys: bson.D{{Key: "orderId", Value: 1}}},
		},
		colLibrary:  {pair},
		colReviews:  {pair, {Keys: bson.D{{Key: "gameId", Value: 1}, {Key: "createdAt", Value: -1}}}},
		colWishlist: {pair},
	}

	for collection, models := range indexes {
		if _, err := s.db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}
	return nil
}

// WithinTransaction runs fn inside a session transaction when enabled.
// Standalone servers cannot run transactions, so the flag defaults off.
func (s *MongoStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !s.transactions {
		return fn(ctx)
	}

	sess, err := s.client.StartSession()
	if err != nil {
		return errors.Internal("Failed to start session", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	logger.Info("Disconnecting from MongoDB")
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) Games() repository.GameRepository {
	return NewMongoGameRepository(s.db)
}

func (s *MongoStore) Users() repository.UserRepository {
	return NewMongoUserRepository(s.db)
}

func (s *MongoStore) Orders() repository.OrderRepository {
	return NewMongoOrderRepository(s.db)
}

func (s *MongoStore) Library() repository.LibraryRepository {
	return NewMongoLibraryRepository(s.db)
}

func (s *MongoStore) Reviews() repository.ReviewRepository {
	return NewMongoReviewRepository(s.db)
}

func (s *MongoStore) Wishlist() repository.WishlistRepository {
	return NewMongoWishlistRepository(s.db)
}

// mongoError maps driver errors onto application errors.
func mongoError(resource string, err error, conflict string) error {
	switch {
	case err == nil:
		return nil
	case err == mongo.ErrNoDocuments:
		return errors.NotFound(resource, err)
	case conflict != "" && mongo.IsDuplicateKeyError(err):
		return errors.Conflict(conflict)
	}
	return errors.Internal(fmt.Sprintf("Failed to access %s", resource), err)
}

func pageOptions(limit, offset int) *options.FindOptions {
	opts := options.Find()
	if offset > 0 {
		opts.SetSkip(int64(offset))
	}
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return opts
}

// countAndFind runs a page query and its total count side by side. A session
// is not safe for concurrent use, so ctx must not carry one.
func countAndFind[T any](ctx context.Context, count func(context.Context) (int64, error), find func(context.Context) ([]*T, error)) ([]*T, int64, error) {
	var (
		total int64
		page  []*T
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		page, err = find(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return page, total, nil
}

func newestFirst() bson.D {
	return bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]*T, error) {
	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
