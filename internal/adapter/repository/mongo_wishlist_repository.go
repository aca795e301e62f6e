package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
)

type mongoWishlistRepository struct {
	col *mongo.Collection
}

func NewMongoWishlistRepository(db *mongo.Database) repository.WishlistRepository {
	return &mongoWishlistRepository{col: db.Collection(colWishlist)}
}

func (r *mongoWishlistRepository) AddIfAbsent(ctx context.Context, entry *entity.WishlistEntry) (bool, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return upsertPair(ctx, r.col, entry.UserID, entry.GameID, bson.M{
		"_id":       entry.ID,
		"createdAt": entry.CreatedAt,
	})
}

func (r *mongoWishlistRepository) Remove(ctx context.Context, userID, gameID string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"userId": userID, "gameId": gameID})
	return mongoError("Wishlist entry", err, "")
}

func (r *mongoWishlistRepository) ListByUser(ctx context.Context, userID string) ([]*entity.WishlistEntry, error) {
	entries, err := findAll[entity.WishlistEntry](ctx, r.col, bson.M{"userId": userID}, options.Find().SetSort(newestFirst()))
	return entries, mongoError("Wishlist entry", err, "")
}
