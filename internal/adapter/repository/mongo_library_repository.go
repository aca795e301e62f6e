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

type mongoLibraryRepository struct {
	col *mongo.Collection
}

func NewMongoLibraryRepository(db *mongo.Database) repository.LibraryRepository {
	return &mongoLibraryRepository{col: db.Collection(colLibrary)}
}

func (r *mongoLibraryRepository) GrantIfAbsent(ctx context.Context, entry *entity.LibraryEntry) (bool, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.AcquiredAt.IsZero() {
		entry.AcquiredAt = time.Now()
	}
	if entry.Source == "" {
		entry.Source = entity.LibrarySourcePurchase
	}

	insert := bson.M{
		"_id":        entry.ID,
		"acquiredAt": entry.AcquiredAt,
		"source":     entry.Source,
	}
	return upsertPair(ctx, r.col, entry.UserID, entry.GameID, insert)
}

func (r *mongoLibraryRepository) Exists(ctx context.Context, userID, gameID string) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"userId": userID, "gameId": gameID}, options.Count().SetLimit(1))
	if err != nil {
		return false, mongoError("Library entry", err, "")
	}
	return n > 0, nil
}

func (r *mongoLibraryRepository) ListByUser(ctx context.Context, userID string) ([]*entity.LibraryEntry, error) {
	sort := bson.D{{Key: "acquiredAt", Value: -1}, {Key: "_id", Value: -1}}
	entries, err := findAll[entity.LibraryEntry](ctx, r.col, bson.M{"userId": userID}, options.Find().SetSort(sort))
	return entries, mongoError("Library entry", err, "")
}

// upsertPair inserts the document for (userID, gameID) only when the pair
// is new. A duplicate key from a concurrent upsert means another request
// won the race, which is the same outcome as a matched document.
func upsertPair(ctx context.Context, col *mongo.Collection, userID, gameID string, insert bson.M) (bool, error) {
	res, err := col.UpdateOne(ctx,
		bson.M{"userId": userID, "gameId": gameID},
		bson.M{"$setOnInsert": insert},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, mongoError(col.Name(), err, "")
	}
	return res.UpsertedCount == 1, nil
}
