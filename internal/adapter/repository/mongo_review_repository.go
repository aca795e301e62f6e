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
	"thgamestore/pkg/errors"
)

type mongoReviewRepository struct {
	col *mongo.Collection
}

func NewMongoReviewRepository(db *mongo.Database) repository.ReviewRepository {
	return &mongoReviewRepository{col: db.Collection(colReviews)}
}

func (r *mongoReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, review)
	return mongoError("Review", err, "Review already exists")
}

func (r *mongoReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{
		"rating":    review.Rating,
		"comment":   review.Comment,
		"updatedAt": time.Now(),
	}}
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": review.ID}, update, opts).Decode(review)
	return mongoError("Review", err, "")
}

func (r *mongoReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoReviewRepository) GetByUserAndGame(ctx context.Context, userID, gameID string) (*entity.Review, error) {
	return r.findOne(ctx, bson.M{"userId": userID, "gameId": gameID})
}

func (r *mongoReviewRepository) findOne(ctx context.Context, filter bson.M) (*entity.Review, error) {
	var review entity.Review
	if err := r.col.FindOne(ctx, filter).Decode(&review); err != nil {
		return nil, mongoError("Review", err, "")
	}
	return &review, nil
}

func (r *mongoReviewRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mongoError("Review", err, "")
	}
	if res.DeletedCount == 0 {
		return errors.NotFound("Review", nil)
	}
	return nil
}

func (r *mongoReviewRepository) ListByGame(ctx context.Context, gameID string, limit, offset int) ([]*entity.Review, int64, error) {
	filter := bson.M{"gameId": gameID}
	opts := pageOptions(limit, offset).SetSort(newestFirst())
	reviews, total, err := countAndFind(ctx,
		func(ctx context.Context) (int64, error) { return r.col.CountDocuments(ctx, filter) },
		func(ctx context.Context) ([]*entity.Review, error) { return findAll[entity.Review](ctx, r.col, filter, opts) },
	)
	if err != nil {
		return nil, 0, mongoError("Review", err, "")
	}
	return reviews, total, nil
}

func (r *mongoReviewRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Review, error) {
	reviews, err := findAll[entity.Review](ctx, r.col, bson.M{"userId": userID}, options.Find().SetSort(newestFirst()))
	return reviews, mongoError("Review", err, "")
}

func (r *mongoReviewRepository) RatingStats(ctx context.Context, gameID string) (entity.RatingStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"gameId": gameID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$gameId",
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return entity.RatingStats{}, mongoError("Review", err, "")
	}
	defer cur.Close(ctx)

	var rows []struct {
		Average float64 `bson:"average"`
		Count   int     `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return entity.RatingStats{}, mongoError("Review", err, "")
	}
	if len(rows) == 0 {
		return entity.RatingStats{}, nil
	}
	return entity.RatingStats{Average: rows[0].Average, Count: rows[0].Count}, nil
}
