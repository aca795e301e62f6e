package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
	"thgamestore/pkg/errors"
)

const emailTaken = "Email already used"

type mongoUserRepository struct {
	col *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{col: db.Collection(colUsers)}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, user)
	return mongoError("User", err, emailTaken)
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var user entity.User
	if err := r.col.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, mongoError("User", err, "")
	}
	return &user, nil
}

func (r *mongoUserRepository) FindByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}
	users, err := findAll[entity.User](ctx, r.col, bson.M{"_id": bson.M{"$in": ids}})
	return users, mongoError("User", err, "")
}

// Update replaces the document, so cleared reset fields disappear through
// their omitempty tags.
func (r *mongoUserRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return mongoError("User", err, emailTaken)
	}
	if res.MatchedCount == 0 {
		return errors.NotFound("User", nil)
	}
	return nil
}

func (r *mongoUserRepository) List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, mongoError("User", err, "")
	}
	users, err := findAll[entity.User](ctx, r.col, bson.M{}, pageOptions(limit, offset).SetSort(newestFirst()))
	if err != nil {
		return nil, 0, mongoError("User", err, "")
	}
	return users, total, nil
}

func (r *mongoUserRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	return n, mongoError("User", err, "")
}

func (r *mongoUserRepository) FindByResetToken(ctx context.Context, email, tokenHash string, now time.Time) (*entity.User, error) {
	return r.findOne(ctx, bson.M{
		"email":            email,
		"resetTokenHash":   tokenHash,
		"resetTokenExpiry": bson.M{"$gt": now},
	})
}

func (r *mongoUserRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"resetTokenExpiry": bson.M{"$lte": now}},
		bson.M{"$unset": bson.M{"resetTokenHash": "", "resetTokenExpiry": ""}},
	)
	if err != nil {
		return 0, mongoError("User", err, "")
	}
	return res.ModifiedCount, nil
}
