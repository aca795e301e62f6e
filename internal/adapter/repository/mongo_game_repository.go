package repository

import (
	"context"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
	"thgamestore/pkg/errors"
)

const slugTaken = "Slug already exists"

type mongoGameRepository struct {
	col *mongo.Collection
}

func NewMongoGameRepository(db *mongo.Database) repository.GameRepository {
	return &mongoGameRepository{col: db.Collection(colGames)}
}

func (r *mongoGameRepository) Create(ctx context.Context, game *entity.Game) error {
	if game.ID == "" {
		game.ID = uuid.New().String()
	}
	now := time.Now()
	if game.CreatedAt.IsZero() {
		game.CreatedAt = now
	}
	game.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, game)
	return mongoError("Game", err, slugTaken)
}

func (r *mongoGameRepository) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoGameRepository) GetBySlug(ctx context.Context, slug string) (*entity.Game, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *mongoGameRepository) findOne(ctx context.Context, filter bson.M) (*entity.Game, error) {
	var game entity.Game
	if err := r.col.FindOne(ctx, filter).Decode(&game); err != nil {
		return nil, mongoError("Game", err, "")
	}
	return &game, nil
}

func (r *mongoGameRepository) FindByIDs(ctx context.Context, ids []string) ([]*entity.Game, error) {
	if len(ids) == 0 {
		return []*entity.Game{}, nil
	}
	games, err := findAll[entity.Game](ctx, r.col, bson.M{"_id": bson.M{"$in": ids}})
	return games, mongoError("Game", err, "")
}

func (r *mongoGameRepository) List(ctx context.Context, filter repository.GameFilter) ([]*entity.Game, int64, error) {
	query := bson.M{}
	if filter.Search != "" {
		query["title"] = bson.M{"$regex": regexp.QuoteMeta(filter.Search), "$options": "i"}
	}
	if filter.Genre != "" {
		query["genres"] = filter.Genre
	}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}

	opts := pageOptions(filter.Limit, filter.Offset).SetSort(gameSort(filter.Sort))
	games, total, err := countAndFind(ctx,
		func(ctx context.Context) (int64, error) { return r.col.CountDocuments(ctx, query) },
		func(ctx context.Context) ([]*entity.Game, error) { return findAll[entity.Game](ctx, r.col, query, opts) },
	)
	if err != nil {
		return nil, 0, mongoError("Game", err, "")
	}
	return games, total, nil
}

func gameSort(s entity.GameSort) bson.D {
	var primary bson.E
	switch s {
	case entity.SortTopSell:
		primary = bson.E{Key: "soldCount", Value: -1}
	case entity.SortRating:
		primary = bson.E{Key: "ratingAverage", Value: -1}
	case entity.SortPriceAsc:
		primary = bson.E{Key: "finalPrice", Value: 1}
	case entity.SortPriceDesc:
		primary = bson.E{Key: "finalPrice", Value: -1}
	default:
		return newestFirst()
	}
	return append(bson.D{primary}, newestFirst()...)
}

func (r *mongoGameRepository) Update(ctx context.Context, game *entity.Game) error {
	game.UpdatedAt = time.Now()
	set := bson.M{
		"title":            game.Title,
		"slug":             game.Slug,
		"description":      game.Description,
		"price":            game.Price,
		"discountPercent":  game.DiscountPercent,
		"finalPrice":       game.FinalPrice,
		"thumbnailUrl":     game.ThumbnailURL,
		"bannerUrl":        game.BannerURL,
		"trailerYoutubeId": game.TrailerYoutubeID,
		"genres":           game.Genres,
		"tags":             game.Tags,
		"minSpecs":         game.MinSpecs,
		"releaseDate":      game.ReleaseDate,
		"developer":        game.Developer,
		"publisher":        game.Publisher,
		"downloadInfo":     game.DownloadInfo,
		"updatedAt":        game.UpdatedAt,
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": game.ID}, bson.M{"$set": set})
	if err != nil {
		return mongoError("Game", err, slugTaken)
	}
	if res.MatchedCount == 0 {
		return errors.NotFound("Game", nil)
	}
	return nil
}

func (r *mongoGameRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mongoError("Game", err, "")
	}
	if res.DeletedCount == 0 {
		return errors.NotFound("Game", nil)
	}
	return nil
}

func (r *mongoGameRepository) IncrementSoldCount(ctx context.Context, id string, quantity int) error {
	return r.updateOne(ctx, id, bson.M{"$inc": bson.M{"soldCount": quantity}})
}

func (r *mongoGameRepository) SetRating(ctx context.Context, id string, stats entity.RatingStats) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{
		"ratingAverage": stats.Average,
		"ratingCount":   stats.Count,
	}})
}

func (r *mongoGameRepository) updateOne(ctx context.Context, id string, update bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return mongoError("Game", err, "")
	}
	if res.MatchedCount == 0 {
		return errors.NotFound("Game", nil)
	}
	return nil
}

func (r *mongoGameRepository) DistinctGenres(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "genres")
}

func (r *mongoGameRepository) DistinctTags(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "tags")
}

func (r *mongoGameRepository) distinct(ctx context.Context, field string) ([]string, error) {
	values, err := r.col.Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, mongoError("Game", err, "")
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *mongoGameRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	return n, mongoError("Game", err, "")
}
