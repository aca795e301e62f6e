package repository

import (
	"context"

	"thgamestore/internal/domain/entity"
)

type GameFilter struct {
	Search string
	Genre  string
	Tag    string
	Sort   entity.GameSort
	Limit  int
	Offset int
}

type GameRepository interface {
	// Create fails with a CONFLICT error when the slug is taken.
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Game, error)
	// FindByIDs returns the games that exist; missing ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*entity.Game, error)
	List(ctx context.Context, filter GameFilter) ([]*entity.Game, int64, error)
	// Update writes catalog fields only. Rating and sold counters are
	// owned by SetRating and IncrementSoldCount.
	Update(ctx context.Context, game *entity.Game) error
	Delete(ctx context.Context, id string) error
	IncrementSoldCount(ctx context.Context, id string, quantity int) error
	SetRating(ctx context.Context, id string, stats entity.RatingStats) error
	DistinctGenres(ctx context.Context) ([]string, error)
	DistinctTags(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}
