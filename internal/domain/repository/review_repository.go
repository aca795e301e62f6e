package repository

import (
	"context"

	"thgamestore/internal/domain/entity"
)

type ReviewRepository interface {
	// Create fails with a CONFLICT error when the user already reviewed
	// the game.
	Create(ctx context.Context, review *entity.Review) error
	Update(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetByUserAndGame(ctx context.Context, userID, gameID string) (*entity.Review, error)
	Delete(ctx context.Context, id string) error
	ListByGame(ctx context.Context, gameID string, limit, offset int) ([]*entity.Review, int64, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Review, error)
	RatingStats(ctx context.Context, gameID string) (entity.RatingStats, error)
}
