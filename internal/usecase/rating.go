package usecase

import (
	"context"

	"thgamestore/internal/domain/repository"
	"thgamestore/pkg/errors"
)

// RatingAggregator owns the ratingAverage/ratingCount projection on games.
// Every review mutation goes through Refresh.
type RatingAggregator struct {
	reviewRepo repository.ReviewRepository
	gameRepo   repository.GameRepository
}

func NewRatingAggregator(reviewRepo repository.ReviewRepository, gameRepo repository.GameRepository) *RatingAggregator {
	return &RatingAggregator{
		reviewRepo: reviewRepo,
		gameRepo:   gameRepo,
	}
}

// Refresh re-aggregates all ratings of the game. With no reviews left both
// fields go back to zero.
func (a *RatingAggregator) Refresh(ctx context.Context, gameID string) error {
	stats, err := a.reviewRepo.RatingStats(ctx, gameID)
	if err != nil {
		return err
	}
	if err := a.gameRepo.SetRating(ctx, gameID, stats); err != nil {
		// The game may have been deleted while its reviews remain.
		if errors.Is(err, errors.CodeNotFound) {
			return nil
		}
		return err
	}
	return nil
}
