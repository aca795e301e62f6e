package usecase

import (
	"context"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
	"thgamestore/pkg/errors"
	"thgamestore/pkg/utils"
)

const DefaultReviewPageSize = 10

type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	gameRepo   repository.GameRepository
	userRepo   repository.UserRepository
	library    *LibraryUseCase
	ratings    *RatingAggregator
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	gameRepo repository.GameRepository,
	userRepo repository.UserRepository,
	library *LibraryUseCase,
	ratings *RatingAggregator,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		gameRepo:   gameRepo,
		userRepo:   userRepo,
		library:    library,
		ratings:    ratings,
	}
}

// UpsertReviewInput leaves an existing comment alone when Comment is nil.
type UpsertReviewInput struct {
	Rating  int
	Comment *string
}

// Actor is the authenticated caller of an operation that depends on role.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}

type ReviewPage struct {
	Reviews []*entity.ReviewWithUser
	Total   int64
	Page    int
	Limit   int
}

func (uc *ReviewUseCase) Upsert(ctx context.Context, userID, gameID string, input UpsertReviewInput) (*entity.Review, error) {
	if input.Rating == 0 {
		return nil, errors.Validation("Rating is required")
	}
	if !entity.ValidRating(input.Rating) {
		return nil, errors.Validation("rating must be between 1 and 5")
	}

	if _, err := uc.gameRepo.GetByID(ctx, gameID); err != nil {
		return nil, err
	}

	owned, err := uc.library.Owns(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, errors.Forbidden("You must own this game to review it", nil)
	}

	review, err := uc.save(ctx, userID, gameID, input)
	if err != nil {
		return nil, err
	}

	if err := uc.ratings.Refresh(ctx, gameID); err != nil {
		return nil, errors.Internal("Failed to update game rating", err)
	}
	return review, nil
}

func (uc *ReviewUseCase) save(ctx context.Context, userID, gameID string, input UpsertReviewInput) (*entity.Review, error) {
	existing, err := uc.reviewRepo.GetByUserAndGame(ctx, userID, gameID)
	if err != nil && !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}

	if existing == nil {
		review := &entity.Review{UserID: userID, GameID: gameID, Rating: input.Rating}
		if input.Comment != nil {
			review.Comment = *input.Comment
		}
		err := uc.reviewRepo.Create(ctx, review)
		if err == nil {
			return review, nil
		}
		if !errors.Is(err, errors.CodeConflict) {
			return nil, err
		}
		// A concurrent submission won the insert; update that row instead.
		existing, err = uc.reviewRepo.GetByUserAndGame(ctx, userID, gameID)
		if err != nil {
			return nil, err
		}
	}

	existing.Rating = input.Rating
	if input.Comment != nil {
		existing.Comment = *input.Comment
	}
	if err := uc.reviewRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (uc *ReviewUseCase) Delete(ctx context.Context, actor Actor, reviewID string) error {
	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != actor.UserID && !actor.IsAdmin() {
		return errors.Forbidden("Not allowed to delete this review", nil)
	}

	if err := uc.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}
	if err := uc.ratings.Refresh(ctx, review.GameID); err != nil {
		return errors.Internal("Failed to update game rating", err)
	}
	return nil
}

func (uc *ReviewUseCase) ListByGame(ctx context.Context, gameID string, page, limit int) (*ReviewPage, error) {
	p := utils.NewPaginationParams(page, limit, DefaultReviewPageSize)

	reviews, total, err := uc.reviewRepo.ListByGame(ctx, gameID, p.PageSize, p.Offset)
	if err != nil {
		return nil, err
	}

	users, err := userIndex(ctx, uc.userRepo, uniqueIDs(len(reviews), func(i int) string { return reviews[i].UserID }))
	if err != nil {
		return nil, err
	}

	out := make([]*entity.ReviewWithUser, 0, len(reviews))
	for _, r := range reviews {
		item := &entity.ReviewWithUser{Review: *r}
		if u, ok := users[r.UserID]; ok {
			item.User = &entity.UserSummary{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL}
		}
		out = append(out, item)
	}
	return &ReviewPage{Reviews: out, Total: total, Page: p.Page, Limit: p.PageSize}, nil
}

func (uc *ReviewUseCase) ListMine(ctx context.Context, userID string) ([]*entity.ReviewWithGame, error) {
	reviews, err := uc.reviewRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	games, err := gameIndex(ctx, uc.gameRepo, uniqueIDs(len(reviews), func(i int) string { return reviews[i].GameID }))
	if err != nil {
		return nil, err
	}

	out := make([]*entity.ReviewWithGame, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, &entity.ReviewWithGame{Review: *r, Game: summaryOf(games[r.GameID])})
	}
	return out, nil
}
