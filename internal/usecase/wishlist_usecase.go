package usecase

import (
	"context"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
)

type WishlistUseCase struct {
	wishlistRepo repository.WishlistRepository
	gameRepo     repository.GameRepository
}

func NewWishlistUseCase(wishlistRepo repository.WishlistRepository, gameRepo repository.GameRepository) *WishlistUseCase {
	return &WishlistUseCase{
		wishlistRepo: wishlistRepo,
		gameRepo:     gameRepo,
	}
}

// Add is idempotent: wishlisting a game twice keeps the first entry.
func (uc *WishlistUseCase) Add(ctx context.Context, userID, gameID string) error {
	if _, err := uc.gameRepo.GetByID(ctx, gameID); err != nil {
		return err
	}
	_, err := uc.wishlistRepo.AddIfAbsent(ctx, &entity.WishlistEntry{UserID: userID, GameID: gameID})
	return err
}

func (uc *WishlistUseCase) Remove(ctx context.Context, userID, gameID string) error {
	return uc.wishlistRepo.Remove(ctx, userID, gameID)
}

func (uc *WishlistUseCase) List(ctx context.Context, userID string) ([]*entity.WishlistItemWithGame, error) {
	entries, err := uc.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	games, err := gameIndex(ctx, uc.gameRepo, uniqueIDs(len(entries), func(i int) string { return entries[i].GameID }))
	if err != nil {
		return nil, err
	}

	items := make([]*entity.WishlistItemWithGame, 0, len(entries))
	for _, e := range entries {
		items = append(items, &entity.WishlistItemWithGame{
			WishlistID: e.ID,
			AddedAt:    e.CreatedAt,
			Game:       summaryOf(games[e.GameID]),
		})
	}
	return items, nil
}
