package repository

import (
	"context"

	"thgamestore/internal/domain/entity"
)

type WishlistRepository interface {
	AddIfAbsent(ctx context.Context, entry *entity.WishlistEntry) (created bool, err error)
	// Remove is a no-op when the pair is not wishlisted.
	Remove(ctx context.Context, userID, gameID string) error
	ListByUser(ctx context.Context, userID string) ([]*entity.WishlistEntry, error)
}
