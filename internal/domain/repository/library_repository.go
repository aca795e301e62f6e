package repository

import (
	"context"

	"thgamestore/internal/domain/entity"
)

type LibraryRepository interface {
	// GrantIfAbsent inserts the entry unless the (user, game) pair already
	// exists, in which case the stored entry is left untouched and
	// created is false.
	GrantIfAbsent(ctx context.Context, entry *entity.LibraryEntry) (created bool, err error)
	Exists(ctx context.Context, userID, gameID string) (bool, error)
	// ListByUser returns entries ordered by acquiredAt, newest first.
	ListByUser(ctx context.Context, userID string) ([]*entity.LibraryEntry, error)
}
