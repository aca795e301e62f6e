package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
)

type firestoreWishlistRepository struct {
	client *firestore.Client
}

func NewFirestoreWishlistRepository(client *firestore.Client) repository.WishlistRepository {
	return &firestoreWishlistRepository{client: client}
}

func (r *firestoreWishlistRepository) AddIfAbsent(ctx context.Context, entry *entity.WishlistEntry) (bool, error) {
	entry.ID = pairDocID(entry.UserID, entry.GameID)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.client.Collection(colWishlist).Doc(entry.ID).Create(ctx, entry)
	if err != nil {
		if isAlreadyExists(err) {
			return false, nil
		}
		return false, firestoreError("Wishlist entry", err, "")
	}
	return true, nil
}

// Remove deletes by id; Firestore treats deleting a missing document as
// success.
func (r *firestoreWishlistRepository) Remove(ctx context.Context, userID, gameID string) error {
	_, err := r.client.Collection(colWishlist).Doc(pairDocID(userID, gameID)).Delete(ctx)
	return firestoreError("Wishlist entry", err, "")
}

func (r *firestoreWishlistRepository) ListByUser(ctx context.Context, userID string) ([]*entity.WishlistEntry, error) {
	q := r.client.Collection(colWishlist).Where("userId", "==", userID).OrderBy("createdAt", firestore.Desc)
	entries, err := docsTo[entity.WishlistEntry](q.Documents(ctx))
	return entries, firestoreError("Wishlist entry", err, "")
}
