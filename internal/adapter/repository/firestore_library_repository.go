package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
)

type firestoreLibraryRepository struct {
	client *firestore.Client
}

func NewFirestoreLibraryRepository(client *firestore.Client) repository.LibraryRepository {
	return &firestoreLibraryRepository{client: client}
}

// GrantIfAbsent relies on Create failing for an existing document id.
func (r *firestoreLibraryRepository) GrantIfAbsent(ctx context.Context, entry *entity.LibraryEntry) (bool, error) {
	entry.ID = pairDocID(entry.UserID, entry.GameID)
	if entry.AcquiredAt.IsZero() {
		entry.AcquiredAt = time.Now()
	}
	if entry.Source == "" {
		entry.Source = entity.LibrarySourcePurchase
	}

	_, err := r.client.Collection(colLibrary).Doc(entry.ID).Create(ctx, entry)
	if err != nil {
		if isAlreadyExists(err) {
			return false, nil
		}
		return false, firestoreError("Library entry", err, "")
	}
	return true, nil
}

func (r *firestoreLibraryRepository) Exists(ctx context.Context, userID, gameID string) (bool, error) {
	return pairExists(ctx, r.client.Collection(colLibrary).Doc(pairDocID(userID, gameID)))
}

func (r *firestoreLibraryRepository) ListByUser(ctx context.Context, userID string) ([]*entity.LibraryEntry, error) {
	q := r.client.Collection(colLibrary).Where("userId", "==", userID).OrderBy("acquiredAt", firestore.Desc)
	entries, err := docsTo[entity.LibraryEntry](q.Documents(ctx))
	return entries, firestoreError("Library entry", err, "")
}

func pairExists(ctx context.Context, ref *firestore.DocumentRef) (bool, error) {
	doc, err := ref.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, firestoreError(ref.Parent.ID, err, "")
	}
	return doc.Exists(), nil
}
