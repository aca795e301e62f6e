package repository

import (
	"context"
	"fmt"
	"net/url"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"thgamestore/internal/domain/repository"
	"thgamestore/pkg/errors"
)

const (
	colGameSlugs  = "game_slugs"
	colUserEmails = "user_emails"
)

// FirestoreStore hands out repositories sharing one client. Uniqueness of
// slugs and emails is kept by key documents created in the same
// transaction as the record; per-user pairs use deterministic ids.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// WithinTransaction calls fn directly. Firestore transactions are bound to
// a *firestore.Transaction rather than a context, so each repository write
// is made atomic on its own instead.
func (s *FirestoreStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *FirestoreStore) Ping(ctx context.Context) error {
	_, err := s.client.Collection(colGames).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		return err
	}
	return nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) Games() repository.GameRepository {
	return NewFirestoreGameRepository(s.client)
}

func (s *FirestoreStore) Users() repository.UserRepository {
	return NewFirestoreUserRepository(s.client)
}

func (s *FirestoreStore) Orders() repository.OrderRepository {
	return NewFirestoreOrderRepository(s.client)
}

func (s *FirestoreStore) Library() repository.LibraryRepository {
	return NewFirestoreLibraryRepository(s.client)
}

func (s *FirestoreStore) Reviews() repository.ReviewRepository {
	return NewFirestoreReviewRepository(s.client)
}

func (s *FirestoreStore) Wishlist() repository.WishlistRepository {
	return NewFirestoreWishlistRepository(s.client)
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// firestoreError maps client errors onto application errors. AppErrors
// raised inside a transaction function pass through untouched.
func firestoreError(resource string, err error, conflict string) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.From(err); ok {
		return err
	}
	switch {
	case isNotFound(err) || err == iterator.Done:
		return errors.NotFound(resource, err)
	case conflict != "" && isAlreadyExists(err):
		return errors.Conflict(conflict)
	}
	return errors.Internal(fmt.Sprintf("Failed to access %s", resource), err)
}

// pairDocID keys documents that are unique per (user, game).
func pairDocID(userID, gameID string) string {
	return fmt.Sprintf("%s_%s", userID, gameID)
}

// keyDocID escapes a natural key so it is a valid document id.
func keyDocID(key string) string {
	return url.PathEscape(key)
}

func docsTo[T any](iter *firestore.DocumentIterator) ([]*T, error) {
	defer iter.Stop()

	out := make([]*T, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		var v T
		if err := doc.DataTo(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
}

// getAllByID fetches documents by id in batches, skipping missing ones.
func getAllByID[T any](ctx context.Context, client *firestore.Client, collection string, ids []string) ([]*T, error) {
	const batch = 100

	out := make([]*T, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		refs = append(refs, client.Collection(collection).Doc(id))
	}

	for start := 0; start < len(refs); start += batch {
		end := start + batch
		if end > len(refs) {
			end = len(refs)
		}
		snaps, err := client.GetAll(ctx, refs[start:end])
		if err != nil {
			return nil, err
		}
		for _, snap := range snaps {
			if snap == nil || !snap.Exists() {
				continue
			}
			var v T
			if err := snap.DataTo(&v); err != nil {
				return nil, err
			}
			out = append(out, &v)
		}
	}
	return out, nil
}

func countQuery(ctx context.Context, q firestore.Query) (int64, error) {
	res, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, err
	}
	v, ok := res["all"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected count result %T", res["all"])
	}
	return v.GetIntegerValue(), nil
}

func pageQuery(q firestore.Query, limit, offset int) firestore.Query {
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}
