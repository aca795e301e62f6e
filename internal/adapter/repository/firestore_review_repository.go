package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
	"thgamestore/pkg/errors"
)

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

func (r *firestoreReviewRepository) reviews() *firestore.CollectionRef {
	return r.client.Collection(colReviews)
}

// Create keys the review by (user, game), so a second review of the same
// game collides on the document id.
func (r *firestoreReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	review.ID = pairDocID(review.UserID, review.GameID)
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	_, err := r.reviews().Doc(review.ID).Create(ctx, review)
	return firestoreError("Review", err, "Review already exists")
}

func (r *firestoreReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	_, err := r.reviews().Doc(review.ID).Update(ctx, []firestore.Update{
		{Path: "rating", Value: review.Rating},
		{Path: "comment", Value: review.Comment},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return firestoreError("Review", err, "")
	}

	stored, err := r.GetByID(ctx, review.ID)
	if err != nil {
		return err
	}
	*review = *stored
	return nil
}

func (r *firestoreReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	doc, err := r.reviews().Doc(id).Get(ctx)
	if err != nil {
		return nil, firestoreError("Review", err, "")
	}

	var review entity.Review
	if err := doc.DataTo(&review); err != nil {
		return nil, errors.Internal("Failed to parse review data", err)
	}
	return &review, nil
}

func (r *firestoreReviewRepository) GetByUserAndGame(ctx context.Context, userID, gameID string) (*entity.Review, error) {
	return r.GetByID(ctx, pairDocID(userID, gameID))
}

func (r *firestoreReviewRepository) Delete(ctx context.Context, id string) error {
	ref := r.reviews().Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		return firestoreError("Review", err, "")
	}
	_, err := ref.Delete(ctx)
	return firestoreError("Review", err, "")
}

func (r *firestoreReviewRepository) ListByGame(ctx context.Context, gameID string, limit, offset int) ([]*entity.Review, int64, error) {
	base := r.reviews().Where("gameId", "==", gameID)
	total, err := countQuery(ctx, base)
	if err != nil {
		return nil, 0, firestoreError("Review", err, "")
	}

	q := pageQuery(base.OrderBy("createdAt", firestore.Desc), limit, offset)
	reviews, err := docsTo[entity.Review](q.Documents(ctx))
	if err != nil {
		return nil, 0, firestoreError("Review", err, "")
	}
	return reviews, total, nil
}

func (r *firestoreReviewRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Review, error) {
	q := r.reviews().Where("userId", "==", userID).OrderBy("createdAt", firestore.Desc)
	reviews, err := docsTo[entity.Review](q.Documents(ctx))
	return reviews, firestoreError("Review", err, "")
}

func (r *firestoreReviewRepository) RatingStats(ctx context.Context, gameID string) (entity.RatingStats, error) {
	q := r.reviews().Where("gameId", "==", gameID).Select("rating")
	reviews, err := docsTo[entity.Review](q.Documents(ctx))
	if err != nil {
		return entity.RatingStats{}, firestoreError("Review", err, "")
	}

	ratings := make([]int, 0, len(reviews))
	for _, rv := range reviews {
		ratings = append(ratings, rv.Rating)
	}
	return entity.AggregateRatings(ratings), nil
}
