package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"thgamestore/internal/domain/entity"
	"thgamestore/pkg/errors"
)

type reviewRecord struct {
	review entity.Review
	seq    int64
}

type reviewRepository struct {
	s *Store
}

func (r *reviewRepository) Create(_ context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey(review.UserID, review.GameID)
	if _, exists := r.s.reviewPairs[key]; exists {
		return errors.Conflict("Review already exists")
	}
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	r.s.reviews[review.ID] = reviewRecord{review: *review, seq: r.s.nextSeqLocked()}
	r.s.reviewPairs[key] = review.ID
	return nil
}

func (r *reviewRepository) Update(_ context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.reviews[review.ID]
	if !ok {
		return errors.NotFound("Review", nil)
	}
	rec.review.Rating = review.Rating
	rec.review.Comment = review.Comment
	rec.review.UpdatedAt = time.Now()
	r.s.reviews[review.ID] = rec

	*review = rec.review
	return nil
}

func (r *reviewRepository) GetByID(_ context.Context, id string) (*entity.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.reviews[id]
	if !ok {
		return nil, errors.NotFound("Review", nil)
	}
	review := rec.review
	return &review, nil
}

func (r *reviewRepository) GetByUserAndGame(_ context.Context, userID, gameID string) (*entity.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.reviewPairs[pairKey(userID, gameID)]
	if !ok {
		return nil, errors.NotFound("Review", nil)
	}
	review := r.s.reviews[id].review
	return &review, nil
}

func (r *reviewRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.reviews[id]
	if !ok {
		return errors.NotFound("Review", nil)
	}
	delete(r.s.reviewPairs, pairKey(rec.review.UserID, rec.review.GameID))
	delete(r.s.reviews, id)
	return nil
}

func (r *reviewRepository) ListByGame(_ context.Context, gameID string, limit, offset int) ([]*entity.Review, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	records := r.sortedLocked(func(rv entity.Review) bool { return rv.GameID == gameID })
	w := paginate(len(records), offset, limit)
	reviews := make([]*entity.Review, 0, w.end-w.start)
	for _, rec := range records[w.start:w.end] {
		rv := rec.review
		reviews = append(reviews, &rv)
	}
	return reviews, int64(len(records)), nil
}

func (r *reviewRepository) ListByUser(_ context.Context, userID string) ([]*entity.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	records := r.sortedLocked(func(rv entity.Review) bool { return rv.UserID == userID })
	reviews := make([]*entity.Review, 0, len(records))
	for _, rec := range records {
		rv := rec.review
		reviews = append(reviews, &rv)
	}
	return reviews, nil
}

func (r *reviewRepository) sortedLocked(keep func(entity.Review) bool) []reviewRecord {
	var records []reviewRecord
	for _, rec := range r.s.reviews {
		if keep(rec.review) {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return newerFirst(records[i].review.CreatedAt, records[i].seq, records[j].review.CreatedAt, records[j].seq)
	})
	return records
}

func (r *reviewRepository) RatingStats(_ context.Context, gameID string) (entity.RatingStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var ratings []int
	for _, rec := range r.s.reviews {
		if rec.review.GameID == gameID {
			ratings = append(ratings, rec.review.Rating)
		}
	}
	return entity.AggregateRatings(ratings), nil
}
