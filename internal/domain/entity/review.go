package entity

import (
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is unique per (user, game).
type Review struct {
	ID        string    `json:"id" firestore:"id" bson:"_id"`
	UserID    string    `json:"userId" firestore:"userId" bson:"userId"`
	GameID    string    `json:"gameId" firestore:"gameId" bson:"gameId"`
	Rating    int       `json:"rating" firestore:"rating" bson:"rating"`
	Comment   string    `json:"comment" firestore:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt" bson:"updatedAt"`
}

type ReviewWithUser struct {
	Review
	User *UserSummary `json:"user"`
}

type ReviewWithGame struct {
	Review
	Game *GameSummary `json:"game"`
}

type RatingStats struct {
	Average float64
	Count   int
}

// AggregateRatings is the in-process fallback for stores without an
// aggregation pipeline.
func AggregateRatings(ratings []int) RatingStats {
	if len(ratings) == 0 {
		return RatingStats{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return RatingStats{
		Average: float64(sum) / float64(len(ratings)),
		Count:   len(ratings),
	}
}

func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
