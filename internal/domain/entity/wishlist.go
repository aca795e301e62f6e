package entity

import "time"

type WishlistEntry struct {
	ID        string    `json:"id" firestore:"id" bson:"_id"`
	UserID    string    `json:"userId" firestore:"userId" bson:"userId"`
	GameID    string    `json:"gameId" firestore:"gameId" bson:"gameId"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt" bson:"createdAt"`
}

type WishlistItemWithGame struct {
	WishlistID string       `json:"wishlistId"`
	AddedAt    time.Time    `json:"addedAt"`
	Game       *GameSummary `json:"game"`
}
