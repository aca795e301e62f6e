package entity

import "time"

const (
	LibrarySourcePurchase   = "purchase"
	LibrarySourceGift       = "gift"
	LibrarySourceAdminGrant = "admin_grant"
)

type LibraryEntry struct {
	ID         string    `json:"id" firestore:"id" bson:"_id"`
	UserID     string    `json:"userId" firestore:"userId" bson:"userId"`
	GameID     string    `json:"gameId" firestore:"gameId" bson:"gameId"`
	AcquiredAt time.Time `json:"acquiredAt" firestore:"acquiredAt" bson:"acquiredAt"`
	Source     string    `json:"source" firestore:"source" bson:"source"`
}

type LibraryItem struct {
	LibraryID  string       `json:"libraryId"`
	AcquiredAt time.Time    `json:"acquiredAt"`
	Source     string       `json:"source"`
	Game       *GameSummary `json:"game"`
}

type DownloadLink struct {
	DownloadURL string  `json:"downloadUrl"`
	FileSize    float64 `json:"fileSize"`
	FileType    string  `json:"fileType"`
}
