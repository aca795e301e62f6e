package entity

import (
	"math"
	"time"
)

type MinSpecs struct {
	OS      string `json:"os,omitempty" firestore:"os" bson:"os,omitempty"`
	CPU     string `json:"cpu,omitempty" firestore:"cpu" bson:"cpu,omitempty"`
	RAM     string `json:"ram,omitempty" firestore:"ram" bson:"ram,omitempty"`
	GPU     string `json:"gpu,omitempty" firestore:"gpu" bson:"gpu,omitempty"`
	Storage string `json:"storage,omitempty" firestore:"storage" bson:"storage,omitempty"`
}

// DownloadInfo describes the installer. FileSize is in megabytes.
type DownloadInfo struct {
	DownloadURL string  `json:"downloadUrl" firestore:"downloadUrl" bson:"downloadUrl"`
	FileSize    float64 `json:"fileSize" firestore:"fileSize" bson:"fileSize"`
	FileType    string  `json:"fileType" firestore:"fileType" bson:"fileType"`
}

type Game struct {
	ID               string       `json:"id" firestore:"id" bson:"_id"`
	Title            string       `json:"title" firestore:"title" bson:"title"`
	Slug             string       `json:"slug" firestore:"slug" bson:"slug"`
	Description      string       `json:"description" firestore:"description" bson:"description"`
	Price            float64      `json:"price" firestore:"price" bson:"price"`
	DiscountPercent  float64      `json:"discountPercent" firestore:"discountPercent" bson:"discountPercent"`
	FinalPrice       float64      `json:"finalPrice" firestore:"finalPrice" bson:"finalPrice"`
	ThumbnailURL     string       `json:"thumbnailUrl" firestore:"thumbnailUrl" bson:"thumbnailUrl"`
	BannerURL        string       `json:"bannerUrl" firestore:"bannerUrl" bson:"bannerUrl"`
	TrailerYoutubeID string       `json:"trailerYoutubeId" firestore:"trailerYoutubeId" bson:"trailerYoutubeId"`
	Genres           []string     `json:"genres" firestore:"genres" bson:"genres"`
	Tags             []string     `json:"tags" firestore:"tags" bson:"tags"`
	MinSpecs         MinSpecs     `json:"minSpecs" firestore:"minSpecs" bson:"minSpecs"`
	ReleaseDate      *time.Time   `json:"releaseDate,omitempty" firestore:"releaseDate,omitempty" bson:"releaseDate,omitempty"`
	Developer        string       `json:"developer" firestore:"developer" bson:"developer"`
	Publisher        string       `json:"publisher" firestore:"publisher" bson:"publisher"`
	RatingAverage    float64      `json:"ratingAverage" firestore:"ratingAverage" bson:"ratingAverage"`
	RatingCount      int          `json:"ratingCount" firestore:"ratingCount" bson:"ratingCount"`
	SoldCount        int          `json:"soldCount" firestore:"soldCount" bson:"soldCount"`
	DownloadInfo     DownloadInfo `json:"downloadInfo" firestore:"downloadInfo" bson:"downloadInfo"`
	CreatedAt        time.Time    `json:"createdAt" firestore:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt" firestore:"updatedAt" bson:"updatedAt"`
}

// CalculateFinalPrice applies a percentage discount and rounds to the
// nearest whole unit. Without a discount the price is returned untouched.
func CalculateFinalPrice(price, discountPercent float64) float64 {
	if discountPercent == 0 {
		return price
	}
	return math.Round(price * (1 - discountPercent/100))
}

// ApplyPricing must run on every write that touches Price or
// DiscountPercent.
func (g *Game) ApplyPricing() {
	g.FinalPrice = CalculateFinalPrice(g.Price, g.DiscountPercent)
}

// UnitPrice is what a buyer pays right now. Records that never had a
// final price computed fall back to the list price.
func (g *Game) UnitPrice() float64 {
	if g.FinalPrice == 0 && g.DiscountPercent == 0 {
		return g.Price
	}
	return g.FinalPrice
}

func (g *Game) HasDownload() bool {
	return g.DownloadInfo.DownloadURL != ""
}

func (g *Game) Summary() *GameSummary {
	return &GameSummary{
		ID:           g.ID,
		Title:        g.Title,
		Slug:         g.Slug,
		ThumbnailURL: g.ThumbnailURL,
		BannerURL:    g.BannerURL,
		Price:        g.Price,
		FinalPrice:   g.FinalPrice,
	}
}

// GameSummary is the slice of a game embedded in library, wishlist, order
// and review listings.
type GameSummary struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Slug         string        `json:"slug"`
	ThumbnailURL string        `json:"thumbnailUrl"`
	BannerURL    string        `json:"bannerUrl,omitempty"`
	Price        float64       `json:"price"`
	FinalPrice   float64       `json:"finalPrice"`
	DownloadInfo *DownloadInfo `json:"downloadInfo,omitempty"`
}

type GameSort string

const (
	SortNewest    GameSort = "newest"
	SortTopSell   GameSort = "top-sell"
	SortRating    GameSort = "rating"
	SortPriceAsc  GameSort = "price-asc"
	SortPriceDesc GameSort = "price-desc"
)

// ParseGameSort maps unknown selectors to SortNewest.
func ParseGameSort(s string) GameSort {
	switch GameSort(s) {
	case SortTopSell, SortRating, SortPriceAsc, SortPriceDesc:
		return GameSort(s)
	}
	return SortNewest
}

type FilterOptions struct {
	Genres []string `json:"genres"`
	Tags   []string `json:"tags"`
}
