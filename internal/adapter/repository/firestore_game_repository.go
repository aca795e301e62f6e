package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
	"thgamestore/pkg/errors"
)

type firestoreGameRepository struct {
	client *firestore.Client
}

func NewFirestoreGameRepository(client *firestore.Client) repository.GameRepository {
	return &firestoreGameRepository{client: client}
}

func (r *firestoreGameRepository) games() *firestore.CollectionRef {
	return r.client.Collection(colGames)
}

func (r *firestoreGameRepository) slugRef(slug string) *firestore.DocumentRef {
	return r.client.Collection(colGameSlugs).Doc(keyDocID(slug))
}

func (r *firestoreGameRepository) Create(ctx context.Context, game *entity.Game) error {
	if game.ID == "" {
		game.ID = uuid.New().String()
	}
	now := time.Now()
	if game.CreatedAt.IsZero() {
		game.CreatedAt = now
	}
	game.UpdatedAt = now

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(r.slugRef(game.Slug), map[string]interface{}{"gameId": game.ID}); err != nil {
			return err
		}
		return tx.Create(r.games().Doc(game.ID), game)
	})
	return firestoreError("Game", err, slugTaken)
}

func (r *firestoreGameRepository) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	doc, err := r.games().Doc(id).Get(ctx)
	if err != nil {
		return nil, firestoreError("Game", err, "")
	}
	var game entity.Game
	if err := doc.DataTo(&game); err != nil {
		return nil, errors.Internal("Failed to parse game data", err)
	}
	return &game, nil
}

func (r *firestoreGameRepository) GetBySlug(ctx context.Context, slug string) (*entity.Game, error) {
	doc, err := r.slugRef(slug).Get(ctx)
	if err != nil {
		return nil, firestoreError("Game", err, "")
	}
	gameID, _ := doc.Data()["gameId"].(string)
	return r.GetByID(ctx, gameID)
}

func (r *firestoreGameRepository) FindByIDs(ctx context.Context, ids []string) ([]*entity.Game, error) {
	games, err := getAllByID[entity.Game](ctx, r.client, colGames, ids)
	return games, firestoreError("Game", err, "")
}

// List pushes the genre filter to Firestore. Title search and the tag
// filter run in process since Firestore has neither substring matching nor
// a second array-contains per query.
func (r *firestoreGameRepository) List(ctx context.Context, filter repository.GameFilter) ([]*entity.Game, int64, error) {
	q := r.games().Query
	if filter.Genre != "" {
		q = q.Where("genres", "array-contains", filter.Genre)
	}

	all, err := docsTo[entity.Game](q.Documents(ctx))
	if err != nil {
		return nil, 0, firestoreError("Game", err, "")
	}

	search := strings.ToLower(filter.Search)
	matched := all[:0]
	for _, g := range all {
		if search != "" && !strings.Contains(strings.ToLower(g.Title), search) {
			continue
		}
		if filter.Tag != "" && !containsString(g.Tags, filter.Tag) {
			continue
		}
		matched = append(matched, g)
	}
	sortGames(matched, filter.Sort)

	start, end := pageBounds(len(matched), filter.Offset, filter.Limit)
	return matched[start:end], int64(len(matched)), nil
}

// pageBounds clamps an offset/limit pair to a slice of length n.
func pageBounds(n, offset, limit int) (start, end int) {
	start = min(max(offset, 0), n)
	end = n
	if limit > 0 && limit < n-start {
		end = start + limit
	}
	return start, end
}

func sortGames(games []*entity.Game, by entity.GameSort) {
	sort.SliceStable(games, func(i, j int) bool {
		a, b := games[i], games[j]
		switch by {
		case entity.SortTopSell:
			if a.SoldCount != b.SoldCount {
				return a.SoldCount > b.SoldCount
			}
		case entity.SortRating:
			if a.RatingAverage != b.RatingAverage {
				return a.RatingAverage > b.RatingAverage
			}
		case entity.SortPriceAsc:
			if a.FinalPrice != b.FinalPrice {
				return a.FinalPrice < b.FinalPrice
			}
		case entity.SortPriceDesc:
			if a.FinalPrice != b.FinalPrice {
				return a.FinalPrice > b.FinalPrice
			}
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func (r *firestoreGameRepository) Update(ctx context.Context, game *entity.Game) error {
	game.UpdatedAt = time.Now()
	ref := r.games().Doc(game.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}
		var current entity.Game
		if err := doc.DataTo(&current); err != nil {
			return err
		}

		if current.Slug != game.Slug {
			if err := tx.Create(r.slugRef(game.Slug), map[string]interface{}{"gameId": game.ID}); err != nil {
				return err
			}
			if err := tx.Delete(r.slugRef(current.Slug)); err != nil {
				return err
			}
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "title", Value: game.Title},
			{Path: "slug", Value: game.Slug},
			{Path: "description", Value: game.Description},
			{Path: "price", Value: game.Price},
			{Path: "discountPercent", Value: game.DiscountPercent},
			{Path: "finalPrice", Value: game.FinalPrice},
			{Path: "thumbnailUrl", Value: game.ThumbnailURL},
			{Path: "bannerUrl", Value: game.BannerURL},
			{Path: "trailerYoutubeId", Value: game.TrailerYoutubeID},
			{Path: "genres", Value: game.Genres},
			{Path: "tags", Value: game.Tags},
			{Path: "minSpecs", Value: game.MinSpecs},
			{Path: "releaseDate", Value: game.ReleaseDate},
			{Path: "developer", Value: game.Developer},
			{Path: "publisher", Value: game.Publisher},
			{Path: "downloadInfo", Value: game.DownloadInfo},
			{Path: "updatedAt", Value: game.UpdatedAt},
		})
	})
	return firestoreError("Game", err, slugTaken)
}

func (r *firestoreGameRepository) Delete(ctx context.Context, id string) error {
	ref := r.games().Doc(id)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}
		slug, _ := doc.Data()["slug"].(string)
		if err := tx.Delete(r.slugRef(slug)); err != nil {
			return err
		}
		return tx.Delete(ref)
	})
	return firestoreError("Game", err, "")
}

func (r *firestoreGameRepository) IncrementSoldCount(ctx context.Context, id string, quantity int) error {
	_, err := r.games().Doc(id).Update(ctx, []firestore.Update{
		{Path: "soldCount", Value: firestore.Increment(quantity)},
	})
	return firestoreError("Game", err, "")
}

func (r *firestoreGameRepository) SetRating(ctx context.Context, id string, stats entity.RatingStats) error {
	_, err := r.games().Doc(id).Update(ctx, []firestore.Update{
		{Path: "ratingAverage", Value: stats.Average},
		{Path: "ratingCount", Value: stats.Count},
	})
	return firestoreError("Game", err, "")
}

func (r *firestoreGameRepository) DistinctGenres(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "genres", func(g *entity.Game) []string { return g.Genres })
}

func (r *firestoreGameRepository) DistinctTags(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "tags", func(g *entity.Game) []string { return g.Tags })
}

func (r *firestoreGameRepository) distinct(ctx context.Context, field string, values func(*entity.Game) []string) ([]string, error) {
	games, err := docsTo[entity.Game](r.games().Select(field).Documents(ctx))
	if err != nil {
		return nil, firestoreError("Game", err, "")
	}

	set := make(map[string]struct{})
	for _, g := range games {
		for _, v := range values(g) {
			if v != "" {
				set[v] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

func (r *firestoreGameRepository) Count(ctx context.Context) (int64, error) {
	n, err := countQuery(ctx, r.games().Query)
	return n, firestoreError("Game", err, "")
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
