package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thgamestore/internal/domain/entity"
	"thgamestore/pkg/errors"
	"thgamestore/pkg/utils"
)

func TestListPagination(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 15; i++ {
		f.seedGame(t, fmt.Sprintf("game-%02d", i), 10, 0)
	}

	page, err := f.games.List(context.Background(), GameQuery{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Games, 5)
	assert.EqualValues(t, 15, page.Total)
	assert.Equal(t, 2, utils.TotalPages(page.Total, page.Limit))

	page, err = f.games.List(context.Background(), GameQuery{})
	require.NoError(t, err)
	assert.Equal(t, DefaultGamePageSize, page.Limit)
	assert.Len(t, page.Games, DefaultGamePageSize)
	assert.Equal(t, "game-14", page.Games[0].Slug)
}

func TestGetBySlugMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.games.GetBySlug(context.Background(), "does-not-exist")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestCreateAndUpdateRecomputeFinalPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g := f.seedGame(t, "alpha", 200000, 25)
	assert.Equal(t, 150000.0, g.FinalPrice)

	discount := 0.0
	updated, err := f.games.Update(ctx, g.ID, GameUpdateInput{DiscountPercent: &discount})
	require.NoError(t, err)
	assert.Equal(t, 200000.0, updated.FinalPrice)

	price := 99.0
	discount = 33
	updated, err = f.games.Update(ctx, g.ID, GameUpdateInput{Price: &price, DiscountPercent: &discount})
	require.NoError(t, err)
	assert.Equal(t, 66.0, updated.FinalPrice)

	stored, err := f.games.GetBySlug(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, 66.0, stored.FinalPrice)
}

func TestCreateValidatesAndRejectsDuplicateSlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedGame(t, "alpha", 10, 0)

	_, err := f.games.Create(ctx, GameInput{Title: "Again", Slug: " ALPHA ", Description: "d", Price: 1})
	assert.True(t, errors.Is(err, errors.CodeConflict))

	_, err = f.games.Create(ctx, GameInput{Title: "No slug", Description: "d", Price: 1})
	assert.True(t, errors.Is(err, errors.CodeValidation))

	_, err = f.games.Create(ctx, GameInput{Title: "Bad", Slug: "bad", Description: "d", Price: 1, DiscountPercent: 120})
	assert.True(t, errors.Is(err, errors.CodeValidation))
}

func TestUpdateMissingGame(t *testing.T) {
	f := newFixture(t)
	title := "x"
	_, err := f.games.Update(context.Background(), "ghost", GameUpdateInput{Title: &title})
	assert.True(t, errors.Is(err, errors.CodeNotFound))
	assert.True(t, errors.Is(f.games.Delete(context.Background(), "ghost"), errors.CodeNotFound))
}

func TestSortSelectors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cheap := f.seedGame(t, "cheap", 10, 0)
	mid := f.seedGame(t, "mid", 50, 0)
	f.seedGame(t, "pricey", 90, 0)
	require.NoError(t, f.store.Games().IncrementSoldCount(ctx, mid.ID, 7))
	require.NoError(t, f.store.Games().SetRating(ctx, cheap.ID, entity.RatingStats{Average: 4.8, Count: 5}))

	slugs := func(sort string) []string {
		page, err := f.games.List(ctx, GameQuery{Sort: sort})
		require.NoError(t, err)
		var out []string
		for _, g := range page.Games {
			out = append(out, g.Slug)
		}
		return out
	}

	assert.Equal(t, []string{"pricey", "mid", "cheap"}, slugs("newest"))
	assert.Equal(t, []string{"mid", "pricey", "cheap"}, slugs("top-sell"))
	assert.Equal(t, "cheap", slugs("rating")[0])
	assert.Equal(t, []string{"cheap", "mid", "pricey"}, slugs("price-asc"))
	assert.Equal(t, []string{"pricey", "mid", "cheap"}, slugs("price-desc"))
	assert.Equal(t, slugs("newest"), slugs("bogus"))
}

func TestFilterOptionsSortedAndCached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.games.Create(ctx, GameInput{Title: "A", Slug: "a", Description: "d", Genres: []string{"rpg", "action"}, Tags: []string{"coop"}})
	require.NoError(t, err)
	_, err = f.games.Create(ctx, GameInput{Title: "B", Slug: "b", Description: "d", Genres: []string{"action", "adventure"}, Tags: []string{"indie", "coop"}})
	require.NoError(t, err)

	opts, err := f.games.FilterOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"action", "adventure", "rpg"}, opts.Genres)
	assert.Equal(t, []string{"coop", "indie"}, opts.Tags)

	// Served from cache until the next catalog write.
	require.NoError(t, f.store.Games().Create(ctx, &entity.Game{Title: "C", Slug: "c", Genres: []string{"horror"}}))
	opts, err = f.games.FilterOptions(ctx)
	require.NoError(t, err)
	assert.NotContains(t, opts.Genres, "horror")

	invalidations := f.cache.invalidated
	_, err = f.games.Create(ctx, GameInput{Title: "D", Slug: "d", Description: "d", Genres: []string{"sim"}})
	require.NoError(t, err)
	assert.Equal(t, invalidations+1, f.cache.invalidated)

	opts, err = f.games.FilterOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"action", "adventure", "horror", "rpg", "sim"}, opts.Genres)
}

func TestTopListsAndAdminList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		g := f.seedGame(t, fmt.Sprintf("g-%02d", i), 10, 0)
		require.NoError(t, f.store.Games().IncrementSoldCount(ctx, g.ID, i))
	}

	top, err := f.games.TopSelling(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, top, DefaultTopListSize)
	assert.Equal(t, "g-11", top[0].Slug)

	latest, err := f.games.Latest(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, latest, 3)
	assert.Equal(t, "g-11", latest[0].Slug)

	page, err := f.games.AdminList(ctx, "G-0", 1, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 10, page.Total)
	assert.Equal(t, DefaultAdminPageSize, page.Limit)
}
