package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
	"thgamestore/pkg/errors"
)

func TestGameSlugIsUnique(t *testing.T) {
	ctx := context.Background()
	games := New().Games()

	require.NoError(t, games.Create(ctx, &entity.Game{Title: "Hollow", Slug: "hollow"}))
	err := games.Create(ctx, &entity.Game{Title: "Hollow 2", Slug: "hollow"})
	assert.True(t, errors.Is(err, errors.CodeConflict))
}

func TestGameListFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	games := New().Games()

	seed := []entity.Game{
		{Title: "Star Dew", Slug: "star-dew", FinalPrice: 50, SoldCount: 5, Genres: []string{"rpg"}},
		{Title: "Dead Stars", Slug: "dead-stars", FinalPrice: 150, SoldCount: 9, Genres: []string{"action"}, Tags: []string{"coop"}},
		{Title: "Farmland", Slug: "farmland", FinalPrice: 10, SoldCount: 1, Genres: []string{"rpg", "sim"}},
	}
	for i := range seed {
		require.NoError(t, games.Create(ctx, &seed[i]))
	}

	found, total, err := games.List(ctx, repository.GameFilter{Search: "STAR", Sort: entity.SortPriceAsc})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "star-dew", found[0].Slug)
	assert.Equal(t, "dead-stars", found[1].Slug)

	found, _, err = games.List(ctx, repository.GameFilter{Genre: "rpg", Sort: entity.SortTopSell})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "star-dew", found[0].Slug)

	found, _, err = games.List(ctx, repository.GameFilter{Tag: "coop"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, _, err = games.List(ctx, repository.GameFilter{})
	require.NoError(t, err)
	assert.Equal(t, "farmland", found[0].Slug, "newest first by default")
}

func TestGameUpdateKeepsCounters(t *testing.T) {
	ctx := context.Background()
	games := New().Games()

	g := &entity.Game{Title: "A", Slug: "a", Price: 10}
	require.NoError(t, games.Create(ctx, g))
	require.NoError(t, games.IncrementSoldCount(ctx, g.ID, 3))
	require.NoError(t, games.SetRating(ctx, g.ID, entity.RatingStats{Average: 4, Count: 2}))

	g.Title = "A renamed"
	g.SoldCount = 0
	require.NoError(t, games.Update(ctx, g))

	stored, err := games.GetBySlug(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "A renamed", stored.Title)
	assert.Equal(t, 3, stored.SoldCount)
	assert.Equal(t, 2, stored.RatingCount)
}

func TestLibraryGrantIfAbsentConcurrent(t *testing.T) {
	ctx := context.Background()
	library := New().Library()

	var wg sync.WaitGroup
	created := make(chan bool, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := library.GrantIfAbsent(ctx, &entity.LibraryEntry{UserID: "u1", GameID: "g1"})
			assert.NoError(t, err)
			created <- ok
		}()
	}
	wg.Wait()
	close(created)

	n := 0
	for ok := range created {
		if ok {
			n++
		}
	}
	assert.Equal(t, 1, n)

	entries, err := library.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReviewPairIsUnique(t *testing.T) {
	ctx := context.Background()
	reviews := New().Reviews()

	require.NoError(t, reviews.Create(ctx, &entity.Review{UserID: "u1", GameID: "g1", Rating: 4}))
	err := reviews.Create(ctx, &entity.Review{UserID: "u1", GameID: "g1", Rating: 2})
	assert.True(t, errors.Is(err, errors.CodeConflict))

	stats, err := reviews.RatingStats(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, entity.RatingStats{Average: 4, Count: 1}, stats)
}

func TestResetTokenLookupAndPurge(t *testing.T) {
	ctx := context.Background()
	users := New().Users()
	now := time.Now()

	expired := now.Add(-time.Minute)
	valid := now.Add(10 * time.Minute)
	require.NoError(t, users.Create(ctx, &entity.User{Email: "old@x.io", ResetTokenHash: "h1", ResetTokenExpiry: &expired}))
	require.NoError(t, users.Create(ctx, &entity.User{Email: "new@x.io", ResetTokenHash: "h2", ResetTokenExpiry: &valid}))

	_, err := users.FindByResetToken(ctx, "old@x.io", "h1", now)
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	u, err := users.FindByResetToken(ctx, "new@x.io", "h2", now)
	require.NoError(t, err)
	assert.Equal(t, "new@x.io", u.Email)

	cleared, err := users.ClearExpiredResetTokens(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, cleared)
}

func TestOrderListPaginates(t *testing.T) {
	ctx := context.Background()
	orders := New().Orders()

	for i := 0; i < 5; i++ {
		require.NoError(t, orders.Create(ctx, &entity.Order{UserID: fmt.Sprintf("u%d", i%2), Status: entity.OrderStatusPaid, TotalAmount: 10}))
	}

	page, total, err := orders.List(ctx, 2, 4)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page, 1)

	count, revenue, err := orders.PaidSummary(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)
	assert.Equal(t, 50.0, revenue)
}
