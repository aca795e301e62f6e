package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thgamestore/internal/domain/entity"
	"thgamestore/pkg/errors"
)

func TestDownloadLinkGating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seedUser(t, "u@example.com", entity.RoleUser)

	withDownload, err := f.games.Create(ctx, GameInput{
		Title: "A", Slug: "a", Description: "d", Price: 10,
		DownloadInfo: entity.DownloadInfo{DownloadURL: "https://cdn.example.com/a.zip", FileSize: 512, FileType: "zip"},
	})
	require.NoError(t, err)
	noDownload := f.seedGame(t, "b", 10, 0)

	_, err = f.library.DownloadLink(ctx, u.ID, withDownload.ID)
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	f.grant(t, u.ID, withDownload.ID)
	f.grant(t, u.ID, noDownload.ID)

	link, err := f.library.DownloadLink(ctx, u.ID, withDownload.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.zip", link.DownloadURL)
	assert.Equal(t, 512.0, link.FileSize)
	assert.Equal(t, "zip", link.FileType)

	_, err = f.library.DownloadLink(ctx, u.ID, noDownload.ID)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestLibraryListNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seedUser(t, "u@example.com", entity.RoleUser)
	old := f.seedGame(t, "old", 10, 0)
	recent := f.seedGame(t, "recent", 10, 0)
	gone := f.seedGame(t, "gone", 10, 0)

	now := time.Now()
	for _, e := range []entity.LibraryEntry{
		{UserID: u.ID, GameID: old.ID, AcquiredAt: now.Add(-48 * time.Hour)},
		{UserID: u.ID, GameID: recent.ID, AcquiredAt: now},
		{UserID: u.ID, GameID: gone.ID, AcquiredAt: now.Add(-time.Hour)},
	} {
		entry := e
		_, err := f.store.Library().GrantIfAbsent(ctx, &entry)
		require.NoError(t, err)
	}
	require.NoError(t, f.games.Delete(ctx, gone.ID))

	items, err := f.library.List(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "recent", items[0].Game.Slug)
	assert.Nil(t, items[1].Game)
	assert.Equal(t, "old", items[2].Game.Slug)
	assert.NotNil(t, items[0].Game.DownloadInfo)
	assert.Equal(t, entity.LibrarySourcePurchase, items[0].Source)
}

func TestWishlistIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seedUser(t, "u@example.com", entity.RoleUser)
	g := f.seedGame(t, "alpha", 100, 10)

	require.NoError(t, f.wishlist.Add(ctx, u.ID, g.ID))
	require.NoError(t, f.wishlist.Add(ctx, u.ID, g.ID))

	items, err := f.wishlist.List(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 90.0, items[0].Game.FinalPrice)

	assert.True(t, errors.Is(f.wishlist.Add(ctx, u.ID, "ghost"), errors.CodeNotFound))

	require.NoError(t, f.wishlist.Remove(ctx, u.ID, g.ID))
	require.NoError(t, f.wishlist.Remove(ctx, u.ID, g.ID))
	items, err = f.wishlist.List(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
