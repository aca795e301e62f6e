package repository

import (
	"context"
	stderrors "errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"thgamestore/internal/domain/entity"
	"thgamestore/pkg/errors"
)

func TestGameSortTieBreaksNewestFirst(t *testing.T) {
	assert.Equal(t, bson.D{
		{Key: "soldCount", Value: -1},
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	}, gameSort(entity.SortTopSell))

	assert.Equal(t, "finalPrice", gameSort(entity.SortPriceAsc)[0].Key)
	assert.Equal(t, 1, gameSort(entity.SortPriceAsc)[0].Value)
	assert.Equal(t, newestFirst(), gameSort(entity.SortNewest))
}

func TestMongoError(t *testing.T) {
	assert.NoError(t, mongoError("Game", nil, ""))
	assert.True(t, errors.Is(mongoError("Game", mongo.ErrNoDocuments, ""), errors.CodeNotFound))

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	err := mongoError("Game", dup, slugTaken)
	assert.True(t, errors.Is(err, errors.CodeConflict))
	assert.Equal(t, "Slug already exists", err.(*errors.AppError).Message)

	assert.True(t, errors.Is(mongoError("Game", dup, ""), errors.CodeInternal))
}

func TestFirestoreError(t *testing.T) {
	assert.True(t, errors.Is(firestoreError("Game", status.Error(codes.NotFound, "missing"), ""), errors.CodeNotFound))
	assert.True(t, errors.Is(firestoreError("Game", iterator.Done, ""), errors.CodeNotFound))
	assert.True(t, errors.Is(firestoreError("User", status.Error(codes.AlreadyExists, "dup"), emailTaken), errors.CodeConflict))
	assert.True(t, errors.Is(firestoreError("User", stderrors.New("boom"), ""), errors.CodeInternal))

	forbidden := errors.Forbidden("nope", nil)
	assert.Same(t, forbidden, firestoreError("Review", forbidden, ""))
}

func TestDocIDs(t *testing.T) {
	assert.Equal(t, "u1_g1", pairDocID("u1", "g1"))
	assert.Equal(t, "a%2Fb", keyDocID("a/b"))
	assert.Equal(t, "player@example.com", keyDocID("player@example.com"))
}

func TestSortGames(t *testing.T) {
	now := time.Now()
	games := []*entity.Game{
		{Slug: "old-cheap", FinalPrice: 5, SoldCount: 3, CreatedAt: now.Add(-2 * time.Hour)},
		{Slug: "new-pricey", FinalPrice: 50, SoldCount: 3, CreatedAt: now},
		{Slug: "mid", FinalPrice: 20, SoldCount: 9, CreatedAt: now.Add(-time.Hour)},
	}
	slugs := func() []string {
		out := make([]string, len(games))
		for i, g := range games {
			out[i] = g.Slug
		}
		return out
	}

	sortGames(games, entity.SortTopSell)
	assert.Equal(t, []string{"mid", "new-pricey", "old-cheap"}, slugs())

	sortGames(games, entity.SortPriceAsc)
	assert.Equal(t, []string{"old-cheap", "mid", "new-pricey"}, slugs())

	sortGames(games, entity.SortNewest)
	assert.Equal(t, []string{"new-pricey", "mid", "old-cheap"}, slugs())
}

func TestPageBounds(t *testing.T) {
	cases := []struct {
		n, offset, limit int
		start, end       int
	}{
		{10, 0, 4, 0, 4},
		{10, 8, 4, 8, 10},
		{10, 20, 4, 10, 10},
		{10, 3, 0, 3, 10},
		{10, -16, 100, 0, 10},
		{10, math.MinInt, 5, 0, 5},
		{10, 2, math.MaxInt, 2, 10},
		{0, 0, 12, 0, 0},
	}
	for _, tc := range cases {
		start, end := pageBounds(tc.n, tc.offset, tc.limit)
		assert.Equal(t, tc.start, start, "%+v", tc)
		assert.Equal(t, tc.end, end, "%+v", tc)
	}
}

func TestCountAndFindRunsBothReads(t *testing.T) {
	countStarted := make(chan struct{})
	findStarted := make(chan struct{})

	// Each side waits for the other, so a sequential run would deadlock.
	page, total, err := countAndFind(context.Background(),
		func(ctx context.Context) (int64, error) {
			close(countStarted)
			select {
			case <-findStarted:
				return 42, nil
			case <-time.After(2 * time.Second):
				return 0, stderrors.New("find never started")
			}
		},
		func(ctx context.Context) ([]*entity.Game, error) {
			close(findStarted)
			select {
			case <-countStarted:
				return []*entity.Game{{Slug: "a"}, {Slug: "b"}}, nil
			case <-time.After(2 * time.Second):
				return nil, stderrors.New("count never started")
			}
		},
	)
	assert.NoError(t, err)
	assert.EqualValues(t, 42, total)
	assert.Len(t, page, 2)
}

func TestCountAndFindCancelsOnFailure(t *testing.T) {
	boom := stderrors.New("count failed")

	page, total, err := countAndFind(context.Background(),
		func(context.Context) (int64, error) { return 0, boom },
		func(ctx context.Context) ([]*entity.Review, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, total)
	assert.Nil(t, page)
}
