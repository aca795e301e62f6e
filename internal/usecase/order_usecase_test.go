package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
	"thgamestore/internal/domain/service"
	"thgamestore/pkg/errors"
)

func TestCheckoutTotalsAndSideEffects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	buyer := f.seedUser(t, "buyer@example.com", entity.RoleUser)
	a := f.seedGame(t, "alpha", 100, 0)
	b := f.seedGame(t, "beta", 50, 0)

	result, err := f.orders.Checkout(ctx, buyer.ID, CheckoutInput{Items: []CheckoutItem{
		{GameID: a.ID, Quantity: 2},
		{GameID: b.ID},
	}})
	require.NoError(t, err)
	assert.Equal(t, CheckoutMessage, result.Message)
	assert.Equal(t, 250.0, result.TotalAmount)

	order, err := f.store.Orders().GetByID(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, order.Status)
	assert.Equal(t, 250.0, order.TotalAmount)
	assert.Equal(t, entity.DefaultPaymentMethod, order.PaymentMethod)

	items, err := f.store.Orders().ItemsByOrderIDs(ctx, []string{order.ID})
	require.NoError(t, err)
	require.Len(t, items, 2)

	storedA, _ := f.store.Games().GetByID(ctx, a.ID)
	storedB, _ := f.store.Games().GetByID(ctx, b.ID)
	assert.Equal(t, 2, storedA.SoldCount)
	assert.Equal(t, 1, storedB.SoldCount)

	for _, id := range []string{a.ID, b.ID} {
		owned, err := f.library.Owns(ctx, buyer.ID, id)
		require.NoError(t, err)
		assert.True(t, owned)
	}

	f.events.AssertCalled(t, "PublishOrderPaid", mock.Anything, mock.MatchedBy(func(e entity.OrderPaidEvent) bool {
		return e.OrderID == order.ID && e.TotalAmount == 250 && len(e.Items) == 2
	}))
	assert.Equal(t, []string{CheckoutOutcomeSuccess}, f.observer.outcomes)
}

func TestCheckoutUsesDiscountedPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	buyer := f.seedUser(t, "buyer@example.com", entity.RoleUser)
	g := f.seedGame(t, "sale", 200000, 25)

	result, err := f.orders.Checkout(ctx, buyer.ID, CheckoutInput{
		Items:         []CheckoutItem{{GameID: g.ID, Quantity: 1}},
		PaymentMethod: "wallet",
	})
	require.NoError(t, err)
	assert.Equal(t, 150000.0, result.TotalAmount)

	order, err := f.store.Orders().GetByID(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "wallet", order.PaymentMethod)
}

func TestCheckoutDoesNotTouchOwnedGames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	buyer := f.seedUser(t, "buyer@example.com", entity.RoleUser)
	g := f.seedGame(t, "owned", 100, 0)

	acquired := time.Now().Add(-72 * time.Hour).Truncate(time.Second)
	_, err := f.store.Library().GrantIfAbsent(ctx, &entity.LibraryEntry{
		UserID: buyer.ID, GameID: g.ID, AcquiredAt: acquired, Source: entity.LibrarySourceGift,
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = f.orders.Checkout(ctx, buyer.ID, CheckoutInput{Items: []CheckoutItem{{GameID: g.ID}}})
		require.NoError(t, err)
	}

	entries, err := f.store.Library().ListByUser(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, acquired.Equal(entries[0].AcquiredAt))
	assert.Equal(t, entity.LibrarySourceGift, entries[0].Source)

	stored, _ := f.store.Games().GetByID(ctx, g.ID)
	assert.Equal(t, 2, stored.SoldCount)
}

func TestCheckoutRejectsBadCartsBeforeWriting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	buyer := f.seedUser(t, "buyer@example.com", entity.RoleUser)
	g := f.seedGame(t, "alpha", 100, 0)

	cases := []struct {
		name  string
		items []CheckoutItem
		code  string
	}{
		{"empty", nil, errors.CodeValidation},
		{"blank id", []CheckoutItem{{GameID: ""}}, errors.CodeValidation},
		{"negative quantity", []CheckoutItem{{GameID: g.ID, Quantity: -1}}, errors.CodeValidation},
		{"duplicate game", []CheckoutItem{{GameID: g.ID}, {GameID: g.ID}}, errors.CodeValidation},
		{"missing game", []CheckoutItem{{GameID: g.ID}, {GameID: "ghost"}}, errors.CodeNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.orders.Checkout(ctx, buyer.ID, CheckoutInput{Items: tc.items})
			assert.True(t, errors.Is(err, tc.code), "got %v", err)
		})
	}

	orders, err := f.store.Orders().ListByUser(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	owned, err := f.library.Owns(ctx, buyer.ID, g.ID)
	require.NoError(t, err)
	assert.False(t, owned)

	stored, _ := f.store.Games().GetByID(ctx, g.ID)
	assert.Zero(t, stored.SoldCount)
}

func TestOrderItemsKeepPurchasePrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	buyer := f.seedUser(t, "buyer@example.com", entity.RoleUser)
	g := f.seedGame(t, "alpha", 100, 0)

	_, err := f.orders.Checkout(ctx, buyer.ID, CheckoutInput{Items: []CheckoutItem{{GameID: g.ID}}})
	require.NoError(t, err)

	price := 999.0
	_, err = f.games.Update(ctx, g.ID, GameUpdateInput{Price: &price})
	require.NoError(t, err)

	orders, err := f.orders.ListMyOrders(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, 100.0, orders[0].Items[0].UnitPrice)
	assert.Equal(t, 999.0, orders[0].Items[0].Game.Price)
}

func TestListMyOrdersNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	buyer := f.seedUser(t, "buyer@example.com", entity.RoleUser)
	other := f.seedUser(t, "other@example.com", entity.RoleUser)
	a := f.seedGame(t, "alpha", 10, 0)
	b := f.seedGame(t, "beta", 20, 0)

	first, err := f.orders.Checkout(ctx, buyer.ID, CheckoutInput{Items: []CheckoutItem{{GameID: a.ID}}})
	require.NoError(t, err)
	second, err := f.orders.Checkout(ctx, buyer.ID, CheckoutInput{Items: []CheckoutItem{{GameID: b.ID}}})
	require.NoError(t, err)
	_, err = f.orders.Checkout(ctx, other.ID, CheckoutInput{Items: []CheckoutItem{{GameID: a.ID}}})
	require.NoError(t, err)

	orders, err := f.orders.ListMyOrders(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.OrderID, orders[0].ID)
	assert.Equal(t, first.OrderID, orders[1].ID)
	assert.Equal(t, "beta", orders[0].Items[0].Game.Slug)
	assert.Nil(t, orders[0].User)
}

func TestAdminOrdersAndStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	buyer := f.seedUser(t, "buyer@example.com", entity.RoleUser)
	g := f.seedGame(t, "alpha", 10, 0)

	res, err := f.orders.Checkout(ctx, buyer.ID, CheckoutInput{Items: []CheckoutItem{{GameID: g.ID}}})
	require.NoError(t, err)

	page, err := f.orders.AdminList(ctx, 1, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, DefaultAdminPageSize, page.Limit)
	require.NotNil(t, page.Orders[0].User)
	assert.Equal(t, "buyer@example.com", page.Orders[0].User.Email)

	_, err = f.orders.UpdateStatus(ctx, res.OrderID, "shipped")
	assert.True(t, errors.Is(err, errors.CodeValidation))

	_, err = f.orders.UpdateStatus(ctx, "missing", entity.OrderStatusCancelled)
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	updated, err := f.orders.UpdateStatus(ctx, res.OrderID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, updated.Status)
}

type unavailableLibrary struct {
	repository.LibraryRepository
}

func (unavailableLibrary) GrantIfAbsent(context.Context, *entity.LibraryEntry) (bool, error) {
	return false, fmt.Errorf("library store unavailable")
}

// Without a store transaction, writes made before the failing grant stay in
// place and the caller only sees an internal error.
func TestCheckoutGrantFailureLeavesEarlierWrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	buyer := f.seedUser(t, "buyer@example.com", entity.RoleUser)
	game := f.seedGame(t, "half-done", 30, 0)

	orders := NewOrderUseCase(f.store.Games(), f.store.Orders(), unavailableLibrary{f.store.Library()}, f.store.Users(),
		f.store, service.NewSimulatedPaymentService(), f.events, f.observer)

	_, err := orders.Checkout(ctx, buyer.ID, CheckoutInput{Items: []CheckoutItem{{GameID: game.ID, Quantity: 2}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeInternal))

	stored, total, err := f.store.Orders().List(ctx, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, stored, 1)
	assert.Equal(t, buyer.ID, stored[0].UserID)
	assert.Equal(t, 60.0, stored[0].TotalAmount)

	items, err := f.store.Orders().ItemsByOrderIDs(ctx, []string{stored[0].ID})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	updated, err := f.store.Games().GetByID(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.SoldCount)

	owned, err := f.library.Owns(ctx, buyer.ID, game.ID)
	require.NoError(t, err)
	assert.False(t, owned)

	assert.Equal(t, []string{CheckoutOutcomeFailed}, f.observer.outcomes)
	f.events.AssertNotCalled(t, "PublishOrderPaid", mock.Anything, mock.Anything)
}
