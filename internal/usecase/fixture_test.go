package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"thgamestore/internal/adapter/repository/memory"
	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/service"
	"thgamestore/internal/infrastructure/auth"
)

type fixture struct {
	store    *memory.Store
	events   *mockEvents
	observer *recordingObserver
	cache    *mapCache

	auth     *AuthUseCase
	users    *UserUseCase
	games    *GameUseCase
	orders   *OrderUseCase
	library  *LibraryUseCase
	reviews  *ReviewUseCase
	wishlist *WishlistUseCase
	admin    *AdminUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.New()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	events := &mockEvents{}
	events.On("PublishOrderPaid", mock.Anything, mock.Anything).Return(nil).Maybe()
	observer := &recordingObserver{}
	cache := newMapCache()

	library := NewLibraryUseCase(store.Library(), store.Games())
	ratings := NewRatingAggregator(store.Reviews(), store.Games())

	return &fixture{
		store:    store,
		events:   events,
		observer: observer,
		cache:    cache,
		auth:     NewAuthUseCase(store.Users(), hasher, auth.NewJWTManager("test-secret", time.Hour)),
		users:    NewUserUseCase(store.Users(), hasher),
		games:    NewGameUseCase(store.Games(), cache),
		orders: NewOrderUseCase(store.Games(), store.Orders(), store.Library(), store.Users(), store,
			service.NewSimulatedPaymentService(), events, observer),
		library:  library,
		reviews:  NewReviewUseCase(store.Reviews(), store.Games(), store.Users(), library, ratings),
		wishlist: NewWishlistUseCase(store.Wishlist(), store.Games()),
		admin:    NewAdminUseCase(store.Users(), store.Games(), store.Orders()),
	}
}

func (f *fixture) seedGame(t *testing.T, slug string, price, discount float64) *entity.Game {
	t.Helper()
	g, err := f.games.Create(context.Background(), GameInput{
		Title:           slug,
		Slug:            slug,
		Description:     "about " + slug,
		Price:           price,
		DiscountPercent: discount,
	})
	require.NoError(t, err)
	return g
}

func (f *fixture) seedUser(t *testing.T, email, role string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Username: email, Role: role}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}

func (f *fixture) grant(t *testing.T, userID, gameID string) {
	t.Helper()
	_, err := f.store.Library().GrantIfAbsent(context.Background(), &entity.LibraryEntry{UserID: userID, GameID: gameID})
	require.NoError(t, err)
}

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) PublishOrderPaid(ctx context.Context, event entity.OrderPaidEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendPasswordReset(ctx context.Context, to, username, resetLink string) error {
	args := m.Called(ctx, to, username, resetLink)
	return args.Error(0)
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *recordingObserver) ObserveCheckout(outcome string, _ float64, _ int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

// mapCache stores JSON like the Redis cache does.
type mapCache struct {
	mu          sync.Mutex
	values      map[string][]byte
	invalidated int
}

func newMapCache() *mapCache {
	return &mapCache{values: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = raw
	return nil
}

func (c *mapCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = make(map[string][]byte)
	c.invalidated++
	return nil
}
