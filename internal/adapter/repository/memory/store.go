package memory

import (
	"context"
	"sync"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
)

// Store keeps every collection in process memory. It is safe for
// concurrent use and backs tests and DB_DRIVER=memory.
type Store struct {
	mu  sync.RWMutex
	seq int64

	games     map[string]gameRecord
	gameSlugs map[string]string

	users      map[string]userRecord
	userEmails map[string]string

	orders     map[string]orderRecord
	orderItems []entity.OrderItem

	library map[string]libraryRecord

	reviews     map[string]reviewRecord
	reviewPairs map[string]string

	wishlist map[string]wishlistRecord
}

var _ repository.Transactor = (*Store)(nil)
var _ repository.Pinger = (*Store)(nil)

func New() *Store {
	return &Store{
		games:       make(map[string]gameRecord),
		gameSlugs:   make(map[string]string),
		users:       make(map[string]userRecord),
		userEmails:  make(map[string]string),
		orders:      make(map[string]orderRecord),
		library:     make(map[string]libraryRecord),
		reviews:     make(map[string]reviewRecord),
		reviewPairs: make(map[string]string),
		wishlist:    make(map[string]wishlistRecord),
	}
}

// nextSeqLocked orders records created within the same clock tick.
func (s *Store) nextSeqLocked() int64 {
	s.seq++
	return s.seq
}

// WithinTransaction runs fn directly. Each repository call is atomic under
// the store lock, which is as far as the memory store goes.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) Games() repository.GameRepository {
	return &gameRepository{s: s}
}

func (s *Store) Users() repository.UserRepository {
	return &userRepository{s: s}
}

func (s *Store) Orders() repository.OrderRepository {
	return &orderRepository{s: s}
}

func (s *Store) Library() repository.LibraryRepository {
	return &libraryRepository{s: s}
}

func (s *Store) Reviews() repository.ReviewRepository {
	return &reviewRepository{s: s}
}

func (s *Store) Wishlist() repository.WishlistRepository {
	return &wishlistRepository{s: s}
}

func pairKey(userID, gameID string) string {
	return userID + "_" + gameID
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
