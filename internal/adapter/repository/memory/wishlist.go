package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"thgamestore/internal/domain/entity"
)

type wishlistRecord struct {
	entry entity.WishlistEntry
	seq   int64
}

type wishlistRepository struct {
	s *Store
}

func (r *wishlistRepository) AddIfAbsent(_ context.Context, entry *entity.WishlistEntry) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey(entry.UserID, entry.GameID)
	if _, exists := r.s.wishlist[key]; exists {
		return false, nil
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now()
	r.s.wishlist[key] = wishlistRecord{entry: *entry, seq: r.s.nextSeqLocked()}
	return true, nil
}

func (r *wishlistRepository) Remove(_ context.Context, userID, gameID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.wishlist, pairKey(userID, gameID))
	return nil
}

func (r *wishlistRepository) ListByUser(_ context.Context, userID string) ([]*entity.WishlistEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var records []wishlistRecord
	for _, rec := range r.s.wishlist {
		if rec.entry.UserID == userID {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return newerFirst(records[i].entry.CreatedAt, records[i].seq, records[j].entry.CreatedAt, records[j].seq)
	})

	entries := make([]*entity.WishlistEntry, 0, len(records))
	for _, rec := range records {
		e := rec.entry
		entries = append(entries, &e)
	}
	return entries, nil
}
