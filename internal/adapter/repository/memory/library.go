package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"thgamestore/internal/domain/entity"
)

type libraryRecord struct {
	entry entity.LibraryEntry
	seq   int64
}

type libraryRepository struct {
	s *Store
}

func (r *libraryRepository) GrantIfAbsent(_ context.Context, entry *entity.LibraryEntry) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey(entry.UserID, entry.GameID)
	if _, exists := r.s.library[key]; exists {
		return false, nil
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.AcquiredAt.IsZero() {
		entry.AcquiredAt = time.Now()
	}
	if entry.Source == "" {
		entry.Source = entity.LibrarySourcePurchase
	}
	r.s.library[key] = libraryRecord{entry: *entry, seq: r.s.nextSeqLocked()}
	return true, nil
}

func (r *libraryRepository) Exists(_ context.Context, userID, gameID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.library[pairKey(userID, gameID)]
	return ok, nil
}

func (r *libraryRepository) ListByUser(_ context.Context, userID string) ([]*entity.LibraryEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var records []libraryRecord
	for _, rec := range r.s.library {
		if rec.entry.UserID == userID {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return newerFirst(records[i].entry.AcquiredAt, records[i].seq, records[j].entry.AcquiredAt, records[j].seq)
	})

	entries := make([]*entity.LibraryEntry, 0, len(records))
	for _, rec := range records {
		e := rec.entry
		entries = append(entries, &e)
	}
	return entries, nil
}
