package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"thgamestore/internal/domain/entity"
	"thgamestore/pkg/errors"
)

type userRecord struct {
	user entity.User
	seq  int64
}

type userRepository struct {
	s *Store
}

func cloneUser(u entity.User) *entity.User {
	if u.ResetTokenExpiry != nil {
		t := *u.ResetTokenExpiry
		u.ResetTokenExpiry = &t
	}
	return &u
}

func (r *userRepository) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.userEmails[user.Email]; taken {
		return errors.Conflict("Email already used")
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.s.users[user.ID] = userRecord{user: *cloneUser(*user), seq: r.s.nextSeqLocked()}
	r.s.userEmails[user.Email] = user.ID
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return cloneUser(rec.user), nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.userEmails[email]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return cloneUser(r.s.users[id].user), nil
}

func (r *userRepository) FindByIDs(_ context.Context, ids []string) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*entity.User, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if rec, ok := r.s.users[id]; ok {
			users = append(users, cloneUser(rec.user))
		}
	}
	return users, nil
}

func (r *userRepository) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.users[user.ID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	if owner, taken := r.s.userEmails[user.Email]; taken && owner != user.ID {
		return errors.Conflict("Email already used")
	}

	user.CreatedAt = rec.user.CreatedAt
	user.UpdatedAt = time.Now()

	delete(r.s.userEmails, rec.user.Email)
	r.s.userEmails[user.Email] = user.ID
	r.s.users[user.ID] = userRecord{user: *cloneUser(*user), seq: rec.seq}
	return nil
}

func (r *userRepository) List(_ context.Context, limit, offset int) ([]*entity.User, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	records := make([]userRecord, 0, len(r.s.users))
	for _, rec := range r.s.users {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return newerFirst(records[i].user.CreatedAt, records[i].seq, records[j].user.CreatedAt, records[j].seq)
	})

	w := paginate(len(records), offset, limit)
	users := make([]*entity.User, 0, w.end-w.start)
	for _, rec := range records[w.start:w.end] {
		users = append(users, cloneUser(rec.user))
	}
	return users, int64(len(records)), nil
}

func (r *userRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.users)), nil
}

func (r *userRepository) FindByResetToken(_ context.Context, email, tokenHash string, now time.Time) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.userEmails[email]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	u := r.s.users[id].user
	if u.ResetTokenHash == "" || u.ResetTokenHash != tokenHash || u.ResetTokenExpiry == nil || !u.ResetTokenExpiry.After(now) {
		return nil, errors.NotFound("User", nil)
	}
	return cloneUser(u), nil
}

func (r *userRepository) ClearExpiredResetTokens(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var cleared int64
	for id, rec := range r.s.users {
		if rec.user.ResetTokenExpiry != nil && !rec.user.ResetTokenExpiry.After(now) {
			rec.user.ResetTokenHash = ""
			rec.user.ResetTokenExpiry = nil
			r.s.users[id] = rec
			cleared++
		}
	}
	return cleared, nil
}
