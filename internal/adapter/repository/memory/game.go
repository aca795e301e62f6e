package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
	"thgamestore/pkg/errors"
)

type gameRecord struct {
	game entity.Game
	seq  int64
}

type gameRepository struct {
	s *Store
}

func cloneGame(g entity.Game) *entity.Game {
	g.Genres = cloneStrings(g.Genres)
	g.Tags = cloneStrings(g.Tags)
	if g.ReleaseDate != nil {
		d := *g.ReleaseDate
		g.ReleaseDate = &d
	}
	return &g
}

func (r *gameRepository) Create(_ context.Context, game *entity.Game) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.gameSlugs[game.Slug]; taken {
		return errors.Conflict("Slug already exists")
	}
	if game.ID == "" {
		game.ID = uuid.New().String()
	}
	now := time.Now()
	if game.CreatedAt.IsZero() {
		game.CreatedAt = now
	}
	game.UpdatedAt = now

	r.s.games[game.ID] = gameRecord{game: *cloneGame(*game), seq: r.s.nextSeqLocked()}
	r.s.gameSlugs[game.Slug] = game.ID
	return nil
}

func (r *gameRepository) GetByID(_ context.Context, id string) (*entity.Game, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.games[id]
	if !ok {
		return nil, errors.NotFound("Game", nil)
	}
	return cloneGame(rec.game), nil
}

func (r *gameRepository) GetBySlug(_ context.Context, slug string) (*entity.Game, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.gameSlugs[slug]
	if !ok {
		return nil, errors.NotFound("Game", nil)
	}
	return cloneGame(r.s.games[id].game), nil
}

func (r *gameRepository) FindByIDs(_ context.Context, ids []string) ([]*entity.Game, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := make(map[string]bool, len(ids))
	games := make([]*entity.Game, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if rec, ok := r.s.games[id]; ok {
			games = append(games, cloneGame(rec.game))
		}
	}
	return games, nil
}

func (r *gameRepository) List(_ context.Context, filter repository.GameFilter) ([]*entity.Game, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	matched := make([]gameRecord, 0, len(r.s.games))
	for _, rec := range r.s.games {
		if search != "" && !strings.Contains(strings.ToLower(rec.game.Title), search) {
			continue
		}
		if filter.Genre != "" && !contains(rec.game.Genres, filter.Genre) {
			continue
		}
		if filter.Tag != "" && !contains(rec.game.Tags, filter.Tag) {
			continue
		}
		matched = append(matched, rec)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch filter.Sort {
		case entity.SortTopSell:
			if a.game.SoldCount != b.game.SoldCount {
				return a.game.SoldCount > b.game.SoldCount
			}
		case entity.SortRating:
			if a.game.RatingAverage != b.game.RatingAverage {
				return a.game.RatingAverage > b.game.RatingAverage
			}
		case entity.SortPriceAsc:
			if a.game.FinalPrice != b.game.FinalPrice {
				return a.game.FinalPrice < b.game.FinalPrice
			}
		case entity.SortPriceDesc:
			if a.game.FinalPrice != b.game.FinalPrice {
				return a.game.FinalPrice > b.game.FinalPrice
			}
		}
		return newerFirst(a.game.CreatedAt, a.seq, b.game.CreatedAt, b.seq)
	})

	total := int64(len(matched))
	page := paginate(len(matched), filter.Offset, filter.Limit)
	games := make([]*entity.Game, 0, page.end-page.start)
	for _, rec := range matched[page.start:page.end] {
		games = append(games, cloneGame(rec.game))
	}
	return games, total, nil
}

func (r *gameRepository) Update(_ context.Context, game *entity.Game) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.games[game.ID]
	if !ok {
		return errors.NotFound("Game", nil)
	}
	if owner, taken := r.s.gameSlugs[game.Slug]; taken && owner != game.ID {
		return errors.Conflict("Slug already exists")
	}

	stored := *cloneGame(*game)
	stored.CreatedAt = rec.game.CreatedAt
	stored.RatingAverage = rec.game.RatingAverage
	stored.RatingCount = rec.game.RatingCount
	stored.SoldCount = rec.game.SoldCount
	stored.UpdatedAt = time.Now()

	delete(r.s.gameSlugs, rec.game.Slug)
	r.s.gameSlugs[stored.Slug] = stored.ID
	r.s.games[game.ID] = gameRecord{game: stored, seq: rec.seq}

	game.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *gameRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.games[id]
	if !ok {
		return errors.NotFound("Game", nil)
	}
	delete(r.s.gameSlugs, rec.game.Slug)
	delete(r.s.games, id)
	return nil
}

func (r *gameRepository) IncrementSoldCount(_ context.Context, id string, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.games[id]
	if !ok {
		return errors.NotFound("Game", nil)
	}
	rec.game.SoldCount += quantity
	r.s.games[id] = rec
	return nil
}

func (r *gameRepository) SetRating(_ context.Context, id string, stats entity.RatingStats) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.games[id]
	if !ok {
		return errors.NotFound("Game", nil)
	}
	rec.game.RatingAverage = stats.Average
	rec.game.RatingCount = stats.Count
	r.s.games[id] = rec
	return nil
}

func (r *gameRepository) DistinctGenres(_ context.Context) ([]string, error) {
	return r.distinct(func(g entity.Game) []string { return g.Genres }), nil
}

func (r *gameRepository) DistinctTags(_ context.Context) ([]string, error) {
	return r.distinct(func(g entity.Game) []string { return g.Tags }), nil
}

func (r *gameRepository) distinct(field func(entity.Game) []string) []string {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	set := make(map[string]struct{})
	for _, rec := range r.s.games {
		for _, v := range field(rec.game) {
			set[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (r *gameRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.games)), nil
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func newerFirst(a time.Time, aSeq int64, b time.Time, bSeq int64) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return aSeq > bSeq
}

type window struct {
	start, end int
}

func paginate(n, offset, limit int) window {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return window{start: offset, end: end}
}
