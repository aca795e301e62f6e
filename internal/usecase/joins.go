package usecase

import (
	"context"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
)

// gameIndex resolves ids in one batch. Ids of deleted games are absent.
func gameIndex(ctx context.Context, games repository.GameRepository, ids []string) (map[string]*entity.Game, error) {
	index := make(map[string]*entity.Game, len(ids))
	if len(ids) == 0 {
		return index, nil
	}
	found, err := games.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, g := range found {
		index[g.ID] = g
	}
	return index, nil
}

func userIndex(ctx context.Context, users repository.UserRepository, ids []string) (map[string]*entity.User, error) {
	index := make(map[string]*entity.User, len(ids))
	if len(ids) == 0 {
		return index, nil
	}
	found, err := users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range found {
		index[u.ID] = u
	}
	return index, nil
}

func summaryOf(g *entity.Game) *entity.GameSummary {
	if g == nil {
		return nil
	}
	return g.Summary()
}

func userSummaryOf(u *entity.User) *entity.UserSummary {
	if u == nil {
		return nil
	}
	return u.Summary()
}

func uniqueIDs(n int, at func(i int) string) []string {
	seen := make(map[string]bool, n)
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id := at(i)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
