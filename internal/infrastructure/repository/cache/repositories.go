package cache

import (
	"context"

	"github.com/riskibarqy/darkscore-api/internal/domain/player"
	"github.com/riskibarqy/darkscore-api/internal/domain/team"
	basecache "github.com/riskibarqy/darkscore-api/internal/platform/cache"
)

const (
	teamKeyPrefix   = "team:"
	playerKeyPrefix = "player:team:"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, teamKeyPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	key := teamKeyPrefix + "name:" + team.NormalizeName(name)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		return cachedTeamByName{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByName)
	return cached.value, cached.exists, nil
}

type cachedTeamByName struct {
	value  team.Team
	exists bool
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamName string) ([]player.Player, error) {
	key := playerKeyPrefix + team.NormalizeName(teamName)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByTeam(ctx, teamName)
		if err != nil {
			return nil, err
		}
		return clonePlayers(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return clonePlayers(items), nil
}

// Invalidate drops the cached roster of a single team.
func (r *PlayerRepository) Invalidate(ctx context.Context, teamName string) {
	r.cache.Delete(ctx, playerKeyPrefix+team.NormalizeName(teamName))
}

// InvalidateAll drops every cached roster.
func (r *PlayerRepository) InvalidateAll(ctx context.Context) {
	r.cache.DeletePrefix(ctx, playerKeyPrefix)
}

func clonePlayers(items []player.Player) []player.Player {
	out := make([]player.Player, 0, len(items))
	for _, p := range items {
		out = append(out, p.Clone())
	}
	return out
}
