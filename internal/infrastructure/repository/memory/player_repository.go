package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/darkscore-api/internal/domain/player"
	"github.com/riskibarqy/darkscore-api/internal/domain/team"
)

type PlayerRepository struct {
	mu            sync.RWMutex
	playersByTeam map[string][]player.Player
}

// NewPlayerRepository keys rosters by team name. Roster order is kept as given.
func NewPlayerRepository(rosters map[string][]player.Player) *PlayerRepository {
	playersByTeam := make(map[string][]player.Player, len(rosters))
	for name, players := range rosters {
		playersByTeam[team.NormalizeName(name)] = append([]player.Player(nil), players...)
	}

	return &PlayerRepository{playersByTeam: playersByTeam}
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamName string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := r.playersByTeam[team.NormalizeName(teamName)]
	out := make([]player.Player, 0, len(players))
	for _, p := range players {
		out = append(out, p.Clone())
	}

	return out, nil
}

func (r *PlayerRepository) ReplaceRoster(_ context.Context, teamName string, players []player.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.playersByTeam[team.NormalizeName(teamName)] = append([]player.Player(nil), players...)
}
