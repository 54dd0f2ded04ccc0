package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/darkscore-api/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	teams  []team.Team
	byName map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	r := &TeamRepository{byName: make(map[string]team.Team, len(teams))}
	for _, item := range teams {
		key := team.NormalizeName(item.Name)
		if key == "" {
			continue
		}
		if _, exists := r.byName[key]; exists {
			continue
		}
		r.teams = append(r.teams, item)
		r.byName[key] = item
	}

	return r
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	out = append(out, r.teams...)

	return out, nil
}

func (r *TeamRepository) GetByName(_ context.Context, name string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byName[team.NormalizeName(name)]
	return item, ok, nil
}
