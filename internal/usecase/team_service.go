package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/darkscore-api/internal/domain/formation"
	"github.com/riskibarqy/darkscore-api/internal/domain/player"
	"github.com/riskibarqy/darkscore-api/internal/domain/team"
)

type TeamRoster struct {
	Team       team.Team
	Formation  string
	Players    []player.Player
	StartingXI []player.Player
}

type TeamService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
}

func NewTeamService(teamRepo team.Repository, playerRepo player.Repository) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
	}
}

// ListTeams returns the catalogue in rank order. A non-blank search keeps
// only names containing it (case-insensitive) and sorts the matches by name.
func (s *TeamService) ListTeams(ctx context.Context, search string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(search))
	if query == "" {
		return items, nil
	}

	out := make([]team.Team, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), query) {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (s *TeamService) GetRoster(ctx context.Context, teamName string) (TeamRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetRoster")
	defer span.End()

	teamItem, err := lookupTeam(ctx, s.teamRepo, teamName)
	if err != nil {
		return TeamRoster{}, err
	}

	players, err := s.playerRepo.ListByTeam(ctx, teamItem.Name)
	if err != nil {
		return TeamRoster{}, fmt.Errorf("list roster team=%s: %w", teamItem.Name, err)
	}

	starters := players
	if len(starters) > formation.MaxStarters {
		starters = starters[:formation.MaxStarters]
	}

	return TeamRoster{
		Team:       teamItem,
		Formation:  teamItem.Formation(),
		Players:    players,
		StartingXI: append([]player.Player(nil), starters...),
	}, nil
}

// RosterInvalidator is implemented by player repositories that cache rosters.
type RosterInvalidator interface {
	Invalidate(ctx context.Context, teamName string)
	InvalidateAll(ctx context.Context)
}

// RefreshRoster drops the cached roster of one team and reloads it from the
// roster source. Without a caching repository it behaves like GetRoster.
func (s *TeamService) RefreshRoster(ctx context.Context, teamName string) (TeamRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.RefreshRoster")
	defer span.End()

	teamItem, err := lookupTeam(ctx, s.teamRepo, teamName)
	if err != nil {
		return TeamRoster{}, err
	}
	if inv, ok := s.playerRepo.(RosterInvalidator); ok {
		inv.Invalidate(ctx, teamItem.Name)
	}
	return s.GetRoster(ctx, teamItem.Name)
}

// RefreshAllRosters drops every cached roster and reports whether a cache was
// present to clear.
func (s *TeamService) RefreshAllRosters(ctx context.Context) bool {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.RefreshAllRosters")
	defer span.End()

	inv, ok := s.playerRepo.(RosterInvalidator)
	if !ok {
		return false
	}
	inv.InvalidateAll(ctx)
	return true
}

func lookupTeam(ctx context.Context, repo team.Repository, name string) (team.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByName(ctx, name)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team %s: %w", name, err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, name)
	}
	return item, nil
}
