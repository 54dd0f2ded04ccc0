package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/darkscore-api/internal/domain/formation"
	"github.com/riskibarqy/darkscore-api/internal/domain/player"
	"github.com/riskibarqy/darkscore-api/internal/domain/team"
	"github.com/riskibarqy/darkscore-api/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// MaxRosterSize bounds caller supplied rosters.
const MaxRosterSize = 60

type LineupConfig struct {
	DefaultPolicy    formation.Policy
	DefaultFormation string
}

type StartingXIInput struct {
	Team      string
	Policy    string
	Formation string
}

type BuildInput struct {
	Players   []player.Player
	Policy    string
	Formation string
}

type StartingXI struct {
	Team   team.Team
	Lineup formation.Lineup
}

type LineupService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	cfg        LineupConfig
	logger     *logging.Logger
}

func NewLineupService(teamRepo team.Repository, playerRepo player.Repository, cfg LineupConfig, logger *logging.Logger) *LineupService {
	if cfg.DefaultPolicy == "" {
		cfg.DefaultPolicy = formation.PolicyTargetFormation
	}
	if strings.TrimSpace(cfg.DefaultFormation) == "" {
		cfg.DefaultFormation = formation.DefaultFormation
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &LineupService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		cfg:        cfg,
		logger:     logger,
	}
}

// GetStartingXI builds the starting XI of a catalogue team from its roster.
// Without an explicit formation the team's preferred shape is used.
func (s *LineupService) GetStartingXI(ctx context.Context, input StartingXIInput) (StartingXI, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.GetStartingXI")
	defer span.End()

	policy, err := s.resolvePolicy(input.Policy)
	if err != nil {
		return StartingXI{}, err
	}

	teamItem, err := lookupTeam(ctx, s.teamRepo, input.Team)
	if err != nil {
		return StartingXI{}, err
	}

	players, err := s.playerRepo.ListByTeam(ctx, teamItem.Name)
	if err != nil {
		return StartingXI{}, fmt.Errorf("list roster team=%s: %w", teamItem.Name, err)
	}

	spec := strings.TrimSpace(input.Formation)
	if spec == "" {
		spec = teamItem.Formation()
	}

	lineup := formation.Build(players, policy, spec)
	span.SetAttributes(
		attribute.String("team", teamItem.Name),
		attribute.String("policy", policy.String()),
		attribute.String("formation", lineup.Formation),
	)
	s.logger.DebugContext(ctx, "starting xi built",
		"team", teamItem.Name,
		"policy", policy.String(),
		"formation", lineup.Formation,
		"roster_size", len(players),
	)

	return StartingXI{Team: teamItem, Lineup: lineup}, nil
}

// BuildFromRoster fits an arbitrary roster. The first eleven players start.
func (s *LineupService) BuildFromRoster(ctx context.Context, input BuildInput) (formation.Lineup, error) {
	_, span := startUsecaseSpan(ctx, "usecase.LineupService.BuildFromRoster")
	defer span.End()

	if len(input.Players) > MaxRosterSize {
		return formation.Lineup{}, fmt.Errorf("%w: roster has %d players, max %d", ErrInvalidInput, len(input.Players), MaxRosterSize)
	}
	policy, err := s.resolvePolicy(input.Policy)
	if err != nil {
		return formation.Lineup{}, err
	}

	spec := strings.TrimSpace(input.Formation)
	if spec == "" {
		spec = s.cfg.DefaultFormation
	}

	return formation.Build(input.Players, policy, spec), nil
}

func (s *LineupService) resolvePolicy(raw string) (formation.Policy, error) {
	if strings.TrimSpace(raw) == "" {
		return s.cfg.DefaultPolicy, nil
	}
	policy, ok := formation.ParsePolicy(raw)
	if !ok {
		return "", fmt.Errorf("%w: unknown lineup policy %q", ErrInvalidInput, raw)
	}
	return policy, nil
}
