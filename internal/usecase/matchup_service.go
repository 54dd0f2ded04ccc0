package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/darkscore-api/internal/domain/prediction"
	"github.com/riskibarqy/darkscore-api/internal/domain/team"
	"github.com/riskibarqy/darkscore-api/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

type MatchupInput struct {
	TeamA       string
	TeamB       string
	Policy      string
	NeutralSite bool
}

type UpsetInput struct {
	TeamA       string
	TeamB       string
	ScoreA      int
	ScoreB      int
	NeutralSite bool
}

// Matchup pairs two starting XIs. Prediction is nil when the predictor is
// disabled or failed.
type Matchup struct {
	TeamA      StartingXI
	TeamB      StartingXI
	Prediction *prediction.MatchPrediction
}

type MatchupService struct {
	teamRepo  team.Repository
	lineups   *LineupService
	predictor prediction.Predictor
	logger    *logging.Logger
}

// NewMatchupService wires the matchup flow. A nil predictor disables
// predictions.
func NewMatchupService(teamRepo team.Repository, lineups *LineupService, predictor prediction.Predictor, logger *logging.Logger) *MatchupService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchupService{
		teamRepo:  teamRepo,
		lineups:   lineups,
		predictor: predictor,
		logger:    logger,
	}
}

func (s *MatchupService) GetMatchup(ctx context.Context, input MatchupInput) (Matchup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.GetMatchup")
	defer span.End()

	teamA, teamB, err := s.resolvePair(ctx, input.TeamA, input.TeamB)
	if err != nil {
		return Matchup{}, err
	}
	if _, err := s.lineups.resolvePolicy(input.Policy); err != nil {
		return Matchup{}, err
	}

	var out Matchup
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		xi, err := s.lineups.GetStartingXI(ctx, StartingXIInput{Team: teamA.Name, Policy: input.Policy})
		if err != nil {
			return fmt.Errorf("starting xi team_a: %w", err)
		}
		out.TeamA = xi
		return nil
	})
	p.Go(func(ctx context.Context) error {
		xi, err := s.lineups.GetStartingXI(ctx, StartingXIInput{Team: teamB.Name, Policy: input.Policy})
		if err != nil {
			return fmt.Errorf("starting xi team_b: %w", err)
		}
		out.TeamB = xi
		return nil
	})
	if s.predictor != nil {
		p.Go(func(ctx context.Context) error {
			result, err := s.predictor.PredictMatch(ctx, prediction.MatchRequest{
				TeamA:       teamA.Name,
				TeamB:       teamB.Name,
				NeutralSite: input.NeutralSite,
			})
			if err != nil {
				if ctx.Err() == nil {
					s.logger.WarnContext(ctx, "match prediction unavailable",
						"team_a", teamA.Name,
						"team_b", teamB.Name,
						"error", err,
					)
				}
				return nil
			}
			out.Prediction = &result
			return nil
		})
	} else {
		s.logger.DebugContext(ctx, "predictor disabled, skipping match prediction",
			"team_a", teamA.Name,
			"team_b", teamB.Name,
		)
	}

	if err := p.Wait(); err != nil {
		return Matchup{}, err
	}
	return out, nil
}

// ScoreUpset rates a played result. It requires a configured predictor.
func (s *MatchupService) ScoreUpset(ctx context.Context, input UpsetInput) (prediction.UpsetResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.ScoreUpset")
	defer span.End()

	if s.predictor == nil {
		return prediction.UpsetResult{}, fmt.Errorf("%w: predictor is disabled", ErrDependencyUnavailable)
	}

	req := prediction.UpsetRequest{
		TeamA:       strings.TrimSpace(input.TeamA),
		TeamB:       strings.TrimSpace(input.TeamB),
		ScoreA:      input.ScoreA,
		ScoreB:      input.ScoreB,
		NeutralSite: input.NeutralSite,
	}
	if err := req.Validate(); err != nil {
		return prediction.UpsetResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	teamA, teamB, err := s.resolvePair(ctx, req.TeamA, req.TeamB)
	if err != nil {
		return prediction.UpsetResult{}, err
	}
	req.TeamA, req.TeamB = teamA.Name, teamB.Name

	result, err := s.predictor.ScoreUpset(ctx, req)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrDependencyUnavailable) {
			return prediction.UpsetResult{}, err
		}
		return prediction.UpsetResult{}, fmt.Errorf("%w: score upset: %v", ErrDependencyUnavailable, err)
	}
	return result, nil
}

func (s *MatchupService) resolvePair(ctx context.Context, nameA, nameB string) (team.Team, team.Team, error) {
	nameA, nameB = strings.TrimSpace(nameA), strings.TrimSpace(nameB)
	if nameA == "" || nameB == "" {
		return team.Team{}, team.Team{}, fmt.Errorf("%w: team_a and team_b are required", ErrInvalidInput)
	}
	if team.NormalizeName(nameA) == team.NormalizeName(nameB) {
		return team.Team{}, team.Team{}, fmt.Errorf("%w: team_a and team_b must differ", ErrInvalidInput)
	}

	teamA, err := lookupTeam(ctx, s.teamRepo, nameA)
	if err != nil {
		return team.Team{}, team.Team{}, err
	}
	teamB, err := lookupTeam(ctx, s.teamRepo, nameB)
	if err != nil {
		return team.Team{}, team.Team{}, err
	}
	return teamA, teamB, nil
}
