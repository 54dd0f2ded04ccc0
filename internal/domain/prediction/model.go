package prediction

import (
	"context"
	"fmt"
	"strings"
)

// MinTeamNameLength is the shortest team name the predictor accepts.
const MinTeamNameLength = 2

// Confidence grades how far apart the predicted outcomes are.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// MatchRequest asks for outcome probabilities of a single fixture.
type MatchRequest struct {
	TeamA       string
	TeamB       string
	NeutralSite bool
}

func (r MatchRequest) Validate() error {
	if err := validateTeams(r.TeamA, r.TeamB); err != nil {
		return err
	}
	return nil
}

// MatchPrediction is the predictor's view of a fixture. Probabilities are
// whole percentages in [0, 100].
type MatchPrediction struct {
	TeamA           string
	TeamB           string
	TeamAWinProb    int
	DrawProb        int
	TeamBWinProb    int
	PredictedWinner string
	UpsetScore      int
	Confidence      Confidence
	Explanation     []string
	NeutralSite     bool
	ModelSource     string
}

// UpsetRequest asks how surprising a final score is.
type UpsetRequest struct {
	TeamA       string
	TeamB       string
	ScoreA      int
	ScoreB      int
	NeutralSite bool
}

func (r UpsetRequest) Validate() error {
	if err := validateTeams(r.TeamA, r.TeamB); err != nil {
		return err
	}
	if r.ScoreA < 0 || r.ScoreB < 0 {
		return fmt.Errorf("scores must be >= 0")
	}
	return nil
}

// UpsetResult scores a played result against the pre-match expectation.
type UpsetResult struct {
	TeamA           string
	TeamB           string
	ScoreA          int
	ScoreB          int
	UpsetScore      int
	ProjectedResult string
	Explanation     []string
}

// Predictor is the match-outcome model collaborator.
type Predictor interface {
	PredictMatch(ctx context.Context, req MatchRequest) (MatchPrediction, error)
	ScoreUpset(ctx context.Context, req UpsetRequest) (UpsetResult, error)
}

func validateTeams(a, b string) error {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if len([]rune(a)) < MinTeamNameLength || len([]rune(b)) < MinTeamNameLength {
		return fmt.Errorf("team names must have at least %d characters", MinTeamNameLength)
	}
	if strings.EqualFold(a, b) {
		return fmt.Errorf("team_a and team_b must differ")
	}
	return nil
}
