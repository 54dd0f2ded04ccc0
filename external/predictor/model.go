package predictor

import (
	"strings"

	"github.com/riskibarqy/darkscore-api/internal/domain/prediction"
)

type matchRequest struct {
	TeamA       string `json:"team_a"`
	TeamB       string `json:"team_b"`
	NeutralSite bool   `json:"neutral_site"`
}

type matchResponse struct {
	TeamA           string   `json:"team_a"`
	TeamB           string   `json:"team_b"`
	TeamAWinProb    float64  `json:"team_a_win_prob"`
	DrawProb        float64  `json:"draw_prob"`
	TeamBWinProb    float64  `json:"team_b_win_prob"`
	PredictedWinner string   `json:"predicted_winner"`
	UpsetScore      float64  `json:"upset_score"`
	Confidence      string   `json:"confidence"`
	Explanation     []string `json:"explanation"`
	NeutralSite     bool     `json:"neutral_site"`
	ModelSource     string   `json:"model_source"`
}

func (r matchResponse) toDomain() prediction.MatchPrediction {
	return prediction.MatchPrediction{
		TeamA:           r.TeamA,
		TeamB:           r.TeamB,
		TeamAWinProb:    percent(r.TeamAWinProb),
		DrawProb:        percent(r.DrawProb),
		TeamBWinProb:    percent(r.TeamBWinProb),
		PredictedWinner: r.PredictedWinner,
		UpsetScore:      percent(r.UpsetScore),
		Confidence:      prediction.Confidence(strings.ToLower(strings.TrimSpace(r.Confidence))),
		Explanation:     append([]string{}, r.Explanation...),
		NeutralSite:     r.NeutralSite,
		ModelSource:     r.ModelSource,
	}
}

type upsetRequest struct {
	TeamA       string `json:"team_a"`
	TeamB       string `json:"team_b"`
	ScoreA      int    `json:"score_a"`
	ScoreB      int    `json:"score_b"`
	NeutralSite bool   `json:"neutral_site"`
}

type upsetResponse struct {
	TeamA           string   `json:"team_a"`
	TeamB           string   `json:"team_b"`
	ScoreA          int      `json:"score_a"`
	ScoreB          int      `json:"score_b"`
	UpsetScore      float64  `json:"upset_score"`
	ProjectedResult string   `json:"projected_result"`
	Explanation     []string `json:"explanation"`
}

func (r upsetResponse) toDomain() prediction.UpsetResult {
	return prediction.UpsetResult{
		TeamA:           r.TeamA,
		TeamB:           r.TeamB,
		ScoreA:          r.ScoreA,
		ScoreB:          r.ScoreB,
		UpsetScore:      percent(r.UpsetScore),
		ProjectedResult: r.ProjectedResult,
		Explanation:     append([]string{}, r.Explanation...),
	}
}
