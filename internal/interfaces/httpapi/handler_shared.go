package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/darkscore-api/internal/domain/formation"
	"github.com/riskibarqy/darkscore-api/internal/domain/player"
	"github.com/riskibarqy/darkscore-api/internal/domain/prediction"
	"github.com/riskibarqy/darkscore-api/internal/domain/team"
	"github.com/riskibarqy/darkscore-api/internal/platform/cache"
	"github.com/riskibarqy/darkscore-api/internal/platform/resilience"
	"github.com/riskibarqy/darkscore-api/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

var requestJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	DisallowUnknownFields:  true,
}.Froze()

type buildLineupRequest struct {
	Players   []lineupPlayerRequest `json:"players" validate:"max=60,dive"`
	Policy    string                `json:"policy" validate:"omitempty,max=20"`
	Formation string                `json:"formation" validate:"omitempty,max=20"`
}

type lineupPlayerRequest struct {
	Number   int                 `json:"number" validate:"gte=1,lte=999"`
	Name     string              `json:"name" validate:"required,max=100"`
	Position string              `json:"position" validate:"max=40"`
	Nation   string              `json:"nation" validate:"omitempty,max=60"`
	Club     string              `json:"club" validate:"omitempty,max=100"`
	Overall  int                 `json:"overall" validate:"gte=0,lte=100"`
	Stats    *playerStatsRequest `json:"stats"`
}

type playerStatsRequest struct {
	Caps    int `json:"caps" validate:"gte=0"`
	Goals   int `json:"goals" validate:"gte=0"`
	Assists int `json:"assists" validate:"gte=0"`
}

type matchupQuery struct {
	TeamA       string `validate:"required,min=2,max=60"`
	TeamB       string `validate:"required,min=2,max=60"`
	Policy      string `validate:"omitempty,max=20"`
	NeutralSite bool
}

type upsetRequest struct {
	TeamA       string `json:"team_a" validate:"required,min=2,max=60"`
	TeamB       string `json:"team_b" validate:"required,min=2,max=60"`
	ScoreA      int    `json:"score_a" validate:"gte=0,lte=99"`
	ScoreB      int    `json:"score_b" validate:"gte=0,lte=99"`
	NeutralSite bool   `json:"neutral_site"`
}

type healthDTO struct {
	Status        string                                `json:"status"`
	UptimeSeconds int64                                 `json:"uptime_seconds"`
	Dependencies  map[string]resilience.CircuitSnapshot `json:"dependencies,omitempty"`
	Cache         *cache.Stats                          `json:"cache,omitempty"`
}

type teamDTO struct {
	Name           string `json:"name"`
	Confederation  string `json:"confederation"`
	FIFARank       int    `json:"fifa_rank"`
	WorldCupTitles int    `json:"world_cup_titles"`
	RecentForm     string `json:"recent_form"`
	FlagCode       string `json:"flag_code"`
	Formation      string `json:"formation"`
}

type rosterPlayerDTO struct {
	Number    int             `json:"number"`
	Name      string          `json:"name"`
	Position  string          `json:"position"`
	Nation    string          `json:"nation,omitempty"`
	Club      string          `json:"club,omitempty"`
	Overall   int             `json:"overall,omitempty"`
	Potential int             `json:"potential,omitempty"`
	Age       int             `json:"age,omitempty"`
	Value     string          `json:"value,omitempty"`
	Stats     *playerStatsDTO `json:"stats,omitempty"`

	Attributes *playerAttributesDTO `json:"attributes,omitempty"`
	Playstyles []string             `json:"playstyles,omitempty"`
}

type playerAttributesDTO struct {
	Acceleration     int `json:"acceleration"`
	SprintSpeed      int `json:"sprint_speed"`
	Dribbling        int `json:"dribbling"`
	Finishing        int `json:"finishing"`
	ShortPassing     int `json:"short_passing"`
	LongPassing      int `json:"long_passing"`
	Reactions        int `json:"reactions"`
	HeadingAccuracy  int `json:"heading_accuracy"`
	TotalAttacking   int `json:"total_attacking"`
	TotalSkill       int `json:"total_skill"`
	TotalMovement    int `json:"total_movement"`
	TotalPower       int `json:"total_power"`
	TotalMentality   int `json:"total_mentality"`
	TotalDefending   int `json:"total_defending"`
	TotalGoalkeeping int `json:"total_goalkeeping"`
}

type slotDTO struct {
	Key                string          `json:"key"`
	Number             int             `json:"number"`
	Name               string          `json:"name"`
	Position           string          `json:"position"`
	NormalizedPosition string          `json:"normalized_position"`
	Line               string          `json:"line"`
	Club               string          `json:"club,omitempty"`
	Overall            int             `json:"overall,omitempty"`
	Stats              *playerStatsDTO `json:"stats,omitempty"`
}

type playerStatsDTO struct {
	Caps    int `json:"caps"`
	Goals   int `json:"goals"`
	Assists int `json:"assists"`
}

// linesDTO publishes dm only for lineups that carry a separate dm row.
type linesDTO struct {
	Goalkeeper        []slotDTO  `json:"gk"`
	Defense           []slotDTO  `json:"defense"`
	DefensiveMidfield *[]slotDTO `json:"dm,omitempty"`
	Midfield          []slotDTO  `json:"midfield"`
	Attack            []slotDTO  `json:"attack"`
}

type lineupDTO struct {
	Formation string   `json:"formation"`
	Policy    string   `json:"policy"`
	Count     int      `json:"count"`
	Lines     linesDTO `json:"lines"`
}

type startingXIDTO struct {
	Team   teamDTO   `json:"team"`
	Lineup lineupDTO `json:"lineup"`
}

type rosterDTO struct {
	Team       teamDTO           `json:"team"`
	Formation  string            `json:"formation"`
	Players    []rosterPlayerDTO `json:"players"`
	StartingXI []rosterPlayerDTO `json:"starting_xi"`
}

type rosterRefreshDTO struct {
	Scope   string `json:"scope"`
	Cleared bool   `json:"cleared"`
}

type predictionDTO struct {
	TeamA           string   `json:"team_a"`
	TeamB           string   `json:"team_b"`
	TeamAWinProb    int      `json:"team_a_win_prob"`
	DrawProb        int      `json:"draw_prob"`
	TeamBWinProb    int      `json:"team_b_win_prob"`
	PredictedWinner string   `json:"predicted_winner"`
	UpsetScore      int      `json:"upset_score"`
	Confidence      string   `json:"confidence"`
	Explanation     []string `json:"explanation"`
	NeutralSite     bool     `json:"neutral_site"`
	ModelSource     string   `json:"model_source,omitempty"`
}

type matchupDTO struct {
	TeamA      startingXIDTO  `json:"team_a"`
	TeamB      startingXIDTO  `json:"team_b"`
	Prediction *predictionDTO `json:"prediction"`
}

type upsetDTO struct {
	TeamA           string   `json:"team_a"`
	TeamB           string   `json:"team_b"`
	ScoreA          int      `json:"score_a"`
	ScoreB          int      `json:"score_b"`
	UpsetScore      int      `json:"upset_score"`
	ProjectedResult string   `json:"projected_result"`
	Explanation     []string `json:"explanation"`
}

func decodeJSON(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	_, span := startSpan(ctx, "httpapi.decodeJSON")
	defer span.End()

	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	defer body.Close()

	decoder := requestJSON.NewDecoder(body)
	if err := decoder.Decode(dst); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON body: %v", usecase.ErrInvalidInput, err)
	}
	if decoder.More() {
		return fmt.Errorf("%w: request body must contain a single JSON object", usecase.ErrInvalidInput)
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, req any) error {
	if err := h.validator.StructCtx(ctx, req); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func parseBoolQuery(raw, field string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", usecase.ErrInvalidInput, field)
	}
	return v, nil
}

func (r lineupPlayerRequest) toDomain() player.Player {
	p := player.Player{
		Number:   r.Number,
		Name:     strings.TrimSpace(r.Name),
		Position: r.Position,
		Nation:   strings.TrimSpace(r.Nation),
		Club:     strings.TrimSpace(r.Club),
		Overall:  r.Overall,
	}
	if r.Stats != nil {
		p.Stats = &player.Stats{Caps: r.Stats.Caps, Goals: r.Stats.Goals, Assists: r.Stats.Assists}
	}
	return p
}

func teamToDTO(item team.Team) teamDTO {
	return teamDTO{
		Name:           item.Name,
		Confederation:  string(item.Confederation),
		FIFARank:       item.FIFARank,
		WorldCupTitles: item.WorldCupTitles,
		RecentForm:     item.RecentForm,
		FlagCode:       item.FlagCode,
		Formation:      item.Formation(),
	}
}

func statsToDTO(stats *player.Stats) *playerStatsDTO {
	if stats == nil {
		return nil
	}
	return &playerStatsDTO{Caps: stats.Caps, Goals: stats.Goals, Assists: stats.Assists}
}

func rosterPlayerToDTO(p player.Player) rosterPlayerDTO {
	return rosterPlayerDTO{
		Number:    p.Number,
		Name:      p.Name,
		Position:  p.Position,
		Nation:    p.Nation,
		Club:      p.Club,
		Overall:   p.Overall,
		Potential: p.Potential,
		Age:       p.Age,
		Value:     p.Value,
		Stats:     statsToDTO(p.Stats),

		Attributes: attributesToDTO(p.Attributes),
		Playstyles: p.Playstyles,
	}
}

func attributesToDTO(a *player.Attributes) *playerAttributesDTO {
	if a == nil {
		return nil
	}
	return &playerAttributesDTO{
		Acceleration:     a.Acceleration,
		SprintSpeed:      a.SprintSpeed,
		Dribbling:        a.Dribbling,
		Finishing:        a.Finishing,
		ShortPassing:     a.ShortPassing,
		LongPassing:      a.LongPassing,
		Reactions:        a.Reactions,
		HeadingAccuracy:  a.HeadingAccuracy,
		TotalAttacking:   a.TotalAttacking,
		TotalSkill:       a.TotalSkill,
		TotalMovement:    a.TotalMovement,
		TotalPower:       a.TotalPower,
		TotalMentality:   a.TotalMentality,
		TotalDefending:   a.TotalDefending,
		TotalGoalkeeping: a.TotalGoalkeeping,
	}
}

func slotsToDTO(slots []formation.Slot) []slotDTO {
	out := make([]slotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotDTO{
			Key:                s.Key(),
			Number:             s.Number,
			Name:               s.Name,
			Position:           s.Position,
			NormalizedPosition: string(s.NormalizedPosition),
			Line:               s.Line.String(),
			Club:               s.Club,
			Overall:            s.Overall,
			Stats:              statsToDTO(s.Stats),
		})
	}
	return out
}

func lineupToDTO(l formation.Lineup) lineupDTO {
	lines := linesDTO{
		Goalkeeper: slotsToDTO(l.Lines.Goalkeeper),
		Defense:    slotsToDTO(l.Lines.Defense),
		Midfield:   slotsToDTO(l.Lines.Midfield),
		Attack:     slotsToDTO(l.Lines.Attack),
	}
	if l.HasDefensiveMidfieldLine() {
		dm := slotsToDTO(l.Lines.DefensiveMidfield)
		lines.DefensiveMidfield = &dm
	}
	return lineupDTO{
		Formation: l.Formation,
		Policy:    l.Policy.String(),
		Count:     l.Count(),
		Lines:     lines,
	}
}

func startingXIToDTO(xi usecase.StartingXI) startingXIDTO {
	return startingXIDTO{
		Team:   teamToDTO(xi.Team),
		Lineup: lineupToDTO(xi.Lineup),
	}
}

func rosterToDTO(roster usecase.TeamRoster) rosterDTO {
	return rosterDTO{
		Team:       teamToDTO(roster.Team),
		Formation:  roster.Formation,
		Players:    rosterPlayersToDTO(roster.Players),
		StartingXI: rosterPlayersToDTO(roster.StartingXI),
	}
}

func rosterPlayersToDTO(players []player.Player) []rosterPlayerDTO {
	out := make([]rosterPlayerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, rosterPlayerToDTO(p))
	}
	return out
}

func predictionToDTO(p *prediction.MatchPrediction) *predictionDTO {
	if p == nil {
		return nil
	}
	explanation := p.Explanation
	if explanation == nil {
		explanation = []string{}
	}
	return &predictionDTO{
		TeamA:           p.TeamA,
		TeamB:           p.TeamB,
		TeamAWinProb:    p.TeamAWinProb,
		DrawProb:        p.DrawProb,
		TeamBWinProb:    p.TeamBWinProb,
		PredictedWinner: p.PredictedWinner,
		UpsetScore:      p.UpsetScore,
		Confidence:      string(p.Confidence),
		Explanation:     explanation,
		NeutralSite:     p.NeutralSite,
		ModelSource:     p.ModelSource,
	}
}

func upsetToDTO(res prediction.UpsetResult) upsetDTO {
	explanation := res.Explanation
	if explanation == nil {
		explanation = []string{}
	}
	return upsetDTO{
		TeamA:           res.TeamA,
		TeamB:           res.TeamB,
		ScoreA:          res.ScoreA,
		ScoreB:          res.ScoreB,
		UpsetScore:      res.UpsetScore,
		ProjectedResult: res.ProjectedResult,
		Explanation:     explanation,
	}
}
