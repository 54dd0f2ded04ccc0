package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/darkscore-api/internal/domain/player"
	"github.com/riskibarqy/darkscore-api/internal/domain/prediction"
	cacherepo "github.com/riskibarqy/darkscore-api/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/darkscore-api/internal/infrastructure/repository/memory"
	predictionmock "github.com/riskibarqy/darkscore-api/internal/mocks/domain/prediction"
	"github.com/riskibarqy/darkscore-api/internal/platform/cache"
	"github.com/riskibarqy/darkscore-api/internal/platform/logging"
	"github.com/riskibarqy/darkscore-api/internal/platform/resilience"
	"github.com/riskibarqy/darkscore-api/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testEnvelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	ID         string           `json:"id"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

type stubCircuit struct {
	state resilience.CircuitState
}

func (s stubCircuit) CircuitSnapshot() resilience.CircuitSnapshot {
	return resilience.CircuitSnapshot{State: s.state}
}

func newTestRouter(t *testing.T, predictor prediction.Predictor, opts ...HandlerOption) http.Handler {
	t.Helper()

	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	playerRepo := memory.NewPlayerRepository(memory.SeedRosters())
	lineups := usecase.NewLineupService(teamRepo, playerRepo, usecase.LineupConfig{}, nil)

	handler := NewHandler(
		usecase.NewTeamService(teamRepo, playerRepo),
		lineups,
		usecase.NewMatchupService(teamRepo, lineups, predictor, nil),
		logging.NewNop(),
		opts...,
	)
	return NewRouter(handler, logging.NewNop(), true, []string{"*"})
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()

	var out testEnvelope[T]
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHandler_Healthz(t *testing.T) {
	t.Parallel()

	store := cache.NewStore(0)
	router := newTestRouter(t, nil,
		WithCircuit("predictor", stubCircuit{state: resilience.CircuitStateClosed}),
		WithCacheReporter(store),
	)

	rec := doRequest(t, router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeEnvelope[healthDTO](t, rec)
	assert.Equal(t, healthStatusOK, got.Data.Status)
	assert.Equal(t, resilience.CircuitStateClosed, got.Data.Dependencies["predictor"].State)
	require.NotNil(t, got.Data.Cache)
}

func TestHandler_Healthz_DegradedWhenBreakerOpen(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil,
		WithCircuit("roster_api", stubCircuit{state: resilience.CircuitStateClosed}),
		WithCircuit("predictor", stubCircuit{state: resilience.CircuitStateOpen}),
	)

	rec := doRequest(t, router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeEnvelope[healthDTO](t, rec)
	assert.Equal(t, healthStatusDegraded, got.Data.Status)
	assert.Len(t, got.Data.Dependencies, 2)
	assert.Nil(t, got.Data.Cache)
}

func TestHandler_ListTeams(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(t, nil), http.MethodGet, "/v1/teams", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeEnvelope[[]teamDTO](t, rec)
	require.NotEmpty(t, got.Data)
	assert.Equal(t, "Spain", got.Data[0].Name)
	assert.Equal(t, 1, got.Data[0].FIFARank)
	assert.Equal(t, "4-3-3", got.Data[0].Formation)
	assert.NotEmpty(t, got.ID)
}

func TestHandler_ListTeams_Search(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)

	rec := doRequest(t, router, http.MethodGet, "/v1/teams?search=%20FRA%20", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeEnvelope[[]teamDTO](t, rec)
	require.Len(t, got.Data, 1)
	assert.Equal(t, "France", got.Data[0].Name)

	rec = doRequest(t, router, http.MethodGet, "/v1/teams?search=an", "")
	require.Equal(t, http.StatusOK, rec.Code)

	matches := decodeEnvelope[[]teamDTO](t, rec)
	require.NotEmpty(t, matches.Data)
	for i, item := range matches.Data {
		assert.Contains(t, strings.ToLower(item.Name), "an")
		if i > 0 {
			assert.LessOrEqual(t, strings.ToLower(matches.Data[i-1].Name), strings.ToLower(item.Name))
		}
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/teams?search=atlantis", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeEnvelope[[]teamDTO](t, rec).Data)
}

func TestHandler_GetTeamRoster(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(t, nil), http.MethodGet, "/v1/teams/argentina/roster", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeEnvelope[rosterDTO](t, rec)
	assert.Equal(t, "Argentina", got.Data.Team.Name)
	assert.Equal(t, "4-2-3-1", got.Data.Formation)
	assert.Len(t, got.Data.Players, 23)
	assert.Len(t, got.Data.StartingXI, 11)
	assert.Equal(t, 1, got.Data.StartingXI[0].Number)
}

func TestHandler_RefreshTeamRoster(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	source := memory.NewPlayerRepository(memory.SeedRosters())
	playerRepo := cacherepo.NewPlayerRepository(source, cache.NewStore(time.Minute))
	lineups := usecase.NewLineupService(teamRepo, playerRepo, usecase.LineupConfig{}, nil)
	router := NewRouter(NewHandler(
		usecase.NewTeamService(teamRepo, playerRepo),
		lineups,
		usecase.NewMatchupService(teamRepo, lineups, nil, nil),
		logging.NewNop(),
	), logging.NewNop(), false, []string{"*"})

	rec := doRequest(t, router, http.MethodGet, "/v1/teams/qatar/roster", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeEnvelope[rosterDTO](t, rec).Data.Players, 23)

	source.ReplaceRoster(ctx, "Qatar", []player.Player{{Number: 1, Name: "Barsham", Position: "GK"}})

	rec = doRequest(t, router, http.MethodGet, "/v1/teams/qatar/roster", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeEnvelope[rosterDTO](t, rec).Data.Players, 23)

	rec = doRequest(t, router, http.MethodPost, "/v1/teams/qatar/roster/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)
	refreshed := decodeEnvelope[rosterDTO](t, rec)
	assert.Equal(t, "Qatar", refreshed.Data.Team.Name)
	require.Len(t, refreshed.Data.Players, 1)
	assert.Equal(t, "Barsham", refreshed.Data.Players[0].Name)

	rec = doRequest(t, router, http.MethodPost, "/v1/teams/narnia/roster/refresh", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_RefreshAllRosters(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(t, nil), http.MethodPost, "/v1/rosters/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeEnvelope[rosterRefreshDTO](t, rec)
	assert.Equal(t, "all", got.Data.Scope)
	assert.False(t, got.Data.Cleared)

	rec = doRequest(t, newTestRouter(t, nil), http.MethodGet, "/v1/rosters/refresh", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandler_GetStartingXI_TargetPolicy(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(t, nil), http.MethodGet, "/v1/teams/Argentina/starting-xi", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeEnvelope[startingXIDTO](t, rec)
	lineup := got.Data.Lineup
	assert.Equal(t, "4-2-3-1", lineup.Formation)
	assert.Equal(t, "target", lineup.Policy)
	assert.Equal(t, 11, lineup.Count)
	assert.Len(t, lineup.Lines.Goalkeeper, 1)
	assert.Len(t, lineup.Lines.Defense, 4)
	require.NotNil(t, lineup.Lines.DefensiveMidfield)
	assert.Len(t, *lineup.Lines.DefensiveMidfield, 2)
	assert.Len(t, lineup.Lines.Midfield, 3)
	assert.Len(t, lineup.Lines.Attack, 1)
	assert.Equal(t, "GK", lineup.Lines.Goalkeeper[0].Line)
}

func TestHandler_GetStartingXI_NaturalPolicyOmitsDM(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(t, nil), http.MethodGet, "/v1/teams/Argentina/starting-xi?policy=natural", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.NotContains(t, rec.Body.String(), `"dm"`)

	got := decodeEnvelope[startingXIDTO](t, rec)
	assert.Equal(t, "4-3-3", got.Data.Lineup.Formation)
	assert.Equal(t, "natural", got.Data.Lineup.Policy)
	assert.Nil(t, got.Data.Lineup.Lines.DefensiveMidfield)
}

func TestHandler_GetStartingXI_Errors(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)
	tests := []struct {
		name   string
		target string
		status int
		reason string
	}{
		{name: "unknown team", target: "/v1/teams/Atlantis/starting-xi", status: http.StatusNotFound, reason: "notFound"},
		{name: "unknown policy", target: "/v1/teams/Spain/starting-xi?policy=greedy", status: http.StatusBadRequest, reason: "invalidInput"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodGet, tt.target, "")
			require.Equal(t, tt.status, rec.Code)

			got := decodeEnvelope[any](t, rec)
			require.NotNil(t, got.Error)
			require.Len(t, got.Error.Errors, 1)
			assert.Equal(t, tt.reason, got.Error.Errors[0].Reason)
			assert.Equal(t, errorDomain, got.Error.Errors[0].Domain)
		})
	}
}

func TestHandler_BuildLineup(t *testing.T) {
	t.Parallel()

	body := `{
		"policy": "natural",
		"players": [
			{"number": 9, "name": "Nine", "position": "striker"},
			{"number": 1, "name": "Keeper", "position": "Goalkeeper"},
			{"number": 4, "name": "Back", "position": "RCB", "club": "Club A"}
		]
	}`
	rec := doRequest(t, newTestRouter(t, nil), http.MethodPost, "/v1/lineups", body)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeEnvelope[lineupDTO](t, rec)
	assert.Equal(t, "1-0-1", got.Data.Formation)
	assert.Equal(t, 3, got.Data.Count)
	require.Len(t, got.Data.Lines.Goalkeeper, 1)
	assert.Equal(t, "1-Keeper", got.Data.Lines.Goalkeeper[0].Key)
	require.Len(t, got.Data.Lines.Defense, 1)
	assert.Equal(t, "CB", got.Data.Lines.Defense[0].NormalizedPosition)
	assert.Equal(t, "RCB", got.Data.Lines.Defense[0].Position)
	require.Len(t, got.Data.Lines.Attack, 1)
	assert.Equal(t, "ST", got.Data.Lines.Attack[0].NormalizedPosition)
}

func TestHandler_BuildLineup_EmptyRoster(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(t, nil), http.MethodPost, "/v1/lineups", `{"players": []}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dm":[]`)

	got := decodeEnvelope[lineupDTO](t, rec)
	assert.Equal(t, "0-0-0", got.Data.Formation)
	assert.Equal(t, 0, got.Data.Count)
	assert.Empty(t, got.Data.Lines.Goalkeeper)
}

func TestHandler_BuildLineup_InvalidBody(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "malformed json", body: `{"players": [`},
		{name: "unknown field", body: `{"players": [], "bench": []}`},
		{name: "missing player name", body: `{"players": [{"number": 1, "position": "GK"}]}`},
		{name: "zero number", body: `{"players": [{"number": 0, "name": "Zero"}]}`},
		{name: "unknown policy", body: `{"policy": "greedy", "players": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/v1/lineups", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_GetMatchup(t *testing.T) {
	t.Parallel()

	predictor := predictionmock.NewPredictor(t)
	predictor.
		On("PredictMatch", mock.Anything, prediction.MatchRequest{TeamA: "France", TeamB: "Morocco", NeutralSite: true}).
		Return(prediction.MatchPrediction{
			TeamA:           "France",
			TeamB:           "Morocco",
			TeamAWinProb:    52,
			DrawProb:        27,
			TeamBWinProb:    21,
			PredictedWinner: "France",
			Confidence:      prediction.ConfidenceMedium,
			NeutralSite:     true,
		}, nil).
		Once()

	rec := doRequest(t, newTestRouter(t, predictor), http.MethodGet, "/v1/matchups?team_a=france&team_b=Morocco&neutral_site=true", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeEnvelope[matchupDTO](t, rec)
	assert.Equal(t, "France", got.Data.TeamA.Team.Name)
	assert.Equal(t, "Morocco", got.Data.TeamB.Team.Name)
	assert.Equal(t, 11, got.Data.TeamA.Lineup.Count)
	require.NotNil(t, got.Data.Prediction)
	assert.Equal(t, 52, got.Data.Prediction.TeamAWinProb)
	assert.Equal(t, "medium", got.Data.Prediction.Confidence)
	assert.NotNil(t, got.Data.Prediction.Explanation)
}

func TestHandler_GetMatchup_WithoutPredictor(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(t, nil), http.MethodGet, "/v1/matchups?team_a=Spain&team_b=Japan", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"prediction":null`)
}

func TestHandler_GetMatchup_InvalidQuery(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)
	targets := []string{
		"/v1/matchups?team_a=Spain",
		"/v1/matchups?team_a=Spain&team_b=spain",
		"/v1/matchups?team_a=Spain&team_b=Japan&neutral_site=maybe",
		"/v1/matchups?team_a=Spain&team_b=Japan&policy=greedy",
	}
	for _, target := range targets {
		rec := doRequest(t, router, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestHandler_ScoreUpset(t *testing.T) {
	t.Parallel()

	predictor := predictionmock.NewPredictor(t)
	predictor.
		On("ScoreUpset", mock.Anything, prediction.UpsetRequest{TeamA: "Brazil", TeamB: "South Korea", ScoreA: 0, ScoreB: 2}).
		Return(prediction.UpsetResult{
			TeamA:           "Brazil",
			TeamB:           "South Korea",
			ScoreB:          2,
			UpsetScore:      78,
			ProjectedResult: "Brazil",
		}, nil).
		Once()

	body := `{"team_a": "brazil", "team_b": "south korea", "score_a": 0, "score_b": 2}`
	rec := doRequest(t, newTestRouter(t, predictor), http.MethodPost, "/v1/matchups/upset", body)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeEnvelope[upsetDTO](t, rec)
	assert.Equal(t, 78, got.Data.UpsetScore)
	assert.Equal(t, "Brazil", got.Data.ProjectedResult)
	assert.Empty(t, got.Data.Explanation)
}

func TestHandler_ScoreUpset_PredictorDisabled(t *testing.T) {
	t.Parallel()

	body := `{"team_a": "Brazil", "team_b": "Japan", "score_a": 1, "score_b": 1}`
	rec := doRequest(t, newTestRouter(t, nil), http.MethodPost, "/v1/matchups/upset", body)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	got := decodeEnvelope[any](t, rec)
	require.NotNil(t, got.Error)
	assert.Equal(t, "UNAVAILABLE", got.Error.Status)
}

func TestHandler_ScoreUpset_NegativeScore(t *testing.T) {
	t.Parallel()

	body := `{"team_a": "Brazil", "team_b": "Japan", "score_a": -1, "score_b": 1}`
	rec := doRequest(t, newTestRouter(t, nil), http.MethodPost, "/v1/matchups/upset", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_SwaggerDisabled(t *testing.T) {
	t.Parallel()

	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	playerRepo := memory.NewPlayerRepository(memory.SeedRosters())
	handler := NewHandler(usecase.NewTeamService(teamRepo, playerRepo), nil, nil, nil)
	router := NewRouter(handler, nil, false, nil)

	rec := doRequest(t, router, http.MethodGet, "/openapi.yaml", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/v1/teams", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ServesOpenAPI(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(t, nil), http.MethodGet, "/openapi.yaml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/v1/teams/{team}/starting-xi")
}

func TestRosterPlayerToDTO_AttributesAndPlaystyles(t *testing.T) {
	t.Parallel()

	dto := rosterPlayerToDTO(player.Player{
		Number:     10,
		Name:       "Pedri",
		Position:   "CM",
		Attributes: &player.Attributes{Acceleration: 80, ShortPassing: 90, TotalSkill: 420},
		Playstyles: []string{"Tiki Taka"},
	})
	require.NotNil(t, dto.Attributes)
	assert.Equal(t, 80, dto.Attributes.Acceleration)
	assert.Equal(t, 90, dto.Attributes.ShortPassing)
	assert.Equal(t, 420, dto.Attributes.TotalSkill)
	assert.Equal(t, []string{"Tiki Taka"}, dto.Playstyles)

	raw, err := sonic.Marshal(dto)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"short_passing":90`)
	assert.Contains(t, string(raw), `"playstyles":["Tiki Taka"]`)

	bare, err := sonic.Marshal(rosterPlayerToDTO(player.Player{Name: "Unai Simon", Position: "GK"}))
	require.NoError(t, err)
	assert.NotContains(t, string(bare), "attributes")
	assert.NotContains(t, string(bare), "playstyles")
}
