package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{team}/roster", handler.GetTeamRoster)
	mux.HandleFunc("GET /v1/teams/{team}/starting-xi", handler.GetStartingXI)
	mux.HandleFunc("POST /v1/teams/{team}/roster/refresh", handler.RefreshTeamRoster)
	mux.HandleFunc("POST /v1/rosters/refresh", handler.RefreshAllRosters)
}

func registerLineupRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/lineups", handler.BuildLineup)
}

func registerMatchupRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matchups", handler.GetMatchup)
	mux.HandleFunc("POST /v1/matchups/upset", handler.ScoreUpset)
}
