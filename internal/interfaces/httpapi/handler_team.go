package httpapi

import (
	"net/http"

	"github.com/riskibarqy/darkscore-api/internal/usecase"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	search := r.URL.Query().Get("search")
	items, err := h.teamService.ListTeams(ctx, search)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "search", search, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRoster")
	defer span.End()

	teamName := r.PathValue("team")
	roster, err := h.teamService.GetRoster(ctx, teamName)
	if err != nil {
		h.logger.WarnContext(ctx, "get team roster failed", "team", teamName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(roster))
}

func (h *Handler) RefreshTeamRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshTeamRoster")
	defer span.End()

	teamName := r.PathValue("team")
	roster, err := h.teamService.RefreshRoster(ctx, teamName)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh team roster failed", "team", teamName, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "team roster refreshed", "team", roster.Team.Name, "players", len(roster.Players))
	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(roster))
}

func (h *Handler) RefreshAllRosters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshAllRosters")
	defer span.End()

	cleared := h.teamService.RefreshAllRosters(ctx)
	h.logger.InfoContext(ctx, "roster cache cleared", "cleared", cleared)
	writeSuccess(ctx, w, http.StatusOK, rosterRefreshDTO{Scope: "all", Cleared: cleared})
}

func (h *Handler) GetStartingXI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStartingXI")
	defer span.End()

	query := r.URL.Query()
	input := usecase.StartingXIInput{
		Team:      r.PathValue("team"),
		Policy:    query.Get("policy"),
		Formation: query.Get("formation"),
	}

	xi, err := h.lineupService.GetStartingXI(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "get starting xi failed",
			"team", input.Team,
			"policy", input.Policy,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, startingXIToDTO(xi))
}
