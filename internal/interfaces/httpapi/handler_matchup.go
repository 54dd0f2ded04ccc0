package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/darkscore-api/internal/usecase"
)

func (h *Handler) GetMatchup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchup")
	defer span.End()

	query := r.URL.Query()
	neutral, err := parseBoolQuery(query.Get("neutral_site"), "neutral_site")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	req := matchupQuery{
		TeamA:       strings.TrimSpace(query.Get("team_a")),
		TeamB:       strings.TrimSpace(query.Get("team_b")),
		Policy:      query.Get("policy"),
		NeutralSite: neutral,
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchup, err := h.matchupService.GetMatchup(ctx, usecase.MatchupInput{
		TeamA:       req.TeamA,
		TeamB:       req.TeamB,
		Policy:      req.Policy,
		NeutralSite: req.NeutralSite,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "get matchup failed",
			"team_a", req.TeamA,
			"team_b", req.TeamB,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchupDTO{
		TeamA:      startingXIToDTO(matchup.TeamA),
		TeamB:      startingXIToDTO(matchup.TeamB),
		Prediction: predictionToDTO(matchup.Prediction),
	})
}

func (h *Handler) ScoreUpset(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScoreUpset")
	defer span.End()

	var req upsetRequest
	if err := decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matchupService.ScoreUpset(ctx, usecase.UpsetInput{
		TeamA:       req.TeamA,
		TeamB:       req.TeamB,
		ScoreA:      req.ScoreA,
		ScoreB:      req.ScoreB,
		NeutralSite: req.NeutralSite,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "score upset failed",
			"team_a", req.TeamA,
			"team_b", req.TeamB,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, upsetToDTO(result))
}
