package httpapi

import (
	"net/http"

	"github.com/riskibarqy/darkscore-api/internal/domain/player"
	"github.com/riskibarqy/darkscore-api/internal/usecase"
)

// BuildLineup arranges an ad-hoc roster posted by the client. Order matters:
// the first eleven players start.
func (h *Handler) BuildLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BuildLineup")
	defer span.End()

	var req buildLineupRequest
	if err := decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	players := make([]player.Player, 0, len(req.Players))
	for _, p := range req.Players {
		players = append(players, p.toDomain())
	}

	lineup, err := h.lineupService.BuildFromRoster(ctx, usecase.BuildInput{
		Players:   players,
		Policy:    req.Policy,
		Formation: req.Formation,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "build lineup failed",
			"players", len(players),
			"policy", req.Policy,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(lineup))
}
