package httpapi

import (
	"net/http"
	"strconv"
)

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	debug, _ := strconv.ParseBool(r.URL.Query().Get("debug"))
	view, err := h.rosterService.View(ctx, debug)
	if err != nil {
		h.logger.ErrorContext(ctx, "get roster failed", "debug", debug, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(view))
}

func (h *Handler) GetOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOdds")
	defer span.End()

	odds, err := h.rosterService.Odds(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get odds failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, oddsDTO{
		ThursdayID: odds.ThursdayID,
		WhiteTeam:  teamSnapshotToDTO(odds.White),
		DarkTeam:   teamSnapshotToDTO(odds.Dark),
	})
}
