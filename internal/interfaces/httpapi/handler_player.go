package httpapi

import (
	"net/http"

	"github.com/riskibarqy/soccernow/internal/domain/player"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, fallback, err := h.playerService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerListDTO{Players: playersToDTO(players), Fallback: fallback})
}

func (h *Handler) ReplacePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplacePlayers")
	defer span.End()

	var req replacePlayersRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	players := make([]player.Player, 0, len(req.Players))
	for _, item := range req.Players {
		players = append(players, item.toPlayer())
	}

	saved, err := h.playerService.ReplaceAll(ctx, players)
	if err != nil {
		h.logger.WarnContext(ctx, "replace players failed", "count", len(players), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerListDTO{Players: playersToDTO(saved)})
}

func (h *Handler) AutoPopulatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AutoPopulatePlayer")
	defer span.End()

	var req autoPopulateRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, created, err := h.playerService.AutoPopulate(ctx, req.Name, req.VenmoName)
	if err != nil {
		h.logger.WarnContext(ctx, "auto populate player failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeSuccess(ctx, w, status, autoPopulateDTO{Player: playerToDTO(p), Created: created})
}

func (h *Handler) SyncPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncPlayers")
	defer span.End()

	result, err := h.playerService.SyncNew(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "sync players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerSyncDTO{
		NewPlayersFound: result.NewPlayersFound,
		PlayersCreated:  result.PlayersCreated,
		FailedCount:     result.FailedCount,
		WorkerCount:     result.WorkerCount,
		Players:         playersToDTO(result.Players),
	})
}
