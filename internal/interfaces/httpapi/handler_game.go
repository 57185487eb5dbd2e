package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/soccernow/internal/usecase"
)

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	games, err := h.gameService.ListRecent(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list games failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(g))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	g, err := h.gameService.Get(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(g))
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGame")
	defer span.End()

	var req createGameRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	g, err := h.gameService.Create(ctx, usecase.CreateGameInput{
		GameDate:    req.GameDate,
		WhiteRoster: rosterEntriesFromRequest(req.WhiteTeam),
		DarkRoster:  rosterEntriesFromRequest(req.DarkTeam),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create game failed", "game_id", req.GameDate, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gameToDTO(g))
}

func (h *Handler) ArchiveCurrentGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ArchiveCurrentGame")
	defer span.End()

	g, err := h.archiveService.ArchiveCurrent(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "archive current game failed", "admin", adminSubject(ctx), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gameToDTO(g))
}

func (h *Handler) ArchivePastGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ArchivePastGame")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	g, err := h.archiveService.ArchivePast(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "archive past game failed", "game_id", gameID, "admin", adminSubject(ctx), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gameToDTO(g))
}

func (h *Handler) UpdateGameScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateGameScore")
	defer span.End()

	var req updateScoreRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	score, err := h.gameService.UpdateScore(ctx, usecase.UpdateScoreInput{
		GameDate: gameID,
		White:    *req.White,
		Dark:     *req.Dark,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update game score failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, finalScoreToDTO(&score))
}
