package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/soccernow/internal/usecase"
)

func (h *Handler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitVote")
	defer span.End()

	var req submitVoteRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	voterID, err := h.issueVoterID(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	v, err := h.voteService.Submit(ctx, usecase.SubmitVoteInput{
		GameID:     gameID,
		PlayerName: req.PlayerName,
		Team:       req.Team,
		Rating:     req.Rating,
		VoterID:    voterID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit vote failed", "game_id", gameID, "player", req.PlayerName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, voteToDTO(v))
}

func (h *Handler) RemoveVote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveVote")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	playerName := r.PathValue("playerName")
	if err := h.voteService.Remove(ctx, gameID, playerName, voterIDFromRequest(r)); err != nil {
		h.logger.WarnContext(ctx, "remove vote failed", "game_id", gameID, "player", playerName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"gameId": gameID, "playerName": playerName})
}

func (h *Handler) GetGameRatings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameRatings")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	ratings, err := h.voteService.Ratings(ctx, gameID, voterIDFromRequest(r))
	if err != nil {
		h.logger.WarnContext(ctx, "get game ratings failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameRatingsDTO{
		Ratings:   summariesToDTO(ratings.Ratings),
		MyRatings: nonNilRatings(ratings.MyRatings),
	})
}

func (h *Handler) GetMyRatings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyRatings")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	mine, err := h.voteService.MyRatings(ctx, gameID, voterIDFromRequest(r))
	if err != nil {
		h.logger.WarnContext(ctx, "get my ratings failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"myRatings": nonNilRatings(mine)})
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	gameID := strings.TrimSpace(r.URL.Query().Get("gameId"))
	board, err := h.voteService.Leaderboard(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardDTO{
		Best:  summariesToDTO(board.Best),
		Worst: summariesToDTO(board.Worst),
		All:   summariesToDTO(board.All),
	})
}

func (h *Handler) MigrateVotes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MigrateVotes")
	defer span.End()

	var req migrateRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	migrated, err := h.voteService.Migrate(ctx, usecase.MigrateInput{FromGameID: req.FromGameID, ToGameID: req.ToGameID})
	if err != nil {
		h.logger.WarnContext(ctx, "migrate votes failed", "from", req.FromGameID, "to", req.ToGameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "votes migrated", "from", req.FromGameID, "to", req.ToGameID, "count", migrated, "admin", adminSubject(ctx))
	writeSuccess(ctx, w, http.StatusOK, migrateResultDTO{FromGameID: req.FromGameID, ToGameID: req.ToGameID, Migrated: migrated})
}

func nonNilRatings(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}
