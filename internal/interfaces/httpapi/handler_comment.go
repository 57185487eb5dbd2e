package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/soccernow/internal/usecase"
)

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListComments")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	comments, err := h.commentService.List(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "list comments failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]commentDTO, 0, len(comments))
	for _, c := range comments {
		items = append(items, commentToDTO(c))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddComment")
	defer span.End()

	var req addCommentRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	c, err := h.commentService.Add(ctx, usecase.AddCommentInput{
		GameID:     gameID,
		AuthorName: req.AuthorName,
		Content:    req.Content,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add comment failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, commentToDTO(c))
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteComment")
	defer span.End()

	commentID := strings.TrimSpace(r.PathValue("commentID"))
	if err := h.commentService.Delete(ctx, commentID); err != nil {
		h.logger.WarnContext(ctx, "delete comment failed", "comment_id", commentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "comment deleted", "comment_id", commentID, "admin", adminSubject(ctx))
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": commentID})
}

func (h *Handler) MigrateComments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MigrateComments")
	defer span.End()

	var req migrateRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	migrated, err := h.commentService.Migrate(ctx, usecase.MigrateInput{FromGameID: req.FromGameID, ToGameID: req.ToGameID})
	if err != nil {
		h.logger.WarnContext(ctx, "migrate comments failed", "from", req.FromGameID, "to", req.ToGameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, migrateResultDTO{FromGameID: req.FromGameID, ToGameID: req.ToGameID, Migrated: migrated})
}
