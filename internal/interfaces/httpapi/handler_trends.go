package httpapi

import "net/http"

func (h *Handler) GetTrends(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTrends")
	defer span.End()

	trends, err := h.trendsService.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get trends failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, trendsToDTO(trends))
}
