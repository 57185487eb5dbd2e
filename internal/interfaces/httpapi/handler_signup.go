package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/soccernow/internal/usecase"
)

func (h *Handler) SubmitSignup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitSignup")
	defer span.End()

	var req submitSignupRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.signupService.Submit(ctx, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "submit signup failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	writeSuccess(ctx, w, status, signupResultDTO{
		Signup:       signupToDTO(result.Record),
		Created:      result.Created,
		AutoBalanced: result.AutoBalanced,
	})
}

func (h *Handler) SubmitSignupBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitSignupBatch")
	defer span.End()

	var req submitSignupBatchRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.SubmitSignupInput, 0, len(req.Signups))
	for _, item := range req.Signups {
		inputs = append(inputs, item.toInput())
	}

	records, err := h.signupService.SubmitBatch(ctx, inputs)
	if err != nil {
		h.logger.WarnContext(ctx, "submit signup batch failed", "count", len(inputs), "admin", adminSubject(ctx), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, signupsToDTO(records))
}

func (h *Handler) DeleteSignup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSignup")
	defer span.End()

	signupID := strings.TrimSpace(r.PathValue("signupID"))
	if err := h.signupService.Delete(ctx, signupID); err != nil {
		h.logger.WarnContext(ctx, "delete signup failed", "signup_id", signupID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "signup deleted", "signup_id", signupID, "admin", adminSubject(ctx))
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": signupID})
}
