package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/soccernow/internal/usecase"
)

const (
	voterCookieName   = "soccer_voter_id"
	voterCookieMaxAge = 365 * 24 * 60 * 60
	maxVoterIDLength  = 128
)

func voterIDFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(voterCookieName)
	if err != nil {
		return ""
	}
	value := strings.TrimSpace(cookie.Value)
	if len(value) > maxVoterIDLength {
		return ""
	}
	return value
}

// issueVoterID returns the caller's voter id, minting one and setting the
// cookie when the request carries none.
func (h *Handler) issueVoterID(w http.ResponseWriter, r *http.Request) (string, error) {
	if id := voterIDFromRequest(r); id != "" {
		return id, nil
	}

	id, err := h.voterIDs.NewID()
	if err != nil {
		return "", fmt.Errorf("%w: generate voter id: %v", usecase.ErrDependencyUnavailable, err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     voterCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   voterCookieMaxAge,
		HttpOnly: true,
		Secure:   h.voterCookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}
