package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	idgen "github.com/riskibarqy/soccernow/internal/platform/id"
	"github.com/riskibarqy/soccernow/internal/platform/logging"
	"github.com/riskibarqy/soccernow/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// Services groups the use cases served over HTTP.
type Services struct {
	Roster  *usecase.RosterService
	Signup  *usecase.SignupService
	Archive *usecase.ArchiveService
	Game    *usecase.GameService
	Vote    *usecase.VoteService
	Comment *usecase.CommentService
	Trends  *usecase.TrendsService
	Player  *usecase.PlayerService
	Auth    *usecase.AuthService
}

type VoterCookieConfig struct {
	Secure bool
	IDs    idgen.Generator
}

type Handler struct {
	rosterService     *usecase.RosterService
	signupService     *usecase.SignupService
	archiveService    *usecase.ArchiveService
	gameService       *usecase.GameService
	voteService       *usecase.VoteService
	commentService    *usecase.CommentService
	trendsService     *usecase.TrendsService
	playerService     *usecase.PlayerService
	authService       *usecase.AuthService
	voterIDs          idgen.Generator
	voterCookieSecure bool
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(services Services, voter VoterCookieConfig, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if voter.IDs == nil {
		voter.IDs = idgen.NewHexGenerator()
	}

	return &Handler{
		rosterService:     services.Roster,
		signupService:     services.Signup,
		archiveService:    services.Archive,
		gameService:       services.Game,
		voteService:       services.Vote,
		commentService:    services.Comment,
		trendsService:     services.Trends,
		playerService:     services.Player,
		authService:       services.Auth,
		voterIDs:          voter.IDs,
		voterCookieSecure: voter.Secure,
		logger:            logger.Named("http"),
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeJSON(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeJSON")
	defer span.End()

	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func adminSubject(ctx context.Context) string {
	if p, ok := principalFromContext(ctx); ok {
		return p.Subject
	}
	return ""
}
