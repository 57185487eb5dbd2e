package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/soccernow/internal/domain/user"
	"github.com/riskibarqy/soccernow/internal/platform/logging"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs access tokens for authenticated callers.
type TokenIssuer interface {
	Issue(subject string, role user.Role) (token string, expiresAt time.Time, err error)
}

type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService exchanges the admin credentials for an access token.
type AuthService struct {
	username     string
	passwordHash []byte
	issuer       TokenIssuer
	logger       *logging.Logger
}

func NewAuthService(username, passwordHash string, issuer TokenIssuer, logger *logging.Logger) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AuthService{
		username:     strings.TrimSpace(username),
		passwordHash: []byte(strings.TrimSpace(passwordHash)),
		issuer:       issuer,
		logger:       logger.Named("auth"),
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (AccessToken, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	if s.username == "" || len(s.passwordHash) == 0 || s.issuer == nil {
		return AccessToken{}, fmt.Errorf("%w: admin login is not configured", ErrDependencyUnavailable)
	}
	if strings.TrimSpace(username) == "" || password == "" {
		return AccessToken{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	userMatch := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userMatch || passwordErr != nil {
		s.logger.WarnContext(ctx, "admin login rejected", "username", username)
		return AccessToken{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, expiresAt, err := s.issuer.Issue(s.username, user.RoleAdmin)
	if err != nil {
		return AccessToken{}, fmt.Errorf("issue access token: %w", err)
	}

	s.logger.InfoContext(ctx, "admin token issued", "username", s.username, "expires_at", expiresAt)
	return AccessToken{Token: token, ExpiresAt: expiresAt}, nil
}
