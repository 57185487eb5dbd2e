package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/soccernow/internal/domain/user"
	"github.com/riskibarqy/soccernow/internal/platform/logging"
	"golang.org/x/crypto/bcrypt"
)

type stubIssuer struct {
	subject string
	role    user.Role
}

func (s *stubIssuer) Issue(subject string, role user.Role) (string, time.Time, error) {
	s.subject = subject
	s.role = role
	return "signed-token", time.Date(2024, time.January, 12, 20, 0, 0, 0, time.UTC), nil
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	issuer := &stubIssuer{}
	svc := NewAuthService("admin", string(hash), issuer, logging.NewNop())

	token, err := svc.Login(context.Background(), "admin", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token.Token != "signed-token" || issuer.role != user.RoleAdmin || issuer.subject != "admin" {
		t.Fatalf("unexpected token %+v issued for %s/%s", token, issuer.subject, issuer.role)
	}

	tests := []struct {
		name     string
		username string
		password string
		want     error
	}{
		{name: "wrong password", username: "admin", password: "battery staple", want: ErrUnauthorized},
		{name: "wrong user", username: "root", password: "correct horse", want: ErrUnauthorized},
		{name: "missing password", username: "admin", password: "", want: ErrInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Login(context.Background(), tc.username, tc.password); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthService_LoginNotConfigured(t *testing.T) {
	t.Parallel()

	svc := NewAuthService("", "", nil, nil)
	if _, err := svc.Login(context.Background(), "admin", "x"); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
