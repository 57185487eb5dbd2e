package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/soccernow/internal/domain/user"
	"github.com/riskibarqy/soccernow/internal/usecase"
)

func newTestAuthority(t *testing.T, now time.Time) *Authority {
	t.Helper()

	a, err := NewAuthority("test-secret", "soccernow", time.Hour)
	if err != nil {
		t.Fatalf("new authority: %v", err)
	}
	a.now = func() time.Time { return now }
	return a
}

func TestAuthority_IssueAndVerify(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC)
	a := newTestAuthority(t, now)

	token, expiresAt, err := a.Issue("admin", user.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !expiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry: %s", expiresAt)
	}

	principal, err := a.VerifyAccessToken(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if principal.Subject != "admin" || !principal.IsAdmin() || principal.Issuer != "soccernow" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestAuthority_RejectsExpiredToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC)
	a := newTestAuthority(t, now)
	token, _, err := a.Issue("admin", user.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	a.now = func() time.Time { return now.Add(2 * time.Hour) }
	if _, err := a.VerifyAccessToken(context.Background(), token); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthority_RejectsForeignSecretAndRole(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC)
	a := newTestAuthority(t, now)

	other, err := NewAuthority("other-secret", "soccernow", time.Hour)
	if err != nil {
		t.Fatalf("new authority: %v", err)
	}
	other.now = a.now
	foreign, _, err := other.Issue("admin", user.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := a.VerifyAccessToken(context.Background(), foreign); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected foreign secret to be rejected, got %v", err)
	}

	viewer, _, err := a.Issue("someone", user.Role("viewer"))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := a.VerifyAccessToken(context.Background(), viewer); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected non-admin role to be rejected, got %v", err)
	}
}

func TestAuthority_RejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC)
	a := newTestAuthority(t, now)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims{
		Role: string(user.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			Issuer:    "soccernow",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := a.VerifyAccessToken(context.Background(), token); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected none algorithm to be rejected, got %v", err)
	}
}

func TestNewAuthority_RequiresSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewAuthority(" ", "x", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
