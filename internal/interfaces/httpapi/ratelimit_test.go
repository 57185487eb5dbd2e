package httpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestRateLimiter_PerClient(t *testing.T) {
	limiter := NewRateLimiter(1, 2, false)
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	if !limiter.Allow("10.0.0.1") || !limiter.Allow("10.0.0.1") {
		t.Fatalf("expected burst of two to be allowed")
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatalf("expected third request to be limited")
	}
	if !limiter.Allow("10.0.0.2") {
		t.Fatalf("expected other clients to have their own bucket")
	}

	now = now.Add(time.Second)
	if !limiter.Allow("10.0.0.1") {
		t.Fatalf("expected a token to refill after one second")
	}
}

func TestRateLimiter_PrunesIdleClients(t *testing.T) {
	limiter := NewRateLimiter(10, 1, false)
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	for i := range rateLimitCleanupThreshold + 1 {
		limiter.Allow(string(rune('a'+i%26)) + time.Duration(i).String())
	}
	now = now.Add(rateLimitMaxIdle + time.Minute)
	limiter.Allow("fresh")

	if got := len(limiter.clients); got != 1 {
		t.Fatalf("expected idle clients pruned, %d left", got)
	}
}

func TestNewRateLimiter_DisabledWithoutRate(t *testing.T) {
	if NewRateLimiter(0, 5, false) != nil {
		t.Fatalf("expected nil limiter for a zero rate")
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	rec := httptest.NewRecorder()
	RateLimit(nil, next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/signups", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected passthrough, got %d", rec.Code)
	}
}

func TestRateLimit_UsesForwardedClientIPBehindTrustedProxy(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1, true)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RateLimit(limiter, next)

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/signups", nil)
		req.Header.Set("X-Forwarded-For", ip+", 172.16.0.1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	if rec := send("203.0.113.7"); rec.Code != http.StatusNoContent {
		t.Fatalf("expected first request through, got %d", rec.Code)
	}
	rec := send("203.0.113.7")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
	if rec := send("198.51.100.9"); rec.Code != http.StatusNoContent {
		t.Fatalf("expected a different client through, got %d", rec.Code)
	}
}

func TestRateLimit_IgnoresForwardedHeadersByDefault(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1, false)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RateLimit(limiter, next)

	codes := make([]int, 0, 3)
	for _, spoofed := range []string{"203.0.113.1", "203.0.113.2", "203.0.113.3"} {
		req := httptest.NewRequest(http.MethodPost, "/v1/signups", nil)
		req.RemoteAddr = "198.51.100.20:40000"
		req.Header.Set("X-Forwarded-For", spoofed)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusNoContent {
		t.Fatalf("expected first request through, got %d", codes[0])
	}
	if codes[1] != http.StatusTooManyRequests || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected rotating X-Forwarded-For to share one bucket, got %v", codes)
	}
}

func TestRateLimiter_PrunesAtMostOncePerIdleWindow(t *testing.T) {
	limiter := NewRateLimiter(10, 1, false)
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	stale := now.Add(-2 * rateLimitMaxIdle)
	for i := range rateLimitCleanupThreshold + 1 {
		limiter.clients[fmt.Sprintf("stale-%d", i)] = &clientLimiter{
			limiter:  rate.NewLimiter(limiter.limit, limiter.burst),
			lastSeen: stale,
		}
	}
	limiter.lastPrune = now.Add(-time.Minute)

	limiter.Allow("recent")
	if got := len(limiter.clients); got != rateLimitCleanupThreshold+2 {
		t.Fatalf("expected no prune inside the idle window, %d clients", got)
	}

	now = now.Add(rateLimitMaxIdle)
	limiter.Allow("later")
	if got := len(limiter.clients); got != 2 {
		t.Fatalf("expected stale clients pruned, %d left", got)
	}
	if !limiter.lastPrune.Equal(now) {
		t.Fatalf("expected prune time recorded, got %s", limiter.lastPrune)
	}
}
