package lock

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/soccernow/internal/platform/id"
)

func TestLocal_TryLock(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 12, 8, 0, 0, 0, time.UTC)
	l := NewLocal()
	l.clock = func() time.Time { return now }
	ctx := t.Context()

	release, ok, err := l.TryLock(ctx, "archive:2024-01-11", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first lock: ok=%v err=%v", ok, err)
	}
	if _, ok, _ := l.TryLock(ctx, "archive:2024-01-11", time.Minute); ok {
		t.Fatalf("second lock must not be acquired while held")
	}
	if _, ok, _ := l.TryLock(ctx, "archive:2024-01-04", time.Minute); !ok {
		t.Fatalf("different key should be independent")
	}

	if err := release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	release2, ok, _ := l.TryLock(ctx, "archive:2024-01-11", time.Minute)
	if !ok {
		t.Fatalf("lock should be free after release")
	}

	// the stale release must not drop the new holder
	_ = release(ctx)
	if _, ok, _ := l.TryLock(ctx, "archive:2024-01-11", time.Minute); ok {
		t.Fatalf("stale release freed a newer holder")
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := l.TryLock(ctx, "archive:2024-01-11", time.Minute); !ok {
		t.Fatalf("expired lock should be reacquirable")
	}
	_ = release2
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedis_TryLock(t *testing.T) {
	t.Parallel()

	mr, client := newMiniredisClient(t)
	l := NewRedis(client, id.Static("token-a"))
	ctx := t.Context()

	release, ok, err := l.TryLock(ctx, "archive:2024-01-11", 30*time.Second)
	if err != nil || !ok {
		t.Fatalf("first lock: ok=%v err=%v", ok, err)
	}
	if got, _ := mr.Get("soccernow:lock:archive:2024-01-11"); got != "token-a" {
		t.Fatalf("unexpected stored token %q", got)
	}
	if ttl := mr.TTL("soccernow:lock:archive:2024-01-11"); ttl != 30*time.Second {
		t.Fatalf("unexpected ttl %s", ttl)
	}

	other := NewRedis(client, id.Static("token-b"))
	if _, ok, err := other.TryLock(ctx, "archive:2024-01-11", 30*time.Second); err != nil || ok {
		t.Fatalf("contended lock: ok=%v err=%v", ok, err)
	}

	if err := release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	if mr.Exists("soccernow:lock:archive:2024-01-11") {
		t.Fatalf("key should be deleted on release")
	}
}

func TestRedis_ReleaseDoesNotDropForeignHolder(t *testing.T) {
	t.Parallel()

	mr, client := newMiniredisClient(t)
	ctx := t.Context()

	release, ok, err := NewRedis(client, id.Static("token-a")).TryLock(ctx, "k", time.Second)
	if err != nil || !ok {
		t.Fatalf("first lock: ok=%v err=%v", ok, err)
	}

	mr.FastForward(2 * time.Second)
	if _, ok, err := NewRedis(client, id.Static("token-b")).TryLock(ctx, "k", time.Minute); err != nil || !ok {
		t.Fatalf("lock after expiry: ok=%v err=%v", ok, err)
	}

	if err := release(ctx); err != nil {
		t.Fatalf("stale release: %v", err)
	}
	if got, _ := mr.Get("soccernow:lock:k"); got != "token-b" {
		t.Fatalf("foreign holder was dropped, key=%q", got)
	}
}

func TestRedis_RejectsNonPositiveTTL(t *testing.T) {
	t.Parallel()

	_, client := newMiniredisClient(t)
	if _, _, err := NewRedis(client, nil).TryLock(t.Context(), "k", 0); err == nil {
		t.Fatalf("expected ttl error")
	}
}

func TestNewRedisClient(t *testing.T) {
	t.Parallel()

	if _, err := NewRedisClient("redis://localhost:6379/0"); err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if _, err := NewRedisClient("http://nope"); err == nil {
		t.Fatalf("expected invalid scheme error")
	}
}
