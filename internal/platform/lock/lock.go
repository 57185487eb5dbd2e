// Package lock provides best-effort named mutual exclusion with expiry.
package lock

import (
	"context"
	"sync"
	"time"
)

// Release gives up a held lock. Releasing an expired or stolen lock is a no-op.
type Release func(ctx context.Context) error

// Locker acquires a named lock without blocking.
// acquired is false when another holder owns key.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (release Release, acquired bool, err error)
}

type localHold struct {
	token     uint64
	expiresAt time.Time
}

// Local is an in-process Locker.
type Local struct {
	mu    sync.Mutex
	held  map[string]localHold
	next  uint64
	clock func() time.Time
}

func NewLocal() *Local {
	return &Local{
		held:  make(map[string]localHold),
		clock: time.Now,
	}
}

func (l *Local) TryLock(_ context.Context, key string, ttl time.Duration) (Release, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if h, ok := l.held[key]; ok && (ttl <= 0 || h.expiresAt.After(now)) {
		return nil, false, nil
	}

	l.next++
	token := l.next
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = now.Add(ttl)
	}
	l.held[key] = localHold{token: token, expiresAt: expiresAt}

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if h, ok := l.held[key]; ok && h.token == token {
			delete(l.held, key)
		}
		return nil
	}, true, nil
}
