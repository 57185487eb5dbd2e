package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_SharesConcurrentMisses(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "players", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for range workers {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(t.Context(), "player:list", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "players" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_Get_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(t.Context(), "game:list", 1)
	if _, ok := store.Get(t.Context(), "game:list"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(t.Context(), "game:list"); ok {
		t.Fatalf("expected expired entry to be dropped")
	}
}

func TestStore_Invalidate_KeysAndPrefixes(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := t.Context()
	store.Set(ctx, "game:list", 1)
	store.Set(ctx, "game:id:2024-01-11", 2)
	store.Set(ctx, "game:id:2024-01-18", 3)
	store.Set(ctx, "player:list", 4)

	store.Invalidate(ctx, "game:id:", "player:list")

	if _, ok := store.Get(ctx, "game:list"); !ok {
		t.Fatalf("expected game:list to survive")
	}
	for _, key := range []string{"game:id:2024-01-11", "game:id:2024-01-18", "player:list"} {
		if _, ok := store.Get(ctx, key); ok {
			t.Fatalf("expected %s to be invalidated", key)
		}
	}
}

func TestLoad_TypedValueAndErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	got, err := Load(t.Context(), store, "k", func(context.Context) ([]string, error) {
		return []string{"a"}, nil
	})
	if err != nil || len(got) != 1 {
		t.Fatalf("got %v err=%v", got, err)
	}

	loadErr := errors.New("store down")
	if _, err := Load(t.Context(), store, "other", func(context.Context) (int, error) {
		return 0, loadErr
	}); !errors.Is(err, loadErr) {
		t.Fatalf("expected loader error, got %v", err)
	}

	if _, err := Load(t.Context(), store, "k", func(context.Context) (int, error) {
		return 1, nil
	}); err == nil {
		t.Fatalf("expected type mismatch error")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
