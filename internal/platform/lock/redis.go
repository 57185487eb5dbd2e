package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/soccernow/internal/platform/id"
)

const defaultKeyPrefix = "soccernow:lock:"

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Locker shared by every replica talking to the same Redis.
type Redis struct {
	client *redis.Client
	prefix string
	tokens id.Generator
}

func NewRedis(client *redis.Client, tokens id.Generator) *Redis {
	if tokens == nil {
		tokens = id.NewHexGenerator()
	}
	return &Redis{
		client: client,
		prefix: defaultKeyPrefix,
		tokens: tokens,
	}
}

func (r *Redis) TryLock(ctx context.Context, key string, ttl time.Duration) (Release, bool, error) {
	if ttl <= 0 {
		return nil, false, fmt.Errorf("redis lock %q requires a positive ttl", key)
	}

	token, err := r.tokens.NewID()
	if err != nil {
		return nil, false, fmt.Errorf("generate lock token: %w", err)
	}

	fullKey := r.prefix + key
	ok, err := r.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire redis lock %q: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, r.client, []string{fullKey}, token).Err(); err != nil {
			return fmt.Errorf("release redis lock %q: %w", key, err)
		}
		return nil
	}, true, nil
}

// NewRedisClient parses a redis:// URL.
func NewRedisClient(rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}
