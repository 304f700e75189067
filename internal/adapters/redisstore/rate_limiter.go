package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateKeyPrefix = "rate:"

// Fixed-window counter: at most Limit events per key per Window.
type RateLimiter struct {
	Client *redis.Client
	Limit  int64
	Window time.Duration
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = time.Hour
	}
	return &RateLimiter{Client: client, Limit: int64(limit), Window: window}
}

func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.Client == nil {
		return false, errors.New("rate limiter: redis client is nil")
	}
	if l.Limit <= 0 {
		return true, nil
	}

	k := rateKeyPrefix + key

	// INCR and EXPIRE NX run as one MULTI/EXEC so a counter never outlives
	// its window; NX also restores a TTL lost on an earlier hit.
	var incr *redis.IntCmd
	_, err := l.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, l.Window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}

	return incr.Val() <= l.Limit, nil
}
