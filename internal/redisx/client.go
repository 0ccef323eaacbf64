package redisx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// Ping checks the connection so misconfiguration shows up at startup.
func Ping(ctx context.Context, rdb *redis.Client) error {
	return rdb.Ping(ctx).Err()
}

// MarkOnce sets key if it is absent and reports whether this call set it.
func MarkOnce(ctx context.Context, rdb *redis.Client, key string, ttl time.Duration) (bool, error) {
	return rdb.SetNX(ctx, key, "1", ttl).Result()
}

// Dedup remembers processed event ids for TTL.
type Dedup struct {
	Redis *redis.Client
	TTL   time.Duration
}

// First reports whether key is seen for the first time, marking it seen.
func (d Dedup) First(ctx context.Context, key string) (bool, error) {
	ttl := d.TTL
	if ttl <= 0 {
		ttl = TTLDedup
	}
	return MarkOnce(ctx, d.Redis, key, ttl)
}

// Forget clears key so a failed event can be retried.
func (d Dedup) Forget(ctx context.Context, key string) error {
	return d.Redis.Del(ctx, key).Err()
}
