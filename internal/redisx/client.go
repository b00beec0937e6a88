package redisx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	r := redis.NewClient(&redis.Options{Addr: addr})
	return r.WithTimeout(2 * time.Second)
}

// CacheStatus stores the serialized status body for an order. A nil client
// (cache disabled) is a no-op.
func CacheStatus(ctx context.Context, rdb *redis.Client, orderID string, body []byte) {
	if rdb == nil {
		return
	}
	_ = rdb.Set(ctx, KeyOrderStatus(orderID), body, TTLStatusCache).Err()
}

// CachedStatus returns the cached status body, or "" on miss/disabled cache.
func CachedStatus(ctx context.Context, rdb *redis.Client, orderID string) string {
	if rdb == nil {
		return ""
	}
	s, err := rdb.Get(ctx, KeyOrderStatus(orderID)).Result()
	if err != nil {
		return ""
	}
	return s
}
