package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const RateLimitKey = "ratelimit:%s"

// RateLimiter 固定窗口计数限流
type RateLimiter struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
}

func NewRateLimiter(client redis.Cmdable, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

// Allow 窗口内第 limit+1 次起返回 false。
// SET NX EX 与 INCR 在同一个 MULTI 里执行，计数键创建时就带着过期时间，INCR 不会改动 TTL
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := fmt.Sprintf(RateLimitKey, key)

	var incr *redis.IntCmd
	_, err := rl.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, k, 0, rl.window)
		incr = pipe.Incr(ctx, k)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to increment rate counter: %w", err)
	}
	return incr.Val() <= rl.limit, nil
}
