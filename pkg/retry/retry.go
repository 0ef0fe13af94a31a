// Package retry 提供有界、固定间隔的重试组合子，用于容忍存储的读写延迟。
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
)

var errNotSettled = errors.New("value not settled")

// Policy 重试策略：最多 Attempts 次，每次间隔 Delay（不做指数退避）
type Policy struct {
	Attempts int
	Delay    time.Duration
}

// Value 反复调用 fn 直到 accept 返回 true 或次数用尽。
// 返回最后一次成功读取到的值；只有一次都没读成功时才返回错误。
// accept 为 nil 时，任何一次成功读取都被接受。
func Value[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error), accept func(T) bool) (T, error) {
	var (
		last    T
		lastErr error
		have    bool
	)

	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.Delay), uint64(attempts-1)),
		ctx,
	)

	_ = backoff.Retry(func() error {
		v, err := fn(ctx)
		if err != nil {
			lastErr = err
			return err
		}
		last, have = v, true
		if accept != nil && !accept(v) {
			return errNotSettled
		}
		return nil
	}, b)

	if !have {
		if lastErr == nil {
			lastErr = ctx.Err()
		}
		return last, lastErr
	}
	return last, nil
}
