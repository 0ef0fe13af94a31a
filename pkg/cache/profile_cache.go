package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"giggles.com/cmd/model"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/redis/go-redis/v9"
)

// 缓存键名常量
const (
	// 用户主页聚合数据
	UserProfileKey = "user:profile:%s"
	// 主页数据版本号，每次失效加一
	UserProfileVersionKey = "user:profile:ver:%s"
)

// 版本号比数据活得久，读到版本后慢慢算完的请求也能被正确拦下
const versionTTL = 24 * time.Hour

// VersionedClient WATCH 需要具体的客户端，Cmdable 不包含它
type VersionedClient interface {
	redis.Cmdable
	Watch(ctx context.Context, fn func(*redis.Tx) error, keys ...string) error
}

// ProfileCache 用户主页聚合数据缓存(posts/followers/following)。
// Get 同时返回版本号，Set 只在版本号未变化时写入，
// 这样读到旧计数的请求不会覆盖失效之后的状态
type ProfileCache struct {
	client VersionedClient
	ttl    time.Duration
}

func NewProfileCache(client VersionedClient, ttl time.Duration) *ProfileCache {
	return &ProfileCache{client: client, ttl: ttl}
}

// Get 未命中时返回 nil 和当前版本号；缓存内容损坏按未命中处理
func (pc *ProfileCache) Get(ctx context.Context, userID string) (*model.UserProfile, int64, error) {
	pipe := pc.client.Pipeline()
	dataCmd := pipe.Get(ctx, fmt.Sprintf(UserProfileKey, userID))
	verCmd := pipe.Get(ctx, fmt.Sprintf(UserProfileVersionKey, userID))
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, 0, fmt.Errorf("failed to get cached profile: %w", err)
	}

	version, err := verCmd.Int64()
	if err != nil && err != redis.Nil {
		return nil, 0, fmt.Errorf("failed to parse profile version: %w", err)
	}

	data, err := dataCmd.Bytes()
	if err == redis.Nil {
		return nil, version, nil // 缓存未命中
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get cached profile: %w", err)
	}
	var profile model.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		hlog.CtxWarnf(ctx, "drop corrupt profile cache of %s: %v", userID, err)
		return nil, version, nil
	}
	return &profile, version, nil
}

// Set 版本号已被 Invalidate 改动时放弃写入，返回 false
func (pc *ProfileCache) Set(ctx context.Context, profile *model.UserProfile, version int64) (bool, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return false, fmt.Errorf("failed to marshal profile: %w", err)
	}
	verKey := fmt.Sprintf(UserProfileVersionKey, profile.ID)

	stored := false
	err = pc.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, verKey).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, fmt.Sprintf(UserProfileKey, profile.ID), data, pc.ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, verKey)
	if err == redis.TxFailedErr {
		// WATCH 期间被失效
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to set cached profile: %w", err)
	}
	return stored, nil
}

// Invalidate 删除若干用户的主页缓存并推进版本号
func (pc *ProfileCache) Invalidate(ctx context.Context, userIDs ...string) error {
	if len(userIDs) == 0 {
		return nil
	}
	_, err := pc.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range userIDs {
			verKey := fmt.Sprintf(UserProfileVersionKey, id)
			pipe.Incr(ctx, verKey)
			pipe.Expire(ctx, verKey, versionTTL)
			pipe.Del(ctx, fmt.Sprintf(UserProfileKey, id))
		}
		return nil
	})
	return err
}
