package cache

import (
	"context"
	"testing"
	"time"

	"giggles.com/cmd/model"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestProfileCache(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	pc := NewProfileCache(client, time.Minute)

	got, ver, err := pc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, ver)

	profile := &model.UserProfile{ID: "u1", Username: "alice", Aura: 7, Posts: 2, Followers: 3, Following: 1}
	stored, err := pc.Set(ctx, profile, ver)
	require.NoError(t, err)
	assert.True(t, stored)

	got, _, err = pc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, profile, got)

	mr.FastForward(2 * time.Minute)
	got, ver, err = pc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got, "entry should expire after ttl")

	_, err = pc.Set(ctx, profile, ver)
	require.NoError(t, err)
	_, err = pc.Set(ctx, &model.UserProfile{ID: "u2"}, 0)
	require.NoError(t, err)
	require.NoError(t, pc.Invalidate(ctx, "u1", "u2"))
	assert.False(t, mr.Exists("user:profile:u1"))
	assert.False(t, mr.Exists("user:profile:u2"))
	assert.Greater(t, mr.TTL("user:profile:ver:u1"), time.Duration(0))
	require.NoError(t, pc.Invalidate(ctx))
}

func TestProfileCacheSkipsStaleWrite(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	pc := NewProfileCache(client, time.Minute)

	// 读到版本号之后、写缓存之前发生了关注
	_, ver, err := pc.Get(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, pc.Invalidate(ctx, "u1"))

	stored, err := pc.Set(ctx, &model.UserProfile{ID: "u1", Followers: 0}, ver)
	require.NoError(t, err)
	assert.False(t, stored)
	assert.False(t, mr.Exists("user:profile:u1"))

	// 失效之后重新读到的版本可以写入
	_, ver, err = pc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), ver)
	stored, err = pc.Set(ctx, &model.UserProfile{ID: "u1", Followers: 1}, ver)
	require.NoError(t, err)
	assert.True(t, stored)
}

func TestProfileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	require.NoError(t, mr.Set("user:profile:u1", "not-json"))

	got, _, err := NewProfileCache(client, time.Minute).Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProfileCacheRedisDown(t *testing.T) {
	mr, client := newTestClient(t)
	mr.Close()

	_, _, err := NewProfileCache(client, time.Minute).Get(context.Background(), "u1")
	assert.Error(t, err)
}

func TestRateLimiter(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	rl := NewRateLimiter(client, 10, time.Minute)

	for i := 0; i < 10; i++ {
		ok, err := rl.Allow(ctx, "comment:u1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d should pass", i+1)
	}
	ok, err := rl.Allow(ctx, "comment:u1")
	require.NoError(t, err)
	assert.False(t, ok)

	// 其他用户不受影响
	ok, err = rl.Allow(ctx, "comment:u2")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(61 * time.Second)
	ok, err = rl.Allow(ctx, "comment:u1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRateLimiterKeyAlwaysExpires(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	rl := NewRateLimiter(client, 3, time.Minute)

	for i := 0; i < 5; i++ {
		_, err := rl.Allow(ctx, "comment:u1")
		require.NoError(t, err)
		ttl := mr.TTL("ratelimit:comment:u1")
		assert.Greater(t, ttl, time.Duration(0), "call %d left the counter without ttl", i+1)
		assert.LessOrEqual(t, ttl, time.Minute)
	}

	// 后续请求不会续期，窗口到点就结束
	mr.FastForward(30 * time.Second)
	_, err := rl.Allow(ctx, "comment:u1")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, mr.TTL("ratelimit:comment:u1"))

	mr.FastForward(31 * time.Second)
	assert.False(t, mr.Exists("ratelimit:comment:u1"))
	ok, err := rl.Allow(ctx, "comment:u1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRateLimiterRedisDown(t *testing.T) {
	mr, client := newTestClient(t)
	mr.Close()

	_, err := NewRateLimiter(client, 10, time.Minute).Allow(context.Background(), "comment:u1")
	assert.Error(t, err)
}
