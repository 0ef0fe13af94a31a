package cache

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/redis/go-redis/v9"
)

// NewClient 创建 Redis 客户端，Ping 失败只打日志，缓存层本身允许降级
func NewClient(addr, password string, db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		hlog.Warnf("redis %s not reachable: %v", addr, err)
	} else {
		hlog.Info("Connect Redis Success")
	}
	return client
}
