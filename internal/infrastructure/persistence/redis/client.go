// Package redis 缓存层:公开追踪接口的Cache-Aside实现
package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/shiptrack/internal/infrastructure/config"
)

// 键空间约定:所有键以"shiptrack"为前缀,按 域:维度:值 分段
// 例:shiptrack:shipment:tracking:ST1756600000123456
const keyPrefix = "shiptrack"

// Key 按约定拼接缓存键
func Key(parts ...string) string {
	return keyPrefix + ":" + strings.Join(parts, ":")
}

// NewClient 创建Redis客户端并探活
// 探活用拨号超时限定:Redis不可用时启动快速失败,
// 而不是把第一次公开追踪请求变成超时
func NewClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	timeout := cfg.Redis.DialTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis连接失败(%s): %w", cfg.Redis.Addr(), err)
	}

	fmt.Printf("✓ Redis连接成功: %s\n", cfg.Redis.Addr())
	return client, nil
}
