package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Limiter 基于Redis的固定窗口计数限流器
type Limiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
	keyPrefix   string
}

// NewLimiter 创建限流器
func NewLimiter(client *redis.Client, maxAttempts int, window time.Duration, keyPrefix string) *Limiter {
	return &Limiter{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
		keyPrefix:   keyPrefix,
	}
}

// allowScript 原子地递增计数并在首次递增时设置窗口过期时间
var allowScript = redis.NewScript(
	`local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('EXPIRE', KEYS[1], tonumber(ARGV[1]))
	end
	return count`,
)

// Allow 判断指定key在当前窗口内是否仍有配额
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := l.keyPrefix + key

	result, err := allowScript.Run(ctx, l.client, []string{redisKey}, int(l.window.Seconds())).Result()
	if err != nil {
		return false, fmt.Errorf("执行Lua脚本失败: %w", err)
	}

	count := result.(int64)
	return count <= int64(l.maxAttempts), nil
}

// Reset 清除指定key的计数
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.keyPrefix+key).Err()
}
