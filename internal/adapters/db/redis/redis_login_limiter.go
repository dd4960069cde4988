package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/Miraines/bankr/api-service/internal/domain/auth/repo"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "login:fail:"

type RedisLoginLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

func NewRedisLoginLimiter(client *redis.Client, opts repo.LimiterOptions) *RedisLoginLimiter {
	return &RedisLoginLimiter{
		client: client,
		max:    int64(opts.MaxAttempts),
		window: opts.Window,
	}
}

func (r *RedisLoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Get(ctx, redisKey(key)).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		return true, nil // ключа нет — попыток не было
	case err != nil:
		return true, err
	default:
		return n < r.max, nil
	}
}

func (r *RedisLoginLimiter) Fail(ctx context.Context, key string) error {
	k := redisKey(key)
	n, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return err
	}
	if n == 1 {
		return r.client.Expire(ctx, k, r.window).Err()
	}
	// ключ без TTL (сбой между INCR и EXPIRE) не должен жить вечно
	ttl, err := r.client.TTL(ctx, k).Result()
	if err != nil {
		return err
	}
	if ttl < 0 {
		return r.client.Expire(ctx, k, r.window).Err()
	}
	return nil
}

func (r *RedisLoginLimiter) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, redisKey(key)).Err()
}

// в redis не храним e-mail в открытом виде
func redisKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return keyPrefix + hex.EncodeToString(sum[:])
}
