// Package cache 堂区提示词模板等小对象的读缓存
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/Lolek-Productions/liturgy-faith-sub000/config"
	"github.com/redis/go-redis/v9"
	"k8s.io/klog/v2"
)

// Cache 缓存接口，未命中时返回 ok=false
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// SetIfAbsent 仅在键不存在时写入，返回是否写入
	SetIfAbsent(ctx context.Context, key, value string) (bool, error)
	Delete(ctx context.Context, key string) error
}

// New 根据配置创建缓存，未配置 Redis 地址时返回空实现
func New(ctx context.Context, cfg *config.Config) (Cache, error) {
	if cfg.Redis.Addr == "" {
		klog.V(6).Infof("未配置 Redis，禁用缓存")
		return Noop{}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return NewRedis(client, cfg.Redis.TTL), nil
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) Cache {
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (c *redisCache) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, key, value, c.ttl).Err()
}

func (c *redisCache) SetIfAbsent(ctx context.Context, key, value string) (bool, error) {
	return c.client.SetNX(ctx, key, value, c.ttl).Result()
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Noop 不缓存任何内容
type Noop struct{}

func (Noop) Get(ctx context.Context, key string) (string, bool, error) { return "", false, nil }
func (Noop) Set(ctx context.Context, key, value string) error          { return nil }
func (Noop) Delete(ctx context.Context, key string) error              { return nil }

func (Noop) SetIfAbsent(ctx context.Context, key, value string) (bool, error) { return false, nil }
