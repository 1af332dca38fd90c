package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"job_assessment_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cache 基于 redis 的 JSON 缓存。client 为 nil 时所有操作直接跳过，读总是 miss
type Cache struct {
	client     *redis.Client
	defaultTTL time.Duration

	warnedUnavailable atomic.Bool
}

func New(client *redis.Client, defaultTTL time.Duration) *Cache {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &Cache{client: client, defaultTTL: defaultTTL}
}

func (c *Cache) Available() bool {
	return c != nil && c.client != nil
}

func (c *Cache) warnUnavailableOnce(err error) {
	if c.warnedUnavailable.CompareAndSwap(false, true) {
		logger.Log.Warn("Redis unavailable, bypassing cache", zap.Error(err))
	}
}

func (c *Cache) Ping(ctx context.Context) error {
	if !c.Available() {
		return errors.New("redis unavailable")
	}
	return c.client.Ping(ctx).Err()
}

// GetJSON 命中时把值解码到 out 并返回 true
func (c *Cache) GetJSON(ctx context.Context, key string, out interface{}) (bool, error) {
	if !c.Available() {
		return false, nil
	}
	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		c.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.Available() {
		return nil
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, b, ttl).Err(); err != nil {
		c.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if !c.Available() || len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// DeleteByPrefix 用 SCAN 删除所有以 prefix 开头的 key
func (c *Cache) DeleteByPrefix(ctx context.Context, prefix string) error {
	if !c.Available() {
		return nil
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil
	}
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Log.Warn("Redis delete failed", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.warnUnavailableOnce(err)
		return err
	}
	return nil
}
