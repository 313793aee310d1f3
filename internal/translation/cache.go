package translation

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache stores resolved translations keyed by target language and
// normalized source text. Entries have no expiry; Clear is the only
// invalidation.
type Cache interface {
	Get(ctx context.Context, lang, text string) (string, bool)
	Put(ctx context.Context, lang, text, value string)
	Clear(ctx context.Context) error
}

// cacheKey builds the shared "lang::text" key used by both tiers.
func cacheKey(lang, text string) string {
	return lang + "::" + text
}

// MemoryCache is the in-process cache tier.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryCache builds an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]string)}
}

func (c *MemoryCache) Get(_ context.Context, lang, text string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.entries[cacheKey(lang, text)]
	return value, ok
}

func (c *MemoryCache) Put(_ context.Context, lang, text, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(lang, text)] = value
}

func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]string)
	return nil
}

// RedisCache is the durable cache tier. Each entry is an individual key
// under a common namespace prefix so a bulk clear can scan-and-delete.
type RedisCache struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedisCache builds the durable tier under the given namespace prefix.
func NewRedisCache(client *redis.Client, prefix string, logger *zap.Logger) *RedisCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCache{client: client, prefix: prefix, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, lang, text string) (string, bool) {
	if c.client == nil {
		return "", false
	}
	value, err := c.client.Get(ctx, c.prefix+cacheKey(lang, text)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("translation cache get failed", zap.Error(err))
		}
		return "", false
	}
	return value, true
}

func (c *RedisCache) Put(ctx context.Context, lang, text, value string) {
	if c.client == nil {
		return
	}
	if err := c.client.Set(ctx, c.prefix+cacheKey(lang, text), value, 0).Err(); err != nil {
		c.logger.Debug("translation cache put failed", zap.Error(err))
	}
}

// Clear deletes every entry under the namespace prefix.
func (c *RedisCache) Clear(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis delete %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan %s*: %w", c.prefix, err)
	}
	return nil
}

// LayeredCache composes the memory tier in front of the durable tier:
// reads check memory first and backfill it on a durable hit; writes go to
// both tiers.
type LayeredCache struct {
	memory  Cache
	durable Cache
}

// NewLayeredCache composes the two tiers in fixed precedence order.
func NewLayeredCache(memory, durable Cache) *LayeredCache {
	return &LayeredCache{memory: memory, durable: durable}
}

func (c *LayeredCache) Get(ctx context.Context, lang, text string) (string, bool) {
	if value, ok := c.memory.Get(ctx, lang, text); ok {
		return value, true
	}
	if c.durable == nil {
		return "", false
	}
	value, ok := c.durable.Get(ctx, lang, text)
	if ok {
		c.memory.Put(ctx, lang, text, value)
	}
	return value, ok
}

func (c *LayeredCache) Put(ctx context.Context, lang, text, value string) {
	c.memory.Put(ctx, lang, text, value)
	if c.durable != nil {
		c.durable.Put(ctx, lang, text, value)
	}
}

// Clear empties both tiers.
func (c *LayeredCache) Clear(ctx context.Context) error {
	if err := c.memory.Clear(ctx); err != nil {
		return err
	}
	if c.durable == nil {
		return nil
	}
	return c.durable.Clear(ctx)
}
