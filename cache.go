package faresolver

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/transit-tools/fare-resolver/config"
	"github.com/transit-tools/fare-resolver/internal"
)

// ResolveCache memoizes marshaled per-leg results. The in-memory map is the
// first tier; a Redis client, when configured, shares results across
// processes. Redis failures degrade to the memory tier silently.
type ResolveCache struct {
	mu  sync.RWMutex
	mem map[string][]byte
	rdb *redis.Client
	ttl time.Duration
}

func NewResolveCache(cfg config.CacheConfig) *ResolveCache {
	c := &ResolveCache{
		mem: map[string][]byte{},
		ttl: time.Duration(cfg.TTLSeconds) * time.Second,
	}
	if c.ttl == 0 {
		c.ttl = 5 * time.Minute
	}
	if cfg.RedisAddr != "" {
		c.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
	}
	return c
}

func (c *ResolveCache) memoKey(args ...string) string {
	return "faresolver:leg:" + strings.Join(args, "|")
}

func (c *ResolveCache) Get(ctx context.Context, args ...string) ([]byte, bool) {
	key := c.memoKey(args...)
	c.mu.RLock()
	buf, ok := c.mem[key]
	c.mu.RUnlock()
	if ok {
		return buf, true
	}
	if c.rdb != nil {
		if buf, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
			c.mu.Lock()
			c.mem[key] = buf
			c.mu.Unlock()
			return buf, true
		}
	}
	return nil, false
}

func (c *ResolveCache) Set(ctx context.Context, buf []byte, args ...string) {
	key := c.memoKey(args...)
	c.mu.Lock()
	c.mem[key] = buf
	c.mu.Unlock()
	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, buf, c.ttl).Err(); err != nil {
			internal.L().Debugw("resolve cache redis set failed", "err", err)
		}
	}
}

// Reset drops the memory tier. Called on table swap; Redis entries expire on
// their own TTL.
func (c *ResolveCache) Reset() {
	c.mu.Lock()
	c.mem = map[string][]byte{}
	c.mu.Unlock()
}
