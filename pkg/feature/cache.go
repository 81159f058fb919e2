package feature

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrymomot/akademate/pkg/cache"
	"github.com/dmitrymomot/akademate/pkg/logger"
)

// ResultCache stores evaluated flag lists per tenant.
// Cache failures must never fail an evaluation, so implementations swallow
// their own errors and report a miss instead.
//
// Version returns a token that changes whenever the entry of tenantID is
// invalidated by Delete or Purge. The registry reads it before loading from
// storage and hands it back to Set, which drops results whose token is no
// longer current. An empty token disables the write.
type ResultCache interface {
	Version(ctx context.Context, tenantID string) string
	Get(ctx context.Context, tenantID string) ([]Result, bool)
	Set(ctx context.Context, tenantID, version string, results []Result, ttl time.Duration)
	Delete(ctx context.Context, tenantID string)
	Purge(ctx context.Context)
}

// MemoryCache is a process-local ResultCache backed by an LRU.
// Its invalidations are not seen by other processes, so it only suits a
// single instance that owns its storage.
type MemoryCache struct {
	lru *cache.LRUCache[string, []Result]

	mu  sync.Mutex
	gen uint64
}

// NewMemoryCache creates a cache holding at most size tenants.
func NewMemoryCache(size int) *MemoryCache {
	if size <= 0 {
		size = 1024
	}
	return &MemoryCache{lru: cache.NewLRUCache[string, []Result](size)}
}

func (c *MemoryCache) Version(context.Context, string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strconv.FormatUint(c.gen, 10)
}

func (c *MemoryCache) Get(_ context.Context, tenantID string) ([]Result, bool) {
	results, ok := c.lru.Get(tenantID)
	if !ok {
		return nil, false
	}
	return cloneResults(results), true
}

func (c *MemoryCache) Set(_ context.Context, tenantID, version string, results []Result, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if version != strconv.FormatUint(c.gen, 10) {
		return
	}
	c.lru.PutWithTTL(tenantID, cloneResults(results), ttl)
}

func (c *MemoryCache) Delete(_ context.Context, tenantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.lru.Remove(tenantID)
}

func (c *MemoryCache) Purge(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.lru.Clear()
}

// KVStore is the subset of a shared key-value store used by KVCache.
// Get returns nil, nil for a missing key. Incr atomically increments an
// integer key, creating it at zero.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
	Incr(ctx context.Context, key string) (int64, error)
}

// KVCache shares evaluated results between instances through a KVStore
// such as Redis.
//
// Generation counters live in the store next to the entries: one for the
// whole cache and one per tenant. Entry keys embed both, so an
// invalidation made by any instance hides every entry written under the
// previous generation, including late writes of loads that started before
// it. Orphaned entries expire with their TTL.
type KVCache struct {
	store  KVStore
	prefix string
	log    *slog.Logger
}

// NewKVCache creates a cache that namespaces its keys under prefix.
func NewKVCache(store KVStore, prefix string, log *slog.Logger) *KVCache {
	if prefix == "" {
		prefix = "feature:results:"
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &KVCache{
		store:  store,
		prefix: prefix,
		log:    log.With(logger.Component("feature.kvcache")),
	}
}

func (c *KVCache) globalGenKey() string { return c.prefix + "gen" }

func (c *KVCache) tenantGenKey(tenantID string) string { return c.prefix + "gen:" + tenantID }

func (c *KVCache) entriesPrefix() string { return c.prefix + "r:" }

func (c *KVCache) entryKey(version, tenantID string) string {
	return c.entriesPrefix() + version + ":" + tenantID
}

func (c *KVCache) counter(ctx context.Context, key string) (uint64, error) {
	raw, err := c.store.Get(ctx, key)
	if err != nil || raw == nil {
		return 0, err
	}
	return strconv.ParseUint(string(raw), 10, 64)
}

func (c *KVCache) Version(ctx context.Context, tenantID string) string {
	global, err := c.counter(ctx, c.globalGenKey())
	if err != nil {
		c.log.WarnContext(ctx, "result cache generation read failed", logger.Error(err))
		return ""
	}
	own, err := c.counter(ctx, c.tenantGenKey(tenantID))
	if err != nil {
		c.log.WarnContext(ctx, "result cache generation read failed", logger.TenantID(tenantID), logger.Error(err))
		return ""
	}
	return strconv.FormatUint(global, 10) + ":" + strconv.FormatUint(own, 10)
}

func (c *KVCache) Get(ctx context.Context, tenantID string) ([]Result, bool) {
	version := c.Version(ctx, tenantID)
	if version == "" {
		return nil, false
	}
	key := c.entryKey(version, tenantID)
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.WarnContext(ctx, "result cache read failed", logger.TenantID(tenantID), logger.Error(err))
		return nil, false
	}
	if raw == nil {
		return nil, false
	}

	var results []Result
	if err := json.Unmarshal(raw, &results); err != nil {
		c.log.WarnContext(ctx, "result cache entry is corrupt", logger.TenantID(tenantID), logger.Error(err))
		if err := c.store.Delete(ctx, key); err != nil {
			c.log.WarnContext(ctx, "result cache delete failed", logger.TenantID(tenantID), logger.Error(err))
		}
		return nil, false
	}
	return results, true
}

func (c *KVCache) Set(ctx context.Context, tenantID, version string, results []Result, ttl time.Duration) {
	if version == "" {
		return
	}
	raw, err := json.Marshal(results)
	if err != nil {
		c.log.WarnContext(ctx, "result cache encode failed", logger.TenantID(tenantID), logger.Error(err))
		return
	}
	if err := c.store.Set(ctx, c.entryKey(version, tenantID), raw, ttl); err != nil {
		c.log.WarnContext(ctx, "result cache write failed", logger.TenantID(tenantID), logger.Error(err))
	}
}

func (c *KVCache) Delete(ctx context.Context, tenantID string) {
	if _, err := c.store.Incr(ctx, c.tenantGenKey(tenantID)); err != nil {
		c.log.ErrorContext(ctx, "result cache invalidation failed", logger.TenantID(tenantID), logger.Error(err))
	}
}

func (c *KVCache) Purge(ctx context.Context) {
	if _, err := c.store.Incr(ctx, c.globalGenKey()); err != nil {
		c.log.ErrorContext(ctx, "result cache invalidation failed", logger.Error(err))
		return
	}
	if err := c.store.DeletePrefix(ctx, c.entriesPrefix()); err != nil {
		c.log.WarnContext(ctx, "result cache purge failed", logger.Error(err))
	}
}
