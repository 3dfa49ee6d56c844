package cache

import (
	"context"
	"time"

	"relationship-dashboard/config"
	"relationship-dashboard/model"
	"relationship-dashboard/sheet"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog/log"
)

// Cache wraps Ristretto with a TTL for sheet snapshots
type Cache struct {
	client *ristretto.Cache
	ttl    time.Duration
}

// New creates a new cache instance with the given configuration
func New(cfg config.CacheConfig) (*Cache, error) {
	maxCost := int64(cfg.MaxSizeMB) * 1024 * 1024

	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(cfg.CounterSize),
		MaxCost:     maxCost,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("max_size_mb", cfg.MaxSizeMB).
		Int("ttl_seconds", cfg.TTLSeconds).
		Msg("Sheet cache initialized")

	return &Cache{
		client: client,
		ttl:    time.Duration(cfg.TTLSeconds) * time.Second,
	}, nil
}

// Get retrieves a value from the cache
func (c *Cache) Get(key string) (interface{}, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	return c.client.Get(key)
}

// Set stores a value with the configured TTL. Ristretto admits entries
// asynchronously; call Wait when a subsequent Get must observe it.
func (c *Cache) Set(key string, value interface{}, cost int64) bool {
	if c == nil || c.client == nil {
		return false
	}
	return c.client.SetWithTTL(key, value, cost, c.ttl)
}

// Wait blocks until pending sets are applied
func (c *Cache) Wait() {
	if c == nil || c.client == nil {
		return
	}
	c.client.Wait()
}

// Delete removes a key from the cache
func (c *Cache) Delete(key string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(key)
}

// Close cleanly shuts down the cache
func (c *Cache) Close() {
	if c != nil && c.client != nil {
		c.client.Close()
		log.Info().Msg("Cache closed")
	}
}

// MetricsSnapshot is a JSON-friendly view of cache counters
type MetricsSnapshot struct {
	Hits       uint64  `json:"hits"`
	Misses     uint64  `json:"misses"`
	KeysAdded  uint64  `json:"keys_added"`
	HitRatio   float64 `json:"hit_ratio"`
	TTLSeconds int     `json:"ttl_seconds"`
}

// GetMetricsSnapshot returns current cache metrics as a snapshot
func (c *Cache) GetMetricsSnapshot() MetricsSnapshot {
	if c == nil {
		return MetricsSnapshot{}
	}
	if c.client == nil || c.client.Metrics == nil {
		return MetricsSnapshot{TTLSeconds: int(c.ttl.Seconds())}
	}

	m := c.client.Metrics
	return MetricsSnapshot{
		Hits:       m.Hits(),
		Misses:     m.Misses(),
		KeysAdded:  m.KeysAdded(),
		HitRatio:   m.Ratio(),
		TTLSeconds: int(c.ttl.Seconds()),
	}
}

// KeyedSource is a record source that can name what it reads.
type KeyedSource interface {
	sheet.RecordSource
	Key() string
}

// CachedSource serves sheet snapshots from the cache for the TTL, then
// refetches from the wrapped source.
type CachedSource struct {
	source KeyedSource
	cache  *Cache
}

// NewCachedSource wraps source. A nil cache passes every call through.
func NewCachedSource(source KeyedSource, c *Cache) *CachedSource {
	return &CachedSource{source: source, cache: c}
}

// Records returns the cached snapshot or fetches a fresh one.
func (s *CachedSource) Records(ctx context.Context) ([]model.Record, error) {
	key := s.source.Key()
	if v, ok := s.cache.Get(key); ok {
		if recs, ok := v.([]model.Record); ok {
			log.Debug().Str("key", key).Msg("Sheet cache hit")
			return recs, nil
		}
	}

	recs, err := s.source.Records(ctx)
	if err != nil {
		return nil, err
	}

	if !s.cache.Set(key, recs, recordsCost(recs)) {
		log.Debug().Str("key", key).Msg("Sheet snapshot not admitted to cache")
	}
	return recs, nil
}

// recordsCost approximates the memory held by a snapshot in bytes.
func recordsCost(recs []model.Record) int64 {
	var cost int64
	for _, rec := range recs {
		for k, v := range rec {
			cost += int64(len(k) + len(v))
		}
	}
	if cost == 0 {
		cost = 1
	}
	return cost
}
