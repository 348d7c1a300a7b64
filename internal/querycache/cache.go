package querycache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Per-query freshness windows. A non-positive window means the value
// never goes stale once present.
const (
	StationFreshness    time.Duration = 0
	ScheduleFreshness                 = 30 * time.Second
	TrainRouteFreshness               = 5 * time.Minute
	DefaultFreshness                  = time.Minute
)

// FetchFunc loads the value for a cache key from upstream.
type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	value     any
	timestamp time.Time
}

// Cache is a key-scoped store of (value, timestamp) pairs with request
// coalescing: concurrent callers for the same key while a fetch is in
// flight attach to that fetch instead of issuing their own. It is the
// only shared mutable state in the service.
type Cache struct {
	mu          sync.RWMutex
	entries     map[string]entry
	generations map[string]uint64
	group       singleflight.Group
	logger      *slog.Logger
}

func New(logger *slog.Logger) *Cache {
	return &Cache{
		entries:     make(map[string]entry),
		generations: make(map[string]uint64),
		logger:      logger,
	}
}

// Get serves the cached value for key while it is younger than ttl and
// fetches otherwise. The fetched value is stored unless the key was
// invalidated while the fetch ran.
func (c *Cache) Get(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) (any, time.Time, error) {
	if value, ts, ok := c.lookup(key, ttl); ok {
		return value, ts, nil
	}

	gen := c.generation(key)
	result, err, _ := c.group.Do(key, func() (any, error) {
		// A waiter queued behind the winning caller may find the value
		// already stored by the time it gets its turn.
		if value, ts, ok := c.lookup(key, ttl); ok {
			return entry{value: value, timestamp: ts}, nil
		}

		value, err := fetch(ctx)
		if err != nil {
			return entry{}, err
		}
		ts := time.Now()
		c.store(key, value, ts, gen)
		return entry{value: value, timestamp: ts}, nil
	})
	if err != nil {
		return nil, time.Time{}, err
	}

	stored := result.(entry)
	return stored.value, stored.timestamp, nil
}

// Put stores value for key unconditionally, stamped with the current
// time. Used by the refresher, which always holds the latest result.
func (c *Cache) Put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, timestamp: time.Now()}
}

// Invalidate drops key's entry and detaches any in-flight fetch for it:
// a result computed for a superseded generation is discarded rather
// than stored, so an abandoned request can never overwrite the entry
// the key now deserves.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	c.generations[key]++
	delete(c.entries, key)
	c.mu.Unlock()

	c.group.Forget(key)
}

func (c *Cache) lookup(key string, ttl time.Duration) (any, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cached, ok := c.entries[key]
	if !ok {
		return nil, time.Time{}, false
	}
	if ttl > 0 && time.Since(cached.timestamp) >= ttl {
		return nil, time.Time{}, false
	}
	return cached.value, cached.timestamp, true
}

func (c *Cache) generation(key string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generations[key]
}

func (c *Cache) store(key string, value any, ts time.Time, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[key] != gen {
		return
	}
	c.entries[key] = entry{value: value, timestamp: ts}
}

// Fetch is Get with the caller's static type restored.
func Fetch[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	value, _, err := c.Get(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cache key %q holds %T, not %T", key, value, zero)
	}
	return typed, nil
}
