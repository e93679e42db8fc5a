package cache

import (
	"context"
	"errors"
	"fmt"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"sync"
)

var ErrFillPanicked = errors.New("cache fill panicked")

// Factory produces the value for a missing key. The context it receives is
// detached from the cancellation of the caller that triggered the fill.
type Factory func(ctx context.Context) (any, error)

// Cache is a TTL-less memoization table. Entries live until they are evicted
// with Remove or Purge, or pushed out by the LRU bound.
type Cache struct {
	logger *zap.SugaredLogger

	store *lru.Cache[string, any]
	group singleflight.Group

	// mu orders commits of finished fills against evictions.
	mu    sync.Mutex
	fills map[string]*fill

	metrics *metrics
}

type fill struct {
	stale bool
}

// NewCache creates a cache holding at most size entries. Metrics are
// registered on reg when it is not nil.
func NewCache(logger *zap.SugaredLogger, size int, reg prometheus.Registerer) (*Cache, error) {
	store, err := lru.New[string, any](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru: %w", err)
	}

	m := newMetrics()
	if reg != nil {
		if err := m.register(reg); err != nil {
			return nil, fmt.Errorf("failed to register cache metrics: %w", err)
		}
	}

	return &Cache{
		logger:  logger,
		store:   store,
		fills:   make(map[string]*fill),
		metrics: m,
	}, nil
}

// GetOrSet returns the cached value for key, calling factory on a miss.
// Concurrent misses on the same key share a single factory call. A failed
// factory call is not cached. If ctx is cancelled while waiting, GetOrSet
// returns ctx.Err() but the fill still completes and commits.
func (c *Cache) GetOrSet(ctx context.Context, key string, factory Factory) (any, error) {
	if v, ok := c.store.Get(key); ok {
		c.metrics.lookups.WithLabelValues("hit").Inc()
		return v, nil
	}
	c.metrics.lookups.WithLabelValues("miss").Inc()

	fillCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		// A previous flight may have committed after our lookup.
		if v, ok := c.store.Get(key); ok {
			return v, nil
		}
		return c.fill(fillCtx, key, factory)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

func (c *Cache) fill(ctx context.Context, key string, factory Factory) (any, error) {
	f := &fill{}
	c.mu.Lock()
	c.fills[key] = f
	c.mu.Unlock()

	v, err := c.run(ctx, key, factory)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fills[key] == f {
		delete(c.fills, key)
	}

	if err != nil {
		c.metrics.fills.WithLabelValues("error").Inc()
		c.logger.Debugw("cache fill failed", "key", key, "error", err)
		return nil, err
	}

	// Evicted while the factory was running; the value may predate the write
	// that caused the eviction.
	if f.stale {
		c.metrics.fills.WithLabelValues("discarded").Inc()
		return v, nil
	}

	c.store.Add(key, v)
	c.metrics.fills.WithLabelValues("ok").Inc()
	return v, nil
}

// run calls factory, turning a panic into ErrFillPanicked. Inside a flight a
// panic would be re-raised on another goroutine and crash the process.
func (c *Cache) run(ctx context.Context, key string, factory Factory) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Errorw("cache fill panicked", "key", key, "panic", r)
			v, err = nil, fmt.Errorf("%w: %v", ErrFillPanicked, r)
		}
	}()

	return factory(ctx)
}

// Remove evicts the given keys. Once Remove returns, no GetOrSet call that
// starts afterwards can observe a value computed before the call.
func (c *Cache) Remove(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		c.evict(key)
	}
}

func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range c.store.Keys() {
		c.evict(key)
	}
	for key := range c.fills {
		c.evict(key)
	}
}

// evict must be called with mu held.
func (c *Cache) evict(key string) {
	if c.store.Remove(key) {
		c.metrics.evictions.Inc()
	}
	if f, ok := c.fills[key]; ok {
		f.stale = true
		delete(c.fills, key)
	}
	c.group.Forget(key)
}

func (c *Cache) Len() int {
	return c.store.Len()
}

// GetOrSetAs is GetOrSet for callers that know the type stored under key.
func GetOrSetAs[T any](ctx context.Context, c *Cache, key string, factory func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	v, err := c.GetOrSet(ctx, key, func(ctx context.Context) (any, error) {
		return factory(ctx)
	})
	if err != nil {
		return zero, err
	}

	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache key %s holds %T, expected %T", key, v, zero)
	}
	return t, nil
}
