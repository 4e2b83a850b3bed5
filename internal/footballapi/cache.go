package footballapi

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// responseCache holds raw response bodies for ttl. Concurrent misses for the
// same key share one load.
type responseCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
	flight  singleflight.Group

	loadsMu sync.Mutex
	loads   map[string]*sharedLoad
}

// sharedLoad is the context of an in-flight load. It is cancelled once every
// caller waiting on it has given up.
type sharedLoad struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
		loads:   make(map[string]*sharedLoad),
	}
}

func (c *responseCache) get(key string) ([]byte, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expiresAt.After(c.now()) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (c *responseCache) set(key string, value []byte) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// getOrLoad returns the cached body for key or calls loader. Failed loads are
// not cached. A caller whose ctx ends stops waiting without failing the
// others sharing the load.
func (c *responseCache) getOrLoad(ctx context.Context, key string, loader func(context.Context) ([]byte, error)) ([]byte, error) {
	if value, ok := c.get(key); ok {
		return value, nil
	}

	load, ch := c.start(ctx, key, loader)

	select {
	case res := <-ch:
		c.leave(key, load)
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		c.leave(key, load)
		return nil, ctx.Err()
	}
}

// start joins the in-flight load for key or begins one whose context is
// detached from ctx's cancellation.
func (c *responseCache) start(ctx context.Context, key string, loader func(context.Context) ([]byte, error)) (*sharedLoad, <-chan singleflight.Result) {
	c.loadsMu.Lock()
	defer c.loadsMu.Unlock()

	load, ok := c.loads[key]
	if !ok {
		loadCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		load = &sharedLoad{ctx: loadCtx, cancel: cancel}
		c.loads[key] = load
	}
	load.waiters++

	ch := c.flight.DoChan(key, func() (any, error) {
		defer c.finish(key, load)
		if cached, ok := c.get(key); ok {
			return cached, nil
		}
		loaded, err := loader(load.ctx)
		if err != nil {
			return nil, err
		}
		c.set(key, loaded)
		return loaded, nil
	})
	return load, ch
}

// leave drops a waiter. The last one out cancels the load and forgets it so
// later callers start afresh.
func (c *responseCache) leave(key string, load *sharedLoad) {
	c.loadsMu.Lock()
	defer c.loadsMu.Unlock()
	load.waiters--
	if load.waiters > 0 {
		return
	}
	load.cancel()
	if c.loads[key] == load {
		delete(c.loads, key)
		c.flight.Forget(key)
	}
}

func (c *responseCache) finish(key string, load *sharedLoad) {
	c.loadsMu.Lock()
	defer c.loadsMu.Unlock()
	if c.loads[key] == load {
		delete(c.loads, key)
	}
	load.cancel()
}

func (c *responseCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
