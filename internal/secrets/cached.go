package secrets

import (
	"context"
	"sync"
	"time"
)

// Cached wraps a Provider and serves results from memory for a fixed TTL,
// avoiding repeated network calls during rapid successive loads (watch mode
// in particular). A zero TTL disables caching. Failures are not cached.
type Cached struct {
	provider Provider
	ttl      time.Duration
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	fetched time.Time
	values  map[string]any
}

// NewCached wraps provider with a TTL cache.
func NewCached(provider Provider, ttl time.Duration) *Cached {
	return &Cached{
		provider: provider,
		ttl:      ttl,
		now:      time.Now,
		entries:  map[string]cacheEntry{},
	}
}

func (c *Cached) Name() string { return c.provider.Name() + "+cache" }

func (c *Cached) GetSecrets(ctx context.Context, env string) (map[string]any, error) {
	c.mu.Lock()
	entry, ok := c.entries[env]
	c.mu.Unlock()
	if ok && c.ttl > 0 && c.now().Sub(entry.fetched) < c.ttl {
		return entry.values, nil
	}

	values, err := c.provider.GetSecrets(ctx, env)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[env] = cacheEntry{fetched: c.now(), values: values}
	c.mu.Unlock()
	return values, nil
}
