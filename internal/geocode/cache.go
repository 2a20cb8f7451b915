package geocode

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/vlecomte/phototrip-backend-go/internal/spatial"
)

// Store is an optional persistent backing for the cache, keyed by quantized
// cell. Implemented by repository.GeocodeCacheRepository.
type Store interface {
	Get(ctx context.Context, cellKey string) (string, bool, error)
	Put(ctx context.Context, cellKey, placeName string) error
}

// Cache deduplicates reverse-geocode lookups by quantized coordinate cell.
// Concurrent callers asking for the same cell share a single in-flight
// request: a lookup miss followed by a resolve-and-store cannot race two
// callers into issuing duplicate network calls.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string
	group   singleflight.Group
	store   Store // may be nil
}

// NewCache creates a cache scoped to one pipeline run. A non-nil store makes
// it read-through/write-through across runs.
func NewCache(store Store) *Cache {
	return &Cache{
		entries: make(map[string]string),
		store:   store,
	}
}

// Lookup returns the cached name for a coordinate without resolving
func (c *Cache) Lookup(lat, lon float64) (string, bool) {
	key := spatial.CellKey(lat, lon)
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.entries[key]
	return name, ok
}

// Resolve returns the place name for a coordinate, consulting the in-memory
// cache, then the persistent store, then the resolver. The result (including
// the empty name of a failed lookup) is memoized for the rest of the run so a
// cell is attempted at most once.
func (c *Cache) Resolve(ctx context.Context, resolver Resolver, lat, lon float64) (string, error) {
	key := spatial.CellKey(lat, lon)

	c.mu.RLock()
	name, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return name, nil
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		// Re-check under the flight: a caller that missed just before a
		// previous flight completed must not trigger a second lookup
		c.mu.RLock()
		memo, hit := c.entries[key]
		c.mu.RUnlock()
		if hit {
			return memo, nil
		}

		if c.store != nil {
			if stored, found, err := c.store.Get(ctx, key); err == nil && found {
				c.remember(key, stored)
				return stored, nil
			}
		}

		resolved, err := resolver.Reverse(ctx, lat, lon)
		if err != nil {
			// Remember the failure too: one timed-out cell should not be
			// retried for every photo sitting in it
			c.remember(key, "")
			return "", err
		}

		c.remember(key, resolved)
		if c.store != nil {
			_ = c.store.Put(ctx, key, resolved)
		}
		return resolved, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		// Abandon the in-flight call; it completes in the background and
		// still populates the cache
		return "", ctx.Err()
	}
}

func (c *Cache) remember(key, name string) {
	c.mu.Lock()
	c.entries[key] = name
	c.mu.Unlock()
}
