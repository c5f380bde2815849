package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/alex-user-go/hotel-aggregator/internal/search/types"
)

// KeyPrefix namespaces hotel search entries.
const KeyPrefix = "hotel_search_"

// Cache provides in-memory caching of aggregated hotel lists with TTL and
// request collapsing (singleflight).
type Cache struct {
	mu        sync.RWMutex
	entries   map[string]*cacheEntry
	ttl       time.Duration
	inflight  map[string]*inflightRequest
	done      chan struct{}
	closeOnce sync.Once
}

type cacheEntry struct {
	hotels    []types.Hotel
	expiresAt time.Time
}

type inflightRequest struct {
	done   chan struct{}
	hotels []types.Hotel
	err    error
}

// NewCache creates a new Cache with the default TTL.
func NewCache(ttl time.Duration) *Cache {
	c := &Cache{
		entries:  make(map[string]*cacheEntry),
		ttl:      ttl,
		inflight: make(map[string]*inflightRequest),
		done:     make(chan struct{}),
	}

	go c.cleanup()

	return c
}

// Close stops the background cleanup goroutine. It is safe to call twice.
func (c *Cache) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Key derives the cache key from the canonical form of p.
func Key(p types.Params) (string, error) {
	raw, err := json.Marshal(p.Canonical())
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}
	sum := sha256.Sum256(raw)
	return KeyPrefix + hex.EncodeToString(sum[:]), nil
}

// Get returns a copy of the live entry for key.
func (c *Cache) Get(key string) ([]types.Hotel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || !time.Now().Before(entry.expiresAt) {
		return nil, false
	}
	return clone(entry.hotels), true
}

// Put stores a copy of hotels under key. A non-positive ttl uses the default.
func (c *Cache) Put(key string, hotels []types.Hotel, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}

	c.mu.Lock()
	c.entries[key] = &cacheEntry{
		hotels:    clone(hotels),
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

// GetOrFetch retrieves from cache or executes the fetch function.
// Concurrent requests for the same key are collapsed (singleflight pattern).
// Returns the hotels and a boolean indicating if it was a cache hit.
func (c *Cache) GetOrFetch(ctx context.Context, key string, fetch func() ([]types.Hotel, error)) ([]types.Hotel, bool, error) {
	c.mu.Lock()

	if entry, ok := c.entries[key]; ok && time.Now().Before(entry.expiresAt) {
		hotels := clone(entry.hotels)
		c.mu.Unlock()
		return hotels, true, nil
	}

	if inflight, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		select {
		case <-inflight.done:
			return clone(inflight.hotels), false, inflight.err
		case <-ctx.Done():
			return nil, false, context.Cause(ctx)
		}
	}

	inflight := &inflightRequest{
		done: make(chan struct{}),
	}
	c.inflight[key] = inflight
	c.mu.Unlock()

	hotels, err := fetch()

	c.mu.Lock()
	inflight.hotels = hotels
	inflight.err = err
	if err == nil {
		if hotels == nil {
			hotels = []types.Hotel{}
		}
		c.entries[key] = &cacheEntry{
			hotels:    clone(hotels),
			expiresAt: time.Now().Add(c.ttl),
		}
	}
	delete(c.inflight, key)
	c.mu.Unlock()

	close(inflight.done)

	return clone(hotels), false, err
}

// Flush removes all entries from the cache.
func (c *Cache) Flush() {
	c.mu.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// cleanup periodically removes expired entries.
func (c *Cache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictExpired(time.Now())
		case <-c.done:
			return
		}
	}
}

func (c *Cache) evictExpired(now time.Time) {
	c.mu.Lock()
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

func clone(hotels []types.Hotel) []types.Hotel {
	if hotels == nil {
		return nil
	}
	out := make([]types.Hotel, len(hotels))
	copy(out, hotels)
	return out
}
