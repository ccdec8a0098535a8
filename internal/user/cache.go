package user

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
)

// CacheConfig controls the athlete cache dimensions
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// DefaultCacheConfig returns the cache configuration used when no
// environment overrides are set
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Size: DefaultCacheSize, TTL: DefaultCacheTTL}
}

// CacheStats reports cache effectiveness for the admin surface
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// cachedUserEntry wraps an athlete with version metadata for cache invalidation
type cachedUserEntry struct {
	Version  string       `json:"version"`
	User     *domain.User `json:"user"`
	CachedAt time.Time    `json:"cached_at"`
}

// userCache provides an in-memory LRU cache for athlete lookups
// with time-based expiration and version-based invalidation to prevent stale data.
type userCache struct {
	lru    *expirable.LRU[string, *cachedUserEntry]
	hits   atomic.Int64
	misses atomic.Int64
}

// newUserCache creates a new athlete cache with the given size and TTL
func newUserCache(config CacheConfig) *userCache {
	return &userCache{
		lru: expirable.NewLRU[string, *cachedUserEntry](config.Size, nil, config.TTL),
	}
}

// idKey builds the cache key for an athlete-ID lookup
func idKey(userID string) string {
	return "id:" + userID
}

// nameKey builds the cache key for a username lookup
func nameKey(username string) string {
	return "name:" + username
}

// Get retrieves an athlete from the cache.
// Returns (user, true) if found and version matches.
// Returns (nil, false) if not in cache, expired, or version mismatch.
// Automatically invalidates entries with mismatched versions.
func (c *userCache) Get(key string) (*domain.User, bool) {
	entry, found := c.lru.Get(key)
	if !found {
		c.misses.Add(1)
		return nil, false
	}

	// Check version - auto-invalidate if mismatch
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return entry.User, true
}

// Set stores an athlete in the cache with the current schema version
func (c *userCache) Set(key string, user *domain.User) {
	entry := &cachedUserEntry{
		Version:  CacheSchemaVersion,
		User:     user,
		CachedAt: time.Now(),
	}
	c.lru.Add(key, entry)
}

// SetAll caches an athlete under both their ID and username keys
func (c *userCache) SetAll(user *domain.User) {
	c.Set(idKey(user.ID), user)
	c.Set(nameKey(user.Username), user)
}

// Invalidate removes the given keys from the cache.
// Useful when athlete data is updated.
func (c *userCache) Invalidate(keys ...string) {
	for _, key := range keys {
		c.lru.Remove(key)
	}
}

// Clear removes all entries from the cache
func (c *userCache) Clear() {
	c.lru.Purge()
}

// GetStats returns a snapshot of hit/miss counters and the current size
func (c *userCache) GetStats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}
