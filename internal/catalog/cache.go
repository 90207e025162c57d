package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/kabachok/dropclient/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// cachedCaseEntry wraps a case with version metadata for cache invalidation
type cachedCaseEntry struct {
	Version  string       `json:"version"`
	Case     *domain.Case `json:"case"`
	CachedAt time.Time    `json:"cached_at"`
}

// caseCache provides an in-memory LRU cache for case lookups
// with time-based expiration and version-based invalidation to prevent stale data.
type caseCache struct {
	lru *expirable.LRU[int, *cachedCaseEntry]
}

func newCaseCache(size int, ttl time.Duration) *caseCache {
	return &caseCache{
		lru: expirable.NewLRU[int, *cachedCaseEntry](size, nil, ttl),
	}
}

// Get retrieves a case from the cache.
// Returns (nil, false) if not cached, expired, or schema version mismatch.
func (c *caseCache) Get(caseID int) (*domain.Case, bool) {
	entry, found := c.lru.Get(caseID)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(caseID)
		return nil, false
	}

	return entry.Case, true
}

// Set stores a case in the cache with current schema version.
func (c *caseCache) Set(caseID int, cs *domain.Case) {
	c.lru.Add(caseID, &cachedCaseEntry{
		Version:  CacheSchemaVersion,
		Case:     cs,
		CachedAt: time.Now(),
	})
}

// Clear removes all entries from the cache.
func (c *caseCache) Clear() {
	c.lru.Purge()
}
