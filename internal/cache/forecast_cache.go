package cache

import (
	"sync"
	"time"

	"github.com/weatherwise/backend/internal/domain"
)

// ForecastCache holds live forecasts keyed by city name exactly as requested.
// Entries expire after ttl; when full, the oldest entry is evicted.
type ForecastCache struct {
	entries    map[string]forecastCacheEntry
	mutex      sync.RWMutex
	ttl        time.Duration
	maxEntries int
	hitCount   int
	missCount  int
	now        func() time.Time
}

// forecastCacheEntry represents a cached forecast with its timestamp
type forecastCacheEntry struct {
	Data      domain.ForecastResult
	Timestamp time.Time
}

// NewForecastCache creates a cache. maxEntries <= 0 means unbounded.
func NewForecastCache(ttl time.Duration, maxEntries int) *ForecastCache {
	return newForecastCache(ttl, maxEntries, time.Now)
}

func newForecastCache(ttl time.Duration, maxEntries int, now func() time.Time) *ForecastCache {
	return &ForecastCache{
		entries:    make(map[string]forecastCacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        now,
	}
}

// Get returns the cached forecast for city if it has not expired
func (c *ForecastCache) Get(city string) (domain.ForecastResult, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, found := c.entries[city]
	if found && c.now().Sub(entry.Timestamp) < c.ttl {
		c.hitCount++
		return entry.Data, true
	}

	if found {
		delete(c.entries, city)
	}
	c.missCount++
	return domain.ForecastResult{}, false
}

// Put stores a forecast for city, evicting the oldest entry when full
func (c *ForecastCache) Put(city string, data domain.ForecastResult) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.entries[city]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.pruneLocked()
		if len(c.entries) >= c.maxEntries {
			c.evictOldestLocked()
		}
	}

	c.entries[city] = forecastCacheEntry{
		Data:      data,
		Timestamp: c.now(),
	}
}

// Prune removes expired entries and returns how many were dropped
func (c *ForecastCache) Prune() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.pruneLocked()
}

func (c *ForecastCache) pruneLocked() int {
	cutoff := c.now().Add(-c.ttl)
	pruned := 0
	for city, entry := range c.entries {
		if !entry.Timestamp.After(cutoff) {
			delete(c.entries, city)
			pruned++
		}
	}
	return pruned
}

func (c *ForecastCache) evictOldestLocked() {
	var oldestCity string
	var oldest time.Time
	first := true
	for city, entry := range c.entries {
		if first || entry.Timestamp.Before(oldest) {
			oldestCity, oldest, first = city, entry.Timestamp, false
		}
	}
	if !first {
		delete(c.entries, oldestCity)
	}
}

// Len returns the number of stored entries, expired or not
func (c *ForecastCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}

// CacheStats returns statistics about cache hits and misses
func (c *ForecastCache) CacheStats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.hitCount, c.missCount
}
