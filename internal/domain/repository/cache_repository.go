package repository

import (
	"github.com/center-assignment/internal/domain"
)

// CacheStats - snapshot of the distance cache
type CacheStats struct {
	Size    int   `json:"size"`
	TTLMs   int64 `json:"ttl_ms"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Expired int64 `json:"expired"`
}

// DistanceCache - pair-keyed store of computed distances with a TTL
type DistanceCache interface {
	// Get returns the entry for key; expired entries are evicted and reported as missing
	Get(key string) (domain.DistanceResult, bool)

	// Set stores value under key with the cache TTL
	Set(key string, value domain.DistanceResult)

	// Clear drops every entry
	Clear()

	// Stats returns size and hit counters
	Stats() CacheStats
}
