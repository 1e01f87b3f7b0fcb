package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"tour_travels_backend/internal/cache"
	"tour_travels_backend/pkg/utils"
)

// cacheGet loads a cached JSON payload into dest. Any cache failure is
// treated as a miss: data correctness depends on the store, not the cache.
func cacheGet(ctx context.Context, c *cache.Client, key string, dest interface{}) bool {
	payload, err := c.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			utils.LogWarn(err, "Cache read failed, falling back to store: "+key)
		}
		return false
	}
	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		utils.LogWarn(err, "Corrupt cache payload, falling back to store: "+key)
		return false
	}
	return true
}

// cacheSet stores a JSON payload with the category TTL. Failures are logged,
// never raised.
func cacheSet(ctx context.Context, c *cache.Client, key string, value interface{}, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		utils.LogWarn(err, "Failed to marshal cache payload: "+key)
		return
	}
	if err := c.Set(ctx, key, payload, ttl); err != nil {
		utils.LogWarn(err, "Cache write failed: "+key)
	}
}

// cacheDel deletes keys after a successful write. A failed invalidation is
// logged, never raised.
func cacheDel(ctx context.Context, c *cache.Client, keys ...string) {
	if err := c.Del(ctx, keys...); err != nil {
		utils.LogWarn(err, "Cache invalidation failed")
	}
}
