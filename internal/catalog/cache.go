package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mooddy/playlist-service/internal/logger"
	"github.com/redis/go-redis/v9"
)

// CachingClient wraps a Client with a Redis read-through cache. Catalog
// metadata is effectively immutable so cached entries only expire by TTL.
// Cache failures degrade to a direct fetch and never fail the request.
type CachingClient struct {
	inner Client
	redis *redis.Client
	ttl   time.Duration
}

// NewCachingClient creates a caching catalog client
func NewCachingClient(inner Client, redisClient *redis.Client, ttl time.Duration) *CachingClient {
	return &CachingClient{
		inner: inner,
		redis: redisClient,
		ttl:   ttl,
	}
}

// Lookup fetches metadata for a track, serving repeated lookups from Redis
func (c *CachingClient) Lookup(ctx context.Context, trackID int64) (*TrackMetadata, error) {
	key := fmt.Sprintf("catalog:lookup:%d", trackID)

	if cached, err := c.redis.Get(ctx, key).Result(); err == nil {
		var meta TrackMetadata
		if err := json.Unmarshal([]byte(cached), &meta); err == nil {
			logger.Log.Debug().
				Int64("track_id", trackID).
				Msg("Catalog lookup served from cache")
			return &meta, nil
		}
	}

	meta, err := c.inner.Lookup(ctx, trackID)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, meta)
	return meta, nil
}

// Search queries the catalog, serving repeated queries from Redis
func (c *CachingClient) Search(ctx context.Context, term string, limit int) ([]TrackMetadata, error) {
	key := fmt.Sprintf("catalog:search:%d:%s", limit, term)

	if cached, err := c.redis.Get(ctx, key).Result(); err == nil {
		var results []TrackMetadata
		if err := json.Unmarshal([]byte(cached), &results); err == nil {
			return results, nil
		}
	}

	results, err := c.inner.Search(ctx, term, limit)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, results)
	return results, nil
}

// store writes a value to the cache, logging failures instead of surfacing them
func (c *CachingClient) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Log.Warn().
			Err(err).
			Str("key", key).
			Msg("Failed to cache catalog response")
	}
}
