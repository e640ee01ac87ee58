package risk

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"sync"

	"saferoute/internal/domain/entity"
	"saferoute/internal/domain/service"
	"saferoute/internal/geo"

	"golang.org/x/sync/singleflight"
)

// FlowCache memoises traffic flow lookups by ~1 km bucket for the lifetime of
// one scoring request. Concurrent lookups of the same bucket share one fetch.
// A failed fetch is cached as "no data" so the bucket is not retried within
// the request.
type FlowCache struct {
	provider service.TrafficFlowProvider
	logger   *slog.Logger

	mu      sync.Mutex
	entries map[string]*entity.TrafficFlowSample
	group   singleflight.Group
	fetches int
}

// NewFlowCache creates an empty cache. A nil provider makes every lookup miss.
func NewFlowCache(provider service.TrafficFlowProvider, logger *slog.Logger) *FlowCache {
	if logger == nil {
		logger = slog.Default()
	}

	return &FlowCache{
		provider: provider,
		logger:   logger,
		entries:  make(map[string]*entity.TrafficFlowSample),
	}
}

// FlowCacheKey rounds p to two decimals, a bucket of roughly 1 km.
func FlowCacheKey(p geo.Point) string {
	lat := math.Round(p.Lat*100) / 100
	lon := math.Round(p.Lon*100) / 100

	return strconv.FormatFloat(lat, 'f', 2, 64) + "," + strconv.FormatFloat(lon, 'f', 2, 64)
}

// Get returns the flow sample for p's bucket, fetching it on first use.
// It never fails: provider errors are logged and yield nil.
func (c *FlowCache) Get(ctx context.Context, p geo.Point) *entity.TrafficFlowSample {
	if c.provider == nil {
		return nil
	}

	key := FlowCacheKey(p)

	c.mu.Lock()
	sample, ok := c.entries[key]
	c.mu.Unlock()
	if ok {
		return sample
	}

	result, _, _ := c.group.Do(key, func() (any, error) {
		c.mu.Lock()
		if cached, ok := c.entries[key]; ok {
			c.mu.Unlock()

			return cached, nil
		}
		c.fetches++
		c.mu.Unlock()

		fetched, err := c.provider.FetchTrafficFlow(ctx, p)
		if err != nil {
			c.logger.Warn("Traffic flow fetch failed, using default",
				slog.String("bucket", key),
				slog.Any("error", err),
			)
			fetched = nil
		}

		c.mu.Lock()
		c.entries[key] = fetched
		c.mu.Unlock()

		return fetched, nil
	})

	flow, _ := result.(*entity.TrafficFlowSample)

	return flow
}

// Fetches returns how many provider calls the cache has made.
func (c *FlowCache) Fetches() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fetches
}
