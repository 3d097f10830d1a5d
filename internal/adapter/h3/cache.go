package h3

import (
	"errors"
	"strconv"

	"github.com/bluele/gcache"
	"github.com/couchcryptid/ride-data-etl/internal/domain"
	"github.com/couchcryptid/ride-data-etl/internal/observability"
)

// CachedIndexer wraps a CellIndexer with an in-memory LRU cache.
// Survey exports repeat the same stops heavily, so most lookups hit.
type CachedIndexer struct {
	inner   domain.CellIndexer
	cache   gcache.Cache
	metrics *observability.Metrics
}

// NewCachedIndexer creates a cache decorator around an indexer.
func NewCachedIndexer(inner domain.CellIndexer, maxEntries int, metrics *observability.Metrics) *CachedIndexer {
	return &CachedIndexer{
		inner:   inner,
		cache:   gcache.New(maxEntries).LRU().Build(),
		metrics: metrics,
	}
}

func (c *CachedIndexer) CellFor(lat, lng float64, resolution int) (domain.CellID, error) {
	key := cacheKey(lat, lng, resolution)
	if v, err := c.cache.Get(key); err == nil {
		c.metrics.CellCache.WithLabelValues("hit").Inc()
		return v.(domain.CellID), nil
	} else if !errors.Is(err, gcache.KeyNotFoundError) {
		return "", err
	}

	c.metrics.CellCache.WithLabelValues("miss").Inc()
	cell, err := c.inner.CellFor(lat, lng, resolution)
	if err != nil {
		return "", err
	}
	_ = c.cache.Set(key, cell)
	return cell, nil
}

// cacheKey uses the shortest exact float representation so distinct
// coordinates never share an entry.
func cacheKey(lat, lng float64, resolution int) string {
	return strconv.Itoa(resolution) + ":" +
		strconv.FormatFloat(lat, 'g', -1, 64) + "," +
		strconv.FormatFloat(lng, 'g', -1, 64)
}
