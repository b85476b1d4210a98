package memory

import (
	"time"

	"task-tracking-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// StatsCache keeps recent daily-stats results so repeated dashboard
// polls don't hit the archive table on every request. Entries expire on
// TTL only; archival is append-mostly so short staleness is acceptable.
type StatsCache struct {
	cache *cache.Cache
}

func NewStatsCache(ttl time.Duration) *StatsCache {
	return &StatsCache{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (c *StatsCache) Get(key string) ([]*entity.DailyCompletionStat, bool) {
	if x, found := c.cache.Get(key); found {
		return x.([]*entity.DailyCompletionStat), true
	}
	return nil, false
}

func (c *StatsCache) Set(key string, stats []*entity.DailyCompletionStat) {
	c.cache.Set(key, stats, cache.DefaultExpiration)
}
