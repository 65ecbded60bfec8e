package memory

import (
	"context"
	"encoding/json"
	"time"

	"rnd-intake-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type StatsCache struct {
	cache *cache.Cache
}

// NewStatsCache keeps entries for ttl and purges expired ones every minute.
func NewStatsCache(ttl time.Duration) contract.StatsCache {
	return &StatsCache{
		cache: cache.New(ttl, time.Minute),
	}
}

func (c *StatsCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	x, found := c.cache.Get(key)
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(x.([]byte), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *StatsCache) Set(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.cache.Set(key, raw, cache.DefaultExpiration)
	return nil
}

func (c *StatsCache) Invalidate(_ context.Context, keys ...string) error {
	for _, k := range keys {
		c.cache.Delete(k)
	}
	return nil
}
