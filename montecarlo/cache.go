package montecarlo

import (
	"context"
	"fmt"
	"maps"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache memoizes batch summaries. Batches are deterministic for a
// given config and seed, so a hit is exactly what a rerun would
// produce.
type Cache struct {
	store *cache.Cache
	run   func(context.Context, BatchConfig) ([]SimulationResult, error)
	hits  atomic.Int64
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		store: cache.New(ttl, 2*ttl),
		run:   RunBatch,
	}
}

// Summary returns the summary for cfg, running the batch only when
// it is not cached. The boolean reports a cache hit. Callers get
// their own copy of the outcome counts.
func (c *Cache) Summary(ctx context.Context, cfg BatchConfig) (Summary, bool, error) {
	key := cacheKey(cfg)
	if v, ok := c.store.Get(key); ok {
		c.hits.Add(1)
		return v.(Summary).clone(), true, nil
	}

	results, err := c.run(ctx, cfg)
	if err != nil {
		return Summary{}, false, err
	}

	s := Summarize(results)
	c.store.SetDefault(key, s.clone())
	return s, false, nil
}

func (c *Cache) Len() int {
	return c.store.ItemCount()
}

func (c *Cache) Hits() int {
	return int(c.hits.Load())
}

func (s Summary) clone() Summary {
	s.Outcomes = maps.Clone(s.Outcomes)
	return s
}

// Worker count and logging do not change results and are left out.
func cacheKey(cfg BatchConfig) string {
	g := cfg.Game
	return fmt.Sprintf("%d/%d/%s/%s/%d/%d/%d",
		g.Loyalists, g.Traitors, g.EndCondition, g.Strategy,
		cfg.Iterations, cfg.Seed1, cfg.Seed2,
	)
}
