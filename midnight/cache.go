package midnight

import (
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// Evaluator is a Provider that also names the strategy behind each value.
type Evaluator interface {
	Provider
	Evaluate(t time.Time) (float64, string)
}

// Cache memoizes a Provider by exact instant. Two distinct instants never
// share an entry, so a cached value is never stale.
type Cache struct {
	next    Provider
	entries *lru.Cache
}

type result struct {
	lon      float64
	strategy string
}

// Cached wraps p with an LRU of the given size.
func Cached(p Provider, size int) (*Cache, error) {
	entries, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{next: p, entries: entries}, nil
}

// Evaluate returns the cached longitude and strategy for t. The strategy is
// empty when the wrapped provider does not report one.
func (c *Cache) Evaluate(t time.Time) (float64, string) {
	key := t.UnixNano()
	if v, ok := c.entries.Get(key); ok {
		r := v.(result)
		return r.lon, r.strategy
	}
	var r result
	if e, ok := c.next.(Evaluator); ok {
		r.lon, r.strategy = e.Evaluate(t)
	} else {
		r.lon = c.next.MidnightLongitude(t)
	}
	c.entries.Add(key, r)
	return r.lon, r.strategy
}

// MidnightLongitude implements Provider.
func (c *Cache) MidnightLongitude(t time.Time) float64 {
	lon, _ := c.Evaluate(t)
	return lon
}

// Len returns the number of cached instants.
func (c *Cache) Len() int {
	return c.entries.Len()
}
