package searchcache

import (
	"sort"
	"sync"
	"time"
)

const (
	DefaultTTL      = 5 * time.Minute
	DefaultCapacity = 100
)

type entry[T any] struct {
	results   []T
	timestamp time.Time
	seq       uint64
}

// Cache memoises search results by canonical parameter key. Expired entries
// are dropped lazily at the start of every Get and Set; there is no timer.
type Cache[T any] struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	now      func() time.Time
	seq      uint64
	entries  map[string]*entry[T]
}

type Option func(*options)

type options struct {
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func New[T any](opts ...Option) *Cache[T] {
	o := &options{
		ttl:      DefaultTTL,
		capacity: DefaultCapacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return &Cache[T]{
		ttl:      o.ttl,
		capacity: o.capacity,
		now:      o.now,
		entries:  make(map[string]*entry[T]),
	}
}

func (c *Cache[T]) Get(params any) ([]T, bool) {
	key, ok := Key(params)
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	c.sweepLocked(now)
	if !ok {
		return nil, false
	}
	item, exists := c.entries[key]
	if !exists || now.Sub(item.timestamp) > c.ttl {
		return nil, false
	}
	return item.results, true
}

func (c *Cache[T]) Set(params any, results []T) {
	key, ok := Key(params)
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	c.sweepLocked(now)
	if !ok {
		return
	}
	c.seq++
	c.entries[key] = &entry[T]{results: results, timestamp: now, seq: c.seq}
	c.evictLocked()
}

func (c *Cache[T]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*entry[T])
	c.mu.Unlock()
}

func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache[T]) sweepLocked(now time.Time) {
	for key, item := range c.entries {
		if now.Sub(item.timestamp) > c.ttl {
			delete(c.entries, key)
		}
	}
}

// evictLocked drops the oldest entries until the cache is back at capacity.
// Equal timestamps fall back to insertion order.
func (c *Cache[T]) evictLocked() {
	overflow := len(c.entries) - c.capacity
	if overflow <= 0 {
		return
	}
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := c.entries[keys[i]], c.entries[keys[j]]
		if !a.timestamp.Equal(b.timestamp) {
			return a.timestamp.Before(b.timestamp)
		}
		return a.seq < b.seq
	})
	for _, key := range keys[:overflow] {
		delete(c.entries, key)
	}
}
