package searchcache

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

type testParams struct {
	Query    string   `json:"query,omitempty"`
	Location string   `json:"location,omitempty"`
	Services []string `json:"services,omitempty"`
}

type result struct {
	ID   string
	Name string
}

func newTestCache(clock *fakeClock) *Cache[result] {
	return New[result](WithClock(clock.Now))
}

func TestCacheSetThenGet(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	c := newTestCache(clock)
	params := testParams{Query: "web", Services: []string{"seo"}}
	want := []result{{ID: "1", Name: "Sydney Web Co"}, {ID: "2", Name: "Perth Web"}}

	c.Set(params, want)
	got, ok := c.Get(params)
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	c := newTestCache(clock)
	c.Set(testParams{Query: "a"}, []result{{ID: "1"}})

	_, ok := c.Get(testParams{Query: "b"})
	require.False(t, ok)
}

func TestCacheOverwriteKeepsSingleEntry(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	c := newTestCache(clock)
	params := testParams{Query: "a"}
	c.Set(params, []result{{ID: "1"}})
	c.Set(params, []result{{ID: "2"}})

	require.Equal(t, 1, c.Len())
	got, ok := c.Get(params)
	require.True(t, ok)
	require.Equal(t, []result{{ID: "2"}}, got)
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	c := newTestCache(clock)
	params := testParams{Query: "plumber"}
	c.Set(params, []result{{ID: "1"}})

	clock.Advance(DefaultTTL)
	_, ok := c.Get(params)
	require.True(t, ok, "entry exactly at ttl is still valid")

	clock.Advance(time.Millisecond)
	_, ok = c.Get(params)
	require.False(t, ok)
	require.Equal(t, 0, c.Len())
}

func TestCacheSweepRunsOnSet(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	c := newTestCache(clock)
	c.Set(testParams{Query: "old"}, []result{{ID: "1"}})
	clock.Advance(6 * time.Minute)
	c.Set(testParams{Query: "new"}, []result{{ID: "2"}})

	require.Equal(t, 1, c.Len())
}

func TestCacheEvictsOldestOverCapacity(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	c := newTestCache(clock)
	for i := 0; i < DefaultCapacity+1; i++ {
		c.Set(testParams{Query: fmt.Sprintf("q-%d", i)}, []result{{ID: fmt.Sprint(i)}})
		clock.Advance(time.Millisecond)
	}

	require.Equal(t, DefaultCapacity, c.Len())
	_, ok := c.Get(testParams{Query: "q-0"})
	require.False(t, ok)
	for i := 1; i <= DefaultCapacity; i++ {
		_, ok := c.Get(testParams{Query: fmt.Sprintf("q-%d", i)})
		require.True(t, ok, "q-%d should survive", i)
	}
}

func TestCacheEvictionUsesInsertionOrderOnTies(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	c := New[result](WithClock(clock.Now), WithCapacity(2))
	c.Set(testParams{Query: "a"}, nil)
	c.Set(testParams{Query: "b"}, nil)
	c.Set(testParams{Query: "c"}, nil)

	_, ok := c.Get(testParams{Query: "a"})
	require.False(t, ok)
	_, ok = c.Get(testParams{Query: "c"})
	require.True(t, ok)
}

func TestCacheClear(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	c := newTestCache(clock)
	keys := []testParams{{Query: "a"}, {Query: "b"}, {Location: "sydney"}}
	for _, k := range keys {
		c.Set(k, []result{{ID: "x"}})
	}
	c.Clear()
	for _, k := range keys {
		_, ok := c.Get(k)
		require.False(t, ok)
	}
}

func TestCacheReorderedMapKeysShareEntry(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	c := newTestCache(clock)
	c.Set(map[string]interface{}{"query": "web", "location": "perth"}, []result{{ID: "1"}})

	got, ok := c.Get(map[string]interface{}{"location": "perth", "query": "web"})
	require.True(t, ok)
	require.Equal(t, []result{{ID: "1"}}, got)
}

func TestCacheUnserialisableParamsNeverCached(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	c := newTestCache(clock)
	bad := map[string]interface{}{"score": math.NaN()}
	c.Set(bad, []result{{ID: "1"}})

	require.Equal(t, 0, c.Len())
	_, ok := c.Get(bad)
	require.False(t, ok)
}

func TestKeyStructAndMapAgree(t *testing.T) {
	fromStruct, ok := Key(testParams{Query: "web", Location: "perth"})
	require.True(t, ok)
	fromMap, ok := Key(map[string]string{"location": "perth", "query": "web"})
	require.True(t, ok)
	require.Equal(t, fromStruct, fromMap)
}

type node struct {
	Next *node `json:"next"`
}

func TestKeyRejectsCycles(t *testing.T) {
	n := &node{}
	n.Next = n
	_, ok := Key(n)
	require.False(t, ok)

	_, ok = Key(func() {})
	require.False(t, ok)
}
