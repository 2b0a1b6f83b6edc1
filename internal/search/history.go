package search

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/xxxsen/bizdir/internal/searchcache"
)

const DefaultHistorySize = 10

type HistoryItem struct {
	Params    Params `json:"params"`
	Timestamp int64  `json:"timestamp"`
}

// History keeps the most recent searches per client, newest first.
type History struct {
	mu    sync.Mutex
	size  int
	now   func() time.Time
	items *expirable.LRU[string, []HistoryItem]
}

func NewHistory(size, clients int, ttl time.Duration) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	if clients <= 0 {
		clients = 1024
	}
	return &History{
		size:  size,
		now:   time.Now,
		items: expirable.NewLRU[string, []HistoryItem](clients, nil, ttl),
	}
}

func (h *History) Add(clientID string, params Params) {
	key, ok := searchcache.Key(params)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	prev, _ := h.items.Get(clientID)
	next := make([]HistoryItem, 0, h.size)
	next = append(next, HistoryItem{Params: params, Timestamp: h.now().UnixMilli()})
	for _, item := range prev {
		if len(next) >= h.size {
			break
		}
		if k, ok := searchcache.Key(item.Params); ok && k == key {
			continue
		}
		next = append(next, item)
	}
	h.items.Add(clientID, next)
}

func (h *History) List(clientID string) []HistoryItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	items, ok := h.items.Get(clientID)
	if !ok {
		return []HistoryItem{}
	}
	out := make([]HistoryItem, len(items))
	copy(out, items)
	return out
}

func (h *History) Clear(clientID string) {
	h.mu.Lock()
	h.items.Remove(clientID)
	h.mu.Unlock()
}
