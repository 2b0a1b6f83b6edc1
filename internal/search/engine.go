package search

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/xxxsen/bizdir/internal/fuzzy"
	"github.com/xxxsen/bizdir/internal/model"
	"github.com/xxxsen/bizdir/internal/pkg/abn"
	"github.com/xxxsen/bizdir/internal/searchcache"
)

const (
	serviceThreshold    = 0.7
	industryThreshold   = 0.7
	abnThreshold        = 0.8
	queryWordThreshold  = 0.8
	suggestThreshold    = 0.6
	defaultSuggestLimit = 5
)

// Engine answers catalogue searches from an in-memory snapshot. Results are
// shared with the cache and must be treated as read-only by callers.
type Engine struct {
	index   atomic.Pointer[Index]
	cache   *searchcache.Cache[model.Company]
	history *History
	group   singleflight.Group

	// mu orders snapshot swaps against cache writes.
	mu sync.Mutex
}

func NewEngine(cache *searchcache.Cache[model.Company], history *History) *Engine {
	e := &Engine{cache: cache, history: history}
	e.index.Store(NewIndex(nil))
	return e
}

// Replace swaps in a new catalogue snapshot and drops every cached result.
func (e *Engine) Replace(companies []model.Company) {
	idx := NewIndex(companies)
	e.mu.Lock()
	defer e.mu.Unlock()
	idx.gen = e.index.Load().gen + 1
	e.index.Store(idx)
	e.cache.Clear()
}

// store caches results only while idx is still the live snapshot.
func (e *Engine) store(idx *Index, params Params, results []model.Company) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.index.Load() != idx {
		return false
	}
	e.cache.Set(params, results)
	return true
}

func (e *Engine) Size() int {
	return e.index.Load().Len()
}

func (e *Engine) Search(ctx context.Context, clientID string, params Params) []model.Company {
	params = params.Normalize()
	if e.history != nil && clientID != "" && !params.IsEmpty() {
		e.history.Add(clientID, params)
	}
	if cached, ok := e.cache.Get(params); ok {
		logutil.GetLogger(ctx).Debug("search cache hit", zap.String("query", params.Query))
		return cached
	}
	idx := e.index.Load()
	key, ok := searchcache.Key(params)
	if !ok {
		return idx.search(params)
	}
	v, _, shared := e.group.Do(strconv.FormatUint(idx.gen, 10)+"|"+key, func() (interface{}, error) {
		results := idx.search(params)
		if !e.store(idx, params, results) {
			logutil.GetLogger(ctx).Debug("search snapshot replaced, result not cached", zap.String("query", params.Query))
		}
		return results, nil
	})
	if shared {
		logutil.GetLogger(ctx).Debug("search result shared", zap.String("query", params.Query))
	}
	return v.([]model.Company)
}

func (idx *Index) search(params Params) []model.Company {
	positions, hits := idx.matchQuery(params.Query)
	filtered := positions[:0:0]
	for _, pos := range positions {
		if idx.keep(pos, params) {
			filtered = append(filtered, pos)
		}
	}
	idx.sortPositions(filtered, hits, params)
	results := make([]model.Company, 0, len(filtered))
	for _, pos := range filtered {
		results = append(results, idx.companies[pos])
	}
	return results
}

// matchQuery selects candidates by query words over the name, service and ABN
// indexes. Words without an exact hit fall back to similar index words.
// hits counts matched query words per position.
func (idx *Index) matchQuery(query string) ([]int, map[int]int) {
	hits := make(map[int]int)
	if query == "" {
		all := make([]int, idx.Len())
		for i := range all {
			all[i] = i
		}
		return all, hits
	}
	for _, word := range strings.Fields(query) {
		matched := make(map[int]struct{})
		collect := func(list []int) {
			for _, pos := range list {
				matched[pos] = struct{}{}
			}
		}
		collect(idx.name[word])
		collect(idx.services[word])
		if digits := abn.Clean(word); digits != "" {
			if pos, ok := idx.abn[digits]; ok {
				matched[pos] = struct{}{}
			}
		}
		if len(matched) == 0 {
			for _, key := range idx.nameKeys {
				if fuzzy.Similarity(key, word) >= queryWordThreshold {
					collect(idx.name[key])
				}
			}
			for _, key := range idx.serviceKeys {
				if fuzzy.Similarity(key, word) >= queryWordThreshold {
					collect(idx.services[key])
				}
			}
		}
		for pos := range matched {
			hits[pos]++
		}
	}
	positions := make([]int, 0, len(hits))
	for pos := range hits {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	return positions, hits
}

func (idx *Index) keep(pos int, params Params) bool {
	c := &idx.companies[pos]
	if params.Location != "" {
		loc := idx.locations[pos]
		found := false
		for _, word := range strings.Fields(params.Location) {
			if strings.Contains(loc, word) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(params.Services) > 0 && !matchAnyService(c.Services, params.Services) {
		return false
	}
	if len(params.Size) > 0 && !containsFold(params.Size, c.TeamSize) {
		return false
	}
	if params.Industry != "" {
		if c.Industry == "" || !fuzzy.Match(c.Industry, params.Industry, industryThreshold) {
			return false
		}
	}
	if params.ABN != "" && !matchABN(c.ABN, params.ABN) {
		return false
	}
	return true
}

func matchAnyService(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if fuzzy.Match(h, w, serviceThreshold) {
				return true
			}
		}
	}
	return false
}

func containsFold(list []string, v string) bool {
	if v == "" {
		return false
	}
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}

func matchABN(companyABN, query string) bool {
	if companyABN == "" {
		return false
	}
	have, want := abn.Clean(companyABN), abn.Clean(query)
	if want == "" {
		have, want = companyABN, query
	}
	return fuzzy.Match(have, want, abnThreshold) || strings.Contains(have, want)
}

func (idx *Index) sortPositions(positions []int, hits map[int]int, params Params) {
	desc := params.SortOrder != SortAsc
	var less func(a, b int) bool
	switch params.SortBy {
	case SortByName:
		less = func(a, b int) bool {
			return strings.ToLower(idx.companies[a].DisplayName()) < strings.ToLower(idx.companies[b].DisplayName())
		}
	case SortByRating:
		less = func(a, b int) bool {
			return idx.companies[a].Rating() < idx.companies[b].Rating()
		}
	default:
		less = func(a, b int) bool {
			return hits[a] < hits[b]
		}
	}
	sort.SliceStable(positions, func(i, j int) bool {
		if desc {
			return less(positions[j], positions[i])
		}
		return less(positions[i], positions[j])
	})
}

// Suggest proposes index words containing input, ranked by similarity.
func (e *Engine) Suggest(input string, limit int) []string {
	query := strings.ToLower(strings.TrimSpace(input))
	if query == "" {
		return []string{}
	}
	if limit <= 0 {
		limit = defaultSuggestLimit
	}
	idx := e.index.Load()
	seen := make(map[string]struct{})
	terms := make([]string, 0)
	for _, words := range []wordIndex{idx.name, idx.services, idx.industry} {
		for _, word := range words.sortedKeys() {
			if _, ok := seen[word]; ok || !strings.Contains(word, query) {
				continue
			}
			seen[word] = struct{}{}
			terms = append(terms, word)
		}
	}
	ranked := fuzzy.Search(query, terms, suggestThreshold)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func (e *Engine) History() *History {
	return e.history
}
