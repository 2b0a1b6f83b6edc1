package service

import (
	"context"
	"sync"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/bizdir/internal/fuzzy"
	"github.com/xxxsen/bizdir/internal/model"
	"github.com/xxxsen/bizdir/internal/pkg/abn"
	"github.com/xxxsen/bizdir/internal/search"
)

type CompanyLoader interface {
	LoadAll(ctx context.Context) ([]model.Company, error)
}

// SearchRefresher is notified after catalogue writes.
type SearchRefresher interface {
	Refresh(ctx context.Context) error
}

type ResultHighlight struct {
	Name        fuzzy.Highlighted `json:"name"`
	Description fuzzy.Highlighted `json:"description"`
}

type SearchResult struct {
	model.Company
	DisplayName string           `json:"display_name"`
	ABNDisplay  string           `json:"abn_display,omitempty"`
	Rating      float64          `json:"rating"`
	Highlight   *ResultHighlight `json:"highlight,omitempty"`
}

type SearchPage struct {
	Items  []SearchResult `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type SearchService struct {
	engine *search.Engine
	loader CompanyLoader
	mu     sync.Mutex
}

func NewSearchService(engine *search.Engine, loader CompanyLoader) *SearchService {
	return &SearchService{engine: engine, loader: loader}
}

// Refresh reloads the whole catalogue and swaps the search snapshot.
func (s *SearchService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()
	companies, err := s.loader.LoadAll(ctx)
	if err != nil {
		return err
	}
	s.engine.Replace(companies)
	logutil.GetLogger(ctx).Info("search index refreshed",
		zap.Int("companies", len(companies)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

func (s *SearchService) Search(ctx context.Context, clientID string, params search.Params, limit, offset int) *SearchPage {
	companies := s.engine.Search(ctx, clientID, params)
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 20
	}
	total := len(companies)
	if offset > total {
		offset = total
	}
	end := offset + min(limit, total-offset)
	query := params.Normalize().Query
	items := make([]SearchResult, 0, end-offset)
	for _, c := range companies[offset:end] {
		items = append(items, buildSearchResult(c, query))
	}
	return &SearchPage{Items: items, Total: total, Limit: limit, Offset: offset}
}

func buildSearchResult(c model.Company, query string) SearchResult {
	item := SearchResult{
		Company:     c,
		DisplayName: c.DisplayName(),
		Rating:      c.Rating(),
	}
	if c.ABN != "" {
		item.ABNDisplay = abn.Format(c.ABN)
	}
	if query != "" {
		item.Highlight = &ResultHighlight{
			Name:        fuzzy.HighlightName(item.DisplayName, query),
			Description: fuzzy.HighlightDescription(c.Description(), query),
		}
	}
	return item
}

func (s *SearchService) Suggest(input string, limit int) []string {
	return s.engine.Suggest(input, limit)
}

func (s *SearchService) History(clientID string) []search.HistoryItem {
	if h := s.engine.History(); h != nil {
		return h.List(clientID)
	}
	return []search.HistoryItem{}
}

func (s *SearchService) ClearHistory(clientID string) {
	if h := s.engine.History(); h != nil {
		h.Clear(clientID)
	}
}
