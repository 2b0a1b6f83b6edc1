package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/bizdir/internal/model"
	"github.com/xxxsen/bizdir/internal/search"
	"github.com/xxxsen/bizdir/internal/searchcache"
)

func newTestSearchService(t *testing.T) *SearchService {
	t.Helper()
	engine := search.NewEngine(searchcache.New[model.Company](), search.NewHistory(10, 16, time.Hour))
	svc := NewSearchService(engine, testCompanies())
	require.NoError(t, svc.Refresh(context.Background()))
	return svc
}

func TestSearchServiceRefreshAndSearch(t *testing.T) {
	svc := newTestSearchService(t)
	page := svc.Search(context.Background(), "client", search.Params{Query: "web"}, 10, 0)
	require.Equal(t, 2, page.Total)
	require.Len(t, page.Items, 2)
	require.Equal(t, "c2", page.Items[1].ID)
	require.Empty(t, page.Items[1].ABNDisplay)

	item := page.Items[0]
	require.Equal(t, "c1", item.ID)
	require.Equal(t, "Sydney Web Co", item.DisplayName)
	require.Equal(t, "51 824 753 556", item.ABNDisplay)
	require.Equal(t, 4.5, item.Rating)
	require.NotNil(t, item.Highlight)
	require.Len(t, item.Highlight.Name.Segments, 3)
	require.True(t, item.Highlight.Name.Segments[1].Match)
	require.Equal(t, "Web", item.Highlight.Name.Segments[1].Text)
}

func TestSearchServicePaging(t *testing.T) {
	svc := newTestSearchService(t)
	ctx := context.Background()

	page := svc.Search(ctx, "", search.Params{}, 2, 0)
	require.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	require.Nil(t, page.Items[0].Highlight)

	page = svc.Search(ctx, "", search.Params{}, 2, 2)
	require.Len(t, page.Items, 1)

	page = svc.Search(ctx, "", search.Params{}, 2, 10)
	require.Empty(t, page.Items)
	require.Equal(t, 3, page.Offset)

	page = svc.Search(ctx, "", search.Params{}, 0, -1)
	require.Equal(t, 20, page.Limit)
	require.Equal(t, 0, page.Offset)
}

func TestSearchServicePagingExtremeBounds(t *testing.T) {
	svc := newTestSearchService(t)
	ctx := context.Background()

	page := svc.Search(ctx, "", search.Params{}, 20, math.MaxInt)
	require.Empty(t, page.Items)
	require.Equal(t, 3, page.Offset)

	page = svc.Search(ctx, "", search.Params{}, math.MaxInt, 1)
	require.Len(t, page.Items, 2)
}

func TestSearchServiceHistory(t *testing.T) {
	svc := newTestSearchService(t)
	svc.Search(context.Background(), "client", search.Params{Query: "web"}, 10, 0)
	require.Len(t, svc.History("client"), 1)
	svc.ClearHistory("client")
	require.Empty(t, svc.History("client"))
}

func TestSearchServiceSuggest(t *testing.T) {
	svc := newTestSearchService(t)
	require.Contains(t, svc.Suggest("brandin", 5), "branding")
}
