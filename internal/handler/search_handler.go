package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/bizdir/internal/pkg/response"
	"github.com/xxxsen/bizdir/internal/search"
	"github.com/xxxsen/bizdir/internal/service"
)

type SearchHandler struct {
	search *service.SearchService
}

func NewSearchHandler(search *service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

func (h *SearchHandler) Search(c *gin.Context) {
	params := search.Params{
		Query:     c.Query("query"),
		Location:  c.Query("location"),
		Services:  queryList(c, "services"),
		Size:      queryList(c, "size"),
		Budget:    queryList(c, "budget"),
		Industry:  c.Query("industry"),
		ABN:       c.Query("abn"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if params.Query == "" {
		params.Query = c.Query("q")
	}
	limit, offset := parsePage(c)
	response.Success(c, h.search.Search(c.Request.Context(), clientID(c), params, limit, offset))
}

func (h *SearchHandler) Suggestions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	response.Success(c, gin.H{"suggestions": h.search.Suggest(c.Query("query"), limit)})
}

func (h *SearchHandler) History(c *gin.Context) {
	response.Success(c, gin.H{"items": h.search.History(clientID(c))})
}

func (h *SearchHandler) ClearHistory(c *gin.Context) {
	h.search.ClearHistory(clientID(c))
	response.Success(c, gin.H{"ok": true})
}

// Refresh rebuilds the search snapshot from the database on demand.
func (h *SearchHandler) Refresh(c *gin.Context) {
	if err := h.search.Refresh(c.Request.Context()); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
