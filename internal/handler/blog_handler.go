package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/bizdir/internal/pkg/response"
	"github.com/xxxsen/bizdir/internal/repo"
	"github.com/xxxsen/bizdir/internal/service"
)

type BlogHandler struct {
	blog *service.BlogService
}

func NewBlogHandler(blog *service.BlogService) *BlogHandler {
	return &BlogHandler{blog: blog}
}

func (h *BlogHandler) ListPublished(c *gin.Context) {
	limit, offset := parsePage(c)
	items, total, err := h.blog.ListPublished(c.Request.Context(), repo.BlogFilter{
		Category: c.Query("category"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.SuccessPage(c, items, total, limit, offset)
}

func (h *BlogHandler) GetPublished(c *gin.Context) {
	post, err := h.blog.GetPublished(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, post)
}

func (h *BlogHandler) List(c *gin.Context) {
	limit, offset := parsePage(c)
	items, total, err := h.blog.List(c.Request.Context(), repo.BlogFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.SuccessPage(c, items, total, limit, offset)
}

func (h *BlogHandler) Get(c *gin.Context) {
	post, err := h.blog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, post)
}

func (h *BlogHandler) Create(c *gin.Context) {
	var req service.BlogInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "invalid request")
		return
	}
	post, err := h.blog.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, post)
}

func (h *BlogHandler) Update(c *gin.Context) {
	var req service.BlogInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "invalid request")
		return
	}
	post, err := h.blog.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, post)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.blog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
