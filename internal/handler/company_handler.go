package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/bizdir/internal/pkg/response"
	"github.com/xxxsen/bizdir/internal/repo"
	"github.com/xxxsen/bizdir/internal/service"
)

type CompanyHandler struct {
	companies *service.CompanyService
}

func NewCompanyHandler(companies *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

func (h *CompanyHandler) List(c *gin.Context) {
	limit, offset := parsePage(c)
	items, total, err := h.companies.List(c.Request.Context(), repo.CompanyFilter{
		Industry: c.Query("industry"),
		State:    c.Query("state"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.SuccessPage(c, items, total, limit, offset)
}

func (h *CompanyHandler) Get(c *gin.Context) {
	item, err := h.companies.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req service.CompanyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "invalid request")
		return
	}
	item, err := h.companies.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	var req service.CompanyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "invalid request")
		return
	}
	item, err := h.companies.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	if err := h.companies.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *CompanyHandler) AddReview(c *gin.Context) {
	var req service.ReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "invalid request")
		return
	}
	review, err := h.companies.AddReview(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, review)
}
