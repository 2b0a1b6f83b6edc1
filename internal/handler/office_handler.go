package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/bizdir/internal/pkg/response"
	"github.com/xxxsen/bizdir/internal/service"
)

type OfficeHandler struct {
	offices *service.OfficeService
}

func NewOfficeHandler(offices *service.OfficeService) *OfficeHandler {
	return &OfficeHandler{offices: offices}
}

func (h *OfficeHandler) List(c *gin.Context) {
	items, err := h.offices.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

func (h *OfficeHandler) Create(c *gin.Context) {
	var req service.OfficeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "invalid request")
		return
	}
	item, err := h.offices.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *OfficeHandler) Update(c *gin.Context) {
	var req service.OfficeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "invalid request")
		return
	}
	item, err := h.offices.Update(c.Request.Context(), c.Param("id"), c.Param("office_id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *OfficeHandler) Delete(c *gin.Context) {
	if err := h.offices.Delete(c.Request.Context(), c.Param("id"), c.Param("office_id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

// StateCounts reports how many companies have an office in each state.
func (h *OfficeHandler) StateCounts(c *gin.Context) {
	items, err := h.offices.StateCounts(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}
