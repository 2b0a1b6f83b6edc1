package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/bizdir/internal/pkg/response"
	"github.com/xxxsen/bizdir/internal/service"
)

type CompareHandler struct {
	compare *service.CompareService
}

func NewCompareHandler(compare *service.CompareService) *CompareHandler {
	return &CompareHandler{compare: compare}
}

func (h *CompareHandler) Compare(c *gin.Context) {
	result, err := h.compare.Compare(c.Request.Context(), queryList(c, "ids"), c.Query("category"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}
