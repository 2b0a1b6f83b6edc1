package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/bizdir/internal/service"
)

type ExportHandler struct {
	export *service.ExportService
}

func NewExportHandler(export *service.ExportService) *ExportHandler {
	return &ExportHandler{export: export}
}

// Export downloads the catalogue in the format accepted by Import.
func (h *ExportHandler) Export(c *gin.Context) {
	payload, err := h.export.Export(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		handleError(c, err)
		return
	}
	fileName := fmt.Sprintf("bizdir-companies-%s.json", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/json", raw)
}
