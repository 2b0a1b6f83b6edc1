package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/bizdir/internal/config"
	"github.com/xxxsen/bizdir/internal/pkg/response"
	"github.com/xxxsen/bizdir/internal/service"
)

type PropertiesHandler struct {
	properties     config.Properties
	uploadMaxBytes int64
}

func NewPropertiesHandler(properties config.Properties, uploadMaxBytes int64) *PropertiesHandler {
	return &PropertiesHandler{properties: properties, uploadMaxBytes: uploadMaxBytes}
}

func (h *PropertiesHandler) Get(c *gin.Context) {
	response.Success(c, gin.H{
		"properties":    h.properties,
		"upload_limit":  formatUploadLimit(h.uploadMaxBytes),
		"compare_limit": service.MaxCompareCompanies,
		"compare_modes": service.CompareCategories(),
	})
}
