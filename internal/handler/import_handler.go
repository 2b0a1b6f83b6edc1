package handler

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/bizdir/internal/pkg/errcode"
	"github.com/xxxsen/bizdir/internal/pkg/response"
	"github.com/xxxsen/bizdir/internal/service"
)

type ImportHandler struct {
	companies     *service.CompanyService
	maxUploadSize int64
}

func NewImportHandler(companies *service.CompanyService, maxUploadSize int64) *ImportHandler {
	return &ImportHandler{companies: companies, maxUploadSize: maxUploadSize}
}

func (h *ImportHandler) Import(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "file is required")
		return
	}
	if h.maxUploadSize > 0 && file.Size > h.maxUploadSize {
		response.Error(c, errcode.ErrInvalidFile, "file too large (max "+formatUploadLimit(h.maxUploadSize)+")")
		return
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".json" {
		response.Error(c, errcode.ErrInvalidFile, "json file required")
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to open file")
		return
	}
	defer opened.Close()
	raw, err := io.ReadAll(opened)
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to read file")
		return
	}
	inputs, err := service.DecodeCompanies(raw)
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, err.Error())
		return
	}
	created, err := h.companies.Import(c.Request.Context(), inputs)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"created": created, "total": len(inputs)})
}
