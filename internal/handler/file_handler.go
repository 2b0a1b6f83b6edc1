package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/bizdir/internal/filestore"
	"github.com/xxxsen/bizdir/internal/pkg/errcode"
	appErr "github.com/xxxsen/bizdir/internal/pkg/errors"
	"github.com/xxxsen/bizdir/internal/pkg/response"
)

type FileHandler struct {
	store    filestore.Store
	maxBytes int64
}

type UploadResponse struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
}

func NewFileHandler(store filestore.Store, maxBytes int64) *FileHandler {
	return &FileHandler{store: store, maxBytes: maxBytes}
}

// Upload accepts company logos and blog images.
func (h *FileHandler) Upload(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+1024*1024)
	}
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "file is required")
		return
	}
	if h.maxBytes > 0 && file.Size > h.maxBytes {
		response.Error(c, errcode.ErrInvalidFile, "file exceeds "+formatUploadLimit(h.maxBytes))
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to open file")
		return
	}
	defer opened.Close()

	contentType, err := detectContentType(opened)
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to read file")
		return
	}
	if !strings.HasPrefix(contentType, "image/") {
		response.Error(c, errcode.ErrInvalidFile, "only images are accepted")
		return
	}

	key := filestore.NewKey(file.Filename)
	err = h.store.Put(c.Request.Context(), filestore.Object{
		Key:         key,
		Body:        opened,
		Size:        file.Size,
		ContentType: contentType,
	})
	if err != nil {
		logutil.GetLogger(c.Request.Context()).Error("save upload failed", zap.String("key", key), zap.Error(err))
		response.Error(c, errcode.ErrUploadFailed, "failed to upload file")
		return
	}
	response.Success(c, UploadResponse{
		Key:         key,
		URL:         h.store.URL(key, requestBaseURL(c)),
		Name:        file.Filename,
		ContentType: contentType,
	})
}

func (h *FileHandler) Get(c *gin.Context) {
	key := c.Param("key")
	if !filestore.ValidKey(key) {
		c.Status(http.StatusBadRequest)
		return
	}
	file, err := h.store.Open(c.Request.Context(), key)
	if appErr.IsNotFound(err) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		logutil.GetLogger(c.Request.Context()).Error("open file failed", zap.String("key", key), zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	defer file.Close()
	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")
	_, _ = io.Copy(c.Writer, file)
}

func requestBaseURL(c *gin.Context) string {
	proto := c.GetHeader("X-Forwarded-Proto")
	if proto == "" {
		if c.Request.TLS != nil {
			proto = "https"
		} else {
			proto = "http"
		}
	}
	host := c.GetHeader("X-Forwarded-Host")
	if host == "" {
		host = c.Request.Host
	}
	return proto + "://" + host
}

func detectContentType(file io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	read, err := file.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:read]), nil
}

func formatUploadLimit(bytes int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	if bytes >= mb {
		return strconv.FormatInt(bytes/mb, 10) + "MB"
	}
	return strconv.FormatInt((bytes+kb-1)/kb, 10) + "KB"
}
