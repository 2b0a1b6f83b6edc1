package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/bizdir/internal/middleware"
	"github.com/xxxsen/bizdir/internal/pkg/errcode"
	"github.com/xxxsen/bizdir/internal/pkg/response"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	headerClientID  = "X-Client-Id"
)

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.String("request_id", c.GetString(middleware.ContextRequestIDKey)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("admin_id", middleware.AdminID(c)),
		zap.Error(err),
	)
	code, msg := errcode.Resolve(err)
	response.Error(c, code, msg)
}

func invalid(c *gin.Context, message string) {
	response.Error(c, errcode.ErrInvalid, message)
}

// parsePage reads limit and offset, clamping limit to [1, 100].
func parsePage(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset, err := strconv.Atoi(c.Query("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// queryList accepts both repeated keys and comma separated values.
func queryList(c *gin.Context, key string) []string {
	out := make([]string, 0)
	for _, raw := range c.QueryArray(key) {
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// clientID identifies a browser for search history. Callers may pin it with
// the X-Client-Id header; otherwise the client ip is used.
func clientID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(headerClientID)); id != "" {
		if len(id) > 64 {
			id = id[:64]
		}
		return id
	}
	return c.ClientIP()
}
