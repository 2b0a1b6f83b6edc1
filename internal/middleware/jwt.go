package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/bizdir/internal/pkg/errcode"
	"github.com/xxxsen/bizdir/internal/pkg/jwt"
	"github.com/xxxsen/bizdir/internal/pkg/response"
)

const (
	ContextAdminIDKey   = "admin_id"
	ContextAdminNameKey = "admin_name"
)

// JWTAuth guards the admin routes.
func JWTAuth(signer *jwt.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, errcode.ErrUnauthorized, "missing or malformed authorization")
			c.Abort()
			return
		}
		claims, err := signer.Verify(token)
		if err != nil {
			response.Error(c, errcode.ErrUnauthorized, "invalid token")
			c.Abort()
			return
		}
		c.Set(ContextAdminIDKey, claims.AdminID)
		c.Set(ContextAdminNameKey, claims.Username)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func AdminID(c *gin.Context) string {
	return c.GetString(ContextAdminIDKey)
}

func AdminName(c *gin.Context) string {
	return c.GetString(ContextAdminNameKey)
}
