package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/bizdir/internal/pkg/jwt"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRequestIDKey))
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(resp.Header().Get(HeaderRequestID))
	require.NoError(t, err)
	require.Equal(t, resp.Header().Get(HeaderRequestID), resp.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc")
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, "abc", resp.Header().Get(HeaderRequestID))
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"https://bizdir.example"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://bizdir.example")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, "https://bizdir.example", resp.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Empty(t, resp.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusNoContent, resp.Code)
}

func TestJWTAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	signer := jwt.NewSigner([]byte("secret"), time.Hour)
	r := gin.New()
	r.Use(JWTAuth(signer))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, AdminID(c)+"/"+AdminName(c)) })

	token, _, err := signer.Sign("admin-1", "root")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, "admin-1/root", resp.Body.String())

	for _, header := range []string{"", "Bearer", "Bearer  ", "Basic abc", "Bearer not-a-token"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		require.NotContains(t, resp.Body.String(), "admin-1/root", header)
	}
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("bearer abc ")
	require.True(t, ok)
	require.Equal(t, "abc", token)
	_, ok = bearerToken("Token abc")
	require.False(t, ok)
}
