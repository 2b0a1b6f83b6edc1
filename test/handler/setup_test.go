package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/xxxsen/bizdir/internal/config"
	"github.com/xxxsen/bizdir/internal/filestore"
	"github.com/xxxsen/bizdir/internal/handler"
	"github.com/xxxsen/bizdir/internal/middleware"
	"github.com/xxxsen/bizdir/internal/model"
	"github.com/xxxsen/bizdir/internal/pkg/jwt"
	"github.com/xxxsen/bizdir/internal/repo"
	"github.com/xxxsen/bizdir/internal/search"
	"github.com/xxxsen/bizdir/internal/searchcache"
	"github.com/xxxsen/bizdir/internal/service"
	"github.com/xxxsen/bizdir/test/testutil"
)

const (
	adminUser     = "root"
	adminPassword = "correct-horse"
)

type noopSender struct{}

func (noopSender) Send(_ context.Context, _ service.Mail) error {
	return nil
}

func setupRouter(t *testing.T) (http.Handler, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, cleanup := testutil.OpenTestDB(t)
	companyRepo := repo.NewCompanyRepo(db)
	officeRepo := repo.NewOfficeRepo(db)
	reviewRepo := repo.NewReviewRepo(db)

	signer := jwt.NewSigner([]byte("test-secret"), time.Hour)
	catalog := service.NewCatalog(companyRepo, officeRepo, reviewRepo)
	engine := search.NewEngine(searchcache.New[model.Company](), search.NewHistory(10, 64, time.Hour))
	searchService := service.NewSearchService(engine, catalog)
	companyService := service.NewCompanyService(companyRepo, officeRepo, reviewRepo, catalog, searchService)
	authService := service.NewAuthService(repo.NewAdminUserRepo(db), signer)
	_, err := authService.CreateAdmin(context.Background(), adminUser, adminPassword)
	require.NoError(t, err)

	store, err := filestore.New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": t.TempDir()},
	})
	require.NoError(t, err)

	deps := handler.RouterDeps{
		Auth:             handler.NewAuthHandler(authService),
		Companies:        handler.NewCompanyHandler(companyService),
		Offices:          handler.NewOfficeHandler(service.NewOfficeService(companyRepo, officeRepo, searchService)),
		Search:           handler.NewSearchHandler(searchService),
		Compare:          handler.NewCompareHandler(service.NewCompareService(companyService)),
		Blog:             handler.NewBlogHandler(service.NewBlogService(repo.NewBlogRepo(db))),
		Events:           handler.NewEventHandler(service.NewEventService(repo.NewEventRepo(db))),
		Contact:          handler.NewContactHandler(service.NewContactService(noopSender{}, "inbox@bizdir.example", companyService)),
		Files:            handler.NewFileHandler(store, 1024*1024),
		Properties:       handler.NewPropertiesHandler(config.Properties{SiteName: "Test Directory"}, 1024*1024),
		Export:           handler.NewExportHandler(service.NewExportService(catalog)),
		Import:           handler.NewImportHandler(companyService, 1024*1024),
		Signer:           signer,
		ContactRateLimit: time.Minute,
	}

	router, err := webapi.NewEngine(
		"/api/v1",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)
	return router, cleanup
}

func doJSON(t *testing.T, router http.Handler, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload := &bytes.Buffer{}
	if body != nil {
		require.NoError(t, json.NewEncoder(payload).Encode(body))
	}
	req := httptest.NewRequest(method, target, payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	return resp
}

// field finds the first value stored under key anywhere in a decoded
// response body.
func field(t *testing.T, resp *httptest.ResponseRecorder, key string) interface{} {
	t.Helper()
	var body interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	v, ok := lookup(body, key)
	require.True(t, ok, "field %s missing in %s", key, resp.Body.String())
	return v
}

func lookup(v interface{}, key string) (interface{}, bool) {
	switch t := v.(type) {
	case map[string]interface{}:
		if found, ok := t[key]; ok {
			return found, true
		}
		for _, child := range t {
			if found, ok := lookup(child, key); ok {
				return found, true
			}
		}
	case []interface{}:
		for _, child := range t {
			if found, ok := lookup(child, key); ok {
				return found, true
			}
		}
	}
	return nil, false
}

func login(t *testing.T, router http.Handler) string {
	t.Helper()
	resp := doJSON(t, router, http.MethodPost, "/api/v1/admin/auth/login", "", map[string]string{
		"username": adminUser,
		"password": adminPassword,
	})
	token, _ := field(t, resp, "token").(string)
	require.NotEmpty(t, token)
	return token
}
