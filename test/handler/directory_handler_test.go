package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdminLoginRejectsBadPassword(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	resp := doJSON(t, router, http.MethodPost, "/api/v1/admin/auth/login", "", map[string]string{
		"username": adminUser,
		"password": "wrong-password",
	})
	require.NotContains(t, resp.Body.String(), `"token"`)

	resp = doJSON(t, router, http.MethodPost, "/api/v1/admin/companies", "", map[string]string{"name": "Nope"})
	require.NotContains(t, resp.Body.String(), `"slug"`)
}

func TestCompanyLifecycleFeedsSearch(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()
	token := login(t, router)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/admin/companies", token, map[string]interface{}{
		"name":              "Sydney Web Co",
		"abn":               "51 824 753 556",
		"industry":          "Information Technology",
		"services":          []string{"Web Design", "SEO"},
		"short_description": "Websites for small business",
		"offices": []map[string]interface{}{
			{"city": "Sydney", "state": "nsw", "is_headquarter": true},
		},
	})
	require.Equal(t, "sydney-web-co", field(t, resp, "slug"))
	id, _ := field(t, resp, "id").(string)
	require.NotEmpty(t, id)
	require.Contains(t, resp.Body.String(), id+"_SYDNEY_01")

	resp = doJSON(t, router, http.MethodPost, "/api/v1/admin/companies", token, map[string]interface{}{
		"name": "Sydney Web Co",
		"abn":  "123",
	})
	require.NotContains(t, resp.Body.String(), `"slug"`)

	resp = doJSON(t, router, http.MethodGet, "/api/v1/search?query=web", "", nil)
	require.Contains(t, resp.Body.String(), "Sydney Web Co")
	require.Contains(t, resp.Body.String(), `"abn_display":"51 824 753 556"`)

	resp = doJSON(t, router, http.MethodGet, "/api/v1/companies/sydney-web-co", "", nil)
	require.Equal(t, id, field(t, resp, "id"))

	doJSON(t, router, http.MethodPost, "/api/v1/admin/companies/"+id+"/reviews", token, map[string]interface{}{
		"author": "Jo", "rating": 5, "text": "Great work",
	})
	resp = doJSON(t, router, http.MethodGet, "/api/v1/search?sort_by=rating", "", nil)
	require.Contains(t, resp.Body.String(), `"rating":5`)

	resp = doJSON(t, router, http.MethodGet, "/api/v1/states/counts", "", nil)
	require.Contains(t, resp.Body.String(), `"state":"NSW"`)

	doJSON(t, router, http.MethodDelete, "/api/v1/admin/companies/"+id, token, nil)
	resp = doJSON(t, router, http.MethodGet, "/api/v1/search?query=web", "", nil)
	require.NotContains(t, resp.Body.String(), "Sydney Web Co")
}

func TestOfficeIDsNotReusedAfterDelete(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()
	token := login(t, router)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/admin/companies", token, map[string]interface{}{
		"name": "Harbour Plumbing",
		"offices": []map[string]interface{}{
			{"city": "Sydney", "state": "NSW"},
			{"city": "Sydney", "state": "NSW"},
		},
	})
	id, _ := field(t, resp, "id").(string)
	require.NotEmpty(t, id)
	require.Contains(t, resp.Body.String(), id+"_SYDNEY_02")

	doJSON(t, router, http.MethodDelete, "/api/v1/admin/companies/"+id+"/offices/"+id+"_SYDNEY_01", token, nil)

	office := map[string]interface{}{"city": "Sydney", "state": "NSW"}
	resp = doJSON(t, router, http.MethodPost, "/api/v1/admin/companies/"+id+"/offices", token, office)
	require.Equal(t, id+"_SYDNEY_03", field(t, resp, "id"))
	resp = doJSON(t, router, http.MethodPost, "/api/v1/admin/companies/"+id+"/offices", token, office)
	require.Equal(t, id+"_SYDNEY_04", field(t, resp, "id"))

	resp = doJSON(t, router, http.MethodGet, "/api/v1/companies/"+id+"/offices", "", nil)
	require.NotContains(t, resp.Body.String(), id+"_SYDNEY_01")
	require.Contains(t, resp.Body.String(), id+"_SYDNEY_02")
}

func TestBlogPublishing(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()
	token := login(t, router)

	doJSON(t, router, http.MethodPost, "/api/v1/admin/blog", token, map[string]interface{}{
		"title":   "Hiring in Perth",
		"content": "# Hiring\n\nA short **guide**.",
		"status":  "published",
	})
	doJSON(t, router, http.MethodPost, "/api/v1/admin/blog", token, map[string]interface{}{
		"title":   "Draft post",
		"content": "not yet",
	})

	resp := doJSON(t, router, http.MethodGet, "/api/v1/blog", "", nil)
	require.Contains(t, resp.Body.String(), "Hiring in Perth")
	require.NotContains(t, resp.Body.String(), "Draft post")

	resp = doJSON(t, router, http.MethodGet, "/api/v1/blog/hiring-in-perth", "", nil)
	require.Contains(t, resp.Body.String(), "<strong>guide</strong>")
	require.Equal(t, float64(1), field(t, resp, "views"))

	resp = doJSON(t, router, http.MethodGet, "/api/v1/blog/draft-post", "", nil)
	require.NotContains(t, resp.Body.String(), "not yet")
}

func TestContactRateLimited(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	form := map[string]string{"name": "Jo", "email": "jo@example.com", "message": "Hello"}
	resp := doJSON(t, router, http.MethodPost, "/api/v1/contact", "", form)
	require.Equal(t, true, field(t, resp, "success"))

	resp = doJSON(t, router, http.MethodPost, "/api/v1/contact", "", form)
	require.NotContains(t, resp.Body.String(), `"success"`)
}

func TestImportExport(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()
	token := login(t, router)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "companies.json")
	require.NoError(t, err)
	_, err = part.Write([]byte(`[
		{"name": "Perth Builders", "industry": "Construction", "offices": [{"city": "Perth", "state": "WA"}]},
		{"name": "Hobart Bakery", "services": ["Catering"]}
	]`))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, float64(2), field(t, resp, "created"))

	resp = doJSON(t, router, http.MethodGet, "/api/v1/search?query=bakery", "", nil)
	require.Contains(t, resp.Body.String(), "Hobart Bakery")

	resp = doJSON(t, router, http.MethodGet, "/api/v1/admin/export", token, nil)
	require.Contains(t, resp.Header().Get("Content-Disposition"), "bizdir-companies-")
	require.Contains(t, resp.Body.String(), `"slug": "perth-builders"`)
	require.Contains(t, resp.Body.String(), `"city": "Perth"`)
}
