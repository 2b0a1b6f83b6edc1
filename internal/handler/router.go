package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/bizdir/internal/middleware"
	"github.com/xxxsen/bizdir/internal/pkg/jwt"
)

type RouterDeps struct {
	Auth             *AuthHandler
	Companies        *CompanyHandler
	Offices          *OfficeHandler
	Search           *SearchHandler
	Compare          *CompareHandler
	Blog             *BlogHandler
	Events           *EventHandler
	Contact          *ContactHandler
	Files            *FileHandler
	Properties       *PropertiesHandler
	Export           *ExportHandler
	Import           *ImportHandler
	Signer           *jwt.Signer
	ContactRateLimit time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/properties", deps.Properties.Get)
	api.GET("/companies", deps.Companies.List)
	api.GET("/companies/:id", deps.Companies.Get)
	api.GET("/companies/:id/offices", deps.Offices.List)
	api.GET("/states/counts", deps.Offices.StateCounts)

	api.GET("/search", deps.Search.Search)
	api.GET("/search/suggestions", deps.Search.Suggestions)
	api.GET("/search/history", deps.Search.History)
	api.DELETE("/search/history", deps.Search.ClearHistory)
	api.GET("/compare", deps.Compare.Compare)

	api.GET("/blog", deps.Blog.ListPublished)
	api.GET("/blog/:slug", deps.Blog.GetPublished)
	api.GET("/events", deps.Events.List)
	api.GET("/events/:id", deps.Events.Get)

	api.POST("/contact", middleware.RateLimit(deps.ContactRateLimit), deps.Contact.Submit)
	api.GET("/files/:key", deps.Files.Get)
	api.POST("/admin/auth/login", deps.Auth.Login)

	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuth(deps.Signer))
	admin.GET("/auth/verify", deps.Auth.Verify)

	admin.POST("/companies", deps.Companies.Create)
	admin.PUT("/companies/:id", deps.Companies.Update)
	admin.DELETE("/companies/:id", deps.Companies.Delete)
	admin.POST("/companies/:id/reviews", deps.Companies.AddReview)
	admin.POST("/companies/:id/offices", deps.Offices.Create)
	admin.PUT("/companies/:id/offices/:office_id", deps.Offices.Update)
	admin.DELETE("/companies/:id/offices/:office_id", deps.Offices.Delete)

	admin.GET("/blog", deps.Blog.List)
	admin.GET("/blog/:id", deps.Blog.Get)
	admin.POST("/blog", deps.Blog.Create)
	admin.PUT("/blog/:id", deps.Blog.Update)
	admin.DELETE("/blog/:id", deps.Blog.Delete)

	admin.POST("/events", deps.Events.Create)
	admin.PUT("/events/:id", deps.Events.Update)
	admin.DELETE("/events/:id", deps.Events.Delete)

	admin.POST("/files/upload", deps.Files.Upload)
	admin.POST("/search/refresh", deps.Search.Refresh)
	admin.GET("/export", deps.Export.Export)
	admin.POST("/import", deps.Import.Import)
}
