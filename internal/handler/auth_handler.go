package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/bizdir/internal/middleware"
	"github.com/xxxsen/bizdir/internal/pkg/response"
	"github.com/xxxsen/bizdir/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		invalid(c, "username and password are required")
		return
	}
	session, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, session)
}

func (h *AuthHandler) Verify(c *gin.Context) {
	user, err := h.auth.GetAdmin(c.Request.Context(), middleware.AdminID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"user": user})
}
