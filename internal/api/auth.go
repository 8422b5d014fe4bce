package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, resolver middleware.IdentityResolver) {
	auth := r.Group("/auth")
	{
		auth.POST("/token/login", h.Login)
		auth.POST("/token/logout", middleware.AuthRequired(resolver), h.Logout)
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"auth_token": token})
}

// Logout invalidates the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := tokenClaims(c)
	if claims == nil {
		c.Status(http.StatusNoContent)
		return
	}
	if err := h.auth.Logout(c.Request.Context(), claims); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
