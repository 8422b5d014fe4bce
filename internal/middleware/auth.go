package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

// Context keys under which the resolved identity is stored.
const (
	ContextUserIDKey = "user_id"
	ContextUserKey   = "current_user"
	ContextClaimsKey = "token_claims"
)

// IdentityResolver validates bearer tokens and loads the user behind them.
type IdentityResolver interface {
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AuthRequired rejects requests without a valid bearer token and stores the
// resolved user on the context.
func AuthRequired(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "authentication credentials were not provided"})
			c.Abort()
			return
		}
		if !resolve(c, resolver, token) {
			return
		}
		c.Next()
	}
}

// AuthOptional resolves the viewer when a token is present but lets anonymous
// requests through. A token that is present but invalid is still rejected.
func AuthOptional(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if ok && !resolve(c, resolver, token) {
			return
		}
		c.Next()
	}
}

func resolve(c *gin.Context, resolver IdentityResolver, token string) bool {
	claims, err := resolver.ValidateToken(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})
		c.Abort()
		return false
	}
	user, err := resolver.UserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "user no longer exists"})
		c.Abort()
		return false
	}
	c.Set(ContextUserIDKey, claims.UserID)
	c.Set(ContextUserKey, user)
	c.Set(ContextClaimsKey, claims)
	return true
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
