package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
)

const testJWTSecret = "test-secret"

// setupTestAPI wires the full route table against a fresh in-memory database.
func setupTestAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	auth := service.NewAuthService(db, nil, testJWTSecret)
	limiter := middleware.NewRateLimiter(nil, middleware.RateLimitConfig{
		Window: time.Minute,
		Limit:  1000,
	})

	router := gin.New()
	v1 := router.Group("/api/v1")

	NewAuthHandler(auth).RegisterRoutes(v1, auth)
	NewUserHandler(auth, service.NewUserService(db), service.NewSubscriptionService(db)).
		RegisterRoutes(v1, auth)
	NewTagHandler(db).RegisterRoutes(v1, auth)
	NewIngredientHandler(db).RegisterRoutes(v1, auth)
	NewRecipeHandler(
		service.NewRecipeService(db),
		service.NewMembershipService(db),
		service.NewShoppingListService(db),
		service.NewImageService(nil),
	).RegisterRoutes(v1, auth, limiter)

	return router, db
}

// loginAs issues a token for a user created with testhelpers.CreateUser.
func loginAs(t *testing.T, db *gorm.DB, email string) string {
	t.Helper()
	auth := service.NewAuthService(db, nil, testJWTSecret)
	token, err := auth.Login(context.Background(), email, testhelpers.TestPassword)
	require.NoError(t, err)
	return token
}

// doRequest performs a request with an optional bearer token and JSON body.
func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}
