package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/testhelpers"
)

func TestLoginEndpoint(t *testing.T) {
	router, db := setupTestAPI(t)
	testhelpers.CreateUser(t, db, "anna@example.com", "anna")

	w := doRequest(t, router, "POST", "/api/v1/auth/token/login", "", map[string]interface{}{
		"email":    "anna@example.com",
		"password": testhelpers.TestPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeJSON(t, w)
	assert.NotEmpty(t, body["auth_token"])
}

func TestLoginBadCredentials(t *testing.T) {
	router, db := setupTestAPI(t)
	testhelpers.CreateUser(t, db, "anna@example.com", "anna")

	w := doRequest(t, router, "POST", "/api/v1/auth/token/login", "", map[string]interface{}{
		"email":    "anna@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutEndpoint(t *testing.T) {
	router, db := setupTestAPI(t)
	testhelpers.CreateUser(t, db, "anna@example.com", "anna")
	token := loginAs(t, db, "anna@example.com")

	w := doRequest(t, router, "POST", "/api/v1/auth/token/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, "POST", "/api/v1/auth/token/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
