package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/testhelpers"
)

func TestCreateUserEndpoint(t *testing.T) {
	router, _ := setupTestAPI(t)

	w := doRequest(t, router, "POST", "/api/v1/users", "", map[string]interface{}{
		"email":      "anna@example.com",
		"username":   "anna",
		"first_name": "Anna",
		"last_name":  "Smith",
		"password":   "supersecret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeJSON(t, w)
	assert.Equal(t, "anna@example.com", body["email"])
	assert.Equal(t, "anna", body["username"])
	assert.Equal(t, false, body["is_subscribed"])
	assert.NotEmpty(t, body["id"])
	assert.NotContains(t, body, "password")
}

func TestCreateUserValidation(t *testing.T) {
	router, _ := setupTestAPI(t)

	w := doRequest(t, router, "POST", "/api/v1/users", "", map[string]interface{}{
		"email":      "not-an-email",
		"username":   "anna",
		"first_name": "Anna",
		"last_name":  "Smith",
		"password":   "supersecret1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeJSON(t, w)
	fields, ok := body["errors"].(map[string]interface{})
	require.True(t, ok, w.Body.String())
	assert.Contains(t, fields, "email")
}

func TestCreateUserShortPassword(t *testing.T) {
	router, _ := setupTestAPI(t)

	w := doRequest(t, router, "POST", "/api/v1/users", "", map[string]interface{}{
		"email":      "anna@example.com",
		"username":   "anna",
		"first_name": "Anna",
		"last_name":  "Smith",
		"password":   "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeJSON(t, w)
	fields, ok := body["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "password")
}

func TestListUsersPagination(t *testing.T) {
	router, db := setupTestAPI(t)
	testhelpers.CreateUser(t, db, "a@example.com", "usera")
	testhelpers.CreateUser(t, db, "b@example.com", "userb")
	testhelpers.CreateUser(t, db, "c@example.com", "userc")

	w := doRequest(t, router, "GET", "/api/v1/users?limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	assert.Equal(t, float64(3), body["count"])
	assert.NotNil(t, body["next"])
	assert.Nil(t, body["previous"])
	results, ok := body["results"].([]interface{})
	require.True(t, ok)
	assert.Len(t, results, 2)

	w = doRequest(t, router, "GET", "/api/v1/users?limit=2&page=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeJSON(t, w)
	assert.Nil(t, body["next"])
	assert.NotNil(t, body["previous"])
	results, ok = body["results"].([]interface{})
	require.True(t, ok)
	assert.Len(t, results, 1)
}

func TestMeRequiresAuth(t *testing.T) {
	router, db := setupTestAPI(t)
	testhelpers.CreateUser(t, db, "anna@example.com", "anna")

	w := doRequest(t, router, "GET", "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := loginAs(t, db, "anna@example.com")
	w = doRequest(t, router, "GET", "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "anna", body["username"])
}

func TestSetPasswordEndpoint(t *testing.T) {
	router, db := setupTestAPI(t)
	testhelpers.CreateUser(t, db, "anna@example.com", "anna")
	token := loginAs(t, db, "anna@example.com")

	w := doRequest(t, router, "POST", "/api/v1/users/set_password", token, map[string]interface{}{
		"current_password": testhelpers.TestPassword,
		"new_password":     "evenmoresecret1",
	})
	assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = doRequest(t, router, "POST", "/api/v1/auth/token/login", "", map[string]interface{}{
		"email":    "anna@example.com",
		"password": "evenmoresecret1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubscribeFlow(t *testing.T) {
	router, db := setupTestAPI(t)
	testhelpers.CreateUser(t, db, "follower@example.com", "follower")
	author := testhelpers.CreateUser(t, db, "author@example.com", "author")
	tag := testhelpers.CreateTag(t, db, "breakfast", "#E26C2D", "breakfast")
	flour := testhelpers.CreateIngredient(t, db, "flour", "g")
	testhelpers.CreateRecipe(t, db, author, "Pancakes", tag, flour, 200)
	testhelpers.CreateRecipe(t, db, author, "Waffles", tag, flour, 150)

	token := loginAs(t, db, "follower@example.com")

	w := doRequest(t, router, "POST", "/api/v1/users/"+author.ID.String()+"/subscribe", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeJSON(t, w)
	assert.Equal(t, "author", body["username"])
	assert.Equal(t, true, body["is_subscribed"])
	assert.Equal(t, float64(2), body["recipes_count"])

	// Duplicate subscription is rejected.
	w = doRequest(t, router, "POST", "/api/v1/users/"+author.ID.String()+"/subscribe", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// recipes_limit trims the embedded list.
	w = doRequest(t, router, "GET", "/api/v1/users/subscriptions?recipes_limit=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeJSON(t, w)
	results, ok := body["results"].([]interface{})
	require.True(t, ok)
	require.Len(t, results, 1)
	row := results[0].(map[string]interface{})
	recipes, ok := row["recipes"].([]interface{})
	require.True(t, ok)
	assert.Len(t, recipes, 1)
	assert.Equal(t, float64(2), row["recipes_count"])

	w = doRequest(t, router, "DELETE", "/api/v1/users/"+author.ID.String()+"/subscribe", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, "DELETE", "/api/v1/users/"+author.ID.String()+"/subscribe", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUserAnnotatedForViewer(t *testing.T) {
	router, db := setupTestAPI(t)
	testhelpers.CreateUser(t, db, "viewer@example.com", "viewer")
	author := testhelpers.CreateUser(t, db, "author@example.com", "author")
	token := loginAs(t, db, "viewer@example.com")

	w := doRequest(t, router, "POST", "/api/v1/users/"+author.ID.String()+"/subscribe", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, router, "GET", "/api/v1/users/"+author.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, true, body["is_subscribed"])

	// Anonymous sees the flag as false.
	w = doRequest(t, router, "GET", "/api/v1/users/"+author.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeJSON(t, w)
	assert.Equal(t, false, body["is_subscribed"])
}
