package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/errs"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
)

func TestRegisterCreatesUserWithBags(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, nil, "test-secret")

	user, err := svc.Register(context.Background(), service.RegisterInput{
		Email:     "anna@example.com",
		Username:  "anna",
		FirstName: "Anna",
		LastName:  "Smith",
		Password:  "supersecret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", user.Email)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "supersecret1", user.PasswordHash)

	var favorites models.Favorites
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&favorites).Error)
	var cart models.ShoppingCart
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&cart).Error)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, nil, "test-secret")
	testhelpers.CreateUser(t, db, "anna@example.com", "anna")

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Email:     "anna@example.com",
		Username:  "other",
		FirstName: "Anna",
		LastName:  "Smith",
		Password:  "supersecret1",
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, nil, "test-secret")
	testhelpers.CreateUser(t, db, "anna@example.com", "anna")

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Email:     "other@example.com",
		Username:  "anna",
		FirstName: "Anna",
		LastName:  "Smith",
		Password:  "supersecret1",
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestLoginAndValidateToken(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, nil, "test-secret")
	user := testhelpers.CreateUser(t, db, "anna@example.com", "anna")

	token, err := svc.Login(context.Background(), "anna@example.com", testhelpers.TestPassword)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.NotEmpty(t, claims.TokenID)
}

func TestLoginWrongPassword(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, nil, "test-secret")
	testhelpers.CreateUser(t, db, "anna@example.com", "anna")

	_, err := svc.Login(context.Background(), "anna@example.com", "wrongpassword")
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, nil, "test-secret")

	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	testhelpers.CreateUser(t, db, "anna@example.com", "anna")

	issuer := service.NewAuthService(db, nil, "secret-a")
	verifier := service.NewAuthService(db, nil, "secret-b")

	token, err := issuer.Login(context.Background(), "anna@example.com", testhelpers.TestPassword)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
}

func TestSetPassword(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, nil, "test-secret")
	user := testhelpers.CreateUser(t, db, "anna@example.com", "anna")

	err := svc.SetPassword(context.Background(), user.ID, testhelpers.TestPassword, "newpassword123")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "anna@example.com", testhelpers.TestPassword)
	assert.Error(t, err)
	_, err = svc.Login(context.Background(), "anna@example.com", "newpassword123")
	assert.NoError(t, err)
}

func TestSetPasswordWrongCurrent(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, nil, "test-secret")
	user := testhelpers.CreateUser(t, db, "anna@example.com", "anna")

	err := svc.SetPassword(context.Background(), user.ID, "wrongpassword", "newpassword123")
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}
