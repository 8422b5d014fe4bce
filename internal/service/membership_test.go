package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/errs"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
)

func TestFavoriteToggle(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewMembershipService(db)
	ctx := context.Background()

	author := testhelpers.CreateUser(t, db, "author@example.com", "author")
	viewer := testhelpers.CreateUser(t, db, "viewer@example.com", "viewer")
	tag := testhelpers.CreateTag(t, db, "breakfast", "#E26C2D", "breakfast")
	flour := testhelpers.CreateIngredient(t, db, "flour", "g")
	recipe := testhelpers.CreateRecipe(t, db, author, "Pancakes", tag, flour, 200)

	added, err := svc.AddFavorite(ctx, viewer.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, added.ID)

	// Second add is a state error, not a no-op.
	_, err = svc.AddFavorite(ctx, viewer.ID, recipe.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))

	require.NoError(t, svc.RemoveFavorite(ctx, viewer.ID, recipe.ID))

	// So is removing what is not there.
	err = svc.RemoveFavorite(ctx, viewer.ID, recipe.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
}

func TestShoppingCartToggle(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewMembershipService(db)
	ctx := context.Background()

	author := testhelpers.CreateUser(t, db, "author@example.com", "author")
	viewer := testhelpers.CreateUser(t, db, "viewer@example.com", "viewer")
	tag := testhelpers.CreateTag(t, db, "breakfast", "#E26C2D", "breakfast")
	flour := testhelpers.CreateIngredient(t, db, "flour", "g")
	recipe := testhelpers.CreateRecipe(t, db, author, "Pancakes", tag, flour, 200)

	added, err := svc.AddToCart(ctx, viewer.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, added.ID)

	_, err = svc.AddToCart(ctx, viewer.ID, recipe.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))

	require.NoError(t, svc.RemoveFromCart(ctx, viewer.ID, recipe.ID))

	err = svc.RemoveFromCart(ctx, viewer.ID, recipe.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
}

func TestMembershipMissingRecipe(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewMembershipService(db)
	ctx := context.Background()

	viewer := testhelpers.CreateUser(t, db, "viewer@example.com", "viewer")

	_, err := svc.AddFavorite(ctx, viewer.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	_, err = svc.AddToCart(ctx, viewer.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestMembershipsAreIndependentPerUser(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewMembershipService(db)
	ctx := context.Background()

	author := testhelpers.CreateUser(t, db, "author@example.com", "author")
	first := testhelpers.CreateUser(t, db, "first@example.com", "first")
	second := testhelpers.CreateUser(t, db, "second@example.com", "second")
	tag := testhelpers.CreateTag(t, db, "breakfast", "#E26C2D", "breakfast")
	flour := testhelpers.CreateIngredient(t, db, "flour", "g")
	recipe := testhelpers.CreateRecipe(t, db, author, "Pancakes", tag, flour, 200)

	_, err := svc.AddFavorite(ctx, first.ID, recipe.ID)
	require.NoError(t, err)

	// The same recipe in another user's bag is a distinct membership.
	_, err = svc.AddFavorite(ctx, second.ID, recipe.ID)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFavorite(ctx, first.ID, recipe.ID))
	err = svc.RemoveFavorite(ctx, second.ID, recipe.ID)
	require.NoError(t, err)
}
