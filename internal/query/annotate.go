// Package query builds viewer-aware querysets. Derived booleans and counts
// (is_favorited, is_in_shopping_cart, is_subscribed, recipes_count) are
// computed in the datastore with EXISTS/COUNT subqueries so a listing costs a
// fixed number of round-trips regardless of its length. Filters compose on
// top of the annotated query without replacing the annotation step.
package query

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
)

// RecipesForViewer returns the recipe queryset enriched with is_favorited and
// is_in_shopping_cart relative to viewerID. A nil viewerID is the anonymous
// viewer: both annotations are statically false and no subquery is issued.
func RecipesForViewer(db *gorm.DB, viewerID *uuid.UUID) *gorm.DB {
	q := db.Model(&models.Recipe{}).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.created_at DESC")

	if viewerID == nil {
		return q.Select("recipes.*, FALSE AS is_favorited, FALSE AS is_in_shopping_cart")
	}
	return q.Select(
		"recipes.*, EXISTS(?) AS is_favorited, EXISTS(?) AS is_in_shopping_cart",
		favoriteMembership(db, *viewerID),
		cartMembership(db, *viewerID),
	)
}

// UsersForViewer returns the user queryset enriched with is_subscribed.
func UsersForViewer(db *gorm.DB, viewerID *uuid.UUID) *gorm.DB {
	q := db.Model(&models.User{}).Order("users.created_at")
	if viewerID == nil {
		return q.Select("users.*, FALSE AS is_subscribed")
	}
	sub := newQuery(db).
		Table("subscriptions").
		Select("1").
		Where("subscriptions.follower_id = ?", *viewerID).
		Where("subscriptions.following_id = users.id")
	return q.Select("users.*, EXISTS(?) AS is_subscribed", sub)
}

// SubscriptionsOf returns followerID's subscriptions with the followed
// author's recipe count attached. is_subscribed is constant true: the row's
// existence already proves it. The followed users and their recipes are
// eagerly loaded.
func SubscriptionsOf(db *gorm.DB, followerID uuid.UUID) *gorm.DB {
	count := newQuery(db).
		Table("recipes").
		Select("COUNT(*)").
		Where("recipes.author_id = subscriptions.following_id").
		Where("recipes.deleted_at IS NULL")
	return db.Model(&models.Subscription{}).
		Select("subscriptions.*, (?) AS recipes_count, TRUE AS is_subscribed", count).
		Where("subscriptions.follower_id = ?", followerID).
		Preload("Following").
		Preload("Following.Recipes").
		Order("subscriptions.created_at DESC")
}

// RecipeFilter is the standard filter set for recipe listings.
type RecipeFilter struct {
	TagSlugs  []string
	AuthorID  *uuid.UUID
	Favorited bool
	InCart    bool
}

// Apply composes the filter onto q. The boolean filters require an
// authenticated viewer and are ignored for anonymous requests.
func (f RecipeFilter) Apply(q *gorm.DB, db *gorm.DB, viewerID *uuid.UUID) *gorm.DB {
	if len(f.TagSlugs) > 0 {
		tagged := newQuery(db).
			Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", f.TagSlugs)
		q = q.Where("recipes.id IN (?)", tagged)
	}
	if f.AuthorID != nil {
		q = q.Where("recipes.author_id = ?", *f.AuthorID)
	}
	if viewerID != nil {
		if f.Favorited {
			q = q.Where("EXISTS (?)", favoriteMembership(db, *viewerID))
		}
		if f.InCart {
			q = q.Where("EXISTS (?)", cartMembership(db, *viewerID))
		}
	}
	return q
}

// IngredientsByPrefix filters ingredients by case-insensitive name prefix.
func IngredientsByPrefix(db *gorm.DB, prefix string) *gorm.DB {
	q := db.Model(&models.Ingredient{}).Order("name")
	if prefix != "" {
		q = q.Where("LOWER(name) LIKE ?", strings.ToLower(prefix)+"%")
	}
	return q
}

// favoriteMembership is a correlated subquery against the outer recipes row.
func favoriteMembership(db *gorm.DB, viewerID uuid.UUID) *gorm.DB {
	return newQuery(db).
		Table("favorite_items").
		Select("1").
		Joins("JOIN favorites ON favorites.id = favorite_items.favorites_id").
		Where("favorites.user_id = ?", viewerID).
		Where("favorite_items.recipe_id = recipes.id")
}

func cartMembership(db *gorm.DB, viewerID uuid.UUID) *gorm.DB {
	return newQuery(db).
		Table("cart_items").
		Select("1").
		Joins("JOIN shopping_carts ON shopping_carts.id = cart_items.cart_id").
		Where("shopping_carts.user_id = ?", viewerID).
		Where("cart_items.recipe_id = recipes.id")
}

// newQuery gives a clean statement so subqueries do not inherit the outer
// query's clauses.
func newQuery(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true})
}
