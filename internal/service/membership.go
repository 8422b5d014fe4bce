package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/errs"
	"github.com/foodgram/backend/internal/models"
)

// MembershipService drives the favorite and shopping-cart toggles. Each is a
// two-state machine per (user, recipe) pair: adding an existing membership or
// removing an absent one is an error, not a no-op.
type MembershipService struct {
	db *gorm.DB
}

func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{db: db}
}

// AddFavorite puts the recipe into the user's favorites bag.
func (s *MembershipService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	db := s.db.WithContext(ctx)

	recipe, err := s.recipe(db, recipeID)
	if err != nil {
		return nil, err
	}
	bag, err := s.favoritesBag(db, userID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&models.FavoriteItem{}).
		Where("favorites_id = ? AND recipe_id = ?", bag.ID, recipeID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errs.Conflict("recipe is already in favorites")
	}

	item := models.FavoriteItem{FavoritesID: bag.ID, RecipeID: recipeID}
	if err := db.Create(&item).Error; err != nil {
		// The unique index is the final authority on duplicate-add races.
		return nil, errs.FromDB(err, "recipe is already in favorites")
	}
	return recipe, nil
}

// RemoveFavorite takes the recipe out of the user's favorites bag.
func (s *MembershipService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	db := s.db.WithContext(ctx)

	if _, err := s.recipe(db, recipeID); err != nil {
		return err
	}
	bag, err := s.favoritesBag(db, userID)
	if err != nil {
		return err
	}

	res := db.Where("favorites_id = ? AND recipe_id = ?", bag.ID, recipeID).
		Delete(&models.FavoriteItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.Conflict("recipe is not in favorites")
	}
	return nil
}

// AddToCart puts the recipe into the user's shopping cart.
func (s *MembershipService) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	db := s.db.WithContext(ctx)

	recipe, err := s.recipe(db, recipeID)
	if err != nil {
		return nil, err
	}
	cart, err := s.shoppingCart(db, userID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&models.CartItem{}).
		Where("cart_id = ? AND recipe_id = ?", cart.ID, recipeID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errs.Conflict("recipe is already in the shopping cart")
	}

	item := models.CartItem{CartID: cart.ID, RecipeID: recipeID}
	if err := db.Create(&item).Error; err != nil {
		return nil, errs.FromDB(err, "recipe is already in the shopping cart")
	}
	return recipe, nil
}

// RemoveFromCart takes the recipe out of the user's shopping cart.
func (s *MembershipService) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	db := s.db.WithContext(ctx)

	if _, err := s.recipe(db, recipeID); err != nil {
		return err
	}
	cart, err := s.shoppingCart(db, userID)
	if err != nil {
		return err
	}

	res := db.Where("cart_id = ? AND recipe_id = ?", cart.ID, recipeID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.Conflict("recipe is not in the shopping cart")
	}
	return nil
}

func (s *MembershipService) recipe(db *gorm.DB, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := db.First(&recipe, "id = ?", id).Error; err != nil {
		return nil, errs.FromDB(err, "")
	}
	return &recipe, nil
}

func (s *MembershipService) favoritesBag(db *gorm.DB, userID uuid.UUID) (*models.Favorites, error) {
	var bag models.Favorites
	err := db.Where(models.Favorites{UserID: userID}).FirstOrCreate(&bag).Error
	if err != nil {
		return nil, err
	}
	return &bag, nil
}

func (s *MembershipService) shoppingCart(db *gorm.DB, userID uuid.UUID) (*models.ShoppingCart, error) {
	var cart models.ShoppingCart
	err := db.Where(models.ShoppingCart{UserID: userID}).FirstOrCreate(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}
