package database

import (
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
)

// Migrate creates or updates the schema for every entity, including the
// composite unique indexes backing membership and subscription rows.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.IngredientLine{},
		&models.Favorites{},
		&models.FavoriteItem{},
		&models.ShoppingCart{},
		&models.CartItem{},
		&models.Subscription{},
	)
}
