package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorites is a user's bag of favorited recipes. Every user owns exactly one,
// provisioned inside the registration transaction.
type Favorites struct {
	ID     uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
}

func (f *Favorites) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// FavoriteItem is a membership row. The composite unique index is the final
// authority on duplicate adds: a pre-check that loses a race comes back as a
// duplicated-key error, not a second row.
type FavoriteItem struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"-"`
	FavoritesID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_membership" json:"-"`
	RecipeID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_membership" json:"recipe_id"`
}

func (i *FavoriteItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// ShoppingCart is a user's bag of recipes to aggregate into a shopping list.
type ShoppingCart struct {
	ID     uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
}

func (c *ShoppingCart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CartItem struct {
	ID       uuid.UUID `gorm:"type:varchar(36);primarykey" json:"-"`
	CartID   uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_membership" json:"-"`
	RecipeID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_membership" json:"recipe_id"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Subscription is a directed follower -> followed edge, unique per pair.
// Self-edges are rejected at the service layer.
type Subscription struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	FollowerID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_follower_following" json:"-"`
	FollowingID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_follower_following" json:"-"`
	Following   *User     `gorm:"constraint:OnDelete:CASCADE" json:"following,omitempty"`

	// Annotations for subscription listings.
	RecipesCount int64 `gorm:"->;-:migration" json:"recipes_count"`
	IsSubscribed bool  `gorm:"->;-:migration" json:"is_subscribed"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
