package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time      `json:"pub_date"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	AuthorID    uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"-"`
	Author      *User          `gorm:"constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Image       string         `gorm:"size:255" json:"image"`
	Text        string         `gorm:"type:text;not null" json:"text"`
	CookingTime int64          `gorm:"not null;check:cooking_time >= 1" json:"cooking_time"`

	Tags        []Tag            `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
	Ingredients []IngredientLine `gorm:"constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`

	// Viewer-relative, scanned from annotated queries. Never stored.
	IsFavorited      bool `gorm:"->;-:migration" json:"is_favorited"`
	IsInShoppingCart bool `gorm:"->;-:migration" json:"is_in_shopping_cart"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IngredientLine links a recipe to an ingredient with an amount. A recipe may
// reference each ingredient at most once.
type IngredientLine struct {
	ID           uuid.UUID   `gorm:"type:varchar(36);primarykey" json:"-"`
	RecipeID     uuid.UUID   `gorm:"type:varchar(36);not null;uniqueIndex:idx_line_recipe_ingredient" json:"-"`
	IngredientID uuid.UUID   `gorm:"type:varchar(36);not null;uniqueIndex:idx_line_recipe_ingredient" json:"id"`
	Ingredient   *Ingredient `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Amount       int64       `gorm:"not null;check:amount >= 1" json:"amount"`
}

func (l *IngredientLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type Tag struct {
	ID    uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name  string    `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Color string    `gorm:"size:7;uniqueIndex;not null" json:"color"`
	Slug  string    `gorm:"size:200;uniqueIndex;not null" json:"slug"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type Ingredient struct {
	ID              uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name            string    `gorm:"size:200;not null;index" json:"name"`
	MeasurementUnit string    `gorm:"size:200;not null" json:"measurement_unit"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
