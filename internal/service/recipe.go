package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/errs"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/policy"
	"github.com/foodgram/backend/internal/query"
)

// RecipeService owns the recipe write path and viewer-annotated reads.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

type IngredientInput struct {
	ID     uuid.UUID
	Amount int64
}

type RecipeInput struct {
	Name        string
	Image       string
	Text        string
	CookingTime int64
	Tags        []uuid.UUID
	Ingredients []IngredientInput
}

// validate enforces the recipe business rules. All rejections are
// field-scoped validation errors; nothing is written when any rule fails.
func (s *RecipeService) validate(tx *gorm.DB, in RecipeInput) error {
	if len(in.Ingredients) == 0 {
		return errs.Validation("ingredients", "at least one ingredient is required")
	}
	seen := make(map[uuid.UUID]struct{}, len(in.Ingredients))
	ids := make([]uuid.UUID, 0, len(in.Ingredients))
	for _, ing := range in.Ingredients {
		if ing.Amount < 1 {
			return errs.Validation("ingredients", "ingredient amount must be at least 1")
		}
		if _, dup := seen[ing.ID]; dup {
			return errs.Validation("ingredients", "ingredients must be unique within a recipe")
		}
		seen[ing.ID] = struct{}{}
		ids = append(ids, ing.ID)
	}
	var count int64
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return errs.Validation("ingredients", "ingredient does not exist")
	}

	if len(in.Tags) == 0 {
		return errs.Validation("tags", "at least one tag is required")
	}
	if err := tx.Model(&models.Tag{}).Where("id IN ?", in.Tags).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(in.Tags)) {
		return errs.Validation("tags", "tag does not exist")
	}

	if in.CookingTime < 1 {
		return errs.Validation("cooking_time", "cooking time must be at least 1")
	}
	return nil
}

// Create validates and persists a recipe with its ingredient lines and tag
// links in one transaction.
func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, in RecipeInput) (*models.Recipe, error) {
	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        in.Name,
		Image:       in.Image,
		Text:        in.Text,
		CookingTime: in.CookingTime,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.validate(tx, in); err != nil {
			return err
		}
		var tags []models.Tag
		if err := tx.Where("id IN ?", in.Tags).Find(&tags).Error; err != nil {
			return err
		}
		recipe.Tags = tags
		for _, ing := range in.Ingredients {
			recipe.Ingredients = append(recipe.Ingredients, models.IngredientLine{
				IngredientID: ing.ID,
				Amount:       ing.Amount,
			})
		}
		return tx.Create(&recipe).Error
	})
	if err != nil {
		return nil, errs.FromDB(err, "duplicate ingredient within recipe")
	}
	return s.Get(ctx, &authorID, recipe.ID)
}

// Update replaces the recipe's fields and, per the write contract, its full
// ingredient set and tag set (clear-then-recreate, not a merge). The publish
// timestamp is immutable.
func (s *RecipeService) Update(ctx context.Context, viewer *models.User, id uuid.UUID, in RecipeInput) (*models.Recipe, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			return errs.FromDB(err, "")
		}
		if !policy.CanModifyRecipe(viewer, &recipe) {
			return errs.Forbidden("only the author may modify this recipe")
		}
		if err := s.validate(tx, in); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":         in.Name,
			"text":         in.Text,
			"cooking_time": in.CookingTime,
		}
		if in.Image != "" {
			updates["image"] = in.Image
		}
		if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
			return err
		}

		var tags []models.Tag
		if err := tx.Where("id IN ?", in.Tags).Find(&tags).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Replace(&tags); err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientLine{}).Error; err != nil {
			return err
		}
		lines := make([]models.IngredientLine, 0, len(in.Ingredients))
		for _, ing := range in.Ingredients {
			lines = append(lines, models.IngredientLine{
				RecipeID:     recipe.ID,
				IngredientID: ing.ID,
				Amount:       ing.Amount,
			})
		}
		return tx.Create(&lines).Error
	})
	if err != nil {
		return nil, errs.FromDB(err, "duplicate ingredient within recipe")
	}
	viewerID := viewer.ID
	return s.Get(ctx, &viewerID, id)
}

// Delete removes a recipe if the viewer is allowed to.
func (s *RecipeService) Delete(ctx context.Context, viewer *models.User, id uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return errs.FromDB(err, "")
	}
	if !policy.CanModifyRecipe(viewer, &recipe) {
		return errs.Forbidden("only the author may delete this recipe")
	}
	return s.db.WithContext(ctx).Delete(&recipe).Error
}

// Get returns one recipe annotated for the viewer.
func (s *RecipeService) Get(ctx context.Context, viewerID *uuid.UUID, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	q := query.RecipesForViewer(s.db.WithContext(ctx), viewerID)
	if err := q.Where("recipes.id = ?", id).First(&recipe).Error; err != nil {
		return nil, errs.FromDB(err, "")
	}
	return &recipe, nil
}

// List returns a page of annotated recipes matching the filter, plus the
// total match count.
func (s *RecipeService) List(ctx context.Context, viewerID *uuid.UUID, filter query.RecipeFilter, page, size int) ([]models.Recipe, int64, error) {
	db := s.db.WithContext(ctx)

	var total int64
	countQ := filter.Apply(db.Model(&models.Recipe{}), db, viewerID)
	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	q := filter.Apply(query.RecipesForViewer(db, viewerID), db, viewerID)
	if err := q.Offset((page - 1) * size).Limit(size).Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}
