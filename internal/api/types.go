package api

import (
	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/models"
)

// Request shapes. Read and write serializations are separate types so the
// per-verb behavior is explicit dispatch, not shared-struct overloading.

type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email,max=200"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SetPasswordRequest struct {
	NewPassword     string `json:"new_password" binding:"required,min=8"`
	CurrentPassword string `json:"current_password" binding:"required"`
}

// IngredientRef references an ingredient with its amount. Amount bounds are
// checked by the recipe validation rules, not the binding layer, so the
// caller gets the business-rule message.
type IngredientRef struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Amount int64     `json:"amount"`
}

type RecipeRequest struct {
	Name        string          `json:"name" binding:"required,max=255"`
	Image       string          `json:"image"`
	Text        string          `json:"text" binding:"required"`
	CookingTime int64           `json:"cooking_time"`
	Tags        []uuid.UUID     `json:"tags"`
	Ingredients []IngredientRef `json:"ingredients"`
}

type TagRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Color string `json:"color" binding:"required,hexcolor"`
	Slug  string `json:"slug" binding:"required,max=200"`
}

type TagUpdateRequest struct {
	Name  string `json:"name" binding:"omitempty,max=200"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
	Slug  string `json:"slug" binding:"omitempty,max=200"`
}

type IngredientRequest struct {
	Name            string `json:"name" binding:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" binding:"required,max=200"`
}

// Response shapes.

type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: u.IsSubscribed,
	}
}

type IngredientLineResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int64     `json:"amount"`
}

type RecipeResponse struct {
	ID               uuid.UUID                `json:"id"`
	Tags             []models.Tag             `json:"tags"`
	Author           UserResponse             `json:"author"`
	Ingredients      []IngredientLineResponse `json:"ingredients"`
	IsFavorited      bool                     `json:"is_favorited"`
	IsInShoppingCart bool                     `json:"is_in_shopping_cart"`
	Name             string                   `json:"name"`
	Image            string                   `json:"image"`
	Text             string                   `json:"text"`
	CookingTime      int64                    `json:"cooking_time"`
}

func newRecipeResponse(r *models.Recipe) RecipeResponse {
	resp := RecipeResponse{
		ID:               r.ID,
		Tags:             r.Tags,
		Ingredients:      make([]IngredientLineResponse, 0, len(r.Ingredients)),
		IsFavorited:      r.IsFavorited,
		IsInShoppingCart: r.IsInShoppingCart,
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
	if resp.Tags == nil {
		resp.Tags = []models.Tag{}
	}
	if r.Author != nil {
		resp.Author = newUserResponse(r.Author)
	}
	for _, line := range r.Ingredients {
		item := IngredientLineResponse{
			ID:     line.IngredientID,
			Amount: line.Amount,
		}
		if line.Ingredient != nil {
			item.Name = line.Ingredient.Name
			item.MeasurementUnit = line.Ingredient.MeasurementUnit
		}
		resp.Ingredients = append(resp.Ingredients, item)
	}
	return resp
}

func newRecipeResponses(recipes []models.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, newRecipeResponse(&recipes[i]))
	}
	return out
}

// RecipeShortResponse is the compact representation returned by the
// favorite/cart toggles and embedded in subscription listings.
type RecipeShortResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int64     `json:"cooking_time"`
}

func newRecipeShortResponse(r *models.Recipe) RecipeShortResponse {
	return RecipeShortResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}

type SubscriptionResponse struct {
	ID           uuid.UUID             `json:"id"`
	Email        string                `json:"email"`
	Username     string                `json:"username"`
	FirstName    string                `json:"first_name"`
	LastName     string                `json:"last_name"`
	IsSubscribed bool                  `json:"is_subscribed"`
	Recipes      []RecipeShortResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

// newSubscriptionResponse flattens the followed user into the row.
// recipesLimit < 0 means no trimming.
func newSubscriptionResponse(sub *models.Subscription, recipesLimit int) SubscriptionResponse {
	resp := SubscriptionResponse{
		IsSubscribed: sub.IsSubscribed,
		RecipesCount: sub.RecipesCount,
		Recipes:      []RecipeShortResponse{},
	}
	if sub.Following == nil {
		return resp
	}
	resp.ID = sub.Following.ID
	resp.Email = sub.Following.Email
	resp.Username = sub.Following.Username
	resp.FirstName = sub.Following.FirstName
	resp.LastName = sub.Following.LastName

	recipes := sub.Following.Recipes
	if recipesLimit >= 0 && len(recipes) > recipesLimit {
		recipes = recipes[:recipesLimit]
	}
	for i := range recipes {
		resp.Recipes = append(resp.Recipes, newRecipeShortResponse(&recipes[i]))
	}
	return resp
}
