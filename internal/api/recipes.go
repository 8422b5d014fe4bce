package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/query"
	"github.com/foodgram/backend/internal/service"
)

// RecipeHandler ties together the recipe CRUD path, the favorite and
// shopping-cart toggles and the shopping-list export.
type RecipeHandler struct {
	recipes     *service.RecipeService
	memberships *service.MembershipService
	lists       *service.ShoppingListService
	images      *service.ImageService
}

func NewRecipeHandler(
	recipes *service.RecipeService,
	memberships *service.MembershipService,
	lists *service.ShoppingListService,
	images *service.ImageService,
) *RecipeHandler {
	return &RecipeHandler{
		recipes:     recipes,
		memberships: memberships,
		lists:       lists,
		images:      images,
	}
}

func (h *RecipeHandler) RegisterRoutes(r *gin.RouterGroup, resolver middleware.IdentityResolver, limiter *middleware.RateLimiter) {
	recipes := r.Group("/recipes")
	{
		recipes.GET("", middleware.AuthOptional(resolver), h.List)
		recipes.GET("/download_shopping_cart", middleware.AuthRequired(resolver), h.DownloadShoppingCart)
		recipes.GET("/:id", middleware.AuthOptional(resolver), h.Get)

		authed := recipes.Group("", middleware.AuthRequired(resolver), limiter.Middleware())
		{
			authed.POST("", h.Create)
			authed.PATCH("/:id", h.Update)
			authed.DELETE("/:id", h.Delete)
			authed.POST("/:id/favorite", h.AddFavorite)
			authed.DELETE("/:id/favorite", h.RemoveFavorite)
			authed.POST("/:id/shopping_cart", h.AddToCart)
			authed.DELETE("/:id/shopping_cart", h.RemoveFromCart)
		}
	}
}

func (h *RecipeHandler) List(c *gin.Context) {
	params := pagination(c)
	filter := recipeFilter(c)

	recipes, total, err := h.recipes.List(c.Request.Context(), viewerID(c), filter, params.Page, params.Limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginated(c, params, total, newRecipeResponses(recipes)))
}

func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	recipe, err := h.recipes.Get(c.Request.Context(), viewerID(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRecipeResponse(recipe))
}

func (h *RecipeHandler) Create(c *gin.Context) {
	var req RecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	user := currentUser(c)

	image, err := h.images.StoreRecipeImage(c.Request.Context(), req.Image)
	if err != nil {
		abortWithError(c, err)
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), user.ID, recipeInput(req, image))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRecipeResponse(recipe))
}

func (h *RecipeHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req RecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	image, err := h.images.StoreRecipeImage(c.Request.Context(), req.Image)
	if err != nil {
		abortWithError(c, err)
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), currentUser(c), id, recipeInput(req, image))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRecipeResponse(recipe))
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.recipes.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	recipe, err := h.memberships.AddFavorite(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRecipeShortResponse(recipe))
}

func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.memberships.RemoveFavorite(c.Request.Context(), currentUser(c).ID, id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	recipe, err := h.memberships.AddToCart(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRecipeShortResponse(recipe))
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.memberships.RemoveFromCart(c.Request.Context(), currentUser(c).ID, id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadShoppingCart aggregates the cart and streams the PDF.
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	user := currentUser(c)

	items, err := h.lists.Items(c.Request.Context(), user.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	pdf, err := h.lists.RenderPDF(items)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// recipeFilter reads the listing filters from the query string. The boolean
// filters accept the frontend's 1/true spelling.
func recipeFilter(c *gin.Context) query.RecipeFilter {
	filter := query.RecipeFilter{
		Favorited: boolParam(c, "is_favorited"),
		InCart:    boolParam(c, "is_in_shopping_cart"),
	}
	if slugs := c.QueryArray("tags"); len(slugs) > 0 {
		filter.TagSlugs = slugs
	}
	if author := c.Query("author"); author != "" {
		if id, err := uuid.Parse(author); err == nil {
			filter.AuthorID = &id
		}
	}
	return filter
}

func boolParam(c *gin.Context, name string) bool {
	v := strings.ToLower(c.Query(name))
	return v == "1" || v == "true"
}

func recipeInput(req RecipeRequest, image string) service.RecipeInput {
	in := service.RecipeInput{
		Name:        req.Name,
		Image:       image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Tags:        req.Tags,
	}
	for _, ing := range req.Ingredients {
		in.Ingredients = append(in.Ingredients, service.IngredientInput{ID: ing.ID, Amount: ing.Amount})
	}
	return in
}
