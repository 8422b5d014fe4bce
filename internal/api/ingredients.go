package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/errs"
	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/policy"
	"github.com/foodgram/backend/internal/query"
)

// IngredientHandler serves the ingredient catalog. Reads are public and
// unpaginated, filtered by name prefix for the search box; writes are
// staff-only.
type IngredientHandler struct {
	db *gorm.DB
}

func NewIngredientHandler(db *gorm.DB) *IngredientHandler {
	return &IngredientHandler{db: db}
}

func (h *IngredientHandler) RegisterRoutes(r *gin.RouterGroup, resolver middleware.IdentityResolver) {
	ingredients := r.Group("/ingredients")
	{
		ingredients.GET("", h.List)
		ingredients.GET("/:id", h.Get)
		ingredients.POST("", middleware.AuthRequired(resolver), h.Create)
		ingredients.DELETE("/:id", middleware.AuthRequired(resolver), h.Delete)
	}
}

func (h *IngredientHandler) List(c *gin.Context) {
	var ingredients []models.Ingredient
	q := query.IngredientsByPrefix(h.db.WithContext(c.Request.Context()), c.Query("name"))
	if err := q.Find(&ingredients).Error; err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *IngredientHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var ingredient models.Ingredient
	if err := h.db.WithContext(c.Request.Context()).First(&ingredient, "id = ?", id).Error; err != nil {
		abortWithError(c, errs.FromDB(err, ""))
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) Create(c *gin.Context) {
	if !policy.CanManageReference(currentUser(c)) {
		abortWithError(c, errs.Forbidden("staff privilege required"))
		return
	}
	var req IngredientRequest
	if !bindJSON(c, &req) {
		return
	}

	ingredient := models.Ingredient{Name: req.Name, MeasurementUnit: req.MeasurementUnit}
	if err := h.db.WithContext(c.Request.Context()).Create(&ingredient).Error; err != nil {
		abortWithError(c, errs.FromDB(err, "this ingredient already exists"))
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}

func (h *IngredientHandler) Delete(c *gin.Context) {
	if !policy.CanManageReference(currentUser(c)) {
		abortWithError(c, errs.Forbidden("staff privilege required"))
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Ingredient{}, "id = ?", id)
	if res.Error != nil {
		abortWithError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		abortWithError(c, errs.NotFound("ingredient not found"))
		return
	}
	c.Status(http.StatusNoContent)
}
