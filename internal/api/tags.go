package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/errs"
	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/policy"
)

// TagHandler serves tag reference data. Reads are public and unpaginated;
// writes are staff-only.
type TagHandler struct {
	db *gorm.DB
}

func NewTagHandler(db *gorm.DB) *TagHandler {
	return &TagHandler{db: db}
}

func (h *TagHandler) RegisterRoutes(r *gin.RouterGroup, resolver middleware.IdentityResolver) {
	tags := r.Group("/tags")
	{
		tags.GET("", h.List)
		tags.GET("/:id", h.Get)
		tags.POST("", middleware.AuthRequired(resolver), h.Create)
		tags.PATCH("/:id", middleware.AuthRequired(resolver), h.Update)
		tags.DELETE("/:id", middleware.AuthRequired(resolver), h.Delete)
	}
}

func (h *TagHandler) List(c *gin.Context) {
	var tags []models.Tag
	if err := h.db.WithContext(c.Request.Context()).Order("name").Find(&tags).Error; err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *TagHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var tag models.Tag
	if err := h.db.WithContext(c.Request.Context()).First(&tag, "id = ?", id).Error; err != nil {
		abortWithError(c, errs.FromDB(err, ""))
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) Create(c *gin.Context) {
	if !policy.CanManageReference(currentUser(c)) {
		abortWithError(c, errs.Forbidden("staff privilege required"))
		return
	}
	var req TagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag := models.Tag{Name: req.Name, Color: req.Color, Slug: req.Slug}
	if err := h.db.WithContext(c.Request.Context()).Create(&tag).Error; err != nil {
		abortWithError(c, errs.FromDB(err, "a tag with this name, color or slug already exists"))
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (h *TagHandler) Update(c *gin.Context) {
	if !policy.CanManageReference(currentUser(c)) {
		abortWithError(c, errs.Forbidden("staff privilege required"))
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req TagUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	db := h.db.WithContext(c.Request.Context())
	var tag models.Tag
	if err := db.First(&tag, "id = ?", id).Error; err != nil {
		abortWithError(c, errs.FromDB(err, ""))
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Color != "" {
		updates["color"] = req.Color
	}
	if req.Slug != "" {
		updates["slug"] = req.Slug
	}
	if len(updates) > 0 {
		if err := db.Model(&tag).Updates(updates).Error; err != nil {
			abortWithError(c, errs.FromDB(err, "a tag with this name, color or slug already exists"))
			return
		}
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) Delete(c *gin.Context) {
	if !policy.CanManageReference(currentUser(c)) {
		abortWithError(c, errs.Forbidden("staff privilege required"))
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Tag{}, "id = ?", id)
	if res.Error != nil {
		abortWithError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		abortWithError(c, errs.NotFound("tag not found"))
		return
	}
	c.Status(http.StatusNoContent)
}
