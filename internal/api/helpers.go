package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/errs"
	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

// defaultPageSize matches the reference frontend's listing layout.
const defaultPageSize = 2

func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(middleware.ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// viewerID returns the authenticated viewer's id, or nil for anonymous.
func viewerID(c *gin.Context) *uuid.UUID {
	v, ok := c.Get(middleware.ContextUserIDKey)
	if !ok {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

func tokenClaims(c *gin.Context) *types.TokenClaims {
	v, ok := c.Get(middleware.ContextClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*types.TokenClaims)
	return claims
}

// abortWithError renders an error with its taxonomy-mapped status. Validation
// errors are field-scoped; conflicts keep the reference API's "errors" shape.
func abortWithError(c *gin.Context, err error) {
	status := errs.HTTPStatus(err)

	var e *errs.Error
	if errors.As(err, &e) {
		switch e.Kind {
		case errs.KindValidation:
			c.AbortWithStatusJSON(status, gin.H{"errors": gin.H{e.Field: []string{e.Message}}})
		case errs.KindConflict:
			c.AbortWithStatusJSON(status, gin.H{"errors": e.Message})
		default:
			c.AbortWithStatusJSON(status, gin.H{"detail": e.Message})
		}
		return
	}

	if status == http.StatusInternalServerError {
		c.AbortWithStatusJSON(status, gin.H{"detail": "internal server error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"detail": err.Error()})
}

// bindJSON binds the body and renders binding failures as field-scoped
// validation errors. Returns false when the request was already answered.
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			name := strings.ToLower(fe.Field())
			fields[name] = append(fields[name], bindingMessage(fe))
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": fields})
		return false
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "malformed request body"})
	return false
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "hexcolor":
		return "must be a hex color such as #E26C2D"
	default:
		return "invalid value"
	}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, errs.Validation("id", "invalid identifier"))
		return uuid.Nil, false
	}
	return id, true
}

type pageParams struct {
	Page  int
	Limit int
}

// pagination parses page/limit query parameters with the standard defaults.
func pagination(c *gin.Context) pageParams {
	params := pageParams{Page: 1, Limit: defaultPageSize}
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		params.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		params.Limit = v
	}
	return params
}

// paginated builds the standard listing envelope with next/previous links.
func paginated(c *gin.Context, params pageParams, count int64, results interface{}) gin.H {
	return gin.H{
		"count":    count,
		"next":     pageLink(c, params, params.Page+1, int64(params.Page*params.Limit) < count),
		"previous": pageLink(c, params, params.Page-1, params.Page > 1),
		"results":  results,
	}
}

func pageLink(c *gin.Context, params pageParams, page int, ok bool) interface{} {
	if !ok {
		return nil
	}
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(params.Limit))
	u.RawQuery = q.Encode()
	return u.String()
}
