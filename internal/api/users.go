package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/service"
)

type UserHandler struct {
	auth  *service.AuthService
	users *service.UserService
	subs  *service.SubscriptionService
}

func NewUserHandler(auth *service.AuthService, users *service.UserService, subs *service.SubscriptionService) *UserHandler {
	return &UserHandler{auth: auth, users: users, subs: subs}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup, resolver middleware.IdentityResolver) {
	users := r.Group("/users")
	{
		users.POST("", h.Create)
		users.GET("", middleware.AuthOptional(resolver), h.List)
		users.GET("/me", middleware.AuthRequired(resolver), h.Me)
		users.POST("/set_password", middleware.AuthRequired(resolver), h.SetPassword)
		users.GET("/subscriptions", middleware.AuthRequired(resolver), h.Subscriptions)
		users.GET("/:id", middleware.AuthOptional(resolver), h.Get)
		users.POST("/:id/subscribe", middleware.AuthRequired(resolver), h.Subscribe)
		users.DELETE("/:id/subscribe", middleware.AuthRequired(resolver), h.Unsubscribe)
	}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newUserResponse(user))
}

func (h *UserHandler) List(c *gin.Context) {
	params := pagination(c)
	users, total, err := h.users.List(c.Request.Context(), viewerID(c), params.Page, params.Limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	results := make([]UserResponse, 0, len(users))
	for i := range users {
		results = append(results, newUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, paginated(c, params, total, results))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), viewerID(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *UserHandler) Me(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *UserHandler) SetPassword(c *gin.Context) {
	var req SetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	user := currentUser(c)
	err := h.auth.SetPassword(c.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Subscriptions(c *gin.Context) {
	params := pagination(c)
	user := currentUser(c)

	subs, total, err := h.subs.List(c.Request.Context(), user.ID, params.Page, params.Limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	limit := recipesLimit(c)
	results := make([]SubscriptionResponse, 0, len(subs))
	for i := range subs {
		results = append(results, newSubscriptionResponse(&subs[i], limit))
	}
	c.JSON(http.StatusOK, paginated(c, params, total, results))
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user := currentUser(c)

	sub, err := h.subs.Subscribe(c.Request.Context(), user.ID, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newSubscriptionResponse(sub, recipesLimit(c)))
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user := currentUser(c)

	if err := h.subs.Unsubscribe(c.Request.Context(), user.ID, id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// recipesLimit parses the optional recipes_limit parameter that trims the
// embedded recipe list of each subscription row.
func recipesLimit(c *gin.Context) int {
	if v, err := strconv.Atoi(c.Query("recipes_limit")); err == nil && v >= 0 {
		return v
	}
	return -1
}
