package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/api"
	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/service"
)

// Services bundles everything the routes need.
type Services struct {
	Auth          *service.AuthService
	Users         *service.UserService
	Subscriptions *service.SubscriptionService
	Recipes       *service.RecipeService
	Memberships   *service.MembershipService
	ShoppingLists *service.ShoppingListService
	Images        *service.ImageService
}

// SetupRouter configures the application routes under /api/v1.
func SetupRouter(db *gorm.DB, redisClient *redis.Client, logger zerolog.Logger, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS())

	limiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     60,
		KeyPrefix: "ratelimit:write",
	})

	v1 := router.Group("/api/v1")

	api.NewAuthHandler(svc.Auth).RegisterRoutes(v1, svc.Auth)
	api.NewUserHandler(svc.Auth, svc.Users, svc.Subscriptions).RegisterRoutes(v1, svc.Auth)
	api.NewTagHandler(db).RegisterRoutes(v1, svc.Auth)
	api.NewIngredientHandler(db).RegisterRoutes(v1, svc.Auth)
	api.NewRecipeHandler(svc.Recipes, svc.Memberships, svc.ShoppingLists, svc.Images).
		RegisterRoutes(v1, svc.Auth, limiter)

	return router
}
