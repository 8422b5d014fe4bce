package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/router"
	"github.com/foodgram/backend/internal/server"
	"github.com/foodgram/backend/internal/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	if redisClient == nil {
		logger.Warn().Msg("Redis not configured; token revocation and rate limiting disabled")
	}

	s3Config, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize object storage")
	}
	if s3Config == nil {
		logger.Warn().Msg("object storage not configured; image uploads pass through")
	}

	auth := service.NewAuthService(db, redisClient, cfg.JWTSecret)
	svc := router.Services{
		Auth:          auth,
		Users:         service.NewUserService(db),
		Subscriptions: service.NewSubscriptionService(db),
		Recipes:       service.NewRecipeService(db),
		Memberships:   service.NewMembershipService(db),
		ShoppingLists: service.NewShoppingListService(db),
		Images:        service.NewImageService(s3Config),
	}

	engine := router.SetupRouter(db, redisClient, logger, svc)
	srv := server.New(engine, cfg.ServerHost, cfg.ServerPort, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal().Err(err).Msg("server error")
		}
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown error")
	}
	logger.Info().Msg("server stopped")
}
