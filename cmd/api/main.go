package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/cache"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/router"
	"github.com/pageza/recipebox/backend/internal/server"
	"github.com/pageza/recipebox/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := middleware.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.CacheEnabled() {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			// Continue without the cache if Redis is not available
			logger.Warn("redis unavailable, caching disabled", slog.Any("error", err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var recipeCache *cache.RecipeCache
	if redisClient != nil {
		recipeCache = cache.New(redisClient, cfg.CacheTTL, logger)
	}
	recipeService := service.NewRecipeService(db, recipeCache)

	var imageService service.IImageService
	if cfg.ImageStorageEnabled() {
		s3Cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return err
		}
		imageService = service.NewImageService(s3Cfg.Client, s3Cfg.BucketName, s3Cfg.PublicURL, recipeService)
		logger.Info("image uploads enabled", slog.String("bucket", s3Cfg.BucketName))
	}

	handler := router.SetupRouter(cfg, logger,
		api.NewHealthHandler(db),
		api.NewRecipeHandler(recipeService, imageService),
	)
	srv := server.New(cfg, handler, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		logger.Info("received signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
