package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"plateful/config"
	"plateful/internal/database"
	"plateful/internal/middleware"
	"plateful/internal/server"
	"plateful/internal/service"
	"plateful/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.New(cfg)
	if err != nil {
		logger.L().Fatal("database connection failed", zap.Error(err))
	}

	ctx := context.Background()
	images, err := service.NewS3ImageStore(ctx, cfg.S3.Bucket, cfg.S3.Region)
	if err != nil {
		logger.L().Fatal("s3 client failed", zap.Error(err))
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.Redis.Enabled {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			logger.L().Fatal("redis connection failed", zap.Error(err))
		}
		rateLimiter = middleware.NewRecipeCreationRateLimiter(redisClient)
	}

	srv := server.New(cfg, db, images, rateLimiter)
	if err := srv.Start(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
