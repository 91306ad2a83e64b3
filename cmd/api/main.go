package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/himsog/himsog-api/internal/config"
	dbpkg "github.com/himsog/himsog-api/internal/db"
	"github.com/himsog/himsog-api/internal/logging"
	"github.com/himsog/himsog-api/internal/middleware"
	"github.com/himsog/himsog-api/internal/routes"
)

func main() {

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	db := dbpkg.NewDB(cfg)

	// Redis is optional: availability responses fall back to
	// recomputing on every request when it is unreachable.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("invalid REDIS_URL, availability cache disabled")
		} else {
			rdb = redis.NewClient(opts)

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			if err := rdb.Ping(ctx).Err(); err != nil {
				logger.Warn().Err(err).Msg("redis unreachable, availability cache disabled")
				rdb = nil
			}
			cancel()
		}
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, rdb, logger)

	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
