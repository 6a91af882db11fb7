package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/fspruce/helpful-living/internal/config"
	dbpkg "github.com/fspruce/helpful-living/internal/db"
	"github.com/fspruce/helpful-living/internal/flash"
	"github.com/fspruce/helpful-living/internal/logging"
	"github.com/fspruce/helpful-living/internal/media"
	"github.com/fspruce/helpful-living/internal/middleware"
	"github.com/fspruce/helpful-living/internal/routes"
)

func main() {

	cfg := config.Load()
	logger := logging.Init()
	defer logger.Sync()

	db := dbpkg.NewDB(cfg)

	flashes := newFlashStore(cfg, logger)
	storage := newMediaStorage(cfg, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, flashes, storage)

	logger.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func newFlashStore(cfg *config.Config, logger *zap.Logger) flash.Store {
	if cfg.RedisURL == "" {
		logger.Info("no redis configured, using in-memory flash store")
		return flash.NewMemoryStore()
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}

	return flash.NewRedisStore(redis.NewClient(opts))
}

func newMediaStorage(cfg *config.Config, logger *zap.Logger) media.Storage {
	if cfg.S3Bucket == "" {
		logger.Info("no media bucket configured, image uploads disabled")
		return nil
	}

	return media.NewS3Storage(cfg)
}
