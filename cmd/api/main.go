package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quickserve-app/quickserve-api/internal/cache"
	"github.com/quickserve-app/quickserve-api/internal/config"
	dbpkg "github.com/quickserve-app/quickserve-api/internal/db"
	"github.com/quickserve-app/quickserve-api/internal/middleware"
	"github.com/quickserve-app/quickserve-api/internal/observ"
	"github.com/quickserve-app/quickserve-api/internal/routes"
	"github.com/quickserve-app/quickserve-api/internal/storage"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Presence is optional; without Redis the API still runs, everyone just
	// shows as offline.
	presence, err := cache.NewPresence(cfg.RedisURL)
	if err != nil {
		logger.Warn("redis unavailable, presence disabled", zap.Error(err))
	}

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal("failed to prepare upload dirs", zap.Error(err))
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, logger, presence, store)

	logger.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
