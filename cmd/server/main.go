package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"gig-ledger-go/internal/config"
	"gig-ledger-go/internal/database"
	httpserver "gig-ledger-go/internal/http"
	"gig-ledger-go/internal/logger"
	"gig-ledger-go/internal/metrics"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	r, err := httpserver.NewServer(cfg, db, log, metrics.New())
	if err != nil {
		log.Fatal("server setup failed", zap.Error(err))
	}

	log.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
