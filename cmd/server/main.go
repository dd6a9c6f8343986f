package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arutourism/arutourism-backend/config"
	"github.com/arutourism/arutourism-backend/internal/app/controller"
	"github.com/arutourism/arutourism-backend/internal/app/repository"
	"github.com/arutourism/arutourism-backend/internal/app/service"
	"github.com/arutourism/arutourism-backend/internal/db"
	"github.com/arutourism/arutourism-backend/internal/importer"
	"github.com/arutourism/arutourism-backend/internal/middleware"
	"github.com/arutourism/arutourism-backend/internal/router"
	"github.com/arutourism/arutourism-backend/internal/scheduler"
	"github.com/arutourism/arutourism-backend/internal/storage"
	"github.com/arutourism/arutourism-backend/pkg/logger"
	"github.com/arutourism/arutourism-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting AruTourism Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed the default tag tree (no-op when tags exist)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Redis backs the token blacklist and the filter options cache;
	// the server still works without it
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, caching and token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer redis.Close()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	empresaRepo := repository.NewEmpresaRepository(db.GetDB())
	tagRepo := repository.NewTagRepository(db.GetDB())
	avaliacaoRepo := repository.NewAvaliacaoRepository(db.GetDB())
	imageRepo := repository.NewImageRepository(db.GetDB())
	favoriteRepo := repository.NewFavoriteRepository(db.GetDB())
	resetRepo := repository.NewPasswordResetRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	passwordResetService := service.NewPasswordResetService(resetRepo, userRepo)
	empresaService := service.NewEmpresaService(empresaRepo, tagRepo, &cfg.Import)
	tagService := service.NewTagService(tagRepo)
	avaliacaoService := service.NewAvaliacaoService(avaliacaoRepo, empresaRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, empresaRepo)
	imageService := service.NewImageService(imageRepo, empresaRepo)

	// Initialize import pipeline and storage
	imp := importer.New(db.GetDB(), &cfg.Import)
	s3Storage := storage.NewS3Storage(&cfg.S3)

	// Initialize controllers
	authController := controller.NewAuthController(authService, passwordResetService, cfg.JWT.Secret)
	empresaController := controller.NewEmpresaController(empresaService)
	tagController := controller.NewTagController(tagService)
	avaliacaoController := controller.NewAvaliacaoController(avaliacaoService)
	favoriteController := controller.NewFavoriteController(favoriteService)
	imageController := controller.NewImageController(imageService)
	importController := controller.NewImportController(imp)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the reset token purge scheduler
	purgeScheduler := scheduler.NewResetPurgeScheduler(passwordResetService)
	if err := purgeScheduler.Start(); err != nil {
		logger.Warn("Failed to start reset token purge scheduler", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer purgeScheduler.Stop()
	}

	// Setup router
	r := router.NewRouter(
		authController,
		empresaController,
		tagController,
		avaliacaoController,
		favoriteController,
		imageController,
		importController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
