package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/streamhive/accounts-backend/internal/core/services"
	"github.com/streamhive/accounts-backend/internal/handlers"
	"github.com/streamhive/accounts-backend/internal/middleware"
	"github.com/streamhive/accounts-backend/internal/platform/config"
	s3store "github.com/streamhive/accounts-backend/internal/platform/storage/s3"
	"github.com/streamhive/accounts-backend/internal/repositories/database/mongodb"
	"github.com/streamhive/accounts-backend/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	mongoClient, err := database.NewMongoClient(ctx, cfg.MongoURI)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.CloseMongoClient(mongoClient)

	userRepo := mongodb.NewUserRepository(mongoClient.Database(cfg.MongoDBName))
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logger.Error("Failed to ensure indexes", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Database connection established.")

	mediaStore, err := s3store.NewMediaStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize media store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	serviceContainer := services.NewServiceContainer(cfg, userRepo, mediaStore)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
