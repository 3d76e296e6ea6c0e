package main

import (
	"context"
	"os"
	"time"

	"catalog_service/config"
	"catalog_service/internal/delivery"
	"catalog_service/internal/repository"
	"catalog_service/internal/usecase"
	"catalog_service/pkg/db"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	logger.Info("Starting catalog service...")

	// --- Database Connection ---
	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := db.Connect(connectCtx, cfg.MongoURI)
	cancel()
	if err != nil {
		logger.Fatalf("FATAL: Failed to connect to mongodb: %v", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Errorf("Failed to disconnect mongodb client: %v", err)
		}
	}()
	logger.Info("Database connection established.")

	database := client.Database(cfg.MongoDatabase)

	// --- Dependency Injection ---
	categoryRepo := repository.NewMongoCategoryRepository(database, logger)
	productRepo := repository.NewMongoProductRepository(database, logger)
	logger.Info("Repositories initialized.")

	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo, logger)
	productUseCase := usecase.NewProductUseCase(productRepo, categoryRepo, logger)
	logger.Info("Use cases initialized.")

	categoryHandler := delivery.NewCategoryHandler(categoryUseCase, logger)
	productHandler := delivery.NewProductHandler(productUseCase, logger)
	logger.Info("Handlers initialized.")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(delivery.RequestLogger(logger))

	categoryHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router)
	logger.Info("API routes registered.")

	logger.Infof("Starting server on %s", cfg.HTTPPort)
	if err := router.Run(cfg.HTTPPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
