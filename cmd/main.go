package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/vitalplan-backend/internal/catalog"
	"github.com/yungbote/vitalplan-backend/internal/db"
	"github.com/yungbote/vitalplan-backend/internal/handlers"
	"github.com/yungbote/vitalplan-backend/internal/logger"
	"github.com/yungbote/vitalplan-backend/internal/middleware"
	"github.com/yungbote/vitalplan-backend/internal/observability"
	"github.com/yungbote/vitalplan-backend/internal/repos"
	"github.com/yungbote/vitalplan-backend/internal/server"
	"github.com/yungbote/vitalplan-backend/internal/services"
	"github.com/yungbote/vitalplan-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	serviceName := utils.GetEnv("SERVICE_NAME", "vitalplan-backend", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	catalogPath := utils.GetEnv("CATALOG_PATH", "configs/catalog.yaml", log)
	rulesPath := utils.GetEnv("RULES_PATH", "configs/rules.json", log)
	packagesPath := utils.GetEnv("PACKAGES_PATH", "", log)

	// Tracing
	otelShutdown := observability.InitTracing(context.Background(), log, observability.Config{
		ServiceName: serviceName,
		Environment: logMode,
		Version:     utils.GetEnv("SERVICE_VERSION", "", log),
	})
	if otelShutdown != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(ctx); err != nil {
				log.Warn("Otel shutdown failed", "error", err)
			}
		}()
	}

	// Database
	databaseService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err = databaseService.AutoMigrateAll(); err != nil {
		log.Warn("Auto migration failed", "error", err)
	}
	theDB := databaseService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	planRepo := repos.NewActionPlanRepo(theDB, log)
	reportRepo := repos.NewHealthReportRepo(theDB, log)

	// Snapshot cache (optional)
	snapshotCache, err := catalog.NewSnapshotCache(log)
	if err != nil {
		log.Warn("Snapshot cache unavailable, reading snapshot files directly", "error", err)
		snapshotCache = nil
	}

	// Services
	log.Info("Setting up services from main...")
	catalogService := services.NewCatalogService(log, snapshotCache, catalogPath, rulesPath, packagesPath)
	planService := services.NewPlanService(theDB, log, catalogService, planRepo, reportRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	planHandler := handlers.NewPlanHandler(log, planService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, jwtSecretKey)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		ServiceName:    serviceName,
		PlanHandler:    planHandler,
		AuthMiddleware: authMiddleware,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
