package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/vitalplan-backend/internal/handlers"
	"github.com/yungbote/vitalplan-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName    string
	PlanHandler    *handlers.PlanHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Tracing
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.TraceContext())

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())
	{
		api.POST("/assessment", cfg.PlanHandler.GeneratePlan)
		api.GET("/plan/:accountId", cfg.PlanHandler.GetLatestPlan)
		api.GET("/healthscore/:accountId", cfg.PlanHandler.GetLatestReport)
	}

	return router
}
