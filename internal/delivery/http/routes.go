package http

import (
	"github.com/cmsteiner495/elevatedhealth-sub000/config"
	"github.com/gin-gonic/gin"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Global middleware. These also run for the 404 and 405 chains, which is
	// how OPTIONS preflights reach the CORS middleware.
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.NoRoute(handler.NotFound)
	router.NoMethod(handler.MethodNotAllowed)

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		foods := v1.Group("/foods")
		{
			foods.GET("/search", handler.SearchFoods)
		}
	}

	return router
}
