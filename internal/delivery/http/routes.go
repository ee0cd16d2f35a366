package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/salesai/backend/config"
	"github.com/sirupsen/logrus"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, log logrus.FieldLogger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(log))
	router.Use(LoggerMiddleware(log))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/generateAnalysis", handler.GenerateAnalysis)
		api.POST("/recommendSolutions", handler.RecommendSolutions)

		// Catalog helpers
		api.GET("/companies", handler.Companies)
		api.GET("/industries", handler.Industries)
		api.GET("/solutions", handler.Solutions)
	}

	return router
}
