package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prodlens/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// Product pipeline endpoints
	router.POST("/scrape", handler.ScrapeProduct)
	router.POST("/compare_multiple_products", handler.CompareProducts)
	router.POST("/ask_comparison", handler.AskComparison)
	router.POST("/recommend_products", handler.RecommendProducts)

	// Assistant endpoints
	router.POST("/ask_gemini", handler.AskProduct)
	router.POST("/chatbot", handler.Chat)

	return router
}
