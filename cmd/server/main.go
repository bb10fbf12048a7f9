package main

import (
	"fmt"
	"log"
	"os"

	"github.com/prodlens/backend/config"
	httpDelivery "github.com/prodlens/backend/internal/delivery/http"
	"github.com/prodlens/backend/internal/infrastructure/cache"
	"github.com/prodlens/backend/internal/infrastructure/extract"
	"github.com/prodlens/backend/internal/infrastructure/fetch"
	"github.com/prodlens/backend/internal/infrastructure/gemini"
	"github.com/prodlens/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ProdLens Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Target site: %s (max attempts: %d)", cfg.Amazon.BaseURL, cfg.Amazon.MaxAttempts)

	// Initialize infrastructure dependencies
	policy := fetch.DefaultPolicy()
	policy.MaxAttempts = cfg.Amazon.MaxAttempts
	fetcher := fetch.NewClient(cfg.Amazon.RequestTimeout, policy)

	extractor := extract.NewExtractor(extract.ProductSchema())
	store := cache.NewSessionStore()

	completion := gemini.NewClient(
		cfg.Gemini.APIKey,
		cfg.Gemini.BaseURL,
		cfg.Gemini.Model,
		cfg.RateLimit.GeminiPerMinute,
	)
	log.Printf("Gemini model: %s (%d requests/minute)", cfg.Gemini.Model, cfg.RateLimit.GeminiPerMinute)

	// Initialize usecase layer
	resolver := usecase.NewQueryResolver(fetcher, cfg.Amazon.BaseURL)
	aggregator := usecase.NewReviewAggregator(usecase.NewSentimentClassifier(), completion)
	synthesizer := usecase.NewDescriptionSynthesizer(completion)

	productService := usecase.NewProductService(resolver, fetcher, extractor, aggregator, synthesizer, store)
	comparisonService := usecase.NewComparisonService(store, completion)
	recommendationService := usecase.NewRecommendationService(store, completion)
	askService := usecase.NewAskService(completion)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(productService, comparisonService, recommendationService, askService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
