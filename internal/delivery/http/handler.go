package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prodlens/backend/internal/domain"
	"github.com/prodlens/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products        *usecase.ProductService
	comparisons     *usecase.ComparisonService
	recommendations *usecase.RecommendationService
	assistant       *usecase.AskService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	products *usecase.ProductService,
	comparisons *usecase.ComparisonService,
	recommendations *usecase.RecommendationService,
	assistant *usecase.AskService,
) *Handler {
	return &Handler{
		products:        products,
		comparisons:     comparisons,
		recommendations: recommendations,
		assistant:       assistant,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "prodlens-backend",
		"version": "1.0.0",
	})
}

type scrapeRequest struct {
	ProductName string `json:"product_name"`
}

// scrapeResponse flattens the assembled record with its session identifier.
type scrapeResponse struct {
	*domain.ProductRecord
	ProductID string `json:"product_id"`
}

// ScrapeProduct assembles a product record for a name or URL query.
func (h *Handler) ScrapeProduct(c *gin.Context) {
	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product name or URL is required"})
		return
	}

	record, id, err := h.products.Scrape(c.Request.Context(), req.ProductName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, scrapeResponse{ProductRecord: record, ProductID: id})
}

type compareRequest struct {
	ProductIDs []string `json:"product_ids"`
}

// CompareProducts generates a comparison of cached products.
func (h *Handler) CompareProducts(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	comparison, names, err := h.comparisons.Compare(c.Request.Context(), req.ProductIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comparison":    comparison,
		"product_names": names,
	})
}

type askComparisonRequest struct {
	Question   string   `json:"question"`
	ProductIDs []string `json:"product_ids"`
}

// AskComparison answers a question about cached products.
func (h *Handler) AskComparison(c *gin.Context) {
	var req askComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	answer, names, err := h.comparisons.Answer(c.Request.Context(), req.Question, req.ProductIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answer":        answer,
		"product_names": names,
	})
}

type recommendRequest struct {
	ProductID string `json:"product_id"`
}

// RecommendProducts suggests alternatives to a cached product.
func (h *Handler) RecommendProducts(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid product ID is required"})
		return
	}

	recommendations, err := h.recommendations.Recommend(c.Request.Context(), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
}

type askProductRequest struct {
	Question       string `json:"question"`
	ProductContext string `json:"product_context"`
}

// AskProduct answers a question scoped to supplied product context.
func (h *Handler) AskProduct(c *gin.Context) {
	var req askProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	answer, err := h.assistant.AskProduct(c.Request.Context(), req.Question, req.ProductContext)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

type chatRequest struct {
	Message string `json:"message"`
}

// Chat answers a general shopping question.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	answer, err := h.assistant.Chat(c.Request.Context(), req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// respondError maps domain errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmptyCandidates), errors.Is(err, domain.ErrRecommendationParse):
		log.Printf("[HTTP] Completion service failure: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Text generation temporarily unavailable"})
	default:
		log.Printf("[HTTP] Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
