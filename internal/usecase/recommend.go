package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/prodlens/backend/internal/domain"
)

// maxRecommendations bounds the parsed recommendation list.
const maxRecommendations = 8

// RecommendationService asks the completion service for similar products
// as a machine-readable JSON array. Unlike summarization there is no safe
// textual fallback here: malformed JSON is a hard failure.
type RecommendationService struct {
	store      domain.ProductStore
	completion domain.CompletionClient
}

// NewRecommendationService creates a recommendation service.
func NewRecommendationService(store domain.ProductStore, completion domain.CompletionClient) *RecommendationService {
	return &RecommendationService{store: store, completion: completion}
}

// Recommend returns up to 8 alternatives to the cached product id.
func (s *RecommendationService) Recommend(ctx context.Context, id string) ([]domain.Recommendation, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: product ID is required", domain.ErrInvalidRequest)
	}
	record, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}

	prompt := fmt.Sprintf(`I need recommendations for products similar to this one:

Product Name: %s
Price: %s
Description: %s...

Please suggest %d specific, real products that are similar to this one.
For each product, provide:
1. The exact product name (as it would appear on the store)
2. A brief explanation of why it's a good alternative (1-2 sentences)
3. An estimated price range

Format the response as JSON with this structure:
[
    {"name": "Product Name 1", "reason": "Reason for recommendation", "price_range": "$XX-$YY"},
    {"name": "Product Name 2", "reason": "Reason for recommendation", "price_range": "$XX-$YY"},
    ...
]

Do not include any text before or after the JSON array.`,
		record.Name, record.Price, sliceDescription(record.Description, compareDescCapFew), maxRecommendations)

	raw, err := s.completion.Complete(ctx, prompt, domain.CompletionOptions{
		Temperature: completionTemperature,
		TopP:        completionTopP,
	})
	if err != nil {
		return nil, err
	}

	var recommendations []domain.Recommendation
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &recommendations); err != nil {
		log.Printf("[Recommend] Failed to parse recommendation JSON: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrRecommendationParse, err)
	}

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations, nil
}

// cleanJSONResponse strips markdown code-fence wrappers that models wrap
// JSON answers in.
func cleanJSONResponse(response string) string {
	cleaned := strings.TrimSpace(response)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	return cleaned
}
