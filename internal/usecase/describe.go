package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/prodlens/backend/internal/domain"
)

const (
	// minSynthesisLength is the shortest fragment total worth rewriting;
	// anything shorter is returned verbatim.
	minSynthesisLength = 100

	descriptionFallbackLen   = 300
	descriptionTokenCeiling  = 500
	noDescriptionPlaceholder = "No product description available."
)

// DescriptionSynthesizer turns raw description fragments into one
// structured product description.
type DescriptionSynthesizer struct {
	completion domain.CompletionClient
}

// NewDescriptionSynthesizer creates a synthesizer.
func NewDescriptionSynthesizer(completion domain.CompletionClient) *DescriptionSynthesizer {
	return &DescriptionSynthesizer{completion: completion}
}

// Synthesize produces the description for fragments. A completion-service
// failure degrades to a truncated concatenation; this method never fails.
func (s *DescriptionSynthesizer) Synthesize(ctx context.Context, fragments []string) string {
	if len(fragments) == 0 {
		return noDescriptionPlaceholder
	}

	combined := strings.Join(fragments, " ")
	if len(combined) < minSynthesisLength {
		// Too little material to merit a rewrite
		return combined
	}

	prompt := fmt.Sprintf(`Based on the following product information, create a comprehensive and well-structured product description.
Highlight key features, specifications, and benefits. Format the response with appropriate sections.
DO NOT use markdown formatting like ** for bold or * for italic in your response.
Use clear section headings and structured content instead.

Product Information: %s`, combined)

	description, err := s.completion.Complete(ctx, prompt, domain.CompletionOptions{
		MaxOutputTokens: descriptionTokenCeiling,
		Temperature:     completionTemperature,
		TopP:            completionTopP,
	})
	if err != nil {
		log.Printf("[Describe] Synthesis failed, using raw fragments: %v", err)
		return truncate(combined, descriptionFallbackLen)
	}
	return description
}
