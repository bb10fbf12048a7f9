package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/prodlens/backend/internal/domain"
)

const (
	chatTemperature  = 0.7
	chatTokenCeiling = 800
)

// AskService answers free-form questions, either scoped to supplied
// product context or as a general shopping assistant.
type AskService struct {
	completion domain.CompletionClient
}

// NewAskService creates an ask service.
func NewAskService(completion domain.CompletionClient) *AskService {
	return &AskService{completion: completion}
}

// AskProduct answers question against the supplied product context.
func (s *AskService) AskProduct(ctx context.Context, question, productContext string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: question is required", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(productContext) == "" {
		return "", fmt.Errorf("%w: product context is required", domain.ErrInvalidRequest)
	}

	prompt := fmt.Sprintf(`Product Information:
%s

User Question: %s

Please answer the user's question about this product based on the information provided.
Avoid using markdown formatting like ** for bold or * for italic in your response.`,
		productContext, question)

	return s.completion.Complete(ctx, prompt, domain.CompletionOptions{
		Temperature: completionTemperature,
		TopP:        completionTopP,
	})
}

// Chat answers a general shopping question with no product scope.
func (s *AskService) Chat(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: message is required", domain.ErrInvalidRequest)
	}

	prompt := fmt.Sprintf(`You are a helpful AI assistant that can answer questions about products, shopping, and general knowledge.

User Message: %s

Please provide a helpful, informative, and conversational response.
Avoid using markdown formatting like ** for bold or * for italic in your response.`,
		message)

	return s.completion.Complete(ctx, prompt, domain.CompletionOptions{
		MaxOutputTokens: chatTokenCeiling,
		Temperature:     chatTemperature,
		TopP:            completionTopP,
	})
}
