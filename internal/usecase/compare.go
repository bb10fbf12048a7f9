package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/prodlens/backend/internal/domain"
)

// Token budgeting. Input size is estimated at 1.5 tokens per word, and the
// output ceiling is reduced silently whenever estimate plus ceiling would
// exceed the service-wide limit.
const (
	serviceTokenCeiling = 30000
	tokensPerWord       = 1.5

	comparisonTokensFew  = 2000 // up to 5 products
	comparisonTokensMany = 1000
	answerTokensFew      = 800
	answerTokensMany     = 500
)

// Per-record description caps; the budget shrinks as the record count
// grows to keep the combined prompt inside the context window.
const (
	compareDescCapPair = 500 // exactly 2 products
	compareDescCapFew  = 300 // up to 5
	compareDescCapMany = 150
	answerDescCapFew   = 200
	answerDescCapMany  = 100
)

// ComparisonService builds multi-product comparison prompts over cached
// records and forwards them to the completion service.
type ComparisonService struct {
	store      domain.ProductStore
	completion domain.CompletionClient
}

// NewComparisonService creates a comparison service.
func NewComparisonService(store domain.ProductStore, completion domain.CompletionClient) *ComparisonService {
	return &ComparisonService{store: store, completion: completion}
}

// Compare generates an unconditional comparison of the cached products
// named by ids. It returns the comparison text and the product names.
func (s *ComparisonService) Compare(ctx context.Context, ids []string) (string, []string, error) {
	records, names, err := s.lookup(ids)
	if err != nil {
		return "", nil, err
	}

	descCap := compareDescCapMany
	instruction := condensedInstruction
	maxTokens := comparisonTokensMany
	if len(records) <= 5 {
		descCap = compareDescCapFew
		instruction = fullInstruction
		maxTokens = comparisonTokensFew
	}
	if len(records) == 2 {
		descCap = compareDescCapPair
	}

	prompt := fmt.Sprintf(`Compare the following %d products:

%s

%s

Format the response in a clear, structured way with sections.
DO NOT use markdown formatting like ** for bold or * for italic in your response.
Use clear section headings and structured content instead.`,
		len(records), contextBlocks(records, descCap), instruction)

	comparison, err := s.complete(ctx, prompt, maxTokens)
	if err != nil {
		return "", nil, err
	}
	return comparison, names, nil
}

// Answer responds to question using the same cached-product context as
// Compare but an answer-directly instruction.
func (s *ComparisonService) Answer(ctx context.Context, question string, ids []string) (string, []string, error) {
	if strings.TrimSpace(question) == "" {
		return "", nil, fmt.Errorf("%w: question is required", domain.ErrInvalidRequest)
	}

	records, names, err := s.lookup(ids)
	if err != nil {
		return "", nil, err
	}

	descCap := answerDescCapMany
	maxTokens := answerTokensMany
	if len(records) <= 5 {
		descCap = answerDescCapFew
		maxTokens = answerTokensFew
	}

	prompt := fmt.Sprintf(`%s

User Question: %s

Please answer the user's question comparing these %d products based on the information provided.
Be concise but thorough, focusing directly on answering the question asked.
DO NOT use markdown formatting like ** for bold or * for italic in your response.`,
		contextBlocks(records, descCap), question, len(records))

	answer, err := s.complete(ctx, prompt, maxTokens)
	if err != nil {
		return "", nil, err
	}
	return answer, names, nil
}

// lookup validates ids against the session store. At least two valid
// cached identifiers are required before any completion call is made.
func (s *ComparisonService) lookup(ids []string) ([]*domain.ProductRecord, []string, error) {
	if len(ids) < 2 {
		return nil, nil, fmt.Errorf("%w: at least two product IDs are required", domain.ErrInvalidRequest)
	}

	records, missing := s.store.GetAll(ids)
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("%w: not in cache: %s", domain.ErrProductNotFound, strings.Join(missing, ", "))
	}

	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	return records, names, nil
}

// complete issues the completion call with the token ceiling clamped to
// the service-wide limit.
func (s *ComparisonService) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	maxTokens = clampOutputTokens(prompt, maxTokens)
	return s.completion.Complete(ctx, prompt, domain.CompletionOptions{
		MaxOutputTokens: maxTokens,
		Temperature:     completionTemperature,
		TopP:            completionTopP,
	})
}

// contextBlocks renders one context block per record with the description
// sliced to descCap.
func contextBlocks(records []*domain.ProductRecord, descCap int) string {
	blocks := make([]string, len(records))
	for i, r := range records {
		blocks[i] = fmt.Sprintf(`PRODUCT %d: %s
Price: %s
Rating: %s
Description: %s...
Overall Review Summary: %s`,
			i+1, r.Name, r.Price, r.Rating, sliceDescription(r.Description, descCap), r.Sentiment.Summaries.Overall)
	}
	return strings.Join(blocks, "\n\n")
}

// sliceDescription returns at most n bytes of description.
func sliceDescription(description string, n int) string {
	if len(description) <= n {
		return description
	}
	return description[:n]
}

// clampOutputTokens reduces ceiling so that the estimated input tokens
// plus the output ceiling stay inside the service-wide limit.
func clampOutputTokens(prompt string, ceiling int) int {
	estimated := int(float64(len(strings.Fields(prompt))) * tokensPerWord)
	if estimated+ceiling > serviceTokenCeiling {
		clamped := serviceTokenCeiling - estimated
		if clamped < ceiling {
			ceiling = clamped
		}
		if ceiling < 0 {
			ceiling = 0
		}
		log.Printf("[Compare] Output ceiling clamped to %d (estimated input %d tokens)", ceiling, estimated)
	}
	return ceiling
}

const fullInstruction = `Provide a comprehensive comparison including:
1. Price comparison across all products
2. Feature comparison highlighting strengths of each product
3. Quality and performance comparison based on reviews
4. Pros and cons of each product
5. Overall recommendation`

const condensedInstruction = `Provide a concise comparison focusing on:
1. Price comparison with a short table format
2. Key features comparison highlighting main differences
3. Main pros and cons for each product
4. Overall recommendation`
