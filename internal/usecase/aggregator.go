package usecase

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/prodlens/backend/internal/domain"
)

const (
	// maxReviewsPerSummary caps the material sent to the completion
	// service per bucket.
	maxReviewsPerSummary = 20

	// fallbackTruncateLen bounds the deterministic fallback text used
	// when a summary call fails.
	fallbackTruncateLen = 200

	summaryTokenCeiling   = 200
	completionTemperature = 0.2
	completionTopP        = 0.8
)

// Overall-sentiment labels. A bucket dominates only above 60 percent;
// exactly 60.0 falls into the mixed bucket.
const (
	dominanceThreshold = 60.0

	overallPositive  = "Predominantly positive"
	overallNegative  = "Predominantly negative"
	overallMixed     = "Mixed or neutral"
	overallNoReviews = "No reviews available for analysis."
)

// summaryBucket names one of the four summary targets.
type summaryBucket string

const (
	bucketOverall  summaryBucket = "overall"
	bucketPositive summaryBucket = "positive"
	bucketNegative summaryBucket = "negative"
	bucketNeutral  summaryBucket = "neutral"
)

// ReviewAggregator classifies reviews, derives the sentiment breakdown,
// and generates the four bucket summaries. Aggregation never fails: every
// completion-service failure degrades to deterministic fallback text.
type ReviewAggregator struct {
	classifier *SentimentClassifier
	completion domain.CompletionClient
}

// NewReviewAggregator creates an aggregator.
func NewReviewAggregator(classifier *SentimentClassifier, completion domain.CompletionClient) *ReviewAggregator {
	return &ReviewAggregator{
		classifier: classifier,
		completion: completion,
	}
}

// Aggregate builds the full sentiment report for reviews. The report is
// computed in one pass and never updated afterwards.
func (a *ReviewAggregator) Aggregate(ctx context.Context, reviews []string) domain.SentimentReport {
	if len(reviews) == 0 {
		return emptyReport()
	}

	sentiments := make([]domain.ReviewSentiment, 0, len(reviews))
	buckets := map[domain.SentimentLabel][]string{}
	for _, review := range reviews {
		label := a.classifier.Classify(review)
		sentiments = append(sentiments, domain.ReviewSentiment{Review: review, Label: label})
		buckets[label] = append(buckets[label], review)
	}

	total := len(sentiments)
	counts := map[domain.SentimentLabel]int{
		domain.SentimentPositive: len(buckets[domain.SentimentPositive]),
		domain.SentimentNegative: len(buckets[domain.SentimentNegative]),
		domain.SentimentNeutral:  len(buckets[domain.SentimentNeutral]),
	}
	percentages := map[domain.SentimentLabel]float64{}
	for label, count := range counts {
		percentages[label] = round1(float64(count) / float64(total) * 100)
	}

	overall := overallMixed
	if percentages[domain.SentimentPositive] > dominanceThreshold {
		overall = overallPositive
	} else if percentages[domain.SentimentNegative] > dominanceThreshold {
		overall = overallNegative
	}

	log.Printf("[Aggregator] Classified %d reviews: %d positive, %d negative, %d neutral",
		total, counts[domain.SentimentPositive], counts[domain.SentimentNegative], counts[domain.SentimentNeutral])

	summaries := domain.SentimentSummaries{
		Overall:  a.summarize(ctx, reviews, bucketOverall),
		Positive: a.summarizeOrPlaceholder(ctx, buckets[domain.SentimentPositive], bucketPositive),
		Negative: a.summarizeOrPlaceholder(ctx, buckets[domain.SentimentNegative], bucketNegative),
		Neutral:  a.summarizeOrPlaceholder(ctx, buckets[domain.SentimentNeutral], bucketNeutral),
	}

	return domain.SentimentReport{
		Counts:           counts,
		Percentages:      percentages,
		ReviewSentiments: sentiments,
		Overall:          overall,
		Summaries:        summaries,
	}
}

// emptyReport is the fixed report for a product without usable reviews.
func emptyReport() domain.SentimentReport {
	return domain.SentimentReport{
		Counts: map[domain.SentimentLabel]int{
			domain.SentimentPositive: 0,
			domain.SentimentNegative: 0,
			domain.SentimentNeutral:  0,
		},
		Percentages: map[domain.SentimentLabel]float64{
			domain.SentimentPositive: 0,
			domain.SentimentNegative: 0,
			domain.SentimentNeutral:  0,
		},
		ReviewSentiments: []domain.ReviewSentiment{},
		Overall:          overallNoReviews,
		Summaries: domain.SentimentSummaries{
			Overall:  "No reviews available.",
			Positive: "No positive reviews.",
			Negative: "No negative reviews.",
			Neutral:  "No neutral reviews.",
		},
	}
}

// summarizeOrPlaceholder returns the fixed placeholder for an empty
// bucket without contacting the completion service.
func (a *ReviewAggregator) summarizeOrPlaceholder(ctx context.Context, bucket []string, kind summaryBucket) string {
	if len(bucket) == 0 {
		return fmt.Sprintf("No %s reviews.", kind)
	}
	return a.summarize(ctx, bucket, kind)
}

// summarize requests one natural-language summary for a bucket. Failures
// degrade to a truncated concatenation of the input so that a flaky
// completion service can never fail product assembly.
func (a *ReviewAggregator) summarize(ctx context.Context, bucket []string, kind summaryBucket) string {
	capped := bucket
	if len(capped) > maxReviewsPerSummary {
		capped = capped[:maxReviewsPerSummary]
	}
	combined := strings.Join(capped, " ")

	summary, err := a.completion.Complete(ctx, summaryPrompt(kind, combined), domain.CompletionOptions{
		MaxOutputTokens: summaryTokenCeiling,
		Temperature:     completionTemperature,
		TopP:            completionTopP,
	})
	if err != nil {
		log.Printf("[Aggregator] %s summary failed, using fallback: %v", kind, err)
		return truncate(combined, fallbackTruncateLen)
	}
	return summary
}

// summaryPrompt builds the bucket-specific instructional prompt.
func summaryPrompt(kind summaryBucket, combined string) string {
	switch kind {
	case bucketPositive:
		return fmt.Sprintf(`Summarize the positive aspects from these product reviews. Focus on what customers liked most.
Keep the summary concise (2-3 sentences).
DO NOT use markdown formatting like ** for bold or * for italic in your response.

Reviews: %s`, combined)
	case bucketNegative:
		return fmt.Sprintf(`Summarize the negative aspects from these product reviews. Focus on common complaints and issues.
Keep the summary concise (2-3 sentences).
DO NOT use markdown formatting like ** for bold or * for italic in your response.

Reviews: %s`, combined)
	case bucketNeutral:
		return fmt.Sprintf(`Summarize the neutral aspects from these product reviews. Focus on factual observations, balanced opinions,
and specific details mentioned without strong sentiment. Avoid making it sound like a product description.
Keep the summary concise (2-3 sentences) and focus on what customers actually said.
DO NOT use markdown formatting like ** for bold or * for italic in your response.

Reviews: %s`, combined)
	default:
		return fmt.Sprintf(`Summarize the following product reviews in a comprehensive way, highlighting key points mentioned by customers.
Focus on both positive and negative aspects. Keep the summary concise (3-4 sentences).
DO NOT use markdown formatting like ** for bold or * for italic in your response.

Reviews: %s`, combined)
	}
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// truncate cuts s to at most n bytes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
