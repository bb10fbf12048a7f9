package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/prodlens/backend/internal/domain"
	"github.com/prodlens/backend/internal/infrastructure/extract"
)

// ProductService orchestrates one product assembly: resolve the query,
// fetch and extract the page, aggregate review sentiment, synthesize the
// description, and store the finished record in the session cache.
// Assembly is all-or-nothing; a partial record is never stored.
type ProductService struct {
	resolver    *QueryResolver
	fetcher     domain.Fetcher
	extractor   domain.Extractor
	aggregator  *ReviewAggregator
	synthesizer *DescriptionSynthesizer
	store       domain.ProductStore
}

// NewProductService creates a product service with its collaborators.
func NewProductService(
	resolver *QueryResolver,
	fetcher domain.Fetcher,
	extractor domain.Extractor,
	aggregator *ReviewAggregator,
	synthesizer *DescriptionSynthesizer,
	store domain.ProductStore,
) *ProductService {
	return &ProductService{
		resolver:    resolver,
		fetcher:     fetcher,
		extractor:   extractor,
		aggregator:  aggregator,
		synthesizer: synthesizer,
		store:       store,
	}
}

// Scrape assembles the product for query and returns the stored record
// with its generated session identifier.
func (s *ProductService) Scrape(ctx context.Context, query string) (*domain.ProductRecord, string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, "", fmt.Errorf("%w: product name or URL is required", domain.ErrInvalidRequest)
	}

	productURL, err := s.resolver.Resolve(ctx, query)
	if err != nil {
		return nil, "", err
	}

	log.Printf("[Product] Fetching product details from %s", productURL)
	body, err := s.fetcher.Fetch(ctx, productURL)
	if err != nil {
		return nil, "", fmt.Errorf("fetch product page: %w", err)
	}

	data := s.extractor.Extract(body)

	reviews := cleanList(data.List(extract.FieldReviews))
	report := s.aggregator.Aggregate(ctx, reviews)

	fragments := cleanList(append(append(
		data.List(extract.FieldDescription),
		data.List(extract.FieldTechnicalDetails)...),
		data.List(extract.FieldProductDescription)...))
	description := s.synthesizer.Synthesize(ctx, fragments)

	record := &domain.ProductRecord{
		Name:           strings.TrimSpace(data.Scalar(extract.FieldProductName)),
		Price:          strings.TrimSpace(data.Scalar(extract.FieldPrice)),
		Rating:         strings.TrimSpace(data.Scalar(extract.FieldRating)),
		NumReviews:     strings.TrimSpace(data.Scalar(extract.FieldNumReviews)),
		Availability:   strings.TrimSpace(data.Scalar(extract.FieldAvailability)),
		ImageURL:       strings.TrimSpace(data.Scalar(extract.FieldImage)),
		RawDescription: fragments,
		Description:    description,
		Reviews:        reviews,
		Sentiment:      report,
		SourceURL:      productURL,
	}

	id := s.store.Add(record)
	log.Printf("[Product] Assembled %q as %s (%d reviews)", record.Name, id, len(reviews))
	return record, id, nil
}

// cleanList trims entries and drops the empty ones, preserving order.
func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
