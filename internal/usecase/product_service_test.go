package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/prodlens/backend/internal/domain"
	"github.com/prodlens/backend/internal/infrastructure/cache"
	"github.com/prodlens/backend/internal/infrastructure/extract"
)

// fakeExtractor returns a scripted extraction regardless of input.
type fakeExtractor struct {
	data domain.RawExtraction
}

func (f *fakeExtractor) Extract(html []byte) domain.RawExtraction {
	return f.data
}

func sampleExtraction() domain.RawExtraction {
	return domain.RawExtraction{
		extract.FieldProductName:  "  Acme Wireless Mouse  ",
		extract.FieldPrice:        "₹1,299",
		extract.FieldRating:       "4.3 out of 5 stars",
		extract.FieldNumReviews:   "1,204 ratings",
		extract.FieldAvailability: "In stock",
		extract.FieldImage:        "https://img.example/mouse.jpg",
		extract.FieldDescription:  []string{"Ergonomic shape.", "  "},
		extract.FieldReviews: []string{
			"Amazing product, loved it!",
			"",
			"Terrible, broke in a day",
		},
	}
}

func TestScrape_AssemblesAndStoresRecord(t *testing.T) {
	fetcher := &fakeFetcher{body: []byte("<html></html>")}
	completion := &fakeCompletion{reply: "Generated text."}
	store := cache.NewSessionStore()

	service := NewProductService(
		NewQueryResolver(fetcher, testBaseURL),
		fetcher,
		&fakeExtractor{data: sampleExtraction()},
		NewReviewAggregator(scenarioClassifier(), completion),
		NewDescriptionSynthesizer(completion),
		store,
	)

	record, id, err := service.Scrape(context.Background(), "https://www.amazon.in/x/dp/B000123ABC/")
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}

	if id != "product_1" {
		t.Errorf("id = %q, want product_1", id)
	}
	if record.Name != "Acme Wireless Mouse" {
		t.Errorf("Name = %q, want trimmed product name", record.Name)
	}
	if record.SourceURL != "https://www.amazon.in/dp/B000123ABC" {
		t.Errorf("SourceURL = %q, want canonical URL", record.SourceURL)
	}
	if len(record.Reviews) != 2 {
		t.Errorf("Reviews = %v, want the two non-empty entries", record.Reviews)
	}
	if record.Sentiment.Counts[domain.SentimentPositive] != 1 ||
		record.Sentiment.Counts[domain.SentimentNegative] != 1 {
		t.Errorf("sentiment counts = %v, want one positive and one negative", record.Sentiment.Counts)
	}
	// Short description material is concatenated verbatim, no service call.
	if record.Description != "Ergonomic shape." {
		t.Errorf("Description = %q", record.Description)
	}
	if record.RawDescription[len(record.RawDescription)-1] != "Ergonomic shape." {
		t.Errorf("RawDescription = %v, want cleaned fragments", record.RawDescription)
	}

	stored, ok := store.Get(id)
	if !ok {
		t.Fatal("record not found in store after Scrape")
	}
	if stored != record {
		t.Error("store must hold the returned record")
	}
}

func TestScrape_EmptyQuery(t *testing.T) {
	store := cache.NewSessionStore()
	fetcher := &fakeFetcher{}
	completion := &fakeCompletion{reply: "x"}
	service := NewProductService(
		NewQueryResolver(fetcher, testBaseURL),
		fetcher,
		&fakeExtractor{data: domain.RawExtraction{}},
		NewReviewAggregator(scenarioClassifier(), completion),
		NewDescriptionSynthesizer(completion),
		store,
	)

	_, _, err := service.Scrape(context.Background(), "   ")
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("error = %v, want ErrInvalidRequest", err)
	}
	if store.Len() != 0 {
		t.Error("nothing may be stored for an invalid query")
	}
}

func TestScrape_FetchFailureStoresNothing(t *testing.T) {
	store := cache.NewSessionStore()
	fetcher := &fakeFetcher{err: domain.ErrMaxRetries}
	completion := &fakeCompletion{reply: "x"}
	service := NewProductService(
		NewQueryResolver(fetcher, testBaseURL),
		fetcher,
		&fakeExtractor{data: sampleExtraction()},
		NewReviewAggregator(scenarioClassifier(), completion),
		NewDescriptionSynthesizer(completion),
		store,
	)

	_, _, err := service.Scrape(context.Background(), "https://www.amazon.in/x/dp/B000123ABC/")
	if !errors.Is(err, domain.ErrMaxRetries) {
		t.Errorf("error = %v, want wrapped ErrMaxRetries", err)
	}
	if store.Len() != 0 {
		t.Error("a failed assembly must not store a partial record")
	}
	if len(completion.calls) != 0 {
		t.Error("no completions may run when the page fetch fails")
	}
}

func TestScrape_MissingFieldsDefaultToSentinel(t *testing.T) {
	store := cache.NewSessionStore()
	fetcher := &fakeFetcher{body: []byte("<html></html>")}
	completion := &fakeCompletion{reply: "x"}
	service := NewProductService(
		NewQueryResolver(fetcher, testBaseURL),
		fetcher,
		&fakeExtractor{data: domain.RawExtraction{}},
		NewReviewAggregator(scenarioClassifier(), completion),
		NewDescriptionSynthesizer(completion),
		store,
	)

	record, _, err := service.Scrape(context.Background(), "https://www.amazon.in/x/dp/B000123ABC/")
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}
	if record.Name != domain.MissingField || record.Price != domain.MissingField {
		t.Errorf("Name = %q, Price = %q, want %q sentinels", record.Name, record.Price, domain.MissingField)
	}
	if record.Sentiment.Overall != overallNoReviews {
		t.Errorf("Overall = %q, want the no-reviews label", record.Sentiment.Overall)
	}
}
