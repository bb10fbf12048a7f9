package domain

import "context"

// Fetcher retrieves a raw page body with retry/backoff handled internally.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Extractor maps raw HTML to a flat field mapping per a declarative
// selector schema. Extraction succeeds structurally even when individual
// selectors match nothing.
type Extractor interface {
	Extract(html []byte) RawExtraction
}

// CompletionClient defines the interface to the text completion service.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
}

// ProductStore is the process-wide session cache of assembled products.
// It grows only; identifier assignment is atomic with the insert.
type ProductStore interface {
	Add(record *ProductRecord) string
	Get(id string) (*ProductRecord, bool)
	GetAll(ids []string) ([]*ProductRecord, []string)
	Len() int
}
