package domain

// RawExtraction is the flat field mapping produced by one extraction pass.
// Values are either string (scalar fields) or []string (repeated fields).
// It is built once per fetched page and never mutated afterwards; fields
// whose selector matched nothing hold the "N/A" sentinel or an empty slice.
type RawExtraction map[string]any

// MissingField is the sentinel stored for scalar fields with no match.
const MissingField = "N/A"

// Scalar returns the named scalar field, or "N/A" when absent.
func (r RawExtraction) Scalar(name string) string {
	if v, ok := r[name].(string); ok && v != "" {
		return v
	}
	return MissingField
}

// List returns the named repeated field, or nil when absent.
func (r RawExtraction) List(name string) []string {
	if v, ok := r[name].([]string); ok {
		return v
	}
	return nil
}

// SentimentLabel is the three-way polarity classification of one review.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
	SentimentNeutral  SentimentLabel = "NEUTRAL"
)

// ReviewSentiment pairs a review with its classified label.
type ReviewSentiment struct {
	Review string         `json:"review"`
	Label  SentimentLabel `json:"label"`
}

// SentimentSummaries holds the four generated review summaries.
type SentimentSummaries struct {
	Overall  string `json:"overall"`
	Positive string `json:"positive"`
	Negative string `json:"negative"`
	Neutral  string `json:"neutral"`
}

// SentimentReport is the aggregated sentiment analysis for one product's
// reviews. It is computed once during assembly and never updated.
type SentimentReport struct {
	Counts           map[SentimentLabel]int     `json:"sentimentCounts"`
	Percentages      map[SentimentLabel]float64 `json:"sentimentPercentages"`
	ReviewSentiments []ReviewSentiment          `json:"reviewSentiments"`
	Overall          string                     `json:"overallSentiment"`
	Summaries        SentimentSummaries         `json:"summaries"`
}

// ProductRecord is the assembled output of one scrape. Assembly is
// all-or-nothing: a partially populated record is never produced. Once
// stored, the record is owned by the session store and treated as read-only.
type ProductRecord struct {
	Name           string          `json:"productName"`
	Price          string          `json:"price"`
	Rating         string          `json:"rating"`
	NumReviews     string          `json:"numReviews"`
	Availability   string          `json:"availability"`
	ImageURL       string          `json:"imageUrl"`
	RawDescription []string        `json:"rawDescription"`
	Description    string          `json:"description"`
	Reviews        []string        `json:"reviews"`
	Sentiment      SentimentReport `json:"sentimentAnalysis"`
	SourceURL      string          `json:"sourceUrl"`
}

// Recommendation is one suggested alternative product, parsed from the
// completion service's JSON answer.
type Recommendation struct {
	Name       string `json:"name"`
	Reason     string `json:"reason"`
	PriceRange string `json:"price_range"`
}

// CompletionOptions tune a single text-completion request.
type CompletionOptions struct {
	MaxOutputTokens int
	Temperature     float64
	TopP            float64
}
