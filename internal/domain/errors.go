package domain

import "errors"

var (
	// ErrProductNotFound is returned when no product identifier can be
	// resolved for a query, or a cached product ID is unknown.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidRequest is returned when request parameters are invalid.
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrMaxRetries is returned when the fetcher exhausts its attempt
	// budget without a terminal response.
	ErrMaxRetries = errors.New("max retries exceeded")

	// ErrNonRetryableStatus is returned for any HTTP status that is
	// neither 200 nor 503; the fetch is abandoned immediately.
	ErrNonRetryableStatus = errors.New("non-retryable HTTP status")

	// ErrEmptyCandidates is returned when the completion service answers
	// without a usable candidate. This is a service-level failure, not a
	// transport failure.
	ErrEmptyCandidates = errors.New("completion response contained no candidates")

	// ErrRecommendationParse is returned when the recommendation JSON from
	// the completion service cannot be decoded. There is no safe fallback
	// on this path, so the failure surfaces to the caller.
	ErrRecommendationParse = errors.New("malformed recommendation JSON")
)
