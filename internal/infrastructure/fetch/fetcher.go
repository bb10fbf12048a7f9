package fetch

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/prodlens/backend/internal/domain"
)

// browserIdentities is the fixed pool of request identities rotated across
// attempts to reduce anti-bot blocking.
var browserIdentities = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.5735.110 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/110.0.5481.177 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/113.0.5672.124 Safari/537.36",
}

// Client fetches pages with per-attempt identity rotation and retry/backoff
// on transient overload. It advertises brotli alongside gzip/deflate and
// decompresses response bodies itself.
type Client struct {
	httpClient *http.Client
	policy     RetryPolicy
	pickUA     func() string
}

// NewClient creates a fetch client with the given per-attempt timeout and
// retry policy.
func NewClient(timeout time.Duration, policy RetryPolicy) *Client {
	transport := &http.Transport{
		// Decompression is handled here (including brotli), not by net/http.
		DisableCompression: true,
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		policy: policy,
		pickUA: func() string {
			return browserIdentities[rand.Intn(len(browserIdentities))]
		},
	}
}

// Fetch retrieves url and returns the decompressed body.
// 200 is terminal success; 503 and transport errors are retried per the
// policy; any other status aborts immediately with ErrNonRetryableStatus.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	err := c.policy.Do(ctx, func(attempt int) (bool, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return false, fmt.Errorf("create request: %w", err)
		}
		c.setHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			log.Printf("[Fetcher] Request error (attempt %d/%d): %v", attempt, c.policy.MaxAttempts, err)
			return true, err
		}
		defer resp.Body.Close()

		if c.policy.RetryableStatus(resp.StatusCode) {
			log.Printf("[Fetcher] HTTP %d detected (attempt %d/%d), backing off", resp.StatusCode, attempt, c.policy.MaxAttempts)
			return true, fmt.Errorf("transient HTTP %d", resp.StatusCode)
		}

		if resp.StatusCode != http.StatusOK {
			// 403 is deliberately terminal: rotating only the User-Agent
			// does not clear an anti-bot block mid-session.
			log.Printf("[Fetcher] Unexpected status %d for %s", resp.StatusCode, url)
			return false, fmt.Errorf("%w: %d", domain.ErrNonRetryableStatus, resp.StatusCode)
		}

		reader, err := decompressReader(resp, resp.Body)
		if err != nil {
			return false, fmt.Errorf("decompress response: %w", err)
		}

		body, err = io.ReadAll(reader)
		if err != nil {
			return true, fmt.Errorf("read body: %w", err)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return body, nil
}

// setHeaders applies a randomly chosen browser identity and the matching
// header set for this attempt.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.pickUA())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Referer", "https://www.google.com/")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}

// decompressReader wraps a reader with the appropriate decompressor.
// Handles gzip, deflate, and brotli (br) encodings.
func decompressReader(resp *http.Response, reader io.Reader) (io.Reader, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		return gzip.NewReader(reader)
	case "deflate":
		return flate.NewReader(reader), nil
	case "br":
		return brotli.NewReader(reader), nil
	default:
		return reader, nil
	}
}
