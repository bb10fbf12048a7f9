package usecase

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"

	"github.com/prodlens/backend/internal/domain"
)

// Package-level compiled patterns for the two product-URL path shapes.
var (
	dpPattern = regexp.MustCompile(`/dp/([A-Z0-9]+)/`)
	gpPattern = regexp.MustCompile(`/gp/product/([A-Z0-9]+)/`)
)

// QueryResolver turns a free-text phrase or a direct product URL into a
// canonical product-page URL.
type QueryResolver struct {
	fetcher   domain.Fetcher
	baseURL   string
	siteToken string
}

// NewQueryResolver creates a resolver for the site at baseURL.
func NewQueryResolver(fetcher domain.Fetcher, baseURL string) *QueryResolver {
	return &QueryResolver{
		fetcher:   fetcher,
		baseURL:   strings.TrimRight(baseURL, "/"),
		siteToken: siteToken(baseURL),
	}
}

// Resolve returns the product URL for query. Direct URLs are canonicalized
// via their embedded product identifier, falling back to the URL verbatim
// when no identifier parses. Free-text queries go through the site search.
func (r *QueryResolver) Resolve(ctx context.Context, query string) (string, error) {
	if strings.HasPrefix(query, "http") && strings.Contains(query, r.siteToken) {
		if id := ProductIDFromURL(query); id != "" {
			return fmt.Sprintf("%s/dp/%s", r.baseURL, id), nil
		}
		// No identifier found; use the URL unmodified as a last resort
		log.Printf("[Resolver] No product ID in %q, using URL directly", query)
		return query, nil
	}
	return r.search(ctx, query)
}

// search fetches the site search page for query and returns the first
// product the results link to.
func (r *QueryResolver) search(ctx context.Context, query string) (string, error) {
	searchURL := fmt.Sprintf("%s/s?k=%s", r.baseURL, url.QueryEscape(query))
	log.Printf("[Resolver] Searching for %q", query)

	body, err := r.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return "", fmt.Errorf("%w: search failed: %v", domain.ErrProductNotFound, err)
	}

	match := dpPattern.FindSubmatch(body)
	if match == nil {
		return "", fmt.Errorf("%w: no results for %q", domain.ErrProductNotFound, query)
	}
	return fmt.Sprintf("%s/dp/%s", r.baseURL, match[1]), nil
}

// ProductIDFromURL extracts the stable product identifier from a product
// page URL, trying both known path shapes.
func ProductIDFromURL(u string) string {
	if m := dpPattern.FindStringSubmatch(u); m != nil {
		return m[1]
	}
	if m := gpPattern.FindStringSubmatch(u); m != nil {
		return m[1]
	}
	return ""
}

// siteToken derives the recognizable site name from the base URL host,
// e.g. "amazon" from https://www.amazon.in.
func siteToken(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	if i := strings.Index(host, "."); i > 0 {
		return host[:i]
	}
	return host
}
