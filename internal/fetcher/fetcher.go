// Package fetcher provides the shared HTTP client for fetch units: per-host
// rate limiting, retry with backoff, robots.txt awareness and a TTL cache.
package fetcher

import "context"

// Fetcher downloads listing pages for fetch units.
type Fetcher interface {
	// Get fetches the URL and returns the response body.
	Get(ctx context.Context, url string) ([]byte, error)
}
