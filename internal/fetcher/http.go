package fetcher

import (
	"context"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
	"github.com/temoto/robotstxt"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent     string
	Timeout       time.Duration
	MaxRetries    int
	CacheTTL      time.Duration
	RespectRobots bool

	// RateLimit is the default requests-per-second budget applied per host.
	RateLimit rate.Limit

	// HostLimits overrides the default budget for specific hosts, so a
	// slow-configured source never throttles the others.
	HostLimits map[string]rate.Limit
}

// HTTPFetcher implements Fetcher using net/http.
type HTTPFetcher struct {
	client *http.Client
	opts   HTTPOptions

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	robots   map[string]*robotstxt.RobotsData

	cache *cache.Cache
}

// NewHTTPFetcher creates an HTTPFetcher with the given options.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "lemina-intel/1.0"
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = 1
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = time.Hour
	}
	transport := &http.Transport{
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     20,
		IdleConnTimeout:     90 * time.Second,
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		opts:     opts,
		limiters: make(map[string]*rate.Limiter),
		robots:   make(map[string]*robotstxt.RobotsData),
		cache:    cache.New(opts.CacheTTL, 10*time.Minute),
	}
}

// Get fetches the URL, consulting the page cache and robots.txt first.
func (f *HTTPFetcher) Get(ctx context.Context, rawURL string) ([]byte, error) {
	if body, ok := f.cache.Get(rawURL); ok {
		return body.([]byte), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch: parse url %s", rawURL)
	}

	if f.opts.RespectRobots {
		allowed, err := f.allowed(ctx, u)
		if err != nil {
			zap.L().Debug("fetch: robots.txt unavailable, proceeding",
				zap.String("host", u.Host),
				zap.Error(err),
			)
		} else if !allowed {
			return nil, eris.Errorf("fetch: disallowed by robots.txt: %s", rawURL)
		}
	}

	body, err := f.doWithRetry(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	f.cache.Set(rawURL, body, cache.DefaultExpiration)
	return body, nil
}

// limiterFor returns the per-host limiter, creating it on first use from the
// host's configured budget or the default.
func (f *HTTPFetcher) limiterFor(host string) *rate.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()
	lim, ok := f.limiters[host]
	if !ok {
		budget := f.opts.RateLimit
		if hl, ok := f.opts.HostLimits[host]; ok && hl > 0 {
			budget = hl
		}
		lim = rate.NewLimiter(budget, 1)
		f.limiters[host] = lim
	}
	return lim
}

// allowed checks the host's robots.txt for the fetcher's user agent.
// The parsed policy is cached per host for the fetcher's lifetime.
func (f *HTTPFetcher) allowed(ctx context.Context, u *url.URL) (bool, error) {
	f.mu.Lock()
	data, ok := f.robots[u.Host]
	f.mu.Unlock()

	if !ok {
		robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
		if err != nil {
			return true, eris.Wrap(err, "fetch: robots request")
		}
		req.Header.Set("User-Agent", f.opts.UserAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			return true, eris.Wrap(err, "fetch: robots fetch")
		}
		defer resp.Body.Close() //nolint:errcheck

		data, err = robotstxt.FromResponse(resp)
		if err != nil {
			return true, eris.Wrap(err, "fetch: robots parse")
		}

		f.mu.Lock()
		f.robots[u.Host] = data
		f.mu.Unlock()
	}

	return data.TestAgent(u.Path, f.opts.UserAgent), nil
}

func (f *HTTPFetcher) doWithRetry(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: create request")
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)

	lim := f.limiterFor(req.URL.Host)

	var lastErr error
	for attempt := range f.opts.MaxRetries {
		if err := lim.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "fetch: rate limiter wait")
		}

		resp, err := f.client.Do(req.Clone(ctx))
		if err != nil {
			lastErr = err
			zap.L().Warn("fetch: request failed, retrying",
				zap.String("url", rawURL),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			f.backoff(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			lastErr = eris.Errorf("fetch: http %d from %s", resp.StatusCode, rawURL)
			zap.L().Warn("fetch: retryable status",
				zap.String("url", rawURL),
				zap.Int("status", resp.StatusCode),
				zap.Int("attempt", attempt+1),
			)
			f.backoff(ctx, attempt)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, eris.Errorf("fetch: unexpected status %d from %s", resp.StatusCode, rawURL)
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, eris.Wrapf(err, "fetch: read body from %s", rawURL)
		}
		return body, nil
	}

	return nil, eris.Wrap(lastErr, "fetch: all retries exhausted")
}

func (f *HTTPFetcher) backoff(ctx context.Context, attempt int) {
	base := time.Second
	maxBackoff := 30 * time.Second
	d := time.Duration(float64(base) * math.Pow(2, float64(attempt)))
	if d > maxBackoff {
		d = maxBackoff
	}
	d += time.Duration(rand.Int64N(int64(d) / 2))

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
