package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/impactcrypto/dashboard/cache"
	"github.com/impactcrypto/dashboard/config"
	"github.com/impactcrypto/dashboard/metrics"
)

// StatusHandler receives request outcomes, typically to feed metrics
type StatusHandler interface {
	// OnRequest handles a finished request with its outcome status
	OnRequest(status string)
	// OnRetry handles retry events
	OnRetry()
}

// RetryPolicy is the retry behavior as an explicit value so it can be
// tested without real wall-clock delays
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt
	MaxRetries int
	// BaseDelay is the backoff unit; the wait before attempt N
	// (1-based) is N * BaseDelay
	BaseDelay time.Duration
}

// Options configures a single FetchJSON call
type Options struct {
	// TTL is how long a successful result stays fresh in the cache
	TTL time.Duration

	// CacheKey overrides the default key derived from the URL. Explicit
	// keys keep direct and proxied attempts for one resource unified.
	CacheKey string

	// NoProxy restricts the call to the direct path only; used for
	// providers that are never blocked and dislike relay traffic
	NoProxy bool

	// Policy overrides the client's retry policy for this call
	Policy *RetryPolicy
}

// Client fetches JSON resources over an unreliable network: it consults
// the cache first, walks an ordered list of access paths (direct, then
// relay proxies) with linearly increasing backoff, and falls back to
// stale cached data when every live attempt fails.
type Client struct {
	httpClient *http.Client
	cache      cache.Cache
	policy     RetryPolicy
	proxies    []string
	limiters   *hostLimiters
	status     StatusHandler

	// sleep is the backoff wait, injectable for tests
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a fetcher bound to the given cache
func NewClient(store cache.Cache, cfg config.FetchConfig, status StatusHandler) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		cache:      store,
		policy: RetryPolicy{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  cfg.BaseBackoff,
		},
		proxies:  cfg.ProxyPrefixes,
		limiters: newHostLimiters(cfg.RequestsPerSecond),
		status:   status,
		sleep:    sleepContext,
	}
}

// FetchJSON fetches rawURL and returns its body, which is guaranteed to
// be valid JSON. A fresh cached payload short-circuits the network
// entirely; cancellation through ctx aborts the whole sequence and is
// reported distinctly (errors.Is(err, context.Canceled)).
func (c *Client) FetchJSON(ctx context.Context, rawURL string, opts Options) ([]byte, error) {
	start := time.Now()
	key := opts.CacheKey
	if key == "" {
		key = "cache:" + rawURL
	}

	if payload, ok := c.cache.Get(key); ok {
		metrics.RecordCacheRead("hit")
		return payload, nil
	}
	metrics.RecordCacheRead("miss")

	policy := c.policy
	if opts.Policy != nil {
		policy = *opts.Policy
	}

	paths := []string{""}
	if !opts.NoProxy {
		paths = append(paths, c.proxies...)
	}

	attempts := len(paths)
	if policy.MaxRetries+1 < attempts {
		attempts = policy.MaxRetries + 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			if c.status != nil {
				c.status.OnRetry()
			}
			if err := c.sleep(ctx, time.Duration(i)*policy.BaseDelay); err != nil {
				return nil, fmt.Errorf("fetch aborted: %w", err)
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("fetch aborted: %w", err)
		}

		payload, err := c.attempt(ctx, paths[i], rawURL)
		if err == nil {
			c.cache.Set(key, payload, opts.TTL)
			if c.status != nil {
				c.status.OnRequest("success")
			}
			metrics.RecordFetchDuration("fetch", start)
			return payload, nil
		}
		if IsAborted(err) {
			// Caller walked away: no further paths, no stale fallback
			return nil, err
		}

		if c.status != nil {
			c.status.OnRequest("error")
		}
		log.Printf("Fetch: attempt %d/%d for %s failed: %v", i+1, attempts, rawURL, err)
		lastErr = err
	}

	if payload, ok := c.cache.GetStale(key); ok {
		metrics.RecordCacheRead("stale")
		log.Printf("Fetch: all attempts for %s failed, serving stale cache", rawURL)
		return payload, nil
	}

	return nil, lastErr
}

// attempt performs one GET through one access path
func (c *Client) attempt(ctx context.Context, prefix, rawURL string) ([]byte, error) {
	target := rawURL
	if prefix != "" {
		target = prefix + rawURL
	}

	if err := c.limiters.wait(ctx, target); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 Impact-Dashboard")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{Status: resp.StatusCode, URL: target}
	}

	if !json.Valid(body) {
		return nil, newParseError(body)
	}

	return body, nil
}

// sleepContext waits for d or until ctx is cancelled
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
