package fetch

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// hostLimiters hands out one token-bucket limiter per upstream host so
// a burst of chart requests cannot starve the other providers
type hostLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	perHost  rate.Limit
	burst    int
}

// newHostLimiters creates per-host limiters at the given requests per
// second. Returns nil when rps is not positive, disabling limiting.
func newHostLimiters(rps float64) *hostLimiters {
	if rps <= 0 {
		return nil
	}
	return &hostLimiters{
		limiters: make(map[string]*rate.Limiter),
		perHost:  rate.Limit(rps),
		burst:    1,
	}
}

// wait blocks until the host's limiter admits a request or ctx ends
func (h *hostLimiters) wait(ctx context.Context, rawURL string) error {
	if h == nil {
		return nil
	}

	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Host
	}

	h.mu.Lock()
	limiter, ok := h.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(h.perHost, h.burst)
		h.limiters[host] = limiter
	}
	h.mu.Unlock()

	return limiter.Wait(ctx)
}
