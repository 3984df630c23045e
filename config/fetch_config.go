package config

import "time"

// FetchConfig defines behavior of the resilient JSON fetcher
type FetchConfig struct {
	// MaxRetries is the number of retries after the first attempt.
	// Total attempts are additionally bounded by the number of access
	// paths available for the request.
	MaxRetries int `yaml:"max_retries"`

	// BaseBackoff is the base delay between attempts; the wait before
	// attempt N (1-based) is N * BaseBackoff
	BaseBackoff time.Duration `yaml:"base_backoff"`

	// RequestTimeout is the total per-request timeout including reading
	// the response body
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// ProxyPrefixes are relay URL prefixes tried in order after the
	// direct path when an upstream blocks direct access
	ProxyPrefixes []string `yaml:"proxy_prefixes"`

	// RequestsPerSecond limits outgoing requests per upstream host.
	// Zero or negative disables rate limiting.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// DefaultFetchConfig returns default fetcher configuration
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		MaxRetries:     2,
		BaseBackoff:    350 * time.Millisecond,
		RequestTimeout: 30 * time.Second,
		ProxyPrefixes: []string{
			"https://cors.isomorphic-git.org/",
			"https://api.allorigins.win/raw?url=",
		},
		RequestsPerSecond: 4,
	}
}
