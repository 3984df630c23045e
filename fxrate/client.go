package fxrate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/impactcrypto/dashboard/config"
	"github.com/impactcrypto/dashboard/fetch"
	"github.com/impactcrypto/dashboard/metrics"
)

// RateSource names the tier that resolved a rate, so callers and tests
// can tell a primary answer from a fallback instead of guessing
type RateSource string

const (
	RateSourcePrimary   RateSource = "primary"
	RateSourceSecondary RateSource = "secondary"
	RateSourceNone      RateSource = "none"
)

// SymbolSource names where the currency list came from
type SymbolSource string

const (
	SymbolsLive    SymbolSource = "live"
	SymbolsBuiltin SymbolSource = "builtin"
)

// ErrUnresolved indicates that no provider produced a usable rate
var ErrUnresolved = fmt.Errorf("exchange rate unresolved")

// Fetcher is the transport the client issues requests through
type Fetcher interface {
	FetchJSON(ctx context.Context, url string, opts fetch.Options) ([]byte, error)
}

// Client resolves currency rates against a primary provider with a
// secondary "latest only" fallback. Both providers are plain JSON over
// CDN/REST and are happiest without relay proxies, so every request is
// made on the direct path.
type Client struct {
	fetcher Fetcher
	config  config.FxRateConfig
}

// NewClient creates an FX rate client
func NewClient(fetcher Fetcher, cfg config.FxRateConfig) *Client {
	return &Client{
		fetcher: fetcher,
		config:  cfg,
	}
}

// Symbols returns the supported currency codes, uppercase and sorted.
// A failed or empty live fetch falls back to the builtin list; the
// returned source tells which tier answered. Never returns an error.
func (c *Client) Symbols(ctx context.Context) ([]string, SymbolSource) {
	url := fmt.Sprintf("%s/latest/currencies.json", c.config.PrimaryURL)

	body, err := c.fetcher.FetchJSON(ctx, url, fetch.Options{
		TTL:      c.config.SymbolsTTL,
		CacheKey: "fxa:symbols",
		NoProxy:  true,
	})
	if err != nil {
		log.Printf("FX: symbol list fetch failed, using builtin list: %v", err)
		return BuiltinSymbols(), SymbolsBuiltin
	}

	var codes map[string]json.RawMessage
	if err := json.Unmarshal(body, &codes); err != nil || len(codes) == 0 {
		log.Printf("FX: symbol list unusable, using builtin list")
		return BuiltinSymbols(), SymbolsBuiltin
	}

	symbols := make([]string, 0, len(codes))
	for code := range codes {
		symbols = append(symbols, strings.ToUpper(code))
	}
	sort.Strings(symbols)
	return symbols, SymbolsLive
}

// LatestRate resolves the current rate for one unit of from in to.
// The primary provider is tried first; on failure or a non-finite
// value the secondary provider answers. Cancellation propagates
// immediately without consulting the next tier.
func (c *Client) LatestRate(ctx context.Context, from, to string) (float64, RateSource, error) {
	rate, err := c.primaryLatest(ctx, from, to)
	if err == nil && isFinite(rate) {
		metrics.RecordFxResolution(string(RateSourcePrimary))
		return rate, RateSourcePrimary, nil
	}
	if fetch.IsAborted(err) {
		return math.NaN(), RateSourceNone, err
	}

	rate, err2 := c.secondaryLatest(ctx, from, to)
	if err2 == nil && isFinite(rate) {
		metrics.RecordFxResolution(string(RateSourceSecondary))
		return rate, RateSourceSecondary, nil
	}
	if fetch.IsAborted(err2) {
		return math.NaN(), RateSourceNone, err2
	}

	metrics.RecordFxResolution(string(RateSourceNone))
	return math.NaN(), RateSourceNone, fmt.Errorf("%w: %s->%s", ErrUnresolved, from, to)
}

// RateOnDate resolves the rate for a specific past calendar day from
// the primary provider. The secondary provider only serves "latest",
// so historical lookups have no fallback tier.
func (c *Client) RateOnDate(ctx context.Context, from, to string, day time.Time) (float64, error) {
	f := strings.ToLower(from)
	t := strings.ToLower(to)
	ymd := day.Format("2006-01-02")
	url := fmt.Sprintf("%s/%s/currencies/%s/%s.json", c.config.PrimaryURL, ymd, f, t)

	rate, err := c.fetchRate(ctx, url, fmt.Sprintf("fxa:%s:%s:%s", f, t, ymd), t)
	if err != nil {
		return math.NaN(), err
	}
	return rate, nil
}

// Convert converts amount from one currency to another at the latest
// rate. Same-currency conversions return amount without any network
// call. An unresolved rate yields 0; callers needing to distinguish an
// unresolved rate from a genuine zero should use LatestRate directly.
func (c *Client) Convert(ctx context.Context, from, to string, amount float64) float64 {
	if strings.EqualFold(from, to) {
		return amount
	}

	rate, _, err := c.LatestRate(ctx, from, to)
	if err != nil || !isFinite(rate) {
		return 0
	}
	return amount * rate
}

// primaryLatest queries the primary provider's latest endpoint
func (c *Client) primaryLatest(ctx context.Context, from, to string) (float64, error) {
	f := strings.ToLower(from)
	t := strings.ToLower(to)
	url := fmt.Sprintf("%s/latest/currencies/%s/%s.json", c.config.PrimaryURL, f, t)

	return c.fetchRate(ctx, url, fmt.Sprintf("fxa:%s:%s:latest", f, t), t)
}

// secondaryLatest queries the fallback provider, which keys rates by
// uppercase code under a "rates" object
func (c *Client) secondaryLatest(ctx context.Context, from, to string) (float64, error) {
	base := strings.ToUpper(from)
	url := fmt.Sprintf("%s/v6/latest/%s", c.config.SecondaryURL, base)

	body, err := c.fetcher.FetchJSON(ctx, url, fetch.Options{
		TTL:      c.config.RateTTL,
		CacheKey: fmt.Sprintf("era:%s:latest", base),
		NoProxy:  true,
	})
	if err != nil {
		return math.NaN(), err
	}

	var response struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return math.NaN(), fmt.Errorf("failed to parse secondary rate response: %w", err)
	}

	rate, ok := response.Rates[strings.ToUpper(to)]
	if !ok {
		return math.NaN(), fmt.Errorf("no rate for %s in secondary response", to)
	}
	return rate, nil
}

// fetchRate fetches a primary-provider payload and extracts the rate
// keyed by the lowercase target code
func (c *Client) fetchRate(ctx context.Context, url, cacheKey, key string) (float64, error) {
	body, err := c.fetcher.FetchJSON(ctx, url, fetch.Options{
		TTL:      c.config.RateTTL,
		CacheKey: cacheKey,
		NoProxy:  true,
	})
	if err != nil {
		return math.NaN(), err
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return math.NaN(), fmt.Errorf("failed to parse rate response: %w", err)
	}

	raw, ok := payload[key]
	if !ok {
		return math.NaN(), fmt.Errorf("no rate for %s in response", key)
	}

	var rate float64
	if err := json.Unmarshal(raw, &rate); err != nil {
		return math.NaN(), fmt.Errorf("rate for %s is not numeric: %w", key, err)
	}
	return rate, nil
}

// isFinite reports whether f is a usable rate value. NaN and infinities
// mark the distinct "unresolvable" state, which is not the same as 0.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
