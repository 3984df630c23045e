package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/impactcrypto/dashboard/config"
	"github.com/impactcrypto/dashboard/fetch"
)

// Fetcher is the transport the client issues requests through
type Fetcher interface {
	FetchJSON(ctx context.Context, url string, opts fetch.Options) ([]byte, error)
}

// Client is a thin typed wrapper over the fetcher for the market data
// provider: the coin list and per-coin historical charts
type Client struct {
	fetcher Fetcher
	config  config.CoingeckoConfig
}

// NewClient creates a market data client
func NewClient(fetcher Fetcher, cfg config.CoingeckoConfig) *Client {
	return &Client{
		fetcher: fetcher,
		config:  cfg,
	}
}

// Markets fetches a page of coins with market stats, cached for the
// configured markets TTL (60s by default)
func (c *Client) Markets(ctx context.Context, params MarketsParams) ([]MarketCoin, error) {
	requestURL := NewMarketsRequestBuilder(c.config.BaseURL).
		WithCurrency(params.Currency).
		WithPerPage(params.PerPage).
		WithPage(params.Page).
		WithIDs(params.IDs).
		BuildURL()

	body, err := c.fetcher.FetchJSON(ctx, requestURL, fetch.Options{TTL: c.config.MarketsTTL})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch markets: %w", err)
	}

	var coins []MarketCoin
	if err := json.Unmarshal(body, &coins); err != nil {
		return nil, fmt.Errorf("failed to parse markets response: %w", err)
	}

	log.Printf("CoinGecko: loaded %d coins for currency=%s", len(coins), params.Currency)
	return coins, nil
}

// MarketsByIDs fetches market stats for exactly the given coins. An
// empty id list returns an empty slice without any network call.
func (c *Client) MarketsByIDs(ctx context.Context, currency string, ids []string) ([]MarketCoin, error) {
	if len(ids) == 0 {
		return []MarketCoin{}, nil
	}
	return c.Markets(ctx, MarketsParams{
		Currency: currency,
		PerPage:  len(ids),
		Page:     1,
		IDs:      ids,
	})
}

// MarketChart fetches the historical price series for one coin, cached
// for the configured chart TTL (10m by default). A payload without a
// price series yields an empty slice, not an error.
func (c *Client) MarketChart(ctx context.Context, coinID, currency string, days int) ([]PricePoint, error) {
	requestURL := ChartRequestURL(c.config.BaseURL, coinID, currency, days)

	body, err := c.fetcher.FetchJSON(ctx, requestURL, fetch.Options{TTL: c.config.ChartTTL})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch market chart for %s: %w", coinID, err)
	}

	var chart struct {
		Prices []PricePoint `json:"prices"`
	}
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("failed to parse market chart response: %w", err)
	}

	if chart.Prices == nil {
		return []PricePoint{}, nil
	}
	return chart.Prices, nil
}
